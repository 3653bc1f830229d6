// pschema is a CLI tool for validating and exploring generator parameter schemas.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/n1rna/paramschema/internal/command"
	"github.com/n1rna/paramschema/internal/logger"
)

var version = "dev"

func main() {
	rootCmd := command.NewRootCommand(version)

	err := rootCmd.ExecuteContext(context.Background())
	logger.GetLogger().Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
