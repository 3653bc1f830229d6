// Package catalog provides the built-in generator schemas and loads schema
// definitions from disk.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/n1rna/paramschema/internal/logger"
	"github.com/n1rna/paramschema/internal/parser"
	"github.com/n1rna/paramschema/internal/schema"
)

// BuiltinPrefix marks a schema reference that names a built-in schema
const BuiltinPrefix = "builtin:"

// ErrUnknownSchema is returned when a built-in schema name is not registered
var ErrUnknownSchema = errors.New("unknown schema")

//go:embed schemas/*.yaml
var builtinFS embed.FS

// Catalog is an immutable set of named schemas
type Catalog struct {
	schemas map[string]*schema.Schema
}

var (
	builtin     *Catalog
	builtinErr  error
	builtinOnce sync.Once
)

// Builtin returns the catalog of schemas shipped with the binary
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = loadEmbedded()
	})
	return builtin, builtinErr
}

func loadEmbedded() (*Catalog, error) {
	entries, err := builtinFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to list built-in schemas: %w", err)
	}

	p := parser.NewSchemaParser()
	c := &Catalog{schemas: make(map[string]*schema.Schema, len(entries))}
	for _, entry := range entries {
		data, err := builtinFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in schema %s: %w", entry.Name(), err)
		}

		s, err := p.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("invalid built-in schema %s: %w", entry.Name(), err)
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		}
		c.schemas[s.Name] = s
	}

	logger.Debug("loaded %d built-in schemas", len(c.schemas))
	return c, nil
}

// Get returns the schema registered under name
func (c *Catalog) Get(name string) (*schema.Schema, error) {
	s, ok := c.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return s, nil
}

// Names returns the registered schema names in sorted order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve loads a schema from a reference: "builtin:<name>" for a built-in
// schema, otherwise a path to a definition file. A bare name that is not an
// existing file falls back to the built-in catalog.
func Resolve(ref string) (*schema.Schema, error) {
	if name, ok := strings.CutPrefix(ref, BuiltinPrefix); ok {
		c, err := Builtin()
		if err != nil {
			return nil, err
		}
		return c.Get(name)
	}

	if _, err := os.Stat(ref); err != nil {
		if c, cerr := Builtin(); cerr == nil {
			if s, gerr := c.Get(ref); gerr == nil {
				return s, nil
			}
		}
		return nil, fmt.Errorf("schema '%s' not found: %w", ref, err)
	}

	return parser.NewSchemaParser().ParseFile(ref)
}

// Entry is the outcome of loading one definition file
type Entry struct {
	Name   string
	Path   string
	Schema *schema.Schema
	Err    error
}

// LoadDir parses every YAML and JSON definition in dir concurrently.
// A file that fails to parse is reported through its Entry; only failures
// to read the directory itself are returned as an error. Entries are sorted
// by path.
func LoadDir(ctx context.Context, dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var paths []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(f.Name())) {
		case ".yaml", ".yml", ".json":
			paths = append(paths, filepath.Join(dir, f.Name()))
		}
	}
	sort.Strings(paths)

	entries := make([]Entry, len(paths))
	p := parser.NewSchemaParser()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range paths {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := p.ParseFile(file)
			entries[i] = Entry{
				Name:   strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
				Path:   file,
				Schema: s,
				Err:    err,
			}
			if err != nil {
				logger.Debug("failed to load %s: %v", file, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}
