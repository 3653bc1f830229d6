// Package tui provides an interactive settings browser for a parameter
// schema. Parameters appear and disappear as their conditions change.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/n1rna/paramschema/internal/schema"
)

// SaveFunc persists the values chosen in the browser
type SaveFunc func(values schema.Values) error

// SavedMsg reports a successful save
type SavedMsg struct{}

// ErrorMsg reports a failed command
type ErrorMsg string

type row struct {
	category int
	param    schema.Parameter
}

// Model represents the settings browser state
type Model struct {
	schema *schema.Schema
	values schema.Values
	onSave SaveFunc

	views  []schema.CategoryView
	rows   []row
	result schema.ValidationResult

	cursor    int
	optCursor map[string]int
	presetIdx int
	editing   bool
	input     textinput.Model
	status    string
	error     string
	width     int
	keys      keyMap
	help      help.Model
	quitting  bool
}

// NewModel creates a browser over s starting from values. A nil onSave
// disables saving.
func NewModel(s *schema.Schema, values schema.Values, onSave SaveFunc) Model {
	input := textinput.New()
	input.Prompt = "= "
	input.CharLimit = 256

	if values == nil {
		values = s.Defaults()
	}

	m := Model{
		schema:    s,
		values:    values.Clone(),
		onSave:    onSave,
		optCursor: map[string]int{},
		presetIdx: -1,
		input:     input,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
	m.refresh()
	return m
}

// Values returns a copy of the values currently chosen
func (m Model) Values() schema.Values {
	return m.values.Clone()
}

// Init returns initial commands for the application
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes the visible parameters and validation after a change,
// keeping the cursor on the same parameter when it is still visible
func (m *Model) refresh() {
	var currentID string
	if p := m.current(); p != nil {
		currentID = p.Common().ID
	}

	m.views = m.schema.CategorizedParameters(m.values)
	m.result = m.schema.Validate(m.values)

	m.rows = make([]row, 0, len(m.rows))
	for ci, view := range m.views {
		for _, param := range view.Parameters {
			m.rows = append(m.rows, row{category: ci, param: param})
		}
	}

	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	for i, r := range m.rows {
		if r.param.Common().ID == currentID {
			m.cursor = i
			break
		}
	}
}

func (m Model) current() schema.Parameter {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].param
}

func (m *Model) set(id string, value any) {
	if value == nil {
		delete(m.values, id)
	} else {
		m.values[id] = value
	}
	m.status = ""
	m.refresh()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case SavedMsg:
		m.status = "Saved"
		m.error = ""
		return m, nil

	case ErrorMsg:
		m.error = string(msg)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		param := m.current()
		m.editing = false
		m.input.Blur()
		if param == nil {
			return m, nil
		}

		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.set(param.Common().ID, nil)
			return m, nil
		}
		var value any
		if err := yaml.Unmarshal([]byte(text), &value); err != nil {
			value = text
		}
		m.set(param.Common().ID, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.error = ""
	param := m.current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		m.adjust(param, -1)

	case key.Matches(msg, m.keys.Right):
		m.adjust(param, 1)

	case key.Matches(msg, m.keys.Toggle):
		m.toggle(param)

	case key.Matches(msg, m.keys.Edit):
		if param == nil {
			break
		}
		if _, ok := param.(*schema.BooleanParameter); ok {
			m.toggle(param)
			break
		}
		m.editing = true
		m.input.SetValue("")
		if v, ok := m.values[param.Common().ID]; ok && v != nil {
			m.input.SetValue(schema.FormatValue(v))
		}
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Preset):
		m.applyNextPreset()

	case key.Matches(msg, m.keys.Reset):
		m.values = m.schema.Defaults()
		m.presetIdx = -1
		m.status = "Reset to defaults"
		m.refresh()

	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	}

	return m, nil
}

func (m *Model) adjust(param schema.Parameter, dir int) {
	if param == nil {
		return
	}
	id := param.Common().ID
	current := m.values[id]

	switch p := param.(type) {
	case *schema.NumberParameter:
		m.set(id, step(p.NumericSettings, current, dir))
	case *schema.RangeParameter:
		if !p.Dual {
			m.set(id, step(p.NumericSettings, current, dir))
		}
	case *schema.SelectParameter:
		m.set(id, cycle(p.Options, current, dir))
	case *schema.GroupParameter:
		m.set(id, cycle(p.Options, current, dir))
	case *schema.MultiselectParameter:
		if n := len(p.Options); n > 0 {
			m.optCursor[id] = (m.optCursor[id] + dir + n) % n
		}
	}
}

func (m *Model) toggle(param schema.Parameter) {
	if param == nil {
		return
	}
	id := param.Common().ID

	switch p := param.(type) {
	case *schema.BooleanParameter:
		on, _ := m.values[id].(bool)
		m.set(id, !on)
	case *schema.MultiselectParameter:
		if len(p.Options) == 0 {
			return
		}
		option := p.Options[m.optCursor[id]%len(p.Options)]
		m.set(id, toggleItem(p.Options, m.values[id], option.Value))
	}
}

func (m *Model) applyNextPreset() {
	if len(m.schema.Presets) == 0 {
		m.status = "No presets defined"
		return
	}
	m.presetIdx = (m.presetIdx + 1) % len(m.schema.Presets)
	preset := m.schema.Presets[m.presetIdx]
	for id, value := range preset.Values {
		m.values[id] = value
	}
	m.refresh()
	m.status = "Applied preset " + preset.Label
}

func (m Model) save() tea.Cmd {
	if m.onSave == nil {
		return func() tea.Msg { return ErrorMsg("saving is not enabled; pass --save <profile>") }
	}
	if !m.result.IsValid {
		return func() tea.Msg { return ErrorMsg("fix the validation errors before saving") }
	}
	values := m.values.Clone()
	onSave := m.onSave
	return func() tea.Msg {
		if err := onSave(values); err != nil {
			return ErrorMsg(err.Error())
		}
		return SavedMsg{}
	}
}

// View renders the browser
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := m.schema.Name
	if title == "" {
		title = "Parameters"
	}
	b.WriteString(titleStyle.Render(title))
	if m.schema.Description != "" {
		b.WriteString("\n" + subtitleStyle.Render(m.schema.Description))
	}
	b.WriteString("\n")

	lastCategory := -1
	for i, r := range m.rows {
		if r.category != lastCategory {
			view := m.views[r.category]
			b.WriteString("\n" + categoryStyle.Render(view.Label) + "\n")
			lastCategory = r.category
		}
		b.WriteString(m.renderRow(r.param, i == m.cursor) + "\n")
	}
	if len(m.rows) == 0 {
		b.WriteString("\n" + noItemsStyle.Render("No visible parameters") + "\n")
	}

	if m.editing {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	b.WriteString("\n")
	if m.result.IsValid {
		b.WriteString(validStyle.Render("✓ valid"))
	} else {
		for _, e := range m.result.Errors {
			b.WriteString(errorStyle.Render("✗ "+e) + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + subtitleStyle.Render(m.status))
	}
	if m.error != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.error))
	}

	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) renderRow(param schema.Parameter, selected bool) string {
	base := param.Common()
	cursor := " "
	if selected {
		cursor = ">"
	}

	label := base.Label
	if label == "" {
		label = base.ID
	}
	if base.Required {
		label += "*"
	}

	var value string
	switch p := param.(type) {
	case *schema.BooleanParameter:
		value = "off"
		if on, _ := m.values[base.ID].(bool); on {
			value = "on"
		}
	case *schema.MultiselectParameter:
		parts := make([]string, 0, len(p.Options))
		for i, o := range p.Options {
			mark := "[ ]"
			if isSelected(m.values[base.ID], o.Value) {
				mark = "[x]"
			}
			text := mark + " " + optionLabel(o)
			if selected && i == m.optCursor[base.ID]%len(p.Options) {
				text = selectedItemStyle.Render(text)
			}
			parts = append(parts, text)
		}
		value = strings.Join(parts, "  ")
	default:
		value = "-"
		if v, ok := m.values[base.ID]; ok && v != nil {
			value = schema.FormatValue(v)
		}
		if n, ok := numericUnit(param); ok && value != "-" {
			value += " " + n
		}
	}

	line := fmt.Sprintf("%s %-24s %s", cursor, label, value)
	if selected {
		return selectedItemStyle.Render(line)
	}
	return normalItemStyle.Render(line)
}

func optionLabel(o schema.Option) string {
	if o.Label != "" {
		return o.Label
	}
	return schema.FormatValue(o.Value)
}

func numericUnit(param schema.Parameter) (string, bool) {
	switch p := param.(type) {
	case *schema.NumberParameter:
		return p.Unit, p.Unit != ""
	case *schema.RangeParameter:
		return p.Unit, p.Unit != ""
	}
	return "", false
}

// Styles
var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	categoryStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	validStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	normalItemStyle   = lipgloss.NewStyle()
	noItemsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
)
