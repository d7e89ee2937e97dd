package tui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-runewidth"

	"github.com/kxue43/reel-renamer/naming"
	"github.com/kxue43/reel-renamer/rename"
	"github.com/kxue43/reel-renamer/session"
)

type (
	fieldItem struct {
		label string
		desc  string
		ti    textinput.Model
	}

	renameStepMsg struct {
		result rename.Result
		index  int
	}

	Model struct {
		help      help.Model
		session   *session.Session
		dump      io.Writer
		report    *rename.Report
		fields    []*fieldItem
		pending   []naming.Pair
		results   []rename.Result
		status    string
		table     table.Model
		progress  progress.Model
		index     int
		width     int
		statusErr bool
		navMode   bool
		renaming  bool
	}

	navModeKeyMap struct{}

	inputModeKeyMap struct{}

	renamingKeyMap struct{}
)

const (
	folderField = iota
	rollField
	prefixField
	dateField
)

const (
	defaultWidth = 80
	tableHeight  = 10
)

var (
	keys = struct {
		up         key.Binding
		down       key.Binding
		input      key.Binding
		finish     key.Binding
		preview    key.Binding
		rename     key.Binding
		reload     key.Binding
		scrollUp   key.Binding
		scrollDown key.Binding
		help       key.Binding
		quit       key.Binding
	}{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		input: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "edit field"),
		),
		finish: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "finish input"),
		),
		preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		reload: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "reload folder"),
		),
		scrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll preview up"),
		),
		scrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll preview down"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}

	palette = struct {
		magenta lipgloss.Color
		red     lipgloss.Color
		green   lipgloss.Color
		grey    lipgloss.Color
	}{
		magenta: lipgloss.Color("212"),
		red:     lipgloss.Color("196"),
		green:   lipgloss.Color("42"),
		grey:    lipgloss.Color("240"),
	}

	titleStyle       = lipgloss.NewStyle().Bold(true)
	highlightedStyle = lipgloss.NewStyle().Foreground(palette.magenta)
	errorStyle       = lipgloss.NewStyle().Foreground(palette.red)
	okStyle          = lipgloss.NewStyle().Foreground(palette.green)
	faintStyle       = lipgloss.NewStyle().Foreground(palette.grey)
)

func (navModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.preview, keys.rename, keys.help, keys.quit}
}

func (navModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down, keys.input},
		{keys.preview, keys.rename, keys.reload},
		{keys.scrollUp, keys.scrollDown},
		{keys.help, keys.quit},
	}
}

func (inputModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.finish, keys.quit}
}

func (inputModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.finish, keys.quit},
	}
}

func (renamingKeyMap) ShortHelp() []key.Binding {
	return nil
}

func (renamingKeyMap) FullHelp() [][]key.Binding {
	return nil
}

func newField(label, desc, value string, charLimit int) *fieldItem {
	ti := textinput.New()
	ti.CharLimit = charLimit
	ti.Width = 40
	ti.Prompt = " "
	ti.SetValue(value)

	return &fieldItem{label: label, desc: desc, ti: ti}
}

func (fi *fieldItem) View(highlighted bool) string {
	var b strings.Builder

	if highlighted {
		b.WriteString(highlightedStyle.Render("> "))
		b.WriteString(highlightedStyle.Render(fi.label + ":"))
	} else {
		b.WriteString("  ")
		b.WriteString(fi.label + ":")
	}

	b.WriteString(fi.ti.View())

	return b.String()
}

// InitialModel builds the program state over s. When dump is not nil every message is written to it.
func InitialModel(s *session.Session, dump io.Writer) Model {
	m := Model{
		session: s,
		dump:    dump,
		navMode: true,
		width:   defaultWidth,
		help:    help.New(),
		fields: []*fieldItem{
			folderField: newField("Folder", "Folder that holds the footage files. Finishing input loads it.", s.Folder(), 4096),
			rollField:   newField("Camera roll", "Code of the capture device or reel, placed first in every new name.", s.Template.CameraRoll, 64),
			prefixField: newField("Clip prefix", "Put before the digits of the original name, or before its zero-padded position.", s.Template.ClipPrefix, 64),
			dateField:   newField("Date", "Placed last, before the extension. Defaults to today as YYMMDD.", s.Template.Date, 64),
		},
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}

	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(palette.magenta).Bold(false)

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
		table.WithStyles(styles),
	)

	if s.Folder() != "" {
		m.setInfo(fmt.Sprintf("Loaded %d files", len(s.Files())))
	}

	m.setRows(s.Pairs())

	return m
}

func (m *Model) columns() []table.Column {
	nameWidth := max((m.width-12)/2, 10)

	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Original", Width: nameWidth},
		{Title: "New", Width: nameWidth},
	}
}

func (m *Model) setRows(pairs []naming.Pair) {
	cols := m.columns()
	rows := make([]table.Row, len(pairs))

	for i, pair := range pairs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			runewidth.Truncate(pair.Original, cols[1].Width, "…"),
			runewidth.Truncate(pair.New, cols[2].Width, "…"),
		}
	}

	m.table.SetRows(rows)
}

func (m *Model) setInfo(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) syncTemplate() {
	m.session.Template = naming.Template{
		CameraRoll: m.fields[rollField].ti.Value(),
		ClipPrefix: m.fields[prefixField].ti.Value(),
		Date:       m.fields[dateField].ti.Value(),
	}
}

func (m *Model) load(folder string) {
	n, err := m.session.Load(folder)
	if err != nil {
		m.setError(fmt.Errorf("failed to load files: %w", err))
		m.fields[folderField].ti.SetValue(m.session.Folder())

		return
	}

	m.report = nil
	m.setRows(m.session.Pairs())
	m.setInfo(fmt.Sprintf("Loaded %d files", n))
}

func (m *Model) preview() {
	m.syncTemplate()

	pairs, err := m.session.Preview()
	if err != nil {
		m.setError(err)

		return
	}

	m.report = nil
	m.setRows(pairs)
	m.setInfo(fmt.Sprintf("Previewing %d files", len(pairs)))
}

func (m *Model) startRename() tea.Cmd {
	pairs := m.session.Pairs()
	if len(pairs) == 0 {
		m.setError(session.ErrNoPreview)

		return nil
	}

	m.renaming = true
	m.pending = pairs
	m.results = make([]rename.Result, 0, len(pairs))
	m.report = nil
	m.help.ShowAll = false
	m.setInfo(fmt.Sprintf("Renaming %d files ...", len(pairs)))

	return m.renameStep(0)
}

// renameStep renames the i-th pending file. Only one step is in flight at a time.
func (m *Model) renameStep(i int) tea.Cmd {
	folder := m.session.Folder()
	renamer := m.session.Renamer()
	pair := m.pending[i]

	return func() tea.Msg {
		return renameStepMsg{index: i, result: renamer.Rename(folder, pair)}
	}
}

func (m *Model) renameStepDone(msg renameStepMsg) tea.Cmd {
	m.results = append(m.results, msg.result)

	if next := msg.index + 1; next < len(m.pending) {
		return m.renameStep(next)
	}

	report, err := m.session.Complete(m.results)

	m.report = &report
	m.renaming = false
	m.pending = nil
	m.results = nil

	m.setRows(m.session.Pairs())

	if err != nil {
		m.setError(fmt.Errorf("failed to refresh file list: %w", err))
	} else if report.Failed() > 0 {
		m.setError(errors.New(report.Summary()))
	} else {
		m.setInfo(report.Summary())
	}

	return nil
}

func (m *Model) moveUp() {
	if m.index > 0 {
		m.index -= 1
	}
}

func (m *Model) moveDown() {
	if m.index < len(m.fields)-1 {
		m.index += 1
	}
}

func (m *Model) finishInput() {
	m.fields[m.index].ti.Blur()

	m.navMode = true

	if m.index == folderField {
		m.load(m.fields[folderField].ti.Value())

		return
	}

	m.syncTemplate()

	if len(m.session.Pairs()) > 0 {
		m.setInfo("Template changed, press p to refresh the preview")
	}
}

func (m *Model) navModeUpdate(msg tea.KeyMsg) (cmd tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		m.moveUp()

		return nil
	case key.Matches(msg, keys.down):
		m.moveDown()

		return nil
	case key.Matches(msg, keys.input):
		m.navMode = false
		m.help.ShowAll = false

		return m.fields[m.index].ti.Focus()
	case key.Matches(msg, keys.preview):
		m.preview()

		return nil
	case key.Matches(msg, keys.rename):
		return m.startRename()
	case key.Matches(msg, keys.reload):
		m.load(m.session.Folder())

		return nil
	case key.Matches(msg, keys.scrollUp), key.Matches(msg, keys.scrollDown):
		m.table, cmd = m.table.Update(msg)

		return cmd
	default:
		return nil
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		m.table.SetColumns(m.columns())
		m.setRows(m.session.Pairs())

		return m, nil
	case renameStepMsg:
		cmd = m.renameStepDone(msg)

		return m, cmd
	case tea.KeyMsg:
		switch {
		case m.renaming:
			// A started batch runs to completion.
			return m, nil
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case m.navMode && key.Matches(msg, keys.help):
			m.help.ShowAll = !m.help.ShowAll

			return m, nil
		case m.navMode:
			cmd = m.navModeUpdate(msg)

			return m, cmd
		case key.Matches(msg, keys.finish):
			m.finishInput()

			return m, nil
		default:
		}
	}

	if m.navMode {
		return m, nil
	}

	m.fields[m.index].ti, cmd = m.fields[m.index].ti.Update(msg)

	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Footage Renamer"))
	b.WriteString("\n\n")

	b.WriteString(faintStyle.Render(m.fields[m.index].desc))
	b.WriteString("\n\n")

	for i, field := range m.fields {
		b.WriteString(field.View(i == m.index))
		b.WriteRune('\n')
	}

	b.WriteRune('\n')

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}

		b.WriteString("\n\n")
	}

	if len(m.table.Rows()) > 0 {
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
	} else {
		b.WriteString(faintStyle.Render("No preview yet."))
		b.WriteString("\n\n")
	}

	if m.renaming {
		done := len(m.results)
		total := len(m.pending)

		b.WriteString(m.progress.ViewAs(float64(done) / float64(total)))
		b.WriteString(fmt.Sprintf(" %d/%d", done, total))
		b.WriteString("\n\n")
	}

	if m.report != nil {
		if msgs := m.report.Errors(); len(msgs) > 0 {
			b.WriteString("Errors:\n")

			for _, msg := range msgs {
				b.WriteString(errorStyle.Render(msg))
				b.WriteRune('\n')
			}

			b.WriteRune('\n')
		}
	}

	switch {
	case m.renaming:
		b.WriteString(m.help.View(renamingKeyMap{}))
	case m.navMode:
		b.WriteString(m.help.View(navModeKeyMap{}))
	default:
		b.WriteString(m.help.View(inputModeKeyMap{}))
	}

	b.WriteRune('\n')

	return b.String()
}

// WithFolder fills the folder field and loads it. A failed load shows up as the status line.
func (m Model) WithFolder(folder string) Model {
	m.fields[folderField].ti.SetValue(folder)

	m.load(folder)

	return m
}

// Run blocks until the user quits the program.
func Run(m Model) error {
	p := tea.NewProgram(m)

	_, err := p.Run()

	return err
}
