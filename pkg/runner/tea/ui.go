package teaui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/runner/tea/internal/theme"
	"tableflip.dev/moodlog/pkg/runner/tea/internal/views/report"
	"tableflip.dev/moodlog/pkg/store"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

type mode int

const (
	modeNormal mode = iota
	modeMoodSelect
	modeNote
	modeHelp
)

var modeNames = map[mode]string{
	modeNormal:     "NORMAL",
	modeMoodSelect: "MOOD",
	modeNote:       "NOTE",
	modeHelp:       "HELP",
}

const (
	normalHelp = "a add, 1-9 quick add, enter select, n note, dd delete, r refresh, ? help, q quit"
	fullHelp   = "Keys: j/k or ↑/↓ move, g/G top/bottom, a add mood, 1-9 add that mood, enter/space select, esc clear selection, n edit note, dd delete, r refresh week, q quit"

	ddWindow = 600 * time.Millisecond
)

// entry item for the journal list
type entryItem struct {
	e        *entry.Entry
	selected bool
	accent   lipgloss.Style
}

func (it entryItem) Title() string {
	marker := "  "
	if it.selected {
		marker = "● "
	}
	line := fmt.Sprintf("%s%s  %s", marker, it.e.Timestamp, it.accent.Render(it.e.Mood))
	if it.e.Note != "" {
		line += "  " + it.e.Note
	}
	return line
}
func (it entryItem) Description() string { return "" }
func (it entryItem) FilterValue() string { return it.e.Mood + " " + it.e.Note }

// mood item for the add picker
type moodItem struct {
	mood palette.Mood
	key  int
}

func (it moodItem) Title() string       { return fmt.Sprintf("%d  %s", it.key, it.mood.Label) }
func (it moodItem) Description() string { return "" }
func (it moodItem) FilterValue() string { return it.mood.Label }

// messages
type entriesMsg struct{ snap store.Snapshot }
type weeklyMsg struct{ agg viewmodel.Aggregate }
type selectionMsg struct{ e *entry.Entry }
type writeErrMsg struct{ err error }
type closedMsg struct{ stream string }

// Model contains UI state
type Model struct {
	coord *viewmodel.Coordinator
	moods palette.Palette
	ctx   context.Context
	theme theme.Theme

	entries   <-chan store.Snapshot
	weekly    <-chan viewmodel.Aggregate
	selection <-chan *entry.Entry

	mode mode

	entList  list.Model
	moodList list.Model
	input    textinput.Model
	report   *report.Model

	selected *entry.Entry
	editing  *entry.Entry
	status   string
	err      error

	awaitingDD bool
	lastDTime  time.Time

	termWidth  int
	termHeight int
}

// New creates a UI model following coord until ctx is done.
func New(ctx context.Context, coord *viewmodel.Coordinator, moods palette.Palette) Model {
	if len(moods) == 0 {
		moods = palette.Palette(palette.Default())
	}
	th := theme.Default()

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	entList := list.New([]list.Item{}, d, 60, 20)
	entList.Title = "Entries"
	entList.SetShowHelp(false)
	entList.SetShowStatusBar(false)
	entList.SetFilteringEnabled(false)
	entList.DisableQuitKeybindings()

	items := make([]list.Item, 0, len(moods))
	for i, mood := range moods {
		items = append(items, moodItem{mood: mood, key: i + 1})
	}
	moodList := list.New(items, d, 30, len(moods)+2)
	moodList.Title = "How do you feel?"
	moodList.SetShowHelp(false)
	moodList.SetShowStatusBar(false)
	moodList.SetFilteringEnabled(false)
	moodList.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "Add a note"
	ti.CharLimit = 256
	ti.Prompt = ""

	return Model{
		coord:     coord,
		moods:     moods,
		ctx:       ctx,
		theme:     th,
		entries:   coord.Entries(ctx),
		weekly:    coord.WeeklyAggregate(ctx),
		selection: coord.Selection().Watch(ctx),
		mode:      modeNormal,
		entList:   entList,
		moodList:  moodList,
		input:     ti,
		report:    report.New(th, moods),
		status:    normalHelp,
	}
}

// Init waits on every live stream.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitEntries(m.entries),
		waitWeekly(m.weekly),
		waitSelection(m.selection),
		waitErrors(m.ctx, m.coord.Errors()),
	)
}

func waitEntries(ch <-chan store.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return closedMsg{"entries"}
		}
		return entriesMsg{snap}
	}
}

func waitWeekly(ch <-chan viewmodel.Aggregate) tea.Cmd {
	return func() tea.Msg {
		agg, ok := <-ch
		if !ok {
			return closedMsg{"weekly"}
		}
		return weeklyMsg{agg}
	}
}

func waitSelection(ch <-chan *entry.Entry) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return closedMsg{"selection"}
		}
		return selectionMsg{e}
	}
}

func waitErrors(ctx context.Context, ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return closedMsg{"errors"}
		case err := <-ch:
			return writeErrMsg{err}
		}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()

	case entriesMsg:
		if msg.snap.Err != nil {
			m.setError(msg.snap.Err)
			break
		}
		if cmd := m.setEntries(msg.snap.Entries); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, waitEntries(m.entries))

	case weeklyMsg:
		if msg.agg.Err != nil {
			m.setError(msg.agg.Err)
			break
		}
		m.report.SetData(msg.agg.Start, msg.agg.End, msg.agg.Counts)
		cmds = append(cmds, waitWeekly(m.weekly))

	case selectionMsg:
		m.selected = msg.e
		m.markSelection()
		cmds = append(cmds, waitSelection(m.selection))

	case writeErrMsg:
		m.setError(msg.err)
		cmds = append(cmds, waitErrors(m.ctx, m.coord.Errors()))

	case closedMsg:
		// streams close once ctx is done; nothing left to wait on.

	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress dispatches on the current mode. It reports whether the
// message was consumed.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	if msg.String() == "ctrl+c" {
		*cmds = append(*cmds, tea.Quit)
		return true
	}
	switch m.mode {
	case modeMoodSelect:
		return m.handleMoodKey(msg, cmds)
	case modeNote:
		return m.handleNoteKey(msg, cmds)
	case modeHelp:
		m.mode = modeNormal
		return true
	default:
		return m.handleNormalKey(msg, cmds)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	key := msg.String()
	if key != "d" {
		m.awaitingDD = false
	}
	switch key {
	case "q":
		*cmds = append(*cmds, tea.Quit)
	case "a", "o":
		m.mode = modeMoodSelect
		m.moodList.Select(0)
		m.status = "enter to log, esc to cancel"
	case "enter", "space":
		if e := m.currentEntry(); e != nil {
			if m.selected != nil && m.selected.ID == e.ID {
				m.coord.ClearSelection()
			} else {
				m.coord.SelectEntry(e)
			}
		}
	case "esc":
		m.coord.ClearSelection()
	case "n", "i":
		target := m.currentEntry()
		if m.selected != nil {
			target = m.selected
		}
		if target == nil {
			m.status = "Nothing to annotate"
			break
		}
		m.startNote(target, cmds)
	case "d":
		e := m.currentEntry()
		if e == nil {
			break
		}
		if m.awaitingDD && time.Since(m.lastDTime) < ddWindow {
			m.awaitingDD = false
			if m.selected != nil && m.selected.ID == e.ID {
				m.coord.ClearSelection()
			}
			m.coord.DeleteEntry(e)
			m.status = "Deleted " + e.Timestamp
			break
		}
		m.awaitingDD = true
		m.lastDTime = time.Now()
	case "r":
		m.coord.Refresh()
		m.status = "Refreshed"
	case "?":
		m.mode = modeHelp
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.moods) {
			m.addMood(m.moods[n-1])
			break
		}
		var cmd tea.Cmd
		m.entList, cmd = m.entList.Update(msg)
		*cmds = append(*cmds, cmd)
	}
	return true
}

func (m *Model) handleMoodKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	key := msg.String()
	switch key {
	case "esc", "q":
		m.mode = modeNormal
		m.status = normalHelp
	case "enter", "space":
		if it, ok := m.moodList.SelectedItem().(moodItem); ok {
			m.addMood(it.mood)
		}
		m.mode = modeNormal
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.moods) {
			m.addMood(m.moods[n-1])
			m.mode = modeNormal
			break
		}
		var cmd tea.Cmd
		m.moodList, cmd = m.moodList.Update(msg)
		*cmds = append(*cmds, cmd)
	}
	return true
}

func (m *Model) handleNoteKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.editing = nil
		m.mode = modeNormal
		m.status = normalHelp
	case "enter":
		e := m.editing.Clone()
		e.Note = strings.TrimSpace(m.input.Value())
		m.coord.UpdateEntry(e)
		if m.selected != nil && m.selected.ID == e.ID {
			m.coord.SelectEntry(e)
		}
		m.input.Blur()
		m.editing = nil
		m.mode = modeNormal
		m.status = "Note saved"
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
	}
	return true
}

func (m *Model) startNote(e *entry.Entry, cmds *[]tea.Cmd) {
	m.mode = modeNote
	m.editing = e.Clone()
	m.input.Reset()
	m.input.SetValue(e.Note)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	m.status = "enter to save, esc to cancel"
}

func (m *Model) addMood(mood palette.Mood) {
	e := m.coord.AddEntry(mood.Label)
	m.status = "Logged " + e.Mood
}

func (m *Model) setError(err error) {
	m.err = err
	m.status = err.Error()
}

func (m *Model) currentEntry() *entry.Entry {
	if len(m.entList.Items()) == 0 {
		return nil
	}
	it, ok := m.entList.SelectedItem().(entryItem)
	if !ok {
		return nil
	}
	return it.e
}

// setEntries replaces the list, keeping the cursor on the same entry when it
// is still present.
func (m *Model) setEntries(entries []*entry.Entry) tea.Cmd {
	var keep int64
	if cur := m.currentEntry(); cur != nil {
		keep = cur.ID
	}
	idx := m.entList.Index()

	items := make([]list.Item, 0, len(entries))
	for i, e := range entries {
		if keep != 0 && e.ID == keep {
			idx = i
		}
		items = append(items, m.item(e))
	}
	cmd := m.entList.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.entList.Select(idx)
	}
	m.entList.Title = fmt.Sprintf("Entries (%d)", len(items))
	return cmd
}

func (m *Model) markSelection() {
	items := m.entList.Items()
	for i, raw := range items {
		it, ok := raw.(entryItem)
		if !ok {
			continue
		}
		items[i] = m.item(it.e)
	}
	m.entList.SetItems(items)
}

func (m *Model) item(e *entry.Entry) entryItem {
	return entryItem{
		e:        e,
		selected: m.selected != nil && m.selected.ID == e.ID,
		accent:   theme.Accent(m.moods, e.Mood),
	}
}

// View renders the entry list beside the weekly summary with the mode overlay
// and footer below.
func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.entList.View(), " ", m.report.View())

	switch m.mode {
	case modeMoodSelect:
		body += "\n\n" + m.theme.List.Prompt.Render(m.moodList.View())
	case modeNote:
		body += "\n\n" + m.theme.List.Prompt.Render("Note: "+m.input.View())
	case modeHelp:
		body += "\n\n" + m.theme.Footer.Help.Italic(true).Render(fullHelp)
	}

	if m.selected != nil {
		body += "\n\n" + m.theme.List.Selected.Render("Selected: ") + m.selected.String()
	}

	return body + "\n\n" + m.footer()
}

func (m Model) footer() string {
	tag := m.theme.Footer.Mode.Render(modeNames[m.mode])
	status := m.theme.Footer.Status.Render(m.status)
	if m.err != nil && m.status == m.err.Error() {
		status = m.theme.Footer.Error.Render(m.status)
	}
	return tag + " " + status
}

// applySizes recalculates pane sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	right := m.termWidth / 3
	if right < 32 {
		right = 32
	}
	if right > 48 {
		right = 48
	}
	left := m.termWidth - right - 1
	if left < 30 {
		left = 30
	}
	// room for overlays and the footer
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.entList.SetSize(left, height)
	m.moodList.SetSize(left, len(m.moods)+2)
	m.report.SetWidth(right)
}
