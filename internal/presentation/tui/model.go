package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/application/validation"
	"github.com/labomak/dashboard/pkg/apperror"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeList Mode = iota
	ModeForm
	ModeSearch
	ModeConfirmDelete
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Model is the bubbletea model of the terminal dashboard. It renders the
// shell's active module and forwards every action to it.
type Model struct {
	ctx   context.Context
	shell *dashboard.Shell
	keys  KeyMap
	help  help.Model

	mode   Mode
	busy   bool
	width  int
	table  table.Model
	keysOf []int64
	search textinput.Model

	form    dashboard.FormView
	fields  []dashboard.FieldView
	inputs  []textinput.Model
	focus   int
	pending int64

	status     string
	statusKind statusKind
}

// New builds the model over shell. Init activates the home module.
func New(ctx context.Context, shell *dashboard.Shell) Model {
	search := textinput.New()
	search.Prompt = "Ara: "
	search.CharLimit = 100

	t := table.New(table.WithFocused(true), table.WithHeight(tableHeight))

	return Model{
		ctx:    ctx,
		shell:  shell,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		table:  t,
		search: search,
	}
}

func (m Model) Init() tea.Cmd {
	return activateCmd(m.ctx, m.shell, dashboard.ModuleHome)
}

// Mode reports the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Status is the last notification shown in the status line.
func (m Model) Status() string { return m.status }

func (m Model) entity() (dashboard.EntityModule, bool) {
	mod, ok := m.shell.Module(m.shell.Active())
	if !ok {
		return nil, false
	}
	em, ok := mod.(dashboard.EntityModule)
	return em, ok
}

func (m Model) home() (*dashboard.Home, bool) {
	mod, ok := m.shell.Module(dashboard.ModuleHome)
	if !ok || m.shell.Active() != dashboard.ModuleHome {
		return nil, false
	}
	h, ok := mod.(*dashboard.Home)
	return h, ok
}

func (m *Model) setError(err error) {
	m.status = apperror.GetAppError(err).Message
	m.statusKind = statusError
}

func (m *Model) setSuccess(text string) {
	m.status = text
	m.statusKind = statusSuccess
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
		}
		m.sync()
		return m, nil

	case submittedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			m.syncForm()
			return m, nil
		}
		m.setSuccess(msg.notice)
		m.sync()
		return m, nil

	case deletedMsg:
		m.busy = false
		m.mode = ModeList
		m.pending = 0
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setSuccess("Kayıt silindi")
		}
		m.refreshTable()
		return m, nil

	case probedMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.setError(msg.err)
		case msg.result.State == validation.ProbeValid:
			m.setSuccess(fmt.Sprintf("Görsel geçerli: %s %dx%d", msg.result.Format, msg.result.Width, msg.result.Height))
		default:
			m.status = "Görsel yüklenemedi: " + msg.result.Error
			m.statusKind = statusError
		}
		m.syncForm()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case ModeForm:
			return m.updateForm(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// quit releases every open form, so reserved offer numbers are freed.
func (m Model) quit() tea.Cmd {
	for _, k := range m.shell.Modules() {
		if mod, ok := m.shell.Module(k); ok {
			if em, ok := mod.(dashboard.EntityModule); ok {
				em.CancelForm(m.ctx)
			}
		}
	}
	return tea.Quit
}

// sync re-reads the active module after an asynchronous step.
func (m *Model) sync() {
	em, ok := m.entity()
	if !ok {
		m.mode = ModeList
		m.keysOf = nil
		return
	}
	if isFormTab(em) {
		m.mode = ModeForm
		m.syncForm()
		return
	}
	m.mode = ModeList
	m.refreshTable()
}

func isFormTab(em dashboard.EntityModule) bool {
	for _, t := range em.Tabs() {
		if t.Key == em.CurrentTab() {
			return t.Form
		}
	}
	return false
}

func (m *Model) refreshTable() {
	em, ok := m.entity()
	if !ok {
		return
	}
	view := em.Table()
	cols := make([]table.Column, len(view.Headers))
	for i, h := range view.Headers {
		width := defaultColumnWidth
		if i < len(view.Widths) && view.Widths[i] > 0 {
			width = view.Widths[i]
		}
		cols[i] = table.Column{Title: h, Width: width}
	}
	rows := make([]table.Row, len(view.Rows))
	for i, r := range view.Rows {
		rows[i] = table.Row(r)
	}
	// Rows must never be wider than the columns while they are swapped.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
	m.keysOf = view.Keys
}

// syncForm rebuilds the inputs from the open form, keeping the focus.
func (m *Model) syncForm() {
	em, ok := m.entity()
	if !ok {
		return
	}
	view, open := em.Form()
	if !open {
		m.inputs, m.fields = nil, nil
		return
	}
	m.form = view
	m.fields = append([]dashboard.FieldView(nil), view.Fields...)
	for _, item := range view.Items {
		m.fields = append(m.fields, item...)
	}
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 500
		in.SetValue(f.Value)
		m.inputs[i] = in
	}
	if m.focus >= len(m.inputs) || (len(m.fields) > 0 && m.fields[m.focus].ReadOnly) {
		m.focus = m.nextEditable(-1, 1)
	}
	if m.focus >= 0 && m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
}

// refreshFormMeta updates errors and the summary without touching inputs.
func (m *Model) refreshFormMeta() {
	em, ok := m.entity()
	if !ok {
		return
	}
	if view, open := em.Form(); open {
		m.form = view
	}
}

// nextEditable walks from i in direction dir, wrapping, to an editable field.
func (m Model) nextEditable(i, dir int) int {
	n := len(m.fields)
	for step := 1; step <= n; step++ {
		j := ((i+dir*step)%n + n) % n
		if !m.fields[j].ReadOnly {
			return j
		}
	}
	return 0
}

func (m Model) focusedName() string {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return ""
	}
	return m.fields[m.focus].Name
}

// blurFocused commits the focused input and runs its field validation.
func (m *Model) blurFocused(em dashboard.EntityModule) {
	name := m.focusedName()
	if name == "" || m.fields[m.focus].ReadOnly {
		return
	}
	if err := em.SetField(name, m.inputs[m.focus].Value()); err != nil {
		m.setError(err)
		return
	}
	_ = em.BlurField(name)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	em, ok := m.entity()
	if !ok {
		m.mode = ModeList
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		em.CancelForm(m.ctx)
		m.inputs, m.fields = nil, nil
		m.status, m.statusKind = "Form kapatıldı", statusInfo
		if tab, ok := firstListTab(em); ok {
			m.busy = true
			return m, switchTabCmd(m.ctx, em, tab)
		}
		m.mode = ModeList
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.blurFocused(em)
		m.busy = true
		m.status, m.statusKind = "Kaydediliyor...", statusInfo
		return m, submitCmd(m.ctx, em)

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		if len(m.fields) == 0 {
			return m, nil
		}
		m.blurFocused(em)
		dir := 1
		if key.Matches(msg, m.keys.PrevField) {
			dir = -1
		}
		m.focus = m.nextEditable(m.focus, dir)
		m.syncForm()
		return m, nil

	case key.Matches(msg, m.keys.AddItem):
		m.blurFocused(em)
		if em.AddItem() < 0 {
			return m, nil
		}
		m.syncForm()
		return m, nil

	case key.Matches(msg, m.keys.RemoveItem):
		m.blurFocused(em)
		if i, ok := itemIndex(m.focusedName()); ok {
			em.RemoveItem(i)
		} else if n := len(m.form.Items); n > 0 {
			em.RemoveItem(n - 1)
		}
		m.focus = 0
		m.syncForm()
		return m, nil

	case key.Matches(msg, m.keys.Probe):
		m.blurFocused(em)
		m.busy = true
		m.status, m.statusKind = "Görsel test ediliyor...", statusInfo
		return m, probeCmd(m.ctx, em)
	}

	if m.focus < 0 || m.focus >= len(m.inputs) || m.fields[m.focus].ReadOnly {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if err := em.SetField(m.focusedName(), m.inputs[m.focus].Value()); err != nil {
		m.setError(err)
	}
	m.refreshFormMeta()
	return m, cmd
}

func firstListTab(em dashboard.EntityModule) (string, bool) {
	for _, t := range em.Tabs() {
		if !t.Form {
			return t.Key, true
		}
	}
	return "", false
}

// itemIndex parses the item index out of a "kalemler[2].miktar" name.
func itemIndex(name string) (int, bool) {
	open, end := strings.IndexByte(name, '['), strings.IndexByte(name, ']')
	if open < 0 || end <= open+1 {
		return 0, false
	}
	i, err := strconv.Atoi(name[open+1 : end])
	return i, err == nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	em, ok := m.entity()
	if !ok {
		m.mode = ModeList
		return m, nil
	}
	switch msg.String() {
	case "enter", "esc":
		m.search.Blur()
		m.mode = ModeList
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	em.Search(m.search.Value())
	m.refreshTable()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	em, ok := m.entity()
	switch {
	case ok && key.Matches(msg, m.keys.Confirm):
		m.busy = true
		return m, deleteCmd(m.ctx, em, m.pending)
	case key.Matches(msg, m.keys.Cancel), msg.String() == "n", msg.String() == "h":
		m.mode = ModeList
		m.pending = 0
		m.status, m.statusKind = "Silme iptal edildi", statusInfo
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modules := m.shell.Modules()
	for i, b := range []key.Binding{m.keys.Module1, m.keys.Module2, m.keys.Module3, m.keys.Module4} {
		if key.Matches(msg, b) && i < len(modules) {
			m.busy = true
			m.status = ""
			return m, activateCmd(m.ctx, m.shell, modules[i])
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.busy = true
		return m, activateCmd(m.ctx, m.shell, m.shell.Active())
	}

	em, ok := m.entity()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
		tabs := em.Tabs()
		cur := 0
		for i, t := range tabs {
			if t.Key == em.CurrentTab() {
				cur = i
			}
		}
		dir := 1
		if key.Matches(msg, m.keys.PrevTab) {
			dir = -1
		}
		next := tabs[((cur+dir)%len(tabs)+len(tabs))%len(tabs)]
		m.busy = true
		return m, switchTabCmd(m.ctx, em, next.Key)

	case key.Matches(msg, m.keys.NextPage), key.Matches(msg, m.keys.PrevPage):
		page := em.Table().Page + 1
		if key.Matches(msg, m.keys.PrevPage) {
			page -= 2
		}
		em.SetPage(page)
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.search.SetValue(em.Criteria().Search)
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.New):
		for _, t := range em.Tabs() {
			if t.Form {
				m.busy = true
				m.focus = 0
				return m, switchTabCmd(m.ctx, em, t.Key)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if k, ok := m.selectedKey(); ok {
			m.busy = true
			m.focus = 0
			return m, editCmd(m.ctx, em, k)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if k, ok := m.selectedKey(); ok {
			m.pending = k
			m.mode = ModeConfirmDelete
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) selectedKey() (int64, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.keysOf) {
		return 0, false
	}
	return m.keysOf[i], true
}
