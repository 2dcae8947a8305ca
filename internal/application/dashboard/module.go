package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/application/validation"
	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/internal/domain/enum"
)

var (
	ErrUnknownTab = errors.New("bilinmeyen sekme")
	ErrNoForm     = errors.New("açık form yok")
)

// Tab is one sub view of an entity module: a list, optionally pinned to a
// filter, or the create/edit form.
type Tab struct {
	Key    string
	Label  string
	Form   bool
	Pinned Criteria
}

// TableView is a rendered page of a list tab.
type TableView struct {
	Headers    []string
	Widths     []int
	Rows       [][]string
	Keys       []int64
	Page       int
	TotalPages int
	Total      int64
	Loaded     int
}

// FieldView is one rendered form input.
type FieldView struct {
	Name     string
	Label    string
	Value    string
	Error    string
	ReadOnly bool
}

// FormView is a rendered form.
type FormView struct {
	Mode       Mode
	Title      string
	Fields     []FieldView
	Items      [][]FieldView
	ItemLabel  string
	CanSubmit  bool
	Submitting bool
	Summary    string
	Probe      validation.ProbeState
	HasImage   bool
}

// EntityModule is the type-erased surface of a customers, products or
// offers module as the shell and the terminal UI drive it.
type EntityModule interface {
	Module
	Title() string
	Tabs() []Tab
	CurrentTab() string
	SwitchTab(ctx context.Context, key string) error

	Table() TableView
	Search(term string)
	Criteria() Criteria
	ApplyFilter(c Criteria)
	SetPage(page int) int
	Delete(ctx context.Context, key int64) error

	Form() (FormView, bool)
	Edit(ctx context.Context, key int64) error
	SetField(name, value string) error
	BlurField(name string) error
	AddItem() int
	RemoveItem(i int)
	ProbeImage(ctx context.Context) (validation.ProbeResult, error)
	Submit(ctx context.Context) (string, error)
	CancelForm(ctx context.Context)
}

// Entity is the EntityModule of one entity type.
type Entity[E any] struct {
	desc    *Descriptor[E]
	tabs    []Tab
	prober  *validation.ImageProber
	summary func(*FormController[E]) string

	mu      sync.Mutex
	current string
	lists   map[string]*ListController[E]
	form    *FormController[E]
}

// NewEntityModule builds a module over desc. The first tab is shown on the
// first Load.
func NewEntityModule[E any](desc *Descriptor[E], tabs []Tab, prober *validation.ImageProber) *Entity[E] {
	m := &Entity[E]{
		desc:    desc,
		tabs:    tabs,
		prober:  prober,
		current: tabs[0].Key,
		lists:   map[string]*ListController[E]{},
	}
	for _, t := range tabs {
		if !t.Form {
			m.lists[t.Key] = NewListController(desc, WithPinned(t.Pinned))
		}
	}
	return m
}

func (m *Entity[E]) Key() string   { return m.desc.Module }
func (m *Entity[E]) Title() string { return TitleOf(m.desc.Module).Title }
func (m *Entity[E]) Tabs() []Tab   { return append([]Tab(nil), m.tabs...) }

func (m *Entity[E]) CurrentTab() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Load re-enters the current tab, refreshing it.
func (m *Entity[E]) Load(ctx context.Context) error {
	return m.SwitchTab(ctx, m.CurrentTab())
}

func (m *Entity[E]) tab(key string) (Tab, bool) {
	for _, t := range m.tabs {
		if t.Key == key {
			return t, true
		}
	}
	return Tab{}, false
}

// SwitchTab shows a tab. List tabs are re-fetched; the form tab keeps an
// open create form and otherwise starts a new one.
func (m *Entity[E]) SwitchTab(ctx context.Context, key string) error {
	t, ok := m.tab(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTab, key)
	}

	if !t.Form {
		m.mu.Lock()
		m.current = key
		list := m.lists[key]
		m.mu.Unlock()
		list.Refresh(ctx)
		return nil
	}

	m.mu.Lock()
	form := m.form
	m.mu.Unlock()
	if form == nil || form.Closed() || form.Mode() == ModeEdit {
		if form != nil && !form.Closed() {
			form.Cancel(ctx)
		}
		created, err := NewCreateForm(ctx, m.desc, m.defaultList())
		if err != nil {
			return err
		}
		form = created
	}

	m.mu.Lock()
	m.form = form
	m.current = key
	m.mu.Unlock()
	return nil
}

func (m *Entity[E]) defaultList() *ListController[E] {
	for _, t := range m.tabs {
		if !t.Form {
			return m.lists[t.Key]
		}
	}
	return nil
}

func (m *Entity[E]) formTab() string {
	for _, t := range m.tabs {
		if t.Form {
			return t.Key
		}
	}
	return ""
}

func (m *Entity[E]) currentList() *ListController[E] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.lists[m.current]; ok {
		return l
	}
	return m.defaultList()
}

func (m *Entity[E]) Table() TableView {
	list := m.currentList()
	page := list.Page()
	view := TableView{
		Headers:    m.desc.Headers(),
		Rows:       make([][]string, 0, len(page.Items)),
		Keys:       make([]int64, 0, len(page.Items)),
		Page:       page.Pagination.CurrentPage,
		TotalPages: page.Pagination.TotalPages,
		Total:      page.Pagination.Total,
		Loaded:     list.Len(),
	}
	for _, c := range m.desc.Columns {
		view.Widths = append(view.Widths, c.Width)
	}
	for _, e := range page.Items {
		view.Rows = append(view.Rows, m.desc.Row(e))
		view.Keys = append(view.Keys, m.desc.Key(e))
	}
	return view
}

// Search replaces the free-text term, keeping the other criteria.
func (m *Entity[E]) Search(term string) {
	list := m.currentList()
	c := list.Criteria()
	c.Search = term
	list.ApplyFilter(c)
}

func (m *Entity[E]) Criteria() Criteria     { return m.currentList().Criteria() }
func (m *Entity[E]) ApplyFilter(c Criteria) { m.currentList().ApplyFilter(c) }
func (m *Entity[E]) SetPage(page int) int   { return m.currentList().SetPage(page) }

// Delete removes a row of the current list and refreshes it.
func (m *Entity[E]) Delete(ctx context.Context, key int64) error {
	return m.currentList().Delete(ctx, key)
}

// Edit opens the form tab on an existing row.
func (m *Entity[E]) Edit(ctx context.Context, key int64) error {
	form, err := NewEditForm(ctx, m.desc, m.currentList(), key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	previous := m.form
	m.form = form
	m.current = m.formTab()
	m.mu.Unlock()
	if previous != nil && previous.Mode() == ModeCreate && !previous.Closed() {
		previous.Cancel(ctx)
	}
	return nil
}

func (m *Entity[E]) openForm() (*FormController[E], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.form == nil || m.form.Closed() {
		return nil, ErrNoForm
	}
	return m.form, nil
}

func (m *Entity[E]) Form() (FormView, bool) {
	f, err := m.openForm()
	if err != nil {
		return FormView{}, false
	}
	values, errs := f.Values(), f.Errors()
	view := FormView{
		Mode:       f.Mode(),
		CanSubmit:  f.CanSubmit(),
		Submitting: f.Submitting(),
		Probe:      f.ProbeState(),
		HasImage:   m.desc.ImageField != "",
	}
	if f.Mode() == ModeEdit {
		view.Title = m.desc.Label + " Düzenle"
	} else {
		view.Title = "Yeni " + m.desc.Label
	}
	fieldView := func(field Field) FieldView {
		return FieldView{
			Name:     field.Name,
			Label:    field.Label,
			Value:    values[field.Name],
			Error:    errs[field.Name],
			ReadOnly: field.ReadOnly(f.Mode()),
		}
	}
	for _, field := range m.desc.Fields {
		if field.Key && f.Mode() == ModeCreate {
			continue
		}
		view.Fields = append(view.Fields, fieldView(field))
	}
	if g := m.desc.Group; g != nil {
		view.ItemLabel = g.Label
		for i := 0; i < f.Items(); i++ {
			row := make([]FieldView, 0, len(g.Fields))
			for _, field := range g.Fields {
				field.Name = g.ItemName(i, field.Name)
				row = append(row, fieldView(field))
			}
			view.Items = append(view.Items, row)
		}
	}
	if m.summary != nil {
		view.Summary = m.summary(f)
	}
	return view, true
}

func (m *Entity[E]) SetField(name, value string) error {
	f, err := m.openForm()
	if err != nil {
		return err
	}
	return f.Set(name, value)
}

func (m *Entity[E]) BlurField(name string) error {
	f, err := m.openForm()
	if err != nil {
		return err
	}
	_, err = f.Blur(name)
	return err
}

func (m *Entity[E]) AddItem() int {
	f, err := m.openForm()
	if err != nil {
		return -1
	}
	return f.AddItem()
}

func (m *Entity[E]) RemoveItem(i int) {
	if f, err := m.openForm(); err == nil {
		f.RemoveItem(i)
	}
}

func (m *Entity[E]) ProbeImage(ctx context.Context) (validation.ProbeResult, error) {
	f, err := m.openForm()
	if err != nil {
		return validation.ProbeResult{}, err
	}
	if m.desc.ImageField == "" || m.prober == nil {
		return validation.ProbeResult{}, fmt.Errorf("%s formunda görsel alanı yok", m.desc.Label)
	}
	return f.ProbeImage(ctx, m.prober), nil
}

// Submit sends the open form. On success it returns the message to show and
// moves to the list tab the saved row belongs to.
func (m *Entity[E]) Submit(ctx context.Context) (string, error) {
	f, err := m.openForm()
	if err != nil {
		return "", err
	}
	mode := f.Mode()
	saved, err := f.Submit(ctx)
	if err != nil {
		return "", err
	}

	target := m.listTabFor(*saved)
	m.mu.Lock()
	m.current = target
	list := m.lists[target]
	m.mu.Unlock()
	if list != m.defaultList() {
		list.Refresh(ctx)
	}

	if mode == ModeEdit {
		return m.desc.Label + " başarıyla güncellendi", nil
	}
	return m.desc.Label + " başarıyla eklendi", nil
}

// listTabFor picks the first list tab whose pinned criteria accept e.
func (m *Entity[E]) listTabFor(e E) string {
	rec, err := gateway.Encode(e)
	for _, t := range m.tabs {
		if t.Form {
			continue
		}
		if err != nil || t.Pinned.Match(rec, nil) {
			return t.Key
		}
	}
	for _, t := range m.tabs {
		if !t.Form {
			return t.Key
		}
	}
	return m.tabs[0].Key
}

// CancelForm discards the open form and returns to the default list.
func (m *Entity[E]) CancelForm(ctx context.Context) {
	m.mu.Lock()
	f := m.form
	m.form = nil
	m.mu.Unlock()
	if f != nil {
		f.Cancel(ctx)
	}
}

// Lists exposes the typed list controller of a tab.
func (m *Entity[E]) List(tab string) (*ListController[E], bool) {
	l, ok := m.lists[tab]
	return l, ok
}

// CustomerTabs, ProductTabs and OfferTabs are the sub views of each module.
func CustomerTabs() []Tab {
	return []Tab{
		{Key: "musteri-listesi", Label: "Müşteri Listesi"},
		{Key: "yeni-musteri", Label: "Yeni Müşteri", Form: true},
	}
}

func ProductTabs() []Tab {
	return []Tab{
		{Key: "urun-listesi", Label: "Ürün Listesi"},
		{Key: "yeni-urun", Label: "Yeni Ürün", Form: true},
	}
}

func OfferTabs() []Tab {
	return []Tab{
		{Key: "yeni-teklif", Label: "Yeni Teklif", Form: true},
		{Key: "gonderilen", Label: "Gönderilen Teklifler", Pinned: Criteria{Equal: map[string]string{"durum": enum.OfferStatusSent.String()}}},
		{Key: "taslak", Label: "Taslak Teklifler", Pinned: Criteria{Equal: map[string]string{"durum": enum.OfferStatusDraft.String()}}},
	}
}

// offerSummary shows the live per-currency totals of an offer form.
func offerSummary(f *FormController[entity.Offer]) string {
	return "Toplam: " + FormatTotals(PreviewTotals(f))
}

func productSummary(f *FormController[entity.Product]) string {
	if strings.TrimSpace(f.Value("gorselUrl")) == "" {
		return ""
	}
	switch f.ProbeState() {
	case validation.ProbeValid:
		return "Görsel doğrulandı"
	case validation.ProbeInvalid:
		return "Görsel yüklenemedi"
	}
	return "Görsel test edilmedi"
}
