package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the list view and the form view.
type KeyMap struct {
	Module1  key.Binding
	Module2  key.Binding
	Module3  key.Binding
	Module4  key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Search   key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Reload   key.Binding
	Quit     key.Binding
	Help     key.Binding

	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	AddItem    key.Binding
	RemoveItem key.Binding
	Probe      key.Binding
	Cancel     key.Binding
	Confirm    key.Binding
}

// DefaultKeyMap returns a KeyMap with default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Module1:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Module2:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "teklifler")),
		Module3:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "ürünler")),
		Module4:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "müşteriler")),
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sonraki sekme")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "önceki sekme")),
		NextPage: key.NewBinding(key.WithKeys("right", "l", "]"), key.WithHelp("→", "sonraki sayfa")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h", "["), key.WithHelp("←", "önceki sayfa")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "ara")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "yeni")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "düzenle")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "sil")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "yenile")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "çıkış")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "yardım")),

		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "sonraki alan")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "önceki alan")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "kaydet")),
		AddItem:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "kalem ekle")),
		RemoveItem: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "kalemi sil")),
		Probe:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "görseli test et")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "vazgeç")),
		Confirm:    key.NewBinding(key.WithKeys("y", "e"), key.WithHelp("y", "onayla")),
	}
}

// ShortHelp is shown under the list view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Module1, k.Module2, k.Module3, k.Module4, k.NextTab, k.Search, k.New, k.Edit, k.Delete, k.Quit}
}

// FullHelp is shown when help is toggled.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Module1, k.Module2, k.Module3, k.Module4},
		{k.NextTab, k.PrevTab, k.NextPage, k.PrevPage},
		{k.Search, k.New, k.Edit, k.Delete, k.Reload},
		{k.Submit, k.AddItem, k.RemoveItem, k.Probe, k.Cancel},
		{k.Help, k.Quit},
	}
}

// formHelp is a help.KeyMap for the form view, where letter keys type.
type formHelp struct{ k KeyMap }

func (f formHelp) ShortHelp() []key.Binding {
	return []key.Binding{f.k.NextField, f.k.PrevField, f.k.Submit, f.k.AddItem, f.k.RemoveItem, f.k.Probe, f.k.Cancel}
}

func (f formHelp) FullHelp() [][]key.Binding { return [][]key.Binding{f.ShortHelp()} }
