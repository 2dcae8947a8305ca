package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/labomak/dashboard/internal/application/dashboard"
)

var menuLabels = map[string]string{
	dashboard.ModuleHome:      "Dashboard",
	dashboard.ModuleOffers:    "Teklifler",
	dashboard.ModuleProducts:  "Ürünler",
	dashboard.ModuleCustomers: "Müşteriler",
}

func (m Model) View() string {
	var b strings.Builder

	title := m.shell.Title()
	b.WriteString(titleStyle.Render(title.Title))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(title.Subtitle))
	b.WriteString("\n")
	b.WriteString(m.renderMenu())
	b.WriteString("\n\n")

	if h, ok := m.home(); ok {
		b.WriteString(renderHome(h))
	} else if em, ok := m.entity(); ok {
		b.WriteString(renderTabs(em))
		b.WriteString("\n\n")
		if m.mode == ModeForm {
			b.WriteString(m.renderForm())
		} else {
			b.WriteString(m.renderList(em))
		}
	}

	b.WriteString("\n")
	if line := m.renderStatus(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.mode == ModeForm {
		b.WriteString(m.help.View(formHelp{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderMenu() string {
	items := make([]string, 0, len(m.shell.Modules()))
	for i, k := range m.shell.Modules() {
		label := fmt.Sprintf("%d %s", i+1, menuLabels[k])
		if m.shell.Visible(k) {
			items = append(items, menuActiveStyle.Render(label))
		} else {
			items = append(items, menuStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func renderTabs(em dashboard.EntityModule) string {
	tabs := em.Tabs()
	items := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.Key == em.CurrentTab() {
			items = append(items, tabActiveStyle.Render(t.Label))
		} else {
			items = append(items, tabStyle.Render(t.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func renderHome(h *dashboard.Home) string {
	stats := h.Stats()
	card := func(label string, n int64) string {
		return cardStyle.Render(subtitleStyle.Render(label) + "\n" + cardValueStyle.Render(dashboard.FormatCount(n)))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Toplam Müşteri", stats.TotalCustomers),
		card("Toplam Ürün", stats.TotalProducts),
		card("Toplam Teklif", stats.TotalOffers),
		card("Aktif Kullanıcı", stats.ActiveUsers),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Son Aktiviteler"))
	b.WriteString("\n")
	activities := h.Activities()
	if len(activities) == 0 {
		b.WriteString(infoStyle.Render("Henüz aktivite yok"))
		b.WriteString("\n")
	}
	for _, a := range activities {
		b.WriteString(fmt.Sprintf("• %s  %s\n", a.Text, subtitleStyle.Render(a.Time)))
	}
	return b.String()
}

func (m Model) renderList(em dashboard.EntityModule) string {
	var b strings.Builder
	if m.mode == ModeSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if term := em.Criteria().Search; term != "" {
		b.WriteString(infoStyle.Render("Arama: " + term))
		b.WriteString("\n")
	}

	view := em.Table()
	if len(view.Rows) == 0 {
		b.WriteString(infoStyle.Render("Kayıt bulunamadı"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("Sayfa %d/%d · %s kayıt", view.Page, view.TotalPages, dashboard.FormatCount(view.Total))))

	if m.mode == ModeConfirmDelete {
		b.WriteString("\n\n")
		b.WriteString(confirmStyle.Render(fmt.Sprintf("%d numaralı kayıt silinsin mi? (y/n)", m.pending)))
	}
	return b.String()
}

func (m Model) renderForm() string {
	if len(m.fields) == 0 {
		return infoStyle.Render("Açık form yok")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.form.Title))
	b.WriteString("\n\n")

	top := len(m.form.Fields)
	for i, f := range m.fields {
		if i >= top && (i-top)%itemWidth(m.form) == 0 {
			b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s %d", m.form.ItemLabel, (i-top)/itemWidth(m.form)+1)))
			b.WriteString("\n")
		}
		label := f.Label
		if i == m.focus {
			label = "> " + label
		}
		b.WriteString(labelStyle.Render(label))
		if f.ReadOnly {
			b.WriteString(readOnlyStyle.Render(f.Value))
		} else {
			b.WriteString(m.inputs[i].View())
		}
		if msg := m.fieldError(f.Name); msg != "" {
			b.WriteString("  ")
			b.WriteString(fieldErrorStyle.Render(msg))
		}
		b.WriteString("\n")
	}

	if m.form.Summary != "" {
		b.WriteString("\n")
		b.WriteString(cardValueStyle.Render(m.form.Summary))
		b.WriteString("\n")
	}
	if !m.form.CanSubmit {
		b.WriteString(infoStyle.Render("Kaydetmeden önce hatalı alanları düzeltin"))
		b.WriteString("\n")
	}
	return b.String()
}

// fieldError reads the latest error, which may be newer than the inputs.
func (m Model) fieldError(name string) string {
	for _, f := range m.form.Fields {
		if f.Name == name {
			return f.Error
		}
	}
	for _, item := range m.form.Items {
		for _, f := range item {
			if f.Name == name {
				return f.Error
			}
		}
	}
	return ""
}

func itemWidth(v dashboard.FormView) int {
	if len(v.Items) == 0 || len(v.Items[0]) == 0 {
		return 1
	}
	return len(v.Items[0])
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	switch m.statusKind {
	case statusError:
		return errorStyle.Render(m.status)
	case statusSuccess:
		return successStyle.Render(m.status)
	default:
		return infoStyle.Render(m.status)
	}
}
