package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/application/offerno"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/internal/infrastructure/cache"
	"github.com/labomak/dashboard/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	gw       *gateway.Gateway
	registry *cache.MemoryOfferNumberRegistry
}

func newTestModel(t *testing.T) (Model, testEnv) {
	t.Helper()
	tables := repository.NewMemoryTableRepository()
	gw := gateway.New(tables, gateway.WithActivityLog(repository.NewMemoryActivityRepository()))
	registry := cache.NewMemoryOfferNumberRegistry(time.Hour)
	shell := dashboard.NewDashboardShell(gw, offerno.NewGenerator(tables, registry), nil)

	m := New(context.Background(), shell)
	m = resolve(t, m, m.Init())
	return m, testEnv{gw: gw, registry: registry}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends one key and returns the command without running it; input
// components answer with cursor blink commands the tests never need.
func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// resolve runs a command produced by the model and feeds its message back.
func resolve(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func pressAndResolve(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m, cmd := press(t, m, msg)
	return resolve(t, m, cmd)
}

func TestInitShowsHome(t *testing.T) {
	ctx := context.Background()
	tables := repository.NewMemoryTableRepository()
	gw := gateway.New(tables, gateway.WithActivityLog(repository.NewMemoryActivityRepository()))
	_, err := gw.Customers().Create(ctx, domainRepo.Record{"sirket_adi": "Labomak"})
	require.NoError(t, err)

	m := New(ctx, dashboard.NewDashboardShell(gw, nil, nil))
	m = resolve(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "Genel sistem durumu")
	assert.Contains(t, view, "Toplam Müşteri")
	assert.Contains(t, view, "Yeni müşteri eklendi: Labomak")
	assert.Equal(t, ModeList, m.Mode())
}

func TestCustomerCreateAndDelete(t *testing.T) {
	m, _ := newTestModel(t)

	m = pressAndResolve(t, m, keyRunes("4"))
	assert.Equal(t, ModeList, m.Mode())
	assert.Contains(t, m.View(), "Kayıt bulunamadı")

	m = pressAndResolve(t, m, keyRunes("n"))
	require.Equal(t, ModeForm, m.Mode())
	assert.Equal(t, "sirketAdi", m.focusedName())

	m, _ = press(t, m, keyRunes("Labomak"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "sirketAdres", m.focusedName())

	m = pressAndResolve(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Müşteri başarıyla eklendi", m.Status())
	assert.Equal(t, ModeList, m.Mode())
	require.Len(t, m.keysOf, 1)
	assert.Contains(t, m.View(), "Labomak")

	m, _ = press(t, m, keyRunes("d"))
	require.Equal(t, ModeConfirmDelete, m.Mode())
	assert.Contains(t, m.View(), "silinsin mi")

	m = pressAndResolve(t, m, keyRunes("y"))
	assert.Equal(t, ModeList, m.Mode())
	assert.Equal(t, "Kayıt silindi", m.Status())
	assert.Empty(t, m.keysOf)
}

func TestDeleteCanBeDeclined(t *testing.T) {
	m, env := newTestModel(t)
	_, err := env.gw.Customers().Create(context.Background(), domainRepo.Record{"sirket_adi": "Labomak"})
	require.NoError(t, err)

	m = pressAndResolve(t, m, keyRunes("4"))
	m, _ = press(t, m, keyRunes("d"))
	m, cmd := press(t, m, keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeList, m.Mode())
	assert.Len(t, m.keysOf, 1)
}

func TestSubmitWithErrorsStaysInForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAndResolve(t, m, keyRunes("4"))
	m = pressAndResolve(t, m, keyRunes("n"))

	m = pressAndResolve(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, ModeForm, m.Mode())
	assert.Equal(t, statusError, m.statusKind)
	assert.Equal(t, "Form doğrulaması başarısız", m.Status())
	assert.NotEmpty(t, m.fieldError("sirketAdi"))
}

func TestEditShowsReadOnlyKey(t *testing.T) {
	m, env := newTestModel(t)
	_, err := env.gw.Customers().Create(context.Background(), domainRepo.Record{"sirket_adi": "Labomak"})
	require.NoError(t, err)

	m = pressAndResolve(t, m, keyRunes("4"))
	m = pressAndResolve(t, m, keyRunes("e"))
	require.Equal(t, ModeForm, m.Mode())
	assert.Equal(t, "Müşteri Düzenle", m.form.Title)
	assert.True(t, m.fields[0].ReadOnly)
	assert.Equal(t, "sirketAdi", m.focusedName(), "focus skips the key")

	m, _ = press(t, m, keyRunes(" A.Ş."))
	m = pressAndResolve(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Müşteri başarıyla güncellendi", m.Status())
	assert.Contains(t, m.View(), "Labomak A.Ş.")
}

func TestEscapeReleasesOfferNumber(t *testing.T) {
	ctx := context.Background()
	m, env := newTestModel(t)

	m = pressAndResolve(t, m, keyRunes("2"))
	require.Equal(t, ModeForm, m.Mode(), "offers open on the new offer tab")
	var number string
	for _, f := range m.fields {
		if f.Name == "teklifNo" {
			number = f.Value
		}
	}
	require.Regexp(t, offerno.Pattern, number)

	m = pressAndResolve(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.Mode())
	free, err := env.registry.Reserve(ctx, number)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestOfferItemsCanBeAddedAndRemoved(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAndResolve(t, m, keyRunes("2"))
	require.Len(t, m.form.Items, 1)
	before := len(m.fields)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Len(t, m.form.Items, 2)
	assert.Len(t, m.fields, before+len(m.form.Items[0]))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Len(t, m.form.Items, 1)
	assert.Contains(t, m.View(), "Toplam:")
}

func TestSearchFiltersTheTable(t *testing.T) {
	ctx := context.Background()
	m, env := newTestModel(t)
	for _, name := range []string{"Ankara Makine", "İzmir Kimya"} {
		_, err := env.gw.Customers().Create(ctx, domainRepo.Record{"sirket_adi": name})
		require.NoError(t, err)
	}

	m = pressAndResolve(t, m, keyRunes("4"))
	require.Len(t, m.keysOf, 2)

	m, _ = press(t, m, keyRunes("/"))
	require.Equal(t, ModeSearch, m.Mode())
	m, _ = press(t, m, keyRunes("kimya"))
	assert.Len(t, m.keysOf, 1)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeList, m.Mode())
	assert.Contains(t, m.View(), "Arama: kimya")
}

func TestTabsSwitchBetweenListAndForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAndResolve(t, m, keyRunes("3"))
	assert.Equal(t, ModeList, m.Mode())

	m = pressAndResolve(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ModeForm, m.Mode())
	assert.Contains(t, m.View(), "Yeni Ürün")

	m = pressAndResolve(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.Mode())
}

func TestKeysAreIgnoredWhileBusy(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := press(t, m, keyRunes("4"))
	require.NotNil(t, cmd)
	m, cmd = press(t, m, keyRunes("3"))
	assert.Nil(t, cmd)
	assert.True(t, m.busy)
}

func TestItemIndex(t *testing.T) {
	i, ok := itemIndex("kalemler[12].miktar")
	assert.True(t, ok)
	assert.Equal(t, 12, i)

	_, ok = itemIndex("sirketAdi")
	assert.False(t, ok)
	_, ok = itemIndex("kalemler[].x")
	assert.False(t, ok)
}
