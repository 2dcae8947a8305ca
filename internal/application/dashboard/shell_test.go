package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/labomak/dashboard/internal/application/offerno"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingModule struct {
	key   string
	loads int
	err   error
}

func (m *countingModule) Key() string { return m.key }

func (m *countingModule) Load(context.Context) error {
	m.loads++
	return m.err
}

func TestShellBuildsOnceAndLoadsEveryTime(t *testing.T) {
	ctx := context.Background()
	s := NewShell()
	offers := &countingModule{key: ModuleOffers}
	s.Register(ModuleHome, func() Module { return &countingModule{key: ModuleHome} })
	s.Register(ModuleOffers, func() Module { return offers })

	assert.Empty(t, s.Active())
	for i := 0; i < 3; i++ {
		_, err := s.Activate(ctx, ModuleOffers)
		require.NoError(t, err)
		_, err = s.Activate(ctx, ModuleHome)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, s.Builds(ModuleOffers))
	assert.Equal(t, 3, offers.loads)
	assert.Equal(t, ModuleHome, s.Active())
	assert.True(t, s.Visible(ModuleHome))
	assert.False(t, s.Visible(ModuleOffers))
	assert.Equal(t, []string{ModuleHome, ModuleOffers}, s.Modules())
}

func TestShellUnknownModuleKeepsActive(t *testing.T) {
	ctx := context.Background()
	s := NewShell()
	s.Register(ModuleHome, func() Module { return &countingModule{key: ModuleHome} })
	_, err := s.Activate(ctx, ModuleHome)
	require.NoError(t, err)

	_, err = s.Activate(ctx, "raporlar")
	assert.ErrorIs(t, err, ErrUnknownModule)
	assert.Equal(t, ModuleHome, s.Active())
	_, built := s.Module("raporlar")
	assert.False(t, built)
}

func TestShellLoadErrorKeepsModuleActive(t *testing.T) {
	s := NewShell()
	s.Register(ModuleCustomers, func() Module { return &countingModule{key: ModuleCustomers, err: errors.New("offline")} })

	m, err := s.Activate(context.Background(), ModuleCustomers)
	assert.Error(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, ModuleCustomers, s.Active())
}

func TestTitles(t *testing.T) {
	assert.Equal(t, Title{Title: "Teklif İşlemleri", Subtitle: "Teklif oluşturma ve yönetimi"}, TitleOf(ModuleOffers))
	assert.Equal(t, "Müşteri İşlemleri", TitleOf(ModuleCustomers).Title)
	assert.Equal(t, Title{Title: "Dashboard", Subtitle: "Genel Bakış"}, TitleOf("bilinmeyen"))

	s := NewShell()
	s.Register(ModuleProducts, func() Module { return &countingModule{key: ModuleProducts} })
	_, err := s.Activate(context.Background(), ModuleProducts)
	require.NoError(t, err)
	assert.Equal(t, "Ürün kataloğu yönetimi", s.Title().Subtitle)
}

func newTestShell(t *testing.T) (*Shell, *cache.MemoryOfferNumberRegistry) {
	t.Helper()
	gw, tables := newTestGateway(t)
	registry := cache.NewMemoryOfferNumberRegistry(time.Hour)
	return NewDashboardShell(gw, offerno.NewGenerator(tables, registry), nil), registry
}

func TestDashboardShellModules(t *testing.T) {
	s, _ := newTestShell(t)
	assert.Equal(t, []string{ModuleHome, ModuleOffers, ModuleProducts, ModuleCustomers}, s.Modules())

	m, err := s.Activate(context.Background(), ModuleCustomers)
	require.NoError(t, err)
	customers, ok := m.(EntityModule)
	require.True(t, ok)
	assert.Equal(t, "musteri-listesi", customers.CurrentTab())
	assert.Equal(t, []string{"Kod", "Şirket", "Konum", "Yetkili", "Telefon", "E-posta"}, customers.Table().Headers)
}

func TestOfferModuleLandsOnDraftTab(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestShell(t)
	m, err := s.Activate(ctx, ModuleOffers)
	require.NoError(t, err)
	offers := m.(EntityModule)

	require.Equal(t, "yeni-teklif", offers.CurrentTab())
	view, ok := offers.Form()
	require.True(t, ok)
	assert.Equal(t, "Yeni Teklif", view.Title)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Toplam: -", view.Summary)

	require.NoError(t, offers.SetField("sirketAdi", "Test A.Ş."))
	require.NoError(t, offers.SetField("kalemler[0].urunAdi", "Pompa"))
	require.NoError(t, offers.SetField("kalemler[0].miktar", "2"))
	require.NoError(t, offers.SetField("kalemler[0].birimFiyat", "100,25"))
	require.NoError(t, offers.SetField("kalemler[0].doviz", "TRY"))
	view, _ = offers.Form()
	assert.Equal(t, "Toplam: 200,5 TRY", view.Summary)

	msg, err := offers.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Teklif başarıyla eklendi", msg)
	assert.Equal(t, "taslak", offers.CurrentTab())

	table := offers.Table()
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Taslak", table.Rows[0][5])

	require.NoError(t, offers.SwitchTab(ctx, "gonderilen"))
	assert.Empty(t, offers.Table().Rows)
	assert.ErrorIs(t, offers.SwitchTab(ctx, "iptal"), ErrUnknownTab)
}

func TestCancelFormReleasesNumber(t *testing.T) {
	ctx := context.Background()
	s, registry := newTestShell(t)
	m, err := s.Activate(ctx, ModuleOffers)
	require.NoError(t, err)
	offers := m.(EntityModule)

	view, ok := offers.Form()
	require.True(t, ok)
	var reserved string
	for _, f := range view.Fields {
		if f.Name == "teklifNo" {
			reserved = f.Value
		}
	}
	require.Regexp(t, offerno.Pattern, reserved)

	offers.CancelForm(ctx)
	_, ok = offers.Form()
	assert.False(t, ok)
	free, err := registry.Reserve(ctx, reserved)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestCustomerModuleEditFlow(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestShell(t)
	m, err := s.Activate(ctx, ModuleCustomers)
	require.NoError(t, err)
	customers := m.(EntityModule)

	require.NoError(t, customers.SwitchTab(ctx, "yeni-musteri"))
	require.NoError(t, customers.SetField("sirketAdi", "Labomak"))
	msg, err := customers.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Müşteri başarıyla eklendi", msg)
	assert.Equal(t, "musteri-listesi", customers.CurrentTab())

	table := customers.Table()
	require.Len(t, table.Keys, 1)
	require.NoError(t, customers.Edit(ctx, table.Keys[0]))
	assert.Equal(t, "yeni-musteri", customers.CurrentTab())
	view, ok := customers.Form()
	require.True(t, ok)
	assert.Equal(t, ModeEdit, view.Mode)
	assert.Equal(t, "Müşteri Düzenle", view.Title)
	assert.True(t, view.Fields[0].ReadOnly)

	require.NoError(t, customers.SetField("sirketSehir", "İzmir"))
	msg, err = customers.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Müşteri başarıyla güncellendi", msg)
	assert.Equal(t, "Labomak", customers.Table().Rows[0][1])
	assert.Equal(t, "İzmir", customers.Table().Rows[0][2])

	_, ok = customers.Form()
	assert.False(t, ok, "a finished edit form is closed")
	assert.ErrorIs(t, customers.SetField("sirketAdi", "x"), ErrNoForm)
}

func TestProductModuleWithoutProber(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestShell(t)
	m, err := s.Activate(ctx, ModuleProducts)
	require.NoError(t, err)
	products := m.(EntityModule)
	require.NoError(t, products.SwitchTab(ctx, "yeni-urun"))

	_, err = products.ProbeImage(ctx)
	assert.Error(t, err)
	view, _ := products.Form()
	assert.True(t, view.HasImage)
	assert.Empty(t, view.Summary)
}

func TestLoadStats(t *testing.T) {
	ctx := context.Background()
	gw, tables := newTestGateway(t)
	seedProducts(t, gw, 4)
	_, err := gw.Customers().Create(ctx, domainRepo.Record{"sirket_adi": "Labomak"})
	require.NoError(t, err)
	for i, active := range []bool{true, true, false} {
		_, err := tables.Create(ctx, domainRepo.TableUsers, domainRepo.Record{"kullanici_adi": fmt.Sprintf("u%d", i), "aktif": active})
		require.NoError(t, err)
	}

	stats, err := LoadStats(ctx, gw)
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalCustomers: 1, TotalProducts: 4, TotalOffers: 0, ActiveUsers: 2}, stats)
}

func TestHomeFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	gw, tables := newTestGateway(t)
	seedProducts(t, gw, 2)
	tables.FailWith = func(op, table string) error {
		if op == "count" && table == domainRepo.TableOffers {
			return errors.New("timeout")
		}
		return nil
	}

	_, err := LoadStats(ctx, gw)
	assert.Error(t, err)

	home := NewHome(gw)
	require.NoError(t, home.Load(ctx))
	assert.Equal(t, DefaultStats(), home.Stats())
	assert.Len(t, home.Activities(), 2, "the feed does not depend on the counters")
}

func TestHomeActivitiesAreLimited(t *testing.T) {
	ctx := context.Background()
	gw, _ := newTestGateway(t)
	seedProducts(t, gw, 7)

	home := NewHome(gw)
	require.NoError(t, home.Load(ctx))
	items := home.Activities()
	require.Len(t, items, RecentLimit)
	assert.Equal(t, "Az önce", items[0].Time)
	assert.Equal(t, "Yeni ürün eklendi: Ürün 07", items[0].Text)
	assert.Equal(t, ModuleHome, home.Key())
}
