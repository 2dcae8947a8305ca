package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/labomak/dashboard/internal/application/gateway"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T) (*gateway.Gateway, *repository.MemoryTableRepository) {
	t.Helper()
	tables := repository.NewMemoryTableRepository()
	gw := gateway.New(tables, gateway.WithActivityLog(repository.NewMemoryActivityRepository()))
	return gw, tables
}

func seedProducts(t *testing.T, gw *gateway.Gateway, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		currency := "TRY"
		if i%2 == 0 {
			currency = "USD"
		}
		_, err := gw.Products().Create(context.Background(), domainRepo.Record{
			"urun_adi":      fmt.Sprintf("Ürün %02d", i),
			"urun_aciklama": "Laboratuvar ekipmanı",
			"fiyat":         decimal.NewFromInt(int64(i * 10)),
			"doviz_cinsi":   currency,
		})
		require.NoError(t, err)
	}
}

func TestListPagination(t *testing.T) {
	gw, _ := newTestGateway(t)
	seedProducts(t, gw, 23)
	list := NewListController(ProductDescriptor(gw))
	list.Refresh(context.Background())

	page := list.Page()
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.EqualValues(t, 23, page.Pagination.Total)

	assert.Equal(t, 3, list.SetPage(3))
	assert.Len(t, list.Page().Items, 3, "last page holds total mod page size")

	assert.Equal(t, 3, list.SetPage(99))
	assert.Equal(t, 1, list.SetPage(-4))
}

func TestListPaginationEvenlyDivisible(t *testing.T) {
	gw, _ := newTestGateway(t)
	seedProducts(t, gw, 20)
	list := NewListController(ProductDescriptor(gw))
	list.Refresh(context.Background())

	assert.Equal(t, 2, list.SetPage(2))
	assert.Len(t, list.Page().Items, 10)
}

func TestListEmptyHasOnePage(t *testing.T) {
	gw, _ := newTestGateway(t)
	list := NewListController(CustomerDescriptor(gw))
	list.Refresh(context.Background())

	assert.Equal(t, 1, list.SetPage(5))
	page := list.Page()
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestApplyFilterResetsPageAndClamps(t *testing.T) {
	gw, _ := newTestGateway(t)
	seedProducts(t, gw, 23)
	list := NewListController(ProductDescriptor(gw))
	list.Refresh(context.Background())
	list.SetPage(3)

	list.ApplyFilter(Criteria{Equal: map[string]string{"doviz_cinsi": "USD"}})
	page := list.Page()
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.EqualValues(t, 11, page.Pagination.Total)
	for _, p := range list.Filtered() {
		assert.Equal(t, "USD", p.Currency.String())
	}
}

func TestApplyFilterIsIdempotent(t *testing.T) {
	gw, _ := newTestGateway(t)
	seedProducts(t, gw, 23)
	list := NewListController(ProductDescriptor(gw))
	list.Refresh(context.Background())

	lo, hi := decimal.NewFromInt(50), decimal.NewFromInt(150)
	c := Criteria{Search: "ürün", Range: map[string]Range{"fiyat": {Min: &lo, Max: &hi}}}

	list.ApplyFilter(c)
	once := list.Filtered()
	list.ApplyFilter(c)
	twice := list.Filtered()

	assert.Equal(t, once, twice)
	assert.Len(t, once, 11)
}

func TestRangeWithOpenBound(t *testing.T) {
	gw, _ := newTestGateway(t)
	seedProducts(t, gw, 5)
	list := NewListController(ProductDescriptor(gw))
	list.Refresh(context.Background())

	bound := decimal.NewFromInt(30)
	list.ApplyFilter(Criteria{Range: map[string]Range{"fiyat": {Min: &bound}}})
	assert.Len(t, list.Filtered(), 3)

	list.ApplyFilter(Criteria{Range: map[string]Range{"fiyat": {Max: &bound}}})
	assert.Len(t, list.Filtered(), 3)
}

func TestSearchFoldsTurkishCase(t *testing.T) {
	ctx := context.Background()
	gw, _ := newTestGateway(t)
	for _, name := range []string{"İSTANBUL TİCARET", "Ankara Makine", "IŞIK Laboratuvar"} {
		_, err := gw.Customers().Create(ctx, domainRepo.Record{"sirket_adi": name})
		require.NoError(t, err)
	}
	list := NewListController(CustomerDescriptor(gw))
	list.Refresh(ctx)

	list.ApplyFilter(Criteria{Search: "istanbul"})
	require.Len(t, list.Filtered(), 1)
	assert.Equal(t, "İSTANBUL TİCARET", list.Filtered()[0].CompanyName)

	list.ApplyFilter(Criteria{Search: "ışık"})
	require.Len(t, list.Filtered(), 1)

	list.ApplyFilter(Criteria{Text: map[string]string{"sirket_adi": "MAKİNE"}})
	require.Len(t, list.Filtered(), 1)
	assert.Equal(t, "Ankara Makine", list.Filtered()[0].CompanyName)
}

func TestRefreshKeepsFilterAndResetsPage(t *testing.T) {
	ctx := context.Background()
	gw, _ := newTestGateway(t)
	seedProducts(t, gw, 23)
	list := NewListController(ProductDescriptor(gw))
	list.Refresh(ctx)
	list.ApplyFilter(Criteria{Equal: map[string]string{"doviz_cinsi": "TRY"}})
	list.SetPage(2)

	seedProducts(t, gw, 1)
	list.Refresh(ctx)

	assert.Equal(t, 1, list.Page().Pagination.CurrentPage)
	assert.Len(t, list.Filtered(), 13)
}

func TestDeleteRefreshesWithoutThatKey(t *testing.T) {
	ctx := context.Background()
	gw, _ := newTestGateway(t)
	var keys []int64
	for _, name := range []string{"A", "B", "C"} {
		c, err := gw.Customers().Create(ctx, domainRepo.Record{"sirket_adi": name})
		require.NoError(t, err)
		keys = append(keys, c.Code)
	}
	list := NewListController(CustomerDescriptor(gw))
	list.Refresh(ctx)

	require.NoError(t, list.Delete(ctx, keys[0]))

	var visible []int64
	for _, c := range list.Page().Items {
		visible = append(visible, c.Code)
	}
	assert.ElementsMatch(t, keys[1:], visible)
	_, found := list.Find(keys[0])
	assert.False(t, found)
}

func TestDeleteFailureKeepsRows(t *testing.T) {
	ctx := context.Background()
	gw, tables := newTestGateway(t)
	c, err := gw.Customers().Create(ctx, domainRepo.Record{"sirket_adi": "A"})
	require.NoError(t, err)
	list := NewListController(CustomerDescriptor(gw))
	list.Refresh(ctx)

	tables.FailWith = func(op, table string) error {
		if op == "delete" {
			return errors.New("row level security")
		}
		return nil
	}
	assert.Error(t, list.Delete(ctx, c.Code))
	assert.Equal(t, 1, list.Len())
}

func TestFailedFetchShowsEmptyList(t *testing.T) {
	ctx := context.Background()
	gw, tables := newTestGateway(t)
	seedProducts(t, gw, 3)
	tables.FailWith = func(op, table string) error { return errors.New("offline") }

	list := NewListController(ProductDescriptor(gw))
	list.Refresh(ctx)
	assert.Equal(t, 0, list.Len())
	assert.Empty(t, list.Page().Items)
}

func TestPinnedCriteria(t *testing.T) {
	ctx := context.Background()
	gw, _ := newTestGateway(t)
	for i, status := range []string{"Taslak", "Gönderildi", "Taslak"} {
		_, err := gw.Offers().Create(ctx, domainRepo.Record{"teklif_no": fmt.Sprintf("TK20250908%03d", i), "durum": status})
		require.NoError(t, err)
	}

	drafts := NewListController(OfferDescriptor(gw, nil), WithPinned(Criteria{Equal: map[string]string{"durum": "Taslak"}}))
	drafts.Refresh(ctx)
	assert.Len(t, drafts.Filtered(), 2)

	drafts.ApplyFilter(Criteria{Search: "001"})
	assert.Empty(t, drafts.Filtered(), "user criteria never widen the pinned tab")
}
