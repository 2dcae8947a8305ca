package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/domain/entity"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/sourcegraph/conc/pool"
)

// RecentLimit is how many activities the home module lists.
const RecentLimit = 5

// Stats are the four counters of the home module.
type Stats struct {
	TotalCustomers int64 `json:"total_customers"`
	TotalProducts  int64 `json:"total_products"`
	TotalOffers    int64 `json:"total_offers"`
	ActiveUsers    int64 `json:"active_users"`
}

// DefaultStats is shown when any counter fails.
func DefaultStats() Stats {
	return Stats{ActiveUsers: 1}
}

// LoadStats runs the four counts together. The result is all or nothing:
// the first failure cancels the others and the caller gets the error.
func LoadStats(ctx context.Context, gw *gateway.Gateway) (Stats, error) {
	var stats Stats
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	count := func(dst *int64, table string, where domainRepo.Record) {
		p.Go(func(ctx context.Context) error {
			n, err := gw.Count(ctx, table, where)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(&stats.TotalCustomers, domainRepo.TableCustomers, nil)
	count(&stats.TotalProducts, domainRepo.TableProducts, nil)
	count(&stats.TotalOffers, domainRepo.TableOffers, nil)
	count(&stats.ActiveUsers, domainRepo.TableUsers, domainRepo.Record{"aktif": true})

	if err := p.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// ActivityItem is one line of the recent activity feed.
type ActivityItem struct {
	Table  string                `json:"tablo"`
	Action entity.ActivityAction `json:"islem"`
	Text   string                `json:"aciklama"`
	Time   string                `json:"zaman"`
	At     time.Time             `json:"created_at"`
}

// RecentActivities returns the newest activities with relative times. A
// failing activity log yields an empty feed.
func RecentActivities(ctx context.Context, gw *gateway.Gateway, limit int, now time.Time) []ActivityItem {
	activities, err := gw.RecentActivities(ctx, limit)
	if err != nil {
		log.Printf("[dashboard] son aktiviteler alınamadı: %v", err)
		return []ActivityItem{}
	}
	items := make([]ActivityItem, 0, len(activities))
	for _, a := range activities {
		items = append(items, ActivityItem{
			Table:  a.Table,
			Action: a.Action,
			Text:   a.Description,
			Time:   RelativeTime(a.CreatedAt, now),
			At:     a.CreatedAt,
		})
	}
	return items
}

// Home is the dashboard module: counters plus the activity feed.
type Home struct {
	gw  *gateway.Gateway
	now func() time.Time

	mu         sync.RWMutex
	stats      Stats
	activities []ActivityItem
}

func NewHome(gw *gateway.Gateway) *Home {
	return &Home{gw: gw, now: time.Now, stats: DefaultStats()}
}

func (h *Home) Key() string { return ModuleHome }

// Load refreshes the counters and the feed. Failures fall back to defaults
// and are only logged.
func (h *Home) Load(ctx context.Context) error {
	stats, err := LoadStats(ctx, h.gw)
	if err != nil {
		log.Printf("[dashboard] istatistikler alınamadı, varsayılanlar gösteriliyor: %v", err)
		stats = DefaultStats()
	}
	activities := RecentActivities(ctx, h.gw, RecentLimit, h.now())

	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats = stats
	h.activities = activities
	return nil
}

func (h *Home) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stats
}

func (h *Home) Activities() []ActivityItem {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]ActivityItem(nil), h.activities...)
}
