package handler

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/presentation/http/dto/response"
)

// DashboardHandler serves the home module: counters, activity feed and titles
type DashboardHandler struct {
	gw  *gateway.Gateway
	now func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(gw *gateway.Gateway) *DashboardHandler {
	return &DashboardHandler{gw: gw, now: time.Now}
}

// GetStats returns the four counters, or the defaults when any count fails
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := dashboard.LoadStats(c.Request.Context(), h.gw)
	if err != nil {
		log.Printf("[dashboard] istatistikler alınamadı, varsayılanlar gönderiliyor: %v", err)
		stats = dashboard.DefaultStats()
	}
	response.OK(c, "Dashboard istatistikleri", stats)
}

// GetActivities returns the newest activities, five unless ?limit is given
func (h *DashboardHandler) GetActivities(c *gin.Context) {
	limit := queryInt(c, "limit", dashboard.RecentLimit)
	if limit < 1 || limit > 50 {
		limit = dashboard.RecentLimit
	}
	items := dashboard.RecentActivities(c.Request.Context(), h.gw, limit, h.now())
	response.OK(c, "Son aktiviteler", items)
}

// GetModules lists the menu with each module's title
func (h *DashboardHandler) GetModules(c *gin.Context) {
	modules := []string{dashboard.ModuleHome, dashboard.ModuleOffers, dashboard.ModuleProducts, dashboard.ModuleCustomers}
	out := make([]gin.H, 0, len(modules))
	for _, m := range modules {
		t := dashboard.TitleOf(m)
		out = append(out, gin.H{"key": m, "title": t.Title, "subtitle": t.Subtitle})
	}
	response.OK(c, "Modüller", out)
}
