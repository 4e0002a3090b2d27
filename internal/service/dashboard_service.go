package service

import (
	"context"

	"github.com/fileportal/backend-go/internal/cache"
	"github.com/fileportal/backend-go/internal/domain"
	"github.com/fileportal/backend-go/internal/gateway"
	"github.com/rs/zerolog"
)

// recentLimit caps the recent-files and recent-alerts feeds on the
// dashboard.
const recentLimit = 5

// DashboardService assembles the admin dashboard summary from the gateway
// metrics, consulting the cache first. The cache is strictly an
// optimization: any cache failure falls through to a fresh computation.
type DashboardService struct {
	gw    *gateway.Gateway
	cache cache.DashboardCache
	log   zerolog.Logger
}

func NewDashboardService(gw *gateway.Gateway, c cache.DashboardCache, log zerolog.Logger) *DashboardService {
	if c == nil {
		c = cache.NewNoopDashboardCache()
	}
	return &DashboardService{gw: gw, cache: c, log: log}
}

// Summary returns the dashboard metrics. Every count degrades to zero on a
// store outage, so the summary itself never fails.
func (s *DashboardService) Summary(ctx context.Context) *domain.DashboardSummary {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache read failed, recomputing")
	} else if ok {
		return cached
	}

	files := s.gw.ListAll(ctx)
	alertEntries := s.gw.Alerts()

	summary := &domain.DashboardSummary{
		TotalFiles:     len(files),
		TotalAlerts:    len(alertEntries),
		TotalAuditLogs: s.gw.TotalAuditLogs(ctx),
		TotalStorageMB: s.gw.TotalStorageMB(ctx),
		RecentFiles:    lastN(files, recentLimit),
		RecentAlerts:   lastN(alertEntries, recentLimit),
	}

	if err := s.cache.Set(ctx, summary); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache write failed")
	}
	return summary
}

// Invalidate drops the cached summary after a mutating operation.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}

// lastN returns the trailing n entries, most recent last.
func lastN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
