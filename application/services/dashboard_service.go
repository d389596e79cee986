package services

import (
	"context"

	"go.uber.org/zap"

	"kusina-backend/application/ports"
	"kusina-backend/domain/audit"
	"kusina-backend/domain/catalog"
	"kusina-backend/infrastructure/cache"
)

// DashboardService serves the admin landing page aggregates and the
// activity feed. Both readers are bound to the dynamic store: the data
// changes with every write, so it gets a short TTL rather than a long one.
type DashboardService struct {
	stats      ports.StatsRepository
	activities ports.ActivityRepository
	router     *cache.Router
	logger     *zap.Logger

	getDashboardStats   cache.Func[catalog.DashboardStats]
	getRecentActivities cache.Func[[]audit.Activity]
}

// NewDashboardService builds the service and binds its readers to the
// dynamic store.
func NewDashboardService(
	stats ports.StatsRepository,
	activities ports.ActivityRepository,
	dynamic *cache.Store,
	router *cache.Router,
	logger *zap.Logger,
) *DashboardService {
	s := &DashboardService{
		stats:      stats,
		activities: activities,
		router:     router,
		logger:     logger,
	}

	s.getDashboardStats = cache.Memoize(dynamic, "getDashboardStats",
		func(ctx context.Context, args ...any) (catalog.DashboardStats, error) {
			return s.stats.DashboardStats(ctx)
		})
	s.getRecentActivities = cache.Memoize(dynamic, "getRecentActivities",
		func(ctx context.Context, args ...any) ([]audit.Activity, error) {
			limit := 50
			if len(args) > 0 {
				if n, ok := args[0].(int); ok {
					limit = n
				}
			}
			return s.activities.ListRecent(ctx, limit)
		})

	return s
}

// GetDashboardStats returns the aggregate counters, cached briefly.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (catalog.DashboardStats, error) {
	return s.getDashboardStats(ctx)
}

// GetRecentActivities returns the newest audit records, cached briefly.
func (s *DashboardService) GetRecentActivities(ctx context.Context, limit int) ([]audit.Activity, error) {
	if limit <= 0 {
		return s.getRecentActivities(ctx)
	}
	return s.getRecentActivities(ctx, limit)
}

// LogActivity appends a free-form audit record from the UI (for actions
// that happen outside the catalog services) and stales the feed.
func (s *DashboardService) LogActivity(ctx context.Context, act audit.Activity) (audit.Activity, error) {
	recorded, err := s.activities.Record(ctx, act)
	if err != nil {
		return audit.Activity{}, err
	}
	s.router.Invalidate(OpActivityLogged)
	return recorded, nil
}
