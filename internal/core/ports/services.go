package ports

import (
	"context"

	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
)

// SnapshotService builds one consistent KPI snapshot per call.
//
// A single metric failing never fails the build; the metric's documented
// default is substituted instead. Only an unreachable store aborts the
// build, surfaced as errors.ErrStoreUnavailable.
type SnapshotService interface {
	BuildSnapshot(ctx context.Context) (*domain.Snapshot, error)
}
