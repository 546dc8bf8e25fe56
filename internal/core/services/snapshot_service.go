package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
	apperrors "github.com/lorrc/glpi-dashboard-backend/internal/core/errors"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/ports"
)

// buildState tracks a single build: Building until every metric has run,
// then Ready, or Failed when the store is unreachable.
type buildState int

const (
	stateBuilding buildState = iota
	stateReady
	stateFailed
)

func (s buildState) String() string {
	switch s {
	case stateReady:
		return "ready"
	case stateFailed:
		return "failed"
	default:
		return "building"
	}
}

// SnapshotService orchestrates the metric catalog into one immutable
// snapshot per call. Metrics run concurrently; a metric error is logged
// and replaced with that section's zero/empty default, so a single bad
// aggregate never takes down the whole dashboard. Only an unreachable
// store fails the build.
type SnapshotService struct {
	store  ports.TicketStore
	agg    *Aggregator
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.SnapshotService = (*SnapshotService)(nil)

// Option customizes a SnapshotService.
type Option func(*SnapshotService)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *SnapshotService) { s.now = now }
}

// NewSnapshotService creates the snapshot builder on top of the given
// store.
func NewSnapshotService(store ports.TicketStore, logger *slog.Logger, opts ...Option) *SnapshotService {
	s := &SnapshotService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.agg = NewAggregator(store, func() time.Time { return s.now() })
	return s
}

// BuildSnapshot computes every KPI section and assembles the snapshot
// document. It returns an error only when the ticket store cannot be
// reached at all.
func (s *SnapshotService) BuildSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	start := s.now()
	state := stateBuilding

	if err := s.store.Ping(ctx); err != nil {
		state = stateFailed
		s.logger.Error("snapshot build aborted", "state", state.String(), "error", err)
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, apperrors.NewStoreUnavailableError("ticket store unreachable: " + err.Error())
	}

	snap := domain.EmptySnapshot()

	// Each task fills exactly one section; on error the section keeps
	// its default from EmptySnapshot.
	type task struct {
		name string
		run  func(context.Context) error
	}
	tasks := []task{
		{"tickets_status", func(ctx context.Context) error {
			v, err := s.agg.TicketsByStatus(ctx)
			if err == nil {
				snap.TicketsStatus = v
			}
			return err
		}},
		{"tickets_priority", func(ctx context.Context) error {
			v, err := s.agg.TicketsByPriority(ctx)
			if err == nil {
				snap.TicketsPriority = v
			}
			return err
		}},
		{"tickets_category", func(ctx context.Context) error {
			v, err := s.agg.TicketsByCategory(ctx)
			if err == nil {
				snap.TicketsCategory = v
			}
			return err
		}},
		{"tickets_by_entity", func(ctx context.Context) error {
			v, err := s.agg.TicketsByEntity(ctx)
			if err == nil {
				snap.TicketsByEntity = v
			}
			return err
		}},
		{"tickets_by_month", func(ctx context.Context) error {
			v, err := s.agg.TicketsByMonth(ctx)
			if err == nil {
				snap.TicketsByMonth = v
			}
			return err
		}},
		{"tickets_technician", func(ctx context.Context) error {
			v, err := s.agg.TicketsByTechnician(ctx)
			if err == nil {
				snap.TicketsTechnician = v
			}
			return err
		}},
		{"technician_monthly_ranking", func(ctx context.Context) error {
			v, err := s.agg.TechnicianMonthlyRanking(ctx)
			if err == nil {
				snap.TechnicianMonthlyRanking = v
			}
			return err
		}},
		{"resolution_time", func(ctx context.Context) error {
			v, err := s.agg.ResolutionTime(ctx)
			if err == nil {
				snap.ResolutionTime = v
			}
			return err
		}},
		{"daily_comparison", func(ctx context.Context) error {
			v, err := s.agg.DailyComparison(ctx)
			if err == nil {
				snap.DailyComparison = v
			}
			return err
		}},
		{"overdue_tickets", func(ctx context.Context) error {
			v, err := s.agg.OverdueTickets(ctx)
			if err == nil {
				snap.OverdueTickets = v
			}
			return err
		}},
		{"satisfaction", func(ctx context.Context) error {
			v, err := s.agg.Satisfaction(ctx)
			if err == nil {
				snap.Satisfaction = v
			}
			return err
		}},
		{"open_tickets_details", func(ctx context.Context) error {
			v, err := s.agg.OpenTicketsDetails(ctx)
			if err == nil {
				snap.OpenTicketsDetails = v
			}
			return err
		}},
		{"resolved_by_technician_30_days", func(ctx context.Context) error {
			v, err := s.agg.ResolvedByTechnician30Days(ctx)
			if err == nil {
				snap.ResolvedByTechnician30Days = v
			}
			return err
		}},
		{"resolved_by_technician_previous_month", func(ctx context.Context) error {
			v, err := s.agg.ResolvedByTechnicianPreviousMonth(ctx)
			if err == nil {
				snap.ResolvedByTechnicianPreviousMonth = v
			}
			return err
		}},
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fatal error
	)
	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			err := t.run(ctx)
			if err == nil {
				return
			}
			if errors.Is(err, apperrors.ErrStoreUnavailable) {
				mu.Lock()
				if fatal == nil {
					fatal = err
				}
				mu.Unlock()
				return
			}
			s.logger.Warn("metric computation failed, using default",
				"metric", t.name, "error", err)
		}(t)
	}
	wg.Wait()

	if fatal != nil {
		state = stateFailed
		s.logger.Error("snapshot build failed", "state", state.String(), "error", fatal)
		return nil, fatal
	}

	now := s.now()
	snap.Timestamp = now.Format(buildTSLayout)
	snap.PeriodLast30Days = periodLast30Days(now)
	snap.PeriodPreviousMonth = previousMonthLabel(now)

	state = stateReady
	s.logger.Info("snapshot built",
		"state", state.String(),
		"metrics", len(tasks),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, nil
}
