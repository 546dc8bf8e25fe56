package ports

import (
	"context"
	"time"

	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
)

// TicketQuery filters ticket reads. Nil time bounds are open-ended.
// Deleted tickets are excluded unless IncludeDeleted is set; a Limit of
// zero means no limit.
type TicketQuery struct {
	Statuses       []domain.TicketStatus
	CreatedFrom    *time.Time
	CreatedUntil   *time.Time
	ResolvedFrom   *time.Time // implies a resolution date is set
	ResolvedUntil  *time.Time
	SLADueBefore   *time.Time // implies an SLA due date is set
	IncludeDeleted bool
	Limit          int
}

// AssignmentQuery filters ticket-technician links, with the time bounds
// applying to the linked ticket. Deleted tickets are always excluded.
type AssignmentQuery struct {
	Role          domain.AssignmentRole
	Statuses      []domain.TicketStatus
	CreatedFrom   *time.Time
	CreatedUntil  *time.Time
	ResolvedFrom  *time.Time
	ResolvedUntil *time.Time
}

// SurveyQuery filters satisfaction survey reads.
type SurveyQuery struct {
	AnsweredFrom *time.Time
}

// TicketStore is read-only access to the GLPI ticketing data. Each call
// is a fresh read; no caching and no transactions. Implementations wrap
// connection failures with errors.ErrStoreUnavailable so callers can
// distinguish an unreachable store from a bad row.
type TicketStore interface {
	Ping(ctx context.Context) error
	Tickets(ctx context.Context, q TicketQuery) ([]domain.Ticket, error)
	Assignments(ctx context.Context, q AssignmentQuery) ([]domain.Assignment, error)
	Surveys(ctx context.Context, q SurveyQuery) ([]domain.SatisfactionSurvey, error)
}
