package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
	apperrors "github.com/lorrc/glpi-dashboard-backend/internal/core/errors"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/ports"
)

// TicketStore is the secondary adapter reading GLPI ticketing tables.
// It only ever issues SELECTs; the dashboard owns no write path into
// the ticket database.
type TicketStore struct {
	pool *pgxpool.Pool
}

var _ ports.TicketStore = (*TicketStore)(nil)

// NewTicketStore creates a read-only store on top of a pgx pool.
func NewTicketStore(pool *pgxpool.Pool) ports.TicketStore {
	return &TicketStore{pool: pool}
}

// Ping verifies the store is reachable. Failures are wrapped as
// ErrStoreUnavailable, the one condition that aborts a snapshot build.
func (s *TicketStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// Tickets returns ticket rows matching the query, joined with their
// category and entity names.
func (s *TicketStore) Tickets(ctx context.Context, q ports.TicketQuery) ([]domain.Ticket, error) {
	sql := `
SELECT t.id, t.name, t.status, t.priority, c.name, e.name,
       t.date_creation, t.solvedate, t.time_to_resolve, t.is_deleted
FROM glpi_tickets t
LEFT JOIN glpi_itilcategories c ON t.itilcategories_id = c.id
LEFT JOIN glpi_entities e ON t.entities_id = e.id
`
	where, args := ticketFilters("t", q.Statuses, q.IncludeDeleted, nil)
	addTimeFilter(&where, &args, "t.date_creation >=", q.CreatedFrom)
	addTimeFilter(&where, &args, "t.date_creation <", q.CreatedUntil)
	addTimeFilter(&where, &args, "t.solvedate >=", q.ResolvedFrom)
	addTimeFilter(&where, &args, "t.solvedate <", q.ResolvedUntil)
	addTimeFilter(&where, &args, "t.time_to_resolve <", q.SLADueBefore)

	sql += whereClause(where) + " ORDER BY t.id"
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var (
			t        domain.Ticket
			category pgtype.Text
			entity   pgtype.Text
			solved   pgtype.Timestamptz
			slaDue   pgtype.Timestamptz
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.Priority,
			&category, &entity, &t.CreatedAt, &solved, &slaDue, &t.Deleted); err != nil {
			return nil, err
		}
		if category.Valid {
			t.Category = &category.String
		}
		if entity.Valid {
			t.Entity = &entity.String
		}
		if solved.Valid {
			t.ResolvedAt = &solved.Time
		}
		if slaDue.Valid {
			t.SLADueAt = &slaDue.Time
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Assignments returns ticket-technician links matching the query, with
// the time bounds applied to the linked ticket. Deleted tickets never
// contribute links.
func (s *TicketStore) Assignments(ctx context.Context, q ports.AssignmentQuery) ([]domain.Assignment, error) {
	sql := `
SELECT tu.tickets_id, u.id, tu.type, u.firstname || ' ' || u.realname
FROM glpi_tickets_users tu
JOIN glpi_users u ON tu.users_id = u.id
JOIN glpi_tickets t ON tu.tickets_id = t.id
`
	where, args := ticketFilters("t", q.Statuses, false, nil)
	args = append(args, int(q.Role))
	where = append(where, fmt.Sprintf("tu.type = $%d", len(args)))
	addTimeFilter(&where, &args, "t.date_creation >=", q.CreatedFrom)
	addTimeFilter(&where, &args, "t.date_creation <", q.CreatedUntil)
	addTimeFilter(&where, &args, "t.solvedate >=", q.ResolvedFrom)
	addTimeFilter(&where, &args, "t.solvedate <", q.ResolvedUntil)

	sql += whereClause(where) + " ORDER BY tu.tickets_id, u.id"

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]domain.Assignment, 0)
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.TicketID, &a.TechnicianID, &a.Role, &a.Technician); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Surveys returns satisfaction survey rows, including unanswered ones;
// callers decide whether a nil score counts.
func (s *TicketStore) Surveys(ctx context.Context, q ports.SurveyQuery) ([]domain.SatisfactionSurvey, error) {
	sql := `
SELECT s.tickets_id, s.satisfaction, s.date_answered
FROM glpi_ticketsatisfactions s
`
	var (
		where []string
		args  []any
	)
	addTimeFilter(&where, &args, "s.date_answered >=", q.AnsweredFrom)
	sql += whereClause(where) + " ORDER BY s.tickets_id"

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys := make([]domain.SatisfactionSurvey, 0)
	for rows.Next() {
		var (
			sv       domain.SatisfactionSurvey
			score    pgtype.Float8
			answered pgtype.Timestamptz
		)
		if err := rows.Scan(&sv.TicketID, &score, &answered); err != nil {
			return nil, err
		}
		if score.Valid {
			sv.Score = &score.Float64
		}
		if answered.Valid {
			sv.AnsweredAt = &answered.Time
		}
		surveys = append(surveys, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return surveys, nil
}

// ticketFilters builds the filters shared by ticket and assignment
// reads: deletion flag and status set.
func ticketFilters(alias string, statuses []domain.TicketStatus, includeDeleted bool, args []any) ([]string, []any) {
	var where []string
	if !includeDeleted {
		where = append(where, fmt.Sprintf("NOT %s.is_deleted", alias))
	}
	if len(statuses) > 0 {
		values := make([]int, len(statuses))
		for i, s := range statuses {
			values[i] = int(s)
		}
		args = append(args, values)
		where = append(where, fmt.Sprintf("%s.status = ANY($%d)", alias, len(args)))
	}
	return where, args
}

// addTimeFilter appends a bound-parameter time comparison when the
// bound is set.
func addTimeFilter(where *[]string, args *[]any, expr string, t *time.Time) {
	if t == nil {
		return
	}
	*args = append(*args, *t)
	*where = append(*where, fmt.Sprintf("%s $%d", expr, len(*args)))
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(where, " AND ")
}
