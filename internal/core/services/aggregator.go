package services

import (
	"context"
	"sort"
	"time"

	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/ports"
)

// Aggregator is the fixed catalog of KPI computations. Each metric is an
// independent read over the store's current state plus the clock; none
// blocks on another and minor skew between concurrently computed metrics
// is tolerated.
type Aggregator struct {
	store ports.TicketStore
	now   func() time.Time
}

// NewAggregator creates the metric catalog. A nil clock defaults to
// time.Now.
func NewAggregator(store ports.TicketStore, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{store: store, now: now}
}

// TicketsByStatus counts all non-deleted tickets per status.
func (a *Aggregator) TicketsByStatus(ctx context.Context) (domain.StatusSummary, error) {
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{})
	if err != nil {
		return domain.StatusSummary{}, err
	}

	var s domain.StatusSummary
	s.TotalCreated = len(tickets)
	for i := range tickets {
		switch tickets[i].Status {
		case domain.StatusNew:
			s.New++
		case domain.StatusAssigned:
			s.Assigned++
		case domain.StatusPlanned:
			s.Planned++
		case domain.StatusPending:
			s.Pending++
		case domain.StatusResolved:
			s.Resolved++
		case domain.StatusClosed:
			s.Closed++
		}
	}
	s.TotalOpen = s.New + s.Assigned + s.Planned
	return s, nil
}

// TicketsByPriority counts open tickets per priority, highest first.
func (a *Aggregator) TicketsByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{Statuses: domain.OpenStatuses})
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.TicketPriority]int)
	for i := range tickets {
		counts[tickets[i].Priority]++
	}

	out := make([]domain.PriorityCount, 0, len(counts))
	for p, total := range counts {
		out = append(out, domain.PriorityCount{
			Priority: int(p),
			Name:     p.Name(),
			Total:    total,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

// TicketsByCategory ranks the categories of tickets created in the
// current calendar month, top ten by count.
func (a *Aggregator) TicketsByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	monthStart := startOfMonth(a.now())
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{CreatedFrom: &monthStart})
	if err != nil {
		return nil, err
	}

	counts, order := countByLabel(tickets, (*domain.Ticket).CategoryLabel)
	out := make([]domain.CategoryCount, 0, len(order))
	for _, label := range order {
		out = append(out, domain.CategoryCount{Category: label, Total: counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return top(out, 10), nil
}

// TicketsByEntity ranks entities across all non-deleted tickets, top ten
// by count.
func (a *Aggregator) TicketsByEntity(ctx context.Context) ([]domain.EntityCount, error) {
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{})
	if err != nil {
		return nil, err
	}

	counts, order := countByLabel(tickets, (*domain.Ticket).EntityLabel)
	out := make([]domain.EntityCount, 0, len(order))
	for _, label := range order {
		out = append(out, domain.EntityCount{Entity: label, Total: counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return top(out, 10), nil
}

// TicketsByMonth counts tickets created over the trailing twelve months,
// one ascending row per month. Months without tickets are omitted.
func (a *Aggregator) TicketsByMonth(ctx context.Context) ([]domain.MonthCount, error) {
	from := a.now().AddDate(0, -12, 0)
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{CreatedFrom: &from})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range tickets {
		counts[tickets[i].CreatedAt.Format("2006-01")]++
	}

	out := make([]domain.MonthCount, 0, len(counts))
	for month, total := range counts {
		out = append(out, domain.MonthCount{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// TicketsByTechnician summarizes assignee activity on tickets created in
// the trailing 30 days: distinct tickets, open and resolved counts per
// technician, busiest first, top ten.
func (a *Aggregator) TicketsByTechnician(ctx context.Context) ([]domain.TechnicianActivity, error) {
	from := a.now().AddDate(0, 0, -30)
	stats, err := a.technicianStats(ctx, ports.TicketQuery{CreatedFrom: &from},
		ports.AssignmentQuery{Role: domain.RoleAssignee, CreatedFrom: &from})
	if err != nil {
		return nil, err
	}

	out := make([]domain.TechnicianActivity, 0, len(stats))
	for _, st := range stats {
		out = append(out, domain.TechnicianActivity{
			Technician: st.name,
			Total:      len(st.tickets),
			Open:       st.countIn(domain.OpenStatuses),
			Resolved:   st.countOf(domain.StatusResolved),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Open > out[j].Open })
	return top(out, 10), nil
}

// TechnicianMonthlyRanking ranks assignees on tickets created in the
// current calendar month by closed count, then by total, top fifteen.
// The resolution rate is zero when a technician has no tickets.
func (a *Aggregator) TechnicianMonthlyRanking(ctx context.Context) ([]domain.TechnicianRanking, error) {
	monthStart := startOfMonth(a.now())
	stats, err := a.technicianStats(ctx, ports.TicketQuery{CreatedFrom: &monthStart},
		ports.AssignmentQuery{Role: domain.RoleAssignee, CreatedFrom: &monthStart})
	if err != nil {
		return nil, err
	}

	out := make([]domain.TechnicianRanking, 0, len(stats))
	for _, st := range stats {
		row := domain.TechnicianRanking{
			Technician: st.name,
			Total:      len(st.tickets),
			Closed:     st.countIn(domain.DoneStatuses),
			Open:       st.countIn(domain.UnresolvedStatuses),
		}
		if row.Total > 0 {
			row.ResolutionRate = round1(float64(row.Closed) / float64(row.Total) * 100)
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Closed != out[j].Closed {
			return out[i].Closed > out[j].Closed
		}
		return out[i].Total > out[j].Total
	})
	return top(out, 15), nil
}

// ResolutionTime reports mean/min/max hours between creation and
// resolution for tickets resolved in the trailing 30 days. With no
// resolved tickets it returns the zeroed default rather than an error.
func (a *Aggregator) ResolutionTime(ctx context.Context) (domain.ResolutionTimeStats, error) {
	from := a.now().AddDate(0, 0, -30)
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{
		Statuses:     domain.DoneStatuses,
		ResolvedFrom: &from,
	})
	if err != nil {
		return domain.ResolutionTimeStats{}, err
	}

	stats := domain.ResolutionTimeStats{MeanFormatted: "0h"}
	var sum float64
	for i := range tickets {
		t := &tickets[i]
		if t.ResolvedAt == nil {
			continue
		}
		hours := t.ResolvedAt.Sub(t.CreatedAt).Hours()
		if stats.TotalResolved == 0 || hours < stats.MinHours {
			stats.MinHours = hours
		}
		if hours > stats.MaxHours {
			stats.MaxHours = hours
		}
		sum += hours
		stats.TotalResolved++
	}
	if stats.TotalResolved > 0 {
		stats.MeanHours = sum / float64(stats.TotalResolved)
		stats.MeanFormatted = FormatHours(stats.MeanHours)
	}
	return stats, nil
}

// DailyComparison counts ticket creation for today, yesterday and the
// trailing 7- and 30-day windows (calendar days, today included).
func (a *Aggregator) DailyComparison(ctx context.Context) (domain.DailyComparison, error) {
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{})
	if err != nil {
		return domain.DailyComparison{}, err
	}

	today := startOfDay(a.now())
	yesterday := today.AddDate(0, 0, -1)
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, 0, -30)

	var c domain.DailyComparison
	for i := range tickets {
		day := startOfDay(tickets[i].CreatedAt)
		if day.Equal(today) {
			c.Today++
		}
		if day.Equal(yesterday) {
			c.Yesterday++
		}
		if !day.Before(weekAgo) {
			c.Last7Days++
		}
		if !day.Before(monthAgo) {
			c.Last30Days++
		}
	}
	return c, nil
}

// OverdueTickets reports open tickets whose SLA due date has passed:
// the full count plus the five oldest, titles truncated for display.
func (a *Aggregator) OverdueTickets(ctx context.Context) (domain.OverdueSummary, error) {
	now := a.now()
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{
		Statuses:     domain.OpenStatuses,
		SLADueBefore: &now,
	})
	if err != nil {
		return domain.OverdueSummary{}, err
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})

	summary := domain.OverdueSummary{Total: len(tickets), Items: []domain.OverdueItem{}}
	for i := range tickets {
		if len(summary.Items) == 5 {
			break
		}
		summary.Items = append(summary.Items, domain.OverdueItem{
			ID:    tickets[i].ID,
			Title: truncate(tickets[i].Title, 50),
		})
	}
	return summary, nil
}

// OpenTicketsDetails lists the twenty most recent unresolved tickets
// with category, assignee and formatted creation time. A ticket with
// several assignees produces one row per assignee.
func (a *Aggregator) OpenTicketsDetails(ctx context.Context) ([]domain.OpenTicketDetail, error) {
	tickets, err := a.store.Tickets(ctx, ports.TicketQuery{Statuses: domain.UnresolvedStatuses})
	if err != nil {
		return nil, err
	}
	assignments, err := a.store.Assignments(ctx, ports.AssignmentQuery{
		Role:     domain.RoleAssignee,
		Statuses: domain.UnresolvedStatuses,
	})
	if err != nil {
		return nil, err
	}

	assignees := make(map[int64][]string)
	for _, asg := range assignments {
		assignees[asg.TicketID] = append(assignees[asg.TicketID], asg.Technician)
	}

	type row struct {
		detail  domain.OpenTicketDetail
		created time.Time
	}
	rows := make([]row, 0, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		names := assignees[t.ID]
		if len(names) == 0 {
			names = []string{domain.NotAssignedLabel}
		}
		for _, name := range names {
			rows = append(rows, row{
				detail: domain.OpenTicketDetail{
					ID:         t.ID,
					Title:      t.Title,
					Category:   t.CategoryLabel(),
					Technician: name,
					CreatedAt:  t.CreatedAt.Format(dateTimeLayout),
					Status:     t.Status.Label(),
				},
				created: t.CreatedAt,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].created.After(rows[j].created) })

	out := make([]domain.OpenTicketDetail, 0, 20)
	for i := 0; i < len(rows) && i < 20; i++ {
		out = append(out, rows[i].detail)
	}
	return out, nil
}

// Satisfaction summarizes survey scores answered in the trailing 30
// days. Unanswered surveys are excluded; with no answers every figure
// is zero.
func (a *Aggregator) Satisfaction(ctx context.Context) (domain.SatisfactionStats, error) {
	from := a.now().AddDate(0, 0, -30)
	surveys, err := a.store.Surveys(ctx, ports.SurveyQuery{AnsweredFrom: &from})
	if err != nil {
		return domain.SatisfactionStats{}, err
	}

	var stats domain.SatisfactionStats
	var sum float64
	for _, s := range surveys {
		if s.Score == nil {
			continue
		}
		sum += *s.Score
		stats.TotalResponses++
	}
	if stats.TotalResponses > 0 {
		stats.MeanScore = sum / float64(stats.TotalResponses)
		stats.Percentage = round1(stats.MeanScore / 5 * 100)
		stats.Stars = round1(stats.MeanScore)
	}
	return stats, nil
}

// ResolvedByTechnician30Days ranks assignees by distinct tickets closed
// in the trailing 30 days, top fifteen.
func (a *Aggregator) ResolvedByTechnician30Days(ctx context.Context) ([]domain.TechnicianResolved, error) {
	from := a.now().AddDate(0, 0, -30)
	return a.resolvedRanking(ctx, ports.AssignmentQuery{
		Role:         domain.RoleAssignee,
		Statuses:     []domain.TicketStatus{domain.StatusClosed},
		ResolvedFrom: &from,
	})
}

// ResolvedByTechnicianPreviousMonth ranks assignees by distinct tickets
// closed in the previous calendar month, top fifteen.
func (a *Aggregator) ResolvedByTechnicianPreviousMonth(ctx context.Context) ([]domain.TechnicianResolved, error) {
	monthStart := startOfMonth(a.now())
	prevStart := monthStart.AddDate(0, -1, 0)
	return a.resolvedRanking(ctx, ports.AssignmentQuery{
		Role:          domain.RoleAssignee,
		Statuses:      []domain.TicketStatus{domain.StatusClosed},
		ResolvedFrom:  &prevStart,
		ResolvedUntil: &monthStart,
	})
}

func (a *Aggregator) resolvedRanking(ctx context.Context, q ports.AssignmentQuery) ([]domain.TechnicianResolved, error) {
	assignments, err := a.store.Assignments(ctx, q)
	if err != nil {
		return nil, err
	}

	type techCount struct {
		name    string
		tickets map[int64]struct{}
	}
	byTech := make(map[int64]*techCount)
	var order []int64
	for _, asg := range assignments {
		tc, ok := byTech[asg.TechnicianID]
		if !ok {
			tc = &techCount{name: asg.Technician, tickets: make(map[int64]struct{})}
			byTech[asg.TechnicianID] = tc
			order = append(order, asg.TechnicianID)
		}
		tc.tickets[asg.TicketID] = struct{}{}
	}

	out := make([]domain.TechnicianResolved, 0, len(order))
	for _, id := range order {
		tc := byTech[id]
		out = append(out, domain.TechnicianResolved{
			Technician: tc.name,
			Resolved:   len(tc.tickets),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Resolved > out[j].Resolved })
	return top(out, 15), nil
}

// techStats accumulates per-technician ticket figures in first-seen
// order, so equal sort keys keep enumeration order downstream.
type techStats struct {
	name     string
	tickets  map[int64]struct{}       // distinct tickets
	statuses map[domain.TicketStatus]int // per assignment row, mirroring the old join
}

func (s *techStats) countOf(status domain.TicketStatus) int {
	return s.statuses[status]
}

func (s *techStats) countIn(statuses []domain.TicketStatus) int {
	var n int
	for _, st := range statuses {
		n += s.statuses[st]
	}
	return n
}

// technicianStats joins assignments against the tickets matching tq. A
// ticket with several assignees counts once for each of them.
func (a *Aggregator) technicianStats(ctx context.Context, tq ports.TicketQuery, aq ports.AssignmentQuery) ([]*techStats, error) {
	tickets, err := a.store.Tickets(ctx, tq)
	if err != nil {
		return nil, err
	}
	assignments, err := a.store.Assignments(ctx, aq)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Ticket, len(tickets))
	for i := range tickets {
		byID[tickets[i].ID] = &tickets[i]
	}

	byTech := make(map[int64]*techStats)
	var order []int64
	for _, asg := range assignments {
		t, ok := byID[asg.TicketID]
		if !ok {
			continue
		}
		st, ok := byTech[asg.TechnicianID]
		if !ok {
			st = &techStats{
				name:     asg.Technician,
				tickets:  make(map[int64]struct{}),
				statuses: make(map[domain.TicketStatus]int),
			}
			byTech[asg.TechnicianID] = st
			order = append(order, asg.TechnicianID)
		}
		st.tickets[t.ID] = struct{}{}
		st.statuses[t.Status]++
	}

	out := make([]*techStats, 0, len(order))
	for _, id := range order {
		out = append(out, byTech[id])
	}
	return out, nil
}

// countByLabel tallies tickets under a label in first-seen order.
func countByLabel(tickets []domain.Ticket, label func(*domain.Ticket) string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for i := range tickets {
		l := label(&tickets[i])
		if _, seen := counts[l]; !seen {
			order = append(order, l)
		}
		counts[l]++
	}
	return counts, order
}

// top returns at most n leading elements of a sorted slice.
func top[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
