package domain

// Snapshot is the single immutable aggregation result covering every KPI
// section the dashboard renders. It is built fresh on each poll, never
// mutated afterwards, and serialized as one JSON object whose keys form
// the wire contract with the display client.
type Snapshot struct {
	Timestamp                         string               `json:"timestamp"`
	TicketsStatus                     StatusSummary        `json:"tickets_status"`
	TicketsPriority                   []PriorityCount      `json:"tickets_priority"`
	TicketsCategory                   []CategoryCount      `json:"tickets_category"`
	TicketsByEntity                   []EntityCount        `json:"tickets_by_entity"`
	TicketsByMonth                    []MonthCount         `json:"tickets_by_month"`
	TicketsTechnician                 []TechnicianActivity `json:"tickets_technician"`
	TechnicianMonthlyRanking          []TechnicianRanking  `json:"technician_monthly_ranking"`
	ResolutionTime                    ResolutionTimeStats  `json:"resolution_time"`
	DailyComparison                   DailyComparison      `json:"daily_comparison"`
	OverdueTickets                    OverdueSummary       `json:"overdue_tickets"`
	Satisfaction                      SatisfactionStats    `json:"satisfaction"`
	OpenTicketsDetails                []OpenTicketDetail   `json:"open_tickets_details"`
	ResolvedByTechnician30Days        []TechnicianResolved `json:"resolved_by_technician_30_days"`
	ResolvedByTechnicianPreviousMonth []TechnicianResolved `json:"resolved_by_technician_previous_month"`
	PeriodLast30Days                  string               `json:"period_last_30_days"`
	PeriodPreviousMonth               string               `json:"period_previous_month"`
}

// StatusSummary counts non-deleted tickets per status. TotalOpen covers
// new, assigned and planned tickets only; pending is reported separately.
type StatusSummary struct {
	TotalCreated int `json:"total_created"`
	New          int `json:"new"`
	Assigned     int `json:"assigned"`
	Planned      int `json:"planned"`
	Pending      int `json:"pending"`
	Resolved     int `json:"resolved"`
	Closed       int `json:"closed"`
	TotalOpen    int `json:"total_open"`
}

// PriorityCount is one row of the open-ticket priority distribution.
type PriorityCount struct {
	Priority int    `json:"priority"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
}

// CategoryCount is one row of the current-month category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}

// EntityCount is one row of the all-time entity breakdown.
type EntityCount struct {
	Entity string `json:"entity"`
	Total  int    `json:"total"`
}

// MonthCount is one point of the monthly creation trend. Months without
// tickets are omitted; the series is sparse by contract.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Total int    `json:"total"`
}

// TechnicianActivity summarizes one technician's tickets created in the
// trailing 30 days.
type TechnicianActivity struct {
	Technician string `json:"technician"`
	Total      int    `json:"total"`
	Open       int    `json:"open"`
	Resolved   int    `json:"resolved"`
}

// TechnicianRanking is one row of the current-month technician ranking.
type TechnicianRanking struct {
	Technician     string  `json:"technician"`
	Total          int     `json:"total"`
	Closed         int     `json:"closed"`
	Open           int     `json:"open"`
	ResolutionRate float64 `json:"resolution_rate"` // percentage, one decimal
}

// ResolutionTimeStats describes creation-to-resolution times for tickets
// resolved in the trailing 30 days.
type ResolutionTimeStats struct {
	MeanHours     float64 `json:"mean_hours"`
	MinHours      float64 `json:"min_hours"`
	MaxHours      float64 `json:"max_hours"`
	TotalResolved int     `json:"total_resolved"`
	MeanFormatted string  `json:"mean_formatted"`
}

// DailyComparison counts ticket creation across short trailing windows.
// The display client derives the trend arrow from today vs. yesterday.
type DailyComparison struct {
	Today      int `json:"today"`
	Yesterday  int `json:"yesterday"`
	Last7Days  int `json:"last_7_days"`
	Last30Days int `json:"last_30_days"`
}

// OverdueSummary lists SLA-overdue open tickets. Items holds at most the
// five oldest; the client renders "+N more" from Total when it exceeds
// the listed items.
type OverdueSummary struct {
	Total int           `json:"total"`
	Items []OverdueItem `json:"items"`
}

// OverdueItem identifies one overdue ticket; Title is truncated to fit
// the display panel.
type OverdueItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// SatisfactionStats summarizes survey answers from the trailing 30 days.
type SatisfactionStats struct {
	MeanScore      float64 `json:"mean_score"`
	TotalResponses int     `json:"total_responses"`
	Percentage     float64 `json:"percentage"` // mean/5*100, one decimal
	Stars          float64 `json:"stars"`      // mean rounded to one decimal
}

// OpenTicketDetail is one row of the open-ticket table. A ticket with
// several assignees yields one row per assignee, matching the join the
// display always showed.
type OpenTicketDetail struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Technician string `json:"technician"`
	CreatedAt  string `json:"created_at"` // dd/mm/yyyy HH:MM
	Status     string `json:"status"`
}

// TechnicianResolved is one row of a resolved-tickets ranking.
type TechnicianResolved struct {
	Technician string `json:"technician"`
	Resolved   int    `json:"resolved"`
}

// EmptySnapshot returns a snapshot with every section set to its
// documented zero/empty default. List sections are non-nil so they
// serialize as [] rather than null.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		TicketsPriority:                   []PriorityCount{},
		TicketsCategory:                   []CategoryCount{},
		TicketsByEntity:                   []EntityCount{},
		TicketsByMonth:                    []MonthCount{},
		TicketsTechnician:                 []TechnicianActivity{},
		TechnicianMonthlyRanking:          []TechnicianRanking{},
		ResolutionTime:                    ResolutionTimeStats{MeanFormatted: "0h"},
		OverdueTickets:                    OverdueSummary{Items: []OverdueItem{}},
		OpenTicketsDetails:                []OpenTicketDetail{},
		ResolvedByTechnician30Days:        []TechnicianResolved{},
		ResolvedByTechnicianPreviousMonth: []TechnicianResolved{},
	}
}
