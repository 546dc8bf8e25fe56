package domain

import "time"

// TicketStatus mirrors the GLPI status enumeration.
type TicketStatus int

const (
	StatusNew      TicketStatus = 1
	StatusAssigned TicketStatus = 2
	StatusPlanned  TicketStatus = 3
	StatusPending  TicketStatus = 4
	StatusResolved TicketStatus = 5
	StatusClosed   TicketStatus = 6
)

// OpenStatuses are the statuses counted as "open" in headline figures
// (pending tickets are tracked separately).
var OpenStatuses = []TicketStatus{StatusNew, StatusAssigned, StatusPlanned}

// UnresolvedStatuses are every status short of resolved/closed.
var UnresolvedStatuses = []TicketStatus{StatusNew, StatusAssigned, StatusPlanned, StatusPending}

// DoneStatuses are the terminal statuses.
var DoneStatuses = []TicketStatus{StatusResolved, StatusClosed}

// Label returns the display name for a status.
func (s TicketStatus) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusAssigned:
		return "Assigned"
	case StatusPlanned:
		return "Planned"
	case StatusPending:
		return "Pending"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	default:
		return "Other"
	}
}

// TicketPriority is the GLPI 1-6 ordinal priority.
type TicketPriority int

// Name returns the display name for a priority. Values outside the
// 1-6 range render as "Undefined".
func (p TicketPriority) Name() string {
	switch p {
	case 1:
		return "Very Low"
	case 2:
		return "Low"
	case 3:
		return "Medium"
	case 4:
		return "High"
	case 5:
		return "Very High"
	case 6:
		return "Critical"
	default:
		return "Undefined"
	}
}

// Fallback labels for tickets with no category, entity or assignee.
const (
	NoCategoryLabel  = "No Category"
	NoEntityLabel    = "No Entity"
	NotAssignedLabel = "Not Assigned"
)

// Ticket is a read-only projection of a GLPI ticket row. Category and
// Entity are nil when the ticket has none; ResolvedAt and SLADueAt are
// nil when the corresponding dates are not set.
type Ticket struct {
	ID         int64
	Title      string
	Status     TicketStatus
	Priority   TicketPriority
	Category   *string
	Entity     *string
	CreatedAt  time.Time
	ResolvedAt *time.Time
	SLADueAt   *time.Time
	Deleted    bool
}

// CategoryLabel returns the category name or the fallback label.
func (t *Ticket) CategoryLabel() string {
	if t.Category == nil || *t.Category == "" {
		return NoCategoryLabel
	}
	return *t.Category
}

// EntityLabel returns the entity name or the fallback label.
func (t *Ticket) EntityLabel() string {
	if t.Entity == nil || *t.Entity == "" {
		return NoEntityLabel
	}
	return *t.Entity
}

// StatusIn reports whether the ticket's status is one of the given set.
func (t *Ticket) StatusIn(statuses []TicketStatus) bool {
	for _, s := range statuses {
		if t.Status == s {
			return true
		}
	}
	return false
}

// AssignmentRole mirrors the GLPI ticket-user link type.
type AssignmentRole int

const (
	RoleRequester AssignmentRole = 1
	RoleAssignee  AssignmentRole = 2
	RoleObserver  AssignmentRole = 3
)

// Assignment links a ticket to a technician. A ticket may carry several
// assignments; technician aggregates count each link independently.
type Assignment struct {
	TicketID     int64
	TechnicianID int64
	Role         AssignmentRole
	Technician   string // "first last" as stored in GLPI
}

// SatisfactionSurvey is a post-resolution survey answer. Score and
// AnsweredAt are nil when the survey was sent but never answered.
type SatisfactionSurvey struct {
	TicketID   int64
	Score      *float64 // 0..5
	AnsweredAt *time.Time
}
