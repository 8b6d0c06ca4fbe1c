// internal/domain/types.go
//
// Wire-level entities for the job marketplace. Every record here is minted and
// mutated by the backing API; the client only holds copies fetched on demand.

package domain

// UserRole determines which dashboard a user sees and which lifecycle
// operations the API will accept from them.
type UserRole string

const (
	RoleAgent      UserRole = "AGENT"
	RoleContractor UserRole = "CONTRACTOR"
)

// JobStatus follows OPEN → ASSIGNED → {COMPLETED | CANCELLED}.
// COMPLETED and CANCELLED are terminal.
type JobStatus string

const (
	JobOpen      JobStatus = "OPEN"
	JobAssigned  JobStatus = "ASSIGNED"
	JobCompleted JobStatus = "COMPLETED"
	JobCancelled JobStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are exposed for the status.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobCancelled
}

// ApplicationStatus follows SUBMITTED → {APPROVED | REJECTED | WITHDRAWN}.
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationApproved  ApplicationStatus = "APPROVED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

// WorkPlanStatus follows NOT_STARTED → IN_PROGRESS → COMPLETED. The server is
// the authority on ordering; the client offers all three choices.
type WorkPlanStatus string

const (
	WorkPlanNotStarted WorkPlanStatus = "NOT_STARTED"
	WorkPlanInProgress WorkPlanStatus = "IN_PROGRESS"
	WorkPlanCompleted  WorkPlanStatus = "COMPLETED"
)

// WorkPlanStatuses lists the selectable statuses in display order.
func WorkPlanStatuses() []WorkPlanStatus {
	return []WorkPlanStatus{WorkPlanNotStarted, WorkPlanInProgress, WorkPlanCompleted}
}

// InvoiceStatus follows SUBMITTED → APPROVED → PAID.
type InvoiceStatus string

const (
	InvoiceSubmitted InvoiceStatus = "SUBMITTED"
	InvoiceApproved  InvoiceStatus = "APPROVED"
	InvoicePaid      InvoiceStatus = "PAID"
)

// User is immutable after registration from the client's perspective.
// Skills and education are only populated for contractors.
type User struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Role          UserRole `json:"role"`
	Email         string   `json:"email,omitempty"`
	ContactNumber string   `json:"contact_number,omitempty"`
	Skills        string   `json:"skills,omitempty"`
	Education     string   `json:"education,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// Job is owned by one agent. AssignedContractorID is nil until an
// application is approved.
type Job struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Description          *string   `json:"description"`
	Budget               *float64  `json:"budget"`
	Status               JobStatus `json:"status"`
	AgentID              int64     `json:"agent_id"`
	AssignedContractorID *int64    `json:"assigned_contractor_id"`
	CreatedAt            string    `json:"created_at"`
}

// Application is a contractor's bid on an OPEN job. Contractor is embedded
// when the agent lists applications for a job they own.
type Application struct {
	ID           int64             `json:"id"`
	JobID        int64             `json:"job_id"`
	ContractorID int64             `json:"contractor_id"`
	Contractor   *User             `json:"contractor,omitempty"`
	ProposedCost *float64          `json:"proposed_cost"`
	Status       ApplicationStatus `json:"status"`
	CreatedAt    string            `json:"created_at"`
}

// WorkPlan is zero-or-one per job, authored by the assigned contractor.
// Dates are calendar dates in YYYY-MM-DD form.
type WorkPlan struct {
	ID              int64          `json:"id"`
	JobID           int64          `json:"job_id"`
	ContractorID    int64          `json:"contractor_id"`
	PlanDescription *string        `json:"plan_description"`
	StartDate       *string        `json:"start_date"`
	EndDate         *string        `json:"end_date"`
	Status          WorkPlanStatus `json:"status"`
	CreatedAt       string         `json:"created_at"`
}

// Invoice is zero-or-one per job, creatable only once the job's work plan
// has reached COMPLETED.
type Invoice struct {
	ID           int64         `json:"id"`
	JobID        int64         `json:"job_id"`
	ContractorID int64         `json:"contractor_id"`
	Amount       float64       `json:"amount"`
	Status       InvoiceStatus `json:"status"`
	CreatedAt    string        `json:"created_at"`
}
