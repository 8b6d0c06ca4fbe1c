// internal/api/endpoints.go
//
// One typed method per endpoint the marketplace exposes. Mutating payloads
// are validated locally before anything goes on the wire; the server remains
// the sole authority on whether a transition actually happens.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/arshanss504/job-contractor/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	UserID   int64  `json:"user_id" validate:"gt=0"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the login response envelope.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// RegisterRequest creates an account. Skills and education only carry
// meaning for contractors but are not rejected for agents.
type RegisterRequest struct {
	Name          string          `json:"name" validate:"required"`
	Role          domain.UserRole `json:"role" validate:"required,oneof=AGENT CONTRACTOR"`
	Password      string          `json:"password" validate:"required,min=6"`
	Email         string          `json:"email,omitempty" validate:"omitempty,email"`
	ContactNumber string          `json:"contact_number,omitempty"`
	Skills        string          `json:"skills,omitempty"`
	Education     string          `json:"education,omitempty"`
}

// JobCreate posts a new OPEN job owned by the calling agent.
type JobCreate struct {
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget" validate:"omitempty,gt=0"`
}

// ApplicationCreate is a contractor's bid on an open job.
type ApplicationCreate struct {
	ProposedCost float64 `json:"proposed_cost" validate:"gt=0"`
}

// WorkPlanCreate declares the assigned contractor's approach. Dates are
// YYYY-MM-DD and optional.
type WorkPlanCreate struct {
	PlanDescription string  `json:"plan_description" validate:"required"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
}

// WorkPlanStatusUpdate moves a work plan to the chosen status. Ordering is
// not enforced here; the server decides legality.
type WorkPlanStatusUpdate struct {
	Status domain.WorkPlanStatus `json:"status" validate:"required,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
}

// InvoiceCreate submits the contractor's payment claim.
type InvoiceCreate struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

// Login exchanges a user id and password for an access token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	var out TokenResponse
	if err := validate.Struct(req); err != nil {
		return out, err
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", req, &out)
	return out, err
}

// Me fetches the profile belonging to the current bearer token.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out, err
}

// Register creates a new account and returns the server-assigned record.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	var out domain.User
	if err := validate.Struct(req); err != nil {
		return out, err
	}
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &out)
	return out, err
}

// CreateJob posts a new job. Agent only.
func (c *Client) CreateJob(ctx context.Context, req JobCreate) (domain.Job, error) {
	var out domain.Job
	if err := validate.Struct(req); err != nil {
		return out, err
	}
	err := c.do(ctx, http.MethodPost, "/jobs/", req, &out)
	return out, err
}

// OpenJobs lists OPEN jobs, optionally filtered by a title search term.
func (c *Client) OpenJobs(ctx context.Context, search string) ([]domain.Job, error) {
	path := "/jobs/"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var out []domain.Job
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// AgentJobs lists every job owned by the calling agent.
func (c *Client) AgentJobs(ctx context.Context) ([]domain.Job, error) {
	var out []domain.Job
	err := c.do(ctx, http.MethodGet, "/jobs/agent/me", nil, &out)
	return out, err
}

// AssignedJobs lists jobs assigned to the calling contractor.
func (c *Client) AssignedJobs(ctx context.Context) ([]domain.Job, error) {
	var out []domain.Job
	err := c.do(ctx, http.MethodGet, "/jobs/assigned/me", nil, &out)
	return out, err
}

// JobApplications lists applications on a job the calling agent owns.
func (c *Client) JobApplications(ctx context.Context, jobID int64) ([]domain.Application, error) {
	var out []domain.Application
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/applications/job/%d", jobID), nil, &out)
	return out, err
}

// MyApplications lists the calling contractor's applications.
func (c *Client) MyApplications(ctx context.Context) ([]domain.Application, error) {
	var out []domain.Application
	err := c.do(ctx, http.MethodGet, "/applications/me", nil, &out)
	return out, err
}

// Apply submits an application against an OPEN job.
func (c *Client) Apply(ctx context.Context, jobID int64, req ApplicationCreate) (domain.Application, error) {
	var out domain.Application
	if err := validate.Struct(req); err != nil {
		return out, err
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/applications/apply/%d", jobID), req, &out)
	return out, err
}

// ApproveApplication approves one application, assigning the job. The server
// settles competing applications; callers reconcile by refetching.
func (c *Client) ApproveApplication(ctx context.Context, applicationID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/applications/approve/%d", applicationID), nil, nil)
}

// RejectApplication rejects one application.
func (c *Client) RejectApplication(ctx context.Context, applicationID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/applications/reject/%d", applicationID), nil, nil)
}

// WorkPlan fetches the work plan for a job as its assigned contractor.
// ErrNotFound means none exists yet.
func (c *Client) WorkPlan(ctx context.Context, jobID int64) (domain.WorkPlan, error) {
	var out domain.WorkPlan
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/work-plans/%d", jobID), nil, &out)
	return out, err
}

// WorkPlanAgentView fetches the work plan for a job the calling agent owns.
// ErrNotFound means none exists yet.
func (c *Client) WorkPlanAgentView(ctx context.Context, jobID int64) (domain.WorkPlan, error) {
	var out domain.WorkPlan
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/work-plans/agent-view/%d", jobID), nil, &out)
	return out, err
}

// CreateWorkPlan authors the work plan for an assigned job.
func (c *Client) CreateWorkPlan(ctx context.Context, jobID int64, req WorkPlanCreate) (domain.WorkPlan, error) {
	var out domain.WorkPlan
	if err := validate.Struct(req); err != nil {
		return out, err
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/work-plans/%d", jobID), req, &out)
	return out, err
}

// UpdateWorkPlanStatus moves the job's work plan to the chosen status.
func (c *Client) UpdateWorkPlanStatus(ctx context.Context, jobID int64, req WorkPlanStatusUpdate) (domain.WorkPlan, error) {
	var out domain.WorkPlan
	if err := validate.Struct(req); err != nil {
		return out, err
	}
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/work-plans/%d", jobID), req, &out)
	return out, err
}

// JobInvoice fetches the invoice on a job the calling agent owns.
// ErrNotFound means none has been submitted.
func (c *Client) JobInvoice(ctx context.Context, jobID int64) (domain.Invoice, error) {
	var out domain.Invoice
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/invoices/job/%d", jobID), nil, &out)
	return out, err
}

// MyJobInvoice fetches the calling contractor's invoice on a job.
// ErrNotFound means none has been submitted.
func (c *Client) MyJobInvoice(ctx context.Context, jobID int64) (domain.Invoice, error) {
	var out domain.Invoice
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/invoices/job/%d/me", jobID), nil, &out)
	return out, err
}

// SubmitInvoice submits the payment claim for a job whose work plan is
// COMPLETED. The server also marks the job COMPLETED.
func (c *Client) SubmitInvoice(ctx context.Context, jobID int64, req InvoiceCreate) (domain.Invoice, error) {
	var out domain.Invoice
	if err := validate.Struct(req); err != nil {
		return out, err
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/invoices/%d", jobID), req, &out)
	return out, err
}
