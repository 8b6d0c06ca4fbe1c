// internal/lifecycle/gating.go
//
// Advisory gating over the job lifecycle:
//
//	OPEN → ASSIGNED → {COMPLETED | CANCELLED}
//
// These functions decide which actions the UI offers given the state it has
// last seen. They are pure so they can be tested without a terminal. The
// server re-verifies every transition; a true answer here only means the
// action is worth attempting, never that it will succeed.

package lifecycle

import "github.com/arshanss504/job-contractor/internal/domain"

// CanApply reports whether a contractor may bid on the job.
func CanApply(job domain.Job) bool {
	return job.Status == domain.JobOpen
}

// CanApprove reports whether the owning agent may approve the application.
// Approval assigns the job, so it requires the job still OPEN and the
// application still SUBMITTED.
func CanApprove(job domain.Job, app domain.Application) bool {
	return job.Status == domain.JobOpen && app.Status == domain.ApplicationSubmitted
}

// CanReject reports whether the owning agent may reject the application.
func CanReject(app domain.Application) bool {
	return app.Status == domain.ApplicationSubmitted
}

// IsAssignee reports whether contractorID is the job's assigned contractor.
func IsAssignee(job domain.Job, contractorID int64) bool {
	return job.AssignedContractorID != nil && *job.AssignedContractorID == contractorID
}

// CanCreateWorkPlan reports whether the assigned contractor may author a
// work plan. It requires the job ASSIGNED and a resolved "no plan exists"
// answer; an unrequested or in-flight plan fetch gates the form off.
func CanCreateWorkPlan(job domain.Job, contractorID int64, plan Remote[domain.WorkPlan]) bool {
	return job.Status == domain.JobAssigned && IsAssignee(job, contractorID) && plan.IsAbsent()
}

// CanAdvanceWorkPlan reports whether the status selector is offered. Any
// loaded plan qualifies; the server is the authority on which moves are
// legal.
func CanAdvanceWorkPlan(job domain.Job, contractorID int64, plan Remote[domain.WorkPlan]) bool {
	if !IsAssignee(job, contractorID) {
		return false
	}
	_, ok := plan.Value()
	return ok
}

// CanSubmitInvoice reports whether the invoice form is offered: plan loaded
// and COMPLETED, and the invoice fetch resolved to "none exists".
func CanSubmitInvoice(job domain.Job, contractorID int64, plan Remote[domain.WorkPlan], invoice Remote[domain.Invoice]) bool {
	if !IsAssignee(job, contractorID) {
		return false
	}
	p, ok := plan.Value()
	if !ok || p.Status != domain.WorkPlanCompleted {
		return false
	}
	return invoice.IsAbsent()
}
