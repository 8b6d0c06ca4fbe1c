// internal/tui/agent_view.go
//
// Agent dashboard: my jobs, a create-job form, the applications list for one
// job with approve/reject, and the lazily loaded work-plan/invoice panel for
// jobs past OPEN.

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arshanss504/job-contractor/internal/api"
	"github.com/arshanss504/job-contractor/internal/domain"
	"github.com/arshanss504/job-contractor/internal/lifecycle"
)

type agentMode int

const (
	agentModeJobs agentMode = iota
	agentModeCreate
	agentModeApplications
)

type agentJobsMsg struct {
	jobs []domain.Job
	err  error
}

type agentAppsMsg struct {
	jobID int64
	apps  []domain.Application
	err   error
}

type jobCreatedMsg struct {
	job domain.Job
	err error
}

type applicationActionMsg struct {
	action string
	jobID  int64
	err    error
}

const (
	jobFieldTitle = iota
	jobFieldDescription
	jobFieldBudget
	jobFieldCount
)

type agentView struct {
	app  *App
	user domain.User
	mode agentMode

	jobs    []domain.Job
	cursor  int
	loading bool

	// Create-job form
	form      []textinput.Model
	formFocus int

	// Applications for the selected job
	appsJobID int64
	apps      []domain.Application
	appCursor int

	// Lazily loaded details keyed by job id
	details       map[int64]*jobDetails
	expandedJobID int64

	errMsg string
}

func newAgentView(app *App, user domain.User) *agentView {
	placeholders := []string{"Title", "Description (optional)", "Budget (optional)"}
	form := make([]textinput.Model, jobFieldCount)
	for i, ph := range placeholders {
		input := textinput.New()
		input.Placeholder = ph
		form[i] = input
	}
	return &agentView{
		app:     app,
		user:    user,
		form:    form,
		details: map[int64]*jobDetails{},
	}
}

func (v *agentView) Init() tea.Cmd {
	v.loading = true
	return v.fetchJobs()
}

func (v *agentView) fetchJobs() tea.Cmd {
	client := v.app.client
	return func() tea.Msg {
		jobs, err := client.AgentJobs(context.Background())
		return agentJobsMsg{jobs: jobs, err: err}
	}
}

func (v *agentView) fetchApplications(jobID int64) tea.Cmd {
	client := v.app.client
	return func() tea.Msg {
		apps, err := client.JobApplications(context.Background(), jobID)
		return agentAppsMsg{jobID: jobID, apps: apps, err: err}
	}
}

func (v *agentView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case agentJobsMsg:
		v.loading = false
		if msg.err != nil {
			return v.fail("Could not load jobs", msg.err)
		}
		v.jobs = msg.jobs
		if v.cursor >= len(v.jobs) {
			v.cursor = max(0, len(v.jobs)-1)
		}
		v.errMsg = ""
		return nil

	case agentAppsMsg:
		if msg.err != nil {
			return v.fail("Could not load applications", msg.err)
		}
		v.mode = agentModeApplications
		v.appsJobID = msg.jobID
		v.apps = msg.apps
		if v.appCursor >= len(v.apps) {
			v.appCursor = max(0, len(v.apps)-1)
		}
		v.errMsg = ""
		return nil

	case jobCreatedMsg:
		if msg.err != nil {
			return v.fail("Could not create job", msg.err)
		}
		v.mode = agentModeJobs
		v.resetForm()
		v.app.setStatus(fmt.Sprintf("Job #%d created", msg.job.ID))
		v.app.logbook.Info("job created", zap.Int64("job_id", msg.job.ID))
		return v.fetchJobs()

	case applicationActionMsg:
		if msg.err != nil {
			return v.fail("Application "+msg.action+" failed", msg.err)
		}
		v.app.setStatus("Application " + msg.action)
		// The server settles competing applications on approval, so both
		// the job list and the application list are refetched.
		return tea.Batch(v.fetchJobs(), v.fetchApplications(msg.jobID))

	case jobDetailsMsg:
		if msg.unauthorized {
			return func() tea.Msg { return sessionExpiredMsg{} }
		}
		entry, ok := v.details[msg.jobID]
		if !ok || entry.gen != msg.gen {
			// A newer fetch owns this job's detail state.
			return nil
		}
		if msg.err != nil {
			delete(v.details, msg.jobID)
			return v.fail("Could not load job details", msg.err)
		}
		entry.plan = msg.plan
		entry.invoice = msg.invoice
		return nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return nil
}

func (v *agentView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch v.mode {
	case agentModeCreate:
		return v.handleCreateKey(msg)
	case agentModeApplications:
		return v.handleApplicationsKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.jobs)-1 {
			v.cursor++
		}
	case "n":
		v.mode = agentModeCreate
		v.formFocus = 0
		v.form[0].Focus()
	case "r":
		v.loading = true
		return v.fetchJobs()
	case "a":
		if job, ok := v.selectedJob(); ok && job.Status == domain.JobOpen {
			v.appCursor = 0
			return v.fetchApplications(job.ID)
		}
	case "enter":
		if job, ok := v.selectedJob(); ok && job.Status != domain.JobOpen {
			return v.toggleDetails(job.ID)
		}
	}
	return nil
}

func (v *agentView) handleCreateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.mode = agentModeJobs
		v.resetForm()
		return nil
	case "tab", "down":
		v.setFormFocus((v.formFocus + 1) % len(v.form))
		return nil
	case "shift+tab", "up":
		v.setFormFocus((v.formFocus + len(v.form) - 1) % len(v.form))
		return nil
	case "enter":
		return v.submitJob()
	}
	var cmd tea.Cmd
	v.form[v.formFocus], cmd = v.form[v.formFocus].Update(msg)
	return cmd
}

func (v *agentView) handleApplicationsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.mode = agentModeJobs
		return nil
	case "up", "k":
		if v.appCursor > 0 {
			v.appCursor--
		}
	case "down", "j":
		if v.appCursor < len(v.apps)-1 {
			v.appCursor++
		}
	case "y":
		job, app, ok := v.selectedApplication()
		if ok && lifecycle.CanApprove(job, app) {
			return v.applicationAction("approved", app.JobID, func(ctx context.Context) error {
				return v.app.client.ApproveApplication(ctx, app.ID)
			})
		}
	case "x":
		_, app, ok := v.selectedApplication()
		if ok && lifecycle.CanReject(app) {
			return v.applicationAction("rejected", app.JobID, func(ctx context.Context) error {
				return v.app.client.RejectApplication(ctx, app.ID)
			})
		}
	}
	return nil
}

func (v *agentView) applicationAction(action string, jobID int64, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := call(context.Background())
		return applicationActionMsg{action: action, jobID: jobID, err: err}
	}
}

func (v *agentView) submitJob() tea.Cmd {
	title := strings.TrimSpace(v.form[jobFieldTitle].Value())
	if title == "" {
		v.errMsg = "Title is required."
		return nil
	}
	req := api.JobCreate{Title: title}
	if desc := strings.TrimSpace(v.form[jobFieldDescription].Value()); desc != "" {
		req.Description = &desc
	}
	if raw := strings.TrimSpace(v.form[jobFieldBudget].Value()); raw != "" {
		budget, err := strconv.ParseFloat(raw, 64)
		if err != nil || budget <= 0 {
			v.errMsg = "Budget must be a positive number."
			return nil
		}
		req.Budget = &budget
	}
	v.errMsg = ""
	client := v.app.client
	return func() tea.Msg {
		job, err := client.CreateJob(context.Background(), req)
		return jobCreatedMsg{job: job, err: err}
	}
}

func (v *agentView) toggleDetails(jobID int64) tea.Cmd {
	if v.expandedJobID == jobID {
		v.expandedJobID = 0
		return nil
	}
	v.expandedJobID = jobID
	gen := newGeneration()
	v.details[jobID] = &jobDetails{
		plan:    lifecycle.LoadingRemote[domain.WorkPlan](),
		invoice: lifecycle.LoadingRemote[domain.Invoice](),
		gen:     gen,
	}
	return fetchJobDetails(v.app.client, jobID, gen, true)
}

func (v *agentView) selectedJob() (domain.Job, bool) {
	if v.cursor < 0 || v.cursor >= len(v.jobs) {
		return domain.Job{}, false
	}
	return v.jobs[v.cursor], true
}

func (v *agentView) selectedApplication() (domain.Job, domain.Application, bool) {
	if v.appCursor < 0 || v.appCursor >= len(v.apps) {
		return domain.Job{}, domain.Application{}, false
	}
	app := v.apps[v.appCursor]
	for _, job := range v.jobs {
		if job.ID == v.appsJobID {
			return job, app, true
		}
	}
	return domain.Job{}, app, false
}

func (v *agentView) fail(status string, err error) tea.Cmd {
	if api.IsUnauthorized(err) {
		return func() tea.Msg { return sessionExpiredMsg{} }
	}
	v.errMsg = fmt.Sprintf("%s: %v", status, err)
	v.app.logbook.Warn(status, zap.Error(err))
	return nil
}

func (v *agentView) setFormFocus(idx int) {
	v.form[v.formFocus].Blur()
	v.formFocus = idx
	v.form[v.formFocus].Focus()
}

func (v *agentView) resetForm() {
	for i := range v.form {
		v.form[i].SetValue("")
		v.form[i].Blur()
	}
	v.formFocus = 0
}

func (v *agentView) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Agent Dashboard · %s", v.user.Name)))
	b.WriteString("\n\n")

	switch v.mode {
	case agentModeCreate:
		b.WriteString(v.renderCreateForm())
	case agentModeApplications:
		b.WriteString(v.renderApplications())
	default:
		b.WriteString(v.renderJobs())
	}

	if v.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render(v.errMsg))
	}
	return b.String()
}

func (v *agentView) renderJobs() string {
	if v.loading {
		return mutedStyle.Render("Loading jobs...")
	}
	if len(v.jobs) == 0 {
		return mutedStyle.Render("No jobs yet. Press n to create one.") + "\n\n" + v.renderJobsHint()
	}
	var rows []string
	for i, job := range v.jobs {
		rows = append(rows, v.renderJobRow(job, i == v.cursor))
		if v.expandedJobID == job.ID {
			rows = append(rows, v.renderDetails(job.ID))
		}
	}
	return strings.Join(rows, "\n") + "\n\n" + v.renderJobsHint()
}

func (v *agentView) renderJobsHint() string {
	return mutedStyle.Render("n → new job    a → applications (open jobs)    Enter → progress    r → refresh    Ctrl+O → sign out")
}

func (v *agentView) renderJobRow(job domain.Job, selected bool) string {
	line1 := fmt.Sprintf("#%d %s", job.ID, job.Title)
	line2 := fmt.Sprintf("%s · %s", formatMoney(job.Budget), badgeStyle.Render(string(job.Status)))
	if job.Description != nil && *job.Description != "" {
		line2 += " · " + mutedStyle.Render(truncate(*job.Description, 60))
	}
	content := line1 + "\n" + line2
	if selected {
		return selectedStyle.Render(content)
	}
	return content
}

func (v *agentView) renderDetails(jobID int64) string {
	entry, ok := v.details[jobID]
	if !ok || entry.plan.IsLoading() || entry.invoice.IsLoading() {
		return mutedStyle.Render("  Loading details...")
	}
	var lines []string
	lines = append(lines, labelStyle.Render("  Work Plan"))
	if plan, ok := entry.plan.Value(); ok {
		lines = append(lines,
			fmt.Sprintf("    %s", orNA(plan.PlanDescription)),
			fmt.Sprintf("    Start: %s · End: %s · Status: %s", orNA(plan.StartDate), orNA(plan.EndDate), plan.Status),
		)
	} else {
		lines = append(lines, mutedStyle.Render("    No work plan submitted yet."))
	}
	lines = append(lines, labelStyle.Render("  Invoice"))
	if inv, ok := entry.invoice.Value(); ok {
		lines = append(lines, fmt.Sprintf("    Amount: $%.2f · Status: %s", inv.Amount, inv.Status))
	} else {
		lines = append(lines, mutedStyle.Render("    No invoice submitted yet."))
	}
	return strings.Join(lines, "\n")
}

func (v *agentView) renderCreateForm() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Create New Job"))
	b.WriteString("\n\n")
	for _, input := range v.form {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n" + mutedStyle.Render("Enter → create    Esc → cancel"))
	return b.String()
}

func (v *agentView) renderApplications() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Applications for job #%d", v.appsJobID)))
	b.WriteString("\n\n")
	if len(v.apps) == 0 {
		b.WriteString(mutedStyle.Render("No applications yet"))
	}
	for i, app := range v.apps {
		name := fmt.Sprintf("Contractor ID: %d", app.ContractorID)
		detail := ""
		if app.Contractor != nil {
			name = app.Contractor.Name
			detail = fmt.Sprintf("    %s · %s\n    Skills: %s · Education: %s\n",
				valueOrNA(app.Contractor.Email), valueOrNA(app.Contractor.ContactNumber),
				valueOrNA(app.Contractor.Skills), valueOrNA(app.Contractor.Education))
		}
		row := fmt.Sprintf("%s · Proposed: %s · %s\n%s", name, formatMoney(app.ProposedCost), badgeStyle.Render(string(app.Status)), detail)
		if i == v.appCursor {
			row = selectedStyle.Render(strings.TrimRight(row, "\n"))
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n" + mutedStyle.Render("y → approve    x → reject    Esc → back"))
	return b.String()
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
