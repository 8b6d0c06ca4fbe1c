// internal/tui/contractor_view.go
//
// Contractor dashboard with three tabs: browse open jobs (search + apply),
// my applications, and assigned jobs where the work plan and invoice are
// managed. Which forms appear is decided by the lifecycle gating functions,
// never inline.

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

type contractorTab int

const (
	tabBrowse contractorTab = iota
	tabApplications
	tabAssigned
)

type contractorMode int

const (
	contractorModeList contractorMode = iota
	contractorModeSearch
	contractorModeApply
	contractorModePlanForm
	contractorModeStatusPick
	contractorModeInvoiceForm
)

type openJobsMsg struct {
	jobs []domain.Job
	err  error
}

type myApplicationsMsg struct {
	apps []domain.Application
	err  error
}

type assignedJobsMsg struct {
	jobs []domain.Job
	err  error
}

type appliedMsg struct {
	application domain.Application
	err         error
}

type workPlanSavedMsg struct {
	jobID int64
	plan  domain.WorkPlan
	err   error
}

type invoiceSubmittedMsg struct {
	jobID   int64
	invoice domain.Invoice
	err     error
}

const (
	planFieldDescription = iota
	planFieldStart
	planFieldEnd
	planFieldCount
)

type contractorView struct {
	app  *App
	user domain.User
	tab  contractorTab
	mode contractorMode

	openJobs     []domain.Job
	applications []domain.Application
	assignedJobs []domain.Job
	cursor       int
	loading      bool

	search     textinput.Model
	costInput  textinput.Model
	planForm   []textinput.Model
	planFocus  int
	statusPick int
	amount     textinput.Model

	details       map[int64]*jobDetails
	expandedJobID int64

	errMsg string
}

func newContractorView(app *App, user domain.User) *contractorView {
	search := textinput.New()
	search.Placeholder = "Search jobs..."

	cost := textinput.New()
	cost.Placeholder = "Proposed cost"
	cost.CharLimit = 12

	amount := textinput.New()
	amount.Placeholder = "Invoice amount"
	amount.CharLimit = 12

	planPlaceholders := []string{"Plan description", "Start date (YYYY-MM-DD, optional)", "End date (YYYY-MM-DD, optional)"}
	planForm := make([]textinput.Model, planFieldCount)
	for i, ph := range planPlaceholders {
		input := textinput.New()
		input.Placeholder = ph
		planForm[i] = input
	}

	return &contractorView{
		app:       app,
		user:      user,
		search:    search,
		costInput: cost,
		amount:    amount,
		planForm:  planForm,
		details:   map[int64]*jobDetails{},
	}
}

func (v *contractorView) Init() tea.Cmd {
	v.loading = true
	return v.fetchOpenJobs()
}

func (v *contractorView) fetchOpenJobs() tea.Cmd {
	client := v.app.client
	term := strings.TrimSpace(v.search.Value())
	return func() tea.Msg {
		jobs, err := client.OpenJobs(context.Background(), term)
		return openJobsMsg{jobs: jobs, err: err}
	}
}

func (v *contractorView) fetchMyApplications() tea.Cmd {
	client := v.app.client
	return func() tea.Msg {
		apps, err := client.MyApplications(context.Background())
		return myApplicationsMsg{apps: apps, err: err}
	}
}

func (v *contractorView) fetchAssignedJobs() tea.Cmd {
	client := v.app.client
	return func() tea.Msg {
		jobs, err := client.AssignedJobs(context.Background())
		return assignedJobsMsg{jobs: jobs, err: err}
	}
}

func (v *contractorView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case openJobsMsg:
		v.loading = false
		if msg.err != nil {
			return v.fail("Could not load open jobs", msg.err)
		}
		v.openJobs = msg.jobs
		v.clampCursor()
		v.errMsg = ""
		return nil

	case myApplicationsMsg:
		v.loading = false
		if msg.err != nil {
			return v.fail("Could not load applications", msg.err)
		}
		v.applications = msg.apps
		v.clampCursor()
		v.errMsg = ""
		return nil

	case assignedJobsMsg:
		v.loading = false
		if msg.err != nil {
			return v.fail("Could not load assigned jobs", msg.err)
		}
		v.assignedJobs = msg.jobs
		v.clampCursor()
		v.errMsg = ""
		return nil

	case appliedMsg:
		if msg.err != nil {
			return v.fail("Could not submit application", msg.err)
		}
		v.mode = contractorModeList
		v.costInput.SetValue("")
		v.costInput.Blur()
		v.app.setStatus(fmt.Sprintf("Application #%d submitted", msg.application.ID))
		v.app.logbook.Info("application submitted",
			zap.Int64("application_id", msg.application.ID),
			zap.Int64("job_id", msg.application.JobID),
		)
		v.loading = true
		return v.fetchOpenJobs()

	case workPlanSavedMsg:
		if msg.err != nil {
			return v.fail("Work plan not saved", msg.err)
		}
		v.mode = contractorModeList
		v.resetPlanForm()
		if entry, ok := v.details[msg.jobID]; ok {
			entry.plan = lifecycle.Present(msg.plan)
		}
		v.app.setStatus(fmt.Sprintf("Work plan for job #%d is %s", msg.jobID, msg.plan.Status))
		return nil

	case invoiceSubmittedMsg:
		if msg.err != nil {
			// A stale gate may have let the submit through; the cache
			// must stay absent on failure.
			return v.fail("Invoice not submitted", msg.err)
		}
		v.mode = contractorModeList
		v.amount.SetValue("")
		v.amount.Blur()
		if entry, ok := v.details[msg.jobID]; ok {
			entry.invoice = lifecycle.Present(msg.invoice)
		}
		v.app.setStatus(fmt.Sprintf("Invoice for job #%d submitted", msg.jobID))
		// Invoice submission completes the job server-side.
		v.loading = true
		return v.fetchAssignedJobs()

	case jobDetailsMsg:
		if msg.unauthorized {
			return func() tea.Msg { return sessionExpiredMsg{} }
		}
		entry, ok := v.details[msg.jobID]
		if !ok || entry.gen != msg.gen {
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

func (v *contractorView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch v.mode {
	case contractorModeSearch:
		switch msg.String() {
		case "enter":
			v.mode = contractorModeList
			v.search.Blur()
			v.loading = true
			return v.fetchOpenJobs()
		case "esc":
			v.mode = contractorModeList
			v.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return cmd

	case contractorModeApply:
		switch msg.String() {
		case "enter":
			return v.submitApplication()
		case "esc":
			v.mode = contractorModeList
			v.costInput.SetValue("")
			v.costInput.Blur()
			return nil
		}
		var cmd tea.Cmd
		v.costInput, cmd = v.costInput.Update(msg)
		return cmd

	case contractorModePlanForm:
		switch msg.String() {
		case "enter":
			return v.submitWorkPlan()
		case "esc":
			v.mode = contractorModeList
			v.resetPlanForm()
			return nil
		case "tab", "down":
			v.setPlanFocus((v.planFocus + 1) % len(v.planForm))
			return nil
		case "shift+tab", "up":
			v.setPlanFocus((v.planFocus + len(v.planForm) - 1) % len(v.planForm))
			return nil
		}
		var cmd tea.Cmd
		v.planForm[v.planFocus], cmd = v.planForm[v.planFocus].Update(msg)
		return cmd

	case contractorModeStatusPick:
		choices := domain.WorkPlanStatuses()
		switch msg.String() {
		case "esc":
			v.mode = contractorModeList
			return nil
		case "left", "h":
			if v.statusPick > 0 {
				v.statusPick--
			}
			return nil
		case "right", "l":
			if v.statusPick < len(choices)-1 {
				v.statusPick++
			}
			return nil
		case "enter":
			return v.submitWorkPlanStatus(choices[v.statusPick])
		}
		return nil

	case contractorModeInvoiceForm:
		switch msg.String() {
		case "enter":
			return v.submitInvoice()
		case "esc":
			v.mode = contractorModeList
			v.amount.SetValue("")
			v.amount.Blur()
			return nil
		}
		var cmd tea.Cmd
		v.amount, cmd = v.amount.Update(msg)
		return cmd
	}

	// List mode.
	switch msg.String() {
	case "1":
		return v.switchTab(tabBrowse)
	case "2":
		return v.switchTab(tabApplications)
	case "3":
		return v.switchTab(tabAssigned)
	case "r":
		return v.refreshTab()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < v.listLen()-1 {
			v.cursor++
		}
	case "/":
		if v.tab == tabBrowse {
			v.mode = contractorModeSearch
			v.search.Focus()
		}
	case "a":
		if v.tab == tabBrowse {
			if job, ok := v.selectedOpenJob(); ok && lifecycle.CanApply(job) {
				v.mode = contractorModeApply
				v.costInput.Focus()
			}
		}
	case "enter":
		if v.tab == tabAssigned {
			if job, ok := v.selectedAssignedJob(); ok {
				return v.toggleDetails(job.ID)
			}
		}
	case "p":
		if v.tab == tabAssigned {
			if job, ok := v.selectedAssignedJob(); ok {
				if entry, have := v.details[job.ID]; have && lifecycle.CanCreateWorkPlan(job, v.user.ID, entry.plan) {
					v.mode = contractorModePlanForm
					v.setPlanFocus(planFieldDescription)
				}
			}
		}
	case "s":
		if v.tab == tabAssigned {
			if job, ok := v.selectedAssignedJob(); ok {
				if entry, have := v.details[job.ID]; have && lifecycle.CanAdvanceWorkPlan(job, v.user.ID, entry.plan) {
					v.mode = contractorModeStatusPick
					v.statusPick = v.currentStatusIndex(entry)
				}
			}
		}
	case "i":
		if v.tab == tabAssigned {
			if job, ok := v.selectedAssignedJob(); ok {
				if entry, have := v.details[job.ID]; have && lifecycle.CanSubmitInvoice(job, v.user.ID, entry.plan, entry.invoice) {
					v.mode = contractorModeInvoiceForm
					v.amount.Focus()
				}
			}
		}
	}
	return nil
}

func (v *contractorView) currentStatusIndex(entry *jobDetails) int {
	plan, ok := entry.plan.Value()
	if !ok {
		return 0
	}
	for i, status := range domain.WorkPlanStatuses() {
		if status == plan.Status {
			return i
		}
	}
	return 0
}

func (v *contractorView) switchTab(tab contractorTab) tea.Cmd {
	v.tab = tab
	v.cursor = 0
	v.mode = contractorModeList
	v.expandedJobID = 0
	// Detail caches live for one tab visit; a fresh visit refetches.
	v.details = map[int64]*jobDetails{}
	return v.refreshTab()
}

func (v *contractorView) refreshTab() tea.Cmd {
	v.loading = true
	switch v.tab {
	case tabApplications:
		return v.fetchMyApplications()
	case tabAssigned:
		return v.fetchAssignedJobs()
	default:
		return v.fetchOpenJobs()
	}
}

func (v *contractorView) listLen() int {
	switch v.tab {
	case tabApplications:
		return len(v.applications)
	case tabAssigned:
		return len(v.assignedJobs)
	default:
		return len(v.openJobs)
	}
}

func (v *contractorView) clampCursor() {
	if v.cursor >= v.listLen() {
		v.cursor = max(0, v.listLen()-1)
	}
}

func (v *contractorView) selectedOpenJob() (domain.Job, bool) {
	if v.tab != tabBrowse || v.cursor < 0 || v.cursor >= len(v.openJobs) {
		return domain.Job{}, false
	}
	return v.openJobs[v.cursor], true
}

func (v *contractorView) selectedAssignedJob() (domain.Job, bool) {
	if v.tab != tabAssigned || v.cursor < 0 || v.cursor >= len(v.assignedJobs) {
		return domain.Job{}, false
	}
	return v.assignedJobs[v.cursor], true
}

func (v *contractorView) toggleDetails(jobID int64) tea.Cmd {
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
	return fetchJobDetails(v.app.client, jobID, gen, false)
}

func (v *contractorView) submitApplication() tea.Cmd {
	job, ok := v.selectedOpenJob()
	if !ok {
		return nil
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(v.costInput.Value()), 64)
	if err != nil || cost <= 0 {
		v.errMsg = "Proposed cost must be a positive number."
		return nil
	}
	v.errMsg = ""
	client := v.app.client
	return func() tea.Msg {
		application, err := client.Apply(context.Background(), job.ID, api.ApplicationCreate{ProposedCost: cost})
		return appliedMsg{application: application, err: err}
	}
}

func (v *contractorView) submitWorkPlan() tea.Cmd {
	job, ok := v.selectedAssignedJob()
	if !ok {
		return nil
	}
	description := strings.TrimSpace(v.planForm[planFieldDescription].Value())
	if description == "" {
		v.errMsg = "Add a work plan description."
		return nil
	}
	req := api.WorkPlanCreate{PlanDescription: description}
	if start := strings.TrimSpace(v.planForm[planFieldStart].Value()); start != "" {
		req.StartDate = &start
	}
	if end := strings.TrimSpace(v.planForm[planFieldEnd].Value()); end != "" {
		req.EndDate = &end
	}
	v.errMsg = ""
	client := v.app.client
	return func() tea.Msg {
		plan, err := client.CreateWorkPlan(context.Background(), job.ID, req)
		return workPlanSavedMsg{jobID: job.ID, plan: plan, err: err}
	}
}

func (v *contractorView) submitWorkPlanStatus(status domain.WorkPlanStatus) tea.Cmd {
	job, ok := v.selectedAssignedJob()
	if !ok {
		return nil
	}
	client := v.app.client
	return func() tea.Msg {
		plan, err := client.UpdateWorkPlanStatus(context.Background(), job.ID, api.WorkPlanStatusUpdate{Status: status})
		return workPlanSavedMsg{jobID: job.ID, plan: plan, err: err}
	}
}

func (v *contractorView) submitInvoice() tea.Cmd {
	job, ok := v.selectedAssignedJob()
	if !ok {
		return nil
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(v.amount.Value()), 64)
	if err != nil || amount <= 0 {
		v.errMsg = "Enter a valid invoice amount."
		return nil
	}
	v.errMsg = ""
	client := v.app.client
	return func() tea.Msg {
		invoice, err := client.SubmitInvoice(context.Background(), job.ID, api.InvoiceCreate{Amount: amount})
		return invoiceSubmittedMsg{jobID: job.ID, invoice: invoice, err: err}
	}
}

func (v *contractorView) setPlanFocus(idx int) {
	v.planForm[v.planFocus].Blur()
	v.planFocus = idx
	v.planForm[v.planFocus].Focus()
}

func (v *contractorView) resetPlanForm() {
	for i := range v.planForm {
		v.planForm[i].SetValue("")
		v.planForm[i].Blur()
	}
	v.planFocus = 0
}

func (v *contractorView) fail(status string, err error) tea.Cmd {
	if api.IsUnauthorized(err) {
		return func() tea.Msg { return sessionExpiredMsg{} }
	}
	v.errMsg = fmt.Sprintf("%s: %v", status, err)
	v.app.logbook.Warn(status, zap.Error(err))
	return nil
}

func (v *contractorView) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Contractor Dashboard · %s", v.user.Name)))
	b.WriteString("\n")
	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(mutedStyle.Render("Loading..."))
	} else {
		switch v.tab {
		case tabApplications:
			b.WriteString(v.renderApplications())
		case tabAssigned:
			b.WriteString(v.renderAssigned())
		default:
			b.WriteString(v.renderBrowse())
		}
	}

	if v.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render(v.errMsg))
	}
	return b.String()
}

func (v *contractorView) renderTabs() string {
	names := []string{"1 Browse Jobs", "2 My Applications", "3 Assigned Jobs"}
	for i := range names {
		if contractorTab(i) == v.tab {
			names[i] = okStyle.Render("[" + names[i] + "]")
		} else {
			names[i] = mutedStyle.Render(names[i])
		}
	}
	return strings.Join(names, "  ")
}

func (v *contractorView) renderBrowse() string {
	var b strings.Builder
	if v.mode == contractorModeSearch {
		b.WriteString(v.search.View())
		b.WriteString("\n\n")
	} else if term := strings.TrimSpace(v.search.Value()); term != "" {
		b.WriteString(mutedStyle.Render("Search: "+term) + "\n\n")
	}
	if len(v.openJobs) == 0 {
		b.WriteString(mutedStyle.Render("No open jobs."))
	}
	for i, job := range v.openJobs {
		row := fmt.Sprintf("#%d %s\n%s", job.ID, job.Title, formatMoney(job.Budget))
		if job.Description != nil && *job.Description != "" {
			row += " · " + mutedStyle.Render(truncate(*job.Description, 60))
		}
		if i == v.cursor {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row + "\n")
		if v.mode == contractorModeApply && i == v.cursor {
			b.WriteString("  " + v.costInput.View() + "\n")
			b.WriteString(mutedStyle.Render("  Enter → submit application    Esc → cancel") + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("/ → search    a → apply    r → refresh    Ctrl+O → sign out"))
	return b.String()
}

func (v *contractorView) renderApplications() string {
	if len(v.applications) == 0 {
		return mutedStyle.Render("No applications yet.")
	}
	var b strings.Builder
	for i, app := range v.applications {
		row := fmt.Sprintf("Job #%d · Proposed: %s · %s\nApplied: %s",
			app.JobID, formatMoney(app.ProposedCost), badgeStyle.Render(string(app.Status)), app.CreatedAt)
		if i == v.cursor {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}

func (v *contractorView) renderAssigned() string {
	if len(v.assignedJobs) == 0 {
		return mutedStyle.Render("No assigned jobs yet.")
	}
	var b strings.Builder
	for i, job := range v.assignedJobs {
		row := fmt.Sprintf("#%d %s\nBudget: %s · %s", job.ID, job.Title, formatMoney(job.Budget), badgeStyle.Render(string(job.Status)))
		if i == v.cursor {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row + "\n")
		if v.expandedJobID == job.ID {
			b.WriteString(v.renderAssignedDetails(job))
		}
	}
	b.WriteString("\n" + mutedStyle.Render("Enter → details    p → work plan    s → status    i → invoice    r → refresh"))
	return b.String()
}

func (v *contractorView) renderAssignedDetails(job domain.Job) string {
	entry, ok := v.details[job.ID]
	if !ok || entry.plan.IsLoading() || entry.invoice.IsLoading() {
		return mutedStyle.Render("  Loading details...") + "\n"
	}
	var b strings.Builder

	b.WriteString(labelStyle.Render("  Work Plan") + "\n")
	if plan, have := entry.plan.Value(); have {
		b.WriteString(fmt.Sprintf("    %s\n    Start: %s · End: %s · Status: %s\n",
			orNA(plan.PlanDescription), orNA(plan.StartDate), orNA(plan.EndDate), plan.Status))
		if v.mode == contractorModeStatusPick {
			b.WriteString("    " + v.renderStatusPick() + "\n")
		}
	} else if v.mode == contractorModePlanForm {
		for _, input := range v.planForm {
			b.WriteString("    " + input.View() + "\n")
		}
		b.WriteString(mutedStyle.Render("    Enter → create work plan    Esc → cancel") + "\n")
	} else if lifecycle.CanCreateWorkPlan(job, v.user.ID, entry.plan) {
		b.WriteString(mutedStyle.Render("    No work plan yet. Press p to create one.") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("    No work plan yet.") + "\n")
	}

	b.WriteString(labelStyle.Render("  Invoice") + "\n")
	if inv, have := entry.invoice.Value(); have {
		b.WriteString(fmt.Sprintf("    Amount: $%.2f · Status: %s\n", inv.Amount, inv.Status))
	} else if v.mode == contractorModeInvoiceForm {
		b.WriteString("    " + v.amount.View() + "\n")
		b.WriteString(mutedStyle.Render("    Enter → submit invoice    Esc → cancel") + "\n")
	} else if lifecycle.CanSubmitInvoice(job, v.user.ID, entry.plan, entry.invoice) {
		b.WriteString(mutedStyle.Render("    Press i to submit an invoice.") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("    Complete the work plan before submitting an invoice.") + "\n")
	}
	return b.String()
}

func (v *contractorView) renderStatusPick() string {
	choices := domain.WorkPlanStatuses()
	parts := make([]string, len(choices))
	for i, status := range choices {
		if i == v.statusPick {
			parts[i] = okStyle.Render("[" + string(status) + "]")
		} else {
			parts[i] = mutedStyle.Render(string(status))
		}
	}
	return strings.Join(parts, " ") + mutedStyle.Render("   Enter → update")
}
