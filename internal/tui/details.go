// internal/tui/details.go
//
// Lazy per-job detail loading shared by both dashboards. The work-plan and
// invoice fetches for one job run concurrently and are joined before the
// job's loading state clears. Every fetch carries a generation token; only
// the most recent fetch for a job may commit, so a superseded request can
// never overwrite newer state.

package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/arshanss504/job-contractor/internal/api"
	"github.com/arshanss504/job-contractor/internal/domain"
	"github.com/arshanss504/job-contractor/internal/lifecycle"
)

// jobDetails caches the lazily fetched work plan and invoice for one job.
type jobDetails struct {
	plan    lifecycle.Remote[domain.WorkPlan]
	invoice lifecycle.Remote[domain.Invoice]
	gen     string
}

type jobDetailsMsg struct {
	jobID        int64
	gen          string
	plan         lifecycle.Remote[domain.WorkPlan]
	invoice      lifecycle.Remote[domain.Invoice]
	err          error
	unauthorized bool
}

// fetchJobDetails issues both detail requests for a job. agentSide selects
// the agent-view endpoints. The caller records gen so stale completions can
// be dropped.
func fetchJobDetails(client *api.Client, jobID int64, gen string, agentSide bool) tea.Cmd {
	return func() tea.Msg {
		var (
			wg      sync.WaitGroup
			plan    lifecycle.Remote[domain.WorkPlan]
			invoice lifecycle.Remote[domain.Invoice]
			planErr error
			invErr  error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			var (
				wp  domain.WorkPlan
				err error
			)
			if agentSide {
				wp, err = client.WorkPlanAgentView(context.Background(), jobID)
			} else {
				wp, err = client.WorkPlan(context.Background(), jobID)
			}
			switch {
			case err == nil:
				plan = lifecycle.Present(wp)
			case api.IsNotFound(err):
				plan = lifecycle.Absent[domain.WorkPlan]()
			default:
				planErr = err
			}
		}()
		go func() {
			defer wg.Done()
			var (
				inv domain.Invoice
				err error
			)
			if agentSide {
				inv, err = client.JobInvoice(context.Background(), jobID)
			} else {
				inv, err = client.MyJobInvoice(context.Background(), jobID)
			}
			switch {
			case err == nil:
				invoice = lifecycle.Present(inv)
			case api.IsNotFound(err):
				invoice = lifecycle.Absent[domain.Invoice]()
			default:
				invErr = err
			}
		}()
		wg.Wait()

		msg := jobDetailsMsg{jobID: jobID, gen: gen, plan: plan, invoice: invoice}
		for _, err := range []error{planErr, invErr} {
			if err == nil {
				continue
			}
			if api.IsUnauthorized(err) {
				msg.unauthorized = true
			}
			if msg.err == nil {
				msg.err = err
			}
		}
		return msg
	}
}

// newGeneration mints a fetch generation token.
func newGeneration() string {
	return uuid.NewString()
}

func formatMoney(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func orNA(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}
