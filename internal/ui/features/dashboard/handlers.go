// Package dashboard provides the dashboard summary and the live-update
// stream for the UI.
package dashboard

import (
	"context"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/sync/errgroup"

	"github.com/checkdeck-io/checkdeck/internal/metrics"
	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// recentLimit caps the recent and active lists on the dashboard.
const recentLimit = 5

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	store    core.Store
	notifier *notifier.Notifier
	metrics  *metrics.Metrics
}

// NewHandlers creates a new Handlers instance. metrics may be nil.
func NewHandlers(store core.Store, notify *notifier.Notifier, m *metrics.Metrics) *Handlers {
	return &Handlers{store: store, notifier: notify, metrics: m}
}

// Summary returns the dashboard counts plus the recent and active lists.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.buildSummary(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, summary)
}

// Updates is the long-lived SSE endpoint. It sends the current summary
// on connect, then re-sends whenever a write broadcasts on the notifier.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	if h.metrics != nil {
		h.metrics.UpdateClients.Inc()
		defer h.metrics.UpdateClients.Dec()
	}

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	if err := h.sendSummary(ctx, sse); err != nil {
		_ = sse.ConsoleError(err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendSummary(ctx, sse); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// sendSummary builds the summary and patches it into the client signals.
func (h *Handlers) sendSummary(ctx context.Context, sse *datastar.ServerSentEventGenerator) error {
	summary, err := h.buildSummary(ctx)
	if err != nil {
		return err
	}
	return sse.MarshalAndPatchSignals(map[string]any{"dashboard": summary})
}

// buildSummary issues the store reads concurrently and awaits them
// jointly; the first failure discards the rest.
func (h *Handlers) buildSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RecentExecutions: []*core.ExecutionDetails{},
		ActiveExecutions: []*core.ExecutionDetails{},
		RecentSuites:     []*core.SuiteSummary{},
	}

	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		n, err := h.store.CountSuites(egctx, "")
		summary.TotalSuites = n
		return err
	})
	eg.Go(func() error {
		n, err := h.store.CountSuites(egctx, core.SuiteStatusActive)
		summary.ActiveSuites = n
		return err
	})
	eg.Go(func() error {
		n, err := h.store.CountItems(egctx)
		summary.TotalItems = n
		return err
	})
	eg.Go(func() error {
		n, err := h.store.CountExecutions(egctx, core.ExecutionStatusInProgress)
		summary.RunningExecutions = n
		return err
	})
	eg.Go(func() error {
		recent, err := h.store.RecentExecutions(egctx, recentLimit)
		if err != nil {
			return err
		}
		if recent != nil {
			summary.RecentExecutions = recent
		}
		return nil
	})
	eg.Go(func() error {
		active, err := h.store.ActiveExecutions(egctx, recentLimit)
		if err != nil {
			return err
		}
		if active != nil {
			summary.ActiveExecutions = active
		}
		return nil
	})
	eg.Go(func() error {
		suites, err := h.store.RecentSuites(egctx, recentLimit)
		if err != nil {
			return err
		}
		if suites != nil {
			summary.RecentSuites = suites
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
