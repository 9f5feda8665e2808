// Package analytics provides the analytics overview handler for the UI.
package analytics

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// trendWindow is the time-window pre-filter applied to the daily trend.
const trendWindow = 30 * 24 * time.Hour

// recentLimit caps the recent-executions list.
const recentLimit = 10

// Handlers provides HTTP handlers for the analytics feature.
type Handlers struct {
	store core.Store
	loc   *time.Location
}

// NewHandlers creates a new Handlers instance. Trend dates are bucketed
// in loc; nil means the server's local time zone.
func NewHandlers(store core.Store, loc *time.Location) *Handlers {
	if loc == nil {
		loc = time.Local
	}
	return &Handlers{store: store, loc: loc}
}

// Overview returns totals, the recent-execution list, the 30-day trend
// and the most-failed ranking.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.buildOverview(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, overview)
}

// buildOverview issues the store reads concurrently and awaits them
// jointly; the first failure discards the rest.
func (h *Handlers) buildOverview(ctx context.Context) (*Overview, error) {
	overview := &Overview{
		RecentExecutions: []*core.ExecutionDetails{},
		DailyTrend:       []core.TrendPoint{},
		MostFailedItems:  []core.FailedItemCount{},
	}

	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		n, err := h.store.CountSuites(egctx, "")
		overview.TotalSuites = n
		return err
	})
	eg.Go(func() error {
		n, err := h.store.CountItems(egctx)
		overview.TotalItems = n
		return err
	})
	eg.Go(func() error {
		n, err := h.store.CountExecutions(egctx, "")
		overview.TotalExecutions = n
		return err
	})
	eg.Go(func() error {
		n, err := h.store.CountExecutions(egctx, core.ExecutionStatusCompleted)
		overview.CompletedExecutions = n
		return err
	})
	eg.Go(func() error {
		recent, err := h.store.RecentExecutions(egctx, recentLimit)
		if err != nil {
			return err
		}
		if recent != nil {
			overview.RecentExecutions = recent
		}
		return nil
	})
	eg.Go(func() error {
		executions, err := h.store.ListExecutionsSince(egctx, time.Now().Add(-trendWindow))
		if err != nil {
			return err
		}
		overview.DailyTrend = core.DailyTrend(executions, h.loc)
		return nil
	})
	eg.Go(func() error {
		failed, err := h.store.FailedResults(egctx)
		if err != nil {
			return err
		}
		overview.MostFailedItems = core.MostFailedItems(failed)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
