package engine

import (
	"context"
	"fmt"
)

// ============================================================================
// COORDINATOR: Filter → Sort pipeline + plot entry point
// ============================================================================
// Pipeline for every criteria/sort change:
//   1. ApplyFilters(dataset, criteria) → ResultView in dataset order
//   2. SortView(view, state)           → ResultView in display order
//
// Rebuild is the pure form. Coordinator adds logging and remembers the last
// filtered subset, so a sort-only change skips the filter pass.
// ============================================================================

// Rebuild filters then sorts the dataset.
func Rebuild(ds *Dataset, criteria FilterCriteria, state SortState) ResultView {
	return SortView(ApplyFilters(ds, criteria), state)
}

// Coordinator recomputes result views for one dataset.
// It is not safe for concurrent use.
type Coordinator struct {
	dataset *Dataset
	cfg     *config

	lastCriteria FilterCriteria
	lastFiltered ResultView
	haveFiltered bool
}

// NewCoordinator creates a Coordinator over ds.
func NewCoordinator(ds *Dataset, opts ...Option) *Coordinator {
	return &Coordinator{dataset: ds, cfg: applyOptions(opts)}
}

// Dataset returns the dataset being queried.
func (c *Coordinator) Dataset() *Dataset { return c.dataset }

// Logger returns the configured logger.
func (c *Coordinator) Logger() *Logger { return c.cfg.Logger }

// Rebuild returns the filtered, ordered view for the given inputs.
func (c *Coordinator) Rebuild(ctx context.Context, criteria FilterCriteria, state SortState) ResultView {
	filtered, cached := c.filter(criteria)
	view := SortView(filtered, state)
	c.cfg.Logger.LogRebuild(ctx, criteria, state, c.dataset.Len(), view.Len(), cached)
	return view
}

// Plot builds the binding energy histogram of the records matching criteria.
// Records without a binding energy are left out. ErrNoData is returned when
// nothing remains to plot.
func (c *Coordinator) Plot(ctx context.Context, criteria FilterCriteria, binWidth float64) (*Histogram, error) {
	filtered, _ := c.filter(criteria)
	values := filtered.BindingEnergies()

	opts := []Option{
		WithCurvePoints(c.cfg.CurvePoints),
		WithParallelThreshold(c.cfg.ParallelThreshold),
	}
	if !c.cfg.Curve {
		opts = append(opts, WithoutCurve())
	}
	h, err := BuildHistogram(values, binWidth, opts...)
	c.cfg.Logger.LogHistogram(ctx, len(values), binWidth, h, err)
	if err != nil {
		return nil, fmt.Errorf("plot binding energies: %w", err)
	}
	return h, nil
}

func (c *Coordinator) filter(criteria FilterCriteria) (ResultView, bool) {
	if c.haveFiltered && c.lastCriteria == criteria {
		return c.lastFiltered, true
	}
	view := ApplyFilters(c.dataset, criteria)
	c.lastCriteria = criteria
	c.lastFiltered = view
	c.haveFiltered = true
	return view, false
}
