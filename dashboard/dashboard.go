// Package dashboard polls the trading system's status endpoints and renders
// each report into its own panel of a view.Document. It also submits roll
// state commands and reconciles the roll panel with the reply.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/dashboard/pkg/id"
	"github.com/rustyeddy/dashboard/report"
	"github.com/rustyeddy/dashboard/view"
)

// Backend serves the status reports and accepts roll commands.
// *backend.Client implements it.
type Backend interface {
	Capital(ctx context.Context) (report.Capital, error)
	Costs(ctx context.Context) (report.Costs, error)
	Forex(ctx context.Context) (report.Forex, error)
	Liquidity(ctx context.Context) (report.Liquidity, error)
	PandL(ctx context.Context) (report.PandL, error)
	Processes(ctx context.Context) (report.Processes, error)
	Reconcile(ctx context.Context) (report.Reconcile, error)
	Risk(ctx context.Context) (report.Risk, error)
	Rolls(ctx context.Context) (report.Rolls, error)
	Strategy(ctx context.Context) (report.Strategy, error)
	Trades(ctx context.Context) (report.Trades, error)
	PostRoll(ctx context.Context, cmd report.RollCommand) (report.RollResponse, error)
}

// Dashboard renders backend reports into a Document.
type Dashboard struct {
	backend Backend
	doc     *view.Document
	log     zerolog.Logger

	// renderMu serializes writes to doc so overlapping updates of a panel
	// leave all of its tables from the same reply.
	renderMu sync.Mutex
}

// New creates a Dashboard rendering into doc. A nil doc gets a fresh one.
func New(b Backend, doc *view.Document, log zerolog.Logger) *Dashboard {
	if doc == nil {
		doc = view.NewDocument()
	}
	return &Dashboard{
		backend: b,
		doc:     doc,
		log:     log.With().Str("component", "dashboard").Logger(),
	}
}

// Document returns the document the dashboard renders into.
func (d *Dashboard) Document() *view.Document { return d.doc }

type panelUpdate struct {
	name   string
	update func(context.Context) error
}

func (d *Dashboard) panels() []panelUpdate {
	return []panelUpdate{
		{PanelCapital, d.UpdateCapital},
		{PanelForex, d.UpdateForex},
		{PanelPandL, d.UpdatePandL},
		{PanelProcesses, d.UpdateProcesses},
		{PanelReconcile, d.UpdateReconcile},
		{PanelRisk, d.UpdateRisk},
		{PanelStrategy, d.UpdateStrategy},
		{PanelTrades, d.UpdateTrades},
		{PanelRolls, d.UpdateRolls},
		{PanelLiquidity, d.UpdateLiquidity},
		{PanelCosts, d.UpdateCosts},
	}
}

// Refresh queries every panel concurrently and waits for all of them. A
// failing panel keeps its previous content and gets a fault; the others
// are unaffected. The returned error joins every panel failure.
func (d *Dashboard) Refresh(ctx context.Context) error {
	log := d.log.With().Str("cycle", id.New()).Logger()
	start := time.Now()

	ps := d.panels()
	errs := make([]error, len(ps))

	var wg sync.WaitGroup
	for i, p := range ps {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = p.update(ctx)
		}()
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}

	ev := log.Info()
	if failed > 0 {
		ev = log.Warn()
	}
	ev.Int("panels", len(ps)).
		Int("failed", failed).
		Dur("took", time.Since(start)).
		Msg("refresh complete")

	return errors.Join(errs...)
}

// Run refreshes every interval until ctx is done. A non-positive interval
// returns immediately.
func (d *Dashboard) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	d.log.Info().Dur("interval", interval).Msg("polling started")

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("polling stopped")
			return
		case <-t.C:
			_ = d.Refresh(ctx)
		}
	}
}

// update fetches one report and renders it, or records the failure as a
// fault on the panel.
func update[T any](ctx context.Context, d *Dashboard, panel string, fetch func(context.Context) (T, error), render func(*view.Document, T)) error {
	v, err := fetch(ctx)
	if err != nil {
		d.doc.SetFault(panel, err)
		d.log.Warn().Err(err).Str("panel", panel).Msg("panel update failed")
		return fmt.Errorf("%s: %w", panel, err)
	}
	d.renderMu.Lock()
	render(d.doc, v)
	d.doc.MarkUpdated(panel)
	d.renderMu.Unlock()
	d.log.Debug().Str("panel", panel).Msg("panel updated")
	return nil
}

func (d *Dashboard) UpdateCapital(ctx context.Context) error {
	return update(ctx, d, PanelCapital, d.backend.Capital, renderCapital)
}

func (d *Dashboard) UpdateCosts(ctx context.Context) error {
	return update(ctx, d, PanelCosts, d.backend.Costs, renderCosts)
}

func (d *Dashboard) UpdateForex(ctx context.Context) error {
	return update(ctx, d, PanelForex, d.backend.Forex, renderForex)
}

func (d *Dashboard) UpdateLiquidity(ctx context.Context) error {
	return update(ctx, d, PanelLiquidity, d.backend.Liquidity, renderLiquidity)
}

func (d *Dashboard) UpdatePandL(ctx context.Context) error {
	return update(ctx, d, PanelPandL, d.backend.PandL, renderPandL)
}

func (d *Dashboard) UpdateProcesses(ctx context.Context) error {
	return update(ctx, d, PanelProcesses, d.backend.Processes, renderProcesses)
}

func (d *Dashboard) UpdateReconcile(ctx context.Context) error {
	return update(ctx, d, PanelReconcile, d.backend.Reconcile, renderReconcile)
}

func (d *Dashboard) UpdateRisk(ctx context.Context) error {
	return update(ctx, d, PanelRisk, d.backend.Risk, renderRisk)
}

func (d *Dashboard) UpdateRolls(ctx context.Context) error {
	return update(ctx, d, PanelRolls, d.backend.Rolls, renderRolls)
}

func (d *Dashboard) UpdateTrades(ctx context.Context) error {
	return update(ctx, d, PanelTrades, d.backend.Trades, renderTrades)
}

// UpdateStrategy fetches the strategy report. Nothing is rendered from it
// yet.
func (d *Dashboard) UpdateStrategy(ctx context.Context) error {
	return update(ctx, d, PanelStrategy, d.backend.Strategy, func(_ *view.Document, raw report.Strategy) {
		d.log.Debug().Int("bytes", len(raw)).Msg("strategy report ignored")
	})
}
