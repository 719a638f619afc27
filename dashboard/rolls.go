package dashboard

import (
	"context"
	"fmt"

	"github.com/rustyeddy/dashboard/format"
	"github.com/rustyeddy/dashboard/pkg/id"
	"github.com/rustyeddy/dashboard/report"
	"github.com/rustyeddy/dashboard/view"
)

// Cell positions in a roll status row.
const (
	rollStateCell   = 1
	rollActionsCell = 5
)

// rollButtons offers one button per state the instrument may move to.
func rollButtons(instrument string, allowable []string) []view.Button {
	buttons := make([]view.Button, len(allowable))
	for i, st := range allowable {
		buttons[i] = view.Button{Label: st, Instrument: instrument, State: st}
	}
	return buttons
}

func renderRolls(doc *view.Document, rolls report.Rolls) {
	status := make([]view.Row, 0, len(rolls))
	details := make([]view.Row, 0, len(rolls))

	for _, e := range rolls {
		instrument, r := e.Key, e.Value

		status = append(status, view.Row{
			ID: RollRowID(instrument),
			Cells: []view.Cell{
				text(instrument),
				text(r.Status),
				text(format.Number(r.RollExpiry)),
				text(format.Number(r.CarryExpiry)),
				text(format.Number(r.PriceExpiry)),
				{Buttons: rollButtons(instrument, r.Allowable)},
			},
		})

		cells := []view.Cell{text(instrument)}
		for i, label := range r.ContractLabels {
			var position, volume string
			if i < len(r.Positions) {
				position = r.Positions[i].String()
			}
			if i < len(r.Volumes) {
				volume = format.Fixed(r.Volumes[i], 3)
			}
			cells = append(cells, view.Cell{Lines: []string{label, position, volume}})
		}
		details = append(details, view.Row{Cells: cells})
	}

	doc.SetRows(TableRollsStatus, status)
	doc.SetRows(TableRollsDetails, details)
	doc.SetIndicator(IndicatorRolls, RollsStatus(rolls), "")
}

// Roll submits cmd and brings the roll panel in line with the reply:
//   - a completed adjusted-price roll re-queries every roll row;
//   - a price preview is shown with a button confirming cmd;
//   - a state change patches only the instrument's row;
//   - anything else is logged and ignored.
//
// Repeated submissions are not deduplicated.
func (d *Dashboard) Roll(ctx context.Context, cmd report.RollCommand) (report.RollKind, error) {
	log := d.log.With().
		Str("command", id.New()).
		Str("instrument", cmd.Instrument).
		Str("state", string(cmd.State)).
		Bool("confirmed", cmd.Confirmed).
		Logger()

	resp, err := d.backend.PostRoll(ctx, cmd)
	if err != nil {
		err = fmt.Errorf("roll %s to %s: %w", cmd.Instrument, cmd.State, err)
		d.doc.SetFault(PanelRolls, err)
		log.Error().Err(err).Msg("roll command failed")
		return report.KindUnrecognized, err
	}

	d.doc.HideSection(SectionRollPrices)
	log = log.With().Stringer("reply", resp.Kind).Logger()

	switch resp.Kind {
	case report.KindRollAdjusted:
		log.Info().Msg("adjusted prices rolled, reloading all rolls")
		if err := d.UpdateRolls(ctx); err != nil {
			return resp.Kind, err
		}
	case report.KindPreviewSingle, report.KindPreviewMultiple:
		d.renderMu.Lock()
		renderRollPreview(d.doc, cmd, resp)
		d.renderMu.Unlock()
		log.Info().Int("dates", max(len(resp.Single), len(resp.Multiple))).Msg("awaiting confirmation of adjusted prices")
	case report.KindStatePatch:
		d.renderMu.Lock()
		patched := patchRollRow(d.doc, cmd.Instrument, resp)
		d.renderMu.Unlock()
		if !patched {
			log.Warn().Msg("no roll row for instrument, nothing patched")
			break
		}
		log.Info().Str("new_state", resp.NewState).Strs("allowable", resp.Allowable).Msg("roll state changed")
	default:
		log.Warn().Msg("unrecognized roll reply ignored")
	}
	return resp.Kind, nil
}

func patchRollRow(doc *view.Document, instrument string, resp report.RollResponse) bool {
	return doc.PatchRow(TableRollsStatus, RollRowID(instrument), func(r *view.Row) {
		for len(r.Cells) <= rollActionsCell {
			r.Cells = append(r.Cells, view.Cell{})
		}
		r.Cells[rollStateCell] = text(resp.NewState)
		r.Cells[rollActionsCell] = view.Cell{Buttons: rollButtons(instrument, resp.Allowable)}
	})
}

func renderRollPreview(doc *view.Document, cmd report.RollCommand, resp report.RollResponse) {
	var single []view.Row
	if resp.Kind == report.KindPreviewSingle {
		for _, e := range resp.Single {
			single = append(single, textRow(e.Key, e.Value.Current.OrEmpty(), e.Value.New.String()))
		}
	}

	multi := make([]view.Row, 0, len(resp.Multiple))
	for _, e := range resp.Multiple {
		var cur report.MultipleCurrent
		if e.Value.Current != nil {
			cur = *e.Value.Current
		}
		n := e.Value.New
		multi = append(multi, textRow(
			e.Key,
			n.CarryContract.String(), cur.Carry.String(), n.Carry.String(),
			n.PriceContract.String(), cur.Price.String(), n.Price.String(),
			n.ForwardContract.String(), cur.Forward.String(), n.Forward.String(),
		))
	}

	doc.SetRows(TableRollPricesSingle, single)
	doc.SetRows(TableRollPricesMulti, multi)
	doc.SetSection(SectionRollPrices, view.Section{
		Title: "Proposed Adjusted Prices - " + cmd.Instrument,
		Actions: []view.Button{{
			Label:      string(cmd.State),
			Instrument: cmd.Instrument,
			State:      string(cmd.State),
			Confirmed:  true,
		}},
	})
}
