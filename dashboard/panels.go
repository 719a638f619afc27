package dashboard

import (
	"github.com/rustyeddy/dashboard/format"
	"github.com/rustyeddy/dashboard/report"
	"github.com/rustyeddy/dashboard/view"
)

func text(s string) view.Cell { return view.Cell{Text: s} }

func header(s string) view.Cell { return view.Cell{Text: s, Header: true} }

func textRow(texts ...string) view.Row {
	r := view.Row{Cells: make([]view.Cell, len(texts))}
	for i, t := range texts {
		r.Cells[i] = text(t)
	}
	return r
}

func renderCapital(doc *view.Document, c report.Capital) {
	doc.SetIndicator(IndicatorCapital, CapitalStatus(c.Now, c.Yesterday), format.Currency(c.Now))
}

func renderCosts(doc *view.Document, c report.Costs) {
	costs := make([]view.Row, 0, len(c.SRCosts))
	for _, e := range c.SRCosts {
		costs = append(costs, textRow(e.Key, e.Value.SRCost.String()))
	}

	details := make([]view.Row, 0, len(c.Details))
	for _, e := range c.Details {
		v := e.Value
		details = append(details, textRow(
			e.Key,
			v.PercentDifference.String(),
			v.Configured.String(),
			v.BidAskSampled.String(),
			v.BidAskTrades.String(),
			v.Estimate.String(),
			v.TotalTrades.String(),
			v.WeightConfig.String(),
			v.WeightSamples.String(),
			v.WeightTrades.String(),
		))
	}

	doc.SetRows(TableCosts, costs)
	doc.SetRows(TableCostsDetail, details)
}

func renderForex(doc *view.Document, fx report.Forex) {
	rows := make([]view.Row, 0, len(fx))
	for _, e := range fx {
		rows = append(rows, textRow(e.Key, e.Value.String()))
	}
	doc.SetRows(TableForex, rows)
}

func renderLiquidity(doc *view.Document, l report.Liquidity) {
	rows := make([]view.Row, 0, len(l))
	for _, e := range l {
		rows = append(rows, view.Row{Cells: []view.Cell{
			text(e.Key),
			{Text: format.Number(e.Value.Contracts), Class: flag(e.Value.Contracts < minLiquidContracts)},
			{Text: format.Fixed(e.Value.Risk, 1), Class: flag(e.Value.Risk < minLiquidRisk)},
		}})
	}
	doc.SetRows(TableLiquidity, rows)
}

func pandlRows(entries []report.PandLEntry) []view.Row {
	rows := make([]view.Row, 0, len(entries)+2)
	for _, e := range entries {
		rows = append(rows, textRow(e.Codes, format.Fixed(e.PandL, 2)))
	}
	return rows
}

func renderPandL(doc *view.Document, p report.PandL) {
	instruments := append(pandlRows(p.Instruments),
		view.Row{Cells: []view.Cell{header("Residual"), text(format.Fixed(p.Residual, 2))}},
		view.Row{Cells: []view.Cell{header("Total"), text(format.Fixed(p.TotalCapital, 2))}},
	)

	doc.SetRows(TablePandLInstrument, instruments)
	doc.SetRows(TablePandLStrategy, pandlRows(p.Strategies))
	doc.SetRows(TablePandLClass, pandlRows(p.Sectors))
}

func renderProcesses(doc *view.Document, p report.Processes) {
	rows := make([]view.Row, 0, len(p.RunningModes))
	for _, e := range p.RunningModes {
		rows = append(rows, view.Row{Cells: []view.Cell{
			text(e.Key),
			{Text: e.Value, Class: flag(e.Value == report.ProcessCrashed)},
		}})
	}

	doc.SetIndicator(IndicatorStack, StackStatus(p.RunningModes), "")
	doc.SetRows(TableProcesses, rows)
	doc.SetIndicator(IndicatorPrices, upDown(p.PricesUpdate), "")
}

func renderReconcile(doc *view.Document, r report.Reconcile) {
	strategy := make([]view.Row, 0, len(r.Strategy))
	for _, e := range r.Strategy {
		cls := flag(e.Value.Break)
		strategy = append(strategy, view.Row{Cells: []view.Cell{
			text(e.Key),
			{Text: e.Value.Current.String(), Class: cls},
			{Text: e.Value.Optimal.String(), Class: cls},
		}})
	}

	contracts := make([]view.Row, 0, len(r.Positions))
	for _, e := range r.Positions {
		p := e.Value
		contracts = append(contracts, view.Row{Cells: []view.Cell{
			text(p.Code),
			text(p.ContractDate),
			{Text: p.DBPosition.String(), Class: flag(r.IsDBBreak(p.Code))},
			{Text: p.IBPosition.String(), Class: flag(r.IsIBBreak(p.Code))},
		}})
	}

	doc.SetRows(TableReconcileStrategy, strategy)
	doc.SetRows(TableReconcileContract, contracts)
	doc.SetRows(TableReconcileBroker, nil)
	doc.SetIndicator(IndicatorBreaks, ReconcileStatus(r), "")
	doc.SetIndicator(IndicatorGateway, upDown(r.GatewayOK), "")
}

func renderRisk(doc *view.Document, r report.Risk) {
	// Row 0 is the header; its cells are only known once every instrument
	// has been seen.
	corr := make([]view.Row, 1, len(r.Corr)+1)
	cols := []view.Cell{header("")}
	for _, e := range r.Corr {
		cols = append(cols, header(e.Key))
		cells := []view.Cell{text(e.Key)}
		for _, c := range e.Value {
			cells = append(cells, text(format.Fixed(c.Value, 3)))
		}
		corr = append(corr, view.Row{Cells: cells})
	}
	corr[0] = view.Row{Cells: cols}

	risk := make([]view.Row, 0, len(r.StrategyRisk)+1)
	for _, e := range r.StrategyRisk {
		risk = append(risk, textRow(e.Key, format.Percent(e.Value.Risk, 1)))
	}
	risk = append(risk, view.Row{Cells: []view.Cell{
		header("Total"),
		header(format.Percent(r.PortfolioRiskTotal, 1)),
	}})

	details := make([]view.Row, 0, len(r.Instruments))
	for _, e := range r.Instruments {
		v := e.Value
		details = append(details, textRow(
			e.Key,
			format.Fixed(v.DailyPriceStdev, 1),
			format.Fixed(v.AnnualPriceStdev, 1),
			format.Fixed(v.Price, 1),
			format.Fixed(v.DailyPercStdev, 1),
			format.Fixed(v.AnnualPercStdev, 1),
			format.Fixed(v.PointSizeBase, 1),
			format.Fixed(v.ContractExposure, 1),
			format.Fixed(v.DailyRiskPerContract, 1),
			format.Fixed(v.AnnualRiskPerContract, 1),
			format.Fixed(v.Position, 0),
			format.Fixed(v.Capital, 1),
			format.Fixed(v.ExposureHeldPercCapital, 1),
			format.Fixed(v.AnnualRiskPercCapital, 1),
		))
	}

	doc.SetRows(TableRiskCorr, corr)
	doc.SetRows(TableRisk, risk)
	doc.SetRows(TableRiskDetails, details)
}

func renderTrades(doc *view.Document, t report.Trades) {
	overview := make([]view.Row, 0, len(t.Overview))
	for _, e := range t.Overview {
		v := e.Value
		overview = append(overview, textRow(
			e.Key,
			v.InstrumentCode.String(),
			v.ContractDate.String(),
			v.StrategyName.String(),
			v.FillDatetime.String(),
			v.Fill.String(),
			v.FilledPrice.String(),
		))
	}

	delays := make([]view.Row, 0, len(t.Delays))
	for _, e := range t.Delays {
		v := e.Value
		delays = append(delays, textRow(
			e.Key,
			v.InstrumentCode.String(),
			v.StrategyName.String(),
			v.ParentReferenceDatetime.String(),
			v.SubmitDatetime.String(),
			v.FillDatetime.String(),
			v.SubmitMinusGenerated.String(),
			v.FilledMinusSubmit.String(),
		))
	}

	slippage := make([]view.Row, 0, len(t.RawSlippage))
	for _, e := range t.RawSlippage {
		v := e.Value
		slippage = append(slippage, textRow(
			e.Key,
			v.InstrumentCode.String(),
			v.StrategyName.String(),
			v.Trade.String(),
			v.ParentReferencePrice.String(),
			v.ParentLimitPrice.String(),
			v.MidPrice.String(),
			v.SidePrice.String(),
			v.LimitPrice.String(),
			v.FilledPrice.String(),
			format.Precision(v.Delay.String(), 3),
			format.Precision(v.BidAsk.String(), 3),
			format.Precision(v.Execution.String(), 3),
			format.Precision(v.VersusLimit.String(), 3),
			v.VersusParentLimit.String(),
			format.Precision(v.TotalTrading.String(), 3),
		))
	}

	vol := make([]view.Row, 0, len(t.VolSlippage))
	for _, e := range t.VolSlippage {
		v := e.Value
		vol = append(vol, textRow(
			e.Key,
			v.InstrumentCode.String(),
			v.StrategyName.String(),
			v.Trade.String(),
			v.LastAnnualVol.String(),
			v.DelayVol.String(),
			v.BidAskVol.String(),
			v.ExecutionVol.String(),
			v.VersusLimitVol.String(),
			v.VersusParentLimitVol.String(),
			v.TotalTradingVol.String(),
		))
	}

	cash := make([]view.Row, 0, len(t.CashSlippage))
	for _, e := range t.CashSlippage {
		v := e.Value
		cash = append(cash, textRow(
			e.Key,
			v.InstrumentCode.String(),
			v.StrategyName.String(),
			v.Trade.String(),
			v.ValueOfPricePoint.String(),
			v.DelayCash.String(),
			v.BidAskCash.String(),
			v.ExecutionCash.String(),
			v.VersusLimitCash.String(),
			v.VersusParentLimitCash.String(),
			v.TotalTradingCash.String(),
		))
	}

	doc.SetRows(TableTradesOverview, overview)
	doc.SetRows(TableTradesDelay, delays)
	doc.SetRows(TableTradesSlippage, slippage)
	doc.SetRows(TableTradesVolSlippage, vol)
	doc.SetRows(TableTradesCash, cash)
}
