package dashboard

import (
	"time"

	"github.com/rustyeddy/dashboard/view"
)

// Panel names. Faults and update times are recorded per panel.
const (
	PanelCapital   = "capital"
	PanelCosts     = "costs"
	PanelForex     = "forex"
	PanelLiquidity = "liquidity"
	PanelPandL     = "pandl"
	PanelProcesses = "processes"
	PanelReconcile = "reconcile"
	PanelRisk      = "risk"
	PanelRolls     = "rolls"
	PanelStrategy  = "strategy"
	PanelTrades    = "trades"
)

// Status indicator IDs.
const (
	IndicatorCapital = "capital-tl"
	IndicatorStack   = "stack-tl"
	IndicatorPrices  = "prices-tl"
	IndicatorBreaks  = "breaks-tl"
	IndicatorGateway = "gateway-tl"
	IndicatorRolls   = "rolls-tl"
)

// Table body IDs.
const (
	TableCosts             = "costs_table"
	TableCostsDetail       = "costs_detail_table"
	TableForex             = "forex_table"
	TableLiquidity         = "liquidity_table"
	TablePandLInstrument   = "pandl_instrument_table"
	TablePandLStrategy     = "pandl_strategy_table"
	TablePandLClass        = "pandl_class_table"
	TableProcesses         = "processes_status"
	TableReconcileStrategy = "reconcile_strategy"
	TableReconcileContract = "reconcile_contract"
	TableReconcileBroker   = "reconcile_broker"
	TableRiskCorr          = "risk_corr_table"
	TableRisk              = "risk_table"
	TableRiskDetails       = "risk_details_table"
	TableRollsStatus       = "rolls_status"
	TableRollsDetails      = "rolls_details"
	TableRollPricesSingle  = "roll_prices_single"
	TableRollPricesMulti   = "roll_prices_multiple"
	TableTradesOverview    = "trades_overview_table"
	TableTradesDelay       = "trades_delay_table"
	TableTradesSlippage    = "trades_slippage_table"
	TableTradesVolSlippage = "trades_vol_slippage_table"
	TableTradesCash        = "trades_cash_slippage_table"
)

// SectionRollPrices holds the adjusted price preview awaiting confirmation.
const SectionRollPrices = "roll_prices"

// RollRowID is the ID of an instrument's row in the roll status table.
func RollRowID(instrument string) string {
	return "rolls_" + instrument
}

// LayoutOptions tune the page produced by Layout.
type LayoutOptions struct {
	Title     string
	Action    string
	Reload    time.Duration
	ReloadURL string
}

// Layout arranges every panel's indicators and tables on the page.
func Layout(o LayoutOptions) view.Layout {
	if o.Title == "" {
		o.Title = "Trading system status"
	}
	return view.Layout{
		Title:     o.Title,
		Action:    o.Action,
		Reload:    o.Reload,
		ReloadURL: o.ReloadURL,
		Panels: []view.Panel{
			{
				ID:    PanelCapital,
				Title: "Capital",
				Indicators: []view.IndicatorSpec{
					{ID: IndicatorCapital, Label: "Capital"},
				},
			},
			{
				ID:    PanelProcesses,
				Title: "Processes",
				Indicators: []view.IndicatorSpec{
					{ID: IndicatorStack, Label: "Stack handler"},
					{ID: IndicatorPrices, Label: "Price updates"},
				},
				Tables: []view.TableSpec{
					{ID: TableProcesses, Columns: []string{"Process", "Status"}},
				},
			},
			{
				ID:    PanelReconcile,
				Title: "Reconcile",
				Indicators: []view.IndicatorSpec{
					{ID: IndicatorBreaks, Label: "Breaks"},
					{ID: IndicatorGateway, Label: "Gateway"},
				},
				Tables: []view.TableSpec{
					{ID: TableReconcileStrategy, Title: "Strategy positions", Columns: []string{"Instrument", "Current", "Optimal"}},
					{ID: TableReconcileContract, Title: "Contract positions", Columns: []string{"Instrument", "Contract", "DB", "Broker"}},
					{ID: TableReconcileBroker, Title: "Broker positions", Columns: []string{"Instrument", "Contract", "Position"}},
				},
			},
			{
				ID:    PanelRolls,
				Title: "Rolls",
				Indicators: []view.IndicatorSpec{
					{ID: IndicatorRolls, Label: "Rolls"},
				},
				Tables: []view.TableSpec{
					{ID: TableRollsStatus, Title: "Roll status", Columns: []string{"Instrument", "State", "Roll expiry", "Carry expiry", "Price expiry", "Actions"}},
					{ID: TableRollsDetails, Title: "Contracts", Columns: []string{"Instrument", "Contract / position / volume"}},
				},
			},
			{
				ID:      SectionRollPrices,
				Title:   "Proposed Adjusted Prices",
				Section: SectionRollPrices,
				Tables: []view.TableSpec{
					{ID: TableRollPricesSingle, Title: "Adjusted prices", Columns: []string{"Date", "Current", "New"}},
					{ID: TableRollPricesMulti, Title: "Multiple prices", Columns: []string{
						"Date",
						"Carry contract", "Carry current", "Carry new",
						"Price contract", "Price current", "Price new",
						"Forward contract", "Forward current", "Forward new",
					}},
				},
			},
			{
				ID:    PanelPandL,
				Title: "P&L",
				Tables: []view.TableSpec{
					{ID: TablePandLInstrument, Title: "By instrument", Columns: []string{"Instrument", "P&L"}},
					{ID: TablePandLStrategy, Title: "By strategy", Columns: []string{"Strategy", "P&L"}},
					{ID: TablePandLClass, Title: "By asset class", Columns: []string{"Asset class", "P&L"}},
				},
			},
			{
				ID:    PanelRisk,
				Title: "Risk",
				Tables: []view.TableSpec{
					{ID: TableRisk, Title: "Strategy risk (%)", Columns: []string{"Strategy", "Risk"}},
					{ID: TableRiskCorr, Title: "Correlations"},
					{ID: TableRiskDetails, Title: "Instrument risk", Columns: []string{
						"Instrument", "Daily price stdev", "Annual price stdev", "Price",
						"Daily % stdev", "Annual % stdev", "Point size", "Contract exposure",
						"Daily risk/contract", "Annual risk/contract", "Position", "Capital",
						"Exposure % capital", "Annual risk % capital",
					}},
				},
			},
			{
				ID:    PanelLiquidity,
				Title: "Liquidity",
				Tables: []view.TableSpec{
					{ID: TableLiquidity, Columns: []string{"Instrument", "Contracts", "Risk"}},
				},
			},
			{
				ID:    PanelCosts,
				Title: "Costs",
				Tables: []view.TableSpec{
					{ID: TableCosts, Title: "SR costs", Columns: []string{"Instrument", "SR cost"}},
					{ID: TableCostsDetail, Title: "Cost estimates", Columns: []string{
						"Instrument", "% Difference", "Configured", "Bid/ask sampled", "Bid/ask trades",
						"Estimate", "Total trades", "Weight config", "Weight samples", "Weight trades",
					}},
				},
			},
			{
				ID:    PanelForex,
				Title: "FX balances",
				Tables: []view.TableSpec{
					{ID: TableForex, Columns: []string{"Currency", "Balance"}},
				},
			},
			{
				ID:    PanelTrades,
				Title: "Trades",
				Tables: []view.TableSpec{
					{ID: TableTradesOverview, Title: "Fills", Columns: []string{
						"", "Instrument", "Contract", "Strategy", "Fill time", "Fill", "Price",
					}},
					{ID: TableTradesDelay, Title: "Delays", Columns: []string{
						"", "Instrument", "Strategy", "Generated", "Submitted", "Filled",
						"Submit - generated", "Filled - submit",
					}},
					{ID: TableTradesSlippage, Title: "Slippage (ticks)", Columns: []string{
						"", "Instrument", "Strategy", "Trade", "Parent ref", "Parent limit",
						"Mid", "Side", "Limit", "Filled", "Delay", "Bid/ask", "Execution",
						"Versus limit", "Versus parent limit", "Total",
					}},
					{ID: TableTradesVolSlippage, Title: "Slippage (vol)", Columns: []string{
						"", "Instrument", "Strategy", "Trade", "Annual vol", "Delay", "Bid/ask",
						"Execution", "Versus limit", "Versus parent limit", "Total",
					}},
					{ID: TableTradesCash, Title: "Slippage (cash)", Columns: []string{
						"", "Instrument", "Strategy", "Trade", "Value of point", "Delay", "Bid/ask",
						"Execution", "Versus limit", "Versus parent limit", "Total",
					}},
				},
			},
		},
	}
}
