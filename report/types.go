// Package report holds the status payloads served by the trading system's
// reporting endpoints, decoded into the shapes the dashboard renders.
package report

import "encoding/json"

// Capital is the latest and previous-day total account capital.
type Capital struct {
	Now       float64 `json:"now"`
	Yesterday float64 `json:"yesterday"`
}

// Costs is the trading cost report. SRCosts and Details are rendered into
// separate tables.
type Costs struct {
	SRCosts Ordered[SRCost]     `json:"table_of_SR_costs"`
	Details Ordered[CostDetail] `json:"combined_df_costs"`
}

type SRCost struct {
	SRCost Text `json:"SR_cost"`
}

// CostDetail compares configured and sampled spread costs for an instrument.
type CostDetail struct {
	PercentDifference Text `json:"% Difference"`
	Configured        Text `json:"Configured"`
	BidAskSampled     Text `json:"bid_ask_sampled"`
	BidAskTrades      Text `json:"bid_ask_trades"`
	Estimate          Text `json:"estimate"`
	TotalTrades       Text `json:"total_trades"`
	WeightConfig      Text `json:"weight_config"`
	WeightSamples     Text `json:"weight_samples"`
	WeightTrades      Text `json:"weight_trades"`
}

// Forex maps a currency to its broker balance.
type Forex = Ordered[Text]

// Liquidity maps an instrument to its daily volume measures.
type Liquidity = Ordered[LiquidityEntry]

type LiquidityEntry struct {
	Contracts float64 `json:"contracts"`
	Risk      float64 `json:"risk"`
}

// PandL is the profit and loss report broken down three ways.
type PandL struct {
	Instruments  []PandLEntry `json:"pandl_for_instruments_across_strategies"`
	Strategies   []PandLEntry `json:"strategies"`
	Sectors      []PandLEntry `json:"sector_pandl"`
	Residual     float64      `json:"residual"`
	TotalCapital float64      `json:"total_capital_pandl"`
}

type PandLEntry struct {
	Codes string  `json:"codes"`
	PandL float64 `json:"pandl"`
}

// Process run states reported by the process controller.
const (
	ProcessRunning = "running"
	ProcessCrashed = "crashed"
)

// StackHandler is the process whose state drives the stack indicator.
const StackHandler = "run_stack_handler"

// Processes is the process control status.
type Processes struct {
	RunningModes Ordered[string] `json:"running_modes"`
	PricesUpdate bool            `json:"prices_update"`
}

// Reconcile compares optimal, database and broker positions.
type Reconcile struct {
	Strategy  Ordered[StrategyBreak]    `json:"strategy"`
	Positions Ordered[ContractPosition] `json:"positions"`
	DBBreaks  []string                  `json:"db_breaks"`
	IBBreaks  []string                  `json:"ib_breaks"`
	GatewayOK bool                      `json:"gateway_ok"`
}

type StrategyBreak struct {
	Current Text `json:"current"`
	Optimal Text `json:"optimal"`
	Break   bool `json:"break"`
}

type ContractPosition struct {
	Code         string `json:"code"`
	ContractDate string `json:"contract_date"`
	DBPosition   Text   `json:"db_position"`
	IBPosition   Text   `json:"ib_position"`
}

// IsDBBreak reports whether code has a database vs strategy position break.
func (r Reconcile) IsDBBreak(code string) bool { return contains(r.DBBreaks, code) }

// IsIBBreak reports whether code has a broker vs database position break.
func (r Reconcile) IsIBBreak(code string) bool { return contains(r.IBBreaks, code) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Risk is the portfolio risk report.
type Risk struct {
	Corr               Ordered[Ordered[float64]] `json:"corr_data"`
	StrategyRisk       Ordered[StrategyRisk]     `json:"strategy_risk"`
	PortfolioRiskTotal float64                   `json:"portfolio_risk_total"`
	Instruments        Ordered[InstrumentRisk]   `json:"instrument_risk_data"`
}

type StrategyRisk struct {
	Risk float64 `json:"risk"`
}

type InstrumentRisk struct {
	DailyPriceStdev         float64 `json:"daily_price_stdev"`
	AnnualPriceStdev        float64 `json:"annual_price_stdev"`
	Price                   float64 `json:"price"`
	DailyPercStdev          float64 `json:"daily_perc_stdev"`
	AnnualPercStdev         float64 `json:"annual_perc_stdev"`
	PointSizeBase           float64 `json:"point_size_base"`
	ContractExposure        float64 `json:"contract_exposure"`
	DailyRiskPerContract    float64 `json:"daily_risk_per_contract"`
	AnnualRiskPerContract   float64 `json:"annual_risk_per_contract"`
	Position                float64 `json:"position"`
	Capital                 float64 `json:"capital"`
	ExposureHeldPercCapital float64 `json:"exposure_held_perc_capital"`
	AnnualRiskPercCapital   float64 `json:"annual_risk_perc_capital"`
}

// Rolls maps an instrument to its roll status.
type Rolls = Ordered[RollStatus]

// RollStatus describes where an instrument is in its roll cycle. Expiry
// fields are days until the relevant contract expires. ContractLabels,
// Positions and Volumes are parallel slices, one entry per contract.
type RollStatus struct {
	Status         string    `json:"status"`
	RollExpiry     float64   `json:"roll_expiry"`
	CarryExpiry    float64   `json:"carry_expiry"`
	PriceExpiry    float64   `json:"price_expiry"`
	Allowable      []string  `json:"allowable"`
	ContractLabels []string  `json:"contract_labels"`
	Positions      []Text    `json:"positions"`
	Volumes        []float64 `json:"volumes"`
}

// Trades is the fills and slippage report.
type Trades struct {
	Overview     Ordered[Fill]         `json:"overview"`
	Delays       Ordered[Delay]        `json:"delays"`
	RawSlippage  Ordered[RawSlippage]  `json:"raw_slippage"`
	VolSlippage  Ordered[VolSlippage]  `json:"vol_slippage"`
	CashSlippage Ordered[CashSlippage] `json:"cash_slippage"`
}

type Fill struct {
	InstrumentCode Text `json:"instrument_code"`
	ContractDate   Text `json:"contract_date"`
	StrategyName   Text `json:"strategy_name"`
	FillDatetime   Text `json:"fill_datetime"`
	Fill           Text `json:"fill"`
	FilledPrice    Text `json:"filled_price"`
}

type Delay struct {
	InstrumentCode          Text `json:"instrument_code"`
	StrategyName            Text `json:"strategy_name"`
	ParentReferenceDatetime Text `json:"parent_reference_datetime"`
	SubmitDatetime          Text `json:"submit_datetime"`
	FillDatetime            Text `json:"fill_datetime"`
	SubmitMinusGenerated    Text `json:"submit_minus_generated"`
	FilledMinusSubmit       Text `json:"filled_minus_submit"`
}

type RawSlippage struct {
	InstrumentCode       Text `json:"instrument_code"`
	StrategyName         Text `json:"strategy_name"`
	Trade                Text `json:"trade"`
	ParentReferencePrice Text `json:"parent_reference_price"`
	ParentLimitPrice     Text `json:"parent_limit_price"`
	MidPrice             Text `json:"mid_price"`
	SidePrice            Text `json:"side_price"`
	LimitPrice           Text `json:"limit_price"`
	FilledPrice          Text `json:"filled_price"`
	Delay                Text `json:"delay"`
	BidAsk               Text `json:"bid_ask"`
	Execution            Text `json:"execution"`
	VersusLimit          Text `json:"versus_limit"`
	VersusParentLimit    Text `json:"versus_parent_limit"`
	TotalTrading         Text `json:"total_trading"`
}

type VolSlippage struct {
	InstrumentCode       Text `json:"instrument_code"`
	StrategyName         Text `json:"strategy_name"`
	Trade                Text `json:"trade"`
	LastAnnualVol        Text `json:"last_annual_vol"`
	DelayVol             Text `json:"delay_vol"`
	BidAskVol            Text `json:"bid_ask_vol"`
	ExecutionVol         Text `json:"execution_vol"`
	VersusLimitVol       Text `json:"versus_limit_vol"`
	VersusParentLimitVol Text `json:"versus_parent_limit_vol"`
	TotalTradingVol      Text `json:"total_trading_vol"`
}

type CashSlippage struct {
	InstrumentCode        Text `json:"instrument_code"`
	StrategyName          Text `json:"strategy_name"`
	Trade                 Text `json:"trade"`
	ValueOfPricePoint     Text `json:"value_of_price_point"`
	DelayCash             Text `json:"delay_cash"`
	BidAskCash            Text `json:"bid_ask_cash"`
	ExecutionCash         Text `json:"execution_cash"`
	VersusLimitCash       Text `json:"versus_limit_cash"`
	VersusParentLimitCash Text `json:"versus_parent_limit_cash"`
	TotalTradingCash      Text `json:"total_trading_cash"`
}

// Strategy is fetched but has no agreed shape yet.
type Strategy = json.RawMessage
