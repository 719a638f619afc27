package dashboard

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/dashboard/backend"
	"github.com/rustyeddy/dashboard/view"
)

const (
	capitalJSON = `{"now": 1250000.5, "yesterday": 1249000}`
	costsJSON   = `{"table_of_SR_costs": {"EDOLLAR": {"SR_cost": 0.0042}, "GOLD": {"SR_cost": 0.011}},
		"combined_df_costs": {"EDOLLAR": {"% Difference": "0.1", "Configured": "0.005", "bid_ask_sampled": "0.0049",
		"bid_ask_trades": "nan", "estimate": "0.005", "total_trades": "3", "weight_config": "0.5",
		"weight_samples": "0.5", "weight_trades": "0"}}}`
	forexJSON     = `{"USD": 250000.25, "EUR": -120.5, "GBP": 0}`
	liquidityJSON = `{"EDOLLAR": {"contracts": 99, "risk": 1.4}, "GOLD": {"contracts": 100, "risk": 1.5}}`
	pandlJSON     = `{"pandl_for_instruments_across_strategies": [{"codes": "EDOLLAR", "pandl": 12.345}, {"codes": "GOLD", "pandl": -3}],
		"strategies": [{"codes": "carry", "pandl": 9.3}], "sector_pandl": [{"codes": "STIR", "pandl": 12.345}],
		"residual": 0.004, "total_capital_pandl": 9.349}`
	processesJSON = `{"running_modes": {"run_stack_handler": "running", "run_capital_update": "crashed", "run_daily_prices_updates": "close"},
		"prices_update": true}`
	reconcileJSON = `{"strategy": {"carry EDOLLAR": {"current": 2, "optimal": "1.8/2.2", "break": false}},
		"positions": {"EDOLLAR-20230300": {"code": "EDOLLAR", "contract_date": "20230300", "db_position": 2, "ib_position": 2}},
		"db_breaks": [], "ib_breaks": [], "gateway_ok": true}`
	riskJSON = `{"corr_data": {"A": {"A": 1.0, "B": 0.5}, "B": {"A": 0.5, "B": 1.0}},
		"strategy_risk": {"carry": {"risk": 0.123}}, "portfolio_risk_total": 0.2,
		"instrument_risk_data": {"A": {"daily_price_stdev": 1.23, "annual_price_stdev": 19.6, "price": 101.25,
		"daily_perc_stdev": 1.2, "annual_perc_stdev": 19.4, "point_size_base": 2500, "contract_exposure": 253125,
		"daily_risk_per_contract": 3075, "annual_risk_per_contract": 49200, "position": 2.0, "capital": 1250000,
		"exposure_held_perc_capital": 40.5, "annual_risk_perc_capital": 7.87}}}`
	rollsJSON = `{
		"GOLD": {"status": "No_Roll", "roll_expiry": 40, "carry_expiry": 60, "price_expiry": 45,
			"allowable": ["Passive", "Force", "No_Roll"], "contract_labels": ["20230400", "20230600"],
			"positions": [1, 0], "volumes": [1.0, 0.1234]},
		"EDOLLAR": {"status": "Passive", "roll_expiry": 10, "carry_expiry": 90, "price_expiry": 12,
			"allowable": ["Roll_Adjusted", "Passive"], "contract_labels": ["20230300"], "positions": [2], "volumes": [0.5]}
	}`
	strategyJSON = `{}`
	tradesJSON   = `{
		"overview": {"0": {"instrument_code": "EDOLLAR", "contract_date": "20230300", "strategy_name": "carry",
			"fill_datetime": "2023-01-02 10:00:00", "fill": "1", "filled_price": "96.5"}},
		"delays": {"0": {"instrument_code": "EDOLLAR", "strategy_name": "carry", "parent_reference_datetime": "a",
			"submit_datetime": "b", "fill_datetime": "c", "submit_minus_generated": "12.0", "filled_minus_submit": "3.0"}},
		"raw_slippage": {"0": {"instrument_code": "EDOLLAR", "strategy_name": "carry", "trade": "1",
			"parent_reference_price": "96.49", "parent_limit_price": "nan", "mid_price": "96.495", "side_price": "96.5",
			"limit_price": "96.5", "filled_price": "96.5", "delay": "0.012345", "bid_ask": "0.005", "execution": "0",
			"versus_limit": "nan", "versus_parent_limit": "nan", "total_trading": "0.017345"}},
		"vol_slippage": {"0": {"instrument_code": "EDOLLAR", "strategy_name": "carry", "trade": "1",
			"last_annual_vol": "0.4", "delay_vol": "0.03", "bid_ask_vol": "0.01", "execution_vol": "0",
			"versus_limit_vol": "nan", "versus_parent_limit_vol": "nan", "total_trading_vol": "0.04"}},
		"cash_slippage": {"0": {"instrument_code": "EDOLLAR", "strategy_name": "carry", "trade": "1",
			"value_of_price_point": "2500", "delay_cash": "30.9", "bid_ask_cash": "12.5", "execution_cash": "0",
			"versus_limit_cash": "nan", "versus_parent_limit_cash": "nan", "total_trading_cash": "43.4"}}
	}`
)

type fakeBackend struct {
	mu        sync.Mutex
	bodies    map[string]string
	status    map[string]int
	calls     map[string]int
	rollReply string
	rollForms []url.Values
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		bodies: map[string]string{
			backend.PathCapital:   capitalJSON,
			backend.PathCosts:     costsJSON,
			backend.PathForex:     forexJSON,
			backend.PathLiquidity: liquidityJSON,
			backend.PathPandL:     pandlJSON,
			backend.PathProcesses: processesJSON,
			backend.PathReconcile: reconcileJSON,
			backend.PathRisk:      riskJSON,
			backend.PathRolls:     rollsJSON,
			backend.PathStrategy:  strategyJSON,
			backend.PathTrades:    tradesJSON,
		},
		status:    map[string]int{},
		calls:     map[string]int{},
		rollReply: `{}`,
	}
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	f.calls[key]++

	if code, ok := f.status[r.URL.Path]; ok {
		http.Error(w, "backend failure", code)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == backend.PathRolls {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		f.rollForms = append(f.rollForms, form)
		io.WriteString(w, f.rollReply)
		return
	}

	body, ok := f.bodies[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	io.WriteString(w, body)
}

func (f *fakeBackend) set(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[path] = body
	delete(f.status, path)
}

func (f *fakeBackend) fail(path string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[path] = code
}

func (f *fakeBackend) reply(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rollReply = body
}

func (f *fakeBackend) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

func (f *fakeBackend) forms() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.rollForms...)
}

func newTestDashboard(t *testing.T) (*Dashboard, *fakeBackend) {
	t.Helper()
	fake := newFakeBackend()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := backend.NewClient(server.URL, 5*time.Second)
	return New(client, view.NewDocument(), zerolog.Nop()), fake
}

func cellTexts(r view.Row) []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text
	}
	return out
}
