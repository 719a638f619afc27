package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/dashboard/report"
	"github.com/rustyeddy/dashboard/view"
)

func TestCapitalStatus(t *testing.T) {
	assert.Equal(t, view.StatusUp, CapitalStatus(101, 100))
	assert.Equal(t, view.StatusUp, CapitalStatus(100, 100))
	assert.Equal(t, view.StatusDown, CapitalStatus(99.99, 100))
}

func TestStackStatus(t *testing.T) {
	modes := func(st string) report.Ordered[string] {
		return report.Ordered[string]{
			{Key: "run_capital_update", Value: "crashed"},
			{Key: report.StackHandler, Value: st},
		}
	}

	assert.Equal(t, view.StatusUp, StackStatus(modes("running")))
	assert.Equal(t, view.StatusDown, StackStatus(modes("crashed")))
	assert.Equal(t, view.StatusWarn, StackStatus(modes("close")))
	assert.Equal(t, view.StatusWarn, StackStatus(modes("")))
	assert.Equal(t, view.StatusWarn, StackStatus(nil))
	assert.Equal(t, view.StatusWarn, StackStatus(report.Ordered[string]{{Key: "run_capital_update", Value: "running"}}))
}

func TestReconcileStatus(t *testing.T) {
	strategyBreak := report.Entry[report.StrategyBreak]{Key: "carry GOLD", Value: report.StrategyBreak{Break: true}}
	noBreak := report.Entry[report.StrategyBreak]{Key: "carry BUND", Value: report.StrategyBreak{}}
	gold := report.Entry[report.ContractPosition]{Key: "GOLD-20230400", Value: report.ContractPosition{Code: "GOLD"}}
	bund := report.Entry[report.ContractPosition]{Key: "BUND-20230300", Value: report.ContractPosition{Code: "BUND"}}

	tests := []struct {
		name string
		r    report.Reconcile
		want view.Status
	}{
		{
			name: "no breaks",
			r: report.Reconcile{
				Strategy:  report.Ordered[report.StrategyBreak]{noBreak},
				Positions: report.Ordered[report.ContractPosition]{gold, bund},
			},
			want: view.StatusUp,
		},
		{
			name: "strategy break only",
			r: report.Reconcile{
				Strategy:  report.Ordered[report.StrategyBreak]{noBreak, strategyBreak},
				Positions: report.Ordered[report.ContractPosition]{gold},
			},
			want: view.StatusWarn,
		},
		{
			name: "db break without strategy breaks",
			r: report.Reconcile{
				Positions: report.Ordered[report.ContractPosition]{gold, bund},
				DBBreaks:  []string{"BUND"},
			},
			want: view.StatusDown,
		},
		{
			name: "ib break wins over strategy break",
			r: report.Reconcile{
				Strategy:  report.Ordered[report.StrategyBreak]{strategyBreak},
				Positions: report.Ordered[report.ContractPosition]{gold},
				IBBreaks:  []string{"GOLD"},
			},
			want: view.StatusDown,
		},
		{
			name: "break for a code with no position row",
			r: report.Reconcile{
				Positions: report.Ordered[report.ContractPosition]{gold},
				DBBreaks:  []string{"EDOLLAR"},
			},
			want: view.StatusUp,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconcileStatus(tt.r))
		})
	}
}

func TestEscalateNeverDowngrades(t *testing.T) {
	st := view.StatusUp
	st = escalate(st, view.StatusDown)
	st = escalate(st, view.StatusWarn)
	st = escalate(st, view.StatusUp)
	assert.Equal(t, view.StatusDown, st)
}

func TestRollsStatus(t *testing.T) {
	roll := func(key string, expiry float64) report.Entry[report.RollStatus] {
		return report.Entry[report.RollStatus]{Key: key, Value: report.RollStatus{RollExpiry: expiry}}
	}

	tests := []struct {
		name  string
		rolls report.Rolls
		want  view.Status
	}{
		{"none", nil, view.StatusUp},
		{"all far", report.Rolls{roll("A", 40), roll("B", 5)}, view.StatusUp},
		{"one near", report.Rolls{roll("A", 40), roll("B", 4)}, view.StatusWarn},
		{"zero days", report.Rolls{roll("A", 0)}, view.StatusWarn},
		{"expired then near", report.Rolls{roll("A", -1), roll("B", 3)}, view.StatusDown},
		{"near then expired", report.Rolls{roll("B", 3), roll("A", -1)}, view.StatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RollsStatus(tt.rolls))
		})
	}
}
