package dashboard

import (
	"github.com/rustyeddy/dashboard/report"
	"github.com/rustyeddy/dashboard/view"
)

// Liquidity thresholds below which a cell is flagged.
const (
	minLiquidContracts = 100
	minLiquidRisk      = 1.5
)

// rollWarnDays is how close to the roll date an instrument turns the roll
// indicator orange.
const rollWarnDays = 5

func severity(s view.Status) int {
	switch s {
	case view.StatusUp:
		return 1
	case view.StatusWarn:
		return 2
	case view.StatusDown:
		return 3
	}
	return 0
}

// escalate returns the more severe of cur and next. A status never moves
// back down.
func escalate(cur, next view.Status) view.Status {
	if severity(next) > severity(cur) {
		return next
	}
	return cur
}

func upDown(ok bool) view.Status {
	if ok {
		return view.StatusUp
	}
	return view.StatusDown
}

// CapitalStatus is up when capital has not fallen since yesterday.
func CapitalStatus(now, yesterday float64) view.Status {
	return upDown(now >= yesterday)
}

// StackStatus reflects the stack handler's run state: up when running,
// down when crashed and intermediate otherwise, including when it is not
// reported at all.
func StackStatus(modes report.Ordered[string]) view.Status {
	st, _ := modes.Get(report.StackHandler)
	switch st {
	case report.ProcessRunning:
		return view.StatusUp
	case report.ProcessCrashed:
		return view.StatusDown
	}
	return view.StatusWarn
}

// ReconcileStatus is up with no breaks, intermediate with strategy breaks
// only and down with any contract position break.
func ReconcileStatus(r report.Reconcile) view.Status {
	st := view.StatusUp
	for _, e := range r.Strategy {
		if e.Value.Break {
			st = escalate(st, view.StatusWarn)
		}
	}
	for _, e := range r.Positions {
		if r.IsDBBreak(e.Value.Code) || r.IsIBBreak(e.Value.Code) {
			st = escalate(st, view.StatusDown)
		}
	}
	return st
}

// RollsStatus is down if any instrument is past its roll date,
// intermediate if any is within rollWarnDays of it and up otherwise.
func RollsStatus(rolls report.Rolls) view.Status {
	st := view.StatusUp
	for _, e := range rolls {
		switch exp := e.Value.RollExpiry; {
		case exp < 0:
			return view.StatusDown
		case exp < rollWarnDays:
			st = escalate(st, view.StatusWarn)
		}
	}
	return st
}

func flag(bad bool) view.Status {
	if bad {
		return view.StatusDown
	}
	return view.StatusNone
}
