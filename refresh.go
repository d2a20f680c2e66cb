package depot

import (
	"fmt"
	"time"
)

type refreshKind uint8

const (
	refreshStop refreshKind = iota
	refreshAt
	refreshEveryTime
)

// RefreshPeriod is what a system reports after running: run on every update,
// run once the clock reaches an instant, or stop running.
//
// Periods are totally ordered: Stop < At(t) < EveryTime, and At values order by instant.
type RefreshPeriod struct {
	kind refreshKind
	at   time.Time
}

func EveryTime() RefreshPeriod {
	return RefreshPeriod{kind: refreshEveryTime}
}

func At(t time.Time) RefreshPeriod {
	return RefreshPeriod{kind: refreshAt, at: t}
}

func Stop() RefreshPeriod {
	return RefreshPeriod{kind: refreshStop}
}

// Instant returns the deadline of an At period
func (p RefreshPeriod) Instant() (time.Time, bool) {
	return p.at, p.kind == refreshAt
}

func (p RefreshPeriod) IsEveryTime() bool { return p.kind == refreshEveryTime }
func (p RefreshPeriod) IsStop() bool      { return p.kind == refreshStop }

// Compare returns -1, 0 or +1 depending on whether p orders before, with or after o
func (p RefreshPeriod) Compare(o RefreshPeriod) int {
	switch {
	case p.kind < o.kind:
		return -1
	case p.kind > o.kind:
		return 1
	case p.kind == refreshAt:
		return p.at.Compare(o.at)
	}
	return 0
}

func (p RefreshPeriod) Equal(o RefreshPeriod) bool {
	return p.Compare(o) == 0
}

// Due reports whether a system in this state should run at now
func (p RefreshPeriod) Due(now time.Time) bool {
	switch p.kind {
	case refreshEveryTime:
		return true
	case refreshAt:
		return !now.Before(p.at)
	}
	return false
}

func (p RefreshPeriod) String() string {
	switch p.kind {
	case refreshEveryTime:
		return "every-time"
	case refreshAt:
		return fmt.Sprintf("at(%s)", p.at.Format(time.RFC3339Nano))
	}
	return "stop"
}

// MaxRefresh returns the greatest of the given periods, Stop when none are given
func MaxRefresh(periods ...RefreshPeriod) RefreshPeriod {
	ret := Stop()
	for _, p := range periods {
		if p.Compare(ret) > 0 {
			ret = p
		}
	}
	return ret
}
