package depot

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Scheduler runs systems in registration order, each on the cadence it reports.
type Scheduler struct {
	systems Cache[scheduledSystem]
	clock   func() time.Time
}

type scheduledSystem struct {
	system  System
	refresh RefreshPeriod
}

func newScheduler() *Scheduler {
	return &Scheduler{
		systems: FactoryNewCache[scheduledSystem](Config.schedulerCapacity),
		clock:   time.Now,
	}
}

// AddSystem registers s under its name with an EveryTime refresh.
// A system registered under a name already in use takes over that slot.
func (s *Scheduler) AddSystem(system System) error {
	name := system.Name()
	if _, err := s.systems.Register(name, scheduledSystem{
		system:  system,
		refresh: EveryTime(),
	}); err != nil {
		return eris.Wrapf(err, "failed to add system %q", name)
	}
	return nil
}

// SetRefresh overrides the schedule of the named system and reports whether it exists
func (s *Scheduler) SetRefresh(name string, p RefreshPeriod) bool {
	idx, ok := s.systems.GetIndex(name)
	if !ok {
		return false
	}
	s.systems.GetItem(idx).refresh = p
	return true
}

// Refresh returns the current schedule of the named system
func (s *Scheduler) Refresh(name string) (RefreshPeriod, bool) {
	idx, ok := s.systems.GetIndex(name)
	if !ok {
		return Stop(), false
	}
	return s.systems.GetItem(idx).refresh, true
}

// SetClock replaces the clock read at the start of every Update
func (s *Scheduler) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	s.clock = clock
}

func (s *Scheduler) Len() int {
	return s.systems.Len()
}

// Update runs every due system once, in registration order. The clock is read once
// so all systems of a pass see the same instant. When d is non-nil it is drained
// after each system that ran, so consumers see a producer's events in the same pass.
//
// Update returns the greatest refresh period across all systems after the pass,
// which callers use to pick their own sleep interval. The first system error stops
// the pass and is returned; panics are not recovered.
func (s *Scheduler) Update(d *Dispatcher) (RefreshPeriod, error) {
	now := s.clock()
	ret := Stop()
	for i := 0; i < s.systems.Len(); i++ {
		slot := s.systems.GetItem(i)
		prev := slot.refresh
		if prev.Due(now) {
			name := slot.system.Name()
			next, err := slot.system.Run(now)
			if err != nil {
				Config.logger.Warn("system failed",
					zap.String("system", name),
					zap.Error(err),
				)
				return Stop(), eris.Wrapf(err, "system %q failed", name)
			}
			// Run may have added systems, so the slot is looked up again
			slot = s.systems.GetItem(i)
			if !next.Equal(prev) {
				Config.logger.Debug("system refresh changed",
					zap.String("system", name),
					zap.Stringer("from", prev),
					zap.Stringer("to", next),
				)
				slot.refresh = next
			}
			if d != nil {
				d.Dispatch()
			}
		}
		ret = MaxRefresh(ret, slot.refresh)
	}
	return ret, nil
}
