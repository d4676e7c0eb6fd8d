package settler

import (
	"math"
	"time"
)

// UpdateEnergy applies the energy drift of the current status since the last
// update. Clock skew (now before the last update) leaves the settler unchanged.
// Every status change and energy-gated check goes through here first.
func (m *ResourceModel) UpdateEnergy(s *Settler, now time.Time) {
	from := s.energyLastUpdated
	if s.createdAt.After(from) {
		from = s.createdAt
	}

	hoursPassed := now.Sub(from).Hours()
	if hoursPassed <= 0 {
		return
	}

	delta := m.statuses.EnergyDeltaPerHour(string(s.status))
	s.energy = clampEnergy(s.energy + delta*hoursPassed)
	s.energyLastUpdated = now
}

// EnergyRequired is the energy a task in the given status consumes over its
// duration. Statuses that recover energy require none.
func (m *ResourceModel) EnergyRequired(status Status, durationHours float64) float64 {
	delta := m.statuses.EnergyDeltaPerHour(string(status))
	if delta >= 0 {
		return 0
	}
	return math.Abs(delta) * durationHours
}

// CanCompleteTask reports whether the settler has the energy to spend
// durationHours in the given status
func (m *ResourceModel) CanCompleteTask(s *Settler, status Status, durationHours float64, now time.Time) bool {
	m.UpdateEnergy(s, now)
	return s.energy >= m.EnergyRequired(status, durationHours)
}

// ChangeStatus settles energy under the old status, then switches
func (m *ResourceModel) ChangeStatus(s *Settler, status Status, now time.Time) {
	m.UpdateEnergy(s, now)
	s.status = status
}
