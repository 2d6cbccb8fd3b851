package mission

import "github.com/vovakirdan/bizsim/internal/econ"

// Status is a mission's position in its lifecycle.
// Transitions only move forward: locked -> unlocked -> completed.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusUnlocked  Status = "unlocked"
	StatusCompleted Status = "completed"
)

// Mission is one step of the chain.
type Mission struct {
	ID        string
	Title     string
	Predicate Predicate
	Unlocked  bool
	Completed bool
}

// Status reports the mission's lifecycle state.
func (m Mission) Status() Status {
	switch {
	case m.Completed:
		return StatusCompleted
	case m.Unlocked:
		return StatusUnlocked
	default:
		return StatusLocked
	}
}

// Chain is an ordered mission list where completing mission i unlocks
// mission i+1.
type Chain struct {
	missions []Mission
}

// NewChain copies missions, resets their flags and unlocks the first one.
func NewChain(missions []Mission) *Chain {
	c := &Chain{missions: make([]Mission, len(missions))}
	copy(c.missions, missions)
	for i := range c.missions {
		c.missions[i].Unlocked = false
		c.missions[i].Completed = false
	}
	if len(c.missions) > 0 {
		c.missions[0].Unlocked = true
	}
	return c
}

// Evaluate completes every unlocked mission whose predicate holds and
// unlocks its successor. A successor unlocked here waits for the next call.
// Returns the ids completed by this call, in chain order.
func (c *Chain) Evaluate(s econ.State, r *econ.PeriodResult) []string {
	if c == nil || c.Done() {
		return nil
	}

	// Snapshot eligibility first so an unlock in this pass is not also
	// evaluated in this pass.
	eligible := make([]bool, len(c.missions))
	for i, m := range c.missions {
		eligible[i] = m.Unlocked && !m.Completed
	}

	var completed []string
	for i := range c.missions {
		if !eligible[i] {
			continue
		}
		m := &c.missions[i]
		if m.Predicate == nil || !m.Predicate.Met(s, r) {
			continue
		}
		m.Completed = true
		completed = append(completed, m.ID)
		if i+1 < len(c.missions) {
			c.missions[i+1].Unlocked = true
		}
	}
	return completed
}

// Done reports whether every mission is completed. An empty chain is done.
func (c *Chain) Done() bool {
	if c == nil {
		return true
	}
	for _, m := range c.missions {
		if !m.Completed {
			return false
		}
	}
	return true
}

// Missions returns a copy of the chain in order.
func (c *Chain) Missions() []Mission {
	if c == nil {
		return nil
	}
	out := make([]Mission, len(c.missions))
	copy(out, c.missions)
	return out
}

// Current returns the first unlocked, uncompleted mission.
func (c *Chain) Current() (Mission, bool) {
	if c == nil {
		return Mission{}, false
	}
	for _, m := range c.missions {
		if m.Unlocked && !m.Completed {
			return m, true
		}
	}
	return Mission{}, false
}

// Status returns the status of the mission with the given id.
func (c *Chain) Status(id string) (Status, bool) {
	if c == nil {
		return "", false
	}
	for _, m := range c.missions {
		if m.ID == id {
			return m.Status(), true
		}
	}
	return "", false
}

// Progress returns completed and total mission counts.
func (c *Chain) Progress() (done, total int) {
	if c == nil {
		return 0, 0
	}
	for _, m := range c.missions {
		if m.Completed {
			done++
		}
	}
	return done, len(c.missions)
}

// Flags exports the lifecycle of every mission keyed by id.
func (c *Chain) Flags() map[string]Status {
	if c == nil {
		return map[string]Status{}
	}
	flags := make(map[string]Status, len(c.missions))
	for _, m := range c.missions {
		flags[m.ID] = m.Status()
	}
	return flags
}

// Restore re-applies saved flags. Missions are completed in order up to the
// first one not saved as completed, which becomes the unlocked mission, so
// a restored chain never holds a gap. Unknown ids are ignored.
func (c *Chain) Restore(flags map[string]Status) {
	if c == nil {
		return
	}
	for i := range c.missions {
		c.missions[i].Unlocked = false
		c.missions[i].Completed = false
	}
	for i := range c.missions {
		m := &c.missions[i]
		m.Unlocked = true
		if flags[m.ID] != StatusCompleted {
			return
		}
		m.Completed = true
	}
}
