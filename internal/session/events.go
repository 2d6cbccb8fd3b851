package session

import "github.com/vovakirdan/bizsim/internal/econ"

// Event is pushed from a session to whoever renders it.
type Event interface {
	sessionEvent()
}

// PeriodAdvancedEvent is sent after every simulated period.
type PeriodAdvancedEvent struct {
	Period  int
	Result  econ.PeriodResult
	Insight string
}

func (PeriodAdvancedEvent) sessionEvent() {}

// MissionCompletedEvent is sent once per completed mission.
type MissionCompletedEvent struct {
	MissionID string
}

func (MissionCompletedEvent) sessionEvent() {}

// AchievementEarnedEvent is sent once per earned badge.
type AchievementEarnedEvent struct {
	AchievementID string
}

func (AchievementEarnedEvent) sessionEvent() {}

// VictoryEvent is sent the period the profitable streak is reached.
type VictoryEvent struct {
	Period int
	Score  int
}

func (VictoryEvent) sessionEvent() {}

// GameOverEvent is sent when the business goes bankrupt.
type GameOverEvent struct {
	Period int
	Score  int
}

func (GameOverEvent) sessionEvent() {}
