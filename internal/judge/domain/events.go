package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Event is an immutable record of a significant aggregate state change,
// collected in memory and drained by the application layer after a
// successful mutation. Publishing is the caller's responsibility.
type Event interface {
	EventType() string
	AggregateID() snowflake.ID
	OccurredAt() time.Time
}

const (
	EventJudgeAssignedToCourt  = "judge.assigned_to_court"
	EventBiasMetricsCalculated = "judge.bias_metrics_calculated"
	EventJudgeRetired          = "judge.retired"
)

type JudgeAssignedToCourt struct {
	JudgeID        snowflake.ID   `json:"judge_id"`
	CourtID        snowflake.ID   `json:"court_id"`
	CourtName      string         `json:"court_name"`
	AssignmentType AssignmentType `json:"assignment_type"`
	StartDate      time.Time      `json:"start_date"`
	At             time.Time      `json:"at"`
}

func (e JudgeAssignedToCourt) EventType() string         { return EventJudgeAssignedToCourt }
func (e JudgeAssignedToCourt) AggregateID() snowflake.ID { return e.JudgeID }
func (e JudgeAssignedToCourt) OccurredAt() time.Time     { return e.At }

type BiasMetricsCalculated struct {
	JudgeID snowflake.ID `json:"judge_id"`
	Metrics BiasMetrics  `json:"metrics"`
	At      time.Time    `json:"at"`
}

func (e BiasMetricsCalculated) EventType() string         { return EventBiasMetricsCalculated }
func (e BiasMetricsCalculated) AggregateID() snowflake.ID { return e.JudgeID }
func (e BiasMetricsCalculated) OccurredAt() time.Time     { return e.At }

type JudgeRetired struct {
	JudgeID       snowflake.ID `json:"judge_id"`
	CourtID       snowflake.ID `json:"court_id"`
	EffectiveDate time.Time    `json:"effective_date"`
	At            time.Time    `json:"at"`
}

func (e JudgeRetired) EventType() string         { return EventJudgeRetired }
func (e JudgeRetired) AggregateID() snowflake.ID { return e.JudgeID }
func (e JudgeRetired) OccurredAt() time.Time     { return e.At }
