package syncer

import "time"

// State is the scheduler's coarse state.
type State int

const (
	Idle State = iota
	Queued
	Pushing
	Pulling
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Pushing:
		return "pushing"
	case Pulling:
		return "pulling"
	default:
		return "idle"
	}
}

// Op is a network sync operation.
type Op int

const (
	OpNone Op = iota
	OpPush
	OpPull
)

func (o Op) String() string {
	switch o {
	case OpPush:
		return "push"
	case OpPull:
		return "pull"
	default:
		return "none"
	}
}

// Status is a point-in-time view of the agent.
type Status struct {
	State State
	// Err is the revealed error of the last failed sync, if any.
	Err      string
	LastPush time.Time
	LastPull time.Time
	// Failures counts consecutive failures not yet revealed.
	Failures int
	SignedIn bool
}

// Result describes one finished network operation.
type Result struct {
	Op       Op
	Err      error
	Duration time.Duration
}
