package domain

import "time"

// LifecyclePolicy holds the three durations that drive session rotation.
type LifecyclePolicy struct {
	// Duration is the token lifetime at issuance.
	Duration time.Duration

	// RefreshThreshold is the remaining-time cutoff at or below which the
	// token should be rotated.
	RefreshThreshold time.Duration

	// MaxLifetime is the hard ceiling on how long a single login stays
	// valid, regardless of rotation.
	MaxLifetime time.Duration
}

// DecisionKind tags a lifecycle decision.
type DecisionKind int

const (
	DecisionContinue DecisionKind = iota
	DecisionRotate
	DecisionTerminate
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionContinue:
		return "continue"
	case DecisionRotate:
		return "rotate"
	case DecisionTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// TerminateReason says why a session must end.
type TerminateReason int

const (
	TerminateNone TerminateReason = iota
	TerminateExpired
	TerminateAbsoluteLimit
	TerminateLogout
)

func (r TerminateReason) String() string {
	switch r {
	case TerminateExpired:
		return "expired"
	case TerminateAbsoluteLimit:
		return "absolute_limit_exceeded"
	case TerminateLogout:
		return "logout"
	default:
		return "none"
	}
}

// Decision is the outcome of evaluating a session against the policy,
// together with the metric that justified it.
type Decision struct {
	Kind DecisionKind

	// TimeLeft is set for Continue and Rotate.
	TimeLeft time.Duration

	// Reason, Age and Max are set for Terminate.
	Reason TerminateReason
	Age    time.Duration
	Max    time.Duration
}

// Evaluate is the session lifecycle policy: a total, deterministic function
// of the session and the clock. Checks run in strict order, first match
// wins:
//
//  1. absolute lifetime exceeded -> Terminate (dominates local expiry: it
//     is the more specific diagnostic when both hold)
//  2. token expired -> Terminate
//  3. remaining time at or below the refresh threshold -> Rotate
//  4. otherwise -> Continue
func (p LifecyclePolicy) Evaluate(s Session, now time.Time) Decision {
	age := s.Age(now)
	if age >= p.MaxLifetime {
		return Decision{
			Kind:   DecisionTerminate,
			Reason: TerminateAbsoluteLimit,
			Age:    age,
			Max:    p.MaxLifetime,
		}
	}

	if !now.Before(s.ExpiresAt) {
		return Decision{
			Kind:   DecisionTerminate,
			Reason: TerminateExpired,
			Age:    age,
			Max:    p.MaxLifetime,
		}
	}

	timeLeft := s.TimeLeft(now)
	if timeLeft <= p.RefreshThreshold {
		return Decision{Kind: DecisionRotate, TimeLeft: timeLeft}
	}

	return Decision{Kind: DecisionContinue, TimeLeft: timeLeft}
}
