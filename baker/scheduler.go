package baker

import "math"

// The TickScheduler interface is implemented by all tick budgeting
// algorithms. An external frame loop owns a bounded tick budget per display
// frame; the scheduler splits that budget across the active factors so that
// any number of concurrent bakes share it without stalling the display.
type TickScheduler interface {
	// Split the frame's tick budget across the factors. Returns the tick
	// assignment for each factor in the input list; assignments sum to at
	// least the budget (feedback-based splits may slightly overshoot it).
	Schedule(factors []*Factor, budget uint32) []uint32
}

// The naive scheduler splits the budget evenly, handing any remainder to
// the first factor.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() TickScheduler {
	return &naiveScheduler{}
}

func (sch *naiveScheduler) Schedule(factors []*Factor, budget uint32) []uint32 {
	out := make([]uint32, len(factors))
	if len(factors) == 0 {
		return out
	}

	share := budget / uint32(len(factors))
	for idx := range factors {
		out[idx] = share
	}
	out[0] += budget - share*uint32(len(factors))

	return out
}

// The feedback scheduler assumes that the cost of baking one texel stays
// approximately the same between two subsequent frames. It splits the
// budget proportionally to each factor's measured tick rate so that slow
// factors (dense probe scenes) do not starve fast ones.
type feedbackScheduler struct {
	tickAssignment []uint32
}

// Create a new feedback scheduler instance.
func FeedbackScheduler() TickScheduler {
	return &feedbackScheduler{}
}

func (sch *feedbackScheduler) Schedule(factors []*Factor, budget uint32) []uint32 {
	// First call, or the factor set changed: fall back to an even split
	// until every factor has timing data
	if len(sch.tickAssignment) != len(factors) || !haveTimings(factors) {
		sch.tickAssignment = NaiveScheduler().Schedule(factors, budget)
		return sch.tickAssignment
	}

	var total float64
	for _, f := range factors {
		total += 1.0 / float64(f.Stats().LastTickTime)
	}

	scaler := float64(budget) / total
	var scheduled uint32
	for idx, f := range factors {
		sch.tickAssignment[idx] = uint32(math.Max(1.0, math.Floor(scaler/float64(f.Stats().LastTickTime))))
		scheduled += sch.tickAssignment[idx]
	}

	// In case assignments don't add up to the budget hand the missing ticks
	// to the first factor
	if scheduled < budget {
		sch.tickAssignment[0] += budget - scheduled
	}

	return sch.tickAssignment
}

func haveTimings(factors []*Factor) bool {
	for _, f := range factors {
		if f.Stats().LastTickTime == 0 {
			return false
		}
	}
	return true
}
