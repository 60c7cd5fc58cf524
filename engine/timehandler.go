package engine

import "time"

// TimeHandler tracks the wall-clock budget for one SelectMove call. The
// check is cooperative polling against a deadline, not cancellation:
// in-flight frames finish, the deepening loop stops starting new depths.
type TimeHandler struct {
	deadline  time.Time
	unlimited bool
}

// Start arms the handler. A non-positive budget means search until the depth
// cap is reached.
func (th *TimeHandler) Start(budget time.Duration) {
	th.unlimited = budget <= 0
	if !th.unlimited {
		th.deadline = time.Now().Add(budget)
	}
}

// Exceeded reports whether the budget has run out.
func (th *TimeHandler) Exceeded() bool {
	return !th.unlimited && !time.Now().Before(th.deadline)
}

// Remaining returns the time left, or a large value when unlimited.
func (th *TimeHandler) Remaining() time.Duration {
	if th.unlimited {
		return time.Hour
	}
	return time.Until(th.deadline)
}
