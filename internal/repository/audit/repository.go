package audit

import "orderscan/internal/domain"

// Recorder is the surface the services write audit events to. Recording is
// fire-and-forget; callers never depend on a result.
type Recorder interface {
	Record(message string, status domain.LogStatus, details string)
}

// Follower receives every recorded entry exactly once, in recording order,
// after it has been appended to the canonical log. Implementations must not
// block.
type Follower interface {
	Append(e domain.LogEntry)
}
