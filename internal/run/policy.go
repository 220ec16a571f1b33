package run

import "fmt"

// ErrorPolicy decides what a failed mapping line does to the rest of the run.
type ErrorPolicy int

const (
	// PolicySkip logs the failure and continues with the next line.
	PolicySkip ErrorPolicy = iota
	// PolicyFailFast stops the run at the first failure.
	PolicyFailFast
)

// PolicyFor maps the skip_errors switch to a policy.
func PolicyFor(skipErrors bool) ErrorPolicy {
	if skipErrors {
		return PolicySkip
	}

	return PolicyFailFast
}

func (p ErrorPolicy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyFailFast:
		return "fail-fast"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}
