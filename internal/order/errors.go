package order

import (
	"errors"
	"fmt"
)

var ErrOrderNotFound = errors.New("order not found")

// InvalidTransitionError reports a rejected status change. It carries both
// sides of the rejection so operator tooling can show which moves are legal
// without a separate query.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

// ValidationError marks client-caused input problems. Callers must not
// retry these.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
