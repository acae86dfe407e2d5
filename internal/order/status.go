package order

// Status is an order's fulfillment state. It is independent of payment
// status: a cash order can reach DELIVERED while payment is still pending.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusAccepted         Status = "ACCEPTED"
	StatusPreparing        Status = "PREPARING"
	StatusReadyForDispatch Status = "READY_FOR_DISPATCH"
	StatusOutForDelivery   Status = "OUT_FOR_DELIVERY"
	StatusDelivered        Status = "DELIVERED"
	StatusCancelled        Status = "CANCELLED"
)

// transitions is the full legal-transition graph. Every status has an entry,
// terminal ones map to an empty set; a status missing from this map is
// unknown, never "anything allowed". Cancellation is only reachable before
// dispatch: once food has left the kitchen the physical good is committed.
var transitions = map[Status][]Status{
	StatusPending:          {StatusAccepted, StatusCancelled},
	StatusAccepted:         {StatusPreparing, StatusCancelled},
	StatusPreparing:        {StatusReadyForDispatch, StatusCancelled},
	StatusReadyForDispatch: {StatusOutForDelivery},
	StatusOutForDelivery:   {StatusDelivered},
	StatusDelivered:        {},
	StatusCancelled:        {},
}

// ParseStatus validates a caller-supplied status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", &ValidationError{Msg: "unknown status: " + s}
	}
	return st, nil
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// AllowedNext returns a copy of the legal outgoing set for s.
func (s Status) AllowedNext() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}
