package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	expected := map[Status][]Status{
		StatusPending:          {StatusAccepted, StatusCancelled},
		StatusAccepted:         {StatusPreparing, StatusCancelled},
		StatusPreparing:        {StatusReadyForDispatch, StatusCancelled},
		StatusReadyForDispatch: {StatusOutForDelivery},
		StatusOutForDelivery:   {StatusDelivered},
		StatusDelivered:        {},
		StatusCancelled:        {},
	}

	for from, allowed := range expected {
		assert.ElementsMatch(t, allowed, from.AllowedNext(), "outgoing set for %s", from)

		allowedSet := make(map[Status]bool)
		for _, to := range allowed {
			allowedSet[to] = true
		}
		for to := range expected {
			assert.Equal(t, allowedSet[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		assert.True(t, s.Terminal(), "%s must be terminal", s)
		for target := range transitions {
			assert.False(t, s.CanTransitionTo(target), "%s -> %s must be illegal", s, target)
		}
	}

	for _, s := range []Status{StatusPending, StatusAccepted, StatusPreparing, StatusReadyForDispatch, StatusOutForDelivery} {
		assert.False(t, s.Terminal(), "%s must not be terminal", s)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("READY_FOR_DISPATCH")
	require.NoError(t, err)
	assert.Equal(t, StatusReadyForDispatch, st)

	_, err = ParseStatus("COOKING")
	require.Error(t, err)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = ParseStatus("")
	assert.Error(t, err)
}
