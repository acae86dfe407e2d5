package fanout

import (
	"errors"
	"sync"
	"testing"

	"justfood/pkg/logger"
	"justfood/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	events []Event
	failed bool
	closed bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failed {
		return errors.New("write failed")
	}
	c.events = append(c.events, v.(Event))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func testOrder(number string) *models.Order {
	return &models.Order{OrderNumber: number, Status: "ACCEPTED"}
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub(logger.New("test"))

	tracked := &fakeConn{}
	other := &fakeConn{}
	admin := &fakeConn{}

	hub.Join("JF123ABC", tracked)
	hub.Join("JF999ZZZ", other)
	hub.JoinAdmin(admin)

	require.NoError(t, hub.PublishStatusChange(testOrder("JF123ABC")))

	events := tracked.received()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderUpdate, events[0].Type)
	assert.Equal(t, "JF123ABC", events[0].Order.OrderNumber)

	assert.Empty(t, other.received(), "other rooms must not receive the event")

	adminEvents := admin.received()
	require.Len(t, adminEvents, 1)
	assert.Equal(t, "JF123ABC", adminEvents[0].Order.OrderNumber)
}

func TestHubNewOrderGoesToAdminOnly(t *testing.T) {
	hub := NewHub(logger.New("test"))

	customer := &fakeConn{}
	admin := &fakeConn{}

	hub.Join("JF123ABC", customer)
	hub.JoinAdmin(admin)

	require.NoError(t, hub.PublishNewOrder(testOrder("JF123ABC")))

	assert.Empty(t, customer.received())
	events := admin.received()
	require.Len(t, events, 1)
	assert.Equal(t, EventNewOrder, events[0].Type)
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub := NewHub(logger.New("test"))

	c := &fakeConn{}
	hub.Join("JF123ABC", c)
	require.NoError(t, hub.PublishStatusChange(testOrder("JF123ABC")))
	require.Len(t, c.received(), 1)

	hub.Leave("JF123ABC", c)
	require.NoError(t, hub.PublishStatusChange(testOrder("JF123ABC")))
	assert.Len(t, c.received(), 1, "no delivery after leave")
}

func TestHubRemoveDropsAllRooms(t *testing.T) {
	hub := NewHub(logger.New("test"))

	c := &fakeConn{}
	hub.Join("JF123ABC", c)
	hub.Join("JF999ZZZ", c)
	hub.JoinAdmin(c)

	hub.Remove(c)

	require.NoError(t, hub.PublishStatusChange(testOrder("JF123ABC")))
	require.NoError(t, hub.PublishStatusChange(testOrder("JF999ZZZ")))
	require.NoError(t, hub.PublishNewOrder(testOrder("JF123ABC")))
	assert.Empty(t, c.received())
}

func TestHubDropsFailingSubscriber(t *testing.T) {
	hub := NewHub(logger.New("test"))

	broken := &fakeConn{failed: true}
	healthy := &fakeConn{}

	hub.Join("JF123ABC", broken)
	hub.Join("JF123ABC", healthy)

	require.NoError(t, hub.PublishStatusChange(testOrder("JF123ABC")))
	assert.Len(t, healthy.received(), 1, "a broken subscriber must not block the room")
	assert.True(t, broken.closed)

	// The broken connection was evicted; a later recovery does not resubscribe it.
	broken.mu.Lock()
	broken.failed = false
	broken.mu.Unlock()

	require.NoError(t, hub.PublishStatusChange(testOrder("JF123ABC")))
	assert.Empty(t, broken.received())
	assert.Len(t, healthy.received(), 2)
}

func TestHubSingleDeliveryForAdminSubscribedToRoom(t *testing.T) {
	hub := NewHub(logger.New("test"))

	c := &fakeConn{}
	hub.Join("JF123ABC", c)
	hub.JoinAdmin(c)

	require.NoError(t, hub.PublishStatusChange(testOrder("JF123ABC")))
	assert.Len(t, c.received(), 1, "a connection in both rooms gets the event once")
}
