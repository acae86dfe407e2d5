package fanout

import (
	"errors"

	"justfood/pkg/models"
)

// Wire event names, shared by the websocket hub and the AMQP sink.
const (
	EventOrderUpdate = "order-update"
	EventNewOrder    = "new-order"
)

type Event struct {
	Type  string        `json:"type"`
	Order *models.Order `json:"order"`
}

// Sink is one best-effort destination for order snapshots.
type Sink interface {
	PublishNewOrder(order *models.Order) error
	PublishStatusChange(order *models.Order) error
}

// Multi fans a publish out to several sinks. Every sink is attempted even
// when an earlier one fails.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) PublishNewOrder(order *models.Order) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.PublishNewOrder(order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) PublishStatusChange(order *models.Order) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.PublishStatusChange(order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
