package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"foodorder/internal/adapters/out/events"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evs ...order.DomainEvent) error {
	args := m.Called(ctx, evs)
	return args.Error(0)
}

type fakeSource struct {
	evs []order.DomainEvent
}

func (f *fakeSource) DomainEvents() []order.DomainEvent {
	return f.evs
}

func (f *fakeSource) ClearDomainEvents() {
	f.evs = nil
}

func statusChanged(from, to order.Status) order.StatusChanged {
	return order.StatusChanged{
		OrderID:    kernel.NewUUID(),
		UserID:     kernel.NewUUID(),
		From:       from,
		To:         to,
		OccurredAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestEncode(t *testing.T) {
	ev := statusChanged(order.Preparing, order.InDelivery)

	key, body, err := events.Encode(ev)

	require.NoError(t, err)
	assert.Equal(t, ev.OrderID.String(), string(key))

	var msg events.StatusChangedMessage
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "order.status_changed", msg.Event)
	assert.Equal(t, "PREPARING", msg.From)
	assert.Equal(t, "IN_DELIVERY", msg.To)
	assert.Equal(t, ev.UserID.String(), msg.UserID)
}

func TestEncode_CreationOmitsFrom(t *testing.T) {
	_, body, err := events.Encode(statusChanged(order.Unknown, order.Ordered))

	require.NoError(t, err)
	assert.NotContains(t, string(body), `"from"`)
}

func TestDispatchTracked(t *testing.T) {
	ctx := t.Context()
	src := &fakeSource{evs: []order.DomainEvent{statusChanged(order.Ordered, order.Preparing)}}
	empty := &fakeSource{}

	publisher := &MockPublisher{}
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	events.DispatchTracked(ctx, publisher, nil, []any{src, empty, "not an aggregate"})

	publisher.AssertExpectations(t)
	assert.Empty(t, src.DomainEvents())
}

func TestDispatchTracked_NilPublisherClears(t *testing.T) {
	src := &fakeSource{evs: []order.DomainEvent{statusChanged(order.Ordered, order.Canceled)}}

	events.DispatchTracked(t.Context(), nil, nil, []any{src})

	assert.Empty(t, src.DomainEvents())
}
