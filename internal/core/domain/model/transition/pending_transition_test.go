package transition_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/transition"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromString("10")
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), 1, price)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Line{line}, now)
	require.NoError(t, err)
	return o
}

func TestScheduleNext(t *testing.T) {
	o := placedOrder(t)

	pt, err := transition.ScheduleNext(kernel.NewUUID(), o, now)

	require.NoError(t, err)
	require.NoError(t, pt.Validate())
	assert.True(t, pt.OrderID().IsEqual(o.ID()))
	assert.Equal(t, order.Ordered, pt.FromStatus())
	assert.Equal(t, order.Preparing, pt.Target())
	assert.Equal(t, now.Add(10*time.Second), pt.DueAt())
	assert.Equal(t, now, pt.CreatedAt())
	assert.False(t, pt.IsProcessed())

	t.Run("successor delays", func(t *testing.T) {
		require.NoError(t, o.Advance(order.Ordered, order.Preparing, now))
		pt, err := transition.ScheduleNext(kernel.NewUUID(), o, now)
		require.NoError(t, err)
		assert.Equal(t, order.InDelivery, pt.Target())
		assert.Equal(t, now.Add(15*time.Second), pt.DueAt())

		require.NoError(t, o.Advance(order.Preparing, order.InDelivery, now))
		pt, err = transition.ScheduleNext(kernel.NewUUID(), o, now)
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, pt.Target())
		assert.Equal(t, now.Add(20*time.Second), pt.DueAt())
	})

	t.Run("terminal order has no successor", func(t *testing.T) {
		require.NoError(t, o.Advance(order.InDelivery, order.Delivered, now))
		_, err := transition.ScheduleNext(kernel.NewUUID(), o, now)
		require.ErrorIs(t, err, transition.ErrNoNextStatus)
	})
}

func TestNewPendingTransition_RejectsNonTimedPairs(t *testing.T) {
	_, err := transition.NewPendingTransition(kernel.NewUUID(), kernel.NewUUID(), order.Ordered, order.Canceled, now, now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = transition.NewPendingTransition(kernel.UUID{}, kernel.NewUUID(), order.Ordered, order.Preparing, now, now)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestPendingTransition_IsDueAndMarkProcessed(t *testing.T) {
	pt, err := transition.NewPendingTransition(kernel.NewUUID(), kernel.NewUUID(), order.Ordered, order.Preparing, now, now.Add(-time.Second))
	require.NoError(t, err)

	assert.False(t, pt.IsDue(now.Add(-time.Millisecond)))
	assert.True(t, pt.IsDue(now))

	pt.MarkProcessed()
	pt.MarkProcessed()

	assert.True(t, pt.IsProcessed())
	assert.False(t, pt.IsDue(now.Add(time.Hour)))
}

func TestRestorePendingTransition(t *testing.T) {
	pt, err := transition.RestorePendingTransition(
		kernel.NewUUID(), kernel.NewUUID(), order.Preparing, order.InDelivery, now, true, now,
	)
	require.NoError(t, err)
	assert.True(t, pt.IsProcessed())

	var zero *transition.PendingTransition
	assert.Equal(t, transition.ErrPendingTransitionIsNotConstructed, zero.Validate())
}
