package commands_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustDish(t *testing.T, name, price string) *dish.Dish {
	t.Helper()
	d, err := dish.NewDish(kernel.NewUUID(), name, "", mustMoney(t, price), true)
	require.NoError(t, err)
	return d
}

func customer(t *testing.T) user.Actor {
	t.Helper()
	a, err := user.NewActor(kernel.NewUUID(),
		user.CanPlaceOrder, user.CanScheduleOrder, user.CanCancelOrder, user.CanTrackOrder)
	require.NoError(t, err)
	return a
}

func admin(t *testing.T) user.Actor {
	t.Helper()
	a, err := user.NewActor(kernel.NewUUID(),
		user.CanCreateUsers, user.CanReadUsers, user.CanUpdateUsers, user.CanDeleteUsers,
		user.CanPlaceOrder, user.CanCancelOrder, user.CanSearchOrder, user.CanScheduleOrder,
	)
	require.NoError(t, err)
	return a
}

func placedOrder(t *testing.T, owner kernel.UUID) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), 1, mustMoney(t, "10.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), owner, []order.Line{line}, start)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func scheduledOrder(t *testing.T, owner kernel.UUID, at time.Time) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), 1, mustMoney(t, "10.00"))
	require.NoError(t, err)
	o, err := order.NewScheduledOrder(kernel.NewUUID(), owner, []order.Line{line}, at, start)
	require.NoError(t, err)
	return o
}
