package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []OrderStatus{
		StatusPaymentPending, StatusPending, StatusConfirmed,
		StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled,
	} {
		assert.True(t, status.Valid(), "expected %s to be valid", status)
	}

	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPaymentPending, StatusPending, true},
		{StatusPaymentPending, StatusConfirmed, true},
		{StatusPaymentPending, StatusCancelled, true},
		{StatusPaymentPending, StatusDelivered, false},
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPreparing, false},
		{StatusConfirmed, StatusPreparing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusConfirmed, StatusPending, false},
		{StatusPreparing, StatusOutForDelivery, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusPreparing, StatusConfirmed, false},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusOutForDelivery, StatusCancelled, true},
		{StatusDelivered, StatusPreparing, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		order := &Order{Status: tt.from}
		got := order.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestCancelledReachableFromEveryNonTerminalState(t *testing.T) {
	for _, status := range []OrderStatus{
		StatusPaymentPending, StatusPending, StatusConfirmed,
		StatusPreparing, StatusOutForDelivery,
	} {
		order := &Order{Status: status}
		assert.True(t, order.CanTransitionTo(StatusCancelled), "cancel from %s", status)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPaymentPending.Terminal())
	assert.False(t, StatusOutForDelivery.Terminal())
}

func TestSetStatusStampsFirstEntry(t *testing.T) {
	now := time.Date(2026, 1, 15, 23, 30, 0, 0, time.UTC)
	order := &Order{Status: StatusPending}

	order.SetStatus(StatusConfirmed, now)
	assert.Equal(t, StatusConfirmed, order.Status)
	assert.Equal(t, now, *order.ConfirmedAt)
	assert.Nil(t, order.PreparingAt)
	assert.Nil(t, order.DeliveredAt)
	assert.Nil(t, order.CancelledAt)

	later := now.Add(10 * time.Minute)
	order.SetStatus(StatusPreparing, later)
	assert.Equal(t, later, *order.PreparingAt)
	assert.Equal(t, now, *order.ConfirmedAt)
}

func TestSetStatusTimestampsAreFirstWriteWins(t *testing.T) {
	first := time.Date(2026, 1, 15, 23, 30, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	order := &Order{Status: StatusPending}
	order.SetStatus(StatusConfirmed, first)
	order.SetStatus(StatusConfirmed, second)

	assert.Equal(t, first, *order.ConfirmedAt)
}
