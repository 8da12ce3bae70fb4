package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desidine-api/models"
)

func TestForwardPath(t *testing.T) {
	steps := []struct {
		from, to models.OrderStatus
		actor    string
	}{
		{models.StatusPlaced, models.StatusConfirmed, ActorSystem},
		{models.StatusConfirmed, models.StatusPreparing, ActorAdmin},
		{models.StatusPreparing, models.StatusOutForDelivery, ActorAdmin},
		{models.StatusOutForDelivery, models.StatusDelivered, ActorAdmin},
	}
	for _, s := range steps {
		assert.NoError(t, CanTransition(s.from, s.to, s.actor),
			"%s -> %s by %s should be legal", s.from, s.to, s.actor)
	}
}

func TestIllegalJumps(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusPlaced, models.StatusDelivered, ActorAdmin))
	assert.Error(t, CanTransition(models.StatusPlaced, models.StatusPreparing, ActorAdmin))
	assert.Error(t, CanTransition(models.StatusDelivered, models.StatusPlaced, ActorAdmin))
	// users cannot drive the forward path
	assert.Error(t, CanTransition(models.StatusPlaced, models.StatusConfirmed, ActorUser))
}

func TestCancellationReachableFromPreDeliveryStates(t *testing.T) {
	for _, from := range []models.OrderStatus{
		models.StatusPlaced,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOutForDelivery,
	} {
		assert.NoError(t, CanTransition(from, models.StatusCancelled, ActorUser))
		assert.NoError(t, CanTransition(from, models.StatusCancelled, ActorAdmin))
	}
}

func TestTerminalStates(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusDelivered, models.StatusCancelled, ActorAdmin))
	assert.Error(t, CanTransition(models.StatusCancelled, models.StatusPlaced, ActorAdmin))
	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestValidTransitionsFromPlaced(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPlaced)
	require.Len(t, nexts, 2)
	assert.Contains(t, nexts, models.StatusConfirmed)
	assert.Contains(t, nexts, models.StatusCancelled)
}

func TestPaymentTransitions(t *testing.T) {
	assert.NoError(t, CanTransitionPayment(models.PaymentPending, models.PaymentPaid))
	assert.NoError(t, CanTransitionPayment(models.PaymentPending, models.PaymentFailed))
	assert.NoError(t, CanTransitionPayment(models.PaymentPaid, models.PaymentPaid))
	assert.Error(t, CanTransitionPayment(models.PaymentPaid, models.PaymentFailed))
	assert.Error(t, CanTransitionPayment(models.PaymentFailed, models.PaymentPaid))
}
