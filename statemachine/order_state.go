package statemachine

import (
	"errors"

	"desidine-api/models"
)

// Actors who may drive order transitions
const (
	ActorUser   = "user"
	ActorAdmin  = "admin"
	ActorSystem = "system"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition.
// Cancellation is reachable from every pre-delivery state; the forward
// path is driven by admins, except the payment-confirmation hop which
// the payment flow performs as "system".
var validTransitions = []Transition{
	{From: models.StatusPlaced, To: models.StatusConfirmed, Actor: ActorAdmin},
	{From: models.StatusPlaced, To: models.StatusConfirmed, Actor: ActorSystem},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorAdmin},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery, Actor: ActorAdmin},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: ActorAdmin},

	{From: models.StatusPlaced, To: models.StatusCancelled, Actor: ActorUser},
	{From: models.StatusPlaced, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorUser},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: ActorUser},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusOutForDelivery, To: models.StatusCancelled, Actor: ActorUser},
	{From: models.StatusOutForDelivery, To: models.StatusCancelled, Actor: ActorAdmin},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move an order between states
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// CanTransitionPayment checks the order-level payment status flow.
// pending is the only non-terminal state.
func CanTransitionPayment(from, to models.OrderPaymentStatus) error {
	if from == models.PaymentPending && (to == models.PaymentPaid || to == models.PaymentFailed) {
		return nil
	}
	if from == to {
		return nil
	}
	return errors.New("invalid payment transition: " + string(from) + " -> " + string(to))
}
