package handlers

// Hooks for the external test package.
var (
	GenerateOrderID   = generateOrderID
	HaversineDistance = haversineDistance
)
