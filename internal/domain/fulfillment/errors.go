package fulfillment

import (
	"github.com/warehouse/backend/internal/domain/shared"
)

// Fulfillment domain errors. Every failure category maps to a client error at
// the HTTP boundary; none of these are retried by the coordinator.
var (
	ErrProductNotFound   = shared.NewDomainError("NOT_FOUND", "Product not found")
	ErrWarehouseNotFound = shared.NewDomainError("NOT_FOUND", "Warehouse not found")
	ErrInvalidAmount     = shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than 0")
	ErrNoMatchingOrder   = shared.NewDomainError("NO_MATCHING_ORDER", "No matching order found")
	ErrAlreadyFulfilled  = shared.NewDomainError("ALREADY_FULFILLED", "Order already fulfilled")
)
