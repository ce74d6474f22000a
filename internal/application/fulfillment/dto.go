package fulfillment

import (
	"time"
)

// FulfillRequest represents an inbound stock delivery to match against a
// pending order.
type FulfillRequest struct {
	ProductID   int       `json:"product_id"`
	WarehouseID int       `json:"warehouse_id"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// FulfillResponse carries the identifier of the newly recorded stock receipt.
type FulfillResponse struct {
	ReceiptID int `json:"receipt_id"`
}
