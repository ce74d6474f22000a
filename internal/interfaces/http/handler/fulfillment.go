package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	appfulfillment "github.com/warehouse/backend/internal/application/fulfillment"
	"github.com/warehouse/backend/internal/infrastructure/logger"
	"github.com/warehouse/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// FulfillmentHandler handles stock receipt API endpoints
type FulfillmentHandler struct {
	BaseHandler
	service *appfulfillment.Service
}

// NewFulfillmentHandler creates a new FulfillmentHandler
func NewFulfillmentHandler(service *appfulfillment.Service) *FulfillmentHandler {
	return &FulfillmentHandler{service: service}
}

// CreateReceiptRequest is the request body for recording a stock delivery
type CreateReceiptRequest struct {
	ProductID   int        `json:"product_id" binding:"required,gt=0"`
	WarehouseID int        `json:"warehouse_id" binding:"required,gt=0"`
	Amount      int        `json:"amount" binding:"required,gt=0"`
	CreatedAt   *time.Time `json:"created_at" binding:"required"`
}

// RegisterRoutes registers fulfillment routes
func (h *FulfillmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warehouse := rg.Group("/warehouse")
	{
		warehouse.POST("/receipts", h.CreateReceipt)
		warehouse.POST("/receipts/procedure", h.CreateReceiptViaProcedure)
	}
}

// CreateReceipt matches a stock delivery to the oldest pending order and
// records the receipt.
func (h *FulfillmentHandler) CreateReceipt(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	resp, err := h.service.Fulfill(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.GetGinLogger(c).Info("Stock receipt recorded",
		zap.Int("receipt_id", resp.ReceiptID),
		zap.Int("product_id", req.ProductID),
		zap.Int("warehouse_id", req.WarehouseID),
		zap.Int("amount", req.Amount),
	)

	h.Created(c, resp)
}

// CreateReceiptViaProcedure records a stock delivery through the database
// stored routine instead of the application-side transaction.
func (h *FulfillmentHandler) CreateReceiptViaProcedure(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	resp, err := h.service.FulfillViaProcedure(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.GetGinLogger(c).Info("Stock receipt recorded via procedure",
		zap.Int("receipt_id", resp.ReceiptID),
		zap.Int("product_id", req.ProductID),
	)

	h.Created(c, resp)
}

// bindRequest parses and validates the request body. On failure it writes the
// error response and returns ok=false.
func (h *FulfillmentHandler) bindRequest(c *gin.Context) (appfulfillment.FulfillRequest, bool) {
	var body CreateReceiptRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make([]dto.ValidationDetail, 0, len(validationErrs))
			for _, fe := range validationErrs {
				details = append(details, dto.ValidationDetail{
					Field:   fe.Field(),
					Message: validationMessage(fe),
				})
			}
			h.ValidationError(c, details)
			return appfulfillment.FulfillRequest{}, false
		}
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidJSON), dto.ErrCodeInvalidJSON, "Invalid request body")
		return appfulfillment.FulfillRequest{}, false
	}

	return appfulfillment.FulfillRequest{
		ProductID:   body.ProductID,
		WarehouseID: body.WarehouseID,
		Amount:      body.Amount,
		CreatedAt:   *body.CreatedAt,
	}, true
}

// validationMessage converts a validator field error to a readable message
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
