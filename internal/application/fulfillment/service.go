package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/fulfillment"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Service coordinates the fulfillment transaction: existence checks, order
// matching, fulfillment check-and-set, and stock receipt insertion as a single
// atomic unit. Concurrency control is delegated entirely to the store; the
// service holds no in-process shared mutable state, so requests for different
// orders proceed fully in parallel.
type Service struct {
	scope        TransactionScope
	procedures   fulfillment.ProcedureRepository
	useProcedure bool
	now          func() time.Time
}

// ServiceOption is a functional option for Service configuration
type ServiceOption func(*Service)

// WithProcedureRepository wires the stored-procedure data access path.
func WithProcedureRepository(repo fulfillment.ProcedureRepository) ServiceOption {
	return func(s *Service) {
		s.procedures = repo
	}
}

// WithStoredProcedure routes Fulfill through the stored-procedure path instead
// of the coordinator's step-by-step transaction.
func WithStoredProcedure(enabled bool) ServiceOption {
	return func(s *Service) {
		s.useProcedure = enabled
	}
}

// WithClock overrides the time source (tests only).
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new fulfillment Service
func NewService(scope TransactionScope, opts ...ServiceOption) *Service {
	s := &Service{
		scope: scope,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fulfill matches the incoming stock delivery against the oldest eligible
// unfulfilled order and records the receipt. The whole sequence runs inside
// one transaction: any failure at any step rolls everything back, so no
// fulfillment mark without a receipt (or vice versa) is ever observable.
//
// When the service is configured for the stored-procedure path, the request is
// routed to FulfillViaProcedure instead; the contract is identical.
func (s *Service) Fulfill(ctx context.Context, req FulfillRequest) (*FulfillResponse, error) {
	domainReq := fulfillment.Request{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Amount:      req.Amount,
		CreatedAt:   req.CreatedAt,
	}
	if err := domainReq.Validate(); err != nil {
		return nil, err
	}

	if s.useProcedure {
		return s.FulfillViaProcedure(ctx, req)
	}

	var receiptID int
	err := s.scope.Execute(ctx, func(repo fulfillment.Repository) error {
		id, err := s.fulfillInTx(ctx, repo, domainReq)
		if err != nil {
			return err
		}
		receiptID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &FulfillResponse{ReceiptID: receiptID}, nil
}

// fulfillInTx runs the check-match-update-insert sequence against a
// transaction-scoped repository.
func (s *Service) fulfillInTx(ctx context.Context, repo fulfillment.Repository, req fulfillment.Request) (int, error) {
	exists, err := repo.ProductExists(ctx, req.ProductID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fulfillment.ErrProductNotFound
	}

	exists, err = repo.WarehouseExists(ctx, req.WarehouseID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fulfillment.ErrWarehouseNotFound
	}

	// Redundant with Request.Validate, but the invariant must also hold
	// inside the transaction boundary.
	if req.Amount <= 0 {
		return 0, fulfillment.ErrInvalidAmount
	}

	order, err := repo.FindUnfulfilledMatchingOrder(ctx, req.ProductID, req.Amount, req.CreatedAt)
	if err != nil {
		return 0, err
	}
	if order == nil {
		return 0, fulfillment.ErrNoMatchingOrder
	}

	// Re-check under the transaction's isolation: a concurrent request may
	// have committed a receipt for this order after our match snapshot.
	fulfilled, err := repo.IsOrderFulfilled(ctx, order.ID)
	if err != nil {
		return 0, err
	}
	if fulfilled {
		return 0, fulfillment.ErrAlreadyFulfilled
	}

	if err := repo.MarkOrderFulfilled(ctx, order.ID, s.now()); err != nil {
		return 0, err
	}

	price, err := repo.GetProductPrice(ctx, req.ProductID)
	if err != nil {
		return 0, err
	}

	totalPrice := price.Mul(decimal.NewFromInt(int64(req.Amount)))
	return repo.InsertReceipt(ctx, req.WarehouseID, req.ProductID, order.ID, req.Amount, totalPrice)
}

// FulfillViaProcedure routes the request to the stored-procedure collaborator,
// which performs the equivalent transaction server-side. Store failures that
// are not already typed domain errors surface as DATABASE_ERROR.
func (s *Service) FulfillViaProcedure(ctx context.Context, req FulfillRequest) (*FulfillResponse, error) {
	domainReq := fulfillment.Request{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Amount:      req.Amount,
		CreatedAt:   req.CreatedAt,
	}
	if err := domainReq.Validate(); err != nil {
		return nil, err
	}

	if s.procedures == nil {
		return nil, shared.NewDomainError("DATABASE_ERROR", "Stored procedure path is not configured")
	}

	receiptID, err := s.procedures.Fulfill(ctx, domainReq)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, shared.NewDomainError("DATABASE_ERROR", fmt.Sprintf("Database error: %v", err))
	}

	return &FulfillResponse{ReceiptID: receiptID}, nil
}
