package services

import (
	"context"
	"log"

	"lanari/internal/models"
	"lanari/internal/repositories"
)

// PaymentService drives the mock payment provider.
type PaymentService struct {
	tx        repositories.Transactor
	publisher EventPublisher // optional
}

// NewPaymentService creates a new PaymentService. publisher may be nil.
func NewPaymentService(tx repositories.Transactor, publisher EventPublisher) *PaymentService {
	return &PaymentService{tx: tx, publisher: publisher}
}

// ConfirmMockPayment marks the order's mock payment attempt as succeeded and the
// order as paid. Confirming an already paid order changes nothing.
func (s *PaymentService) ConfirmMockPayment(ctx context.Context, orderID string) (*models.Order, error) {
	var (
		order   *models.Order
		changed bool
	)
	err := s.tx.WithinTransaction(ctx, func(repos *repositories.Repositories) error {
		attempt, err := repos.Payments.GetByOrderID(orderID, models.ProviderMock)
		if err != nil {
			return translateNotFound(err, "payment attempt not found")
		}
		order, err = repos.Orders.GetByID(orderID)
		if err != nil {
			return translateNotFound(err, "order not found")
		}

		if attempt.Status == models.PaymentStatusSucceeded && order.Status == models.OrderStatusPaid {
			return nil
		}

		if err := repos.Payments.UpdateStatus(attempt.ID, models.PaymentStatusSucceeded); err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(order.ID, models.OrderStatusPaid); err != nil {
			return err
		}
		order.Status = models.OrderStatusPaid
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		log.Printf("Mock payment confirmed for order %s", order.ID)
		publishOrderEvent(s.publisher, EventOrderPaid, order)
	}
	return order, nil
}
