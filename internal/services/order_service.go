package services

import (
	"log"

	"lanari/internal/models"
	"lanari/internal/repositories"
)

// AdminOrderLimit caps the admin order listing.
const AdminOrderLimit = 100

// OrderService handles business logic related to placed orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher // optional
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// GetOrdersForUser lists the user's orders, newest first.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderForUser returns an order the user placed. Admins may read any order;
// anyone else gets not-found for orders that are not theirs.
func (s *OrderService) GetOrderForUser(user *models.User, id string) (*models.Order, error) {
	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin && order.UserID != user.ID {
		return nil, notFound("order not found")
	}
	return order, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err, "order not found")
	}
	return order, nil
}

// GetRecentOrders returns the latest orders for the admin panel.
func (s *OrderService) GetRecentOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll(AdminOrderLimit)
}

// UpdateOrderStatus moves an order to one of the known statuses. There are no
// transition rules beyond the status being known.
func (s *OrderService) UpdateOrderStatus(id, status string) (*models.Order, error) {
	st, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, invalid("invalid status '%s'", status)
	}

	if err := s.orderRepo.UpdateStatus(id, st); err != nil {
		return nil, translateNotFound(err, "order not found")
	}

	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}
	log.Printf("Order %s status set to %s", order.ID, order.Status)
	publishOrderEvent(s.publisher, EventOrderStatusChange, order)
	return order, nil
}
