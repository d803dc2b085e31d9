package services

import (
	"errors"
	"fmt"

	"tableside/internal/lifecycle"
	"tableside/internal/models"
	"tableside/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(order *models.Order) error
	Get(id uint) (*models.Order, error)
	GetAll() ([]models.Order, error)
	GetForCustomer(tableNumber int, customerName string) ([]models.Order, error)
	UpdateStatus(id uint, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// Create validates a submitted order and stores it with status pending.
// The total must equal the sum of line totals; it is checked with exact
// decimal arithmetic, never recomputed from live menu prices.
func (s *orderService) Create(order *models.Order) error {
	if order.TableNumber <= 0 {
		return fmt.Errorf("%w: table number must be positive", ErrValidation)
	}
	if order.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	total, err := decimal.NewFromString(order.Total)
	if err != nil {
		return fmt.Errorf("%w: total %q is not a valid decimal", ErrValidation, order.Total)
	}

	sum := decimal.Zero
	for i, line := range order.Items {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrValidation, i)
		}
		unit, err := decimal.NewFromString(line.UnitPrice)
		if err != nil {
			return fmt.Errorf("%w: item %d unit price %q is not a valid decimal", ErrValidation, i, line.UnitPrice)
		}
		sum = sum.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if !sum.Equal(total) {
		return fmt.Errorf("%w: total %s does not match item sum %s", ErrValidation, total, sum)
	}

	order.Status = models.StatusPending
	return s.orderRepo.Create(order)
}

func (s *orderService) Get(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetAll() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) GetForCustomer(tableNumber int, customerName string) ([]models.Order, error) {
	return s.orderRepo.GetByTableAndCustomer(tableNumber, customerName)
}

// UpdateStatus advances an order one lifecycle step. Unknown labels and
// non-adjacent moves are validation errors; the order stays untouched.
func (s *orderService) UpdateStatus(id uint, status models.OrderStatus) (*models.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CanTransition(order.Status, status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.orderRepo.UpdateStatus(order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
