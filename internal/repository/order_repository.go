package repository

import (
	"tableside/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetAll() ([]models.Order, error)
	GetByTableAndCustomer(tableNumber int, customerName string) ([]models.Order, error)
	UpdateStatus(id uint, status models.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAll returns orders newest first.
func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("id DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByTableAndCustomer(tableNumber int, customerName string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("table_number = ? AND customer_name = ?", tableNumber, customerName).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}
