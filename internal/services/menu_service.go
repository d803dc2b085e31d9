package services

import (
	"errors"
	"fmt"

	"tableside/internal/models"
	"tableside/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuService interface {
	Create(item *models.MenuItem) error
	Get(id uint) (*models.MenuItem, error)
	GetAll() ([]models.MenuItem, error)
	Update(id uint, item *models.MenuItem) (*models.MenuItem, error)
	Delete(id uint) error
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func validateMenuItem(item *models.MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if item.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if item.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return fmt.Errorf("%w: price %q is not a valid decimal", ErrValidation, item.Price)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}

func (s *menuService) Create(item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.menuRepo.Create(item)
}

func (s *menuService) Get(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuService) GetAll() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

// Update replaces all editable fields of the item. An empty ImageURL keeps
// the stored one, so updates without a new upload retain the prior image.
func (s *menuService) Update(id uint, item *models.MenuItem) (*models.MenuItem, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}

	existing.Name = item.Name
	existing.Price = item.Price
	existing.Category = item.Category
	existing.Description = item.Description
	if item.ImageURL != "" {
		existing.ImageURL = item.ImageURL
	}

	if err := s.menuRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *menuService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.menuRepo.Delete(id)
}
