package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mobile-barber/internal/domain/customer"
	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) CreateCustomer(
	ctx context.Context,
	c *models.Customer,
) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *CustomerGormRepository) GetCustomerByID(
	ctx context.Context,
	id string,
) (*models.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *CustomerGormRepository) GetCustomerByEmail(
	ctx context.Context,
	email string,
) (*models.Customer, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *CustomerGormRepository) first(ctx context.Context, query string, arg any) (*models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).Where(query, arg).First(&c).Error
	if isNotFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerGormRepository) UpdateProfile(
	ctx context.Context,
	id string,
	name string,
	telegram string,
) (*models.Customer, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "telegram": telegram})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetCustomerByID(ctx, id)
}

func (r *CustomerGormRepository) SetRole(
	ctx context.Context,
	id string,
	role string,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerGormRepository) ListCustomers(
	ctx context.Context,
) ([]models.Customer, error) {

	var list []models.Customer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CustomerGormRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&n).Error
	return n, err
}

// Compile-time check
var _ domain.Repository = (*CustomerGormRepository)(nil)
