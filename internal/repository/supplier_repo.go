package repository

import (
	"context"

	"supplyease/internal/model"

	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id uint) (*model.Supplier, error)
	FindBySupplierID(ctx context.Context, supplierID string) (*model.Supplier, error)
	List(ctx context.Context, s Search) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	Delete(ctx context.Context, id uint) error
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *supplierRepo) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	var s model.Supplier
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *supplierRepo) FindBySupplierID(ctx context.Context, supplierID string) (*model.Supplier, error) {
	var s model.Supplier
	if err := r.db.WithContext(ctx).Where("supplier_id = ?", supplierID).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *supplierRepo) List(ctx context.Context, s Search) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).
		Scopes(s.Scope([]string{"supplier_id", "name", "contact_person", "email"}, "status")).
		Order("name ASC").
		Find(&suppliers).Error
	return suppliers, translate(err)
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *supplierRepo) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Supplier{}, id))
}
