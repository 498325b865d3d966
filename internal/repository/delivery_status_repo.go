package repository

import (
	"context"
	"time"

	"supplyease/internal/model"

	"gorm.io/gorm"
)

type DeliveryStatusRepository interface {
	Create(ctx context.Context, tx *gorm.DB, d *model.DeliveryStatus) error
	FindByID(ctx context.Context, id uint) (*model.DeliveryStatus, error)
	List(ctx context.Context, s Search) ([]model.DeliveryStatus, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type deliveryStatusRepo struct{ db *gorm.DB }

func NewDeliveryStatusRepository(db *gorm.DB) DeliveryStatusRepository {
	return &deliveryStatusRepo{db: db}
}

func (r *deliveryStatusRepo) Create(ctx context.Context, tx *gorm.DB, d *model.DeliveryStatus) error {
	return translate(conn(ctx, r.db, tx).Create(d).Error)
}

func (r *deliveryStatusRepo) FindByID(ctx context.Context, id uint) (*model.DeliveryStatus, error) {
	var d model.DeliveryStatus
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// List is the delivery tracking page: newest activity first.
func (r *deliveryStatusRepo) List(ctx context.Context, s Search) ([]model.DeliveryStatus, error) {
	var rows []model.DeliveryStatus
	err := r.db.WithContext(ctx).
		Scopes(s.Scope([]string{"po_number", "material_code"}, "status")).
		Order("updated_at DESC").Order("id DESC").
		Find(&rows).Error
	return rows, translate(err)
}

func (r *deliveryStatusRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&model.DeliveryStatus{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	return affected(res)
}

func (r *deliveryStatusRepo) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&model.DeliveryStatus{}, id))
}
