package repository

import (
	"context"

	"supplyease/internal/model"

	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uint) (*model.PurchaseOrder, error)
	FindByNumber(ctx context.Context, tx *gorm.DB, poNumber string) (*model.PurchaseOrder, error)
	List(ctx context.Context, s Search) ([]model.PurchaseOrder, error)
	UpdateStage(ctx context.Context, tx *gorm.DB, poNumber string, upd StageUpdate) (int64, error)
	DB() *gorm.DB
}

type purchaseOrderRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) DB() *gorm.DB { return r.db }

func (r *purchaseOrderRepo) Create(ctx context.Context, tx *gorm.DB, po *model.PurchaseOrder) error {
	return translate(conn(ctx, r.db, tx).Create(po).Error)
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id uint) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := r.db.WithContext(ctx).First(&po, id).Error; err != nil {
		return nil, translate(err)
	}
	return &po, nil
}

func (r *purchaseOrderRepo) FindByNumber(ctx context.Context, tx *gorm.DB, poNumber string) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := conn(ctx, r.db, tx).Where("po_number = ?", poNumber).First(&po).Error; err != nil {
		return nil, translate(err)
	}
	return &po, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context, s Search) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Scopes(s.Scope([]string{"po_number", "sr_reference", "supplier_name", "material_code"}, "status")).
		Order("created_at DESC").Order("id DESC").
		Find(&pos).Error
	return pos, translate(err)
}

func (r *purchaseOrderRepo) UpdateStage(ctx context.Context, tx *gorm.DB, poNumber string, upd StageUpdate) (int64, error) {
	res := conn(ctx, r.db, tx).Model(&model.PurchaseOrder{}).
		Where("po_number = ?", poNumber).
		Updates(upd.fields())
	return res.RowsAffected, translate(res.Error)
}
