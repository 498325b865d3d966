package repository

import (
	"context"

	"supplyease/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, pr *model.PurchaseRequest) error
	FindByID(ctx context.Context, id uint) (*model.PurchaseRequest, error)
	FindByNumber(ctx context.Context, prNumber string) (*model.PurchaseRequest, error)
	// LockByID loads the PR inside tx and holds a row lock until commit.
	LockByID(ctx context.Context, tx *gorm.DB, id uint) (*model.PurchaseRequest, error)
	List(ctx context.Context, s Search) ([]model.PurchaseRequest, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type purchaseRequestRepo struct{ db *gorm.DB }

func NewPurchaseRequestRepository(db *gorm.DB) PurchaseRequestRepository {
	return &purchaseRequestRepo{db: db}
}

func (r *purchaseRequestRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRequestRepo) Create(ctx context.Context, tx *gorm.DB, pr *model.PurchaseRequest) error {
	return translate(conn(ctx, r.db, tx).Create(pr).Error)
}

func (r *purchaseRequestRepo) FindByID(ctx context.Context, id uint) (*model.PurchaseRequest, error) {
	var pr model.PurchaseRequest
	if err := r.db.WithContext(ctx).First(&pr, id).Error; err != nil {
		return nil, translate(err)
	}
	return &pr, nil
}

func (r *purchaseRequestRepo) FindByNumber(ctx context.Context, prNumber string) (*model.PurchaseRequest, error) {
	var pr model.PurchaseRequest
	if err := r.db.WithContext(ctx).Where("pr_number = ?", prNumber).First(&pr).Error; err != nil {
		return nil, translate(err)
	}
	return &pr, nil
}

func (r *purchaseRequestRepo) LockByID(ctx context.Context, tx *gorm.DB, id uint) (*model.PurchaseRequest, error) {
	var pr model.PurchaseRequest
	err := conn(ctx, r.db, tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&pr, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pr, nil
}

func (r *purchaseRequestRepo) List(ctx context.Context, s Search) ([]model.PurchaseRequest, error) {
	var prs []model.PurchaseRequest
	err := r.db.WithContext(ctx).
		Scopes(s.Scope([]string{"pr_number", "item_name", "material_code"}, "status")).
		Order("created_at DESC").Order("id DESC").
		Find(&prs).Error
	return prs, translate(err)
}

func (r *purchaseRequestRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status string) error {
	res := conn(ctx, r.db, tx).Model(&model.PurchaseRequest{}).Where("id = ?", id).Update("status", status)
	return affected(res)
}

func (r *purchaseRequestRepo) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&model.PurchaseRequest{}, id))
}
