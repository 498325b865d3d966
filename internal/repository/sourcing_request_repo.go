package repository

import (
	"context"

	"supplyease/internal/model"

	"gorm.io/gorm"
)

type SourcingRequestRepository interface {
	Create(ctx context.Context, sr *model.SourcingRequest) error
	FindByID(ctx context.Context, id uint) (*model.SourcingRequest, error)
	FindByNumber(ctx context.Context, tx *gorm.DB, srNumber string) (*model.SourcingRequest, error)
	List(ctx context.Context, s Search) ([]model.SourcingRequest, error)
	UpdateStage(ctx context.Context, tx *gorm.DB, srNumber string, upd StageUpdate) (int64, error)
}

type sourcingRequestRepo struct{ db *gorm.DB }

func NewSourcingRequestRepository(db *gorm.DB) SourcingRequestRepository {
	return &sourcingRequestRepo{db: db}
}

func (r *sourcingRequestRepo) Create(ctx context.Context, sr *model.SourcingRequest) error {
	return translate(r.db.WithContext(ctx).Create(sr).Error)
}

func (r *sourcingRequestRepo) FindByID(ctx context.Context, id uint) (*model.SourcingRequest, error) {
	var sr model.SourcingRequest
	if err := r.db.WithContext(ctx).First(&sr, id).Error; err != nil {
		return nil, translate(err)
	}
	return &sr, nil
}

func (r *sourcingRequestRepo) FindByNumber(ctx context.Context, tx *gorm.DB, srNumber string) (*model.SourcingRequest, error) {
	var sr model.SourcingRequest
	if err := conn(ctx, r.db, tx).Where("sr_number = ?", srNumber).First(&sr).Error; err != nil {
		return nil, translate(err)
	}
	return &sr, nil
}

func (r *sourcingRequestRepo) List(ctx context.Context, s Search) ([]model.SourcingRequest, error) {
	var srs []model.SourcingRequest
	err := r.db.WithContext(ctx).
		Scopes(s.Scope([]string{"sr_number", "pr_reference", "title", "supplier_id"}, "status")).
		Order("created_at DESC").Order("id DESC").
		Find(&srs).Error
	return srs, translate(err)
}

// UpdateStage returns the number of rows touched; zero means the business
// key dangles.
func (r *sourcingRequestRepo) UpdateStage(ctx context.Context, tx *gorm.DB, srNumber string, upd StageUpdate) (int64, error) {
	res := conn(ctx, r.db, tx).Model(&model.SourcingRequest{}).
		Where("sr_number = ?", srNumber).
		Updates(upd.fields())
	return res.RowsAffected, translate(res.Error)
}
