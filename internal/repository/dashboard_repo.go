package repository

import (
	"context"

	"supplyease/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

type DashboardRepository interface {
	TotalSpending(ctx context.Context) (decimal.Decimal, error)
	SourcingStatusCounts(ctx context.Context) ([]StatusCount, error)
	DeliveryStatusCounts(ctx context.Context) ([]StatusCount, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

// TotalSpending sums total_amount over every purchase order.
func (r *dashboardRepo) TotalSpending(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	row := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, translate(err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *dashboardRepo) SourcingStatusCounts(ctx context.Context) ([]StatusCount, error) {
	return r.countByStatus(ctx, &model.SourcingRequest{})
}

func (r *dashboardRepo) DeliveryStatusCounts(ctx context.Context) ([]StatusCount, error) {
	return r.countByStatus(ctx, &model.DeliveryStatus{})
}

func (r *dashboardRepo) countByStatus(ctx context.Context, m interface{}) ([]StatusCount, error) {
	out := make([]StatusCount, 0)
	err := r.db.WithContext(ctx).Model(m).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, translate(err)
}
