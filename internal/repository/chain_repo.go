package repository

import (
	"context"

	"supplyease/internal/model"

	"gorm.io/gorm"
)

// ChainRepository rebuilds the PR → SR → PO → Delivery view. The stages are
// tied together only by business-key strings, so every join is outer and a
// dangling reference simply yields nulls.
type ChainRepository interface {
	List(ctx context.Context, s Search) ([]model.ChainRow, error)
	FindByPRID(ctx context.Context, prID uint) (*model.ChainRow, error)
}

type chainRepo struct{ db *gorm.DB }

func NewChainRepository(db *gorm.DB) ChainRepository { return &chainRepo{db: db} }

const chainColumns = `pr.id AS pr_id, pr.pr_number AS pr_number, pr.item_name AS item_name,
	pr.material_code AS pr_material_code, pr.quantity AS pr_quantity, pr.budget AS budget,
	pr.status AS pr_status, pr.created_at AS pr_created_at,
	sr.id AS sr_id, sr.sr_number AS sr_number, sr.title AS sr_title, sr.supplier_id AS sr_supplier_id,
	sr.status AS sr_status, sr.start_date AS sr_start_date, sr.end_date AS sr_end_date,
	po.id AS po_id, po.po_number AS po_number, po.supplier_name AS po_supplier_name,
	po.total_amount AS po_total_amount, po.status AS po_status,
	po.start_date AS po_start_date, po.end_date AS po_end_date,
	ds.id AS delivery_id, ds.status AS delivery_status, ds.updated_at AS delivery_updated_at`

// Fields the free-text search looks at, evaluated on the joined row.
var chainSearchColumns = []string{"pr.pr_number", "sr.sr_number", "po.po_number"}

func (r *chainRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("purchase_requests AS pr").
		Select(chainColumns).
		Joins("LEFT JOIN sourcing_requests AS sr ON sr.pr_reference = pr.pr_number").
		Joins("LEFT JOIN purchase_orders AS po ON po.sr_reference = sr.sr_number").
		Joins("LEFT JOIN delivery_status AS ds ON ds.po_number = po.po_number")
}

func (r *chainRepo) List(ctx context.Context, s Search) ([]model.ChainRow, error) {
	rows := make([]model.ChainRow, 0)
	err := r.base(ctx).
		Scopes(s.Scope(chainSearchColumns, "pr.status")).
		Order("pr.created_at DESC").Order("pr.id DESC").
		Order("sr.id").Order("po.id").Order("ds.id").
		Scan(&rows).Error
	return rows, translate(err)
}

// FindByPRID returns the first row of the chain rooted at prID. When a PR fans
// out to several SRs or POs the earliest-created branch wins.
func (r *chainRepo) FindByPRID(ctx context.Context, prID uint) (*model.ChainRow, error) {
	var rows []model.ChainRow
	err := r.base(ctx).
		Where("pr.id = ?", prID).
		Order("sr.id").Order("po.id").Order("ds.id").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
