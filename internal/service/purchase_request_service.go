package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"supplyease/internal/coerce"
	"supplyease/internal/dto"
	"supplyease/internal/idgen"
	"supplyease/internal/model"
	"supplyease/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Material code stored when an import row leaves it blank.
const importDefaultMaterial = "N/A"

type PurchaseRequestService interface {
	Create(ctx context.Context, req dto.CreatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error)
	Import(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResult, error)
	GetByID(ctx context.Context, id uint) (*dto.PurchaseRequestResponse, error)
	GetByNumber(ctx context.Context, prNumber string) (*dto.PurchaseRequestResponse, error)
	List(ctx context.Context, f dto.ListFilter) ([]dto.PurchaseRequestResponse, error)
}

type purchaseRequestService struct {
	repo   repository.PurchaseRequestRepository
	minter *KeyMinter
}

func NewPurchaseRequestService(repo repository.PurchaseRequestRepository, minter *KeyMinter) PurchaseRequestService {
	return &purchaseRequestService{repo: repo, minter: minter}
}

func (s *purchaseRequestService) Create(ctx context.Context, req dto.CreatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	pr := &model.PurchaseRequest{
		ItemName:     strings.TrimSpace(req.ItemName),
		MaterialCode: strings.TrimSpace(req.MaterialCode),
		Quantity:     req.Quantity.Int(),
		Budget:       req.Budget.Value(),
		Status:       model.PRStatusPending,
	}
	if err := s.insert(ctx, pr); err != nil {
		return nil, err
	}
	log.Info().Str("pr_number", pr.PRNumber).Msg("purchase request created")
	return toPRResponse(pr), nil
}

// Import creates one PR per well-formed row. Rows without an item or with a
// quantity that is not a non-negative whole number are skipped and counted.
// A store failure stops the batch; the result still reports what was created.
func (s *purchaseRequestService) Import(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResult, error) {
	res := &dto.ImportResult{}
	for i, row := range rows {
		pr, ok := prFromImportRow(row)
		if !ok {
			res.Skipped++
			continue
		}
		if err := s.insert(ctx, pr); err != nil {
			return res, fmt.Errorf("import row %d: %w", i+1, err)
		}
		res.Created++
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("purchase requests imported")
	return res, nil
}

func (s *purchaseRequestService) GetByID(ctx context.Context, id uint) (*dto.PurchaseRequestResponse, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPRResponse(pr), nil
}

func (s *purchaseRequestService) GetByNumber(ctx context.Context, prNumber string) (*dto.PurchaseRequestResponse, error) {
	pr, err := s.repo.FindByNumber(ctx, prNumber)
	if err != nil {
		return nil, err
	}
	return toPRResponse(pr), nil
}

func (s *purchaseRequestService) List(ctx context.Context, f dto.ListFilter) ([]dto.PurchaseRequestResponse, error) {
	prs, err := s.repo.List(ctx, repository.Search{Text: f.Search, Status: f.Status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseRequestResponse, len(prs))
	for i := range prs {
		out[i] = *toPRResponse(&prs[i])
	}
	return out, nil
}

func (s *purchaseRequestService) insert(ctx context.Context, pr *model.PurchaseRequest) error {
	_, err := s.minter.insert(ctx, idgen.PrefixPR, func(key string) error {
		pr.PRNumber = key
		return s.repo.Create(ctx, nil, pr)
	})
	return err
}

func prFromImportRow(row dto.ImportRow) (*model.PurchaseRequest, bool) {
	item := strings.TrimSpace(row.Item)
	if item == "" {
		return nil, false
	}
	qty, ok := parseQuantity(row.Qty)
	if !ok {
		return nil, false
	}
	material := strings.TrimSpace(row.MaterialCode)
	if material == "" {
		material = importDefaultMaterial
	}
	return &model.PurchaseRequest{
		ItemName:     item,
		MaterialCode: material,
		Quantity:     qty,
		Budget:       coerce.ParseDecimal(row.Budget),
		Status:       model.PRStatusPending,
	}, true
}

// parseQuantity is stricter than coerce.ParseInt: an import row with a
// garbage quantity is malformed, not zero.
func parseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Spreadsheets often hand back "5.0".
		d, derr := decimal.NewFromString(s)
		if derr != nil {
			return 0, false
		}
		var ok bool
		if n, ok = coerce.Whole(d); !ok {
			return 0, false
		}
	}
	return n, n >= 0
}

func toPRResponse(pr *model.PurchaseRequest) *dto.PurchaseRequestResponse {
	return &dto.PurchaseRequestResponse{
		ID:           pr.ID,
		PRNumber:     pr.PRNumber,
		ItemName:     pr.ItemName,
		MaterialCode: pr.MaterialCode,
		Quantity:     pr.Quantity,
		Budget:       pr.Budget,
		Status:       pr.Status,
		CreatedAt:    pr.CreatedAt,
	}
}
