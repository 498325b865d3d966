package service

import (
	"context"
	"strings"

	"supplyease/internal/dto"
	"supplyease/internal/idgen"
	"supplyease/internal/model"
	"supplyease/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type SourcingRequestService interface {
	Create(ctx context.Context, req dto.CreateSourcingRequestRequest) (*dto.SourcingRequestResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SourcingRequestResponse, error)
	GetByNumber(ctx context.Context, srNumber string) (*dto.SourcingRequestResponse, error)
	List(ctx context.Context, f dto.ListFilter) ([]dto.SourcingRequestResponse, error)
}

type sourcingRequestService struct {
	repo   repository.SourcingRequestRepository
	minter *KeyMinter
	cache  Cache
}

func NewSourcingRequestService(repo repository.SourcingRequestRepository, minter *KeyMinter, cache Cache) SourcingRequestService {
	return &sourcingRequestService{repo: repo, minter: minter, cache: cache}
}

// Create stores the SR as given. pr_reference is not checked against existing
// PRs; the chain view tolerates references that never resolve.
func (s *sourcingRequestService) Create(ctx context.Context, req dto.CreateSourcingRequestRequest) (*dto.SourcingRequestResponse, error) {
	qty := req.Quantity.Int()
	price := req.Price.Value()
	sr := &model.SourcingRequest{
		PRReference:     optionalRef(req.PRReference),
		SupplierID:      strings.TrimSpace(req.SupplierID),
		Title:           strings.TrimSpace(req.Title),
		ProjectDuration: req.ProjectDuration,
		MaterialDesc:    req.MaterialDesc,
		MaterialCode:    strings.TrimSpace(req.MaterialCode),
		Quantity:        qty,
		Price:           price,
		TotalPrice:      lineTotal(req.TotalPrice.Value(), price, qty),
		Incoterm:        req.Incoterm,
		PaymentTerm:     req.PaymentTerm,
		DeliveryDate:    req.DeliveryDate.Ptr(),
		StartDate:       req.StartDate.Ptr(),
		EndDate:         req.EndDate.Ptr(),
		Status:          model.SRStatusInProgress,
	}
	_, err := s.minter.insert(ctx, idgen.PrefixSR, func(key string) error {
		sr.SRNumber = key
		return s.repo.Create(ctx, sr)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("sr_number", sr.SRNumber).Interface("pr_reference", sr.PRReference).Msg("sourcing request created")
	evictDashboard(ctx, s.cache)
	return toSRResponse(sr), nil
}

func (s *sourcingRequestService) GetByID(ctx context.Context, id uint) (*dto.SourcingRequestResponse, error) {
	sr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSRResponse(sr), nil
}

func (s *sourcingRequestService) GetByNumber(ctx context.Context, srNumber string) (*dto.SourcingRequestResponse, error) {
	sr, err := s.repo.FindByNumber(ctx, nil, srNumber)
	if err != nil {
		return nil, err
	}
	return toSRResponse(sr), nil
}

func (s *sourcingRequestService) List(ctx context.Context, f dto.ListFilter) ([]dto.SourcingRequestResponse, error) {
	srs, err := s.repo.List(ctx, repository.Search{Text: f.Search, Status: f.Status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SourcingRequestResponse, len(srs))
	for i := range srs {
		out[i] = *toSRResponse(&srs[i])
	}
	return out, nil
}

// optionalRef stores a blank reference as NULL.
func optionalRef(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// lineTotal keeps an explicit total and otherwise derives price × quantity.
func lineTotal(total, unit decimal.Decimal, qty int) decimal.Decimal {
	if !total.IsZero() {
		return total
	}
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

func toSRResponse(sr *model.SourcingRequest) *dto.SourcingRequestResponse {
	return &dto.SourcingRequestResponse{
		ID:              sr.ID,
		SRNumber:        sr.SRNumber,
		PRReference:     sr.PRReference,
		SupplierID:      sr.SupplierID,
		Title:           sr.Title,
		ProjectDuration: sr.ProjectDuration,
		MaterialDesc:    sr.MaterialDesc,
		MaterialCode:    sr.MaterialCode,
		Quantity:        sr.Quantity,
		Price:           sr.Price,
		TotalPrice:      sr.TotalPrice,
		Incoterm:        sr.Incoterm,
		PaymentTerm:     sr.PaymentTerm,
		DeliveryDate:    sr.DeliveryDate,
		StartDate:       sr.StartDate,
		EndDate:         sr.EndDate,
		Status:          sr.Status,
		CreatedAt:       sr.CreatedAt,
	}
}
