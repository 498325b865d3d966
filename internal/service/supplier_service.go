package service

import (
	"context"
	"strings"

	"supplyease/internal/dto"
	"supplyease/internal/idgen"
	"supplyease/internal/model"
	"supplyease/internal/repository"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.SupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SupplierResponse, error)
	List(ctx context.Context, f dto.ListFilter) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uint, req dto.SupplierRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, id uint) error
}

type supplierService struct {
	repo   repository.SupplierRepository
	minter *KeyMinter
}

func NewSupplierService(repo repository.SupplierRepository, minter *KeyMinter) SupplierService {
	return &supplierService{repo: repo, minter: minter}
}

func (s *supplierService) Create(ctx context.Context, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	sup := &model.Supplier{}
	applySupplier(sup, req)
	_, err := s.minter.insert(ctx, idgen.PrefixSupplier, func(key string) error {
		sup.SupplierID = key
		return s.repo.Create(ctx, sup)
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (s *supplierService) GetByID(ctx context.Context, id uint) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (s *supplierService) List(ctx context.Context, f dto.ListFilter) ([]dto.SupplierResponse, error) {
	sups, err := s.repo.List(ctx, repository.Search{Text: f.Search, Status: f.Status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, len(sups))
	for i := range sups {
		out[i] = *toSupplierResponse(&sups[i])
	}
	return out, nil
}

// Update replaces the editable fields; the supplier key never changes.
func (s *supplierService) Update(ctx context.Context, id uint, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applySupplier(sup, req)
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (s *supplierService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func applySupplier(sup *model.Supplier, req dto.SupplierRequest) {
	sup.Name = strings.TrimSpace(req.Name)
	sup.ContactPerson = strings.TrimSpace(req.ContactPerson)
	sup.Email = strings.TrimSpace(req.Email)
	sup.Phone = strings.TrimSpace(req.Phone)
	sup.Address = strings.TrimSpace(req.Address)
	sup.Status = req.Status
	if sup.Status == "" {
		sup.Status = model.SupplierActive
	}
}

func toSupplierResponse(s *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID,
		SupplierID:    s.SupplierID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
	}
}
