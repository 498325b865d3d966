package service

import (
	"context"
	"strconv"

	"supplyease/internal/dto"
	"supplyease/internal/model"
	"supplyease/internal/repository"
)

type DeliveryService interface {
	List(ctx context.Context, f dto.ListFilter) ([]dto.DeliveryStatusResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.DeliveryStatusResponse, error)
	UpdateStatus(ctx context.Context, id uint, req dto.UpdateDeliveryRequest) (*dto.DeliveryStatusResponse, error)
	Delete(ctx context.Context, id uint) error
}

type deliveryService struct {
	repo     repository.DeliveryStatusRepository
	notifier Notifier
	cache    Cache
}

func NewDeliveryService(repo repository.DeliveryStatusRepository, notifier Notifier, cache Cache) DeliveryService {
	return &deliveryService{repo: repo, notifier: notifier, cache: cache}
}

func (s *deliveryService) List(ctx context.Context, f dto.ListFilter) ([]dto.DeliveryStatusResponse, error) {
	rows, err := s.repo.List(ctx, repository.Search{Text: f.Search, Status: f.Status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryStatusResponse, len(rows))
	for i := range rows {
		out[i] = *toDeliveryResponse(&rows[i])
	}
	return out, nil
}

func (s *deliveryService) GetByID(ctx context.Context, id uint) (*dto.DeliveryStatusResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

// UpdateStatus sets the delivery state and stamps updated_at.
func (s *deliveryService) UpdateStatus(ctx context.Context, id uint, req dto.UpdateDeliveryRequest) (*dto.DeliveryStatusResponse, error) {
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	evictDashboard(ctx, s.cache)
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{"delivery_id": strconv.FormatUint(uint64(d.ID), 10), "status": d.Status}
	if d.PONumber != nil {
		fields["po_number"] = *d.PONumber
	}
	notify(ctx, s.notifier, EventDeliveryUpdated, fields)
	return toDeliveryResponse(d), nil
}

func (s *deliveryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	evictDashboard(ctx, s.cache)
	return nil
}

func toDeliveryResponse(d *model.DeliveryStatus) *dto.DeliveryStatusResponse {
	return &dto.DeliveryStatusResponse{
		ID:           d.ID,
		PONumber:     d.PONumber,
		MaterialCode: d.MaterialCode,
		Status:       d.Status,
		UpdatedAt:    d.UpdatedAt,
	}
}
