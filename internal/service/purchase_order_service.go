package service

import (
	"context"
	"strings"

	"supplyease/internal/dto"
	"supplyease/internal/idgen"
	"supplyease/internal/model"
	"supplyease/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PurchaseOrderService interface {
	Create(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.PurchaseOrderResponse, error)
	List(ctx context.Context, f dto.ListFilter) ([]dto.PurchaseOrderResponse, error)
}

type purchaseOrderService struct {
	repo       repository.PurchaseOrderRepository
	deliveries repository.DeliveryStatusRepository
	minter     *KeyMinter
	notifier   Notifier
	cache      Cache
}

func NewPurchaseOrderService(
	repo repository.PurchaseOrderRepository,
	deliveries repository.DeliveryStatusRepository,
	minter *KeyMinter,
	notifier Notifier,
	cache Cache,
) PurchaseOrderService {
	return &purchaseOrderService{repo: repo, deliveries: deliveries, minter: minter, notifier: notifier, cache: cache}
}

// Create inserts the PO and its first delivery row ("Processing") in one
// transaction. A key collision rolls both back and retries with a new key.
func (s *purchaseOrderService) Create(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	qty := req.Quantity.Int()
	unit := req.UnitPrice.Value()
	materialCode := strings.TrimSpace(req.MaterialCode)

	var (
		po       *model.PurchaseOrder
		delivery *model.DeliveryStatus
	)
	_, err := s.minter.insert(ctx, idgen.PrefixPO, func(key string) error {
		po = &model.PurchaseOrder{
			PONumber:     key,
			SRReference:  optionalRef(req.SRReference),
			SupplierName: strings.TrimSpace(req.SupplierName),
			MaterialCode: materialCode,
			MaterialName: strings.TrimSpace(req.MaterialName),
			Quantity:     qty,
			UnitPrice:    unit,
			TotalAmount:  lineTotal(req.TotalAmount.Value(), unit, qty),
			DeliveryDate: req.DeliveryDate.Ptr(),
			StartDate:    req.StartDate.Ptr(),
			EndDate:      req.EndDate.Ptr(),
			Status:       model.POStatusNew,
		}
		delivery = &model.DeliveryStatus{
			PONumber:     &po.PONumber,
			MaterialCode: materialCode,
			Status:       model.DeliveryProcessing,
		}
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.Create(ctx, tx, po); err != nil {
				return err
			}
			return s.deliveries.Create(ctx, tx, delivery)
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("po_number", po.PONumber).Interface("sr_reference", po.SRReference).Msg("purchase order created")
	evictDashboard(ctx, s.cache)
	notify(ctx, s.notifier, EventPOCreated, map[string]string{
		"po_number":    po.PONumber,
		"supplier":     po.SupplierName,
		"total_amount": po.TotalAmount.StringFixed(2),
	})

	resp := toPOResponse(po)
	resp.Delivery = toDeliveryResponse(delivery)
	return resp, nil
}

func (s *purchaseOrderService) GetByID(ctx context.Context, id uint) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

func (s *purchaseOrderService) List(ctx context.Context, f dto.ListFilter) ([]dto.PurchaseOrderResponse, error) {
	pos, err := s.repo.List(ctx, repository.Search{Text: f.Search, Status: f.Status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, len(pos))
	for i := range pos {
		out[i] = *toPOResponse(&pos[i])
	}
	return out, nil
}

func toPOResponse(po *model.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:           po.ID,
		PONumber:     po.PONumber,
		SRReference:  po.SRReference,
		SupplierName: po.SupplierName,
		MaterialCode: po.MaterialCode,
		MaterialName: po.MaterialName,
		Quantity:     po.Quantity,
		UnitPrice:    po.UnitPrice,
		TotalAmount:  po.TotalAmount,
		DeliveryDate: po.DeliveryDate,
		StartDate:    po.StartDate,
		EndDate:      po.EndDate,
		Status:       po.Status,
		CreatedAt:    po.CreatedAt,
	}
}
