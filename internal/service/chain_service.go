package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"supplyease/internal/dto"
	"supplyease/internal/model"
	"supplyease/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ChainService reads the joined process view and coordinates status changes
// across the stages of one chain.
type ChainService interface {
	List(ctx context.Context, f dto.ListFilter) ([]dto.ChainRowResponse, error)
	Get(ctx context.Context, prID uint) (*dto.ChainRowResponse, error)
	ApplyUpdate(ctx context.Context, prID uint, req dto.CascadeUpdateRequest) (*dto.CascadeUpdateResponse, error)
	Delete(ctx context.Context, prID uint) error
}

type chainService struct {
	chains   repository.ChainRepository
	prRepo   repository.PurchaseRequestRepository
	srRepo   repository.SourcingRequestRepository
	poRepo   repository.PurchaseOrderRepository
	notifier Notifier
	cache    Cache
}

func NewChainService(
	chains repository.ChainRepository,
	prRepo repository.PurchaseRequestRepository,
	srRepo repository.SourcingRequestRepository,
	poRepo repository.PurchaseOrderRepository,
	notifier Notifier,
	cache Cache,
) ChainService {
	return &chainService{chains: chains, prRepo: prRepo, srRepo: srRepo, poRepo: poRepo, notifier: notifier, cache: cache}
}

func (s *chainService) List(ctx context.Context, f dto.ListFilter) ([]dto.ChainRowResponse, error) {
	rows, err := s.chains.List(ctx, repository.Search{Text: f.Search, Status: f.Status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChainRowResponse, len(rows))
	for i := range rows {
		out[i] = toChainResponse(&rows[i])
	}
	return out, nil
}

func (s *chainService) Get(ctx context.Context, prID uint) (*dto.ChainRowResponse, error) {
	row, err := s.chains.FindByPRID(ctx, prID)
	if err != nil {
		return nil, err
	}
	resp := toChainResponse(row)
	return &resp, nil
}

// ApplyUpdate writes the PR status and, when a stage key is given, the SR and
// PO status/dates. All writes share one transaction: any failure rolls every
// one of them back and comes back as a single *CascadeError.
//
// An SR or PO key that matches no row is skipped. A key that matches a row
// belonging to another chain is rejected with ErrUnlinkedReference.
func (s *chainService) ApplyUpdate(ctx context.Context, prID uint, req dto.CascadeUpdateRequest) (*dto.CascadeUpdateResponse, error) {
	resp := &dto.CascadeUpdateResponse{PRID: prID, PRStatus: strings.TrimSpace(req.PRStatus)}
	srUpd := stageUpdate(req.SR)
	poUpd := stageUpdate(req.PO)

	stage := "pr"
	err := runTx(ctx, s.prRepo.DB(), func(tx *gorm.DB) error {
		pr, err := s.prRepo.LockByID(ctx, tx, prID)
		if err != nil {
			return err
		}
		if err := s.prRepo.UpdateStatus(ctx, tx, prID, resp.PRStatus); err != nil {
			return err
		}

		var srNumber string
		if srUpd != nil {
			stage = "sr"
			sr, err := s.srRepo.FindByNumber(ctx, tx, srUpd.number)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				log.Warn().Uint("pr_id", prID).Str("sr_number", srUpd.number).Msg("cascade: sourcing request not found, skipping")
			case err != nil:
				return err
			default:
				if !refersTo(sr.PRReference, pr.PRNumber) {
					return fmt.Errorf("%w: %s is not linked to %s", ErrUnlinkedReference, sr.SRNumber, pr.PRNumber)
				}
				n, err := s.srRepo.UpdateStage(ctx, tx, sr.SRNumber, srUpd.fields)
				if err != nil {
					return err
				}
				srNumber = sr.SRNumber
				resp.SRUpdated = n > 0
			}
		}

		if poUpd != nil {
			stage = "po"
			po, err := s.poRepo.FindByNumber(ctx, tx, poUpd.number)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				log.Warn().Uint("pr_id", prID).Str("po_number", poUpd.number).Msg("cascade: purchase order not found, skipping")
				return nil
			case err != nil:
				return err
			}
			if err := s.checkPOLink(ctx, tx, po, pr.PRNumber, srNumber); err != nil {
				return err
			}
			n, err := s.poRepo.UpdateStage(ctx, tx, po.PONumber, poUpd.fields)
			if err != nil {
				return err
			}
			resp.POUpdated = n > 0
		}
		return nil
	})
	if err != nil {
		if stage == "pr" && errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		log.Error().Err(err).Uint("pr_id", prID).Str("stage", stage).Msg("cascade update rolled back")
		return nil, &CascadeError{PRID: prID, Stage: stage, Err: err}
	}

	log.Info().
		Uint("pr_id", prID).
		Str("pr_status", resp.PRStatus).
		Bool("sr_updated", resp.SRUpdated).
		Bool("po_updated", resp.POUpdated).
		Msg("cascade update committed")
	evictDashboard(ctx, s.cache)
	notify(ctx, s.notifier, EventChainUpdated, map[string]string{
		"pr_id":     strconv.FormatUint(uint64(prID), 10),
		"pr_status": resp.PRStatus,
	})
	return resp, nil
}

// checkPOLink accepts a PO whose SR is the one updated in this call, or any SR
// hanging off the same PR.
func (s *chainService) checkPOLink(ctx context.Context, tx *gorm.DB, po *model.PurchaseOrder, prNumber, srNumber string) error {
	if po.SRReference == nil {
		return fmt.Errorf("%w: %s has no sourcing request", ErrUnlinkedReference, po.PONumber)
	}
	if srNumber != "" && *po.SRReference == srNumber {
		return nil
	}
	sr, err := s.srRepo.FindByNumber(ctx, tx, *po.SRReference)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s points at missing %s", ErrUnlinkedReference, po.PONumber, *po.SRReference)
	}
	if err != nil {
		return err
	}
	if !refersTo(sr.PRReference, prNumber) {
		return fmt.Errorf("%w: %s is not linked to %s", ErrUnlinkedReference, po.PONumber, prNumber)
	}
	return nil
}

// Delete removes only the PR row. Its SRs, POs and deliveries stay in storage
// and drop out of the view because nothing joins to them any more.
func (s *chainService) Delete(ctx context.Context, prID uint) error {
	if err := s.prRepo.Delete(ctx, prID); err != nil {
		return err
	}
	log.Info().Uint("pr_id", prID).Msg("purchase request deleted, downstream rows left in place")
	return nil
}

type pendingStage struct {
	number string
	fields repository.StageUpdate
}

func stageUpdate(req *dto.StageUpdateRequest) *pendingStage {
	if req == nil {
		return nil
	}
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil
	}
	return &pendingStage{
		number: number,
		fields: repository.StageUpdate{
			Status:    strings.TrimSpace(req.Status),
			StartDate: req.StartDate.Ptr(),
			EndDate:   req.EndDate.Ptr(),
		},
	}
}

func refersTo(ref *string, key string) bool {
	return ref != nil && *ref == key
}

func toChainResponse(r *model.ChainRow) dto.ChainRowResponse {
	resp := dto.ChainRowResponse{
		PRID:         r.PRID,
		PRNumber:     r.PRNumber,
		ItemName:     r.ItemName,
		MaterialCode: r.PRMaterial,
		Quantity:     r.PRQuantity,
		Budget:       r.Budget,
		PRStatus:     r.PRStatus,
		CreatedAt:    r.PRCreatedAt,

		SRID:        r.SRID,
		SRNumber:    r.SRNumber,
		SRTitle:     r.SRTitle,
		SupplierID:  r.SRSupplier,
		SRStatus:    r.SRStatus,
		SRStartDate: r.SRStartDate,
		SREndDate:   r.SREndDate,

		POID:         r.POID,
		PONumber:     r.PONumber,
		SupplierName: r.POSupplier,
		POStatus:     r.POStatus,
		POStartDate:  r.POStartDate,
		POEndDate:    r.POEndDate,

		DeliveryID:        r.DeliveryID,
		DeliveryStatus:    r.DeliveryStatus,
		DeliveryUpdatedAt: r.DeliveryUpdatedAt,
	}
	if r.POTotalAmount.Valid {
		amt := r.POTotalAmount.Decimal
		resp.TotalAmount = &amt
	}
	return resp
}
