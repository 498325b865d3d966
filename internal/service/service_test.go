package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"supplyease/internal/coerce"
	"supplyease/internal/dto"
	"supplyease/internal/idgen"
	"supplyease/internal/model"
	"supplyease/internal/repository"
	"supplyease/internal/service"
	"supplyease/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

// seqGenerator hands out keys from a fixed list, repeating the last one.
type seqGenerator struct {
	keys  []string
	calls int
}

func (g *seqGenerator) Generate(_ context.Context, _ idgen.Prefix) (string, error) {
	i := g.calls
	if i >= len(g.keys) {
		i = len(g.keys) - 1
	}
	g.calls++
	return g.keys[i], nil
}

type event struct {
	name   string
	fields map[string]string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []event
}

func (n *recordingNotifier) Notify(_ context.Context, name string, fields map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event{name: name, fields: fields})
	return nil
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.name
	}
	return out
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	db       *gorm.DB
	notifier *recordingNotifier
	cache    *mapCache

	prs       service.PurchaseRequestService
	srs       service.SourcingRequestService
	pos       service.PurchaseOrderService
	chains    service.ChainService
	delivery  service.DeliveryService
	suppliers service.SupplierService

	prRepo repository.PurchaseRequestRepository
	srRepo repository.SourcingRequestRepository
	poRepo repository.PurchaseOrderRepository
	dsRepo repository.DeliveryStatusRepository
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithGenerator(t, idgen.New())
}

func newFixtureWithGenerator(t *testing.T, gen service.KeyGenerator) *fixture {
	db := testutil.NewDB(t)
	f := &fixture{
		db:       db,
		notifier: &recordingNotifier{},
		cache:    &mapCache{data: map[string][]byte{}},
		prRepo:   repository.NewPurchaseRequestRepository(db),
		srRepo:   repository.NewSourcingRequestRepository(db),
		poRepo:   repository.NewPurchaseOrderRepository(db),
		dsRepo:   repository.NewDeliveryStatusRepository(db),
	}
	minter := service.NewKeyMinter(gen, 3)
	f.prs = service.NewPurchaseRequestService(f.prRepo, minter)
	f.srs = service.NewSourcingRequestService(f.srRepo, minter, f.cache)
	f.pos = service.NewPurchaseOrderService(f.poRepo, f.dsRepo, minter, f.notifier, f.cache)
	f.chains = service.NewChainService(repository.NewChainRepository(db), f.prRepo, f.srRepo, f.poRepo, f.notifier, f.cache)
	f.delivery = service.NewDeliveryService(f.dsRepo, f.notifier, f.cache)
	f.suppliers = service.NewSupplierService(repository.NewSupplierRepository(db), minter)
	return f
}

type chain struct {
	pr *dto.PurchaseRequestResponse
	sr *dto.SourcingRequestResponse
	po *dto.PurchaseOrderResponse
}

// createChain builds PR → SR → PO through the services.
func (f *fixture) createChain(t *testing.T) chain {
	t.Helper()
	ctx := context.Background()

	pr, err := f.prs.Create(ctx, dto.CreatePurchaseRequestRequest{
		ItemName: "Laptop", MaterialCode: "MAT-LAP", Quantity: 5, Budget: decimalOf("1000"),
	})
	require.NoError(t, err)

	sr, err := f.srs.Create(ctx, dto.CreateSourcingRequestRequest{
		PRReference: pr.PRNumber, SupplierID: "SUP-1", Title: "Laptops Q2", Quantity: 5, Price: decimalOf("190"),
	})
	require.NoError(t, err)

	po, err := f.pos.Create(ctx, dto.CreatePurchaseOrderRequest{
		SRReference: sr.SRNumber, SupplierName: "ACME", MaterialCode: "MAT-LAP", Quantity: 5, UnitPrice: decimalOf("190"),
	})
	require.NoError(t, err)
	return chain{pr: pr, sr: sr, po: po}
}

func decimalOf(s string) coerce.Decimal {
	var d coerce.Decimal
	_ = d.UnmarshalParam(s)
	return d
}

func dateOf(s string) coerce.Date {
	return coerce.NewDate(coerce.ParseDate(s))
}

// failUpdatesOn makes every UPDATE against table fail.
func failUpdatesOn(t *testing.T, db *gorm.DB, table string) error {
	t.Helper()
	errForced := errors.New("forced write failure")
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_"+table, func(d *gorm.DB) {
		if d.Statement.Table == table {
			_ = d.AddError(errForced)
		}
	})
	require.NoError(t, err)
	return errForced
}

// ── Creation ─────────────────────────────────────────────────────────────────

func TestCreatePR_ReturnsKeyAndAppearsWithNullDownstream(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pr, err := f.prs.Create(ctx, dto.CreatePurchaseRequestRequest{ItemName: "Laptop", Quantity: 5, Budget: decimalOf("1000")})
	require.NoError(t, err)

	today := time.Now().UTC().Format("20060102")
	assert.Regexp(t, `^PR-`+today+`-\d{4}$`, pr.PRNumber)
	assert.Equal(t, model.PRStatusPending, pr.Status)

	rows, err := f.chains.List(ctx, dto.ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, pr.PRNumber, rows[0].PRNumber)
	assert.Nil(t, rows[0].SRNumber)
	assert.Nil(t, rows[0].PONumber)
	assert.Nil(t, rows[0].DeliveryStatus)
	assert.Nil(t, rows[0].TotalAmount)
}

func TestCreateChain_ResolvesAllStagesWithProcessingDelivery(t *testing.T) {
	f := newFixture(t)
	c := f.createChain(t)

	require.NotNil(t, c.po.Delivery)
	assert.Equal(t, model.DeliveryProcessing, c.po.Delivery.Status)
	assert.Equal(t, "950", c.po.TotalAmount.String())
	assert.Equal(t, "950", c.sr.TotalPrice.String())

	row, err := f.chains.Get(context.Background(), c.pr.ID)
	require.NoError(t, err)
	require.NotNil(t, row.SRNumber)
	require.NotNil(t, row.PONumber)
	require.NotNil(t, row.DeliveryStatus)
	assert.Equal(t, c.sr.SRNumber, *row.SRNumber)
	assert.Equal(t, c.po.PONumber, *row.PONumber)
	assert.Equal(t, model.DeliveryProcessing, *row.DeliveryStatus)

	assert.Equal(t, []string{service.EventPOCreated}, f.notifier.names())
}

func TestCreateSR_BlankReferenceStoredAsNull(t *testing.T) {
	f := newFixture(t)

	sr, err := f.srs.Create(context.Background(), dto.CreateSourcingRequestRequest{PRReference: "  ", Title: "Loose"})
	require.NoError(t, err)
	assert.Nil(t, sr.PRReference)
	assert.Equal(t, model.SRStatusInProgress, sr.Status)
	assert.Nil(t, sr.StartDate)
}

func TestCreatePO_DeliveryFailureRollsBackOrder(t *testing.T) {
	f := newFixture(t)
	errForced := errors.New("delivery insert failed")
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_delivery", func(d *gorm.DB) {
		if d.Statement.Table == "delivery_status" {
			_ = d.AddError(errForced)
		}
	}))

	_, err := f.pos.Create(context.Background(), dto.CreatePurchaseOrderRequest{SupplierName: "ACME"})
	require.ErrorIs(t, err, errForced)

	pos, err := f.pos.List(context.Background(), dto.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, pos)
	assert.Empty(t, f.notifier.names())
}

// ── Key collisions ───────────────────────────────────────────────────────────

func TestCreate_RegeneratesKeyOnCollision(t *testing.T) {
	gen := &seqGenerator{keys: []string{"PR-20260301-1111", "PR-20260301-1111", "PR-20260301-2222"}}
	f := newFixtureWithGenerator(t, gen)
	ctx := context.Background()

	first, err := f.prs.Create(ctx, dto.CreatePurchaseRequestRequest{ItemName: "Desk"})
	require.NoError(t, err)
	assert.Equal(t, "PR-20260301-1111", first.PRNumber)

	second, err := f.prs.Create(ctx, dto.CreatePurchaseRequestRequest{ItemName: "Chair"})
	require.NoError(t, err)
	assert.Equal(t, "PR-20260301-2222", second.PRNumber)
	assert.Equal(t, 3, gen.calls)
}

func TestCreate_GivesUpAfterBoundedAttempts(t *testing.T) {
	gen := &seqGenerator{keys: []string{"PO-20260301-5555"}}
	f := newFixtureWithGenerator(t, gen)
	ctx := context.Background()

	_, err := f.pos.Create(ctx, dto.CreatePurchaseOrderRequest{SupplierName: "ACME"})
	require.NoError(t, err)

	_, err = f.pos.Create(ctx, dto.CreatePurchaseOrderRequest{SupplierName: "Globex"})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrConstraintViolation)
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
	assert.Equal(t, 4, gen.calls)

	// The failed attempts left no delivery rows behind.
	rows, err := f.delivery.List(ctx, dto.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSupplierCreate_MintsKeyAndDefaultsActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sup, err := f.suppliers.Create(ctx, dto.SupplierRequest{Name: " ACME Corp "})
	require.NoError(t, err)
	assert.Regexp(t, `^SUP-\d{8}-\d{4}$`, sup.SupplierID)
	assert.Equal(t, "ACME Corp", sup.Name)
	assert.Equal(t, model.SupplierActive, sup.Status)

	upd, err := f.suppliers.Update(ctx, sup.ID, dto.SupplierRequest{Name: "ACME", Status: model.SupplierInactive})
	require.NoError(t, err)
	assert.Equal(t, sup.SupplierID, upd.SupplierID)
	assert.Equal(t, model.SupplierInactive, upd.Status)

	require.NoError(t, f.suppliers.Delete(ctx, sup.ID))
	_, err = f.suppliers.GetByID(ctx, sup.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// ── Import ───────────────────────────────────────────────────────────────────

func TestImport_SkipsMalformedRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.prs.Import(ctx, []dto.ImportRow{
		{Item: "Monitor", MaterialCode: "MAT-MON", Qty: "3", Budget: "450.50"},
		{Item: "", Qty: "1"},
		{Item: "Keyboard", Qty: "lots"},
		{Item: "Mouse", Qty: "-2"},
		{Item: "Cable", Qty: "10.0", Budget: "1,200"},
		{Item: "Dock", Qty: ""},
		{Item: "Pallet", Qty: "1e30"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 5, res.Skipped)

	prs, err := f.prs.List(ctx, dto.ListFilter{Search: "cable"})
	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 10, prs[0].Quantity)
	assert.Equal(t, "1200", prs[0].Budget.String())
	assert.Equal(t, "N/A", prs[0].MaterialCode)
}

// ── Cascade ──────────────────────────────────────────────────────────────────

func TestApplyUpdate_UpdatesAllLinkedStages(t *testing.T) {
	f := newFixture(t)
	c := f.createChain(t)
	ctx := context.Background()

	resp, err := f.chains.ApplyUpdate(ctx, c.pr.ID, dto.CascadeUpdateRequest{
		PRStatus: model.PRStatusApproved,
		SR:       &dto.StageUpdateRequest{Number: c.sr.SRNumber, Status: "In Progress", StartDate: dateOf("2026-04-01"), EndDate: dateOf("")},
		PO:       &dto.StageUpdateRequest{Number: c.po.PONumber, Status: "New", StartDate: dateOf("2026-04-10"), EndDate: dateOf("2026-05-10")},
	})
	require.NoError(t, err)
	assert.True(t, resp.SRUpdated)
	assert.True(t, resp.POUpdated)

	row, err := f.chains.Get(ctx, c.pr.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PRStatusApproved, row.PRStatus)
	require.NotNil(t, row.SRStartDate)
	assert.Equal(t, "2026-04-01", row.SRStartDate.Format("2006-01-02"))
	assert.Nil(t, row.SREndDate)
	require.NotNil(t, row.POEndDate)
	assert.Equal(t, "2026-05-10", row.POEndDate.Format("2006-01-02"))

	assert.Contains(t, f.notifier.names(), service.EventChainUpdated)
}

func TestApplyUpdate_POFailureRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	c := f.createChain(t)
	ctx := context.Background()
	errForced := failUpdatesOn(t, f.db, "purchase_orders")

	_, err := f.chains.ApplyUpdate(ctx, c.pr.ID, dto.CascadeUpdateRequest{
		PRStatus: model.PRStatusApproved,
		SR:       &dto.StageUpdateRequest{Number: c.sr.SRNumber, Status: "Closed", StartDate: dateOf("2026-04-01")},
		PO:       &dto.StageUpdateRequest{Number: c.po.PONumber, Status: "New"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrTransactionFailure)
	assert.ErrorIs(t, err, errForced)

	var cerr *service.CascadeError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "po", cerr.Stage)
	assert.Equal(t, c.pr.ID, cerr.PRID)

	pr, err := f.prs.GetByID(ctx, c.pr.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PRStatusPending, pr.Status)

	sr, err := f.srs.GetByNumber(ctx, c.sr.SRNumber)
	require.NoError(t, err)
	assert.Equal(t, model.SRStatusInProgress, sr.Status)
	assert.Nil(t, sr.StartDate)

	assert.NotContains(t, f.notifier.names(), service.EventChainUpdated)
}

func TestApplyUpdate_RejectsStageFromAnotherChain(t *testing.T) {
	f := newFixture(t)
	a := f.createChain(t)
	b := f.createChain(t)
	ctx := context.Background()

	_, err := f.chains.ApplyUpdate(ctx, a.pr.ID, dto.CascadeUpdateRequest{
		PRStatus: model.PRStatusRejected,
		SR:       &dto.StageUpdateRequest{Number: b.sr.SRNumber, Status: "Closed"},
	})
	assert.ErrorIs(t, err, service.ErrUnlinkedReference)
	assert.ErrorIs(t, err, service.ErrTransactionFailure)

	_, err = f.chains.ApplyUpdate(ctx, a.pr.ID, dto.CascadeUpdateRequest{
		PRStatus: model.PRStatusRejected,
		PO:       &dto.StageUpdateRequest{Number: b.po.PONumber, Status: "Cancelled"},
	})
	assert.ErrorIs(t, err, service.ErrUnlinkedReference)

	pr, err := f.prs.GetByID(ctx, a.pr.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PRStatusPending, pr.Status)
}

func TestApplyUpdate_UnknownStageKeyIsSkipped(t *testing.T) {
	f := newFixture(t)
	c := f.createChain(t)

	resp, err := f.chains.ApplyUpdate(context.Background(), c.pr.ID, dto.CascadeUpdateRequest{
		PRStatus: model.PRStatusCompleted,
		SR:       &dto.StageUpdateRequest{Number: "SR-19990101-1000", Status: "Closed"},
		PO:       &dto.StageUpdateRequest{Number: ""},
	})
	require.NoError(t, err)
	assert.False(t, resp.SRUpdated)
	assert.False(t, resp.POUpdated)

	pr, err := f.prs.GetByID(context.Background(), c.pr.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PRStatusCompleted, pr.Status)
}

func TestApplyUpdate_BlankStageStatusKeepsStoredStatus(t *testing.T) {
	f := newFixture(t)
	c := f.createChain(t)
	ctx := context.Background()

	_, err := f.chains.ApplyUpdate(ctx, c.pr.ID, dto.CascadeUpdateRequest{
		PRStatus: model.PRStatusApproved,
		PO:       &dto.StageUpdateRequest{Number: c.po.PONumber, StartDate: dateOf("2026-06-01")},
	})
	require.NoError(t, err)

	row, err := f.chains.Get(ctx, c.pr.ID)
	require.NoError(t, err)
	require.NotNil(t, row.POStatus)
	assert.Equal(t, model.POStatusNew, *row.POStatus)
	require.NotNil(t, row.POStartDate)
}

func TestApplyUpdate_UnknownPRIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.chains.ApplyUpdate(context.Background(), 404, dto.CascadeUpdateRequest{PRStatus: "Approved"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NotErrorIs(t, err, service.ErrTransactionFailure)
}

// ── Deletion and deliveries ──────────────────────────────────────────────────

func TestDeletePR_RemovesChainFromViewOnly(t *testing.T) {
	f := newFixture(t)
	c := f.createChain(t)
	ctx := context.Background()

	require.NoError(t, f.chains.Delete(ctx, c.pr.ID))

	_, err := f.chains.Get(ctx, c.pr.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	sr, err := f.srs.GetByNumber(ctx, c.sr.SRNumber)
	require.NoError(t, err)
	assert.Equal(t, c.pr.PRNumber, *sr.PRReference)

	assert.ErrorIs(t, f.chains.Delete(ctx, c.pr.ID), repository.ErrNotFound)
}

func TestDelivery_UpdateStatusAndDelete(t *testing.T) {
	f := newFixture(t)
	c := f.createChain(t)
	ctx := context.Background()
	id := c.po.Delivery.ID

	d, err := f.delivery.UpdateStatus(ctx, id, dto.UpdateDeliveryRequest{Status: model.DeliveryOnTrack})
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryOnTrack, d.Status)
	assert.Contains(t, f.notifier.names(), service.EventDeliveryUpdated)

	rows, err := f.delivery.List(ctx, dto.ListFilter{Status: model.DeliveryOnTrack})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, f.delivery.Delete(ctx, id))
	_, err = f.delivery.UpdateStatus(ctx, id, dto.UpdateDeliveryRequest{Status: model.DeliveryLate})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	row, err := f.chains.Get(ctx, c.pr.ID)
	require.NoError(t, err)
	assert.Nil(t, row.DeliveryStatus)
}
