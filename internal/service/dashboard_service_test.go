package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"supplyease/internal/dto"
	"supplyease/internal/model"
	"supplyease/internal/repository"
	"supplyease/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	data map[string][]byte
	ttl  time.Duration
}

func (c *mapCache) Get(_ context.Context, key string, dest any) bool {
	b, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *mapCache) Set(_ context.Context, key string, v any, ttl time.Duration) {
	b, _ := json.Marshal(v)
	c.data[key] = b
	c.ttl = ttl
}

func (c *mapCache) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.data, k)
	}
}

func (c *mapCache) has(key string) bool {
	_, ok := c.data[key]
	return ok
}

func TestDashboardSummary_AggregatesAndCaches(t *testing.T) {
	f := newFixture(t)
	f.createChain(t)
	f.createChain(t)
	ctx := context.Background()

	svc := service.NewDashboardService(repository.NewDashboardRepository(f.db), f.cache)

	got, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1900", got.Spending.String())
	assert.Equal(t, []dto.StatusCount{{Status: model.SRStatusInProgress, Count: 2}}, got.SRStatus)
	assert.Equal(t, []dto.StatusCount{{Status: model.DeliveryProcessing, Count: 2}}, got.DeliveryStatus)
	assert.Equal(t, 30*time.Second, f.cache.ttl)
	assert.True(t, f.cache.has("dashboard:summary"))

	// Rows written behind the services' back stay hidden until the entry expires.
	require.NoError(t, f.db.Model(&model.PurchaseOrder{}).Where("1 = 1").Update("total_amount", 0).Error)
	again, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1900", again.Spending.String())
}

func TestDashboardSummary_WritesEvictCachedSummary(t *testing.T) {
	f := newFixture(t)
	c := f.createChain(t)
	ctx := context.Background()
	svc := service.NewDashboardService(repository.NewDashboardRepository(f.db), f.cache)

	_, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.True(t, f.cache.has("dashboard:summary"))

	// A new PO changes spending.
	f.createChain(t)
	assert.False(t, f.cache.has("dashboard:summary"))
	got, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1900", got.Spending.String())

	// A delivery update changes the status counts.
	require.NotNil(t, c.po.Delivery)
	_, err = f.delivery.UpdateStatus(ctx, c.po.Delivery.ID, dto.UpdateDeliveryRequest{Status: model.DeliveryDelivered})
	require.NoError(t, err)
	assert.False(t, f.cache.has("dashboard:summary"))
	got, err = svc.Summary(ctx)
	require.NoError(t, err)
	assert.Contains(t, got.DeliveryStatus, dto.StatusCount{Status: model.DeliveryDelivered, Count: 1})
}
