//go:build integration

package router_test

// End-to-end tests against real Postgres and Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"net/http"
	"testing"
	"time"

	"supplyease/internal/config"
	"supplyease/internal/infra"
	"supplyease/internal/repository"
	"supplyease/internal/router"
	"supplyease/internal/service"
	"supplyease/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupContainers(t *testing.T) (*testEnv, *redis.Client) {
	t.Helper()
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("supplyease_test"),
		tcPostgres.WithUsername("supplyease"),
		tcPostgres.WithPassword("supplyease"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                  "test",
		JWTSecret:            "test-secret-key",
		JWTExpirationHours:   1,
		DefaultAdminPassword: "admin123",
		IDMaxAttempts:        3,
		DatabaseURL:          pgURL,
		RedisURL:             rdURL,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	auth := service.NewAuthService(repository.NewUserRepository(db), cfg)
	require.NoError(t, auth.EnsureAdmin(ctx))

	env := &testEnv{engine: router.New(cfg, db, rdb, infra.NewCircuitBreaker(3, time.Minute)), cfg: cfg}
	env.token = env.login(t, "admin", "admin123")
	return env, rdb
}

func TestE2E_ChainOnPostgres(t *testing.T) {
	env, rdb := setupContainers(t)
	ctx := context.Background()

	w := env.do(t, http.MethodPost, "/v1/purchase-requests", map[string]any{"item_name": "Laptop", "quantity": 5, "budget": 1000}, env.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pr := decode[map[string]any](t, w)

	w = env.do(t, http.MethodPost, "/v1/sourcing-requests", map[string]any{"pr_reference": pr["pr_number"], "start_date": ""}, env.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sr := decode[map[string]any](t, w)

	w = env.do(t, http.MethodPost, "/v1/purchase-orders", map[string]any{"sr_reference": sr["sr_number"], "supplier_name": "ACME", "total_amount": "950.00"}, env.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	po := decode[map[string]any](t, w)

	// Key reservations land in Redis.
	n, err := rdb.Exists(ctx, "idgen:"+po["po_number"].(string)).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// po.created was queued for the notification worker.
	queued, err := rdb.LLen(ctx, worker.QueueNotifications).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, queued)

	w = env.do(t, http.MethodGet, "/v1/chains?search="+sr["sr_number"].(string), nil, env.token)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]map[string]any](t, w)
	require.Len(t, rows, 1)
	assert.Equal(t, "Processing", rows[0]["delivery_status"])
	assert.Equal(t, "950", rows[0]["total_amount"])

	w = env.do(t, http.MethodGet, "/v1/dashboard", nil, env.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "950", decode[map[string]any](t, w)["spending"])

	w = env.do(t, http.MethodGet, "/health", nil, "")
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"connected","mail":"closed"}`, w.Body.String())
}

func TestE2E_WorkerDrainsQueueToDLQWithoutMailer(t *testing.T) {
	_, rdb := setupContainers(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, worker.NewDispatcher(rdb).Notify(ctx, service.EventChainUpdated, map[string]string{"pr_id": "1"}))
	require.NoError(t, rdb.LPush(ctx, worker.QueueNotifications, `{"type":"unknown","payload":{}}`).Err())

	wg := worker.StartWorkerPool(ctx, rdb, 1, map[string]worker.Handler{
		worker.JobNotification: worker.NewNotificationWorker(nil, ""),
	})

	require.Eventually(t, func() bool {
		n, _ := rdb.LLen(ctx, worker.QueueNotifications).Result()
		d, _ := worker.DLQLength(ctx, rdb, worker.QueueNotifications)
		return n == 0 && d == 1
	}, 15*time.Second, 100*time.Millisecond)

	cancel()
	wg.Wait()
}
