package service

import (
	"context"
	"time"

	"supplyease/internal/dto"
	"supplyease/internal/repository"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 30 * time.Second
)

// Cache is the read-through store for computed summaries; satisfied by
// *infra.JSONCache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// evictDashboard drops the cached summary after a write that changes spending
// or a status count. cache may be nil.
func evictDashboard(ctx context.Context, cache Cache) {
	if cache != nil {
		cache.Delete(ctx, dashboardCacheKey)
	}
}

type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo  repository.DashboardRepository
	cache Cache
}

// NewDashboardService builds the service; cache may be nil.
func NewDashboardService(repo repository.DashboardRepository, cache Cache) DashboardService {
	return &dashboardService{repo: repo, cache: cache}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	var cached dto.DashboardResponse
	if s.cache != nil && s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return &cached, nil
	}

	spending, err := s.repo.TotalSpending(ctx)
	if err != nil {
		return nil, err
	}
	sr, err := s.repo.SourcingStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := s.repo.DeliveryStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Spending:       spending,
		SRStatus:       toStatusCounts(sr),
		DeliveryStatus: toStatusCounts(ds),
	}
	if s.cache != nil {
		s.cache.Set(ctx, dashboardCacheKey, resp, dashboardCacheTTL)
	}
	return resp, nil
}

func toStatusCounts(in []repository.StatusCount) []dto.StatusCount {
	out := make([]dto.StatusCount, len(in))
	for i, c := range in {
		out[i] = dto.StatusCount{Status: c.Status, Count: c.Count}
	}
	return out
}
