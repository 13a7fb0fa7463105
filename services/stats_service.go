package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"flowai-dashboard/models"
	"flowai-dashboard/utils"
)

// Aggregates is what the statistics widgets display.
type Aggregates struct {
	Reputation     int64     `json:"reputation"`
	CompletedTasks int64     `json:"completed_tasks"`
	TotalEarnings  string    `json:"total_earnings"`
	EarningsETH    string    `json:"earnings_eth"`
	BalanceWei     string    `json:"balance_wei"`
	BalanceETH     string    `json:"balance_eth"`
	IsActive       bool      `json:"is_active"`
	At             time.Time `json:"at"`
}

// ChartPoint is one sample of the performance chart.
type ChartPoint struct {
	At             time.Time `json:"at"`
	Reputation     int64     `json:"reputation"`
	CompletedTasks int64     `json:"completed_tasks"`
	EarningsETH    float64   `json:"earnings_eth"`
	BalanceETH     float64   `json:"balance_eth"`
}

// AggregateSink receives refreshed widget data.
type AggregateSink interface {
	PublishAggregates(agg Aggregates)
	PublishNetwork(info models.NetworkInfo)
}

// StatsService refreshes account statistics and keeps snapshots for the chart.
type StatsService struct {
	Backend Backend
	DB      *gorm.DB
	Sink    AggregateSink

	mu      sync.RWMutex
	account string
}

func NewStatsService(backend Backend, db *gorm.DB, sink AggregateSink) *StatsService {
	return &StatsService{Backend: backend, DB: db, Sink: sink}
}

func (s *StatsService) SetAccount(address string) {
	s.mu.Lock()
	s.account = address
	s.mu.Unlock()
}

func (s *StatsService) Account() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Refresh fetches stats and balance together, stores a snapshot and publishes the result.
func (s *StatsService) Refresh(ctx context.Context) error {
	var (
		stats   *models.WorkerStats
		balance *models.Balance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.Backend.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		balance, err = s.Backend.Balance(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to refresh statistics: %w", err)
	}

	agg := Aggregates{
		Reputation:     stats.Reputation,
		CompletedTasks: stats.CompletedTasks,
		TotalEarnings:  stats.TotalEarnings.String(),
		EarningsETH:    utils.FormatETH(stats.TotalEarnings.Decimal),
		BalanceWei:     balance.BalanceWei.String(),
		BalanceETH:     utils.FormatETH(balance.BalanceWei.Decimal),
		IsActive:       stats.IsActive,
		At:             time.Now().UTC(),
	}

	account := s.Account()
	if account == "" {
		account = stats.Address
	}

	if s.DB != nil {
		snap := models.StatsSnapshot{
			ID:             uuid.NewString(),
			Account:        account,
			Reputation:     agg.Reputation,
			CompletedTasks: agg.CompletedTasks,
			TotalEarnings:  agg.TotalEarnings,
			BalanceWei:     agg.BalanceWei,
			CreatedAt:      agg.At,
		}
		if err := s.DB.Create(&snap).Error; err != nil {
			log.Printf("❌ [STATS] Failed to store snapshot: %v", err)
		}
	}

	if s.Sink != nil {
		s.Sink.PublishAggregates(agg)
	}
	return nil
}

// RefreshNetwork fetches chain connectivity info and publishes it.
func (s *StatsService) RefreshNetwork(ctx context.Context) error {
	info, err := s.Backend.NetworkInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh network info: %w", err)
	}
	if s.Sink != nil {
		s.Sink.PublishNetwork(*info)
	}
	return nil
}

// Chart returns up to limit most recent snapshots, oldest first.
func (s *StatsService) Chart(ctx context.Context, limit int) ([]ChartPoint, error) {
	points := []ChartPoint{}
	if s.DB == nil {
		return points, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	q := s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if account := s.Account(); account != "" {
		q = q.Where("account = ?", account)
	}

	var snaps []models.StatsSnapshot
	if err := q.Find(&snaps).Error; err != nil {
		return nil, fmt.Errorf("failed to load chart snapshots: %w", err)
	}

	for i := len(snaps) - 1; i >= 0; i-- {
		snap := snaps[i]
		points = append(points, ChartPoint{
			At:             snap.CreatedAt,
			Reputation:     snap.Reputation,
			CompletedTasks: snap.CompletedTasks,
			EarningsETH:    weiStringToETH(snap.TotalEarnings),
			BalanceETH:     weiStringToETH(snap.BalanceWei),
		})
	}
	return points, nil
}

func weiStringToETH(raw string) float64 {
	w, err := models.ParseWei(raw)
	if err != nil {
		return 0
	}
	eth, _ := utils.WeiToETH(w.Decimal).Float64()
	return eth
}
