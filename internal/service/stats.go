package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/notuna/order-service/internal/entities"
)

type StatsRepo interface {
	ListStatsRows(ctx context.Context, partyID int64, role entities.PartyRole) ([]entities.StatsRow, error)
}

// StatsEntry is one order in the sorted breakdown list. Date is the ISO day
// of the order, empty when the order carries no date.
type StatsEntry struct {
	Status entities.Status `json:"status"`
	Date   string          `json:"date"`
}

// Stats buckets a party's orders by status. Counts always covers the whole
// status vocabulary; TotalOrders equals the sum of the buckets.
type Stats struct {
	TotalOrders int
	Counts      map[entities.Status]int
	Orders      []StatsEntry
}

// FinanceStats extends Stats with per-status revenue.
type FinanceStats struct {
	TotalOrders int
	Counts      map[entities.Status]int
	Revenue     map[entities.Status]int
	Orders      []StatsEntry
}

type statsService struct {
	logger *slog.Logger
	repo   StatsRepo
}

func NewStatsService(logger *slog.Logger, repo StatsRepo) *statsService {
	return &statsService{
		logger: logger.With(slog.String("service", "stats")),
		repo:   repo,
	}
}

// Stats aggregates a party's orders. A party with no orders at all reports
// not-found, matching the lookup endpoints.
func (s *statsService) Stats(ctx context.Context, partyID int64, role entities.PartyRole) (Stats, error) {
	rows, err := s.repo.ListStatsRows(ctx, partyID, role)
	if err != nil {
		return Stats{}, err
	}
	if len(rows) == 0 {
		if role == entities.RoleSeller {
			return Stats{}, entities.ErrSellerNotFound
		}
		return Stats{}, entities.ErrBuyerNotFound
	}

	counts := newStatusBuckets()
	for _, row := range rows {
		if _, ok := counts[row.Status]; ok {
			counts[row.Status]++
		}
	}

	return Stats{
		TotalOrders: len(rows),
		Counts:      counts,
		Orders:      sortedEntries(rows),
	}, nil
}

// FinanceStats additionally sums revenue per status. Unlike Stats it reports
// empty buckets for a party with no orders.
func (s *statsService) FinanceStats(ctx context.Context, partyID int64, role entities.PartyRole) (FinanceStats, error) {
	rows, err := s.repo.ListStatsRows(ctx, partyID, role)
	if err != nil {
		return FinanceStats{}, err
	}

	counts := newStatusBuckets()
	revenue := newStatusBuckets()
	for _, row := range rows {
		if _, ok := counts[row.Status]; ok {
			counts[row.Status]++
			revenue[row.Status] += row.Price
		}
	}

	return FinanceStats{
		TotalOrders: len(rows),
		Counts:      counts,
		Revenue:     revenue,
		Orders:      sortedEntries(rows),
	}, nil
}

func newStatusBuckets() map[entities.Status]int {
	buckets := make(map[entities.Status]int, len(entities.AllStatuses))
	for _, status := range entities.AllStatuses {
		buckets[status] = 0
	}
	return buckets
}

// sortedEntries orders the breakdown by display priority, then by ascending
// date. Dateless orders sink below dated ones within the same status.
func sortedEntries(rows []entities.StatsRow) []StatsEntry {
	entries := make([]StatsEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, StatsEntry{
			Status: row.Status,
			Date:   statsDate(row.OrderDate),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Status.SortPriority(), entries[j].Status.SortPriority()
		if pi != pj {
			return pi < pj
		}
		if entries[i].Date == "" {
			return false
		}
		if entries[j].Date == "" {
			return true
		}
		return entries[i].Date < entries[j].Date
	})
	return entries
}

func statsDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
