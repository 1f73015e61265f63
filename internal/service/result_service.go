package service

import (
	"context"
	"math"

	"github.com/easy2drive/quiz-backend/internal/model"
)

// HistoryLimit caps how many recent results a history request returns.
const HistoryLimit = 50

// ResultLister reads persisted results.
type ResultLister interface {
	ListByUser(ctx context.Context, userID, limit int) ([]model.ResultRecord, error)
}

// MistakeLister reads a user's mistake counters.
type MistakeLister interface {
	ListByUser(ctx context.Context, userID int) ([]model.MistakeQuestion, error)
}

// ResultService serves result history and mistake lists.
type ResultService struct {
	results  ResultLister
	mistakes MistakeLister
}

// NewResultService creates a new ResultService.
func NewResultService(results ResultLister, mistakes MistakeLister) *ResultService {
	return &ResultService{results: results, mistakes: mistakes}
}

// History returns the latest results of userID with their statistics.
func (s *ResultService) History(ctx context.Context, userID int) (*model.History, error) {
	results, err := s.results.ListByUser(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.ResultRecord{}
	}
	return &model.History{
		Results:    results,
		Statistics: ComputeStatistics(results),
	}, nil
}

// Mistakes lists the questions userID has missed.
func (s *ResultService) Mistakes(ctx context.Context, userID int) ([]model.MistakeQuestion, error) {
	mistakes, err := s.mistakes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if mistakes == nil {
		mistakes = []model.MistakeQuestion{}
	}
	return mistakes, nil
}

// ComputeStatistics summarizes results. The overall average is rounded to one
// decimal; per-category averages are left unrounded.
func ComputeStatistics(results []model.ResultRecord) model.Statistics {
	stats := model.Statistics{
		TotalTests:    len(results),
		CategoryStats: make(map[string]*model.CategoryStats),
	}

	var sum float64
	for _, r := range results {
		sum += r.Percentage
		if r.Passed {
			stats.PassedTests++
		}

		cs, ok := stats.CategoryStats[r.CategoryID]
		if !ok {
			cs = &model.CategoryStats{}
			stats.CategoryStats[r.CategoryID] = cs
		}
		cs.Total++
		cs.TotalScore += r.Percentage
		if r.Passed {
			cs.Passed++
		}
	}

	for _, cs := range stats.CategoryStats {
		cs.AverageScore = cs.TotalScore / float64(cs.Total)
	}
	if len(results) > 0 {
		stats.AverageScore = math.Round(sum/float64(len(results))*10) / 10
	}
	return stats
}
