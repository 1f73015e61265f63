package service

import (
	"context"
	"testing"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResults struct {
	records   []model.ResultRecord
	lastLimit int
}

func (f *fakeResults) ListByUser(_ context.Context, _ int, limit int) ([]model.ResultRecord, error) {
	f.lastLimit = limit
	return f.records, nil
}

type fakeMistakeList []model.MistakeQuestion

func (f fakeMistakeList) ListByUser(context.Context, int) ([]model.MistakeQuestion, error) {
	return f, nil
}

func TestComputeStatistics(t *testing.T) {
	results := []model.ResultRecord{
		{CategoryID: "traffic-signs", Percentage: 90, Passed: true},
		{CategoryID: "traffic-signs", Percentage: 45, Passed: false},
		{CategoryID: "exam", Percentage: 85, Passed: true},
	}

	stats := ComputeStatistics(results)
	assert.Equal(t, 3, stats.TotalTests)
	assert.Equal(t, 2, stats.PassedTests)
	assert.Equal(t, 73.3, stats.AverageScore)

	require.Contains(t, stats.CategoryStats, "traffic-signs")
	signs := stats.CategoryStats["traffic-signs"]
	assert.Equal(t, 2, signs.Total)
	assert.Equal(t, 1, signs.Passed)
	assert.Equal(t, 135.0, signs.TotalScore)
	assert.Equal(t, 67.5, signs.AverageScore)

	assert.Equal(t, 1, stats.CategoryStats["exam"].Total)
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil)
	assert.Zero(t, stats.TotalTests)
	assert.Zero(t, stats.AverageScore)
	assert.NotNil(t, stats.CategoryStats)
	assert.Empty(t, stats.CategoryStats)
}

func TestHistoryAndMistakes(t *testing.T) {
	results := &fakeResults{records: []model.ResultRecord{{CategoryID: "parking", Percentage: 80, Passed: true}}}
	svc := NewResultService(results, fakeMistakeList(nil))

	history, err := svc.History(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, HistoryLimit, results.lastLimit)
	assert.Len(t, history.Results, 1)
	assert.Equal(t, 80.0, history.Statistics.AverageScore)

	mistakes, err := svc.Mistakes(context.Background(), 4)
	require.NoError(t, err)
	assert.NotNil(t, mistakes)
	assert.Empty(t, mistakes)

	empty, err := NewResultService(&fakeResults{}, fakeMistakeList(nil)).History(context.Background(), 4)
	require.NoError(t, err)
	assert.NotNil(t, empty.Results)
}
