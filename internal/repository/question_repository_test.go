package repository

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"testing/fstest"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCategories = `[
	{"id": "traffic-signs", "name": "Traffic signs", "difficulty": "easy", "question_count": 99},
	{"id": "priority", "name": "Priority", "difficulty": "medium"},
	{"id": "parking", "name": "Parking", "difficulty": "easy"}
]`

const testSigns = `[
	{"id": "ts_001", "question": "Q1", "options": ["a", "b", "c"], "correct_answer": 0, "difficulty": "easy", "points": 1},
	{"id": "ts_002", "question": "Q2", "options": ["a", "b"], "correct_answer": 1, "difficulty": "medium", "points": 2},
	{"id": "ts_003", "question": "Q3", "options": ["a", "b", "c"], "correct_answer": 2, "difficulty": "easy", "points": 1},
	{"id": "ts_004", "question": "Q4", "options": ["a", "b", "c", "d"], "correct_answer": 3, "difficulty": "hard", "points": 3}
]`

const testPriority = `[
	{"id": "pr_001", "category_id": "priority", "question": "P1", "options": ["a", "b"], "correct_answer": 0, "difficulty": "medium", "points": 1},
	{"id": "pr_002", "question": "P2", "options": ["a", "b"], "correct_answer": 1, "difficulty": "easy", "points": 1}
]`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"categories.json":              {Data: []byte(testCategories)},
		"questions/traffic-signs.json": {Data: []byte(testSigns)},
		"questions/priority.json":      {Data: []byte(testPriority)},
	}
}

func newTestRepo(t *testing.T) (*QuestionRepository, *bytes.Buffer) {
	t.Helper()
	catalog, err := LoadCatalogFS(testFS())
	require.NoError(t, err)

	var buf bytes.Buffer
	return NewQuestionRepository(catalog, zerolog.New(&buf)), &buf
}

func ids(qs []model.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestLoadCatalogFS(t *testing.T) {
	repo, _ := newTestRepo(t)

	cats := repo.ListCategories()
	require.Len(t, cats, 3)
	assert.Equal(t, []string{"traffic-signs", "priority", "parking"}, []string{cats[0].ID, cats[1].ID, cats[2].ID})
	assert.Equal(t, 4, cats[0].QuestionCount, "count is derived from the loaded questions")
	assert.Equal(t, 0, cats[2].QuestionCount)

	q, ok := repo.FindQuestion("ts_002", "traffic-signs")
	require.True(t, ok)
	assert.Equal(t, "traffic-signs", q.CategoryID, "category id inherited from the file")

	catalog, err := LoadCatalogFS(testFS())
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.CategoryCount())
	assert.Equal(t, 6, catalog.QuestionCount())
}

func TestLoadCatalogFSUnavailable(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing categories", fstest.MapFS{}},
		{"malformed categories", fstest.MapFS{"categories.json": {Data: []byte(`{`)}}},
		{"malformed questions", fstest.MapFS{
			"categories.json":        {Data: []byte(`[{"id": "parking"}]`)},
			"questions/parking.json": {Data: []byte(`[{]`)},
		}},
		{"correct option out of range", fstest.MapFS{
			"categories.json":        {Data: []byte(`[{"id": "parking"}]`)},
			"questions/parking.json": {Data: []byte(`[{"id": "pk_1", "options": ["a", "b"], "correct_answer": 2, "difficulty": "easy", "points": 1}]`)},
		}},
		{"single option", fstest.MapFS{
			"categories.json":        {Data: []byte(`[{"id": "parking"}]`)},
			"questions/parking.json": {Data: []byte(`[{"id": "pk_1", "options": ["a"], "correct_answer": 0, "difficulty": "easy", "points": 1}]`)},
		}},
		{"zero points", fstest.MapFS{
			"categories.json":        {Data: []byte(`[{"id": "parking"}]`)},
			"questions/parking.json": {Data: []byte(`[{"id": "pk_1", "options": ["a", "b"], "correct_answer": 0, "difficulty": "easy", "points": 0}]`)},
		}},
		{"duplicate question", fstest.MapFS{
			"categories.json": {Data: []byte(`[{"id": "parking"}]`)},
			"questions/parking.json": {Data: []byte(`[
				{"id": "pk_1", "options": ["a", "b"], "correct_answer": 0, "difficulty": "easy", "points": 1},
				{"id": "pk_1", "options": ["a", "b"], "correct_answer": 0, "difficulty": "easy", "points": 1}
			]`)},
		}},
		{"duplicate category", fstest.MapFS{"categories.json": {Data: []byte(`[{"id": "parking"}, {"id": "parking"}]`)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalogFS(tt.fsys)
			assert.ErrorIs(t, err, ErrCatalogUnavailable)
		})
	}
}

func TestGetCategory(t *testing.T) {
	repo, _ := newTestRepo(t)

	cat, ok := repo.GetCategory("priority")
	assert.True(t, ok)
	assert.Equal(t, "Priority", cat.Name)

	_, ok = repo.GetCategory("nope")
	assert.False(t, ok)
}

func TestListQuestions(t *testing.T) {
	repo, _ := newTestRepo(t)

	assert.Equal(t, []string{"ts_001", "ts_002", "ts_003", "ts_004"}, ids(repo.ListQuestions("traffic-signs")))
	assert.Empty(t, repo.ListQuestions("parking"))
	assert.Empty(t, repo.ListQuestions("unknown"))
}

func TestListAllQuestionsFollowsCategoryOrder(t *testing.T) {
	repo, _ := newTestRepo(t)

	assert.Equal(t,
		[]string{"ts_001", "ts_002", "ts_003", "ts_004", "pr_001", "pr_002"},
		ids(repo.ListAllQuestions()))
}

func TestFindQuestionMissingLogsWarning(t *testing.T) {
	repo, logs := newTestRepo(t)

	_, ok := repo.FindQuestion("ts_999", "traffic-signs")
	assert.False(t, ok)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "ts_999")
	assert.Contains(t, logs.String(), "ts_004")
}

func TestReturnedQuestionsDoNotAliasCatalog(t *testing.T) {
	repo, _ := newTestRepo(t)

	qs := repo.ListQuestions("traffic-signs")
	qs[0].Options[0] = "mutated"
	qs[0].QuestionText = "mutated"

	fresh := repo.ListQuestions("traffic-signs")
	assert.Equal(t, "a", fresh[0].Options[0])
	assert.Equal(t, "Q1", fresh[0].QuestionText)
}

func TestSampleCapsAtAvailable(t *testing.T) {
	repo, _ := newTestRepo(t)

	got := repo.Sample(50, "traffic-signs")
	assert.ElementsMatch(t, []string{"ts_001", "ts_002", "ts_003", "ts_004"}, ids(got))

	assert.Empty(t, repo.Sample(5, "parking"))
	assert.Empty(t, repo.Sample(0, "traffic-signs"))
	assert.Empty(t, repo.Sample(-3, "traffic-signs"))
}

func TestSampleGlobalPoolWithoutRepeats(t *testing.T) {
	repo, _ := newTestRepo(t)

	for i := 0; i < 50; i++ {
		got := repo.Sample(4, "")
		require.Len(t, got, 4)

		seen := map[string]bool{}
		for _, q := range got {
			assert.False(t, seen[q.ID], "duplicate %s", q.ID)
			seen[q.ID] = true
		}
	}
}

func TestSampleDoesNotReorderCatalog(t *testing.T) {
	repo, _ := newTestRepo(t)
	rng := rand.New(rand.NewPCG(7, 11))
	repo = repo.WithShuffle(rng.Shuffle)

	for i := 0; i < 10; i++ {
		_ = repo.Sample(2, "traffic-signs")
	}
	assert.Equal(t, []string{"ts_001", "ts_002", "ts_003", "ts_004"}, ids(repo.ListQuestions("traffic-signs")))
}

func TestSampleOrderVaries(t *testing.T) {
	repo, _ := newTestRepo(t)
	rng := rand.New(rand.NewPCG(1, 2))
	repo = repo.WithShuffle(rng.Shuffle)

	first := ids(repo.Sample(6, ""))
	varied := false
	for i := 0; i < 20 && !varied; i++ {
		varied = !assert.ObjectsAreEqual(first, ids(repo.Sample(6, "")))
	}
	assert.True(t, varied, "successive samples should not always share an order")
}

func TestFilterByDifficulty(t *testing.T) {
	repo, _ := newTestRepo(t)

	assert.Equal(t, []string{"ts_001", "ts_003"}, ids(repo.FilterByDifficulty(model.DifficultyEasy, "traffic-signs")))
	assert.Equal(t, []string{"ts_001", "ts_003", "pr_002"}, ids(repo.FilterByDifficulty(model.DifficultyEasy, "")))
	assert.Empty(t, repo.FilterByDifficulty(model.DifficultyHard, "priority"))
}

func TestShippedCatalogLoads(t *testing.T) {
	catalog, err := LoadCatalog("../../data")
	require.NoError(t, err)
	assert.Equal(t, 8, catalog.CategoryCount())

	repo := NewQuestionRepository(catalog, zerolog.Nop())
	for _, c := range repo.ListCategories() {
		assert.Positive(t, c.QuestionCount, c.ID)
	}
}

func TestQuestionIDsAreScopedToCategory(t *testing.T) {
	shared := func(cat, text string) model.Question {
		return model.Question{ID: "q_001", CategoryID: cat, QuestionText: text, Options: []string{"a", "b"},
			Difficulty: model.DifficultyEasy, Points: 1}
	}
	catalog, err := NewCatalog(
		[]model.Category{{ID: "parking"}, {ID: "priority"}},
		map[string][]model.Question{
			"parking":  {shared("parking", "P")},
			"priority": {shared("priority", "R")},
		},
	)
	require.NoError(t, err)
	repo := NewQuestionRepository(catalog, zerolog.Nop())

	p, ok := repo.FindQuestion("q_001", "parking")
	require.True(t, ok)
	r, ok := repo.FindQuestion("q_001", "priority")
	require.True(t, ok)
	assert.Equal(t, "P", p.QuestionText)
	assert.Equal(t, "R", r.QuestionText)
}
