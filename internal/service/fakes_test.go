package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
)

// stubOracle satisfies grading.Oracle with a canned response.
type stubOracle struct {
	resp string
	err  error
}

func (s *stubOracle) Generate(ctx context.Context, systemPrompt, userPrompt string, opts oracle.Options) (string, error) {
	return s.resp, s.err
}

// fakeAssignmentStore is an in-memory AssignmentStore mirroring the guarded
// update semantics of the Mongo repository.
type fakeAssignmentStore struct {
	mu          sync.Mutex
	seq         int
	items       map[string]*models.Assignment
	failReplace bool
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{items: make(map[string]*models.Assignment)}
}

func (f *fakeAssignmentStore) Insert(ctx context.Context, a *models.Assignment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	a.ID = fmt.Sprintf("a%03d", f.seq)
	clone := *a
	f.items[a.ID] = &clone
	return a.ID, nil
}

func (f *fakeAssignmentStore) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAssignmentStore) Find(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Assignment
	for _, a := range f.items {
		if filter.Course != "" && a.Course != filter.Course {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Type != "" && a.AssignmentType != filter.Type {
			continue
		}
		if filter.Student != "" && a.StudentEmail != filter.Student && a.StudentEmail != "" {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAssignmentStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeAssignmentStore) CountCompleted(ctx context.Context, student, course, assignmentType string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.items {
		if a.Status != models.StatusCompleted || a.StudentEmail != student {
			continue
		}
		if course != "" && a.Course != course {
			continue
		}
		if assignmentType != "" && a.AssignmentType != assignmentType {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeAssignmentStore) Complete(ctx context.Context, id, student string, c models.Completion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return models.ErrNotFound
	}
	if a.Status == models.StatusCompleted {
		return models.ErrAlreadyCompleted
	}
	if a.StudentEmail != "" && a.StudentEmail != student {
		return models.ErrUnauthorized
	}
	a.Status = models.StatusCompleted
	a.StudentEmail = student
	a.Score = &c.Score
	a.Rating = &c.Rating
	a.Feedback = c.Feedback
	completedAt := c.CompletedAt
	a.CompletedAt = &completedAt
	a.NextDifficulty = c.NextDifficulty
	if c.StudentAnswer != "" {
		a.StudentAnswer = c.StudentAnswer
	}
	if c.Results != nil {
		a.Results = c.Results
	}
	return nil
}

func (f *fakeAssignmentStore) ApplyOverride(ctx context.Context, id string, score, rating *float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return models.ErrNotFound
	}
	if score != nil {
		v := *score
		a.Score = &v
	}
	if rating != nil {
		v := *rating
		a.Rating = &v
	}
	return nil
}

func (f *fakeAssignmentStore) ReplaceQuizResults(ctx context.Context, id string, results []models.QuestionResult, score, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReplace {
		return errors.New("write failed")
	}
	a, ok := f.items[id]
	if !ok {
		return models.ErrNotFound
	}
	a.Results = results
	a.Score = &score
	a.Rating = &rating
	return nil
}

func (f *fakeAssignmentStore) AverageRating(ctx context.Context, course string) (float64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum float64
	var n int64
	for _, a := range f.items {
		if a.Course != course || a.Status != models.StatusCompleted || a.Rating == nil {
			continue
		}
		sum += *a.Rating
		n++
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}

type fakeCourseStore struct {
	mu      sync.Mutex
	ratings map[string]float64
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{ratings: make(map[string]float64)}
}

func (f *fakeCourseStore) SetRating(ctx context.Context, course string, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratings[course] = rating
	return nil
}

type fakeUserStore struct {
	names map[string]string
}

func (f *fakeUserStore) DisplayName(ctx context.Context, email string) (string, error) {
	if name, ok := f.names[email]; ok {
		return name, nil
	}
	return "", models.ErrNotFound
}

type fakeReportStore struct {
	mu    sync.Mutex
	seq   int
	items map[string]*models.Report
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{items: make(map[string]*models.Report)}
}

func (f *fakeReportStore) Insert(ctx context.Context, r *models.Report) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	r.ID = fmt.Sprintf("r%03d", f.seq)
	clone := *r
	f.items[r.ID] = &clone
	return r.ID, nil
}

func (f *fakeReportStore) FindByID(ctx context.Context, id string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReportStore) Find(ctx context.Context, status string) ([]models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Report
	for _, r := range f.items {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReportStore) Resolve(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return models.ErrNotFound
	}
	if r.Status == models.ReportStatusResolved {
		return models.ErrReportResolved
	}
	r.Status = models.ReportStatusResolved
	r.ResolvedAt = &at
	return nil
}

type fakeGameStore struct {
	mu     sync.Mutex
	events []models.GameScoreEvent
}

func (f *fakeGameStore) Insert(ctx context.Context, ev *models.GameScoreEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev.ID = fmt.Sprintf("g%03d", len(f.events)+1)
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakeGameStore) TopTotals(ctx context.Context, gameType string, n int) ([]models.LeaderboardRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[string]*models.LeaderboardRow)
	var order []string
	for _, ev := range f.events {
		if ev.GameType != gameType {
			continue
		}
		row, ok := totals[ev.StudentEmail]
		if !ok {
			row = &models.LeaderboardRow{StudentEmail: ev.StudentEmail}
			totals[ev.StudentEmail] = row
			order = append(order, ev.StudentEmail)
		}
		row.TotalScore += ev.Score
		row.Rounds++
		row.PlayerName = ev.PlayerName
	}
	rows := make([]models.LeaderboardRow, 0, len(order))
	for _, email := range order {
		rows = append(rows, *totals[email])
	}
	// Stable sort keeps first-appearance order on ties.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalScore > rows[j].TotalScore })
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) Publish(eventType string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
	return nil
}

func (f *fakePublisher) published(eventType string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == eventType {
			return true
		}
	}
	return false
}
