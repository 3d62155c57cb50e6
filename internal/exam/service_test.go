package exam

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/apperror"
	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/event"
	"github.com/saulo-duarte/examly-api/internal/question"
	util "github.com/saulo-duarte/examly-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryExamRepo struct {
	mu      sync.Mutex
	exams   map[uuid.UUID]*Exam
	seq     int
	deleted []uuid.UUID
}

func newMemoryExamRepo() *memoryExamRepo {
	return &memoryExamRepo{exams: map[uuid.UUID]*Exam{}}
}

func (m *memoryExamRepo) Create(_ context.Context, e *Exam) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	cp := *e
	m.exams[e.ID] = &cp
	return nil
}

func (m *memoryExamRepo) FindByID(_ context.Context, id uuid.UUID) (*Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exams[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memoryExamRepo) List(_ context.Context) ([]*Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Exam
	for _, e := range m.exams {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryExamRepo) ListAvailable(_ context.Context, now time.Time) ([]*Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Exam
	for _, e := range m.exams {
		if e.IsAvailableAt(now) {
			cp := *e
			cp.Questions = nil
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (m *memoryExamRepo) Update(_ context.Context, e *Exam) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.exams[e.ID] = &cp
	return nil
}

func (m *memoryExamRepo) DeleteCascade(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exams[id]; !ok {
		return 0, ErrNotFound
	}
	delete(m.exams, id)
	m.deleted = append(m.deleted, id)
	return 0, nil
}

type fakeQuestions struct {
	bank map[uuid.UUID]*question.Question
}

func (f *fakeQuestions) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*question.Question, error) {
	seen := map[uuid.UUID]bool{}
	var out []*question.Question
	for _, id := range ids {
		if q, ok := f.bank[id]; ok && !seen[id] {
			seen[id] = true
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAttempts struct {
	byStudent map[uuid.UUID][]uuid.UUID
}

func (f *fakeAttempts) Exists(_ context.Context, studentID, examID uuid.UUID) (bool, error) {
	for _, id := range f.byStudent[studentID] {
		if id == examID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttempts) ExamIDsByStudent(_ context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	return f.byStudent[studentID], nil
}

var (
	adminID   = uuid.MustParse("8a3e1f5c-2b4d-4c6e-9f10-1a2b3c4d5e6f")
	studentID = uuid.MustParse("1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f")
	baseTime  = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	svc       ExamService
	repo      *memoryExamRepo
	bank      *fakeQuestions
	attempts  *fakeAttempts
	clock     *util.FixedClock
	recorder  *event.Recorder
	questions []uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newMemoryExamRepo(),
		bank:     &fakeQuestions{bank: map[uuid.UUID]*question.Question{}},
		attempts: &fakeAttempts{byStudent: map[uuid.UUID][]uuid.UUID{}},
		clock:    util.NewFixedClock(baseTime),
		recorder: event.NewRecorder(),
	}
	for i := 0; i < 3; i++ {
		q := &question.Question{
			ID:                 uuid.New(),
			Text:               "Question " + string(rune('A'+i)),
			Options:            []string{"w", "x", "y", "z"},
			CorrectOptionIndex: i,
			Subject:            "Physics",
			Difficulty:         question.DifficultyMedium,
		}
		f.bank.bank[q.ID] = q
		f.questions = append(f.questions, q.ID)
	}
	f.svc = NewService(f.repo, f.bank, f.attempts, f.clock, f.recorder)
	return f
}

func adminCtx() context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{UserID: adminID.String(), Role: string(auth.RoleAdmin)})
}

func studentCtx() context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{UserID: studentID.String(), Role: string(auth.RoleStudent)})
}

func (f *fixture) dto(start, end time.Time) CreateExamDTO {
	return CreateExamDTO{
		Title:           "Kinematics quiz",
		Subject:         "Physics",
		DurationMinutes: 30,
		TotalMarks:      100,
		PassingMarks:    40,
		QuestionIDs:     f.questions,
		ScheduledAt:     start,
		EndsAt:          end,
	}
}

func TestCreateExam(t *testing.T) {
	f := newFixture(t)

	t.Run("SnapshotsQuestionsInOrder", func(t *testing.T) {
		dto := f.dto(baseTime, baseTime.Add(time.Hour))
		dto.QuestionIDs = []uuid.UUID{f.questions[2], f.questions[0], f.questions[2]}

		e, err := f.svc.Create(adminCtx(), dto)
		require.NoError(t, err)

		require.Len(t, e.Questions, 3)
		assert.Equal(t, f.questions[2], e.Questions[0].ID)
		assert.Equal(t, f.questions[0], e.Questions[1].ID)
		assert.Equal(t, 2, e.Questions[2].CorrectOptionIndex)
		assert.True(t, e.IsActive)
		assert.Equal(t, adminID, e.OwnerID)
		assert.Contains(t, f.recorder.Keys(), event.ExamCreated)
	})

	t.Run("UnknownQuestion", func(t *testing.T) {
		dto := f.dto(baseTime, baseTime.Add(time.Hour))
		dto.QuestionIDs = append([]uuid.UUID{}, f.questions[0], uuid.New())
		_, err := f.svc.Create(adminCtx(), dto)
		assert.ErrorIs(t, err, ErrUnknownQuestions)
	})

	t.Run("EndNotAfterStart", func(t *testing.T) {
		_, err := f.svc.Create(adminCtx(), f.dto(baseTime, baseTime))
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("PassingAboveTotal", func(t *testing.T) {
		dto := f.dto(baseTime, baseTime.Add(time.Hour))
		dto.PassingMarks = 101
		_, err := f.svc.Create(adminCtx(), dto)
		assert.ErrorIs(t, err, ErrPassingAboveTotal)
	})

	t.Run("ZeroDuration", func(t *testing.T) {
		dto := f.dto(baseTime, baseTime.Add(time.Hour))
		dto.DurationMinutes = 0
		_, err := f.svc.Create(adminCtx(), dto)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("NoQuestions", func(t *testing.T) {
		dto := f.dto(baseTime, baseTime.Add(time.Hour))
		dto.QuestionIDs = nil
		_, err := f.svc.Create(adminCtx(), dto)
		require.Error(t, err)
		assert.Equal(t, "question_ids is required", err.Error())
	})

	t.Run("BankEditsDoNotLeakIntoExam", func(t *testing.T) {
		e, err := f.svc.Create(adminCtx(), f.dto(baseTime, baseTime.Add(time.Hour)))
		require.NoError(t, err)

		f.bank.bank[f.questions[0]].CorrectOptionIndex = 3
		delete(f.bank.bank, f.questions[1])

		stored, err := f.svc.GetForAdmin(adminCtx(), e.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 0, stored.Questions[0].CorrectOptionIndex)
		assert.Len(t, stored.Questions, 3)
	})
}

func TestAvailabilityWindow(t *testing.T) {
	f := newFixture(t)

	start := baseTime.Add(time.Hour)
	end := start.Add(2 * time.Hour)
	e, err := f.svc.Create(adminCtx(), f.dto(start, end))
	require.NoError(t, err)

	visible := func() bool {
		exams, err := f.svc.ListAvailable(studentCtx())
		require.NoError(t, err)
		for _, a := range exams {
			if a.ID == e.ID {
				return true
			}
		}
		return false
	}

	f.clock.Set(start.Add(-time.Nanosecond))
	assert.False(t, visible(), "absent before scheduled_at")

	f.clock.Set(start)
	assert.True(t, visible(), "present exactly at scheduled_at")

	f.clock.Set(end)
	assert.True(t, visible(), "present exactly at ends_at")

	f.clock.Set(end.Add(time.Nanosecond))
	assert.False(t, visible(), "absent strictly after ends_at")

	f.clock.Set(start.Add(time.Minute))
	inactive := false
	_, err = f.svc.Update(adminCtx(), e.ID.String(), UpdateExamDTO{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, visible(), "inactive exams are hidden")
}

func TestListAvailableAnnotatesAttempts(t *testing.T) {
	f := newFixture(t)

	later, err := f.svc.Create(adminCtx(), f.dto(baseTime.Add(-time.Minute), baseTime.Add(time.Hour)))
	require.NoError(t, err)
	earlier, err := f.svc.Create(adminCtx(), f.dto(baseTime.Add(-time.Hour), baseTime.Add(time.Hour)))
	require.NoError(t, err)
	f.attempts.byStudent[studentID] = []uuid.UUID{later.ID}

	exams, err := f.svc.ListAvailable(studentCtx())
	require.NoError(t, err)
	require.Len(t, exams, 2)

	assert.Equal(t, earlier.ID, exams[0].ID, "ordered by scheduled_at ascending")
	assert.False(t, exams[0].Attempted)
	assert.Equal(t, later.ID, exams[1].ID)
	assert.True(t, exams[1].Attempted)
	assert.Equal(t, 3, exams[1].TotalQuestions)

	raw, err := json.Marshal(exams)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_option_index")
	assert.NotContains(t, string(raw), "\"questions\"")
}

func TestGetForStudent(t *testing.T) {
	f := newFixture(t)

	e, err := f.svc.Create(adminCtx(), f.dto(baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	t.Run("StripsCorrectAnswers", func(t *testing.T) {
		view, err := f.svc.GetForStudent(studentCtx(), e.ID.String())
		require.NoError(t, err)
		require.Len(t, view.Questions, 3)
		assert.Equal(t, []string{"w", "x", "y", "z"}, view.Questions[0].Options)

		raw, err := json.Marshal(view)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "correct_option_index")
	})

	t.Run("AdminSeesCorrectAnswers", func(t *testing.T) {
		full, err := f.svc.GetForAdmin(adminCtx(), e.ID.String())
		require.NoError(t, err)

		raw, err := json.Marshal(full)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "correct_option_index")
	})

	t.Run("OutsideWindow", func(t *testing.T) {
		f.clock.Set(baseTime.Add(2 * time.Hour))
		defer f.clock.Set(baseTime)

		_, err := f.svc.GetForStudent(studentCtx(), e.ID.String())
		assert.ErrorIs(t, err, ErrExamNotAvailable)
	})

	t.Run("AlreadyAttempted", func(t *testing.T) {
		f.attempts.byStudent[studentID] = []uuid.UUID{e.ID}
		defer delete(f.attempts.byStudent, studentID)

		_, err := f.svc.GetForStudent(studentCtx(), e.ID.String())
		assert.ErrorIs(t, err, ErrAlreadyAttempted)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := f.svc.GetForStudent(studentCtx(), uuid.NewString())
		assert.ErrorIs(t, err, ErrExamNotFound)
	})

	t.Run("MalformedID", func(t *testing.T) {
		_, err := f.svc.GetForStudent(studentCtx(), "42")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestUpdateExam(t *testing.T) {
	f := newFixture(t)

	e, err := f.svc.Create(adminCtx(), f.dto(baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	t.Run("PartialFields", func(t *testing.T) {
		title := "Kinematics final"
		marks := 50.0
		updated, err := f.svc.Update(adminCtx(), e.ID.String(), UpdateExamDTO{Title: &title, TotalMarks: &marks})
		require.NoError(t, err)
		assert.Equal(t, "Kinematics final", updated.Title)
		assert.Equal(t, 50.0, updated.TotalMarks)
		assert.Equal(t, 40.0, updated.PassingMarks)
		assert.Len(t, updated.Questions, 3)
	})

	t.Run("MergedValidation", func(t *testing.T) {
		marks := 30.0
		_, err := f.svc.Update(adminCtx(), e.ID.String(), UpdateExamDTO{TotalMarks: &marks})
		assert.ErrorIs(t, err, ErrPassingAboveTotal)

		end := baseTime.Add(-time.Minute)
		_, err = f.svc.Update(adminCtx(), e.ID.String(), UpdateExamDTO{EndsAt: &end})
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("ReplacesQuestions", func(t *testing.T) {
		updated, err := f.svc.Update(adminCtx(), e.ID.String(), UpdateExamDTO{QuestionIDs: []uuid.UUID{f.questions[1]}})
		require.NoError(t, err)
		require.Len(t, updated.Questions, 1)
		assert.Equal(t, f.questions[1], updated.Questions[0].ID)
		assert.Equal(t, []uuid.UUID{f.questions[1]}, []uuid.UUID(updated.QuestionIDs))
	})

	t.Run("UnknownQuestion", func(t *testing.T) {
		_, err := f.svc.Update(adminCtx(), e.ID.String(), UpdateExamDTO{QuestionIDs: []uuid.UUID{uuid.New()}})
		assert.ErrorIs(t, err, ErrUnknownQuestions)
	})

	t.Run("UnknownExam", func(t *testing.T) {
		_, err := f.svc.Update(adminCtx(), uuid.NewString(), UpdateExamDTO{})
		assert.ErrorIs(t, err, ErrExamNotFound)
	})
}

func TestDeleteExam(t *testing.T) {
	f := newFixture(t)

	e, err := f.svc.Create(adminCtx(), f.dto(baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(adminCtx(), e.ID.String()))
	assert.Equal(t, []uuid.UUID{e.ID}, f.repo.deleted)
	assert.Contains(t, f.recorder.Keys(), event.ExamDeleted)

	_, err = f.svc.GetForAdmin(adminCtx(), e.ID.String())
	assert.ErrorIs(t, err, ErrExamNotFound)

	assert.ErrorIs(t, f.svc.Delete(adminCtx(), e.ID.String()), ErrExamNotFound)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(adminCtx(), f.dto(baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)
	second, err := f.svc.Create(adminCtx(), f.dto(baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	exams, err := f.svc.List(adminCtx())
	require.NoError(t, err)
	require.Len(t, exams, 2)
	assert.Equal(t, second.ID, exams[0].ID)
	assert.Equal(t, first.ID, exams[1].ID)
}
