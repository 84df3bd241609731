package service

import (
	"context"
	"errors"
	"testing"

	"github.com/PrashantBimalJha/studentlearning-app/internal/grading"
	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignmentService(o grading.Oracle) (*AssignmentService, *fakeAssignmentStore, *fakeCourseStore, *fakePublisher) {
	store := newFakeAssignmentStore()
	courses := newFakeCourseStore()
	pub := &fakePublisher{}
	return NewAssignmentService(store, courses, grading.NewEngine(o), pub), store, courses, pub
}

func TestCreateAssignmentDefaults(t *testing.T) {
	svc, _, _, _ := newAssignmentService(&stubOracle{})

	a, err := svc.Create(context.Background(), bob, CreateAssignmentInput{
		Title:    "Essay 1",
		Course:   "History",
		Question: "Discuss the causes of WWI.",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, a.Points)
	assert.Equal(t, 1, a.DifficultyLevel)
	assert.Equal(t, bob.Email, a.InstructorEmail)
	assert.Equal(t, models.StatusPending, a.Status)
}

func TestCreateAssignmentValidation(t *testing.T) {
	svc, _, _, _ := newAssignmentService(&stubOracle{})
	_, err := svc.Create(context.Background(), bob, CreateAssignmentInput{Title: "x"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSubmitTextGradesAndCompletes(t *testing.T) {
	svc, store, courses, pub := newAssignmentService(&stubOracle{
		resp: `{"score": 80, "rating": 4, "feedback": "Solid work.", "next_difficulty_level": 3}`,
	})

	a, err := svc.Create(context.Background(), bob, CreateAssignmentInput{
		Title:    "Essay 1",
		Course:   "History",
		Question: "Discuss the causes of WWI.",
		Points:   100,
	})
	require.NoError(t, err)

	grade, updated, err := svc.SubmitText(context.Background(), alice, a.ID, "The assassination of Archduke Franz Ferdinand...")
	require.NoError(t, err)
	assert.False(t, grade.FallbackUsed)
	assert.Equal(t, 80.0, grade.Score)
	assert.Equal(t, 3, grade.NextDifficulty)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, alice.Email, updated.StudentEmail)

	stored, _ := store.FindByID(context.Background(), a.ID)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 80.0, *stored.Score)

	// Course rating recomputed from the single graded assignment.
	assert.Equal(t, 4.0, courses.ratings["History"])
	assert.True(t, pub.published("assessment.completed"))
}

func TestSubmitTextFallbackWhenOracleDown(t *testing.T) {
	svc, _, _, _ := newAssignmentService(&stubOracle{err: errors.New("refused")})

	a, _ := svc.Create(context.Background(), bob, CreateAssignmentInput{
		Title:    "Essay",
		Course:   "History",
		Question: "Q?",
		Points:   100,
	})

	// 25 characters: long enough for full provisional credit.
	grade, _, err := svc.SubmitText(context.Background(), alice, a.ID, "aaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	assert.True(t, grade.FallbackUsed)
	assert.Equal(t, 100.0, grade.Score)
	assert.Equal(t, 5.0, grade.Rating)
}

func TestSubmitTextTwiceConflicts(t *testing.T) {
	svc, _, _, _ := newAssignmentService(&stubOracle{
		resp: `{"score": 50, "rating": 3, "feedback": "ok", "next_difficulty_level": 2}`,
	})

	a, _ := svc.Create(context.Background(), bob, CreateAssignmentInput{
		Title: "Essay", Course: "History", Question: "Q?",
	})

	_, _, err := svc.SubmitText(context.Background(), alice, a.ID, "first answer")
	require.NoError(t, err)

	_, _, err = svc.SubmitText(context.Background(), alice, a.ID, "second answer")
	assert.ErrorIs(t, err, models.ErrAlreadyCompleted)
}

func TestSubmitTextValidation(t *testing.T) {
	svc, _, _, _ := newAssignmentService(&stubOracle{})
	_, _, err := svc.SubmitText(context.Background(), alice, "missing", "  ")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, _, err = svc.SubmitText(context.Background(), alice, "missing", "an answer")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSubmitTextBoundStudentOnly(t *testing.T) {
	svc, store, _, _ := newAssignmentService(&stubOracle{})
	id, _ := store.Insert(context.Background(), &models.Assignment{
		AssignmentType: models.AssignmentTypeText,
		Status:         models.StatusPending,
		StudentEmail:   alice.Email,
		Question:       "Q?",
		Points:         10,
	})

	_, _, err := svc.SubmitText(context.Background(), bob, id, "my answer")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestDeleteRequiresInstructor(t *testing.T) {
	svc, _, _, _ := newAssignmentService(&stubOracle{})
	a, _ := svc.Create(context.Background(), bob, CreateAssignmentInput{
		Title: "Essay", Course: "History", Question: "Q?",
	})

	assert.ErrorIs(t, svc.Delete(context.Background(), alice, a.ID), models.ErrUnauthorized)
	assert.NoError(t, svc.Delete(context.Background(), bob, a.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, a.ID), models.ErrNotFound)
}

func TestListScopesToStudent(t *testing.T) {
	svc, store, _, _ := newAssignmentService(&stubOracle{})
	store.Insert(context.Background(), &models.Assignment{AssignmentType: models.AssignmentTypeText, StudentEmail: alice.Email, Status: models.StatusPending})
	store.Insert(context.Background(), &models.Assignment{AssignmentType: models.AssignmentTypeText, StudentEmail: bob.Email, Status: models.StatusPending})
	store.Insert(context.Background(), &models.Assignment{AssignmentType: models.AssignmentTypeQuiz, Status: models.StatusPending})

	mine, err := svc.List(context.Background(), alice, AssignmentFilter{})
	require.NoError(t, err)
	// Own assignment plus the unclaimed quiz; never another student's.
	assert.Len(t, mine, 2)

	all, err := svc.List(context.Background(), admin, AssignmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
