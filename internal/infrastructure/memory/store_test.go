package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

func TestUserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	require.NoError(t, users.Create(ctx, &domain.User{ID: uuid.New(), Email: "a@b.c"}))
	err := users.Create(ctx, &domain.User{ID: uuid.New(), Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := domain.NewEnrollment(uuid.New(), uuid.New())
	require.NoError(t, s.Enrollments().Create(ctx, e))

	got, err := s.Enrollments().GetByID(ctx, e.ID)
	require.NoError(t, err)
	got.CompletedLessons = append(got.CompletedLessons, "x")
	got.Progress = 50

	again, err := s.Enrollments().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, again.CompletedLessons)
	assert.Zero(t, again.Progress)
}

func TestDuplicateEnrollmentRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Enrollments()
	student, course := uuid.New(), uuid.New()

	require.NoError(t, repo.Create(ctx, domain.NewEnrollment(student, course)))
	assert.ErrorIs(t, repo.Create(ctx, domain.NewEnrollment(student, course)), domain.ErrAlreadyEnrolled)
}

func TestModifyIsSerialized(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Enrollments()
	e := domain.NewEnrollment(uuid.New(), uuid.New())
	require.NoError(t, repo.Create(ctx, e))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Modify(ctx, e.ID, func(e *domain.Enrollment) error {
				e.CompletedLessons = append(e.CompletedLessons, uuid.NewString())
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, got.CompletedLessons, 50)
}

func TestCourseUpdateKeepsLessonsUnlessReplaced(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Courses()
	c := &domain.Course{ID: uuid.New(), Title: "Go", Lessons: []domain.Lesson{{ID: uuid.New(), Title: "one"}}}
	require.NoError(t, repo.Create(ctx, c))

	edit := *c
	edit.Title = "Go 2"
	edit.Lessons = nil
	require.NoError(t, repo.Update(ctx, &edit, false))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go 2", got.Title)
	assert.Len(t, got.Lessons, 1)

	require.NoError(t, repo.Update(ctx, &edit, true))
	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Lessons)
}

func TestListAllJoinsInstructor(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	inst := &domain.User{ID: uuid.New(), Name: "Ayesha", Email: "i@x.y", Role: domain.RoleInstructor}
	require.NoError(t, s.Users().Create(ctx, inst))
	require.NoError(t, s.Payouts().Create(ctx, &domain.Payout{ID: uuid.New(), InstructorID: inst.ID, Amount: 10}))

	all, err := s.Payouts().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Instructor)
	assert.Equal(t, "Ayesha", all[0].Instructor.Name)

	mine, err := s.Payouts().ListByInstructor(ctx, inst.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Nil(t, mine[0].Instructor)
}

func TestTokenStoreRevocation(t *testing.T) {
	ctx := context.Background()
	tokens := NewStore().Tokens()

	require.NoError(t, tokens.SaveRefresh(ctx, "u1", "tok"))
	id, err := tokens.ConsumeRefresh(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	_, err = tokens.ConsumeRefresh(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	require.NoError(t, tokens.SaveRefresh(ctx, "u1", "tok2"))
	require.NoError(t, tokens.DeleteRefresh(ctx, "tok2"))
	_, err = tokens.ConsumeRefresh(ctx, "tok2")
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestTokenStoreConsumeOnce(t *testing.T) {
	ctx := context.Background()
	tokens := NewStore().Tokens()
	require.NoError(t, tokens.SaveRefresh(ctx, "u1", "tok"))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tokens.ConsumeRefresh(ctx, "tok"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestCourseReadsAttachInstructorProfile(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	inst := &domain.User{ID: uuid.New(), Name: "Hina", Email: "h@x.pk", Bio: "bio", IdentityDoc: "doc"}
	require.NoError(t, s.Users().Create(ctx, inst))
	c := &domain.Course{ID: uuid.New(), InstructorID: inst.ID, Title: "Go", Status: domain.CourseStatusApproved}
	require.NoError(t, s.Courses().Create(ctx, c))

	got, err := s.Courses().GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Instructor)
	assert.Equal(t, "Hina", got.Instructor.Name)
	assert.Equal(t, "h@x.pk", got.Instructor.Email)
	assert.Equal(t, "bio", got.Instructor.Bio)

	list, err := s.Courses().List(ctx, domain.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Instructor)
	assert.Equal(t, "Hina", list[0].Instructor.Name)
	assert.Empty(t, list[0].Instructor.Email)
}
