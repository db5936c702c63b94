package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OWAISARSHED/LearnPak/internal/access"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/memory"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/security"
)

type env struct {
	store       *memory.Store
	auth        *AuthUseCase
	courses     *CourseUseCase
	enrollments *EnrollmentUseCase
	payouts     *PayoutUseCase
	admin       *AdminUseCase
}

func newEnv() *env {
	s := memory.NewStore()
	return &env{
		store: s,
		auth: NewAuthUseCase(s.Users(), s.Tokens(),
			security.NewFastPasswordHasher(), security.NewTokenManager("a", "r")),
		courses:     NewCourseUseCase(s.Courses(), s.Enrollments(), nil),
		enrollments: NewEnrollmentUseCase(s.Enrollments(), s.Courses(), s.Emotions()),
		payouts:     NewPayoutUseCase(s.Payouts()),
		admin:       NewAdminUseCase(s.Users(), s.Courses()),
	}
}

var (
	adminP = &domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin, IsVerified: true, IsApproved: true}
)

func student() *domain.Principal {
	return &domain.Principal{ID: uuid.New(), Role: domain.RoleStudent, IsApproved: true}
}

func instructor() *domain.Principal {
	return &domain.Principal{ID: uuid.New(), Role: domain.RoleInstructor, IsVerified: true}
}

func (e *env) course(t *testing.T, owner *domain.Principal, lessons int) *domain.Course {
	t.Helper()
	in := CourseInput{Title: "Go " + uuid.NewString()[:6], Description: "d", Category: "c", Thumbnail: "t"}
	for i := 0; i < lessons; i++ {
		in.Lessons = append(in.Lessons, domain.Lesson{Title: "l", VideoURL: "v"})
	}
	c, err := e.courses.Create(context.Background(), owner, in)
	require.NoError(t, err)
	return c
}

func TestEnrollUniquePerStudentAndCourse(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.course(t, instructor(), 1)
	s := student()

	_, err := e.enrollments.Enroll(ctx, s, c.ID)
	require.NoError(t, err)
	_, err = e.enrollments.Enroll(ctx, s, c.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)

	_, err = e.enrollments.Enroll(ctx, s, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	_, err = e.enrollments.Enroll(ctx, nil, c.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestConcurrentDuplicateEnrollYieldsOneRecord(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.course(t, instructor(), 1)
	s := student()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		oks int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.enrollments.Enroll(ctx, s, c.ID); err == nil {
				mu.Lock()
				oks++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrConflict)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, oks)
}

func TestActiveEnrollmentCap(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	inst := instructor()
	s := student()

	var first *domain.Enrollment
	for i := 0; i < domain.MaxActiveEnrollments; i++ {
		en, err := e.enrollments.Enroll(ctx, s, e.course(t, inst, 1).ID)
		require.NoError(t, err)
		if first == nil {
			first = en
		}
	}
	extra := e.course(t, inst, 1)
	_, err := e.enrollments.Enroll(ctx, s, extra.ID)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	c, err := e.courses.Get(ctx, first.CourseID)
	require.NoError(t, err)
	done, err := e.enrollments.MarkLessonComplete(ctx, s, first.ID, c.Lessons[0].ID.String())
	require.NoError(t, err)
	require.True(t, done.IsCompleted)

	_, err = e.enrollments.Enroll(ctx, s, extra.ID)
	assert.NoError(t, err)
}

func TestMarkLessonCompleteProgress(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.course(t, instructor(), 3)
	s := student()
	en, err := e.enrollments.Enroll(ctx, s, c.ID)
	require.NoError(t, err)

	got, err := e.enrollments.MarkLessonComplete(ctx, s, en.ID, c.Lessons[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, 33, got.Progress)

	// repeating a lesson changes nothing
	again, err := e.enrollments.MarkLessonComplete(ctx, s, en.ID, c.Lessons[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, got.CompletedLessons, again.CompletedLessons)
	assert.Equal(t, 33, again.Progress)

	got, err = e.enrollments.MarkLessonComplete(ctx, s, en.ID, c.Lessons[1].ID.String())
	require.NoError(t, err)
	assert.Equal(t, 67, got.Progress)
	assert.False(t, got.IsCompleted)

	got, err = e.enrollments.MarkLessonComplete(ctx, s, en.ID, c.Lessons[2].ID.String())
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.True(t, got.IsCompleted)

	_, err = e.enrollments.MarkLessonComplete(ctx, s, en.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.enrollments.MarkLessonComplete(ctx, s, uuid.New(), "x")
	assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)
}

func TestConcurrentCompletionsAreNotLost(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.course(t, instructor(), 4)
	s := student()
	en, err := e.enrollments.Enroll(ctx, s, c.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, l := range c.Lessons {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := e.enrollments.MarkLessonComplete(ctx, s, en.ID, id)
			assert.NoError(t, err)
		}(l.ID.String())
	}
	wg.Wait()

	list, err := e.enrollments.MyEnrollments(ctx, s)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].CompletedLessons, 4)
	assert.Equal(t, 100, list[0].Progress)
	assert.NotNil(t, list[0].Course)
}

func TestOnlyOwnerCompletesLessons(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.course(t, instructor(), 1)
	s := student()
	en, err := e.enrollments.Enroll(ctx, s, c.ID)
	require.NoError(t, err)

	for _, p := range []*domain.Principal{student(), instructor(), adminP} {
		_, err := e.enrollments.MarkLessonComplete(ctx, p, en.ID, c.Lessons[0].ID.String())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}
}

func TestLessonRemovedFromCourseKeepsProgressBounded(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := instructor()
	c := e.course(t, owner, 2)
	s := student()
	en, err := e.enrollments.Enroll(ctx, s, c.ID)
	require.NoError(t, err)
	_, err = e.enrollments.MarkLessonComplete(ctx, s, en.ID, c.Lessons[0].ID.String())
	require.NoError(t, err)

	// drop the completed lesson, keep the other one
	_, err = e.courses.Update(ctx, owner, c.ID, CourseUpdate{Lessons: []domain.Lesson{c.Lessons[1]}})
	require.NoError(t, err)

	got, err := e.enrollments.MarkLessonComplete(ctx, s, en.ID, c.Lessons[1].ID.String())
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Len(t, got.CompletedLessons, 2)
}

func TestCourseVisibility(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := instructor()
	pending := e.course(t, owner, 1)
	approved := e.course(t, owner, 1)
	_, err := e.courses.SetStatus(ctx, adminP, approved.ID, domain.CourseStatusApproved)
	require.NoError(t, err)

	list, err := e.courses.List(ctx, nil, access.CourseQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, approved.ID, list[0].ID)

	// anonymous callers cannot widen the filter
	list, err = e.courses.List(ctx, nil, access.CourseQuery{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = e.courses.List(ctx, adminP, access.CourseQuery{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = e.courses.List(ctx, owner, access.CourseQuery{Instructor: owner.ID.String()})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// detail is open regardless of status
	got, err := e.courses.Get(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CourseStatusPending, got.Status)
}

func TestCourseModificationGates(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := instructor()
	c := e.course(t, owner, 1)

	_, err := e.courses.Update(ctx, instructor(), c.ID, CourseUpdate{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := e.courses.Update(ctx, adminP, c.ID, CourseUpdate{Title: "Admin edit"})
	require.NoError(t, err)
	assert.Equal(t, "Admin edit", updated.Title)
	assert.Len(t, updated.Lessons, 1)

	_, err = e.courses.SetStatus(ctx, owner, c.ID, domain.CourseStatusApproved)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.courses.SetStatus(ctx, adminP, c.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	unverified := &domain.Principal{ID: uuid.New(), Role: domain.RoleInstructor}
	_, err = e.courses.Create(ctx, unverified, CourseInput{Title: "t", Description: "d", Category: "c", Thumbnail: "t"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.courses.Create(ctx, owner, CourseInput{Title: "t"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInstructorStatsCompletionRate(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := instructor()

	stats, err := e.courses.InstructorStats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalStudents)
	assert.Equal(t, 0, stats.CompletionRate)

	c := e.course(t, owner, 1)
	other := e.course(t, instructor(), 1)
	var finisher *domain.Principal
	for i := 0; i < 3; i++ {
		s := student()
		_, err := e.enrollments.Enroll(ctx, s, c.ID)
		require.NoError(t, err)
		finisher = s
	}
	_, err = e.enrollments.Enroll(ctx, student(), other.ID)
	require.NoError(t, err)

	mine, err := e.enrollments.MyEnrollments(ctx, finisher)
	require.NoError(t, err)
	_, err = e.enrollments.MarkLessonComplete(ctx, finisher, mine[0].ID, c.Lessons[0].ID.String())
	require.NoError(t, err)

	stats, err = e.courses.InstructorStats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalStudents)
	assert.Equal(t, 33, stats.CompletionRate)

	_, err = e.courses.InstructorStats(ctx, student())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPayoutLifecycle(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	inst := &domain.Principal{ID: uuid.New(), Role: domain.RoleInstructor}

	p, err := e.payouts.Request(ctx, inst, 500)
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusPending, p.Status)

	_, err = e.payouts.Request(ctx, inst, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.payouts.Request(ctx, student(), 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.payouts.Resolve(ctx, inst, p.ID, domain.PayoutStatusApproved)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// any status may follow any other
	for _, st := range []domain.PayoutStatus{domain.PayoutStatusApproved, domain.PayoutStatusRejected, domain.PayoutStatusPending} {
		got, err := e.payouts.Resolve(ctx, adminP, p.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}
	_, err = e.payouts.Resolve(ctx, adminP, uuid.New(), domain.PayoutStatusApproved)
	assert.ErrorIs(t, err, domain.ErrPayoutNotFound)

	mine, err := e.payouts.Mine(ctx, inst)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = e.payouts.All(ctx, inst)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthLifecycle(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	s, err := e.auth.Register(ctx, RegisterInput{Name: "Hina", Email: " Hina@Example.com ", Password: "secret123", Role: "instructor"})
	require.NoError(t, err)
	assert.Equal(t, "hina@example.com", s.User.Email)
	assert.False(t, s.User.IsApproved)
	assert.False(t, s.User.IsVerified)

	_, err = e.auth.Register(ctx, RegisterInput{Name: "x", Email: "hina@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	p, err := e.auth.Authenticate(ctx, s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleInstructor, p.Role)

	_, err = e.auth.Login(ctx, "hina@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// verification takes effect on the next request, not the next token
	_, err = e.admin.VerifyInstructor(ctx, adminP, s.User.ID)
	require.NoError(t, err)
	p, err = e.auth.Authenticate(ctx, s.AccessToken)
	require.NoError(t, err)
	assert.True(t, p.IsVerified)

	rotated, err := e.auth.Refresh(ctx, s.RefreshToken)
	require.NoError(t, err)
	_, err = e.auth.Refresh(ctx, s.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	require.NoError(t, e.auth.Logout(ctx, rotated.RefreshToken))
	_, err = e.auth.Refresh(ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	created, err := e.auth.EnsureAdmin(ctx, "admin@learnpak.com", "first")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = e.auth.EnsureAdmin(ctx, "admin@learnpak.com", "second")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = e.auth.Login(ctx, "admin@learnpak.com", "first")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	s, err := e.auth.Login(ctx, "admin@learnpak.com", "second")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, s.User.Role)
}

func TestAdminStats(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.auth.Register(ctx, RegisterInput{Name: "a", Email: "a@x.pk", Password: "secret123"})
	require.NoError(t, err)
	inst, err := e.auth.Register(ctx, RegisterInput{Name: "b", Email: "b@x.pk", Password: "secret123", Role: "instructor"})
	require.NoError(t, err)
	owner := inst.User.Principal()
	owner.IsVerified = true
	c := e.course(t, owner, 1)
	e.course(t, owner, 1)
	_, err = e.courses.SetStatus(ctx, adminP, c.ID, domain.CourseStatusApproved)
	require.NoError(t, err)

	stats, err := e.admin.Stats(ctx, adminP)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalInstructors)
	assert.Equal(t, int64(2), stats.TotalCourses)
	assert.Equal(t, int64(1), stats.PendingCourses)
	assert.Zero(t, stats.TotalRevenue)

	_, err = e.admin.Stats(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	approved, err := e.admin.ApproveInstructor(ctx, adminP, owner.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	require.NoError(t, e.admin.DeleteUser(ctx, adminP, owner.ID))
	assert.ErrorIs(t, e.admin.DeleteUser(ctx, adminP, owner.ID), domain.ErrUserNotFound)
}

func TestLogEmotion(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	s := student()

	_, err := e.enrollments.LogEmotion(ctx, s, EmotionInput{CourseID: uuid.NewString(), Emotion: "bored"})
	require.NoError(t, err)
	_, err = e.enrollments.LogEmotion(ctx, s, EmotionInput{CourseID: "x", Emotion: "bored"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.enrollments.LogEmotion(ctx, nil, EmotionInput{CourseID: uuid.NewString(), Emotion: "bored"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	logs := e.store.EmotionLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, domain.EmotionBored, logs[0].Emotion)
}

func TestNewCourseGetsFreshContentIDs(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.course(t, instructor(), 1)
	lessonA := a.Lessons[0].ID

	b, err := e.courses.Create(ctx, instructor(), CourseInput{
		Title: "B", Description: "d", Category: "c", Thumbnail: "t",
		Lessons:     []domain.Lesson{{ID: lessonA, Title: "l", VideoURL: "v"}},
		Quizzes:     []domain.Quiz{{ID: uuid.New(), Title: "q"}},
		Assignments: []domain.Assignment{{ID: uuid.New(), Title: "a"}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, lessonA, b.Lessons[0].ID)
	assert.Equal(t, b.ID, b.Lessons[0].CourseID)
	assert.Equal(t, b.ID, b.Quizzes[0].CourseID)
	assert.Equal(t, b.ID, b.Assignments[0].CourseID)

	got, err := e.courses.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, lessonA, got.Lessons[0].ID)
}

func TestUpdateRejectsLessonFromAnotherCourse(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.course(t, instructor(), 1)
	owner := instructor()
	b := e.course(t, owner, 1)

	_, err := e.courses.Update(ctx, owner, b.ID, CourseUpdate{
		Lessons: []domain.Lesson{{ID: a.Lessons[0].ID, Title: "l", VideoURL: "v"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	kept := b.Lessons[0]
	kept.Title = "renamed"
	got, err := e.courses.Update(ctx, owner, b.ID, CourseUpdate{
		Lessons: []domain.Lesson{kept, {Title: "new", VideoURL: "v"}},
	})
	require.NoError(t, err)
	require.Len(t, got.Lessons, 2)
	assert.Equal(t, b.Lessons[0].ID, got.Lessons[0].ID)
	assert.NotEqual(t, uuid.Nil, got.Lessons[1].ID)
}

func TestConcurrentRefreshRedeemsTokenOnce(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	s, err := e.auth.Register(ctx, RegisterInput{Name: "a", Email: "a@x.pk", Password: "secret123"})
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.auth.Refresh(ctx, s.RefreshToken); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

// mapCache mirrors the redis cache: Fill is SET NX, Set overwrites.
type mapCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]domain.Course
}

func (m *mapCache) Get(_ context.Context, id uuid.UUID) (*domain.Course, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.entries[id]
	return &c, ok
}

func (m *mapCache) Fill(_ context.Context, c *domain.Course) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[c.ID]; !ok {
		m.entries[c.ID] = *c
	}
}

func (m *mapCache) Set(_ context.Context, c *domain.Course) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[c.ID] = *c
}

func (m *mapCache) Invalidate(_ context.Context, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
}

func TestCourseCacheNotRefilledWithStaleRead(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	cache := &mapCache{entries: map[uuid.UUID]domain.Course{}}
	e.courses = NewCourseUseCase(e.store.Courses(), e.store.Enrollments(), cache)

	owner := instructor()
	c := e.course(t, owner, 1)
	stale, err := e.courses.Get(ctx, c.ID)
	require.NoError(t, err)

	_, err = e.courses.Update(ctx, owner, c.ID, CourseUpdate{Title: "edited"})
	require.NoError(t, err)
	_, err = e.courses.SetStatus(ctx, adminP, c.ID, domain.CourseStatusApproved)
	require.NoError(t, err)

	// a read that loaded the course before the writes finishes late
	cache.Fill(ctx, stale)

	got, err := e.courses.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
	assert.Equal(t, domain.CourseStatusApproved, got.Status)
}
