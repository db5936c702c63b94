// Package memory keeps every repository in process maps. It backs
// STORAGE_DRIVER=memory and the tests of the layers above persistence.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]*domain.User
	courses     map[uuid.UUID]*domain.Course
	enrollments map[uuid.UUID]*domain.Enrollment
	payouts     map[uuid.UUID]*domain.Payout
	emotions    []domain.EmotionLog
	refresh     map[string]string
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]*domain.User),
		courses:     make(map[uuid.UUID]*domain.Course),
		enrollments: make(map[uuid.UUID]*domain.Enrollment),
		payouts:     make(map[uuid.UUID]*domain.Payout),
		refresh:     make(map[string]string),
		now:         time.Now,
	}
}

func (s *Store) Users() *UserRepository             { return &UserRepository{s} }
func (s *Store) Courses() *CourseRepository         { return &CourseRepository{s} }
func (s *Store) Enrollments() *EnrollmentRepository { return &EnrollmentRepository{s} }
func (s *Store) Payouts() *PayoutRepository         { return &PayoutRepository{s} }
func (s *Store) Emotions() *EmotionRepository       { return &EmotionRepository{s} }
func (s *Store) Tokens() *TokenStore                { return &TokenStore{s} }

// EmotionLogs returns a snapshot of everything logged so far.
func (s *Store) EmotionLogs() []domain.EmotionLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.emotions)
}

// stamp fills CreatedAt on first save and always bumps UpdatedAt, like gorm does.
func (s *Store) stamp(created, updated *time.Time) {
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == user.ID || u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	r.s.stamp(&user.CreatedAt, &user.UpdatedAt)
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, u := range r.s.users {
		if u.ID != user.ID && u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	r.s.stamp(&user.CreatedAt, &user.UpdatedAt)
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	// payouts cascade with the instructor, as the foreign key does in postgres
	for pid, p := range r.s.payouts {
		if p.InstructorID == id {
			delete(r.s.payouts, pid)
		}
	}
	return nil
}

func (r *UserRepository) List(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if role == "" || u.Role == role {
			out = append(out, *cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) Count(_ context.Context, role domain.Role) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if role == "" || u.Role == role {
			n++
		}
	}
	return n, nil
}

type CourseRepository struct{ s *Store }

func (r *CourseRepository) Create(_ context.Context, course *domain.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[course.ID]; ok {
		return domain.NewError(domain.ErrConflict, "course already exists")
	}
	r.s.stamp(&course.CreatedAt, &course.UpdatedAt)
	r.s.courses[course.ID] = cloneCourse(course)
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	cp := cloneCourse(c)
	if u, ok := r.s.users[c.InstructorID]; ok {
		cp.Instructor = u.DetailProfile()
	}
	return cp, nil
}

func (r *CourseRepository) List(_ context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Course, 0)
	for _, c := range r.s.courses {
		if filter.Matches(c) {
			cp := cloneCourse(c)
			cp.Quizzes, cp.Assignments = nil, nil
			if u, ok := r.s.users[c.InstructorID]; ok {
				cp.Instructor = u.ListProfile()
			}
			out = append(out, *cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *CourseRepository) Update(_ context.Context, course *domain.Course, replaceLessons bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.courses[course.ID]
	if !ok {
		return domain.ErrCourseNotFound
	}
	next := cloneCourse(course)
	next.Status = cur.Status
	next.Quizzes = cur.Quizzes
	next.Assignments = cur.Assignments
	if !replaceLessons {
		next.Lessons = cur.Lessons
	}
	r.s.stamp(&next.CreatedAt, &next.UpdatedAt)
	course.UpdatedAt = next.UpdatedAt
	r.s.courses[course.ID] = next
	return nil
}

func (r *CourseRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.CourseStatus) (*domain.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	c.Status = status
	c.UpdatedAt = r.s.now()
	cp := cloneCourse(c)
	if u, ok := r.s.users[c.InstructorID]; ok {
		cp.Instructor = u.DetailProfile()
	}
	return cp, nil
}

func (r *CourseRepository) IDsByInstructor(_ context.Context, instructorID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []uuid.UUID
	for _, c := range r.s.courses {
		if c.InstructorID == instructorID {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (r *CourseRepository) Count(_ context.Context, status domain.CourseStatus) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, c := range r.s.courses {
		if status == "" || c.Status == status {
			n++
		}
	}
	return n, nil
}

type EnrollmentRepository struct{ s *Store }

func (r *EnrollmentRepository) Create(_ context.Context, e *domain.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.enrollments {
		if cur.StudentID == e.StudentID && cur.CourseID == e.CourseID {
			return domain.ErrAlreadyEnrolled
		}
	}
	r.s.stamp(&e.CreatedAt, &e.UpdatedAt)
	r.s.enrollments[e.ID] = cloneEnrollment(e)
	return nil
}

func (r *EnrollmentRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.enrollments[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	return cloneEnrollment(e), nil
}

func (r *EnrollmentRepository) Exists(_ context.Context, studentID, courseID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *EnrollmentRepository) CountActive(_ context.Context, studentID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && !e.IsCompleted {
			n++
		}
	}
	return n, nil
}

func (r *EnrollmentRepository) ListByStudent(_ context.Context, studentID uuid.UUID) ([]domain.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Enrollment, 0)
	for _, e := range r.s.enrollments {
		if e.StudentID != studentID {
			continue
		}
		cp := cloneEnrollment(e)
		if c, ok := r.s.courses[e.CourseID]; ok {
			cp.Course = cloneCourse(c)
		}
		out = append(out, *cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *EnrollmentRepository) Modify(_ context.Context, id uuid.UUID, fn func(*domain.Enrollment) error) (*domain.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.enrollments[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	e := cloneEnrollment(cur)
	if err := fn(e); err != nil {
		return nil, err
	}
	r.s.stamp(&e.CreatedAt, &e.UpdatedAt)
	r.s.enrollments[id] = cloneEnrollment(e)
	return e, nil
}

func (r *EnrollmentRepository) CountForCourses(_ context.Context, courseIDs []uuid.UUID) (int64, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total, completed int64
	for _, e := range r.s.enrollments {
		if !slices.Contains(courseIDs, e.CourseID) {
			continue
		}
		total++
		if e.Progress == 100 {
			completed++
		}
	}
	return total, completed, nil
}

type PayoutRepository struct{ s *Store }

func (r *PayoutRepository) Create(_ context.Context, p *domain.Payout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&p.CreatedAt, &p.UpdatedAt)
	cp := *p
	cp.Instructor = nil
	r.s.payouts[p.ID] = &cp
	return nil
}

func (r *PayoutRepository) ListByInstructor(_ context.Context, instructorID uuid.UUID) ([]domain.Payout, error) {
	return r.list(func(p *domain.Payout) bool { return p.InstructorID == instructorID }, false), nil
}

func (r *PayoutRepository) ListAll(_ context.Context) ([]domain.Payout, error) {
	return r.list(func(*domain.Payout) bool { return true }, true), nil
}

func (r *PayoutRepository) list(keep func(*domain.Payout) bool, withInstructor bool) []domain.Payout {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Payout, 0)
	for _, p := range r.s.payouts {
		if !keep(p) {
			continue
		}
		cp := *p
		if u, ok := r.s.users[p.InstructorID]; ok && withInstructor {
			cp.Instructor = cloneUser(u)
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *PayoutRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.PayoutStatus) (*domain.Payout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payouts[id]
	if !ok {
		return nil, domain.ErrPayoutNotFound
	}
	p.Status = status
	p.UpdatedAt = r.s.now()
	cp := *p
	return &cp, nil
}

type EmotionRepository struct{ s *Store }

func (r *EmotionRepository) Create(_ context.Context, entry *domain.EmotionLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.s.now()
	}
	r.s.emotions = append(r.s.emotions, *entry)
	return nil
}

// TokenStore keeps refresh tokens for runs without redis. Tokens never expire here;
// the JWT expiry still applies.
type TokenStore struct{ s *Store }

func (t *TokenStore) SaveRefresh(_ context.Context, userID string, refreshToken string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.refresh[refreshToken] = userID
	return nil
}

func (t *TokenStore) ConsumeRefresh(_ context.Context, refreshToken string) (string, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	id, ok := t.s.refresh[refreshToken]
	if !ok {
		return "", domain.ErrTokenRevoked
	}
	delete(t.s.refresh, refreshToken)
	return id, nil
}

func (t *TokenStore) DeleteRefresh(_ context.Context, refreshToken string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	delete(t.s.refresh, refreshToken)
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

// cloneCourse copies c without its instructor; readers attach a fresh profile.
func cloneCourse(c *domain.Course) *domain.Course {
	cp := *c
	cp.Instructor = nil
	cp.Lessons = slices.Clone(c.Lessons)
	cp.Assignments = slices.Clone(c.Assignments)
	cp.Quizzes = make([]domain.Quiz, len(c.Quizzes))
	for i, q := range c.Quizzes {
		q.Questions = slices.Clone(q.Questions)
		cp.Quizzes[i] = q
	}
	if c.Quizzes == nil {
		cp.Quizzes = nil
	}
	return &cp
}

func cloneEnrollment(e *domain.Enrollment) *domain.Enrollment {
	cp := *e
	cp.CompletedLessons = slices.Clone(e.CompletedLessons)
	if cp.CompletedLessons == nil {
		cp.CompletedLessons = []string{}
	}
	cp.Course = nil
	return &cp
}
