package progress

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

func lessons(n int) []domain.Lesson {
	out := make([]domain.Lesson, n)
	for i := range out {
		out[i] = domain.Lesson{ID: uuid.New(), Title: "lesson"}
	}
	return out
}

func TestComputeRounding(t *testing.T) {
	three := lessons(3)

	assert.Equal(t, State{Progress: 33}, Compute([]string{"a"}, three, State{}))
	assert.Equal(t, State{Progress: 67}, Compute([]string{"a", "b"}, three, State{}))
	assert.Equal(t, State{Progress: 100, IsCompleted: true}, Compute([]string{"a", "b", "c"}, three, State{}))

	// 1/8 = 12.5 rounds up
	assert.Equal(t, 13, Compute([]string{"a"}, lessons(8), State{}).Progress)
	// 1/6 = 16.67
	assert.Equal(t, 17, Compute([]string{"a"}, lessons(6), State{}).Progress)
}

func TestComputeZeroLessonsKeepsPrevious(t *testing.T) {
	prev := State{Progress: 40}
	assert.Equal(t, prev, Compute([]string{"a", "b"}, nil, prev))
	assert.Equal(t, State{}, Compute(nil, []domain.Lesson{}, State{}))
}

func TestComputeClampsOrphanedIDs(t *testing.T) {
	got := Compute([]string{"a", "b", "c"}, lessons(2), State{})
	assert.Equal(t, State{Progress: 100, IsCompleted: true}, got)
}

func TestComputeCompletionIsSticky(t *testing.T) {
	// lessons were added after the student finished
	got := Compute([]string{"a", "b"}, lessons(4), State{Progress: 100, IsCompleted: true})
	assert.Equal(t, State{Progress: 100, IsCompleted: true}, got)
}

func TestApply(t *testing.T) {
	e := &domain.Enrollment{CompletedLessons: []string{"x"}}
	Apply(e, lessons(4))
	assert.Equal(t, 25, e.Progress)
	assert.False(t, e.IsCompleted)
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(0, 0))
	assert.Equal(t, 25, CompletionRate(1, 4))
	assert.Equal(t, 33, CompletionRate(1, 3))
	assert.Equal(t, 100, CompletionRate(2, 2))
}
