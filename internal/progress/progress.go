// Package progress derives an enrollment's completion percentage from its completed
// lesson ids and the course's current lesson list.
package progress

import "github.com/OWAISARSHED/LearnPak/internal/domain"

// State is the derived part of an enrollment.
type State struct {
	Progress    int
	IsCompleted bool
}

// Compute returns the new progress for completed against lessons.
//
// An empty lesson list leaves prev untouched. Otherwise progress is
// round-half-up(100*len(completed)/len(lessons)), clamped to 100. The count is not
// filtered against the ids actually present in lessons. Completion is sticky: once prev
// is completed the result stays at 100 and completed.
func Compute(completed []string, lessons []domain.Lesson, prev State) State {
	if prev.IsCompleted {
		return State{Progress: 100, IsCompleted: true}
	}
	total := len(lessons)
	if total == 0 {
		return prev
	}

	// (200c + t) / 2t == floor(100c/t + 0.5) for non-negative integers
	pct := (200*len(completed) + total) / (2 * total)
	if pct > 100 {
		pct = 100
	}
	return State{Progress: pct, IsCompleted: pct >= 100}
}

// Apply recomputes e in place.
func Apply(e *domain.Enrollment, lessons []domain.Lesson) {
	s := Compute(e.CompletedLessons, lessons, State{Progress: e.Progress, IsCompleted: e.IsCompleted})
	e.Progress = s.Progress
	e.IsCompleted = s.IsCompleted
}

// CompletionRate is round(100*completed/total), 0 when total is 0.
func CompletionRate(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int((200*completed + total) / (2 * total))
}
