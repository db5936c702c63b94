package usecase

import (
	"errors"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
