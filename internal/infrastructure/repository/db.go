package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

// DSN builds a postgres connection string in the key=value form gorm's driver expects.
func DSN(host, user, password, name, port string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, name, port)
}

// Open connects with TranslateError on, so unique violations surface as
// gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Lesson{},
		&domain.Quiz{},
		&domain.Assignment{},
		&domain.Enrollment{},
		&domain.Payout{},
		&domain.EmotionLog{},
	)
}
