package postgres

import (
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Comment{},
		&domain.PostReaction{},
		&domain.CommentReaction{},
		&domain.Report{},
		&domain.OutboxMessage{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:            NewUserRepository(db),
		Post:            NewPostRepository(db),
		Comment:         NewCommentRepository(db),
		PostReaction:    NewPostReactionRepository(db),
		CommentReaction: NewCommentReactionRepository(db),
		Report:          NewReportRepository(db),
		Outbox:          NewOutboxRepository(db),
	}
}
