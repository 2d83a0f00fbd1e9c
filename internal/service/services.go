package service

import (
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/config"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
)

type Services struct {
	User    *UserService
	Auth    *AuthService
	Post    *PostService
	Comment *CommentService
	Report  *ReportService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	userService := NewUserService(repos.User, repos.Outbox, cfg)
	postService := NewPostService(repos.Post, repos.PostReaction)
	commentService := NewCommentService(repos.Comment, repos.Post, repos.CommentReaction)

	return &Services{
		User:    userService,
		Auth:    NewAuthService(userService, repos.User, cfg),
		Post:    postService,
		Comment: commentService,
		Report:  NewReportService(repos.Report, postService, commentService),
	}
}
