package domain

import "errors"

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUserNameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("email or password invalid")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotVerified        = errors.New("you must verify your account")
	ErrAlreadyVerified    = errors.New("user already verified")
)

// Content errors
var (
	ErrPostNotFound        = errors.New("post not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrNotPostOwner        = errors.New("it is not your post")
	ErrNotCommentOwner     = errors.New("it is not your comment")
	ErrAlreadyLikedPost    = errors.New("you have already liked the post")
	ErrAlreadyLikedComment = errors.New("you have already liked the comment")
)
