package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	userName      string
	email         string
	password      string
	verified      bool
	isPublicEmail bool
	isPublicName  bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		userName: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		verified: true,
	}
}

func (b *UserBuilder) WithUserName(userName string) *UserBuilder {
	b.userName = userName
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) Unverified() *UserBuilder {
	b.verified = false
	return b
}

func (b *UserBuilder) WithPublicEmail() *UserBuilder {
	b.isPublicEmail = true
	return b
}

func (b *UserBuilder) WithPublicName() *UserBuilder {
	b.isPublicName = true
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:            uuid.New(),
		FirstName:     "Test",
		LastName:      "User",
		UserName:      b.userName,
		Email:         b.email,
		PasswordHash:  string(hashedPassword),
		Role:          domain.RoleUser,
		IsVerified:    b.verified,
		IsPublicEmail: b.isPublicEmail,
		IsPublicName:  b.isPublicName,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// PostBuilder creates test posts with a builder pattern
type PostBuilder struct {
	title    string
	body     string
	isDraft  bool
	authorID uuid.UUID
}

func NewPostBuilder(authorID uuid.UUID) *PostBuilder {
	return &PostBuilder{
		title:    fmt.Sprintf("post %s", uuid.New().String()[:8]),
		body:     "post body",
		authorID: authorID,
	}
}

func (b *PostBuilder) WithTitle(title string) *PostBuilder {
	b.title = title
	return b
}

func (b *PostBuilder) AsDraft() *PostBuilder {
	b.isDraft = true
	return b
}

func (b *PostBuilder) Build(t *testing.T, db *gorm.DB) *domain.Post {
	t.Helper()

	post := &domain.Post{
		ID:       uuid.New(),
		Title:    b.title,
		Body:     b.body,
		IsDraft:  b.isDraft,
		AuthorID: b.authorID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

// CommentBuilder creates test comments with a builder pattern
type CommentBuilder struct {
	body     string
	isDraft  bool
	authorID uuid.UUID
	postID   uuid.UUID
}

func NewCommentBuilder(authorID, postID uuid.UUID) *CommentBuilder {
	return &CommentBuilder{
		body:     "comment body",
		authorID: authorID,
		postID:   postID,
	}
}

func (b *CommentBuilder) AsDraft() *CommentBuilder {
	b.isDraft = true
	return b
}

func (b *CommentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Comment {
	t.Helper()

	comment := &domain.Comment{
		ID:       uuid.New(),
		Body:     b.body,
		IsDraft:  b.isDraft,
		AuthorID: b.authorID,
		PostID:   b.postID,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}
