package service_test

import (
	"context"
	"testing"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository/postgres"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(t *testing.T) (*testutil.TestDB, *service.CommentService) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return testDB, service.NewCommentService(repos.Comment, repos.Post, repos.CommentReaction)
}

func TestCommentService_Create(t *testing.T) {
	testDB, commentService := newCommentService(t)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)

	t.Run("missing post", func(t *testing.T) {
		_, err := commentService.Create(ctx, service.CreateCommentInput{Body: "hi"}, author.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("successful creation", func(t *testing.T) {
		comment, err := commentService.Create(ctx, service.CreateCommentInput{Body: "nice post"}, author.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, author.ID, comment.AuthorID)
	})
}

func TestCommentService_ListByPost(t *testing.T) {
	testDB, commentService := newCommentService(t)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)
	other := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)

	published := testutil.NewCommentBuilder(author.ID, post.ID).Build(t, testDB.DB)
	testutil.NewCommentBuilder(author.ID, post.ID).AsDraft().Build(t, testDB.DB)
	testutil.NewCommentBuilder(author.ID, other.ID).Build(t, testDB.DB)

	comments, err := commentService.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, published.ID, comments[0].ID)

	_, err = commentService.ListByPost(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestCommentService_UpdateAndDelete(t *testing.T) {
	testDB, commentService := newCommentService(t)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	intruder, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)
	comment := testutil.NewCommentBuilder(author.ID, post.ID).Build(t, testDB.DB)

	newBody := "edited"

	_, err := commentService.Update(ctx, comment.ID, service.UpdateCommentInput{Body: &newBody}, intruder.ID)
	assert.ErrorIs(t, err, domain.ErrNotCommentOwner)

	got, err := commentService.Get(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "comment body", got.Body)

	updated, err := commentService.Update(ctx, comment.ID, service.UpdateCommentInput{Body: &newBody}, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Body)

	err = commentService.Delete(ctx, comment.ID, intruder.ID)
	assert.ErrorIs(t, err, domain.ErrNotCommentOwner)

	message, err := commentService.DeleteWithMessage(ctx, comment.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "deleted comment with id: "+comment.ID.String(), message)

	_, err = commentService.Get(ctx, comment.ID)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestCommentService_React(t *testing.T) {
	testDB, commentService := newCommentService(t)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	reader, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	post := testutil.NewPostBuilder(author.ID).Build(t, testDB.DB)
	comment := testutil.NewCommentBuilder(author.ID, post.ID).Build(t, testDB.DB)

	_, err := commentService.React(ctx, reader.ID, uuid.New(), domain.ReactionLike)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)

	_, err = commentService.React(ctx, reader.ID, comment.ID, domain.ReactionDislike)
	require.NoError(t, err)

	_, err = commentService.React(ctx, reader.ID, comment.ID, domain.ReactionLike)
	assert.ErrorIs(t, err, domain.ErrAlreadyLikedComment)

	got, err := commentService.Get(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AmountLike)
	assert.Equal(t, 1, got.AmountDislike)

	details, err := commentService.Reactions(ctx, comment.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, domain.ReactionDislike, details[0].Type)
	assert.Equal(t, reader.ID, details[0].User.ID)
}
