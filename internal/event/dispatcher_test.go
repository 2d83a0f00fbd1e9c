package event_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/event"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository/postgres"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func messageByID(t *testing.T, db *gorm.DB, id uuid.UUID) *domain.OutboxMessage {
	t.Helper()

	var msg domain.OutboxMessage
	require.NoError(t, db.First(&msg, "id = ?", id).Error)
	return &msg
}

func TestDispatcher_DeliversConfirmationMail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	userService := service.NewUserService(repos.User, repos.Outbox, cfg)
	recorder := &testutil.RecordingMailer{}
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Unverified().Build(t, testDB.DB)

	msg, err := repos.Outbox.Enqueue(ctx, event.TopicAccountConfirmation, event.AccountConfirmationPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	require.NoError(t, err)

	dispatcher := event.NewDispatcher(repos.Outbox, cfg.OutboxPollInterval, cfg.OutboxMaxAttempts)
	dispatcher.Handle(event.TopicAccountConfirmation, event.AccountConfirmationHandler(userService, recorder))

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	go dispatcher.Run(runCtx)

	require.Eventually(t, func() bool {
		return len(recorder.Sent()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	sent := recorder.Sent()[0]
	assert.Equal(t, user.Email, sent.To)

	// The handler issued a token and the mail carries it.
	got, err := repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, got.VerifyToken)
	assert.Contains(t, sent.HTML, got.VerifyToken)

	require.Eventually(t, func() bool {
		return messageByID(t, testDB.DB, msg.ID).Status == domain.OutboxDone
	}, 5*time.Second, 10*time.Millisecond)

	// Delivered exactly once despite further polls.
	time.Sleep(5 * cfg.OutboxPollInterval)
	assert.Len(t, recorder.Sent(), 1)
	assert.Equal(t, 1, recorder.Attempts())
}

func TestDispatcher_RetriesFailedHandler(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	userService := service.NewUserService(repos.User, repos.Outbox, cfg)
	recorder := &testutil.RecordingMailer{FailFirst: 1}
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Unverified().Build(t, testDB.DB)

	msg, err := repos.Outbox.Enqueue(ctx, event.TopicAccountConfirmation, event.AccountConfirmationPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	require.NoError(t, err)

	dispatcher := event.NewDispatcher(repos.Outbox, cfg.OutboxPollInterval, cfg.OutboxMaxAttempts)
	dispatcher.Handle(event.TopicAccountConfirmation, event.AccountConfirmationHandler(userService, recorder))

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	go dispatcher.Run(runCtx)

	require.Eventually(t, func() bool {
		return len(recorder.Sent()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, 2, recorder.Attempts())

	require.Eventually(t, func() bool {
		return messageByID(t, testDB.DB, msg.ID).Status == domain.OutboxDone
	}, 5*time.Second, 10*time.Millisecond)
}

func TestDispatcher_ExhaustsAttemptBudget(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	ctx := context.Background()

	msg, err := repos.Outbox.Enqueue(ctx, "doomed.topic", map[string]string{"k": "v"})
	require.NoError(t, err)

	var calls atomic.Int32
	dispatcher := event.NewDispatcher(repos.Outbox, cfg.OutboxPollInterval, cfg.OutboxMaxAttempts)
	dispatcher.Handle("doomed.topic", func(ctx context.Context, payload []byte) error {
		calls.Add(1)
		return errors.New("permanent failure")
	})

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	go dispatcher.Run(runCtx)

	require.Eventually(t, func() bool {
		return messageByID(t, testDB.DB, msg.ID).Status == domain.OutboxFailed
	}, 5*time.Second, 10*time.Millisecond)

	failed := messageByID(t, testDB.DB, msg.ID)
	assert.Equal(t, cfg.OutboxMaxAttempts, failed.Attempts)
	assert.Equal(t, "permanent failure", failed.LastError)
	assert.Equal(t, int32(cfg.OutboxMaxAttempts), calls.Load())
}

func TestDispatcher_FailsMessagesWithoutHandler(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	ctx := context.Background()

	msg, err := repos.Outbox.Enqueue(ctx, "unknown.topic", map[string]string{"k": "v"})
	require.NoError(t, err)

	dispatcher := event.NewDispatcher(repos.Outbox, cfg.OutboxPollInterval, cfg.OutboxMaxAttempts)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	go dispatcher.Run(runCtx)

	require.Eventually(t, func() bool {
		return messageByID(t, testDB.DB, msg.ID).Status == domain.OutboxFailed
	}, 5*time.Second, 10*time.Millisecond)
}
