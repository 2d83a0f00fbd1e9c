package postgres_test

import (
	"context"
	"testing"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository/postgres"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				ID:           uuid.New(),
				FirstName:    "Fabio",
				LastName:     "Flores",
				UserName:     "fabio",
				Email:        "fabio@example.com",
				PasswordHash: "hashedpassword",
				Role:         domain.RoleUser,
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				FirstName:    "Other",
				LastName:     "User",
				UserName:     "other",
				Email:        "fabio@example.com", // Same as above
				PasswordHash: "hashedpassword2",
				Role:         domain.RoleUser,
			},
			wantErr: true,
		},
		{
			name: "duplicate username",
			user: &domain.User{
				ID:           uuid.New(),
				FirstName:    "Other",
				LastName:     "User",
				UserName:     "fabio", // Same as first
				Email:        "other@example.com",
				PasswordHash: "hashedpassword3",
				Role:         domain.RoleUser,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_Getters(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUserName("lookup_user").
		WithEmail("lookup@example.com").
		Build(t, testDB.DB)

	t.Run("by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.UserName, got.UserName)
	})

	t.Run("by id missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.Error(t, err)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "lookup@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("by email missing", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.Error(t, err)
	})

	t.Run("by username", func(t *testing.T) {
		got, err := repo.GetByUserName(ctx, "lookup_user")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUserName("update_user").
		Build(t, testDB.DB)

	user.IsVerified = true
	user.VerifyToken = "stored-token"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Equal(t, "stored-token", got.VerifyToken)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	assert.Error(t, err)
}
