package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifai/internal/model"
	"artifai/internal/repository"
)

func TestUserRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(newTestDB(t))

	alice := createUser(t, repo, "alice")

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, alice.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	byID, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_UniqueUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(newTestDB(t))
	createUser(t, repo, "alice")

	err := repo.Create(ctx, &model.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"})
	assert.Error(t, err)

	err = repo.Create(ctx, &model.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "h"})
	assert.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
