package memory

import (
	"context"
	"testing"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetRepo_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(ctx, pets.Pet{ID: id, Name: id}))
	}
	require.NoError(t, repo.Update(ctx, pets.Pet{ID: "c", Name: "C"}))
	require.NoError(t, repo.Delete(ctx, "a"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C", list[0].Name)
	assert.Equal(t, "b", list[1].ID)

	assert.ErrorIs(t, repo.Delete(ctx, "a"), pets.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "zz"}), pets.ErrNotFound)
	_, err = repo.GetByID(ctx, "zz")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.Error(t, repo.Create(ctx, pets.Pet{ID: "b"}))
}

func TestUserRepo_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()

	require.NoError(t, repo.Create(ctx, users.User{ID: "u1", Email: "a@b.co"}))
	assert.ErrorIs(t, repo.Create(ctx, users.User{ID: "u2", Email: "a@b.co"}), users.ErrConflict)

	u, err := repo.GetByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = repo.GetByID(ctx, "u2")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestApplicationRepo_NewestFirstAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepo()

	require.NoError(t, repo.Create(ctx, applications.Application{ID: "1", ApplicantUserID: "u1", Status: models.ApplicationPending}))
	require.NoError(t, repo.Create(ctx, applications.Application{ID: "2", ApplicantUserID: "u2", Status: models.ApplicationApproved}))
	require.NoError(t, repo.Create(ctx, applications.Application{ID: "3", ApplicantUserID: "u1", Status: models.ApplicationPending}))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1"}, ids(all))

	pending, err := repo.List(ctx, models.ApplicationPending)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, ids(pending))

	mine, err := repo.ListByApplicant(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(mine))

	assert.ErrorIs(t, repo.Update(ctx, applications.Application{ID: "9"}), applications.ErrNotFound)
}

func ids(items []applications.Application) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}
