package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/internal/search"
	"github.com/d60-Lab/tastegraph/pkg/apperr"
)

func newUserService(t *testing.T) (UserService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewUserService(env.db,
		repository.NewUserRepository(env.db),
		repository.NewUserStatsRepository(env.db),
		"test-secret", time.Hour)
	return svc, env
}

func TestRegisterAndLogin(t *testing.T) {
	svc, env := newUserService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, &RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		IsChef:   true,
	})
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)

	// 注册即有零值计数行
	var statRows int64
	require.NoError(t, env.db.Model(&model.UserStats{}).Where("user_id = ?", dto.ID).Count(&statRows).Error)
	assert.EqualValues(t, 1, statRows)

	token, user, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, dto.ID, user.ID)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, _, err = svc.Login(ctx, "nobody", "secret1")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{Username: "alice", Email: "other@example.com", Password: "secret1"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Register(ctx, &RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "secret1"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestProfileWithStats(t *testing.T) {
	svc, env := newUserService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, &RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	fan, err := svc.Register(ctx, &RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = env.follows.Follow(ctx, fan.ID, dto.ID)
	require.NoError(t, err)
	require.NoError(t, svc.SetRecipeCount(ctx, dto.ID, 7))

	profile, err := svc.Profile(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.FollowersCount)
	assert.Equal(t, 7, profile.RecipeCount)

	_, err = svc.Profile(ctx, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSearchUsers(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		Username: "chefanna", Email: "anna@example.com", Password: "secret1",
		IsChef: true, DietaryPreferences: []string{"VEGAN"},
	})
	require.NoError(t, err)
	_, err = svc.Register(ctx, &RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	isChef := true
	page, err := svc.Search(ctx, &search.UserFilter{IsChef: &isChef})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalElements)
	assert.Equal(t, "chefanna", page.Data[0].Username)
	assert.Empty(t, page.Data[0].Email)

	page, err = svc.Search(ctx, &search.UserFilter{DietaryPreference: "VEGAN"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalElements)

	page, err = svc.Search(ctx, &search.UserFilter{Filter: search.Filter{SearchValue: "BOB"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalElements)
}
