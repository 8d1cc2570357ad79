package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/cache"
	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

type testEnv struct {
	db      *gorm.DB
	follows FollowService
	msgs    MessageService
	outbox  repository.OutboxRepository
	stats   repository.UserStatsRepository
	convs   repository.ConversationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	statsRepo := repository.NewUserStatsRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	followSvc := NewFollowService(db, followRepo, userRepo, statsRepo, convRepo, outboxRepo, (*cache.FollowerCache)(nil))
	msgSvc := NewMessageService(db, msgRepo, convRepo, userRepo, outboxRepo, followSvc)

	return &testEnv{
		db:      db,
		follows: followSvc,
		msgs:    msgSvc,
		outbox:  outboxRepo,
		stats:   statsRepo,
		convs:   convRepo,
	}
}
