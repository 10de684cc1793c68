package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) *storage.Database {
	t.Helper()

	db, err := storage.Open(sqlite.Open("file::memory:"), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { db.Close() })

	return db
}

func newUser(name string) *models.User {
	return &models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		CreatedVia:   models.CreatedViaWeb,
	}
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Limit: DefaultPageSize}, Page{}.Normalize())
	assert.Equal(t, Page{Limit: MaxPageSize, Offset: 0}, Page{Limit: 500, Offset: -2}.Normalize())
	assert.Equal(t, Page{Limit: 5, Offset: 10}, Page{Limit: 5, Offset: 10}.Normalize())
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDatabase(t))

	user := newUser("alice")
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	t.Run("Should find by id and email", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)

		found, err = repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("Should reject duplicate usernames and emails", func(t *testing.T) {
		err := repo.Create(ctx, newUser("alice"))
		assert.ErrorIs(t, err, ErrConflict)

		other := newUser("alice2")
		other.Email = "alice@example.com"
		assert.ErrorIs(t, repo.Create(ctx, other), ErrConflict)
	})

	t.Run("Should report missing users", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, repo.Update(ctx, uuid.NewString(), map[string]interface{}{"bio": "x"}), ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), ErrNotFound)
	})

	t.Run("Should update and delete", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, user.ID.String(), map[string]interface{}{"bio": "hello"}))

		found, err := repo.FindByID(ctx, user.ID.String())
		require.NoError(t, err)
		require.NotNil(t, found.Bio)
		assert.Equal(t, "hello", *found.Bio)

		require.NoError(t, repo.Delete(ctx, user.ID.String()))
		_, err = repo.FindByID(ctx, user.ID.String())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDatabase(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newUser(fmt.Sprintf("user%d", i))))
	}

	users, err := repo.List(ctx, Page{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.List(ctx, Page{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestTrackRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTrackRepository(newTestDatabase(t))
	owner := uuid.New()

	track := &models.Track{UserID: owner, Title: "Intro", AudioURL: "https://cdn/intro.mp3", IsPublic: false}
	require.NoError(t, repo.Create(ctx, track))
	require.NoError(t, repo.Create(ctx, &models.Track{UserID: uuid.New(), Title: "Other", AudioURL: "https://cdn/o.mp3"}))

	found, err := repo.FindByID(ctx, track.ID.String())
	require.NoError(t, err)
	assert.False(t, found.IsPublic)

	mine, err := repo.ListByUser(ctx, owner.String(), Page{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Intro", mine[0].Title)

	require.NoError(t, repo.Update(ctx, track.ID.String(), map[string]interface{}{"title": "Outro"}))
	found, err = repo.FindByID(ctx, track.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Outro", found.Title)

	require.NoError(t, repo.Delete(ctx, track.ID.String()))
	assert.ErrorIs(t, repo.Delete(ctx, track.ID.String()), ErrNotFound)
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPlaylistRepository(newTestDatabase(t))
	owner := uuid.New()

	require.NoError(t, repo.Create(ctx, &models.Playlist{UserID: owner, Name: "Focus"}))

	t.Run("Should reject the same name for the same owner", func(t *testing.T) {
		err := repo.Create(ctx, &models.Playlist{UserID: owner, Name: "Focus"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Should allow the same name for another owner", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, &models.Playlist{UserID: uuid.New(), Name: "Focus"}))
	})

	playlists, err := repo.List(ctx, Page{})
	require.NoError(t, err)
	assert.Len(t, playlists, 2)
}

func TestRequestLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestLogRepository(newTestDatabase(t))

	logs := []models.RequestLog{
		models.NewRequestLog(models.RequestLogInput{Timestamp: 100, Method: "GET", URI: "/a", StatusCode: 200, ResponseTimeMs: 10}),
		models.NewRequestLog(models.RequestLogInput{Timestamp: 110, Method: "GET", URI: "/a", StatusCode: 404, ResponseTimeMs: 20}),
		models.NewRequestLog(models.RequestLogInput{Timestamp: 120, Method: "POST", URI: "/b", StatusCode: 500, ResponseTimeMs: 30}),
		models.NewRequestLog(models.RequestLogInput{Timestamp: 500, Method: "GET", URI: "/c", StatusCode: 200, ResponseTimeMs: 90}),
	}
	require.NoError(t, repo.CreateBatch(ctx, logs))
	require.NoError(t, repo.CreateBatch(ctx, nil))

	count, err := repo.CountByTimeRange(ctx, 100, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	avg, err := repo.GetAverageResponseTime(ctx, 100, 200)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, avg, 0.001)

	avg, err = repo.GetAverageResponseTime(ctx, 1000, 2000)
	require.NoError(t, err)
	assert.Zero(t, avg)

	byCategory, err := repo.CountByCategory(ctx, 100, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byCategory[models.StatusSuccess])
	assert.Equal(t, int64(1), byCategory[models.StatusClientError])
	assert.Equal(t, int64(1), byCategory[models.StatusServerError])

	top, err := repo.GetTopEndpoints(ctx, 0, 1000, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, EndpointCount{URI: "/a", Count: 2}, top[0])

	recent, err := repo.FindByTimeRange(ctx, 0, 1000, Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(500), recent[0].Timestamp)

	deleted, err := repo.DeleteOldLogs(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
