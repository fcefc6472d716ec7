package repository

import (
	"context"
	"testing"
	"time"

	"prodhub/pkg/log"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func setupJobCacheRepo(t *testing.T) (JobCacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	conf := viper.New()
	conf.Set("import.cache_ttl", 60)
	logger := log.NewLog(conf)

	return NewJobCacheRepository(NewRepository(nil, rdb, logger), conf), mr
}

func TestJobCacheStatusRoundtrip(t *testing.T) {
	repo, mr := setupJobCacheRepo(t)
	ctx := context.Background()

	total := 1000
	eta := 12
	entry := &JobStatusEntry{
		Status:        "processing",
		Progress:      42,
		TotalRows:     &total,
		ProcessedRows: 420,
		ETASeconds:    &eta,
	}
	assert.NoError(t, repo.CacheStatus(ctx, "t-1", entry))

	got, err := repo.GetStatus(ctx, "t-1")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "processing", got.Status)
	assert.Equal(t, 42, got.Progress)
	assert.Equal(t, 420, got.ProcessedRows)
	assert.NotNil(t, got.TotalRows)
	assert.Equal(t, 1000, *got.TotalRows)
	assert.NotNil(t, got.ETASeconds)
	assert.Equal(t, 12, *got.ETASeconds)

	// 写入带 TTL
	ttl := mr.TTL("job:t-1")
	assert.Equal(t, 60*time.Second, ttl)
}

func TestJobCacheStatusMiss(t *testing.T) {
	repo, _ := setupJobCacheRepo(t)

	got, err := repo.GetStatus(context.Background(), "absent")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestJobCacheStatusExpires(t *testing.T) {
	repo, mr := setupJobCacheRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.CacheStatus(ctx, "t-2", &JobStatusEntry{Status: "pending"}))
	mr.FastForward(61 * time.Second)

	got, err := repo.GetStatus(ctx, "t-2")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestJobCacheCancellationFlag(t *testing.T) {
	repo, _ := setupJobCacheRepo(t)
	ctx := context.Background()

	cancelled, err := repo.IsCancelled(ctx, "t-3")
	assert.NoError(t, err)
	assert.False(t, cancelled)

	assert.NoError(t, repo.MarkCancelled(ctx, "t-3"))

	cancelled, err = repo.IsCancelled(ctx, "t-3")
	assert.NoError(t, err)
	assert.True(t, cancelled)
}

func TestJobCacheDeleteStatusClearsBothKeys(t *testing.T) {
	repo, mr := setupJobCacheRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.CacheStatus(ctx, "t-4", &JobStatusEntry{Status: "processing"}))
	assert.NoError(t, repo.MarkCancelled(ctx, "t-4"))
	assert.NoError(t, repo.DeleteStatus(ctx, "t-4"))

	assert.False(t, mr.Exists("job:t-4"))
	assert.False(t, mr.Exists("job:t-4:cancelled"))
}
