package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	visitorredis "github.com/jhoicas/Visitas-api/internal/infrastructure/redis"
	"github.com/jhoicas/Visitas-api/pkg/clock"
	"github.com/jhoicas/Visitas-api/pkg/config"
)

// newTestRepo usa TEST_REDIS_ADDR con un prefijo aleatorio que se borra al terminar.
func newTestRepo(t *testing.T, clk clock.Clock) *visitorredis.VisitorRepo {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido: se omiten tests de Redis")
	}

	ctx := context.Background()
	rdb, err := visitorredis.NewClient(ctx, config.RedisConfig{Addr: addr})
	if err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	prefix := "test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		cleanup(ctx, rdb, prefix)
		_ = rdb.Close()
	})
	return visitorredis.NewVisitorRepository(rdb, prefix, clk)
}

func cleanup(ctx context.Context, rdb *goredis.Client, prefix string) {
	iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		rdb.Del(ctx, iter.Val())
	}
}

func TestVisitorRepo_Redis(t *testing.T) {
	t0 := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(t0)
	repo := newTestRepo(t, clk)
	ctx := context.Background()

	asha, err := repo.Create(ctx, "Asha Rao", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, int64(1), asha.ID)

	clk.Advance(time.Minute)
	ben, err := repo.Create(ctx, "Ben Lee", "9123456780")
	require.NoError(t, err)
	carl, err := repo.Create(ctx, "Carl", "9000000000")
	require.NoError(t, err)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{carl.ID, ben.ID, asha.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})

	clk.Advance(time.Hour)
	out, err := repo.MarkLogout(ctx, asha.ID)
	require.NoError(t, err)
	require.NotNil(t, out.LogoutTime)

	clk.Advance(time.Hour)
	again, err := repo.MarkLogout(ctx, asha.ID)
	require.NoError(t, err)
	assert.Equal(t, *out.LogoutTime, *again.LogoutTime)

	got, err := repo.GetByID(ctx, asha.ID)
	require.NoError(t, err)
	assert.Equal(t, *out.LogoutTime, *got.LogoutTime)
	assert.Equal(t, "Asha Rao", got.Name)

	missing, err := repo.MarkLogout(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
}
