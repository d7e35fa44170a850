package roadmaps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-detector/internal/questionnaire"
)

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	_, err := repo.GetByID(ctx, "rm-1")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.SetExportKey(ctx, "rm-1", "k"), ErrNotFound)

	require.NoError(t, repo.Create(ctx, Roadmap{ID: "rm-1"}))
	require.NoError(t, repo.SetExportKey(ctx, "rm-1", "k"))

	rm, err := repo.GetByID(ctx, "rm-1")
	require.NoError(t, err)
	assert.Equal(t, "k", rm.ExportKey)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, repo.Create(canceled, Roadmap{ID: "rm-2"}), context.Canceled)
}

type setCall struct {
	key string
	ttl time.Duration
}

type fakeRedis struct {
	data map[string]string
	sets []setCall
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.sets = append(f.sets, setCall{key: key, ttl: expiration})
	return redis.NewStatusResult("OK", nil)
}

func TestRedisRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	repo := NewRedisRepo(client, time.Hour)

	rm := Roadmap{
		ID:        "rm-1",
		Responses: questionnaire.Responses{"interests": []string{"Technology"}, "topics": "coding"},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, rm))
	require.NoError(t, repo.SetExportKey(ctx, "rm-1", "roadmaps/x/rm-1.json"))

	got, err := repo.GetByID(ctx, "rm-1")
	require.NoError(t, err)
	assert.Equal(t, rm.Responses, got.Responses)
	assert.Equal(t, rm.CreatedAt, got.CreatedAt)
	assert.Equal(t, "roadmaps/x/rm-1.json", got.ExportKey)

	require.Len(t, client.sets, 2)
	assert.Equal(t, setCall{key: "roadmap:rm-1", ttl: time.Hour}, client.sets[0])
	assert.Equal(t, time.Duration(redis.KeepTTL), client.sets[1].ttl)
}

func TestRedisRepoMissingAndErrors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	repo := NewRedisRepo(client, 0)
	assert.Equal(t, defaultRoadmapTTL, repo.ttl)

	_, err := repo.GetByID(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.SetExportKey(ctx, "nope", "k"), ErrNotFound)

	boom := errors.New("connection refused")
	client.err = boom
	_, err = repo.GetByID(ctx, "rm-1")
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, repo.Create(ctx, Roadmap{ID: "rm-1"}), boom)
}
