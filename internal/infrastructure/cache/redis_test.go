package cache

import (
	"context"
	"testing"

	"talent-match/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedis_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(config.RedisConfig{Enabled: false}, zap.NewNop())

	assert.False(t, r.Enabled())
	require.Error(t, r.Ping(ctx))
	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.Close())
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, r.Enabled())
}
