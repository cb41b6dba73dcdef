package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client := ConnectRedis(ctx, mr.Addr())
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	viaURL := ConnectRedis(ctx, "redis://"+mr.Addr()+"/0")
	require.NotNil(t, viaURL)
	_ = viaURL.Close()
}

func TestConnectRedis_Unavailable(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ConnectRedis(ctx, ""))
	assert.Nil(t, ConnectRedis(ctx, "redis://%zz"))

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	assert.Nil(t, ConnectRedis(ctx, addr))
}
