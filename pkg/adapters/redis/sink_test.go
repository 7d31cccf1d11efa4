package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tendril/pkg/adapters/redis"
	"github.com/aretw0/tendril/pkg/host"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSink(t *testing.T, opts ...redis.Option) (*redis.Sink, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...), client
}

func TestSink_FlushWritesStream(t *testing.T) {
	sink, client := newSink(t)
	ctx := context.Background()
	require.NoError(t, sink.Ping(ctx))

	sink.Emit(host.Record{Frame: 1, Generator: "log", Port: "value0", Value: 0.5})
	sink.Emit(host.Record{Frame: 2, Generator: "log", Port: "value0", Value: "hi"})
	require.NoError(t, sink.Flush(ctx))

	n, err := client.XLen(ctx, redis.DefaultStream).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	recent, err := sink.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint64(1), recent[0].Frame)
	assert.Equal(t, 0.5, recent[0].Value)
	assert.Equal(t, "hi", recent[1].Value)
}

func TestSink_NonFiniteValues(t *testing.T) {
	sink, _ := newSink(t)
	ctx := context.Background()

	sink.Emit(host.Record{Frame: 1, Generator: "m", Port: "aOverB", Value: 1.0 / zero()})
	require.NoError(t, sink.Flush(ctx))

	recent, err := sink.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "+Inf", recent[0].Value)
}

func TestSink_MaxLenTrims(t *testing.T) {
	sink, client := newSink(t, redis.WithStream("s"), redis.WithMaxLen(3))
	ctx := context.Background()

	for i := range 5 {
		sink.Emit(host.Record{Frame: uint64(i), Generator: "log", Port: "value0", Value: i})
	}
	require.NoError(t, sink.Flush(ctx))

	n, err := client.XLen(ctx, "s").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSink_DropsWhenFull(t *testing.T) {
	sink, _ := newSink(t, redis.WithBuffer(2))

	for range 5 {
		sink.Emit(host.Record{Generator: "log", Port: "value0", Value: 1})
	}
	assert.Equal(t, uint64(3), sink.Dropped())
}

func TestSink_Run(t *testing.T) {
	sink, client := newSink(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sink.Run(ctx) }()

	sink.Emit(host.Record{Frame: 7, Generator: "log", Port: "value1", Value: true})

	assert.Eventually(t, func() bool {
		n, err := client.XLen(context.Background(), redis.DefaultStream).Result()
		return err == nil && n == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func zero() float64 { return 0 }
