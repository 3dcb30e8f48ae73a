package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simslyfe/server/internal/domain/life"
)

func TestAutoplayAdvancesYears(t *testing.T) {
	st := newTestStore(1, "US")
	auto := NewAutoplay(st, nil, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go auto.Start(ctx)

	require.Eventually(t, func() bool {
		return st.Snapshot().Age >= 2
	}, 2*time.Second, 5*time.Millisecond)

	auto.Stop()
	require.Eventually(t, func() bool { return !auto.Running() }, time.Second, 5*time.Millisecond)
}

func TestAutoplayStopsOnContextCancel(t *testing.T) {
	st := newTestStore(1, "US")
	auto := NewAutoplay(st, nil, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go auto.Start(ctx)
	require.Eventually(t, func() bool { return auto.Running() }, time.Second, time.Millisecond)

	cancel()
	require.Eventually(t, func() bool { return !auto.Running() }, time.Second, time.Millisecond)
}

func TestAutoplayTickCallbackSeesFreshSnapshot(t *testing.T) {
	st := newTestStore(1, "US")

	ages := make(chan int, 16)
	auto := NewAutoplay(st, nil, 5*time.Millisecond, func(s life.State) {
		select {
		case ages <- s.Age:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go auto.Start(ctx)

	select {
	case age := <-ages:
		assert.GreaterOrEqual(t, age, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("no tick callback received")
	}
}
