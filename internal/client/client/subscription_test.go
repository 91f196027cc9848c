package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromChannel_ForwardsUntilSourceCloses(t *testing.T) {
	src := make(chan int, 2)
	src <- 1
	src <- 2
	close(src)

	sub := FromChannel(context.Background(), src)

	var got []int
	for v := range sub.C {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
	assert.NoError(t, sub.Err())
}

func TestFromChannel_CloseStopsDelivery(t *testing.T) {
	src := make(chan int)
	sub := FromChannel(context.Background(), src)

	done := make(chan struct{})
	go func() {
		sub.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
	_, open := <-sub.C
	require.False(t, open)
}
