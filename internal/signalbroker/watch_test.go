// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"testing"

	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// signal.Notify starts a runtime goroutine that outlives signal.Stop.
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("os/signal.loop"), goleak.IgnoreTopFunction("os/signal.signal_recv"))
}

func TestWatch_FirstSignalCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(ctxlog.Discard(context.Background()))
	defer cancel()

	sigCh := make(chan os.Signal, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	sigCh <- os.Interrupt

	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	close(sigCh)
	wg.Wait()
}

func TestWatch_LaterSignalsAreLogged(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.New(context.Background(), logger)

	calls := 0
	cancel := func() { calls++ }

	sigCh := make(chan os.Signal, 3)
	sigCh <- os.Interrupt
	sigCh <- os.Interrupt
	sigCh <- syscall.SIGTERM
	close(sigCh)

	Watch(ctx, sigCh, cancel)

	assert.Equal(t, 1, calls, "cancel is called once")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("no new topics will start")))
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("already stopping")))
}

func TestWatch_ClosedChannelReturns(t *testing.T) {
	sigCh := make(chan os.Signal)
	close(sigCh)

	Watch(ctxlog.Discard(context.Background()), sigCh, func() { t.Fatal("cancel must not be called") })
}

func TestNewAndStop(t *testing.T) {
	ch := New(ctxlog.Discard(context.Background()), os.Interrupt)
	assert.Equal(t, 1, cap(ch))

	Stop(ch)

	_, ok := <-ch
	assert.False(t, ok)
}
