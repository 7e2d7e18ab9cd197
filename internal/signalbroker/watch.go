// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/decks/internal/ctxlog"
)

// Watch cancels the build on the first signal received on sigCh.
// Further signals are logged and otherwise ignored. Watch returns when sigCh is closed.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc) {
	cancelled := false

	for sig := range sigCh {
		if cancelled {
			ctxlog.Warn(ctx, "signalbroker",
				"detail", "already stopping, waiting for in-flight renders to finish",
				"signal", sig.String())

			continue
		}

		ctxlog.Warn(ctx, "signalbroker",
			"detail", "received signal, no new topics will start",
			"signal", sig.String())
		cancel()

		cancelled = true
	}
}
