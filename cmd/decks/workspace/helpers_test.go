// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"context"

	"github.com/urfave/cli/v3"
)

func newTestCommand(fn func(context.Context, *Workspace)) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w, err := Open(ctx, cmd)
			if err != nil {
				return err
			}

			fn(ctx, w)

			return nil
		},
	}
}
