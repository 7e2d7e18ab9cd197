// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelection(t *testing.T) {
	tests := []struct {
		name    string
		all     bool
		stale   bool
		names   []string
		want    Selection
		wantErr error
	}{
		{name: "default is stale", want: Selection{Mode: ModeStale}},
		{name: "stale", stale: true, want: Selection{Mode: ModeStale}},
		{name: "all", all: true, want: Selection{Mode: ModeAll}},
		{
			name:  "names",
			names: []string{"borrow", "", "hello", "borrow"},
			want:  Selection{Mode: ModeExplicit, Names: []string{"borrow", "hello"}},
		},
		{name: "all and stale", all: true, stale: true, wantErr: ErrConflictingSelection},
		{name: "all and names", all: true, names: []string{"hello"}, wantErr: ErrConflictingSelection},
		{name: "stale and names", stale: true, names: []string{"hello"}, wantErr: ErrConflictingSelection},
		{name: "only empty names", names: []string{""}, want: Selection{Mode: ModeStale}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSelection(tt.all, tt.stale, tt.names)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrConfiguration)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "stale", ModeStale.String())
	assert.Equal(t, "all", ModeAll.String())
	assert.Equal(t, "explicit", ModeExplicit.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
