package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRealMain(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupErr  error
		wantCode  int
		wantFlush bool
	}{
		{
			name:     "missing command",
			args:     nil,
			wantCode: 2,
		},
		{
			name:     "bad flag",
			args:     []string{"autoplay", "-profile", "grandmaster"},
			wantCode: 2,
		},
		{
			name:     "help",
			args:     []string{"play", "-h"},
			wantCode: 0,
		},
		{
			name:      "unknown command still flushes telemetry",
			args:      []string{"deal"},
			wantCode:  1,
			wantFlush: true,
		},
		{
			name:      "telemetry setup error still flushes",
			args:      []string{"deal"},
			setupErr:  errors.New("exporter unavailable"),
			wantCode:  1,
			wantFlush: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flushed := false

			previous := setupTelemetry
			setupTelemetry = func(context.Context, string) (func(context.Context) error, error) {
				return func(context.Context) error {
					flushed = true

					return nil
				}, tt.setupErr
			}
			t.Cleanup(func() { setupTelemetry = previous })

			require.Equal(t, tt.wantCode, realMain(tt.args))
			require.Equal(t, tt.wantFlush, flushed)
		})
	}
}
