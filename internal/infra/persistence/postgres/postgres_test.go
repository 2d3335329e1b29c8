package postgres

import (
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolWait(t *testing.T) {
	prev := sql.DBStats{WaitCount: 10, WaitDuration: time.Second}

	tests := []struct {
		name      string
		cur       sql.DBStats
		wantWait  bool
		wantLevel slog.Level
	}{
		{
			name:     "no new waits",
			cur:      sql.DBStats{WaitCount: 10, WaitDuration: time.Second},
			wantWait: false,
		},
		{
			name:      "short waits are debug",
			cur:       sql.DBStats{WaitCount: 14, WaitDuration: time.Second + 40*time.Millisecond},
			wantWait:  true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "slow waits are warnings",
			cur:       sql.DBStats{WaitCount: 12, WaitDuration: time.Second + 200*time.Millisecond, InUse: 4},
			wantWait:  true,
			wantLevel: slog.LevelWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, attrs, waited := poolWait(prev, tt.cur)
			assert.Equal(t, tt.wantWait, waited)
			if !tt.wantWait {
				assert.Empty(t, attrs)

				return
			}

			assert.Equal(t, tt.wantLevel, level)
			require.NotEmpty(t, attrs)
			assert.Equal(t, "waits", attrs[0].Key)
			assert.Equal(t, tt.cur.WaitCount-prev.WaitCount, attrs[0].Value.Int64())
		})
	}
}
