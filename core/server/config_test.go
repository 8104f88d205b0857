package server_test

import (
	"testing"
	"time"

	"lr2immich/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_SyncInterval(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    time.Duration
	}{
		{"Default", 360, 6 * time.Hour},
		{"Hourly", 60, time.Hour},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{SyncIntervalMinutes: tt.minutes}
			assert.Equal(t, tt.want, c.SyncInterval())
		})
	}
}
