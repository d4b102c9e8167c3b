package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"github.com/campushub/event-hub/internal/api/handler"
	"github.com/campushub/event-hub/internal/infrastructure/config"
)

func TestOpenGuard(t *testing.T) {
	live := miniredis.RunT(t)
	down := miniredis.RunT(t)
	downAddr := down.Addr()
	down.Close()

	tests := []struct {
		name       string
		redis      config.RedisConfig
		wantGuard  bool
		wantHealth bool
	}{
		{name: "connected", redis: config.RedisConfig{Enabled: true, Addr: live.Addr()}, wantGuard: true, wantHealth: true},
		{name: "unreachable", redis: config.RedisConfig{Enabled: true, Addr: downAddr}},
		{name: "disabled", redis: config.RedisConfig{Enabled: false, Addr: live.Addr()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			health := map[string]handler.Checker{}
			guard, closeGuard := openGuard(context.Background(), &config.Config{Redis: tt.redis}, zerolog.Nop(), health)
			defer closeGuard()

			if (guard != nil) != tt.wantGuard {
				t.Errorf("guard present = %v, want %v", guard != nil, tt.wantGuard)
			}
			if _, ok := health["redis"]; ok != tt.wantHealth {
				t.Errorf("redis readiness check present = %v, want %v", ok, tt.wantHealth)
			}
		})
	}
}
