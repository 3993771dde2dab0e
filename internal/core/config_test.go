package core

import "testing"

func TestRuntimeConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   RuntimeConfig
		want RuntimeConfig
	}{
		{"zero", RuntimeConfig{}, RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}},
		{"keeps values", RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 30, Seed: 9}, RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 30, Seed: 9}},
		{"negative tick rate", RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: -1, Seed: 3}, RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60, Seed: 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.WithDefaults(); got != tc.want {
				t.Errorf("WithDefaults() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
