package main

import "testing"

func TestBuildOverrides(t *testing.T) {
	t.Run("unset flags stay nil", func(t *testing.T) {
		overrides := buildOverrides("", "", -1, -1)
		if overrides.Port != nil || overrides.LogLevel != nil || overrides.RateLimitRPS != nil || overrides.RateLimitBurst != nil {
			t.Fatalf("expected no overrides, got %+v", overrides)
		}
	})

	t.Run("set flags are applied", func(t *testing.T) {
		overrides := buildOverrides("9000", "debug", 0, 5)
		if overrides.Port == nil || *overrides.Port != "9000" {
			t.Fatalf("expected port override")
		}
		if overrides.LogLevel == nil || *overrides.LogLevel != "debug" {
			t.Fatalf("expected log level override")
		}
		if overrides.RateLimitRPS == nil || *overrides.RateLimitRPS != 0 {
			t.Fatalf("expected zero rps override to disable limiting")
		}
		if overrides.RateLimitBurst == nil || *overrides.RateLimitBurst != 5 {
			t.Fatalf("expected burst override")
		}
	})
}
