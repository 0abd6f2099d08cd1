package config

import (
	"testing"

	"github.com/spf13/viper"
)

func defaultConfig(t *testing.T) Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		t.Fatalf("unmarshal defaults: %v", err)
	}
	return c
}

func TestDefaults(t *testing.T) {
	c := defaultConfig(t)
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
	s := c.SchedulingDefaults()
	if s.BufferMinutes != 15 || s.DefaultDuration != 60 || s.StrictRecurringBounds {
		t.Fatalf("unexpected scheduling defaults %+v", s)
	}
	want := []int{35, 60, 90, 120}
	if len(s.DurationPresets) != len(want) {
		t.Fatalf("expected presets %v, got %v", want, s.DurationPresets)
	}
	for i := range want {
		if s.DurationPresets[i] != want[i] {
			t.Fatalf("expected presets %v, got %v", want, s.DurationPresets)
		}
	}
	if c.DatabaseName != "tutorhub" || c.AppPort != "8080" {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative buffer":   func(c *Config) { c.BufferMinutes = -1 },
		"zero duration":     func(c *Config) { c.DefaultDurationMinutes = 0 },
		"negative ttl":      func(c *Config) { c.SnapshotTTLSeconds = -5 },
		"malformed presets": func(c *Config) { c.DurationPresets = "30,abc" },
		"zero preset":       func(c *Config) { c.DurationPresets = "0" },
	}
	for name, mutate := range cases {
		c := defaultConfig(t)
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestAllowedOrigins(t *testing.T) {
	c := Config{CORSAllowedOrigins: " https://a.example , https://b.example,"}
	got := c.AllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", got)
	}
	if got := (Config{}).AllowedOrigins(); len(got) != 1 || got[0] != "*" {
		t.Fatalf("expected wildcard fallback, got %v", got)
	}
}
