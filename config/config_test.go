package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	expected := Config{1, 50000, 0, 40, 0, ""}
	if *cfg != expected {
		t.Errorf("expected %+v, got %+v", expected, *cfg)
	}
}

func TestValidate(t *testing.T) {
	for i, c := range []struct {
		cfg   *Config
		valid bool
	}{
		{DefaultConfig(), true},
		{NewConfig(1, 1, 0, 0, 0, ""), true},
		{NewConfig(1, 0, 0, 40, 0, ""), false},
		{NewConfig(1, -5, 0, 40, 0, ""), false},
		{NewConfig(1, 100, -1, 40, 0, ""), false},
		{NewConfig(-1, 100, 0, 40, 0, ""), false},
	} {
		if err := c.cfg.Validate(); (err == nil) != c.valid {
			t.Errorf("[%d] %+v: expected valid=%v, got %v", i, *c.cfg, c.valid, err)
		}
	}
}
