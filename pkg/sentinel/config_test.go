package sentinel

import (
	"testing"
	"tripwire/pkg/primitives"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(17, 2, Corrupt)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.NoiseLow != DefaultNoiseLow || cfg.NoiseHigh != DefaultNoiseHigh {
		t.Errorf("Expected default noise interval [%d, %d], got [%d, %d]",
			DefaultNoiseLow, DefaultNoiseHigh, cfg.NoiseLow, cfg.NoiseHigh)
	}

	if _, err := NewConfig(17, 2, ResponseMode(99)); err == nil {
		t.Error("Expected error for unknown response mode")
	}
}

func TestConfigEnabled(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		enabled bool
	}{
		{"Nil config", nil, false},
		{"Fully configured", &Config{Table: 17, Column: 2}, true},
		{"Table unset", &Config{Column: 2}, false},
		{"Column unset", &Config{Table: 17}, false},
		{"Both unset", &Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Enabled(); got != tt.enabled {
				t.Errorf("Enabled() = %v, want %v", got, tt.enabled)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		expectErr bool
	}{
		{"Nil config", nil, false},
		{"Disabled but consistent", &Config{NoiseLow: -5, NoiseHigh: 5}, false},
		{"Empty noise interval", &Config{NoiseLow: 3, NoiseHigh: 1}, true},
		{"Asymmetric interval", &Config{NoiseLow: -2, NoiseHigh: 5}, true},
		{"Unknown mode", &Config{Mode: ResponseMode(42), NoiseLow: -5, NoiseHigh: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestConfigSeverity(t *testing.T) {
	tests := []struct {
		mode     ResponseMode
		severity Severity
	}{
		{AbortStatement, SeverityStatement},
		{AbortSession, SeveritySession},
		{Corrupt, SeverityStatement},
	}

	for _, tt := range tests {
		cfg := &Config{Table: primitives.TableID(17), Column: 2, Mode: tt.mode}
		if got := cfg.Severity(); got != tt.severity {
			t.Errorf("Severity() for mode %v = %v, want %v", tt.mode, got, tt.severity)
		}
	}
}

func TestAbortError(t *testing.T) {
	err := newAbortError(SeveritySession, 17)

	if !IsAbort(err) {
		t.Error("IsAbort should recognize an AbortError")
	}
	if !err.SessionFatal() {
		t.Error("Session severity should be session-fatal")
	}
	if IsAbort(nil) {
		t.Error("IsAbort(nil) should be false")
	}
}
