package config

import (
	"strings"
	"testing"
)

func TestValidateConfigTrustedProxies(t *testing.T) {
	t.Run("accepts valid IP and CIDR", func(t *testing.T) {
		cfg := LoadConfig()
		cfg.TrustedProxies = []string{"127.0.0.1", "::1", "10.0.0.0/8"}

		if err := ValidateConfig(cfg); err != nil {
			t.Fatalf("expected trusted proxies to be valid, got error: %v", err)
		}
	})

	t.Run("rejects invalid trusted proxy entry", func(t *testing.T) {
		cfg := LoadConfig()
		cfg.TrustedProxies = []string{"invalid-proxy-value"}

		err := ValidateConfig(cfg)
		if err == nil {
			t.Fatal("expected validation error for invalid trusted proxy")
		}
		if !strings.Contains(err.Error(), "TRUSTED_PROXIES") {
			t.Fatalf("expected TRUSTED_PROXIES error, got: %v", err)
		}
	})
}

func TestValidateConfigUploadSize(t *testing.T) {
	t.Run("rejects non-positive max upload bytes", func(t *testing.T) {
		cfg := LoadConfig()
		cfg.MaxUploadBytes = 0

		if err := ValidateConfig(cfg); err == nil {
			t.Fatal("expected error for zero MAX_UPLOAD_BYTES")
		}
	})

	t.Run("rejects max upload bytes above the 100MB ceiling", func(t *testing.T) {
		cfg := LoadConfig()
		cfg.MaxUploadBytes = 200 << 20

		err := ValidateConfig(cfg)
		if err == nil {
			t.Fatal("expected error for oversized MAX_UPLOAD_BYTES")
		}
		if !strings.Contains(err.Error(), "MAX_UPLOAD_BYTES") {
			t.Fatalf("expected MAX_UPLOAD_BYTES error, got: %v", err)
		}
	})
}

func TestValidateConfigMinConfidence(t *testing.T) {
	cases := []struct {
		name      string
		threshold float64
		wantErr   bool
	}{
		{"default is valid", DefaultMinConfidence, false},
		{"zero is valid", 0, false},
		{"one is valid", 1, false},
		{"negative is invalid", -0.1, true},
		{"above one is invalid", 1.1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := LoadConfig()
			cfg.MinConfidence = tc.threshold

			err := ValidateConfig(cfg)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for MIN_CONFIDENCE=%v", tc.threshold)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for MIN_CONFIDENCE=%v: %v", tc.threshold, err)
			}
		})
	}
}

func TestValidateConfigCORSOrigins(t *testing.T) {
	t.Run("rejects empty origin list", func(t *testing.T) {
		cfg := LoadConfig()
		cfg.CORSOrigins = nil

		if err := ValidateConfig(cfg); err == nil {
			t.Fatal("expected error for empty CORS_ORIGINS")
		}
	})

	t.Run("rejects non-URL origin", func(t *testing.T) {
		cfg := LoadConfig()
		cfg.CORSOrigins = []string{"not-a-url"}

		if err := ValidateConfig(cfg); err == nil {
			t.Fatal("expected error for malformed CORS origin")
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.MinConfidence != DefaultMinConfidence {
		t.Fatalf("expected default MinConfidence %v, got %v", DefaultMinConfidence, cfg.MinConfidence)
	}
	if cfg.StreamingRowLimit != DefaultStreamingRowLimit {
		t.Fatalf("expected default StreamingRowLimit %v, got %v", DefaultStreamingRowLimit, cfg.StreamingRowLimit)
	}
	if cfg.EmbeddingEnabled {
		t.Fatal("expected EmbeddingEnabled false when OPENAI_API_KEY is unset")
	}
	if cfg.SchemaDir != DefaultSchemaDir {
		t.Fatalf("expected default SchemaDir %v, got %v", DefaultSchemaDir, cfg.SchemaDir)
	}
	if cfg.AliasDir != DefaultAliasDir {
		t.Fatalf("expected default AliasDir %v, got %v", DefaultAliasDir, cfg.AliasDir)
	}
	if cfg.UseValueStatistics {
		t.Fatal("expected UseValueStatistics false by default")
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected default config to validate, got: %v", err)
	}
}
