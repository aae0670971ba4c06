package config

import "testing"

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without JWT_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("default port = %d, want 3000", cfg.Port)
	}
	if cfg.Addr() != ":3000" {
		t.Errorf("Addr() = %q, want :3000", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("ALLOWED_ORIGINS", "https://pharmaonline.example, https://admin.pharmaonline.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8081 {
		t.Errorf("port = %d, want 8081", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("origins = %v, want 2 entries", cfg.AllowedOrigins)
	}
	cc := cfg.CorsConfig()
	if len(cc.AllowOrigins) != 2 {
		t.Errorf("cors origins = %v, want the configured pair", cc.AllowOrigins)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "nope")
	if _, err := Load(); err == nil {
		t.Fatal("Load should reject a non-numeric HTTP_PORT")
	}
}
