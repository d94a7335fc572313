package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc", AdminID: 999},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run_mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
	if cfg.Intake.ReviewerID != 999 {
		t.Fatalf("reviewer_id = %d, want admin fallback 999", cfg.Intake.ReviewerID)
	}
	if cfg.Intake.MinAge != 18 {
		t.Fatalf("min_age = %d, want 18", cfg.Intake.MinAge)
	}
	if cfg.Review.TokenMode != TokenModeStatic {
		t.Fatalf("token_mode = %q, want static", cfg.Review.TokenMode)
	}
	if cfg.Review.StaticToken == "" || cfg.Review.OnboardingURL == "" {
		t.Fatalf("review defaults missing: %+v", cfg.Review)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for missing telegram token")
	}
}

func TestNormalizeRequiresReviewer(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.AdminID = 0
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "reviewer_id") {
		t.Fatalf("err = %v, want reviewer requirement", err)
	}
}

func TestNormalizeExplicitReviewerWins(t *testing.T) {
	cfg := validConfig()
	cfg.Intake.ReviewerID = 777
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Intake.ReviewerID != 777 {
		t.Fatalf("reviewer_id = %d, want 777", cfg.Intake.ReviewerID)
	}
}

func TestNormalizeTokenMode(t *testing.T) {
	cfg := validConfig()
	cfg.Review.TokenMode = " Random "
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Review.TokenMode != TokenModeRandom {
		t.Fatalf("token_mode = %q, want random", cfg.Review.TokenMode)
	}

	cfg = validConfig()
	cfg.Review.TokenMode = "rotating"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown token_mode")
	}
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "webhook"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for webhook mode without url")
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "webhook"
	cfg.Webhook = WebhookConfig{URL: "https://bot.example.com/hook", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
}

func TestNormalizeRateLimitExcludes(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Fatalf("excludes = %v", cfg.RateLimit.ExcludeUpdates)
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"poll"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown exclude type")
	}
}
