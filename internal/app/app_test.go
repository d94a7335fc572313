package app

import (
	"testing"

	coreconfig "github.com/m3rciful/anketabot/core/config"
	"github.com/m3rciful/anketabot/internal/review"
)

func testConfig(t *testing.T) *coreconfig.Config {
	t.Helper()
	cfg := &coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{Token: "123:abc", AdminID: 999},
	}
	if err := coreconfig.Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return cfg
}

func TestNewRegistersRoutes(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	cmds := a.registry.Commands()
	for _, name := range []string{"/start", "/version"} {
		if _, ok := cmds[name]; !ok {
			t.Fatalf("command %s not registered", name)
		}
	}
	if !cmds["/version"].AdminOnly || !cmds["/version"].Hidden {
		t.Fatal("/version should be admin-only and hidden")
	}

	for _, key := range []string{review.CallbackAccept, review.CallbackDecline} {
		if _, ok := a.registry.GetCallback(key); !ok {
			t.Fatalf("callback %s not registered", key)
		}
	}
	if a.registry.TextFallback() == nil {
		t.Fatal("text fallback not set")
	}
}

func TestNewVisibleCommands(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	visible := a.registry.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("visible commands = %+v, want only start", visible)
	}
}

func TestNewRejectsNilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
