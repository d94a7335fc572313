package review

import (
	"strings"
	"testing"

	coreconfig "github.com/m3rciful/anketabot/core/config"
)

func TestStaticIssuer(t *testing.T) {
	issuer := StaticIssuer{Token: "ABRAKADABRA-sd-125xx-a"}
	for i := 0; i < 3; i++ {
		token, err := issuer.Issue()
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if token != "ABRAKADABRA-sd-125xx-a" {
			t.Fatalf("token = %q", token)
		}
	}
}

func TestRandomIssuer(t *testing.T) {
	issuer := RandomIssuer{}

	first, err := issuer.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, err := issuer.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, token := range []string{first, second} {
		if !strings.HasPrefix(token, TokenPrefix) {
			t.Fatalf("token %q lacks prefix %q", token, TokenPrefix)
		}
		if got := len(token) - len(TokenPrefix); got != TokenLength {
			t.Fatalf("token %q random length = %d, want %d", token, got, TokenLength)
		}
	}
	if first == second {
		t.Fatalf("consecutive tokens collided: %q", first)
	}
}

func TestNewIssuer(t *testing.T) {
	static := NewIssuer(coreconfig.ReviewConfig{TokenMode: coreconfig.TokenModeStatic, StaticToken: "s"})
	if _, ok := static.(StaticIssuer); !ok {
		t.Fatalf("static mode issuer = %T", static)
	}

	random := NewIssuer(coreconfig.ReviewConfig{TokenMode: coreconfig.TokenModeRandom})
	if _, ok := random.(RandomIssuer); !ok {
		t.Fatalf("random mode issuer = %T", random)
	}
}
