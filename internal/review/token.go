package review

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"

	coreconfig "github.com/m3rciful/anketabot/core/config"
)

// TokenIssuer produces access tokens for accepted applicants.
type TokenIssuer interface {
	Issue() (string, error)
}

// StaticIssuer hands every applicant the same configured token. This mirrors
// the placeholder behaviour the flow shipped with; it is not a credential
// scheme, and nothing stores or validates the value.
type StaticIssuer struct {
	Token string
}

// Issue returns the configured token.
func (s StaticIssuer) Issue() (string, error) {
	return s.Token, nil
}

// TokenPrefix is prepended to every randomly generated token.
var TokenPrefix = "tok-"

// TokenAlphabet defines the character set for the random portion of a token.
var TokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenLength is the number of random characters generated (excluding the prefix).
var TokenLength = 21

// RandomIssuer generates a fresh token per applicant.
type RandomIssuer struct{}

// Issue returns a new unique token.
func (RandomIssuer) Issue() (string, error) {
	id, err := nanoid.Generate(TokenAlphabet, TokenLength)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}
	return TokenPrefix + id, nil
}

// NewIssuer selects the issuer implied by the review configuration.
func NewIssuer(cfg coreconfig.ReviewConfig) TokenIssuer {
	if cfg.TokenMode == coreconfig.TokenModeRandom {
		return RandomIssuer{}
	}
	return StaticIssuer{Token: cfg.StaticToken}
}
