package auth

import (
	"time"

	"bolpurmart/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v4"
)

type claims struct {
	Email   string `json:"email"`
	Version int    `json:"ver"`
	jwt.RegisteredClaims
}

func (p *Provider) sign(c CredentialDTO, now time.Time) (string, time.Time, error) {
	expires := now.Add(p.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:   c.Email,
		Version: c.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.PartnerID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// parse checks signature and expiry against the provider clock. Revocation is checked
// by the caller.
func (p *Provider) parse(raw string) (*claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var c claims
	if _, err := parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}); err != nil {
		return nil, invalidToken()
	}
	if c.Subject == "" || c.Issuer != issuer || !c.VerifyExpiresAt(p.now(), true) {
		return nil, invalidToken()
	}
	return &c, nil
}

func invalidToken() error {
	return errs.NewAuthError(errs.AuthCodeInvalidToken, "session token is invalid or expired")
}
