package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the API needs from a verified token.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier accepts HS256 tokens signed with a shared secret and RS256
// tokens whose key is published in a JWKS.
type Verifier struct {
	secret []byte
	jwks   *Provider
}

// NewVerifier returns a verifier. Either source may be empty; tokens for a
// missing source are rejected.
func NewVerifier(secret string, jwks *Provider) *Verifier {
	v := &Verifier{jwks: jwks}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, v.keyFunc,
		jwt.WithValidMethods([]string{"HS256", "RS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token has no subject")
	}

	id := &Identity{Subject: sub}
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	id.Picture, _ = claims["picture"].(string)
	return id, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.secret == nil {
			return nil, errors.New("HS256 token received but AUTH_JWT_SECRET is not configured")
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.jwks == nil {
			return nil, errors.New("RS256 token received but AUTH_JWKS_URL is not configured")
		}
		return v.jwks.KeyFunc(token)
	}
	return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
}
