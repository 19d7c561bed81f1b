package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	userDomain "github.com/lifekey/lifekey/internal/user/domain"
)

// sessionClaims is the signed payload of a session token. Only the user
// identifier is carried; possession of a validly signed token is the whole
// credential.
type sessionClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// jwtSessionTokenCodec implements SessionTokenCodec using HMAC-SHA256 signed
// compact claims. The signing secret is independent from the release token
// secret so the two token kinds can never be swapped.
type jwtSessionTokenCodec struct {
	secret []byte
}

// NewSessionTokenCodec creates a SessionTokenCodec signing with the given secret.
func NewSessionTokenCodec(secret string) SessionTokenCodec {
	return &jwtSessionTokenCodec{secret: []byte(secret)}
}

// Encode mints a signed session token for the user. Session tokens carry an
// issue timestamp but no expiry; they stay valid until the secret rotates.
func (s *jwtSessionTokenCodec) Encode(userID uuid.UUID) (string, error) {
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
			Subject:  userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Decode verifies the signature and returns the embedded user identifier.
// Returns ErrInvalidSessionToken for a bad signature, a non-HMAC signing
// method, or a payload missing the user identifier.
func (s *jwtSessionTokenCodec) Decode(tokenString string) (uuid.UUID, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, userDomain.ErrInvalidSessionToken
	}

	if claims.UserID == uuid.Nil {
		return uuid.Nil, userDomain.ErrInvalidSessionToken
	}

	return claims.UserID, nil
}
