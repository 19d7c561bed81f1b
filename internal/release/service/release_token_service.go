package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	releaseDomain "github.com/lifekey/lifekey/internal/release/domain"
)

// releaseClaims is the signed payload of a release token.
type releaseClaims struct {
	ReleaseID   uuid.UUID `json:"release_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	jwt.RegisteredClaims
}

// jwtReleaseTokenCodec implements ReleaseTokenCodec using HMAC-SHA256 signed
// compact claims. The signing secret is independent from the session token
// secret so the two token kinds can never be swapped.
type jwtReleaseTokenCodec struct {
	secret []byte
}

// NewReleaseTokenCodec creates a ReleaseTokenCodec signing with the given secret.
func NewReleaseTokenCodec(secret string) ReleaseTokenCodec {
	return &jwtReleaseTokenCodec{secret: []byte(secret)}
}

// Encode mints a signed release token. The expiry window is enforced at
// decode time from the issue timestamp, and re-checked against the stored
// release row.
func (s *jwtReleaseTokenCodec) Encode(releaseID, recipientID uuid.UUID) (string, error) {
	claims := releaseClaims{
		ReleaseID:   releaseID,
		RecipientID: recipientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
			Subject:  releaseID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Decode verifies the signature and returns the embedded identifiers.
// Returns ErrReleaseExpired when the token is older than maxAge, and
// ErrInvalidReleaseToken for a bad signature, a non-HMAC signing method, or
// a payload missing either identifier.
func (s *jwtReleaseTokenCodec) Decode(tokenString string, maxAge time.Duration) (uuid.UUID, uuid.UUID, error) {
	var claims releaseClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, releaseDomain.ErrInvalidReleaseToken
	}

	if claims.ReleaseID == uuid.Nil || claims.RecipientID == uuid.Nil {
		return uuid.Nil, uuid.Nil, releaseDomain.ErrInvalidReleaseToken
	}
	if claims.IssuedAt == nil {
		return uuid.Nil, uuid.Nil, releaseDomain.ErrInvalidReleaseToken
	}

	if time.Now().UTC().Sub(claims.IssuedAt.Time) > maxAge {
		return uuid.Nil, uuid.Nil, releaseDomain.ErrReleaseExpired
	}

	return claims.ReleaseID, claims.RecipientID, nil
}
