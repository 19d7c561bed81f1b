package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/httputil"
	"github.com/lifekey/lifekey/internal/user/service"
	userUseCase "github.com/lifekey/lifekey/internal/user/usecase"
)

// SessionMiddleware authenticates account owners via Bearer session tokens.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Verifies the signature and extracts the user ID via the session codec
// 3. Loads the account owner from the database
// 4. Stores the user in the request context for downstream handlers via GetUser()
//
// Error handling:
//   - Missing/malformed Authorization header → 401 Unauthorized
//   - Bad signature or malformed payload → 401 Unauthorized
//   - Token references a deleted account → 401 Unauthorized
//
// All failure modes produce identical response bodies so callers cannot
// distinguish them.
func SessionMiddleware(
	sessionCodec service.SessionTokenCodec,
	userUseCase userUseCase.UserUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("session authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("session authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("session authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID, err := sessionCodec.Decode(token)
		if err != nil {
			logger.Debug("session authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		user, err := userUseCase.Get(c.Request.Context(), userID)
		if err != nil {
			// A valid signature over a deleted account still fails closed.
			if apperrors.Is(err, apperrors.ErrNotFound) {
				err = apperrors.ErrUnauthorized
			}
			logger.Debug("session authentication failed: user lookup",
				slog.String("user_id", userID.String()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
