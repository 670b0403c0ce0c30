package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/account"
)

const (
	CorrelationIDHeader = "X-Correlation-ID"
	correlationIDKey    = "correlationID"
	usernameKey         = "username"
)

// CorrelationIDMiddleware ensures every request carries a correlation ID,
// reusing the caller's X-Correlation-ID when one is sent
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(correlationIDKey, correlationID)
		c.Header(CorrelationIDHeader, correlationID)

		c.Next()
	}
}

// GetCorrelationID retrieves the correlation ID from the Gin context
func GetCorrelationID(c *gin.Context) string {
	if id, exists := c.Get(correlationIDKey); exists {
		if correlationID, ok := id.(string); ok {
			return correlationID
		}
	}
	return ""
}

// RequestLoggingMiddleware logs every completed request
func RequestLoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("correlation_id", GetCorrelationID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(startTime)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if username := c.GetString(usernameKey); username != "" {
			fields = append(fields, zap.String("username", username))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("Request failed", append(fields, zap.Strings("errors", c.Errors.Errors()))...)
			return
		}
		log.Info("Request completed", fields...)
	}
}

// Authenticator checks dashboard account credentials
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// AuthMiddleware accepts either the service token as "Bearer <token>" or,
// when accounts is set, a dashboard account over HTTP Basic auth
func AuthMiddleware(validToken string, accounts Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing authorization header"})
			return
		}

		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(validToken)) != 1 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
				return
			}
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok || accounts == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		user, err := accounts.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			return
		}

		c.Set(usernameKey, user.Username)
		c.Next()
	}
}

// configureCORS returns a CORS middleware for the given origins
func configureCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", CorrelationIDHeader}

	return cors.New(corsConfig)
}
