package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/p-n-ai/codelearn/internal/auth"
	"github.com/p-n-ai/codelearn/internal/platform/logger"
)

const userIDKey = "userID"

// RequestLogger logs one line per request: Info for success, Warn for
// 4xx and Error for 5xx.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []any{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if uid := c.GetString(userIDKey); uid != "" {
			fields = append(fields, "user_id", uid)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// CORS allows the configured origins. A "*" entry allows every origin.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", "If-None-Match"},
		ExposeHeaders: []string{"ETag"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// OptionalAuth identifies the caller when a valid bearer token is
// present. A missing token is anonymous; an invalid one is rejected.
func OptionalAuth(iss *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requestToken(c)
		if !ok {
			c.Next()
			return
		}
		userID, err := iss.Parse(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, CodeUnauthorized, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(iss *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requestToken(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, CodeUnauthorized,
				errors.New("authorization header must be in the format: Bearer {token}"))
			return
		}
		userID, err := iss.Parse(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, CodeUnauthorized, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// requestToken reads the bearer token from the Authorization header or,
// for websocket upgrades that cannot set headers, the access_token query
// parameter.
func requestToken(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		return auth.BearerToken(h)
	}
	if t := c.Query("access_token"); t != "" {
		return t, true
	}
	return "", false
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// originPatterns converts configured CORS origins to the host patterns
// the websocket handshake checks.
func originPatterns(origins []string) []string {
	var out []string
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}
