package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goodscary/firstrubyfriend/internal/config"
	"github.com/goodscary/firstrubyfriend/internal/delivery/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuedTokenPassesAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.JWTConfig{AdminSecret: "0123456789abcdef0123456789abcdef", Issuer: "firstrubyfriend"}

	engine := gin.New()
	engine.GET("/", middleware.NewAuthMiddleware(cfg.AdminSecret, cfg.Issuer).RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.ContextSub))
	})

	tests := []struct {
		name   string
		now    time.Time
		status int
	}{
		{name: "fresh", now: time.Now(), status: http.StatusOK},
		{name: "expired", now: time.Now().Add(-2 * time.Hour), status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := issueAdminToken(cfg, "ops@example.com", time.Hour, tt.now)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+signed)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "ops@example.com", w.Body.String())
			}
		})
	}
}
