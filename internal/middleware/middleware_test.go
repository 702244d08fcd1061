package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type stubTokens struct{}

func (stubTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	return &models.JWTClaims{UserID: 7, Email: "ada@campus.test"}, nil
}

func TestJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/user", JWT(stubTokens{}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": Claims(c).UserID})
	})

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"message":"Unauthenticated."}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"message":"Unauthenticated."}`},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, `{"message":"Unauthenticated."}`},
		{"valid token", "bearer good", http.StatusOK, `{"id":7}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/user", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

type observation struct {
	method, path string
	status       int
}

type recordingObserver struct {
	seen []observation
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	r.seen = append(r.seen, observation{method, path, status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(observer))
	r.GET("/events/:id", func(c *gin.Context) { _ = c.Error(errors.New("boom")); c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/events/1", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []observation{
		{http.MethodGet, "/events/:id", http.StatusInternalServerError},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}, observer.seen)
}
