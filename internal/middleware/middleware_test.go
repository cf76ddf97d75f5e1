package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"rent-property-service/internal/auth"
	"rent-property-service/internal/model"
	"rent-property-service/internal/repository/memrepo"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, Identity(c))
	})
	r.GET("/x/:email", handlers...)
	return r
}

func do(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// A header without the Bearer scheme counts as no credentials (401); only a
// bearer token that fails verification is 403.
func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	good, _ := tokens.Issue("a@x.com")
	forged, _ := auth.NewTokenService("other", time.Hour).Issue("a@x.com")
	r := newRouter(Authenticate(tokens))

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusForbidden},
		{"forged token", "Bearer " + forged, http.StatusForbidden},
		{"valid", "Bearer " + good, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/x/a@x.com", tt.header)
			if w.Code != tt.code {
				t.Fatalf("code = %d, want %d (%s)", w.Code, tt.code, w.Body.String())
			}
			if tt.code == http.StatusOK && w.Body.String() != "a@x.com" {
				t.Errorf("identity = %q", w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	store := memrepo.New()
	ctx := context.Background()
	store.Users().Insert(ctx, &model.User{Email: "admin@x.com", Role: model.RoleAdmin})
	store.Users().Insert(ctx, &model.User{Email: "user@x.com"})

	r := newRouter(Authenticate(tokens), RequireAdmin(store.Users()))
	adminTok, _ := tokens.Issue("admin@x.com")
	userTok, _ := tokens.Issue("user@x.com")
	ghostTok, _ := tokens.Issue("ghost@x.com")

	if w := do(r, "/x/a", "Bearer "+adminTok); w.Code != http.StatusOK {
		t.Errorf("admin: code = %d", w.Code)
	}
	if w := do(r, "/x/a", "Bearer "+userTok); w.Code != http.StatusForbidden {
		t.Errorf("regular user: code = %d", w.Code)
	}
	if w := do(r, "/x/a", "Bearer "+ghostTok); w.Code != http.StatusForbidden {
		t.Errorf("unknown user: code = %d", w.Code)
	}
	if w := do(r, "/x/a", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: code = %d", w.Code)
	}

	store.Fail()
	if w := do(r, "/x/a", "Bearer "+adminTok); w.Code != http.StatusInternalServerError {
		t.Errorf("store down: code = %d", w.Code)
	}
}

func TestRequireAdminWithoutAuthenticate(t *testing.T) {
	r := newRouter(RequireAdmin(memrepo.New().Users()))
	if w := do(r, "/x/a", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}
}

func TestRequireSelf(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	tok, _ := tokens.Issue("a@x.com")
	r := newRouter(Authenticate(tokens), RequireSelf("email"))

	if w := do(r, "/x/a@x.com", "Bearer "+tok); w.Code != http.StatusOK {
		t.Errorf("own email: code = %d", w.Code)
	}
	if w := do(r, "/x/b@x.com", "Bearer "+tok); w.Code != http.StatusForbidden {
		t.Errorf("other email: code = %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := do(r, "/", "")
	if got := w.Header().Get(RequestIDHeader); got == "" || got != w.Body.String() {
		t.Errorf("generated id header %q body %q", got, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("propagated id = %q", got)
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.GET("/", Timeout(time.Minute), func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	if w := do(r, "/", ""); w.Code != http.StatusNoContent {
		t.Errorf("code = %d, want deadline on request context", w.Code)
	}
}
