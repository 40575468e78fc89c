package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"employeehub/internal/auth"
	"employeehub/internal/domain/navigator"
)

func resolveSession(t *testing.T, registry *navigator.Registry, authorization string) (*navigator.Session, bool) {
	t.Helper()
	var (
		got *navigator.Session
		ok  bool
	)
	handler := Auth("secret", registry)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetSession(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthResolvesLiveSession(t *testing.T) {
	registry := navigator.NewRegistry()
	sess := registry.Create(auth.AcceptedUsername)

	token, err := auth.GenerateToken("secret", auth.Claims{Username: auth.AcceptedUsername, SessionID: sess.ID()}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	got, ok := resolveSession(t, registry, "Bearer "+token)
	if !ok || got != sess {
		t.Fatalf("session not resolved: %v %v", got, ok)
	}
}

func TestAuthPassesThroughWithoutSession(t *testing.T) {
	registry := navigator.NewRegistry()
	sess := registry.Create(auth.AcceptedUsername)

	validToken, err := auth.GenerateToken("secret", auth.Claims{Username: auth.AcceptedUsername, SessionID: sess.ID()}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	wrongSecret, err := auth.GenerateToken("other", auth.Claims{Username: auth.AcceptedUsername, SessionID: sess.ID()}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	evicted, err := auth.GenerateToken("secret", auth.Claims{Username: auth.AcceptedUsername, SessionID: "gone"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := []struct {
		name          string
		authorization string
	}{
		{"no header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + wrongSecret},
		{"evicted session", "Bearer " + evicted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := resolveSession(t, registry, tt.authorization); ok {
				t.Fatal("request resolved a session")
			}
		})
	}

	// The valid token still resolves after all the rejects.
	if _, ok := resolveSession(t, registry, "Bearer "+validToken); !ok {
		t.Fatal("valid token no longer resolves")
	}
}
