package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgrijalva/jwt-go"
)

func signedToken(t *testing.T, subject string, method jwt.SigningMethod) string {
	t.Helper()
	token := jwt.NewWithClaims(method, &jwt.StandardClaims{Subject: subject})
	s, err := token.SignedString(jwtKey())
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func callProtected(header string) (*httptest.ResponseRecorder, string) {
	var gotActor string
	handler := RequireActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = ActorID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotActor
}

func TestRequireActor_ValidToken(t *testing.T) {
	token := signedToken(t, "user-42", jwt.SigningMethodHS256)

	rec, actor := callProtected("Bearer " + token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if actor != "user-42" {
		t.Errorf("expected actor user-42, got %q", actor)
	}
}

func TestRequireActor_MissingHeader(t *testing.T) {
	rec, _ := callProtected("")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireActor_MalformedHeader(t *testing.T) {
	rec, _ := callProtected("Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireActor_GarbageToken(t *testing.T) {
	rec, _ := callProtected("Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireActor_EmptySubject(t *testing.T) {
	token := signedToken(t, "", jwt.SigningMethodHS256)

	rec, _ := callProtected("Bearer " + token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token without subject, got %d", rec.Code)
	}
}

func TestActorID_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ActorID(req.Context()); got != "" {
		t.Errorf("expected empty actor id, got %q", got)
	}
}
