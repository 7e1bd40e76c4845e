package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/security"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/service_interfaces"
)

type authenticatorStub struct {
	issuer   *security.TokenIssuer
	verifyFn func(ctx context.Context, username string, password string) (domain.Credential, bool, error)
}

func (s authenticatorStub) Verify(ctx context.Context, username string, password string) (domain.Credential, bool, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, username, password)
	}
	return domain.Credential{}, false, nil
}

func (s authenticatorStub) ParseToken(raw string) (security.Claims, error) {
	return s.issuer.Parse(raw)
}

func newStub() authenticatorStub {
	return authenticatorStub{
		issuer: security.NewTokenIssuer("test-secret", time.Hour),
		verifyFn: func(_ context.Context, username string, password string) (domain.Credential, bool, error) {
			if username == "manager" && password == "changeme" {
				return domain.Credential{Username: username, Role: domain.RoleManager}, true, nil
			}
			return domain.Credential{}, false, nil
		},
	}
}

func serve(t *testing.T, auth service_interfaces.OperatorAuthenticator, header string) (*httptest.ResponseRecorder, Operator) {
	t.Helper()
	var seen Operator
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = OperatorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	OperatorAuth(auth)(next).ServeHTTP(rr, req)
	return rr, seen
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestOperatorAuth_AllowsValidBasicCredentials(t *testing.T) {
	rr, operator := serve(t, newStub(), basic("manager", "changeme"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if operator.Username != "manager" || operator.Role != domain.RoleManager {
		t.Fatalf("unexpected operator %+v", operator)
	}
}

func TestOperatorAuth_RejectsInvalidBasicCredentials(t *testing.T) {
	rr, _ := serve(t, newStub(), basic("manager", "wrong"))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestOperatorAuth_RejectsMissingCredentials(t *testing.T) {
	rr, _ := serve(t, newStub(), "")

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("expected WWW-Authenticate challenge")
	}
}

func TestOperatorAuth_AllowsBearerToken(t *testing.T) {
	stub := newStub()
	token, _, err := stub.issuer.Issue("ravi", domain.RoleOperator)
	if err != nil {
		t.Fatal(err)
	}

	rr, operator := serve(t, stub, "Bearer "+token)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if operator.Username != "ravi" || operator.Role != domain.RoleOperator {
		t.Fatalf("unexpected operator %+v", operator)
	}
}

func TestOperatorAuth_RejectsForeignToken(t *testing.T) {
	foreign, _, err := security.NewTokenIssuer("other-secret", time.Hour).Issue("ravi", domain.RoleOperator)
	if err != nil {
		t.Fatal(err)
	}

	rr, _ := serve(t, newStub(), "Bearer "+foreign)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestOperatorAuth_StoreFailureIsServerError(t *testing.T) {
	stub := newStub()
	stub.verifyFn = func(context.Context, string, string) (domain.Credential, bool, error) {
		return domain.Credential{}, false, errors.New("db down")
	}

	rr, _ := serve(t, stub, basic("manager", "changeme"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}

func TestOperatorAuth_MissingAuthenticator(t *testing.T) {
	rr, _ := serve(t, nil, basic("manager", "changeme"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}
