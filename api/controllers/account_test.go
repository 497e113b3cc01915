package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmancera/shopstream-backend/api/middleware"
	"github.com/dmancera/shopstream-backend/internal/auth"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/google/uuid"
)

type stubAuthService struct {
	loginResp   *auth.LoginResponse
	loginErr    error
	loginChan   uuid.UUID
	refreshResp *auth.RefreshResponse
	refreshErr  error
	loggedOut   []string
}

func (s *stubAuthService) Login(_ context.Context, salesChannelID uuid.UUID, _ auth.LoginRequest) (*auth.LoginResponse, error) {
	s.loginChan = salesChannelID
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResp, nil
}

func (s *stubAuthService) Refresh(context.Context, string, auth.RefreshRequest) (*auth.RefreshResponse, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return s.refreshResp, nil
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.loggedOut = append(s.loggedOut, accessID)
	return nil
}

func TestAccountLoginSuccess(t *testing.T) {
	channelID := uuid.New()
	stub := &stubAuthService{loginResp: &auth.LoginResponse{AccessToken: "at", RefreshToken: "rt"}}

	body := `{"email":"shopper@example.com","password":"hunter2-hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/store-api/account/login", strings.NewReader(body))
	req = req.WithContext(middleware.WithSalesChannelID(context.Background(), channelID))
	rec := httptest.NewRecorder()
	AccountLogin(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.loginChan != channelID {
		t.Fatalf("channel not forwarded: %s", stub.loginChan)
	}
}

func TestAccountLoginInvalidBody(t *testing.T) {
	stub := &stubAuthService{}

	body := `{"email":"not-an-email","password":""}`
	req := httptest.NewRequest(http.MethodPost, "/store-api/account/login", strings.NewReader(body))
	req = req.WithContext(middleware.WithSalesChannelID(context.Background(), uuid.New()))
	rec := httptest.NewRecorder()
	AccountLogin(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountLoginBadCredentials(t *testing.T) {
	stub := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}

	body := `{"email":"shopper@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/store-api/account/login", strings.NewReader(body))
	req = req.WithContext(middleware.WithSalesChannelID(context.Background(), uuid.New()))
	rec := httptest.NewRecorder()
	AccountLogin(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountRefreshRequiresToken(t *testing.T) {
	stub := &stubAuthService{refreshResp: &auth.RefreshResponse{}}

	body := `{"refresh_token":"rt"}`
	req := httptest.NewRequest(http.MethodPost, "/store-api/account/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AccountRefresh(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", rec.Code)
	}
}

func TestAccountRefreshSuccess(t *testing.T) {
	stub := &stubAuthService{refreshResp: &auth.RefreshResponse{AccessToken: "new-at", RefreshToken: "new-rt"}}

	body := `{"refresh_token":"rt"}`
	req := httptest.NewRequest(http.MethodPost, "/store-api/account/refresh", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer expired-but-signed")
	rec := httptest.NewRecorder()
	AccountRefresh(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountLogout(t *testing.T) {
	stub := &stubAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/store-api/account/logout", nil)
	req = req.WithContext(middleware.WithAccessID(context.Background(), "session-9"))
	rec := httptest.NewRecorder()
	AccountLogout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.loggedOut) != 1 || stub.loggedOut[0] != "session-9" {
		t.Fatalf("logout not forwarded: %v", stub.loggedOut)
	}
}
