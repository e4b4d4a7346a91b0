package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

type stubTokenService struct {
	claims *adapter.TokenClaims
	err    error
}

func (s stubTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return s.claims, s.err
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	tests := []struct {
		name      string
		header    string
		service   stubTokenService
		wantCode  int
		wantError string
	}{
		{
			name:      "missing header",
			wantCode:  http.StatusUnauthorized,
			wantError: string(domainerror.ErrCodeMissingToken),
		},
		{
			name:      "not a bearer token",
			header:    "Basic abc",
			wantCode:  http.StatusUnauthorized,
			wantError: string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			service: stubTokenService{err: domainerror.NewAuthError(
				domainerror.ErrCodeExpiredToken, "token has expired", domainerror.ErrExpiredToken,
			)},
			wantCode:  http.StatusUnauthorized,
			wantError: string(domainerror.ErrCodeExpiredToken),
		},
		{
			name:     "valid token",
			header:   "Bearer good",
			service:  stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "ana@example.com"}},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/me", NewAuthMiddleware(tt.service).Authenticate(), func(c *gin.Context) {
				id, _ := GetUserIDFromContext(c)
				email, _ := GetUserEmailFromContext(c)
				c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantError != "" {
				var resp dto.ErrorResponse
				_ = json.Unmarshal(w.Body.Bytes(), &resp)
				if resp.Code != tt.wantError {
					t.Errorf("code = %s, want %s", resp.Code, tt.wantError)
				}
				return
			}

			var body map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["id"] != userID.String() || body["email"] != "ana@example.com" {
				t.Errorf("context = %v", body)
			}
		})
	}
}
