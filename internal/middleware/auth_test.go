package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"jainvest/internal/config"
	"jainvest/internal/models"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{JWTSecret: "test-secret", JWTExpirationDur: time.Hour})
}

func setupAuthRouter(required models.Role) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	if required != "" {
		r.Use(RequireRole(required))
	}
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(UserIDKey),
			"email":   c.GetString(EmailKey),
		})
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func tokenFor(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := GenerateToken(&models.User{Base: models.Base{ID: "42"}, Email: "a@test.com", Role: role})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func TestGenerateToken(t *testing.T) {
	setTestConfig(t)

	claims, err := ParseToken(tokenFor(t, models.RoleReviewer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "42" || claims.Email != "a@test.com" || claims.Role != models.RoleReviewer {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.Issuer != "jainvest-api" || claims.Subject != "42" {
		t.Errorf("unexpected registered claims %+v", claims.RegisteredClaims)
	}
}

func TestAuthMiddleware(t *testing.T) {
	setTestConfig(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		UserID: "42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, _ := expired.SignedString([]byte("test-secret"))

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{UserID: "42"})
	foreignToken, _ := foreign.SignedString([]byte("other-secret"))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid", "Bearer " + tokenFor(t, models.RoleLearner), http.StatusOK},
		{"missing_header", "", http.StatusUnauthorized},
		{"wrong_scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"wrong_secret", "Bearer " + foreignToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthRequest(setupAuthRouter(""), tt.header)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				errObj, _ := parseBody(t, rec)["error"].(map[string]interface{})
				if code, _ := errObj["code"].(string); code != "UNAUTHORIZED" {
					t.Errorf("error code = %q, want UNAUTHORIZED", code)
				}
			}
		})
	}

	t.Run("sets_context", func(t *testing.T) {
		rec := doAuthRequest(setupAuthRouter(""), "Bearer "+tokenFor(t, models.RoleLearner))
		body := parseBody(t, rec)
		if body["user_id"] != "42" || body["email"] != "a@test.com" {
			t.Errorf("unexpected context values %v", body)
		}
	})
}

func TestRequireRole(t *testing.T) {
	setTestConfig(t)

	tests := []struct {
		name       string
		have       models.Role
		required   models.Role
		wantStatus int
	}{
		{"learner_on_learner", models.RoleLearner, models.RoleLearner, http.StatusOK},
		{"learner_on_reviewer", models.RoleLearner, models.RoleReviewer, http.StatusForbidden},
		{"reviewer_on_reviewer", models.RoleReviewer, models.RoleReviewer, http.StatusOK},
		{"admin_on_reviewer", models.RoleAdmin, models.RoleReviewer, http.StatusOK},
		{"reviewer_on_admin", models.RoleReviewer, models.RoleAdmin, http.StatusForbidden},
		{"unknown_role", models.Role("guest"), models.RoleLearner, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthRequest(setupAuthRouter(tt.required), "Bearer "+tokenFor(t, tt.have))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
