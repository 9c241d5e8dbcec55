package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/middleware"
	"jainvest/internal/models"
)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup", handler.Signup)
	r.POST("/auth/login", handler.Login)
	r.GET("/profile", injectUserID("u1"), handler.GetProfile)
	r.GET("/anonymous-profile", handler.GetProfile)
	return r
}

func demoUser(role models.Role) *models.User {
	return &models.User{Base: models.Base{ID: "u1"}, Email: "learner@demo.com", Name: "Demo", Role: role}
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("returns 201 with auth record", func(t *testing.T) {
		var gotRole models.Role
		h := NewAuthHandler(&mockUserService{
			signupFn: func(email, _, name string, role models.Role) (*models.User, error) {
				gotRole = role
				u := demoUser(models.RoleReviewer)
				u.Email, u.Name = email, name
				return u, nil
			},
		})
		rec := doRequest(setupAuthRouter(h), http.MethodPost, "/auth/signup",
			`{"email":"new@test.com","password":"secret1","name":"New","role":"reviewer"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotRole != models.RoleReviewer {
			t.Errorf("expected reviewer role to reach the service, got %q", gotRole)
		}

		result := parseJSON(t, rec)
		token, _ := result["token"].(string)
		claims, err := middleware.ParseToken(token)
		if err != nil {
			t.Fatalf("token does not verify: %v", err)
		}
		if claims.UserID != "u1" || claims.Role != models.RoleReviewer {
			t.Errorf("unexpected claims %+v", claims)
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "new@test.com" || user["role"] != "reviewer" {
			t.Errorf("unexpected user %v", user)
		}
	})

	t.Run("returns 400 on unknown role", func(t *testing.T) {
		h := NewAuthHandler(&mockUserService{})
		rec := doRequest(setupAuthRouter(h), http.MethodPost, "/auth/signup",
			`{"email":"new@test.com","password":"secret1","role":"root"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad email", func(t *testing.T) {
		h := NewAuthHandler(&mockUserService{})
		rec := doRequest(setupAuthRouter(h), http.MethodPost, "/auth/signup", `{"email":"nope","password":"secret1"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		h := NewAuthHandler(&mockUserService{
			signupFn: func(string, string, string, models.Role) (*models.User, error) {
				return nil, apperrors.ErrUserExists
			},
		})
		rec := doRequest(setupAuthRouter(h), http.MethodPost, "/auth/signup", `{"email":"a@test.com","password":"secret1"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_EXISTS")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with token", func(t *testing.T) {
		h := NewAuthHandler(&mockUserService{
			loginFn: func(email, password string) (*models.User, error) {
				if password != "demo123" {
					return nil, apperrors.ErrInvalidCredentials
				}
				return demoUser(models.RoleLearner), nil
			},
		})
		rec := doRequest(setupAuthRouter(h), http.MethodPost, "/auth/login", `{"email":"learner@demo.com","password":"demo123"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if tok, _ := parseJSON(t, rec)["token"].(string); tok == "" {
			t.Error("expected a token")
		}
	})

	t.Run("returns 401 on bad credentials", func(t *testing.T) {
		h := NewAuthHandler(&mockUserService{
			loginFn: func(string, string) (*models.User, error) { return nil, apperrors.ErrInvalidCredentials },
		})
		rec := doRequest(setupAuthRouter(h), http.MethodPost, "/auth/login", `{"email":"learner@demo.com","password":"x"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns 200 with profile", func(t *testing.T) {
		h := NewAuthHandler(&mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) { return demoUser(models.RoleAdmin), nil },
		})
		rec := doRequest(setupAuthRouter(h), http.MethodGet, "/profile", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["role"] != "admin" || user["id"] != "u1" {
			t.Errorf("unexpected profile %v", user)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		h := NewAuthHandler(&mockUserService{})
		rec := doRequest(setupAuthRouter(h), http.MethodGet, "/anonymous-profile", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
