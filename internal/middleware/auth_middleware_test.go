package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/pkg/auth"
)

func testJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func testRouter(jwtService *auth.JWTService, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("/", mw.JWTAuth())
	if len(roles) > 0 {
		group.Use(mw.RolesRequired(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		userID, _ := UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func issueAccess(t *testing.T, svc *auth.JWTService, user *models.User) string {
	t.Helper()
	access, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}
	return access
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := testRouter(testJWTService(time.Hour))

	rec := doRequest(router, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	router := testRouter(testJWTService(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := testJWTService(time.Hour)
	router := testRouter(svc)

	token := issueAccess(t, svc, &models.User{ID: 7, Role: models.RoleStudent})
	rec := doRequest(router, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	svc := testJWTService(-time.Minute)
	router := testRouter(svc)

	token := issueAccess(t, svc, &models.User{ID: 7, Role: models.RoleStudent})
	rec := doRequest(router, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	svc := testJWTService(time.Hour)
	router := testRouter(svc)

	_, refresh, _, _, err := svc.GenerateTokenPair(&models.User{ID: 7, Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	rec := doRequest(router, refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected refresh token to be rejected with 401, got %d", rec.Code)
	}
}

func TestRolesRequired_AllowsListedRole(t *testing.T) {
	svc := testJWTService(time.Hour)
	router := testRouter(svc, models.RoleTeacher, models.RoleAdmin)

	token := issueAccess(t, svc, &models.User{ID: 7, Role: models.RoleTeacher})
	rec := doRequest(router, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for teacher, got %d", rec.Code)
	}
}

func TestRolesRequired_DeniesStudent(t *testing.T) {
	svc := testJWTService(time.Hour)
	router := testRouter(svc, models.RoleTeacher, models.RoleAdmin)

	token := issueAccess(t, svc, &models.User{ID: 7, Role: models.RoleStudent})
	rec := doRequest(router, token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", rec.Code)
	}
}

func TestRolesRequired_SuperuserBypassesRoleCheck(t *testing.T) {
	svc := testJWTService(time.Hour)
	router := testRouter(svc, models.RoleAdmin)

	token := issueAccess(t, svc, &models.User{ID: 7, Role: models.RoleStudent, IsSuperuser: true})
	rec := doRequest(router, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected superuser to pass, got %d", rec.Code)
	}
}
