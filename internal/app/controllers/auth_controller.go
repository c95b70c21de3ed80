package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gesapp/ges-backend/internal/app/models/dto"
	"github.com/gesapp/ges-backend/internal/app/services"
	"github.com/gesapp/ges-backend/internal/middleware"
)

// AuthController handles registration, login and token refresh
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterStudent handles student self-registration
// @Summary Register a student account
// @Description Creates a student account. The role is always student regardless of the request.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Registration data"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid registration data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/register/ [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.authService.RegisterStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(user))
}

// LoginStudent handles student login by student number
// @Summary Log in as a student
// @Description Authenticates a student by student ID and password and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Missing credentials"
// @Failure 401 {object} dto.ErrorResponse "Unknown student ID or wrong password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/login/ [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.authService.LoginStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// LoginTeacher handles teacher login by email
// @Summary Log in as a teacher
// @Description Authenticates a teacher by email and password and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TeacherLoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Missing credentials"
// @Failure 401 {object} dto.ErrorResponse "Unknown email or wrong password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/login/ [post]
func (c *AuthController) LoginTeacher(ctx *gin.Context) {
	var req dto.TeacherLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.authService.LoginTeacher(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a fresh token pair
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new access and refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenPairResponse "New token pair"
// @Failure 400 {object} dto.ErrorResponse "Missing refresh token"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired refresh token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	pair, err := c.authService.Refresh(ctx, req.Refresh)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pair)
}
