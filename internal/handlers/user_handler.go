package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService user.UserService
	logger      *Logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService user.UserService, logger *Logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// SignUp handles user registration
// @Summary Register a new user
// @Description Create a credential record; the password is stored as a bcrypt hash
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body user.CredentialsRequest true "Username and password"
// @Success 201 {object} SignUpResponse "Sign-up successful"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /signup [post]
func (h *UserHandler) SignUp(c *gin.Context) {
	var req user.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	userResponse, err := h.userService.SignUp(c.Request.Context(), req)
	if err != nil {
		switch err {
		case user.ErrUsernameTaken:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username already exists"})
		case user.ErrInvalidUserData:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Username and password are required"})
		case user.ErrPasswordTooLong:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Password must be at most 72 bytes"})
		default:
			h.logger.Errorf("sign-up error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, SignUpResponse{
		Message: "Sign-up successful!",
		User:    *userResponse,
	})
}

// Login handles user login
// @Summary Log in
// @Description Check a username and password against the stored hash
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body user.CredentialsRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 401 {object} ErrorResponse "Incorrect password"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req user.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	userResponse, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		switch err {
		case user.ErrUserNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found!"})
		case user.ErrIncorrectPassword:
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Incorrect password. Please try again."})
		case user.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		default:
			h.logger.Errorf("login error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful!",
		User:    *userResponse,
	})
}

// RegisterUserRoutes registers all user-related routes
func (h *UserHandler) RegisterUserRoutes(r *gin.RouterGroup) {
	r.POST("/signup", h.SignUp)
	r.POST("/login", h.Login)
}
