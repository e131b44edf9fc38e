package handler

import (
	"go-gudang-tekstil/internal/apperr"
	"go-gudang-tekstil/internal/model"
	"go-gudang-tekstil/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// currentUser returns the user attached by the auth middleware, if any.
func currentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("user").(*model.User)
	return user
}

// actorID returns the acting user's id for audit columns, or nil.
func actorID(c *fiber.Ctx) *uuid.UUID {
	user := currentUser(c)
	if user == nil {
		return nil
	}
	id := user.ID
	return &id
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("Invalid JSON body")
	}

	if req.Email == "" || req.Password == "" {
		return apperr.BadRequest("Email and password are required")
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "Login successful", response)
}

// Logout is stateless: the client discards its token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return success(c, fiber.StatusOK, "Logout successful", fiber.Map{})
}

// Me returns the current authenticated user.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Unauthorized("User not found")
	}

	fresh, err := h.authService.GetUserByID(user.ID)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "", fresh)
}
