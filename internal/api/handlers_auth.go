package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanherne/morrow/internal/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type recoverRequest struct {
	RecoveryCode string `json:"recovery_code"`
	NewPassword  string `json:"new_password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request registerRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, recoveryCode, err := handler.authService.Register(request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusConflict, "email already registered")
		case errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, "password too weak")
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return apiError(c, fiber.StatusBadRequest, "invalid email or password")
		default:
			handler.logger.Error("register failed", "error", err)
			return apiError(c, fiber.StatusInternalServerError, "registration failed")
		}
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		handler.logger.Error("token build failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":         token,
		"recovery_code": recoveryCode,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.Authenticate(request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		handler.logger.Error("login failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		handler.logger.Error("token build failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	return c.JSON(fiber.Map{"token": token})
}

func (handler *Handler) Recover(c *fiber.Ctx) error {
	var request recoverRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.AuthenticateByRecoveryCode(request.RecoveryCode, request.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecoveryCodeNotFound):
			return apiError(c, fiber.StatusUnauthorized, "recovery code not recognized")
		case errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, "password too weak")
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return apiError(c, fiber.StatusBadRequest, "invalid recovery request")
		default:
			handler.logger.Error("recovery failed", "error", err)
			return apiError(c, fiber.StatusInternalServerError, "recovery failed")
		}
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		handler.logger.Error("token build failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "recovery failed")
	}

	return c.JSON(fiber.Map{"token": token})
}
