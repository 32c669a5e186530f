package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/inquesta/casefile/internal/auth"
	"github.com/inquesta/casefile/internal/db"
	"github.com/inquesta/casefile/internal/server/middleware"
	"github.com/inquesta/casefile/pkg/logger"
)

// RegisterHandler creates a new investigator account and returns an access
// token for it.
func RegisterHandler(c echo.Context) error {
	type registerBody struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name" validate:"required"`
	}

	type registerResponse struct {
		Message string   `json:"message"`
		Token   string   `json:"token,omitempty"`
		User    *db.User `json:"user,omitempty"`
	}

	data := new(registerBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	_, err := q.GetUserByEmail(ctx, data.Email)
	if err == nil {
		return c.JSON(http.StatusConflict, registerResponse{
			Message: "Email already registered",
		})
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error("Failed to look up user", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		logger.Error("Failed to hash password", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	user, err := q.CreateUser(ctx, db.CreateUserParams{
		Email:        data.Email,
		PasswordHash: hash,
		Name:         data.Name,
	})
	if err != nil {
		logger.Error("Failed to create user", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	token, err := auth.CreateAccessToken(app.JWTSecret, user.ID)
	if err != nil {
		logger.Error("Failed to create access token", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, registerResponse{
		Message: "Account created successfully",
		Token:   token,
		User:    &user,
	})
}

// LoginHandler verifies credentials and returns an access token.
func LoginHandler(c echo.Context) error {
	type loginBody struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	type loginResponse struct {
		Message string   `json:"message"`
		Token   string   `json:"token,omitempty"`
		User    *db.User `json:"user,omitempty"`
	}

	data := new(loginBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	user, err := q.GetUserByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, loginResponse{
				Message: "Invalid credentials",
			})
		}
		logger.Error("Failed to look up user", "err", err)
		return c.JSON(http.StatusInternalServerError, loginResponse{
			Message: "Internal server error",
		})
	}

	if !auth.VerifyPassword(data.Password, user.PasswordHash) {
		return c.JSON(http.StatusUnauthorized, loginResponse{
			Message: "Invalid credentials",
		})
	}

	token, err := auth.CreateAccessToken(app.JWTSecret, user.ID)
	if err != nil {
		logger.Error("Failed to create access token", "err", err)
		return c.JSON(http.StatusInternalServerError, loginResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Logged in successfully",
		Token:   token,
		User:    &user,
	})
}
