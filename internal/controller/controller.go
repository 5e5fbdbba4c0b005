package controller

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/service"
	"github.com/rtomilin/pennywise/internal/util"
)

type Controller struct {
	zapLogger      *zap.SugaredLogger
	authService    *service.AuthService
	financeService *service.FinanceService
}

func NewController(logger *zap.SugaredLogger, authService *service.AuthService, financeService *service.FinanceService) *Controller {
	return &Controller{
		zapLogger:      logger,
		authService:    authService,
		financeService: financeService,
	}
}

// (GET /ping).
func (c *Controller) CheckServer(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, "ok")
}

// (POST /signup).
func (c *Controller) SignUp(ctx echo.Context) error {
	var req models.SignUpRequest
	if err := ctx.Bind(&req); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireFields(field{"name", req.Name}, field{"email", req.Email}, field{"password", req.Password}); err != nil {
		return err
	}

	pair, err := c.authService.SignUp(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, pair)
}

// (POST /login).
func (c *Controller) LogIn(ctx echo.Context) error {
	var req models.LogInRequest
	if err := ctx.Bind(&req); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireFields(field{"email", req.Email}, field{"password", req.Password}); err != nil {
		return err
	}

	pair, err := c.authService.LogIn(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pair)
}

// (POST /refresh).
func (c *Controller) Refresh(ctx echo.Context) error {
	var req models.RefreshRequest
	if err := ctx.Bind(&req); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireFields(field{"refreshToken", req.RefreshToken}); err != nil {
		return err
	}

	pair, err := c.authService.Refresh(ctx.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pair)
}

// (POST /logout). Succeeds whether or not the token matched.
func (c *Controller) LogOut(ctx echo.Context) error {
	var req models.LogOutRequest
	if err := ctx.Bind(&req); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireFields(field{"refreshToken", req.RefreshToken}); err != nil {
		return err
	}

	if err := c.authService.LogOut(ctx.Request().Context(), req.RefreshToken); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, models.MessageResponse{Message: "logged out"})
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	missing := []string{}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return util.NewResponseError(http.StatusBadRequest, "missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
