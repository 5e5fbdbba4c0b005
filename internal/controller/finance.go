package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/util"
)

// UserIDContextKey is set by the bearer middleware on every guarded route.
const UserIDContextKey = "userID"

func userID(ctx echo.Context) string {
	id, _ := ctx.Get(UserIDContextKey).(string)
	return id
}

// (POST /transactions).
func (c *Controller) CreateTransaction(ctx echo.Context) error {
	var req models.TransactionRequest
	if err := ctx.Bind(&req); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	if err := validateTransaction(req); err != nil {
		return err
	}

	tx, err := c.financeService.CreateTransaction(ctx.Request().Context(), userID(ctx), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tx)
}

// (GET /transactions).
func (c *Controller) ListTransactions(ctx echo.Context) error {
	txs, err := c.financeService.ListTransactions(ctx.Request().Context(), userID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, txs)
}

// (PUT /transactions/:id).
func (c *Controller) UpdateTransaction(ctx echo.Context) error {
	var req models.TransactionRequest
	if err := ctx.Bind(&req); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	if err := validateTransaction(req); err != nil {
		return err
	}

	tx, err := c.financeService.UpdateTransaction(ctx.Request().Context(), userID(ctx), ctx.Param("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tx)
}

// (DELETE /transactions/:id).
func (c *Controller) DeleteTransaction(ctx echo.Context) error {
	if err := c.financeService.DeleteTransaction(ctx.Request().Context(), userID(ctx), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, models.MessageResponse{Message: "transaction deleted"})
}

// (POST /goals).
func (c *Controller) CreateGoal(ctx echo.Context) error {
	var req models.SavingsGoalRequest
	if err := ctx.Bind(&req); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireFields(field{"name", req.Name}); err != nil {
		return err
	}

	goal, err := c.financeService.CreateGoal(ctx.Request().Context(), userID(ctx), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, goal)
}

// (GET /goals).
func (c *Controller) ListGoals(ctx echo.Context) error {
	goals, err := c.financeService.ListGoals(ctx.Request().Context(), userID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, goals)
}

// (PUT /goals/:id).
func (c *Controller) UpdateGoal(ctx echo.Context) error {
	var req models.SavingsGoalRequest
	if err := ctx.Bind(&req); err != nil {
		return util.NewResponseError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireFields(field{"name", req.Name}); err != nil {
		return err
	}

	goal, err := c.financeService.UpdateGoal(ctx.Request().Context(), userID(ctx), ctx.Param("id"), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, goal)
}

// (DELETE /goals/:id).
func (c *Controller) DeleteGoal(ctx echo.Context) error {
	if err := c.financeService.DeleteGoal(ctx.Request().Context(), userID(ctx), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, models.MessageResponse{Message: "goal deleted"})
}

func validateTransaction(req models.TransactionRequest) error {
	if err := requireFields(field{"title", req.Title}, field{"kind", req.Kind}); err != nil {
		return err
	}
	if req.Kind != models.TransactionIncome && req.Kind != models.TransactionExpense {
		return util.NewResponseError(http.StatusBadRequest, "kind must be %q or %q", models.TransactionIncome, models.TransactionExpense)
	}
	return nil
}
