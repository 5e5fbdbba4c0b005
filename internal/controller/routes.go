package controller

import "github.com/labstack/echo/v4"

// RegisterRoutes wires the public auth endpoints and the bearer-guarded
// resource endpoints.
func RegisterRoutes(e *echo.Echo, c *Controller, bearer echo.MiddlewareFunc) {
	e.GET("/ping", c.CheckServer)

	e.POST("/signup", c.SignUp)
	e.POST("/login", c.LogIn)
	e.POST("/refresh", c.Refresh)
	e.POST("/logout", c.LogOut)

	g := e.Group("", bearer)
	g.GET("/transactions", c.ListTransactions)
	g.POST("/transactions", c.CreateTransaction)
	g.PUT("/transactions/:id", c.UpdateTransaction)
	g.DELETE("/transactions/:id", c.DeleteTransaction)

	g.GET("/goals", c.ListGoals)
	g.POST("/goals", c.CreateGoal)
	g.PUT("/goals/:id", c.UpdateGoal)
	g.DELETE("/goals/:id", c.DeleteGoal)
}
