//go:build !cli
// +build !cli

package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mailpress/api"
	"mailpress/config"
	"mailpress/service/transform"

	_ "mailpress/api/process"
	_ "mailpress/custom"
	_ "mailpress/html"
)

// newEcho assembles the server: middleware stack plus all registered route
// modules. Kept apart from main so the full HTTP surface, middleware
// included, is reachable from tests.
func newEcho(tr transform.Transformer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(middleware.BodyLimit("50M"))

	// Permissive CORS for browser-based editors; preflight short-circuits
	// with 200 and no body.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
			h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, Authorization, X-Filename")
			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	})

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	api.ApplyRoutes(e, tr)
	return e
}

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	fig := figure.NewFigure("mailpress", "", true)
	fig.Print()

	e := newEcho(transform.New())

	port := config.AppConfig.Port
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
