package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/auth"
	"github.com/Jojo-not/Ticketing/internal/observability"
	"github.com/Jojo-not/Ticketing/internal/web"
	apperrors "github.com/Jojo-not/Ticketing/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, renderer *web.Renderer) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics, renderer))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware recovers panics and renders errors as JSON for API
// callers or as the error page for browsers.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, renderer *web.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				err = writeError(c, domainErr, renderer, logger)
			}
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, domainErr *apperrors.DomainError, renderer *web.Renderer, logger *zap.Logger) error {
	if renderer != nil && !auth.WantsJSON(c) {
		renderErr := renderer.Render(c, domainErr.HTTPStatus, "error.html", pongo2.Context{
			"status":  domainErr.HTTPStatus,
			"code":    domainErr.Code,
			"message": domainErr.Message,
		})
		if renderErr == nil {
			return nil
		}
		logger.Error("render error page", zap.Error(renderErr))
	}

	response := fiber.Map{"error": fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}}
	if len(domainErr.Details) > 0 {
		response["error"].(fiber.Map)["details"] = domainErr.Details
	}
	c.Status(domainErr.HTTPStatus)
	return c.JSON(response)
}
