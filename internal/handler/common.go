package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const defaultStoreTimeout = 5 * time.Second

// storeCtx bounds a persistence call by the request context and timeout.
func storeCtx(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(c.Request().Context(), timeout)
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func requestID(c echo.Context) zap.Field {
	return zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
}

// transition records a session flow step. Handlers drive the flow in a
// fixed order, so a rejected step is a bug worth logging, not a client error.
func transition(c echo.Context, log *zap.Logger, err error) {
	if err != nil {
		orNop(log).Error("session transition rejected", zap.Error(err), zap.String("route", c.Path()), requestID(c))
	}
}
