// Package middleware provides HTTP middleware used by the payments API.
package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPMetrics receives one observation per handled request.
type HTTPMetrics interface {
	RecordHTTPRequest(method, path string, status int, d time.Duration)
}

// Prometheus records request count and latency. The route pattern is used as
// the path label so ids in the URL do not create new series.
func Prometheus(m HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		m.RecordHTTPRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
