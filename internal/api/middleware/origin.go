package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// SameOrigin rejects state-changing requests sent by another site's page.
// Requests without an Origin header (curl, older browsers) are let through.
func SameOrigin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			origin := req.Header.Get(echo.HeaderOrigin)
			if origin == "" {
				return next(c)
			}
			u, err := url.Parse(origin)
			if err != nil || u.Host != req.Host {
				return echo.NewHTTPError(http.StatusForbidden, "cross-origin request rejected")
			}
			return next(c)
		}
	}
}
