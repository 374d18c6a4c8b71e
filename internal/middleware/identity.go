package middleware

import "github.com/labstack/echo/v4"

// Subject returns the authenticated token subject, or "guest" when the
// request carried no valid token.
func Subject(c echo.Context) string {
	if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
		return s
	}
	return "guest"
}
