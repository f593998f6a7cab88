package middleware

// identity.go holds helpers shared across middleware files.

import "github.com/labstack/echo/v4"

// currentUserID returns the subject stored by JWTAuth, or "anon" for
// unauthenticated requests such as contact form submissions.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
