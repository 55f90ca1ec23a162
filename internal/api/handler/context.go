package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/api/middleware"
)

// ctxUserID extracts the authenticated user id injected by the Auth
// middleware. Its presence proves the middleware ran; a request reaching a
// protected handler without it is rejected rather than treated as anonymous.
func ctxUserID(c echo.Context) (int64, error) {
	userID, ok := c.Get(middleware.UserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// pathID parses a positive integer path parameter. Malformed ids map to
// not-found rather than bad-request: from the client's perspective
// "/projects/abc/" simply does not exist.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "resource not found")
	}
	return id, nil
}
