package handler

import (
	"github.com/labstack/echo/v4"
)

// callerID extracts the account id injected by the Auth middleware. An
// anonymous request yields "", which the collection layer's role assertions
// treat as "not logged in". The handler never rejects on its own here
// because some collections (user self-registration) allow anonymous define.
func callerID(c echo.Context) string {
	id, _ := c.Get("account_id").(string)
	return id
}
