package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mycare/internal/models"
	"github.com/terraincognita07/mycare/internal/security"
)

// SessionRequired resolves the session token from the Authorization header
// or the session cookie and stores the user in the request locals.
func (handler *Handler) SessionRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return unauthorized(c)
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken := bearerToken(c.Get(fiber.HeaderAuthorization))
	if rawToken == "" {
		rawToken = strings.TrimSpace(c.Cookies(sessionCookieName))
	}
	if rawToken == "" {
		return nil, errors.New("missing session token")
	}

	userID, err := security.ParseSessionToken(handler.secretKey, rawToken, handler.now())
	if err != nil {
		return nil, err
	}
	user, err := handler.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequestMetrics records every request against its route pattern.
func (handler *Handler) RequestMetrics(c *fiber.Ctx) error {
	if handler.metrics == nil {
		return c.Next()
	}
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	handler.metrics.ObserveRequest(c.Route().Path, c.Method(), status, time.Since(started))
	return err
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}
