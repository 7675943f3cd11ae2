package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* =========================================================
   SessionContext
   - identitas/role di-thread eksplisit ke controller & service,
     bukan dibaca ad-hoc dari storage
========================================================= */

type SessionContext struct {
	Role          string
	UserID        uuid.UUID
	StudentYearID *uuid.UUID
	SchoolYearID  *uuid.UUID
}

const sessionLocalKey = "session_ctx"

func SetSessionContext(c *fiber.Ctx, sc SessionContext) {
	c.Locals(sessionLocalKey, sc)
}

// GetSessionContext mengambil SessionContext hasil auth middleware.
func GetSessionContext(c *fiber.Ctx) (SessionContext, error) {
	sc, ok := c.Locals(sessionLocalKey).(SessionContext)
	if !ok {
		return SessionContext{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing session context")
	}
	return sc, nil
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	sc, err := GetSessionContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	if sc.UserID == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user id")
	}
	return sc.UserID, nil
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	sc, err := GetSessionContext(c)
	if err != nil {
		return "", err
	}
	if sc.Role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role")
	}
	return sc.Role, nil
}
