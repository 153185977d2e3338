package handler

import (
	"context"

	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// userIDFromCtx reads the user id set by the auth middleware, as a string:
// store entities key owners and candidates by opaque string ids.
func userIDFromCtx(c fiber.Ctx) (string, error) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return "", middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id.String(), nil
}

func userUUIDFromCtx(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func emailFromCtx(c fiber.Ctx) string {
	email, _ := c.Locals(middleware.CtxEmailKey).(string)
	return email
}

// resolveDisplayName prefers the account's registered name over the
// fallback. Unresolvable accounts and accounts without a name fall back.
func resolveDisplayName(ctx context.Context, users user.Repository, id uuid.UUID, fallback string) string {
	if users != nil && id != uuid.Nil {
		if u, err := users.GetUserByID(ctx, id); err == nil && u.Name != "" {
			return u.Name
		}
	}
	return fallback
}

// displayNameFromCtx resolves the caller's display name for fields shown to
// other users, falling back to the email claim.
func displayNameFromCtx(c fiber.Ctx, users user.Repository) string {
	id, err := userUUIDFromCtx(c)
	if err != nil {
		return emailFromCtx(c)
	}
	return resolveDisplayName(c.Context(), users, id, emailFromCtx(c))
}
