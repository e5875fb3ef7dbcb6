// Package policy centralizes role and battalion-ownership access rules so
// individual routes never compare role strings directly.
package policy

import (
	appErrors "github.com/warrior-support/wss-api/pkg/errors"

	"github.com/warrior-support/wss-api/internal/models"
)

// HasRole reports whether the actor's role is one of the allowed roles.
// Comparison is case-sensitive against the canonical CO/JCO/USER enum.
func HasRole(actor *models.AuthContext, allowed ...models.UserRole) bool {
	if actor == nil {
		return false
	}
	for _, role := range allowed {
		if actor.Role == role {
			return true
		}
	}
	return false
}

// CheckBattalionAccess enforces battalion scoping on a loaded resource.
// CO actors bypass scoping entirely. JCO actors may touch only their own
// battalion; a mismatch carries the ownership-specific message so clients
// can distinguish it from a plain role rejection. USER actors are denied
// here; their self-service path goes through CheckSelfAccess.
//
// Callers must load the target resource first so a missing record yields
// 404 before this check can yield 403.
func CheckBattalionAccess(actor *models.AuthContext, battalionID string) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	switch actor.Role {
	case models.RoleCO:
		return nil
	case models.RoleJCO:
		if actor.BattalionID != nil && *actor.BattalionID == battalionID {
			return nil
		}
		return appErrors.ErrDifferentBattalion
	default:
		return appErrors.ErrForbidden
	}
}

// CheckSelfAccess allows USER actors to act only on their own
// army-number-identified record. CO and JCO go through battalion scoping.
func CheckSelfAccess(actor *models.AuthContext, armyNo string, battalionID string) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	if actor.Role == models.RoleUser {
		if actor.ArmyNo != nil && *actor.ArmyNo == armyNo {
			return nil
		}
		return appErrors.ErrForbidden
	}
	return CheckBattalionAccess(actor, battalionID)
}
