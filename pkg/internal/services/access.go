package services

import (
	"github.com/pulsenet/pulse/pkg/internal/models"
)

type PolicyAction int8

const (
	ActionMutatePost = PolicyAction(iota)
	ActionDeleteAccount
	ActionChangeRole
)

// CanAct is the single authorization predicate shared by post mutation,
// account deletion and role changes. Existence of the target must be
// checked by the caller first, so a missing target reads as not found
// rather than forbidden.
func CanAct(actor models.Principal, ownerID uint, action PolicyAction) bool {
	switch action {
	case ActionMutatePost, ActionDeleteAccount:
		if actor.AccountID == ownerID {
			return true
		}
		switch actor.Role {
		case models.RoleModerator, models.RoleAdmin:
			return true
		case models.RoleUser:
			return false
		default:
			return false
		}
	case ActionChangeRole:
		// Admins only, and never on themselves: an admin demoting their
		// own account would lock the instance out of administration.
		if actor.AccountID == ownerID {
			return false
		}
		switch actor.Role {
		case models.RoleAdmin:
			return true
		case models.RoleUser, models.RoleModerator:
			return false
		default:
			return false
		}
	}

	return false
}
