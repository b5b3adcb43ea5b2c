package authz

import (
	"github.com/bharatmovers/booking-service/internal/domain"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// Guard is the pure authorization decision layer. It never touches storage
// and never reveals whether a denied entity exists; callers translate the
// returned error into the user-visible response.

// Owns reports whether the actor submitted the entity.
func Owns(actor *domain.Actor, entity domain.LifecycleEntity) bool {
	if actor == nil {
		return false
	}
	submitter := entity.SubmitterID()
	return submitter != nil && *submitter == actor.ID
}

// CanView allows elevated actors on anything, owners on their own entities.
func CanView(actor *domain.Actor, entity domain.LifecycleEntity) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if actor.Elevated() || Owns(actor, entity) {
		return nil
	}
	return apperrors.NewForbidden("access denied")
}

// CanList allows customers to list their own entities and elevated actors
// to list everything. ownOnly reports whether results must be scoped to the
// actor's own submissions.
func CanList(actor *domain.Actor) (ownOnly bool, err error) {
	if actor == nil {
		return false, apperrors.NewUnauthorized("authentication required")
	}
	return !actor.Elevated(), nil
}

// CanMutate allows payload edits by the owner or an elevated actor.
func CanMutate(actor *domain.Actor, entity domain.LifecycleEntity) error {
	return CanView(actor, entity)
}

// CanTransition gates status changes. Per-rule role restrictions are applied
// by the transition engine on top of this check.
func CanTransition(actor *domain.Actor, entity domain.LifecycleEntity) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if actor.Elevated() || Owns(actor, entity) {
		return nil
	}
	return apperrors.NewForbidden("access denied")
}

// CanDelete restricts destructive operations to admins.
func CanDelete(actor *domain.Actor) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("admin privilege required")
	}
	return nil
}

// CanManageActors restricts role elevation and account edits to admins.
func CanManageActors(actor *domain.Actor) error {
	return CanDelete(actor)
}

// CanEditPricing restricts vehicle/service price edits to admins.
func CanEditPricing(actor *domain.Actor) error {
	return CanDelete(actor)
}

// CanManageCatalog allows staff to maintain non-pricing catalog data.
func CanManageCatalog(actor *domain.Actor) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !actor.Elevated() {
		return apperrors.NewForbidden("staff privilege required")
	}
	return nil
}
