package service

import (
	"context"
	"strings"

	"github.com/bharatmovers/booking-service/internal/authz"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/repository"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// AdminService covers account administration: listing actors, role changes
// and activation toggles. Every operation requires admin privilege.
type AdminService struct {
	actors repository.ActorRepository
}

// ActorUpdateInput describes admin edits to an account.
type ActorUpdateInput struct {
	Role   *string
	Active *bool
}

// NewAdminService constructs the service.
func NewAdminService(actors repository.ActorRepository) *AdminService {
	return &AdminService{actors: actors}
}

// ListActors returns accounts matching the filter.
func (s *AdminService) ListActors(ctx context.Context, actor *domain.Actor, filter repository.ActorFilter) ([]domain.Actor, error) {
	if err := authz.CanManageActors(actor); err != nil {
		return nil, err
	}
	return s.actors.List(ctx, filter)
}

// GetActor fetches one account.
func (s *AdminService) GetActor(ctx context.Context, actor *domain.Actor, id string) (*domain.Actor, error) {
	if err := authz.CanManageActors(actor); err != nil {
		return nil, err
	}
	return s.actors.GetByID(ctx, id)
}

// UpdateActor applies role and activation changes. Unknown role names are
// rejected, never coerced. Admins cannot deactivate their own account.
func (s *AdminService) UpdateActor(ctx context.Context, actor *domain.Actor, id string, input ActorUpdateInput) (*domain.Actor, error) {
	if err := authz.CanManageActors(actor); err != nil {
		return nil, err
	}
	target, err := s.actors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		role, err := domain.ParseRole(strings.TrimSpace(*input.Role))
		if err != nil {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *input.Role})
		}
		target.Role = role
	}
	if input.Active != nil {
		if target.ID == actor.ID && !*input.Active {
			return nil, apperrors.NewConflict("cannot deactivate own account", nil)
		}
		target.Active = *input.Active
	}

	if err := s.actors.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}
