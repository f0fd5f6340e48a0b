package usecase

import (
	"context"

	"github.com/samber/lo"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// MemberListResult contains members and their role counts
type MemberListResult struct {
	Members []*models.User
	ByRole  map[models.UserRole]int
	ActorID string
}

// ListMembers is the use case for listing DAO members
type ListMembers struct {
	resolver *ResolveEntity
	users    UserRepository
}

// NewListMembers creates a new ListMembers use case
func NewListMembers(resolver *ResolveEntity, users UserRepository) *ListMembers {
	return &ListMembers{resolver: resolver, users: users}
}

// Run lists members and marks the acting user
func (uc *ListMembers) Run(ctx context.Context) (*MemberListResult, error) {
	users, err := uc.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := &MemberListResult{
		Members: users,
		ByRole:  lo.CountValuesBy(users, func(u *models.User) models.UserRole { return u.Role }),
	}
	if len(users) > 0 {
		if actor, err := uc.resolver.ResolveActor(ctx, ""); err == nil {
			result.ActorID = actor.ID
		}
	}
	return result, nil
}
