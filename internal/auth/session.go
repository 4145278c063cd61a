package auth

import (
	"context"
	"fmt"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
)

// Session is passed explicitly to every service call. The zero value is an anonymous visitor.
type Session struct {
	UserID        string        `json:"user_id,omitempty"`
	Email         string        `json:"email,omitempty"`
	Authenticated bool          `json:"authenticated"`
	Roles         []models.Role `json:"roles"`
}

// Anonymous returns the session of a visitor without a token.
func Anonymous() Session { return Session{Roles: []models.Role{}} }

func (s Session) HasRole(r models.Role) bool {
	for _, have := range s.Roles {
		if have == r {
			return true
		}
	}
	return false
}

func (s Session) IsAdmin() bool { return s.Authenticated && s.HasRole(models.RoleAdmin) }

// Resolver turns a bearer token into a Session, reading role membership from the store.
type Resolver struct {
	verifier *Verifier
	roles    repository.RoleStore
}

func NewResolver(v *Verifier, roles repository.RoleStore) *Resolver {
	return &Resolver{verifier: v, roles: roles}
}

func (r *Resolver) Resolve(ctx context.Context, token string) (Session, error) {
	claims, err := r.verifier.Verify(token)
	if err != nil {
		return Anonymous(), err
	}
	roles, err := r.roles.ListByUser(ctx, claims.Subject)
	if err != nil {
		return Anonymous(), fmt.Errorf("load roles: %w", err)
	}
	if roles == nil {
		roles = []models.Role{}
	}
	return Session{UserID: claims.Subject, Email: claims.Email, Authenticated: true, Roles: roles}, nil
}
