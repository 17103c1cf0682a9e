// Package actor resolves the authenticated caller into an identity and role.
// Every goal operation takes an Actor explicitly; nothing reads role or
// session state from globals.
package actor

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pms-lambda/internal/apperror"
	"github.com/saulo-duarte/pms-lambda/internal/auth"
)

type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) String() string {
	return string(a.Role) + ":" + a.ID.String()
}

func FromClaims(claims *auth.Claims) (Actor, error) {
	if claims == nil {
		return Actor{}, apperror.Unauthorized("no identity")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Actor{}, apperror.Unauthorized("malformed user id")
	}
	role, ok := ParseRole(claims.Role)
	if !ok {
		return Actor{}, apperror.Unauthorized("unknown role %q", claims.Role)
	}
	return Actor{ID: id, Role: role}, nil
}

func FromContext(ctx context.Context) (Actor, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return Actor{}, apperror.Wrap(apperror.KindUnauthorized, err, "unauthorized")
	}
	return FromClaims(claims)
}
