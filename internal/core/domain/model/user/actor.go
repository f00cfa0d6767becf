package user

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// Permission is a named capability granted to a user.
type Permission string

const (
	CanCreateUsers   Permission = "CAN_CREATE_USERS"
	CanReadUsers     Permission = "CAN_READ_USERS"
	CanUpdateUsers   Permission = "CAN_UPDATE_USERS"
	CanDeleteUsers   Permission = "CAN_DELETE_USERS"
	CanSearchOrder   Permission = "CAN_SEARCH_ORDER"
	CanPlaceOrder    Permission = "CAN_PLACE_ORDER"
	CanCancelOrder   Permission = "CAN_CANCEL_ORDER"
	CanTrackOrder    Permission = "CAN_TRACK_ORDER"
	CanScheduleOrder Permission = "CAN_SCHEDULE_ORDER"
)

// ErrActorIsNotConstructed is returned for an Actor that skipped NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// privilegedPermissions must all be held for an actor to act on orders of other users.
func privilegedPermissions() []Permission {
	return []Permission{
		CanCreateUsers,
		CanReadUsers,
		CanUpdateUsers,
		CanDeleteUsers,
		CanPlaceOrder,
		CanCancelOrder,
		CanSearchOrder,
		CanScheduleOrder,
	}
}

func knownPermissions() []Permission {
	return append(privilegedPermissions(), CanTrackOrder)
}

// ParsePermission validates a permission name.
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(knownPermissions(), p) {
		return "", errs.NewValueIsInvalidErrorWithCause("permission", fmt.Errorf("%q is not a known permission", s))
	}
	return p, nil
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	id            kernel.UUID
	permissions   []Permission
	isConstructed bool
}

// NewActor creates an actor. Duplicate permissions are collapsed.
func NewActor(id kernel.UUID, permissions ...Permission) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	perms := slices.Clone(permissions)
	slices.Sort(perms)
	perms = slices.Compact(perms)

	return Actor{id: id, permissions: perms, isConstructed: true}, nil
}

// ID returns the user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Permissions returns a copy of the granted permissions, sorted.
func (a Actor) Permissions() []Permission {
	return slices.Clone(a.permissions)
}

// HasPermission reports whether p was granted.
func (a Actor) HasPermission(p Permission) bool {
	_, found := slices.BinarySearch(a.permissions, p)
	return found
}

// IsPrivileged reports whether the actor holds every administrative permission.
func (a Actor) IsPrivileged() bool {
	for _, p := range privilegedPermissions() {
		if !a.HasPermission(p) {
			return false
		}
	}
	return true
}

// Validate reports actors that skipped NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}
