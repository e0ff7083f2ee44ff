package services

import "restaurant-api/apperr"

// Principal is the authenticated caller as supplied by the auth middleware.
// Its flags are trusted as-is.
type Principal struct {
	UserID      uint
	Email       string
	IsStaff     bool
	IsSuperuser bool
}

func (p Principal) IsAdmin() bool {
	return p.IsStaff || p.IsSuperuser
}

// AdminScope is proof that the admin gate was passed. It can only be built by
// AuthorizeAdmin; the zero value is rejected by every admin operation.
type AdminScope struct {
	actor Principal
	ok    bool
}

// AuthorizeAdmin is the single admin predicate.
func AuthorizeAdmin(p Principal) (AdminScope, error) {
	if p.UserID == 0 || !p.IsAdmin() {
		return AdminScope{}, apperr.Forbidden("Admin access required")
	}
	return AdminScope{actor: p, ok: true}, nil
}

func (s AdminScope) ActorID() uint { return s.actor.UserID }

func (s AdminScope) check() error {
	if !s.ok || !s.actor.IsAdmin() {
		return apperr.Forbidden("Admin access required")
	}
	return nil
}
