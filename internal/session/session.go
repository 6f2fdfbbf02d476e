package session

import "github.com/BruksfildServices01/mobile-barber/internal/httperr"

// Session is the authenticated caller. It is built once per request by the
// auth middleware and passed explicitly to every use case.
type Session struct {
	CustomerID string
	Email      string
	IsAdmin    bool
}

func (s Session) RequireAdmin() error {
	if !s.IsAdmin {
		return httperr.ErrForbidden("admin_only")
	}
	return nil
}

// RequireAccess allows the owner of customerID and admins.
func (s Session) RequireAccess(customerID string) error {
	if s.IsAdmin || (s.CustomerID != "" && s.CustomerID == customerID) {
		return nil
	}
	return httperr.ErrForbidden("not_your_resource")
}

func (s Session) ActorID() *string {
	if s.CustomerID == "" {
		return nil
	}
	id := s.CustomerID
	return &id
}
