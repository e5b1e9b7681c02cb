package shop

import (
	"context"
	"strings"

	"printbazar/m/domain"
	"printbazar/m/internal/store"
)

// LoginCustomer starts a storefront session.
func (s *Shop) LoginCustomer(ctx context.Context, name, phone string) (domain.Session, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return domain.Session{}, invalid(ErrCustomerName, "name")
	}
	if !validPhone(phone) {
		return domain.Session{}, invalid(ErrCustomerPhone, "phone")
	}
	return s.setSession(ctx, domain.Session{Name: name, Role: domain.RoleCustomer, Phone: phone})
}

// LoginStaff starts a back office session. Credentials are checked by the caller.
func (s *Shop) LoginStaff(ctx context.Context, name, email string, role domain.Role) (domain.Session, error) {
	if !role.Staff() {
		role = domain.RoleStaff
	}
	if name == "" {
		name = "Admin"
	}
	return s.setSession(ctx, domain.Session{Name: name, Role: role, Email: email})
}

func (s *Shop) setSession(ctx context.Context, sess domain.Session) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
	return sess, s.persistLocked(ctx, store.KeySession)
}

func (s *Shop) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return s.persistLocked(ctx, store.KeySession)
}

// Session returns the signed-in user, if any.
func (s *Shop) Session() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}
