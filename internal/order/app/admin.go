package app

import (
	"context"
	"fmt"

	"github.com/emrekoca/storefront/internal/order/domain"
)

// AdminService is the back-office view over all orders. It is a thin
// pass-through to the administrative endpoints; the only local rule is
// that a status transition must target a known status.
type AdminService struct {
	repo  AdminRepo
	creds Credential
}

func NewAdminService(repo AdminRepo, creds Credential) *AdminService {
	return &AdminService{repo: repo, creds: creds}
}

func (s *AdminService) ListAll(ctx context.Context) ([]domain.Order, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

func (s *AdminService) UpdateStatus(ctx context.Context, orderID string, status domain.Status) error {
	if err := s.authorize(); err != nil {
		return err
	}
	if orderID == "" {
		return ErrInvalidInput
	}
	if !status.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}

func (s *AdminService) authorize() error {
	if _, ok := s.creds.Token(); !ok {
		return ErrAuthRequired
	}
	if !s.creds.Privileged() {
		return ErrAdminRequired
	}
	return nil
}
