package company

import (
	"context"
	"errors"
	"testing"
)

type stubStore struct {
	company *Company
	updated *UpdateCompanyRequest
}

func (s *stubStore) Create(ctx context.Context, name, currency, currencySymbol string) (*Company, error) {
	return &Company{ID: 1, Name: name, Currency: currency, CurrencySymbol: currencySymbol}, nil
}

func (s *stubStore) GetByID(ctx context.Context, id int64) (*Company, error) {
	return s.company, nil
}

func (s *stubStore) Update(ctx context.Context, id int64, req *UpdateCompanyRequest) (*Company, error) {
	s.updated = req
	return s.company, nil
}

func TestGetMissingCompany(t *testing.T) {
	svc := NewService(&stubStore{})
	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("Get() error = %v, want ErrCompanyNotFound", err)
	}
}

func TestUpdateRequiresAdmin(t *testing.T) {
	store := &stubStore{company: &Company{ID: 1}}
	svc := NewService(store)

	for _, role := range []string{"employee", "manager"} {
		if _, err := svc.Update(context.Background(), role, 1, &UpdateCompanyRequest{}); !errors.Is(err, ErrAdminRequired) {
			t.Errorf("Update() as %s: error = %v, want ErrAdminRequired", role, err)
		}
	}
	if store.updated != nil {
		t.Error("store should not be touched for non-admin callers")
	}
}

func TestUpdateAsAdmin(t *testing.T) {
	store := &stubStore{company: &Company{ID: 1, Name: "Acme"}}
	svc := NewService(store)

	threshold := 500.0
	got, err := svc.Update(context.Background(), "admin", 1, &UpdateCompanyRequest{ApprovalThreshold: &threshold})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if store.updated == nil || store.updated.ApprovalThreshold == nil || *store.updated.ApprovalThreshold != 500 {
		t.Error("threshold change was not forwarded to the store")
	}
}
