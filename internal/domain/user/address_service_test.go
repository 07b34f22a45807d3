package user

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

func newTestAddressService() *AddressService {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{}
	return NewAddressService(store.NewMemoryStore(), remote.NewClient(cfg, log), log)
}

func countDefaults(addresses []Address) int {
	n := 0
	for _, addr := range addresses {
		if addr.IsDefault {
			n++
		}
	}
	return n
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	s := newTestAddressService()
	ctx := context.Background()

	addr, err := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
		Label: "Home", Street: "1 Main St", City: "Springfield", State: "IL",
	})
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}
	if !addr.IsDefault {
		t.Fatal("first address must become the default")
	}
	if addr.Type != AddressTypeOther {
		t.Fatalf("empty type should normalize to other, got %q", addr.Type)
	}
}

func TestAddDefaultClearsOthers(t *testing.T) {
	s := newTestAddressService()
	ctx := context.Background()

	if _, err := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
		Label: "Home", Street: "1 Main St", City: "Springfield", State: "IL",
	}); err != nil {
		t.Fatalf("AddAddress: %v", err)
	}
	second, err := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
		Type: AddressTypeWork, Label: "Work", Street: "2 Oak Ave", City: "Springfield", State: "IL",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}

	addresses := s.GetAddresses(ctx, "user-1")
	if countDefaults(addresses) != 1 {
		t.Fatalf("expected exactly one default, got %+v", addresses)
	}
	def, err := s.GetDefaultAddress(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetDefaultAddress: %v", err)
	}
	if def.ID != second.ID {
		t.Fatalf("default should be the newly added address, got %s", def.ID)
	}
}

func TestSetDefaultAddressIsExclusive(t *testing.T) {
	s := newTestAddressService()
	ctx := context.Background()

	var ids []string
	for _, label := range []string{"Home", "Work", "Parents"} {
		addr, err := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
			Label: label, Street: "1 Main St", City: "Springfield", State: "IL",
		})
		if err != nil {
			t.Fatalf("AddAddress: %v", err)
		}
		ids = append(ids, addr.ID)
	}

	if err := s.SetDefaultAddress(ctx, "user-1", ids[2]); err != nil {
		t.Fatalf("SetDefaultAddress: %v", err)
	}

	addresses := s.GetAddresses(ctx, "user-1")
	if countDefaults(addresses) != 1 {
		t.Fatalf("expected exactly one default, got %+v", addresses)
	}
	def, _ := s.GetDefaultAddress(ctx, "user-1")
	if def.ID != ids[2] {
		t.Fatalf("default = %s, want %s", def.ID, ids[2])
	}

	if err := s.SetDefaultAddress(ctx, "user-1", "no-such-address"); err == nil {
		t.Fatal("expected error for unknown address")
	}
}

func TestDeleteDefaultPromotesFirstRemaining(t *testing.T) {
	s := newTestAddressService()
	ctx := context.Background()

	var ids []string
	for _, label := range []string{"Home", "Work", "Parents"} {
		addr, err := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
			Label: label, Street: "1 Main St", City: "Springfield", State: "IL",
		})
		if err != nil {
			t.Fatalf("AddAddress: %v", err)
		}
		ids = append(ids, addr.ID)
	}

	// Home is the default; deleting it must promote Work (the first remaining)
	if err := s.DeleteAddress(ctx, "user-1", ids[0]); err != nil {
		t.Fatalf("DeleteAddress: %v", err)
	}

	addresses := s.GetAddresses(ctx, "user-1")
	if len(addresses) != 2 {
		t.Fatalf("expected two addresses, got %+v", addresses)
	}
	if countDefaults(addresses) != 1 {
		t.Fatalf("expected exactly one default after promotion, got %+v", addresses)
	}
	if !addresses[0].IsDefault || addresses[0].ID != ids[1] {
		t.Fatalf("expected %s promoted to default, got %+v", ids[1], addresses)
	}
}

func TestDeleteNonDefaultKeepsDefault(t *testing.T) {
	s := newTestAddressService()
	ctx := context.Background()

	first, _ := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
		Label: "Home", Street: "1 Main St", City: "Springfield", State: "IL",
	})
	second, _ := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
		Label: "Work", Street: "2 Oak Ave", City: "Springfield", State: "IL",
	})

	if err := s.DeleteAddress(ctx, "user-1", second.ID); err != nil {
		t.Fatalf("DeleteAddress: %v", err)
	}
	def, err := s.GetDefaultAddress(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetDefaultAddress: %v", err)
	}
	if def.ID != first.ID {
		t.Fatalf("default should stay on %s, got %s", first.ID, def.ID)
	}
}

func TestUpdateAddressPatchesFields(t *testing.T) {
	s := newTestAddressService()
	ctx := context.Background()

	addr, _ := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
		Label: "Home", Street: "1 Main St", City: "Springfield", State: "IL",
	})

	newStreet := "99 Elm St"
	updated, err := s.UpdateAddress(ctx, "user-1", addr.ID, &UpdateAddressRequest{Street: &newStreet})
	if err != nil {
		t.Fatalf("UpdateAddress: %v", err)
	}
	if updated.Street != newStreet {
		t.Fatalf("Street = %q, want %q", updated.Street, newStreet)
	}
	if updated.Label != "Home" || !updated.IsDefault {
		t.Fatalf("untouched fields must survive the patch, got %+v", updated)
	}

	if _, err := s.UpdateAddress(ctx, "user-1", "no-such-address", &UpdateAddressRequest{Street: &newStreet}); err == nil {
		t.Fatal("expected error for unknown address")
	}
}

func TestUpdateAddressSetDefaultViaPatch(t *testing.T) {
	s := newTestAddressService()
	ctx := context.Background()

	s.AddAddress(ctx, "user-1", &CreateAddressRequest{
		Label: "Home", Street: "1 Main St", City: "Springfield", State: "IL",
	})
	second, _ := s.AddAddress(ctx, "user-1", &CreateAddressRequest{
		Label: "Work", Street: "2 Oak Ave", City: "Springfield", State: "IL",
	})

	isDefault := true
	if _, err := s.UpdateAddress(ctx, "user-1", second.ID, &UpdateAddressRequest{IsDefault: &isDefault}); err != nil {
		t.Fatalf("UpdateAddress: %v", err)
	}

	addresses := s.GetAddresses(ctx, "user-1")
	if countDefaults(addresses) != 1 {
		t.Fatalf("expected exactly one default, got %+v", addresses)
	}
	def, _ := s.GetDefaultAddress(ctx, "user-1")
	if def.ID != second.ID {
		t.Fatalf("default = %s, want %s", def.ID, second.ID)
	}
}
