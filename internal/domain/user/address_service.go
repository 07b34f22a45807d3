// internal/domain/user/address_service.go
package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/grocery-backend/internal/pkg/mirror"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

// AddressService handles address business logic. The collection invariant:
// at most one address carries is_default, and deleting the default promotes
// the first remaining address.
type AddressService struct {
	store  store.Store
	remote *remote.Client
	log    *logrus.Logger

	mu sync.Mutex
}

// NewAddressService creates a new address service
func NewAddressService(st store.Store, rc *remote.Client, log *logrus.Logger) *AddressService {
	return &AddressService{
		store:  st,
		remote: rc,
		log:    log,
	}
}

// CreateAddressRequest represents address creation data
type CreateAddressRequest struct {
	Type        string       `json:"type" binding:"omitempty,oneof=home work other"`
	Label       string       `json:"label" binding:"required"`
	Street      string       `json:"street" binding:"required"`
	City        string       `json:"city" binding:"required"`
	State       string       `json:"state" binding:"required"`
	Zip         string       `json:"zip"`
	Coordinates *Coordinates `json:"coordinates"`
	IsDefault   bool         `json:"is_default"`
}

// UpdateAddressRequest represents address update data
type UpdateAddressRequest struct {
	Type        *string      `json:"type" binding:"omitempty,oneof=home work other"`
	Label       *string      `json:"label"`
	Street      *string      `json:"street"`
	City        *string      `json:"city"`
	State       *string      `json:"state"`
	Zip         *string      `json:"zip"`
	Coordinates *Coordinates `json:"coordinates"`
	IsDefault   *bool        `json:"is_default"`
}

// GetAddresses retrieves all addresses for a user
func (s *AddressService) GetAddresses(ctx context.Context, userID string) []Address {
	return s.load(ctx, userID)
}

// GetAddress retrieves one address by ID
func (s *AddressService) GetAddress(ctx context.Context, userID, addressID string) (*Address, error) {
	for _, addr := range s.load(ctx, userID) {
		if addr.ID == addressID {
			return &addr, nil
		}
	}
	return nil, fmt.Errorf("address not found")
}

// GetDefaultAddress returns the default address, falling back to the first
func (s *AddressService) GetDefaultAddress(ctx context.Context, userID string) (*Address, error) {
	addresses := s.load(ctx, userID)
	if len(addresses) == 0 {
		return nil, fmt.Errorf("no addresses saved")
	}
	for _, addr := range addresses {
		if addr.IsDefault {
			return &addr, nil
		}
	}
	return &addresses[0], nil
}

// AddAddress creates an address. The first address, or one explicitly marked
// default, becomes the single default in the same state transition.
func (s *AddressService) AddAddress(ctx context.Context, userID string, req *CreateAddressRequest) (*Address, error) {
	addrType := req.Type
	if addrType == "" {
		addrType = AddressTypeOther
	}

	address := Address{
		ID:          uuid.NewString(),
		Type:        addrType,
		Label:       req.Label,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Coordinates: req.Coordinates,
		IsDefault:   req.IsDefault,
	}

	s.mu.Lock()
	addresses := s.load(ctx, userID)

	if len(addresses) == 0 {
		address.IsDefault = true
	}
	if address.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}
	addresses = append(addresses, address)

	err := s.save(ctx, userID, addresses)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "address.create", func(ctx context.Context) error {
		return s.remote.CreateAddress(ctx, userID, address.ID)
	})

	return &address, nil
}

// UpdateAddress merges fields into an existing address. Default exclusivity
// is only touched when the patch explicitly sets is_default.
func (s *AddressService) UpdateAddress(ctx context.Context, userID, addressID string, req *UpdateAddressRequest) (*Address, error) {
	s.mu.Lock()
	addresses := s.load(ctx, userID)

	idx := -1
	for i := range addresses {
		if addresses[i].ID == addressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil, fmt.Errorf("address not found")
	}

	addr := &addresses[idx]
	if req.Type != nil {
		addr.Type = *req.Type
	}
	if req.Label != nil {
		addr.Label = *req.Label
	}
	if req.Street != nil {
		addr.Street = *req.Street
	}
	if req.City != nil {
		addr.City = *req.City
	}
	if req.State != nil {
		addr.State = *req.State
	}
	if req.Zip != nil {
		addr.Zip = *req.Zip
	}
	if req.Coordinates != nil {
		addr.Coordinates = req.Coordinates
	}
	if req.IsDefault != nil {
		if *req.IsDefault {
			for i := range addresses {
				addresses[i].IsDefault = i == idx
			}
		} else {
			addr.IsDefault = false
		}
	}

	updated := *addr
	err := s.save(ctx, userID, addresses)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	mirror.Go(s.log, "address.update", func(ctx context.Context) error {
		return s.remote.UpdateAddress(ctx, userID, addressID)
	})

	return &updated, nil
}

// DeleteAddress removes an address. When the removed entry held the default
// and others remain, the first remaining address is promoted.
func (s *AddressService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	s.mu.Lock()
	addresses := s.load(ctx, userID)

	filtered := addresses[:0]
	removed := false
	for _, addr := range addresses {
		if addr.ID == addressID {
			removed = true
			continue
		}
		filtered = append(filtered, addr)
	}
	if !removed {
		s.mu.Unlock()
		return fmt.Errorf("address not found")
	}

	if len(filtered) > 0 && !hasDefault(filtered) {
		filtered[0].IsDefault = true
	}

	err := s.save(ctx, userID, filtered)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	mirror.Go(s.log, "address.delete", func(ctx context.Context) error {
		return s.remote.DeleteAddress(ctx, userID, addressID)
	})

	return nil
}

// SetDefaultAddress sets the target as default and clears all others
func (s *AddressService) SetDefaultAddress(ctx context.Context, userID, addressID string) error {
	s.mu.Lock()
	addresses := s.load(ctx, userID)

	found := false
	for i := range addresses {
		isTarget := addresses[i].ID == addressID
		addresses[i].IsDefault = isTarget
		if isTarget {
			found = true
		}
	}
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("address not found")
	}

	err := s.save(ctx, userID, addresses)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	mirror.Go(s.log, "address.set_default", func(ctx context.Context) error {
		return s.remote.SetDefaultAddress(ctx, userID, addressID)
	})

	return nil
}

func (s *AddressService) load(ctx context.Context, userID string) []Address {
	var addresses []Address
	if _, err := s.store.Get(ctx, store.AddressesKey(userID), &addresses); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to load addresses, falling back to empty")
		return []Address{}
	}
	if addresses == nil {
		addresses = []Address{}
	}
	return addresses
}

func (s *AddressService) save(ctx context.Context, userID string, addresses []Address) error {
	if err := s.store.Set(ctx, store.AddressesKey(userID), addresses); err != nil {
		return fmt.Errorf("failed to persist addresses: %w", err)
	}
	return nil
}

func hasDefault(addresses []Address) bool {
	for _, addr := range addresses {
		if addr.IsDefault {
			return true
		}
	}
	return false
}
