package gateway

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages registered shipment carriers and payment providers.
type Registry struct {
	mu       sync.RWMutex
	carriers map[string]ShipmentProvider
	payments map[string]PaymentProvider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		carriers: make(map[string]ShipmentProvider),
		payments: make(map[string]PaymentProvider),
	}
}

// RegisterCarrier adds a shipment provider to the registry.
func (r *Registry) RegisterCarrier(p ShipmentProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carriers[p.Name()] = p
}

// RegisterPayment adds a payment provider to the registry.
func (r *Registry) RegisterPayment(p PaymentProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.Name()] = p
}

// Carrier returns a shipment provider by name.
func (r *Registry) Carrier(name string) (ShipmentProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.carriers[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
}

// Payment returns a payment provider by name.
func (r *Registry) Payment(name string) (PaymentProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.payments[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
}

// Carriers returns all registered shipment providers.
func (r *Registry) Carriers() []ShipmentProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]ShipmentProvider, 0, len(r.carriers))
	for _, p := range r.carriers {
		result = append(result, p)
	}
	return result
}

// CarrierNames returns the sorted names of all registered carriers.
func (r *Registry) CarrierNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.carriers))
	for name := range r.carriers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PaymentNames returns the sorted names of all registered payment providers.
func (r *Registry) PaymentNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.payments))
	for name := range r.payments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TrackAll queries all registered carriers for a tracking number in parallel.
// Carriers that cannot resolve the number report the UnableToTrack sentinel
// and are skipped; individual carrier errors don't fail the whole lookup.
func (r *Registry) TrackAll(ctx context.Context, trackingNumber string) ([]TrackResult, []error) {
	carriers := r.Carriers()
	if len(carriers) == 0 {
		return nil, []error{ErrProviderNotFound}
	}

	results := make([]TrackResult, 0, len(carriers))
	errs := make([]error, 0)
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, p := range carriers {
		p := p
		g.Go(func() error {
			status, err := p.TrackShipment(ctx, trackingNumber)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
				return nil
			}
			if status == UnableToTrack {
				return nil
			}
			results = append(results, TrackResult{Carrier: p.Name(), Status: status})
			return nil
		})
	}

	g.Wait()
	return results, errs
}
