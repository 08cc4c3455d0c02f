package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
)

// ReferenceCache loads and holds the slowly-changing option lists and
// the state→district dependency. It is session-scoped: entries are
// never evicted. District responses carry the generation captured when
// their state was selected; a response whose generation no longer
// matches is cached but never made visible, so the visible list always
// belongs to the most recently selected state.
type ReferenceCache struct {
	gateway ports.Gateway

	mu          sync.Mutex
	states      []string
	crops       []string
	soilTypes   []domain.SoilType
	districts   map[string][]string
	activeState string
	generation  uint64
}

func NewReferenceCache(gateway ports.Gateway) *ReferenceCache {
	return &ReferenceCache{
		gateway:   gateway,
		districts: map[string][]string{},
	}
}

// LoadStates fetches and caches the state list. A failure leaves the
// cached list empty, never partially populated.
func (c *ReferenceCache) LoadStates(ctx context.Context) error {
	states, err := c.gateway.States(ctx)
	if err != nil {
		return fmt.Errorf("load states: %w", err)
	}

	c.mu.Lock()
	c.states = states
	c.mu.Unlock()
	return nil
}

func (c *ReferenceCache) LoadCrops(ctx context.Context) error {
	crops, err := c.gateway.Crops(ctx)
	if err != nil {
		return fmt.Errorf("load crops: %w", err)
	}

	c.mu.Lock()
	c.crops = crops
	c.mu.Unlock()
	return nil
}

func (c *ReferenceCache) LoadSoilTypes(ctx context.Context) error {
	soilTypes, err := c.gateway.SoilTypes(ctx)
	if err != nil {
		return fmt.Errorf("load soil types: %w", err)
	}

	c.mu.Lock()
	c.soilTypes = soilTypes
	c.mu.Unlock()
	return nil
}

func (c *ReferenceCache) States() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.states...)
}

func (c *ReferenceCache) Crops() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.crops...)
}

func (c *ReferenceCache) SoilTypes() []domain.SoilType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.SoilType(nil), c.soilTypes...)
}

// SelectState makes state the active parent selection and bumps the
// district generation, invalidating any district fetch still in
// flight. It returns the cached districts when the state was visited
// before, plus the generation to tag a fresh fetch with.
func (c *ReferenceCache) SelectState(state string) (cached []string, ok bool, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeState = state
	c.generation++
	if state == "" {
		return nil, false, c.generation
	}

	cached, ok = c.districts[state]
	return append([]string(nil), cached...), ok, c.generation
}

// FetchDistricts performs the gateway call for a SelectState
// generation and applies the response. The returned visible flag is
// false when the selection moved on while the fetch was in flight; the
// response is still cached for its own state.
func (c *ReferenceCache) FetchDistricts(ctx context.Context, state string, generation uint64) (districts []string, visible bool, err error) {
	fetched, err := c.gateway.Districts(ctx, state)
	if err != nil {
		return nil, false, fmt.Errorf("load districts for %s: %w", state, err)
	}

	return c.applyDistricts(state, generation, fetched)
}

func (c *ReferenceCache) applyDistricts(state string, generation uint64, fetched []string) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.districts[state] = fetched
	if generation != c.generation || state != c.activeState {
		return nil, false, nil
	}

	return append([]string(nil), fetched...), true, nil
}

// Districts returns the list visible for the currently active state,
// or nil when no state is selected or its districts have not settled.
func (c *ReferenceCache) Districts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeState == "" {
		return nil
	}
	return append([]string(nil), c.districts[c.activeState]...)
}

// ActiveState reports the state the visible district list belongs to.
func (c *ReferenceCache) ActiveState() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeState
}
