// Package favorites keeps a per-user, capped list of saved locations.
package favorites

import (
	"context"
	"fmt"
	"strings"

	"github.com/tbxark/locationagent/store"
	"github.com/tbxark/locationagent/types"
)

const DefaultMaxFavorites = 5

type Entry struct {
	Name     string         `json:"name"`
	Location types.Location `json:"location"`
}

// AddResult is the capacity signal returned by Add.
type AddResult string

const (
	Added           AddResult = "added"
	CapacityReached AddResult = "capacity_reached"
	DuplicateName   AddResult = "duplicate_name"
	InvalidName     AddResult = "invalid_name"
	AlreadyFavorite AddResult = "already_favorite"
)

func (r AddResult) OK() bool {
	return r == Added
}

// Store is keyed by an explicit user id on every call.
type Store interface {
	List(ctx context.Context, userID string) ([]Entry, error)
	Add(ctx context.Context, userID string, entry Entry) (AddResult, error)
	Remove(ctx context.Context, userID, name string) error
	IsFavorite(ctx context.Context, userID string, loc *types.Location) (bool, error)
	IsFavoriteName(ctx context.Context, userID, name string) (bool, error)
	Full(ctx context.Context, userID string) (bool, error)
}

type CacheStore struct {
	store store.Store[[]Entry]
	max   int
}

func NewCacheStore(core store.Cache[[]Entry], maxFavorites int) *CacheStore {
	if maxFavorites <= 0 {
		maxFavorites = DefaultMaxFavorites
	}
	return &CacheStore{
		store: store.New(core, "favorites"),
		max:   maxFavorites,
	}
}

func NewMemoryStore(maxFavorites int) *CacheStore {
	return NewCacheStore(store.NewMemoryCache[[]Entry](), maxFavorites)
}

func (s *CacheStore) List(ctx context.Context, userID string) ([]Entry, error) {
	entries, ok, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if !ok || entries == nil {
		return []Entry{}, nil
	}
	return append([]Entry(nil), entries...), nil
}

func (s *CacheStore) Add(ctx context.Context, userID string, entry Entry) (AddResult, error) {
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Name == "" {
		return InvalidName, nil
	}
	entries, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(entries) >= s.max {
		return CapacityReached, nil
	}
	if indexOf(entries, entry.Name) >= 0 {
		return DuplicateName, nil
	}
	entries = append(entries, entry)
	if err := s.store.Set(ctx, userID, entries); err != nil {
		return "", fmt.Errorf("save favorites: %w", err)
	}
	return Added, nil
}

func (s *CacheStore) Remove(ctx context.Context, userID, name string) error {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	idx := indexOf(entries, name)
	if idx < 0 {
		return nil
	}
	entries = append(entries[:idx:idx], entries[idx+1:]...)
	if err := s.store.Set(ctx, userID, entries); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

func (s *CacheStore) IsFavorite(ctx context.Context, userID string, loc *types.Location) (bool, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for i := range entries {
		if entries[i].Location.SameAs(loc) {
			return true, nil
		}
	}
	return false, nil
}

func (s *CacheStore) IsFavoriteName(ctx context.Context, userID, name string) (bool, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	return indexOf(entries, name) >= 0, nil
}

func (s *CacheStore) Full(ctx context.Context, userID string) (bool, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(entries) >= s.max, nil
}

func indexOf(entries []Entry, name string) int {
	name = strings.TrimSpace(name)
	for i := range entries {
		if strings.EqualFold(entries[i].Name, name) {
			return i
		}
	}
	return -1
}

var _ Store = (*CacheStore)(nil)
