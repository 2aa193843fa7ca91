package detail

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

// Strategy owns the type-specific detail row of a request. Both calls run
// inside the transaction carried by ctx.
type Strategy interface {
	Key() string
	ProcessCreate(ctx context.Context, req *domain.Request, input json.RawMessage) error
	ProcessUpdate(ctx context.Context, req *domain.Request, input json.RawMessage) error
}

type Registry struct {
	strategies map[string]Strategy
	fallback   Strategy
}

// NewRegistry fails when two strategies share a key.
func NewRegistry(fallback Strategy, strategies ...Strategy) (*Registry, error) {
	r := &Registry{
		strategies: make(map[string]Strategy, len(strategies)+1),
		fallback:   fallback,
	}
	r.strategies[fallback.Key()] = fallback

	for _, s := range strategies {
		if _, exists := r.strategies[s.Key()]; exists {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateStrategy, s.Key())
		}
		r.strategies[s.Key()] = s
	}
	return r, nil
}

// Resolve never fails. The boolean is false when key had no registered strategy
// and the fallback was returned instead.
func (r *Registry) Resolve(key string) (Strategy, bool) {
	if s, ok := r.strategies[key]; ok {
		return s, true
	}
	return r.fallback, false
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.strategies))
	for k := range r.strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// noop is the fallback strategy. It persists nothing.
type noop struct {
	key string
}

func NewNoop(key string) Strategy {
	return noop{key: key}
}

func (n noop) Key() string { return n.key }

func (noop) ProcessCreate(context.Context, *domain.Request, json.RawMessage) error { return nil }

func (noop) ProcessUpdate(context.Context, *domain.Request, json.RawMessage) error { return nil }
