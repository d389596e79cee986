package cache

import (
	"go.uber.org/zap"
)

// Router lets write paths declare "this kind of change happened" without
// knowing which stores or keys are affected. Each registered operation
// name maps to an ordered list of key patterns; invalidating an operation
// purges those patterns from every attached store.
//
// The routing table is fixed at construction and never mutated afterwards,
// so Invalidate is safe to call from concurrent write handlers.
type Router struct {
	stores []*Store
	ops    map[string][]string
	logger *zap.Logger
}

// NewRouter builds a router over the given stores. ops maps operation
// names to the key patterns they stale; the map is copied.
func NewRouter(logger *zap.Logger, ops map[string][]string, stores ...*Store) *Router {
	table := make(map[string][]string, len(ops))
	for op, patterns := range ops {
		table[op] = append([]string(nil), patterns...)
	}
	return &Router{
		stores: stores,
		ops:    table,
		logger: logger,
	}
}

// Invalidate purges the patterns registered for op from every store. An
// unknown operation name is a no-op: caching is a performance layer, and a
// stale read is recoverable by refresh whereas failing a successful write
// is not. The miss is logged at debug level to keep typos discoverable.
func (r *Router) Invalidate(op string) {
	patterns, ok := r.ops[op]
	if !ok {
		r.logger.Debug("no invalidation patterns for operation", zap.String("operation", op))
		return
	}

	total := 0
	for _, st := range r.stores {
		total += st.Invalidate(patterns)
	}
	r.logger.Debug("cache invalidated",
		zap.String("operation", op),
		zap.Strings("patterns", patterns),
		zap.Int("removed", total),
	)
}

// Operations returns the registered operation names. Used by startup
// checks and tests to validate the routing table against the operations
// the write paths actually emit.
func (r *Router) Operations() []string {
	names := make([]string, 0, len(r.ops))
	for op := range r.ops {
		names = append(names, op)
	}
	return names
}

// Stores returns the attached stores, for the diagnostic surface.
func (r *Router) Stores() []*Store {
	return r.stores
}

// ClearAll wipes every attached store. Administrative control backing the
// debug surface's clear affordance.
func (r *Router) ClearAll() {
	for _, st := range r.stores {
		st.Clear()
	}
}

// ForceRefresh purges raw key patterns from every store, bypassing the
// operation table. Administrative control for operators who need stronger
// freshness than the TTL window provides.
func (r *Router) ForceRefresh(patterns []string) int {
	total := 0
	for _, st := range r.stores {
		total += st.Invalidate(patterns)
	}
	return total
}
