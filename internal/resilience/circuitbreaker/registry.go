package circuitbreaker

import (
	"sort"
	"sync"
)

// Registry lazily creates one breaker per key (a feed host) and keeps them
// for the lifetime of the process. Safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	breakers  map[string]*CircuitBreaker
	configFor func(key string) Config
}

// NewRegistry returns a registry building breakers with configFor.
// A nil configFor means FeedFetchConfig.
func NewRegistry(configFor func(key string) Config) *Registry {
	if configFor == nil {
		configFor = FeedFetchConfig
	}
	return &Registry{
		breakers:  make(map[string]*CircuitBreaker),
		configFor: configFor,
	}
}

// Get returns the breaker for key, creating it on first use.
func (r *Registry) Get(key string) *CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	cb, ok := r.breakers[key]
	if !ok {
		cb = New(r.configFor(key))
		r.breakers[key] = cb
	}
	return cb
}

// Status is a point-in-time view of one breaker, used by /health/breakers.
type Status struct {
	Key                 string `json:"key"`
	Name                string `json:"name"`
	State               string `json:"state"`
	Requests            uint32 `json:"requests"`
	TotalFailures       uint32 `json:"total_failures"`
	ConsecutiveFailures uint32 `json:"consecutive_failures"`
}

// Snapshot lists every known breaker sorted by key.
func (r *Registry) Snapshot() []Status {
	r.mu.Lock()
	keys := make([]string, 0, len(r.breakers))
	for k := range r.breakers {
		keys = append(keys, k)
	}
	breakers := make(map[string]*CircuitBreaker, len(r.breakers))
	for k, v := range r.breakers {
		breakers[k] = v
	}
	r.mu.Unlock()

	sort.Strings(keys)
	out := make([]Status, 0, len(keys))
	for _, k := range keys {
		cb := breakers[k]
		c := cb.Counts()
		out = append(out, Status{
			Key:                 k,
			Name:                cb.Name(),
			State:               cb.State().String(),
			Requests:            c.Requests,
			TotalFailures:       c.TotalFailures,
			ConsecutiveFailures: c.ConsecutiveFailures,
		})
	}
	return out
}
