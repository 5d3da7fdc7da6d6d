package underwriting

import (
	"fmt"
	"sync"
	"time"
)

// DecisionRepository stores finalized decisions for later lookup by
// identifier. There is no update or delete: a stored decision is immutable.
type DecisionRepository interface {
	// Store saves a finalized decision under its identifier.
	Store(id string, resp *EvaluateResponse) error

	// Get retrieves a decision by identifier.
	Get(id string) (*EvaluateResponse, bool)
}

// RepositoryConfig holds configuration for decision retention.
type RepositoryConfig struct {
	// TTL bounds how long a decision stays retrievable. Zero means entries
	// live for the process lifetime.
	TTL time.Duration
}

// DefaultRepositoryConfig returns the demo-scale default: unbounded retention.
func DefaultRepositoryConfig() RepositoryConfig {
	return RepositoryConfig{TTL: 0}
}

// InMemoryDecisionRepository implements DecisionRepository with a map guarded
// by an RWMutex. Writes are concurrency-safe; two evaluations may finalize in
// overlapping time windows.
type InMemoryDecisionRepository struct {
	decisions map[string]storedDecision
	config    RepositoryConfig
	mu        sync.RWMutex
}

type storedDecision struct {
	resp     *EvaluateResponse
	storedAt time.Time
}

// NewInMemoryDecisionRepository creates an empty repository.
func NewInMemoryDecisionRepository(config RepositoryConfig) *InMemoryDecisionRepository {
	return &InMemoryDecisionRepository{
		decisions: make(map[string]storedDecision),
		config:    config,
	}
}

// Store saves a decision. A duplicate identifier is an internal fault: the
// generator guarantees uniqueness, so an existing entry is never overwritten.
func (r *InMemoryDecisionRepository) Store(id string, resp *EvaluateResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.decisions[id]; exists {
		return fmt.Errorf("decision %s already stored", id)
	}
	r.decisions[id] = storedDecision{resp: resp, storedAt: time.Now()}
	return nil
}

// Get retrieves a decision by identifier. Expired entries count as absent.
func (r *InMemoryDecisionRepository) Get(id string) (*EvaluateResponse, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.decisions[id]
	if !exists {
		return nil, false
	}
	if r.config.TTL > 0 && time.Since(entry.storedAt) > r.config.TTL {
		return nil, false
	}
	return entry.resp, true
}

// Len returns the number of stored decisions, including expired ones.
func (r *InMemoryDecisionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.decisions)
}
