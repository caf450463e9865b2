// Package registry provides a global registry of executor factories.
// Executors register themselves in init() functions, so the CLI can list
// and build them by name without hardcoded switches.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/dodgesim/internal/sim"
)

// ExecutorInfo contains metadata about a registered executor.
type ExecutorInfo struct {
	ID          string
	Description string
}

// Factory creates an executor. workers is only meaningful to executors
// that fan out.
type Factory func(workers int) sim.Executor

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds an executor factory to the registry.
// Panics if an executor with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: executor %q already registered", id))
	}

	factories[id] = f
	descriptions[id] = description
}

// List returns information about all registered executors, sorted by ID.
func List() []ExecutorInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ExecutorInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ExecutorInfo{
			ID:          id,
			Description: descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates an executor by its ID.
func Create(id string, workers int) (sim.Executor, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown executor %q", id)
	}

	return f(workers), nil
}

// Exists checks if an executor with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

func init() {
	Register("sequential", "Single goroutine, plain loops", func(int) sim.Executor {
		return sim.Sequential{}
	})
	Register("parallel", "Chunked fan-out across goroutines with partial-sum reduction", func(workers int) sim.Executor {
		return sim.NewParallel(workers)
	})
}
