package check

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flakeconf/flakeconf/src/conffile"
)

// Check is the interface every structural check implements. Run inspects
// one parsed configuration file; it fills File, Check and severity on the
// findings it returns.
type Check interface {
	Name() string
	DefaultEnabled() bool
	Run(f *conffile.File) []Finding
}

// Configurable is implemented by checks that accept options from the tool
// configuration.
type Configurable interface {
	Configure(opts map[string]any) error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Check{}
)

// Register adds a check constructor to the global registry.
// Called from init() in each check file.
func Register(name string, constructor func() Check) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("check: duplicate registration: %s", name))
	}
	registry[name] = constructor
}

// Get returns a new instance of the named check.
func Get(name string) (Check, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("check: unknown check: %s", name)
	}
	return ctor(), nil
}

// All returns sorted names of all registered checks.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
