package dispatchers

import (
	"errors"
	"sort"

	"github.com/starcluster/starcluster/internal/usage"
)

// ErrRegistrySealed is returned when Register is called more than once.
var ErrRegistrySealed = errors.New("dispatchers: registry already built")

// Registry maps every alias to its action. It is filled by exactly one call
// to Register and is read-only afterwards.
type Registry struct {
	byAlias map[string]*Action
	actions []*Action
	sealed  bool
}

// NewRegistry returns an empty registry. Components that need lookups (the
// help action, completion) may hold the pointer before Register is called.
func NewRegistry() *Registry {
	return &Registry{byAlias: make(map[string]*Action)}
}

// Register adds all actions at once. If any alias is claimed twice, or an
// action's schema is invalid, nothing is registered and the registry stays
// unusable.
func (r *Registry) Register(actions ...*Action) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	r.sealed = true

	pending := make(map[string]*Action)
	for _, a := range actions {
		if len(a.Aliases) == 0 {
			return usage.InvalidSchema(a.Summary, "action has no aliases")
		}
		for _, alias := range a.Aliases {
			if _, exists := pending[alias]; exists {
				return usage.DuplicateAlias(alias)
			}
			pending[alias] = a
		}
		if err := ValidateSchema(a.Name(), a.Schema()); err != nil {
			return err
		}
	}

	r.byAlias = pending
	r.actions = actions
	return nil
}

// Resolve returns the action registered under exactly this alias.
func (r *Registry) Resolve(name string) (*Action, error) {
	if a, ok := r.byAlias[name]; ok {
		return a, nil
	}
	return nil, usage.UnknownAction(name, r.Similar(name, defaultSuggestionsCount)...)
}

// Lookup is Resolve without the error value.
func (r *Registry) Lookup(name string) (*Action, bool) {
	a, ok := r.byAlias[name]
	return a, ok
}

// Actions returns the registered actions in registration order.
func (r *Registry) Actions() []*Action {
	return r.actions
}

// Aliases returns every registered alias, sorted.
func (r *Registry) Aliases() []string {
	aliases := make([]string, 0, len(r.byAlias))
	for alias := range r.byAlias {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
