package nlp

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultRegistry is filled by the init functions of linked-in analysis packages.
var DefaultRegistry = NewRegistry()

type Registry struct {
	lock       sync.RWMutex
	tokenizers map[string]TokenizerConstructor
	filters    map[string]TokenFilterConstructor
}

func NewRegistry() *Registry {
	return &Registry{
		tokenizers: make(map[string]TokenizerConstructor),
		filters:    make(map[string]TokenFilterConstructor),
	}
}

func RegisterTokenizer(name string, constructor TokenizerConstructor) {
	DefaultRegistry.RegisterTokenizer(name, constructor)
}

func RegisterTokenFilter(name string, constructor TokenFilterConstructor) {
	DefaultRegistry.RegisterTokenFilter(name, constructor)
}

func (r *Registry) RegisterTokenizer(name string, constructor TokenizerConstructor) {
	if constructor == nil {
		panic(fmt.Sprintf("nlp: tokenizer constructor for %s is nil", name))
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.tokenizers[name] = constructor
}

func (r *Registry) RegisterTokenFilter(name string, constructor TokenFilterConstructor) {
	if constructor == nil {
		panic(fmt.Sprintf("nlp: token filter constructor for %s is nil", name))
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.filters[name] = constructor
}

func (r *Registry) LookupTokenizer(name string) (TokenizerConstructor, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	constructor, ok := r.tokenizers[name]
	return constructor, ok
}

func (r *Registry) LookupTokenFilter(name string) (TokenFilterConstructor, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	constructor, ok := r.filters[name]
	return constructor, ok
}

func (r *Registry) UnregisterTokenizer(name string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.tokenizers, name)
}

func (r *Registry) UnregisterTokenFilter(name string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.filters, name)
}

// Clone copies the registrations so a host can drop some of them without touching the original.
func (r *Registry) Clone() *Registry {
	r.lock.RLock()
	defer r.lock.RUnlock()
	result := NewRegistry()
	for name, constructor := range r.tokenizers {
		result.tokenizers[name] = constructor
	}
	for name, constructor := range r.filters {
		result.filters[name] = constructor
	}
	return result
}

// Names returns the sorted tokenizer and filter names.
func (r *Registry) Names() (tokenizers, filters []string) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	for name := range r.tokenizers {
		tokenizers = append(tokenizers, name)
	}
	for name := range r.filters {
		filters = append(filters, name)
	}
	sort.Strings(tokenizers)
	sort.Strings(filters)
	return
}
