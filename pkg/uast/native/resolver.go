package native

import "sync"

// Symbol is the target of a resolved call.
type Symbol struct {
	// Declaration is the native declaration of the callee, when known.
	Declaration Node
	// Name is the simple name of the callee method or constructor.
	Name string
	// Owner is the qualified name of the declaring class.
	Owner string
	// Constructor is set when the call creates an instance of Owner.
	Constructor bool
}

// Resolver is the resolution oracle of a native frontend.
type Resolver interface {
	ResolveCall(call Node) (Symbol, bool)
}

// NopResolver resolves nothing.
type NopResolver struct{}

// ResolveCall always fails.
func (NopResolver) ResolveCall(Node) (Symbol, bool) { return Symbol{}, false }

// MapResolver is a Resolver backed by explicit bindings keyed by call identity.
// The zero value is ready to use.
type MapResolver struct {
	mu       sync.RWMutex
	bindings map[Key]Symbol
}

// Bind records the symbol a call resolves to.
func (r *MapResolver) Bind(call Node, symbol Symbol) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bindings == nil {
		r.bindings = make(map[Key]Symbol)
	}

	r.bindings[KeyOf(call)] = symbol
}

// ResolveCall returns the bound symbol for call.
func (r *MapResolver) ResolveCall(call Node) (Symbol, bool) {
	if call == nil {
		return Symbol{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	symbol, ok := r.bindings[KeyOf(call)]

	return symbol, ok
}
