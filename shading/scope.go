package shading

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ScopeContext describes what kind of construct a scope was opened for.
// Overload resolution inspects the enclosing function-call context to
// pick among candidates.
type ScopeContext uint8

const (
	ContextNormal ScopeContext = iota
	ContextFunctionCall
)

// Scope is a node in the lexical scope tree built during verification.
// Symbols map to one declaration, or to several for overloaded
// functions.
type Scope struct {
	parent  *Scope
	symbols map[string][]Decl
	types   map[string]Type

	context ScopeContext

	// callArgs holds the argument expressions of the function call this
	// scope was opened for, for ContextFunctionCall scopes.
	callArgs []Expr

	// function is the function whose body this scope belongs to, or nil
	// at the top level.
	function *FunctionDecl
}

// NewScope creates a root scope pre-populated with the built-in types.
func NewScope() *Scope {
	s := &Scope{
		symbols: make(map[string][]Decl),
		types:   make(map[string]Type),
	}
	for _, t := range builtinTypes {
		s.types[t.TypeName()] = t
	}
	return s
}

// Child opens a nested scope.
func (s *Scope) Child(context ScopeContext) *Scope {
	return &Scope{
		parent:   s,
		symbols:  make(map[string][]Decl),
		types:    make(map[string]Type),
		context:  context,
		function: s.function,
	}
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Function returns the function whose body encloses this scope, or nil.
func (s *Scope) Function() *FunctionDecl { return s.function }

// SetFunction marks s as the body scope of fn.
func (s *Scope) SetFunction(fn *FunctionDecl) { s.function = fn }

// SetCallArgs records the arguments of the function call this scope
// represents.
func (s *Scope) SetCallArgs(args []Expr) { s.callArgs = args }

// CallArgs returns the argument expressions of the nearest enclosing
// function-call scope, or nil.
func (s *Scope) CallArgs() []Expr {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.context == ContextFunctionCall {
			return sc.callArgs
		}
	}
	return nil
}

// AddSymbol registers a declaration under name in this scope. Callers
// must check ContainsSymbolHere first; registering a duplicate
// non-function symbol is a bug.
func (s *Scope) AddSymbol(name string, decl Decl) {
	existing := s.symbols[name]
	if len(existing) > 0 {
		if _, ok := decl.(*FunctionDecl); !ok {
			panic(fmt.Sprintf("shading: duplicate symbol %q", name))
		}
	}
	s.symbols[name] = append(existing, decl)
}

// AddType registers a named type in this scope.
func (s *Scope) AddType(name string, t Type) {
	s.types[name] = t
}

// ContainsSymbolHere reports whether name is declared in this scope,
// ignoring ancestors.
func (s *Scope) ContainsSymbolHere(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

// LookupSymbol returns every declaration visible under name, innermost
// scope first. Overloaded functions yield multiple entries.
func (s *Scope) LookupSymbol(name string) []Decl {
	var found []Decl
	for sc := s; sc != nil; sc = sc.parent {
		found = append(found, sc.symbols[name]...)
	}
	return found
}

// LookupType resolves a type name through the scope chain.
func (s *Scope) LookupType(name string) Type {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.types[name]; ok {
			return t
		}
	}
	return nil
}

// visibleNames collects every symbol and type name reachable from s,
// sorted for deterministic suggestions.
func (s *Scope) visibleNames() []string {
	seen := make(map[string]struct{})
	for sc := s; sc != nil; sc = sc.parent {
		for name := range sc.symbols {
			seen[name] = struct{}{}
		}
		for name := range sc.types {
			seen[name] = struct{}{}
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}

// Suggest returns the visible name most similar to name, or "" when
// nothing is close enough. Similarity is the Levenshtein distance
// normalised by the longer length; candidates above 0.5 are rejected.
func (s *Scope) Suggest(name string) string {
	const threshold = 0.5

	best := ""
	bestScore := threshold
	for _, candidate := range s.visibleNames() {
		if candidate == name {
			continue
		}
		longer := len(name)
		if len(candidate) > longer {
			longer = len(candidate)
		}
		if longer == 0 {
			continue
		}
		score := float64(levenshtein(name, candidate)) / float64(longer)
		if score < bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best
}

// levenshtein computes the edit distance between a and b using two
// rolling rows.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minOf(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
