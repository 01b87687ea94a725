package lang

// Env is one scope in a chain of variable bindings. Lookup walks outward
// through parents; assignment updates the nearest existing binding and
// otherwise defines the name in the innermost scope.
type Env struct {
	vars   map[string]int64
	parent *Env
}

// NewEnv returns an empty scope chained to parent. A nil parent makes a
// root scope.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[string]int64), parent: parent}
}

// Lookup resolves name in the innermost scope that binds it.
func (e *Env) Lookup(name string) (int64, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}

	return 0, false
}

// Set assigns value to name. An existing binding anywhere in the chain is
// updated in place; an unbound name is defined in this scope.
func (e *Env) Set(name string, value int64) {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = value

			return
		}
	}

	e.vars[name] = value
}
