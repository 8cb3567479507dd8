package ownership

import "github.com/recolon-lang/recolon/internal/token"

// State is the ownership state of a binding at a program point.
// Borrows are transient (scoped to a single expression evaluation) and
// tracked separately in exprCtx, so only the persistent states appear here.
type State uint8

const (
	Owned State = iota // binding owns its value
	Moved              // value transferred out; further use is an error
)

// String returns a human-readable name for the state.
func (s State) String() string {
	if s == Moved {
		return "Moved"
	}
	return "Owned"
}

// Class is the statically inferred ownership class of a binding's content.
// Reference-typed content (arrays, instances) moves on transfer; value
// content copies. Calls and parameters are unknown and treated as copying,
// which keeps the pass conservative about errors rather than programs.
type Class uint8

const (
	ClassValue   Class = iota // copied on assignment
	ClassRef                  // shared by reference; transfers are moves
	ClassUnknown              // statically undetermined
)

// String returns a human-readable name for the class.
func (c Class) String() string {
	switch c {
	case ClassRef:
		return "ref"
	case ClassUnknown:
		return "unknown"
	default:
		return "value"
	}
}

// binding is the per-identifier analysis record.
type binding struct {
	name    string
	state   State
	class   Class
	isClass bool           // declared by struct/class; calls on it construct instances
	pos     token.Position // declaration position
}

// scope is one frame of the analysis-time scope chain.
type scope struct {
	parent *scope
	vars   map[string]*binding
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]*binding)}
}

// declare creates a fresh Owned binding in this frame, shadowing any
// outer binding of the same name.
func (sc *scope) declare(name string, class Class, pos token.Position) *binding {
	b := &binding{name: name, state: Owned, class: class, pos: pos}
	sc.vars[name] = b
	return b
}

// lookup walks the chain innermost to outermost.
func (sc *scope) lookup(name string) *binding {
	for s := sc; s != nil; s = s.parent {
		if b, ok := s.vars[name]; ok {
			return b
		}
	}
	return nil
}

// snapshot captures the states of every binding visible from sc.
func (sc *scope) snapshot() map[*binding]State {
	snap := make(map[*binding]State)
	for s := sc; s != nil; s = s.parent {
		for _, b := range s.vars {
			if _, ok := snap[b]; !ok {
				snap[b] = b.state
			}
		}
	}
	return snap
}

// restore resets every snapshotted binding to its captured state.
func restore(snap map[*binding]State) {
	for b, st := range snap {
		b.state = st
	}
}

// mergeMoved applies the conservative join rule: a binding moved in any
// branch outcome is Moved after the join.
func mergeMoved(base map[*binding]State, outcomes []map[*binding]State) {
	for b := range base {
		for _, out := range outcomes {
			if out[b] == Moved {
				b.state = Moved
				break
			}
		}
	}
}
