package automaton

// complementState wraps the inner automaton's state; only IsMatch is
// negated, Step delegates unchanged.
type complementState struct {
	inner State
}

// Complement negates is_match. can_match is unconditionally true, since a
// currently-failing inner automaton may still flip to matching (and
// therefore non-matching under negation) on a later byte.
type Complement struct {
	Inner Automaton
}

func (a Complement) Start() State { return complementState{a.Inner.Start()} }

func (a Complement) Step(s State, b byte) State {
	cs := s.(complementState)
	return complementState{a.Inner.Step(cs.inner, b)}
}

func (a Complement) IsMatch(s State) bool {
	return !a.Inner.IsMatch(s.(complementState).inner)
}

func (a Complement) CanMatch(State) bool { return true }

// startsWithState latches into a permanently-accepting sticky state once
// the inner automaton first matches.
type startsWithState struct {
	inner State
	stuck bool
}

// StartsWith matches any byte sequence with a prefix accepted by Inner.
type StartsWith struct {
	Inner Automaton
}

func (a StartsWith) Start() State {
	s := a.Inner.Start()
	return startsWithState{inner: s, stuck: a.Inner.IsMatch(s)}
}

func (a StartsWith) Step(s State, b byte) State {
	ss := s.(startsWithState)
	if ss.stuck {
		return ss
	}
	next := a.Inner.Step(ss.inner, b)
	return startsWithState{inner: next, stuck: a.Inner.IsMatch(next)}
}

func (a StartsWith) IsMatch(s State) bool {
	ss := s.(startsWithState)
	return ss.stuck || a.Inner.IsMatch(ss.inner)
}

func (a StartsWith) CanMatch(s State) bool {
	ss := s.(startsWithState)
	return ss.stuck || a.Inner.CanMatch(ss.inner)
}

// pairState holds a state from each of two child automata.
type pairState struct {
	a, b State
}

// Union matches a byte sequence accepted by either child.
type Union struct {
	A, B Automaton
}

func (u Union) Start() State { return pairState{u.A.Start(), u.B.Start()} }

func (u Union) Step(s State, b byte) State {
	ps := s.(pairState)
	return pairState{u.A.Step(ps.a, b), u.B.Step(ps.b, b)}
}

func (u Union) IsMatch(s State) bool {
	ps := s.(pairState)
	return u.A.IsMatch(ps.a) || u.B.IsMatch(ps.b)
}

func (u Union) CanMatch(s State) bool {
	ps := s.(pairState)
	return u.A.CanMatch(ps.a) || u.B.CanMatch(ps.b)
}

// Intersection matches a byte sequence accepted by both children.
type Intersection struct {
	A, B Automaton
}

func (i Intersection) Start() State { return pairState{i.A.Start(), i.B.Start()} }

func (i Intersection) Step(s State, b byte) State {
	ps := s.(pairState)
	return pairState{i.A.Step(ps.a, b), i.B.Step(ps.b, b)}
}

func (i Intersection) IsMatch(s State) bool {
	ps := s.(pairState)
	return i.A.IsMatch(ps.a) && i.B.IsMatch(ps.b)
}

func (i Intersection) CanMatch(s State) bool {
	ps := s.(pairState)
	return i.A.CanMatch(ps.a) && i.B.CanMatch(ps.b)
}
