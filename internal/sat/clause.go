package sat

import (
	"strings"
)

// Clause is a disjunction of distinct literals. The literal slice is
// immutable once the clause is in the store; only the two watch positions
// may change. Clauses are identified by their insertion index in the store,
// which is how watch lists and antecedent fields refer to them.
type Clause struct {
	lits []Literal

	// Positions of the two watched literals in lits. Meaningless for
	// clauses of fewer than two literals, which never enter the watch
	// index. For clauses of size >= 2, w1 != w2 at all times.
	w1 int
	w2 int
}

// NewClause returns a clause over the given literals, watching the first
// two positions.
func NewClause(lits []Literal) *Clause {
	return &Clause{lits: lits, w1: 0, w2: 1}
}

// Literals returns the clause's literals. Callers must not modify the
// returned slice.
func (c *Clause) Literals() []Literal {
	return c.lits
}

// Size returns the number of literals in the clause.
func (c *Clause) Size() int {
	return len(c.lits)
}

// watches reports whether position i is one of the clause's watch positions.
func (c *Clause) watches(i int) bool {
	return i == c.w1 || i == c.w2
}

// otherWatched returns the watched literal that is not l. It must only be
// called with l equal to one of the two watched literals.
func (c *Clause) otherWatched(l Literal) Literal {
	if c.lits[c.w1] == l {
		return c.lits[c.w2]
	}
	return c.lits[c.w1]
}

// rewatch moves whichever watch position points at l to position i.
func (c *Clause) rewatch(l Literal, i int) {
	if c.lits[c.w1] == l {
		c.w1 = i
	} else {
		c.w2 = i
	}
}

func (c *Clause) String() string {
	if len(c.lits) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.lits[0].String())
	for _, l := range c.lits[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
