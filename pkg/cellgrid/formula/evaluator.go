package formula

// Source gives the evaluator read access to raw cell contents.
type Source interface {
	// Cell returns the raw content at (row, col), or "" outside the grid.
	Cell(row, col int) string
}

// Evaluator computes display values from raw cell contents. It holds no
// cache: every call recomputes from the current contents of its source.
type Evaluator struct {
	src Source
}

// New returns an evaluator reading cells from src.
func New(src Source) *Evaluator {
	return &Evaluator{src: src}
}

// Evaluate returns the display value of content.
func (e *Evaluator) Evaluate(content string) string {
	return e.eval(content, newStack()).text
}

// EvaluateAt returns the display value of the cell at (row, col).
func (e *Evaluator) EvaluateAt(row, col int) string {
	return e.Evaluate(e.src.Cell(row, col))
}

// result is an evaluated value. fault is set only when evaluation itself
// failed, never for literal text that reads like a sentinel.
type result struct {
	text  string
	fault bool
}

func plain(text string) result { return result{text: text} }

func failed(sentinel string) result { return result{text: sentinel, fault: true} }

func (e *Evaluator) eval(content string, st *stack) result {
	if !IsFormula(content) {
		return plain(content)
	}
	if st.contains(content) {
		return failed(CircularValue)
	}
	st.push(content)
	defer st.pop(content)

	if m := aggregateRE.FindStringSubmatch(content); m != nil {
		return plain(e.aggregate(m[1], m[2], m[3], st))
	}
	if m := concatRE.FindStringSubmatch(content); m != nil {
		return plain(concat(m[1]))
	}
	return e.arithmetic(content, st)
}

// cellValue evaluates the cell at (row, col) on the current path.
func (e *Evaluator) cellValue(row, col int, st *stack) result {
	return e.eval(e.src.Cell(row, col), st)
}

// stack is the set of formula strings on the active evaluation path.
// Identical formula text always depends on the same cells, so a string
// revisited while still on the path is a cycle.
type stack struct {
	active map[string]struct{}
}

func newStack() *stack {
	return &stack{active: make(map[string]struct{})}
}

func (s *stack) contains(formula string) bool {
	_, ok := s.active[formula]
	return ok
}

func (s *stack) push(formula string) {
	s.active[formula] = struct{}{}
}

func (s *stack) pop(formula string) {
	delete(s.active, formula)
}
