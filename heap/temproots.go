package heap

import "github.com/jcorbin/miniscript/object"

// TempRoots is the temp-roots LIFO of spec §3: any code that allocates
// while holding an otherwise-unreachable object must Push it first and Pop
// after, strictly LIFO. It has no fixed capacity limit: Push always
// appends. Grounded on gothird's vm.push/vm.pop (internals.go):
// a plain growable slice with push-by-append and pop-by-truncate, panicking
// on underflow the same way vm.pop() indexes off the end of an empty stack.
type TempRoots struct {
	stack []*object.Header
}

// Push registers h as a temporary root.
func (tr *TempRoots) Push(h *object.Header) {
	tr.stack = append(tr.stack, h)
}

// Pop removes and returns the most recently pushed root. Pop on an empty
// stack is a programmer error, matching gothird's underflow-via-panic
// idiom for its own push/pop pair.
func (tr *TempRoots) Pop() *object.Header {
	i := len(tr.stack) - 1
	h := tr.stack[i]
	tr.stack[i] = nil
	tr.stack = tr.stack[:i]
	return h
}

// Len reports the number of roots currently held.
func (tr *TempRoots) Len() int { return len(tr.stack) }

// Each calls f for every root currently held, for the collector's mark
// phase to walk the set.
func (tr *TempRoots) Each(f func(*object.Header)) {
	for _, h := range tr.stack {
		f(h)
	}
}

// Guard pushes h and returns a func that pops it, for defer-scoped use
// around an allocation that needs h kept alive, mirroring gothird's
// withLogPrefix defer-closure shape (core.go) applied to a push/pop pair
// instead of a logging prefix.
func (tr *TempRoots) Guard(h *object.Header) func() {
	tr.Push(h)
	return func() { tr.Pop() }
}
