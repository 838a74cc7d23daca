package builder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConsumed is returned when a builder is used after Emit.
var ErrConsumed = errors.New("builder already emitted its document")

// StructuralError reports HTML whose nesting does not match what the tree
// allows. The conversion of the document is abandoned.
type StructuralError struct {
	Tag    string   // tag being processed when the fault occurred
	Reason string   // what was wrong
	Stack  []string // open frames, outermost first
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural fault at <%s>: %s [stack: %s]", e.Tag, e.Reason, strings.Join(e.Stack, " > "))
}

// fault aborts the current event. The panic is recovered by the exported
// Builder methods and turned into a *StructuralError.
func (b *Builder) fault(tag, format string, args ...any) {
	stack := make([]string, len(b.stack))
	for i, f := range b.stack {
		stack[i] = f.String()
	}
	panic(&StructuralError{Tag: tag, Reason: fmt.Sprintf(format, args...), Stack: stack})
}

// recoverFault converts a fault panic into *errp and poisons the builder so
// later events report the same error. Other panics propagate.
func (b *Builder) recoverFault(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	se, ok := r.(*StructuralError)
	if !ok {
		panic(r)
	}
	b.err = se
	*errp = se
}
