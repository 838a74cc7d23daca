package builder

import "github.com/eykd/adfconv/internal/adf"

// markStack holds the marks active at the current point of the input.
type markStack struct {
	marks []adf.Mark
}

// push activates m and reports whether the stack changed. An already active
// mark is not pushed twice. Code is exclusive: pushing it replaces the whole
// stack, and nothing else is pushed while it is active.
func (s *markStack) push(m adf.Mark) bool {
	for _, active := range s.marks {
		if active.Equal(m) {
			return false
		}
	}
	if m.Type == adf.MarkCode {
		s.marks = []adf.Mark{m}
		return true
	}
	if s.has(adf.MarkCode) {
		return false
	}
	s.marks = append(s.marks, m)
	return true
}

// pop removes the most recently pushed mark matching match.
func (s *markStack) pop(match func(adf.Mark) bool) bool {
	for i := len(s.marks) - 1; i >= 0; i-- {
		if match(s.marks[i]) {
			s.marks = append(s.marks[:i], s.marks[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot returns a copy of the active marks, nil when none are active.
func (s *markStack) snapshot() []adf.Mark {
	if len(s.marks) == 0 {
		return nil
	}
	out := make([]adf.Mark, len(s.marks))
	copy(out, s.marks)
	return out
}

func (s *markStack) has(t adf.MarkType) bool {
	for _, m := range s.marks {
		if m.Type == t {
			return true
		}
	}
	return false
}

func ofType(t adf.MarkType) func(adf.Mark) bool {
	return func(m adf.Mark) bool { return m.Type == t }
}

func equalTo(want adf.Mark) func(adf.Mark) bool {
	return func(m adf.Mark) bool { return m.Equal(want) }
}

func subsupOf(kind adf.Subsup) func(adf.Mark) bool {
	return func(m adf.Mark) bool {
		return m.Type == adf.MarkSubsup && m.Attrs != nil && m.Attrs.Type == kind
	}
}
