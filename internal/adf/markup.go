package adf

// MarkupOrder lists mark types longest delimiter first, so that a scanner
// trying them in order matches `**` before `*` and `~~` before `~`.
var MarkupOrder = []MarkType{
	MarkStrong,
	MarkStrike,
	MarkUnderline,
	MarkTextColor,
	MarkCode,
	MarkEm,
	MarkSubsup,
}

// Markup returns the lightweight-markup delimiter for m. Marks without a
// markup form, and text colours outside the named palette, report false.
func (m Mark) Markup() (string, bool) {
	switch m.Type {
	case MarkCode:
		return "`", true
	case MarkEm:
		return "*", true
	case MarkStrong:
		return "**", true
	case MarkStrike:
		return "~~", true
	case MarkUnderline:
		return "__", true
	case MarkSubsup:
		if m.Attrs != nil && m.Attrs.Type == Sup {
			return "^", true
		}
		return "~", true
	case MarkTextColor:
		if m.Attrs == nil {
			return "", false
		}
		name, ok := ColorName(m.Attrs.Color)
		if !ok {
			return "", false
		}
		return "{color:" + name + "}", true
	}
	return "", false
}
