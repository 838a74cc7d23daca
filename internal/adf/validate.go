package adf

import (
	"fmt"
	"sort"
	"strconv"
)

// DiagnosticCode identifies a structural rule checked by Validate.
type DiagnosticCode string

const (
	// ADFE001 indicates the root is not a version-1 doc node.
	ADFE001 DiagnosticCode = "ADFE001"
	// ADFE002 indicates a heading level outside 1–6.
	ADFE002 DiagnosticCode = "ADFE002"
	// ADFE003 indicates a child whose type is not allowed in its parent.
	ADFE003 DiagnosticCode = "ADFE003"
	// ADFE004 indicates a code mark combined with other marks.
	ADFE004 DiagnosticCode = "ADFE004"
	// ADFE005 indicates a text node with empty text.
	ADFE005 DiagnosticCode = "ADFE005"
	// ADFE006 indicates a mediaSingle without a layout.
	ADFE006 DiagnosticCode = "ADFE006"
	// ADFW001 is a warning for an unknown node or mark variant.
	ADFW001 DiagnosticCode = "ADFW001"
	// ADFW002 is a warning for a text colour outside the named palette.
	ADFW002 DiagnosticCode = "ADFW002"
)

// Severity classifies the impact level of a diagnostic.
type Severity string

const (
	// SeverityError indicates a document the converters cannot represent faithfully.
	SeverityError Severity = "error"
	// SeverityWarning indicates a condition that degrades gracefully.
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     DiagnosticCode `json:"code"`
	Message  string         `json:"message"`
	Path     string         `json:"path"` // e.g. /content/0/content/2
}

// allowedChildren restricts the children of container types. Types absent
// from the map are not checked.
var allowedChildren = map[NodeType][]NodeType{
	TypeBulletList:   {TypeListItem},
	TypeOrderedList:  {TypeListItem},
	TypeTaskList:     {TypeTaskItem},
	TypeDecisionList: {TypeDecisionItem},
	TypeTable:        {TypeTableRow},
	TypeTableRow:     {TypeTableHeader, TypeTableCell},
	TypeMediaGroup:   {TypeMedia},
	TypeMediaSingle:  {TypeMedia},
}

// Validate checks doc against the structural invariants of the tree and
// returns the findings sorted errors first, then by path. It returns nil for
// a valid document.
func Validate(doc *Node) []Diagnostic {
	var diags []Diagnostic
	if doc == nil || doc.Type != TypeDoc || doc.Version != DocVersion {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Code:     ADFE001,
			Message:  "root must be a doc node with version 1",
			Path:     "",
		})
		if doc == nil {
			return diags
		}
	}
	for i := range doc.Content {
		validateNode(&doc.Content[i], "/content/"+strconv.Itoa(i), &diags)
	}
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Severity != diags[j].Severity {
			return diags[i].Severity == SeverityError
		}
		return diags[i].Path < diags[j].Path
	})
	return diags
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validateNode(n *Node, path string, diags *[]Diagnostic) {
	add := func(sev Severity, code DiagnosticCode, msg string) {
		*diags = append(*diags, Diagnostic{Severity: sev, Code: code, Message: msg, Path: path})
	}

	switch n.Type {
	case TypeUnknown:
		add(SeverityWarning, ADFW001, fmt.Sprintf("unknown node type %q", n.OriginalType()))
		return
	case TypeHeading:
		if n.Attrs == nil || n.Attrs.Level < 1 || n.Attrs.Level > 6 {
			add(SeverityError, ADFE002, "heading level must be between 1 and 6")
		}
	case TypeText:
		if n.Text == "" {
			add(SeverityError, ADFE005, "text node must not be empty")
		}
	case TypeMediaSingle:
		if n.Attrs == nil || n.Attrs.Layout == "" {
			add(SeverityError, ADFE006, "mediaSingle requires a layout")
		}
	}

	validateMarks(n.Marks, path, diags)

	if allowed, ok := allowedChildren[n.Type]; ok {
		for i, c := range n.Content {
			if !containsType(allowed, c.Type) && c.Type != TypeUnknown {
				*diags = append(*diags, Diagnostic{
					Severity: SeverityError,
					Code:     ADFE003,
					Message:  fmt.Sprintf("%s cannot contain %s", n.Type, c.Type),
					Path:     path + "/content/" + strconv.Itoa(i),
				})
			}
		}
	}
	for i := range n.Content {
		validateNode(&n.Content[i], path+"/content/"+strconv.Itoa(i), diags)
	}
}

func validateMarks(marks []Mark, path string, diags *[]Diagnostic) {
	hasCode := false
	for _, m := range marks {
		switch m.Type {
		case MarkCode:
			hasCode = true
		case MarkUnknown:
			*diags = append(*diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     ADFW001,
				Message:  "unknown mark type",
				Path:     path,
			})
		case MarkTextColor:
			if m.Attrs != nil {
				if _, ok := ColorName(m.Attrs.Color); !ok {
					*diags = append(*diags, Diagnostic{
						Severity: SeverityWarning,
						Code:     ADFW002,
						Message:  fmt.Sprintf("text colour %s is outside the named palette", m.Attrs.Color),
						Path:     path,
					})
				}
			}
		}
	}
	if hasCode && len(marks) > 1 {
		*diags = append(*diags, Diagnostic{
			Severity: SeverityError,
			Code:     ADFE004,
			Message:  "code mark cannot be combined with other marks",
			Path:     path,
		})
	}
}

func containsType(types []NodeType, t NodeType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
