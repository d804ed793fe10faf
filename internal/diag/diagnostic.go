package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is one structured failure or status record.
// Op names the operation that produced it, Source is the file the buffer is bound to.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Op       string
	Source   string
	Parts    []any
	Notes    []string
}

// Message renders Parts as a single line.
func (d Diagnostic) Message() string {
	return FormatParts(d.Parts)
}

// FormatParts joins an ordered list of displayable values with single spaces.
// Strings are written as is, everything else goes through fmt's %v.
func FormatParts(parts []any) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch v := p.(type) {
		case string:
			sb.WriteString(v)
		case fmt.Stringer:
			sb.WriteString(v.String())
		case error:
			sb.WriteString(v.Error())
		default:
			fmt.Fprintf(&sb, "%v", v)
		}
	}
	return sb.String()
}
