package diag

func New(sev Severity, code Code, op, source string, parts ...any) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Op:       op,
		Source:   source,
		Parts:    parts,
		Notes:    nil,
	}
}

func NewError(code Code, op, source string, parts ...any) Diagnostic {
	return New(SevError, code, op, source, parts...)
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, msg)
	return d
}
