package fluidtype

// Issue represents a single diagnostic in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "fluidvars"
	Text        string   `json:"Text"`        // "step --font-size-9 not in generated scale ..."
	Severity    string   `json:"Severity"`    // "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "web/styles/type.css"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 3 (1-based, start of the declaration)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue messages
const (
	IssueUnresolvedStep   = "step %s not in generated scale (out of bounds?), not replacing %s: %s"
	IssueInertDirective   = "directive %q outside of a rule is never expanded"
	IssueIgnoredDirective = "directive %q is ignored while replace-inline is enabled"
	IssueUnknownClass     = "class %q is not a generated step utility"
)
