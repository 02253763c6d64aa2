package commentgen

import (
	"errors"
	"fmt"
)

// AnonymousName is used for units without a declared identifier.
const AnonymousName = "(anonymous)"

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// UnitKind distinguishes the two declaration shapes the scanner collects.
type UnitKind int

const (
	UnitFunction UnitKind = iota
	UnitArrowBinding
)

func (k UnitKind) String() string {
	switch k {
	case UnitFunction:
		return "function"
	case UnitArrowBinding:
		return "arrow"
	default:
		return "unknown"
	}
}

// Span locates the insertion point for a unit's comment.
type Span struct {
	Anchor  uint   // byte offset the comment is inserted at
	Indent  string // leading whitespace of the anchor line
	Line    uint   // zero-based row of the anchor
	OwnLine bool   // anchor follows other code on its line; the comment must open a new one
}

// Unit is a function-like declaration that may receive a doc comment.
type Unit struct {
	Kind              UnitKind
	Name              string
	Params            []string
	ReturnType        string
	HasLeadingComment bool
	Span              Span
}

// ArrowPlacement controls where comments for arrow bindings are spliced.
type ArrowPlacement string

const (
	// PlacementStatement puts the comment above the enclosing declaration.
	PlacementStatement ArrowPlacement = "statement"
	// PlacementInline puts the comment directly before the arrow expression.
	PlacementInline ArrowPlacement = "inline"
)

// ParseArrowPlacement validates a placement name. Empty selects the default.
func ParseArrowPlacement(raw string) (ArrowPlacement, error) {
	switch ArrowPlacement(raw) {
	case "", PlacementStatement:
		return PlacementStatement, nil
	case PlacementInline:
		return PlacementInline, nil
	default:
		return "", fmt.Errorf("unknown arrow placement: %s", raw)
	}
}

// Options configures a generation run.
type Options struct {
	Path           string
	Extensions     []string
	IgnoreFileName string
	Exclude        []string
	ArrowPlacement ArrowPlacement
	DryRun         bool
	Check          bool
	ShowDiff       bool
	Seed           uint64 // 0 draws a random seed
	Reporter       Reporter
	Verbs          VerbSource // overrides Seed when set
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Path:           "./",
		Extensions:     append([]string(nil), defaultExtensions...),
		IgnoreFileName: DefaultIgnoreFileName,
		ArrowPlacement: PlacementStatement,
	}
}

var defaultExtensions = []string{".ts", ".js"}
