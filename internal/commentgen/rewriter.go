package commentgen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrEditOutOfRange is returned for an insertion past the end of the source.
var ErrEditOutOfRange = errors.New("edit outside source")

type insertion struct {
	offset uint
	text   string
}

// SourceFile is a loaded file together with its syntax tree and the
// insertions recorded against it. It is dirty iff at least one insertion
// is pending.
type SourceFile struct {
	Record FileRecord
	Source []byte

	mode  fs.FileMode
	tree  *sitter.Tree
	edits []insertion
}

// LoadSourceFile reads rec from disk and parses it with parser.
func LoadSourceFile(rec FileRecord, parser *sitter.Parser) (*SourceFile, error) {
	info, err := os.Stat(rec.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", rec.RelPath, err)
	}
	source, err := os.ReadFile(rec.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rec.RelPath, err)
	}

	f := &SourceFile{
		Record: rec,
		Source: source,
		mode:   info.Mode().Perm(),
	}
	if parser != nil {
		f.tree = parser.Parse(source, nil)
		if f.tree == nil {
			return nil, fmt.Errorf("parse %s: parser returned no tree", rec.RelPath)
		}
	}
	return f, nil
}

// Root returns the syntax tree root, or nil when the file was not parsed.
func (f *SourceFile) Root() *sitter.Node {
	if f.tree == nil {
		return nil
	}
	return f.tree.RootNode()
}

// HasSyntaxErrors reports whether the parser had to recover from errors.
func (f *SourceFile) HasSyntaxErrors() bool {
	root := f.Root()
	return root != nil && root.HasError()
}

// Insert records text to be spliced in at offset.
func (f *SourceFile) Insert(offset uint, text string) error {
	if int(offset) > len(f.Source) {
		return fmt.Errorf("%s: offset %d: %w", f.Record.RelPath, offset, ErrEditOutOfRange)
	}
	f.edits = append(f.edits, insertion{offset: offset, text: text})
	return nil
}

// Document splices comment above u. Continuation lines of the comment and
// the text after it take the anchor line's indentation. An OwnLine span
// gets a line break in front of the comment.
func (f *SourceFile) Document(u Unit, comment string) error {
	indent := u.Span.Indent
	text := strings.ReplaceAll(comment, "\n", "\n"+indent) + "\n" + indent
	if u.Span.OwnLine {
		text = "\n" + indent + text
	}
	return f.Insert(u.Span.Anchor, text)
}

// Dirty reports whether any insertion is pending.
func (f *SourceFile) Dirty() bool {
	return len(f.edits) > 0
}

// Edits returns the number of pending insertions.
func (f *SourceFile) Edits() int {
	return len(f.edits)
}

// Render returns the source with all pending insertions applied. Insertions
// at the same offset keep their recording order.
func (f *SourceFile) Render() []byte {
	if !f.Dirty() {
		return f.Source
	}

	edits := append([]insertion(nil), f.edits...)
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].offset < edits[j].offset
	})

	size := len(f.Source)
	for _, e := range edits {
		size += len(e.text)
	}
	out := make([]byte, 0, size)
	var last uint
	for _, e := range edits {
		out = append(out, f.Source[last:e.offset]...)
		out = append(out, e.text...)
		last = e.offset
	}
	out = append(out, f.Source[last:]...)
	return out
}

// Diff renders the pending change as a unified diff.
func (f *SourceFile) Diff() (string, error) {
	if !f.Dirty() {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(f.Source)),
		B:        difflib.SplitLines(string(f.Render())),
		FromFile: "a/" + f.Record.RelPath,
		ToFile:   "b/" + f.Record.RelPath,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// Commit writes the rendered source back to disk when dirty. The write goes
// through a temporary file next to the link target followed by a rename,
// so symlinked files are updated in place and stay links.
func (f *SourceFile) Commit() (bool, error) {
	if !f.Dirty() {
		return false, nil
	}

	data := f.Render()
	mode := f.mode
	if mode == 0 {
		mode = 0644
	}

	path, err := filepath.EvalSymlinks(f.Record.AbsPath)
	if err != nil {
		return false, fmt.Errorf("resolve %s: %w", f.Record.RelPath, err)
	}
	tmpPath := path + ".commentgen.tmp"
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return false, fmt.Errorf("write %s: %w", f.Record.RelPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return false, fmt.Errorf("chmod %s: %w", f.Record.RelPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return false, fmt.Errorf("replace %s: %w", f.Record.RelPath, err)
	}

	f.Source = data
	f.edits = nil
	return true, nil
}

// Close releases the syntax tree.
func (f *SourceFile) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
	f.edits = nil
}
