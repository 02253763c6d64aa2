package commentgen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name, content string, mode os.FileMode) *SourceFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))

	parser, err := newParserFor(languageTypeScript)
	require.NoError(t, err)
	t.Cleanup(parser.Close)

	file, err := LoadSourceFile(FileRecord{AbsPath: path, RelPath: name, Language: languageTypeScript}, parser)
	require.NoError(t, err)
	t.Cleanup(file.Close)
	return file
}

func TestSourceFileRenderOrdersInsertions(t *testing.T) {
	file := &SourceFile{Source: []byte("abcdef")}

	require.NoError(t, file.Insert(4, "X"))
	require.NoError(t, file.Insert(0, "1"))
	require.NoError(t, file.Insert(4, "Y"))
	require.NoError(t, file.Insert(6, "!"))

	assert.True(t, file.Dirty())
	assert.Equal(t, 4, file.Edits())
	assert.Equal(t, "1abcdXYef!", string(file.Render()))
	assert.Equal(t, "abcdef", string(file.Source), "source must not change before commit")
}

func TestSourceFileInsertOutOfRange(t *testing.T) {
	file := &SourceFile{Record: FileRecord{RelPath: "x.ts"}, Source: []byte("abc")}

	err := file.Insert(4, "boom")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEditOutOfRange))
	assert.False(t, file.Dirty())
}

func TestSourceFileDocumentIndentsContinuationLines(t *testing.T) {
	file := &SourceFile{Source: []byte("{\n  foo();\n}\n")}
	u := Unit{Span: Span{Anchor: 4, Indent: "  "}}

	require.NoError(t, file.Document(u, "/**\n * a\n */"))
	assert.Equal(t, "{\n  /**\n   * a\n   */\n  foo();\n}\n", string(file.Render()))
}

func TestSourceFileDocumentOwnLine(t *testing.T) {
	file := &SourceFile{Source: []byte("  a(); b();\n")}
	u := Unit{Span: Span{Anchor: 7, Indent: "  ", OwnLine: true}}

	require.NoError(t, file.Document(u, "/** b */"))
	assert.Equal(t, "  a(); \n  /** b */\n  b();\n", string(file.Render()))
}

func TestSourceFileCommitPreservesMode(t *testing.T) {
	file := loadFixture(t, "a.ts", "function a() {}\n", 0o600)
	require.NoError(t, file.Insert(0, "// hi\n"))

	written, err := file.Commit()
	require.NoError(t, err)
	assert.True(t, written)
	assert.False(t, file.Dirty())

	data, err := os.ReadFile(file.Record.AbsPath)
	require.NoError(t, err)
	assert.Equal(t, "// hi\nfunction a() {}\n", string(data))

	info, err := os.Stat(file.Record.AbsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(file.Record.AbsPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSourceFileCommitCleanIsNoop(t *testing.T) {
	file := loadFixture(t, "a.ts", "function a() {}\n", 0o644)
	before, err := os.Stat(file.Record.AbsPath)
	require.NoError(t, err)

	written, err := file.Commit()
	require.NoError(t, err)
	assert.False(t, written)

	after, err := os.Stat(file.Record.AbsPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestSourceFileDiff(t *testing.T) {
	file := loadFixture(t, "a.ts", "function a() {}\n", 0o644)

	diff, err := file.Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)

	require.NoError(t, file.Insert(0, "/** doc */\n"))
	diff, err = file.Diff()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(diff, "--- a/a.ts\n+++ b/a.ts\n"), diff)
	assert.Contains(t, diff, "+/** doc */\n")
	assert.Contains(t, diff, " function a() {}\n")
}

func TestSourceFileSyntaxErrors(t *testing.T) {
	broken := loadFixture(t, "broken.ts", "function broken( {\n", 0o644)
	assert.True(t, broken.HasSyntaxErrors())

	ok := loadFixture(t, "ok.ts", "function ok() {}\n", 0o644)
	assert.False(t, ok.HasSyntaxErrors())
	assert.Equal(t, "program", ok.Root().Kind())
}
