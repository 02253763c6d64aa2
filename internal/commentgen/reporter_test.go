package commentgen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestConsoleReporterLines(t *testing.T) {
	var out bytes.Buffer
	r := NewConsoleReporter(&out, false)

	r.FilesFound(2)
	r.FileIgnored("vendor/x.ts")
	r.FileStarted("src/a.ts")
	r.CommentAdded("src/a.ts", Unit{Name: "greet"})
	r.AlreadyCommented("src/a.ts", Unit{Name: "old"})
	r.FileSaved("src/a.ts")
	r.FileStarted("src/b.ts")
	r.NoFunctions("src/b.ts")

	got := out.String()
	assert.Contains(t, got, "📄 Found 2 file(s)\n")
	assert.Contains(t, got, "\n🔍 File: src/a.ts\n")
	assert.Contains(t, got, "  📝 Comment added for: greet\n")
	assert.Contains(t, got, "  ⚠️  Skipped (already commented): old\n")
	assert.Contains(t, got, "💾 Changes saved to src/a.ts\n")
	assert.Contains(t, got, "  ⛔ No functions found.\n")
	assert.NotContains(t, got, "vendor/x.ts")
}

func TestConsoleReporterVerboseDetails(t *testing.T) {
	var out bytes.Buffer
	r := NewConsoleReporter(&out, true)

	r.FileIgnored("vendor/x.ts")
	r.FileSkipped("bad.ts", skipReasonSyntax)
	r.FilePending("a.ts", 3)
	r.CommentAdded("a.ts", Unit{Name: "greet", Kind: UnitFunction, Span: Span{Line: 4}})
	r.AlreadyCommented("a.ts", Unit{Name: "add", Kind: UnitArrowBinding, Span: Span{Line: 0}})

	got := out.String()
	assert.Contains(t, got, "Comment added for: greet (function, line 5)\n")
	assert.Contains(t, got, "Skipped (already commented): add (arrow, line 1)\n")
	assert.Contains(t, got, "ignored: vendor/x.ts")
	assert.Contains(t, got, "Skipped bad.ts: syntax errors")
	assert.Contains(t, got, "3 comment(s) pending for a.ts")
}

func TestConsoleReporterSummaryTable(t *testing.T) {
	var out bytes.Buffer
	r := NewConsoleReporter(&out, false)

	r.Summary(&RunReport{Files: []FileReport{
		{Path: "src/a.ts", Added: 2, Skipped: 1, Written: true},
		{Path: "src/bad.ts", SkipReason: skipReasonSyntax},
	}})

	got := out.String()
	assert.Contains(t, got, "src/a.ts")
	assert.Contains(t, got, "src/bad.ts (syntax errors)")
	assert.Contains(t, got, "ADDED")
	assert.Contains(t, got, "TOTAL FILES 2")
}

func TestRunReportCountsAndFile(t *testing.T) {
	report := &RunReport{
		Root:    "/tmp/project",
		Ignored: []string{"dist/x.js"},
		Files: []FileReport{
			{Path: "a.ts", Added: 2, Skipped: 1, Written: true, Undocumented: []string{"f", "g"}},
			{Path: "b.ts", Skipped: 3},
		},
	}
	assert.Equal(t, 2, report.AddedCount())
	assert.Equal(t, 4, report.SkippedCount())
	assert.Equal(t, []string{"a.ts"}, report.ModifiedFiles())

	var nilReport *RunReport
	assert.Zero(t, nilReport.AddedCount())
	assert.Nil(t, nilReport.ModifiedFiles())

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "/tmp/project", decoded["root"])
	assert.Equal(t, false, decoded["dry_run"])
	files, ok := decoded["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 2)
	first := files[0].(map[string]any)
	assert.Equal(t, "a.ts", first["path"])
	assert.Equal(t, 2, first["added"])
	assert.Equal(t, []any{"f", "g"}, first["undocumented"])
	_, hasReason := first["skip_reason"]
	assert.False(t, hasReason)
}
