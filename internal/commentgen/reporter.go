package commentgen

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Reporter receives progress events from a run.
type Reporter interface {
	FilesFound(count int)
	FileIgnored(relPath string)
	FileStarted(relPath string)
	FileSkipped(relPath, reason string)
	NoFunctions(relPath string)
	CommentAdded(relPath string, u Unit)
	AlreadyCommented(relPath string, u Unit)
	FileSaved(relPath string)
	FilePending(relPath string, edits int)
	Diff(relPath, diff string)
	Summary(report *RunReport)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) FilesFound(int)                {}
func (NopReporter) FileIgnored(string)            {}
func (NopReporter) FileStarted(string)            {}
func (NopReporter) FileSkipped(string, string)    {}
func (NopReporter) NoFunctions(string)            {}
func (NopReporter) CommentAdded(string, Unit)     {}
func (NopReporter) AlreadyCommented(string, Unit) {}
func (NopReporter) FileSaved(string)              {}
func (NopReporter) FilePending(string, int)       {}
func (NopReporter) Diff(string, string)           {}
func (NopReporter) Summary(*RunReport)            {}

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

// ConsoleReporter prints human-readable progress lines.
type ConsoleReporter struct {
	out     io.Writer
	verbose bool
}

// NewConsoleReporter writes to out. Ignored files are only listed when
// verbose is set.
func NewConsoleReporter(out io.Writer, verbose bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, verbose: verbose}
}

func (r *ConsoleReporter) FilesFound(count int) {
	r.printf("📄 Found %d file(s)\n", count)
}

func (r *ConsoleReporter) FileIgnored(relPath string) {
	if !r.verbose {
		return
	}
	r.printf("%s\n", dimColor.Sprintf("  ignored: %s", relPath))
}

func (r *ConsoleReporter) FileStarted(relPath string) {
	r.printf("\n🔍 File: %s\n", titleColor.Sprint(relPath))
}

func (r *ConsoleReporter) FileSkipped(relPath, reason string) {
	r.printf("  %s\n", errorColor.Sprintf("✖ Skipped %s: %s", relPath, reason))
}

func (r *ConsoleReporter) NoFunctions(string) {
	r.printf("  ⛔ No functions found.\n")
}

func (r *ConsoleReporter) CommentAdded(_ string, u Unit) {
	r.printf("  📝 Comment added for: %s%s\n", successColor.Sprint(u.Name), r.location(u))
}

func (r *ConsoleReporter) AlreadyCommented(_ string, u Unit) {
	r.printf("  ⚠️  Skipped (already commented): %s%s\n", warnColor.Sprint(u.Name), r.location(u))
}

// location describes where u sits; only shown in verbose mode.
func (r *ConsoleReporter) location(u Unit) string {
	if !r.verbose {
		return ""
	}
	return dimColor.Sprintf(" (%s, line %d)", u.Kind, u.Span.Line+1)
}

func (r *ConsoleReporter) FileSaved(relPath string) {
	r.printf("💾 Changes saved to %s\n", relPath)
}

func (r *ConsoleReporter) FilePending(relPath string, edits int) {
	r.printf("%s\n", warnColor.Sprintf("✎ %d comment(s) pending for %s (not written)", edits, relPath))
}

func (r *ConsoleReporter) Diff(_ string, diff string) {
	r.printf("%s", diff)
}

func (r *ConsoleReporter) Summary(report *RunReport) {
	if report == nil {
		return
	}
	r.printf("\n%s", renderSummaryTable(report))
}

func (r *ConsoleReporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func renderSummaryTable(report *RunReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Added", "Skipped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, file := range report.Files {
		path := file.Path
		if file.SkipReason != "" {
			path += " (" + file.SkipReason + ")"
		}
		table.Append([]string{path, fmt.Sprintf("%d", file.Added), fmt.Sprintf("%d", file.Skipped)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Files)),
		fmt.Sprintf("%d", report.AddedCount()),
		fmt.Sprintf("%d", report.SkippedCount()),
	})
	table.Render()

	return buf.String()
}
