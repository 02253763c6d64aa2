package commentgen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

const skipReasonSyntax = "syntax errors"

// Run resolves opts.Path, enumerates and filters candidate files, and
// documents every function-like unit that has no leading comment. Files
// are written only when at least one comment was added and neither DryRun
// nor Check is set.
func Run(ctx context.Context, opts Options) (*RunReport, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	placement, err := ParseArrowPlacement(string(opts.ArrowPlacement))
	if err != nil {
		return nil, err
	}
	verbs := opts.Verbs
	if verbs == nil {
		verbs = NewVerbSource(opts.Seed)
	}

	path := opts.Path
	if path == "" {
		path = "./"
	}
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	idx, err := BuildFileIndex(ctx, root, opts.Extensions)
	if err != nil {
		return nil, err
	}

	ignore := LoadIgnoreMatcher(idx.Root, opts.IgnoreFileName, opts.Exclude)
	slog.Debug("indexed files", "root", idx.Root, "files", len(idx.Files), "ignore_patterns", ignore.Len())

	dryRun := opts.DryRun || opts.Check
	report := &RunReport{Root: idx.Root, DryRun: dryRun}

	kept := make([]FileRecord, 0, len(idx.Files))
	for _, rec := range idx.Files {
		if ignore.Ignored(rec.RelPath) {
			report.Ignored = append(report.Ignored, rec.RelPath)
			reporter.FileIgnored(rec.RelPath)
			continue
		}
		kept = append(kept, rec)
	}
	reporter.FilesFound(len(kept))

	pc, err := loadParseContext(ctx, kept)
	if err != nil {
		return report, err
	}
	defer pc.Close()

	p := fileProcessor{
		placement: placement,
		verbs:     verbs,
		dryRun:    dryRun,
		showDiff:  opts.ShowDiff,
		reporter:  reporter,
	}
	for _, file := range pc.files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		fr, err := p.process(file)
		report.Files = append(report.Files, fr)
		if err != nil {
			return report, err
		}
	}

	reporter.Summary(report)
	return report, nil
}

// parseContext holds every file of a run, read and parsed up front.
type parseContext struct {
	parsers map[string]*sitter.Parser
	files   []*SourceFile
}

func loadParseContext(ctx context.Context, records []FileRecord) (*parseContext, error) {
	pc := &parseContext{parsers: make(map[string]*sitter.Parser)}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			pc.Close()
			return nil, err
		}
		parser, err := pc.parserFor(rec.Language)
		if err != nil {
			pc.Close()
			return nil, err
		}
		file, err := LoadSourceFile(rec, parser)
		if err != nil {
			pc.Close()
			return nil, err
		}
		pc.files = append(pc.files, file)
	}
	return pc, nil
}

func (pc *parseContext) parserFor(languageID string) (*sitter.Parser, error) {
	if parser, ok := pc.parsers[languageID]; ok {
		return parser, nil
	}
	parser, err := newParserFor(languageID)
	if err != nil {
		return nil, err
	}
	pc.parsers[languageID] = parser
	return parser, nil
}

func (pc *parseContext) Close() {
	for _, file := range pc.files {
		file.Close()
	}
	for _, parser := range pc.parsers {
		parser.Close()
	}
	pc.files = nil
	pc.parsers = nil
}

type fileProcessor struct {
	placement ArrowPlacement
	verbs     VerbSource
	dryRun    bool
	showDiff  bool
	reporter  Reporter
}

func (p fileProcessor) process(file *SourceFile) (FileReport, error) {
	rel := file.Record.RelPath
	fr := FileReport{Path: rel}
	p.reporter.FileStarted(rel)

	if file.HasSyntaxErrors() {
		slog.Warn("skipping file with syntax errors", "path", rel)
		fr.SkipReason = skipReasonSyntax
		p.reporter.FileSkipped(rel, skipReasonSyntax)
		return fr, nil
	}

	units := ScanUnits(file.Root(), file.Source, p.placement)
	if len(units) == 0 {
		p.reporter.NoFunctions(rel)
		return fr, nil
	}

	for _, u := range units {
		if u.HasLeadingComment {
			fr.Skipped++
			p.reporter.AlreadyCommented(rel, u)
			continue
		}
		comment := Synthesize(u.Name, u.Params, u.ReturnType, p.verbs)
		if err := file.Document(u, comment); err != nil {
			return fr, fmt.Errorf("document %s: %w", u.Name, err)
		}
		fr.Added++
		fr.Undocumented = append(fr.Undocumented, u.Name)
		p.reporter.CommentAdded(rel, u)
	}

	if !file.Dirty() {
		return fr, nil
	}

	if p.showDiff {
		diff, err := file.Diff()
		if err != nil {
			slog.Warn("render diff", "path", rel, "error", err)
		} else {
			p.reporter.Diff(rel, diff)
		}
	}

	if p.dryRun {
		p.reporter.FilePending(rel, file.Edits())
		return fr, nil
	}

	written, err := file.Commit()
	if err != nil {
		return fr, fmt.Errorf("save: %w", err)
	}
	fr.Written = written
	slog.Debug("file saved", "path", rel, "comments", fr.Added)
	p.reporter.FileSaved(rel)
	return fr, nil
}
