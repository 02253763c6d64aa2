package commentgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileReport summarizes what happened to one file.
type FileReport struct {
	Path         string   `yaml:"path"`
	Added        int      `yaml:"added"`
	Skipped      int      `yaml:"skipped"`
	Undocumented []string `yaml:"undocumented,omitempty"`
	Written      bool     `yaml:"written"`
	SkipReason   string   `yaml:"skip_reason,omitempty"`
}

// RunReport summarizes a run.
type RunReport struct {
	Root    string       `yaml:"root"`
	DryRun  bool         `yaml:"dry_run"`
	Ignored []string     `yaml:"ignored,omitempty"`
	Files   []FileReport `yaml:"files"`
}

// AddedCount is the number of comments inserted (or pending in dry-run).
func (r *RunReport) AddedCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, f := range r.Files {
		total += f.Added
	}
	return total
}

// SkippedCount is the number of units that already had a comment.
func (r *RunReport) SkippedCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, f := range r.Files {
		total += f.Skipped
	}
	return total
}

// ModifiedFiles lists the files that were written.
func (r *RunReport) ModifiedFiles() []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, f := range r.Files {
		if f.Written {
			out = append(out, f.Path)
		}
	}
	return out
}

// WriteReport stores r as YAML at path.
func WriteReport(path string, r *RunReport) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
