package commentgen

import (
	"fmt"
	"sort"
	"strings"
)

const (
	languageTypeScript = "typescript"
	languageTSX        = "tsx"
)

// LanguageSpec maps file extensions onto a tree-sitter grammar.
type LanguageSpec struct {
	ID         string
	Extensions []string
}

var builtinLanguageSpecs = map[string]LanguageSpec{
	languageTypeScript: {
		ID:         languageTypeScript,
		Extensions: []string{".ts", ".mts", ".cts"},
	},
	// JavaScript goes through the TSX grammar so JSX in .js files still parses.
	languageTSX: {
		ID:         languageTSX,
		Extensions: []string{".tsx", ".js", ".jsx", ".mjs", ".cjs"},
	},
}

// resolveExtensions validates an extension allow-list and returns the
// grammar to use for each entry.
func resolveExtensions(exts []string) (map[string]string, error) {
	if len(exts) == 0 {
		exts = defaultExtensions
	}

	byExt := make(map[string]string, len(exts))
	for _, raw := range exts {
		ext := canonicalExtension(raw)
		if ext == "" {
			continue
		}
		id, ok := languageForExtension(ext)
		if !ok {
			return nil, fmt.Errorf("unsupported extension: %s (supported: %s)", raw, strings.Join(SupportedExtensions(), ", "))
		}
		byExt[ext] = id
	}
	if len(byExt) == 0 {
		return nil, fmt.Errorf("no extensions configured")
	}
	return byExt, nil
}

func canonicalExtension(raw string) string {
	ext := strings.TrimSpace(raw)
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func languageForExtension(ext string) (string, bool) {
	for _, spec := range allBuiltinLanguageSpecs() {
		for _, candidate := range spec.Extensions {
			if candidate == ext {
				return spec.ID, true
			}
		}
	}
	return "", false
}

// SupportedExtensions lists every extension a grammar exists for.
func SupportedExtensions() []string {
	var out []string
	for _, spec := range allBuiltinLanguageSpecs() {
		out = append(out, spec.Extensions...)
	}
	sort.Strings(out)
	return out
}

func allBuiltinLanguageSpecs() []LanguageSpec {
	specs := make([]LanguageSpec, 0, len(builtinLanguageSpecs))
	for _, spec := range builtinLanguageSpecs {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].ID < specs[j].ID
	})
	return specs
}
