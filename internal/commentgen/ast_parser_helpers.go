package commentgen

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	typeScriptSyntaxLanguage = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	typeScriptTSXLanguage    = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
)

func newParserFor(languageID string) (*sitter.Parser, error) {
	switch languageID {
	case languageTypeScript:
		return newParserForLanguage(typeScriptSyntaxLanguage)
	case languageTSX:
		return newParserForLanguage(typeScriptTSXLanguage)
	default:
		return nil, fmt.Errorf("no grammar for language: %s", languageID)
	}
}

func newParserForLanguage(language *sitter.Language) (*sitter.Parser, error) {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, err
	}
	return parser, nil
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(source)
}

func walkTreePreOrder(root *sitter.Node, visit func(*sitter.Node)) {
	if root == nil || visit == nil {
		return
	}

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(node)

		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			child := node.Child(uint(i))
			if child != nil {
				stack = append(stack, child)
			}
		}
	}
}

// hasChildKind reports whether any direct child (named or not) has the kind.
func hasChildKind(node *sitter.Node, kind string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

// lineIndent returns the leading blanks of the line containing offset.
func lineIndent(source []byte, offset uint) string {
	if int(offset) > len(source) {
		offset = uint(len(source))
	}
	start := offset
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	end := start
	for end < offset && (source[end] == ' ' || source[end] == '\t') {
		end++
	}
	return string(source[start:end])
}

func stripTypeAnnotation(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), ":"))
}
