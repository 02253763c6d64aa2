package commentgen

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

const unknownType = "unknown"

// returnTypeOf renders the declared return type of fn. Without an
// annotation it falls back to a literal-only inference over the body.
func returnTypeOf(fn *sitter.Node, source []byte) string {
	if annotation := fn.ChildByFieldName("return_type"); annotation != nil {
		if text := stripTypeAnnotation(nodeText(annotation, source)); text != "" {
			return text
		}
	}

	if isGenerator(fn) {
		return unknownType
	}

	inferred := inferBodyType(fn.ChildByFieldName("body"))
	if hasChildKind(fn, "async") {
		return "Promise<" + inferred + ">"
	}
	return inferred
}

func isGenerator(fn *sitter.Node) bool {
	switch fn.Kind() {
	case "generator_function_declaration", "generator_function":
		return true
	}
	return hasChildKind(fn, "*")
}

func inferBodyType(body *sitter.Node) string {
	if body == nil {
		return unknownType
	}
	if body.Kind() != "statement_block" {
		return literalType(body)
	}

	var (
		result   string
		bare     bool
		returned bool
	)
	collectReturns(body, func(ret *sitter.Node) {
		value := ret.NamedChild(0)
		if value == nil || value.Kind() == "comment" {
			bare = true
			return
		}
		kind := literalType(value)
		switch {
		case !returned:
			result = kind
		case result != kind:
			result = unknownType
		}
		returned = true
	})

	switch {
	case !returned:
		return "void"
	case bare:
		return unknownType
	default:
		return result
	}
}

// collectReturns visits return statements that belong to body itself,
// skipping nested functions and classes.
func collectReturns(node *sitter.Node, visit func(*sitter.Node)) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "return_statement":
			visit(child)
			continue
		case "function_declaration", "generator_function_declaration", "function_expression",
			"function", "generator_function", "arrow_function", "method_definition",
			"class_declaration", "class", "abstract_class_declaration":
			continue
		}
		collectReturns(child, visit)
	}
}

func literalType(expr *sitter.Node) string {
	for expr != nil && expr.Kind() == "parenthesized_expression" {
		expr = expr.NamedChild(0)
	}
	if expr == nil {
		return unknownType
	}
	switch expr.Kind() {
	case "string", "template_string":
		return "string"
	case "number":
		return "number"
	case "true", "false":
		return "boolean"
	case "unary_expression":
		op := expr.ChildByFieldName("operator")
		arg := expr.ChildByFieldName("argument")
		if op != nil && (op.Kind() == "-" || op.Kind() == "+") && arg != nil && arg.Kind() == "number" {
			return "number"
		}
	}
	return unknownType
}
