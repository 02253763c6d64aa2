package commentgen

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ScanUnits collects the commentable units of one parsed file: top-level
// function declarations first (exported or not), then every variable
// declarator anywhere in the file whose value is an arrow function.
func ScanUnits(root *sitter.Node, source []byte, placement ArrowPlacement) []Unit {
	if root == nil {
		return nil
	}

	var units []Unit
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		fn := topLevelFunction(stmt)
		if fn == nil {
			continue
		}
		units = append(units, functionUnit(fn, stmt, source))
	}

	walkTreePreOrder(root, func(node *sitter.Node) {
		if node.Kind() != "variable_declarator" {
			return
		}
		value := node.ChildByFieldName("value")
		if value == nil || value.Kind() != "arrow_function" {
			return
		}
		units = append(units, arrowUnit(node, value, source, placement))
	})

	return units
}

// topLevelFunction returns the function node declared by a program-level
// statement, or nil.
func topLevelFunction(stmt *sitter.Node) *sitter.Node {
	if stmt == nil {
		return nil
	}
	switch stmt.Kind() {
	case "function_declaration", "generator_function_declaration":
		return stmt
	case "export_statement":
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			switch decl.Kind() {
			case "function_declaration", "generator_function_declaration":
				return decl
			}
			return nil
		}
		// export default function () {}
		if value := stmt.ChildByFieldName("value"); value != nil {
			switch value.Kind() {
			case "function_expression", "function", "generator_function":
				return value
			}
		}
	}
	return nil
}

func functionUnit(fn, anchor *sitter.Node, source []byte) Unit {
	name := nodeText(fn.ChildByFieldName("name"), source)
	if name == "" {
		name = AnonymousName
	}
	return Unit{
		Kind:              UnitFunction,
		Name:              name,
		Params:            parameterNames(fn, source),
		ReturnType:        returnTypeOf(fn, source),
		HasLeadingComment: hasLeadingComment(anchor) || (anchor != fn && hasLeadingComment(fn)),
		Span:              spanAt(anchor, source, true),
	}
}

func arrowUnit(declarator, arrow *sitter.Node, source []byte, placement ArrowPlacement) Unit {
	name := nodeText(declarator.ChildByFieldName("name"), source)
	if name == "" {
		name = AnonymousName
	}

	stmt := declarationStatement(declarator)
	documented := hasLeadingComment(arrow) || hasLeadingComment(declarator)
	if stmt != nil && hasLeadingComment(stmt) {
		documented = true
	}

	anchor := arrow
	if placement != PlacementInline && stmt != nil && inStatementList(stmt) {
		anchor = stmt
	}

	return Unit{
		Kind:              UnitArrowBinding,
		Name:              name,
		Params:            parameterNames(arrow, source),
		ReturnType:        returnTypeOf(arrow, source),
		HasLeadingComment: documented,
		Span:              spanAt(anchor, source, anchor != arrow),
	}
}

// declarationStatement returns the statement that owns a declarator,
// lifted to its export statement when exported.
func declarationStatement(declarator *sitter.Node) *sitter.Node {
	decl := declarator.Parent()
	if decl == nil {
		return nil
	}
	switch decl.Kind() {
	case "lexical_declaration", "variable_declaration":
	default:
		return nil
	}
	if parent := decl.Parent(); parent != nil && parent.Kind() == "export_statement" {
		return parent
	}
	return decl
}

func inStatementList(stmt *sitter.Node) bool {
	parent := stmt.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "program", "statement_block", "switch_case", "switch_default", "class_static_block":
		return true
	}
	return false
}

// hasLeadingComment reports whether a comment sits directly before node.
// A comment that trails a previous named sibling on the same line belongs
// to that sibling.
func hasLeadingComment(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	prev := node.PrevSibling()
	if prev == nil || prev.Kind() != "comment" {
		return false
	}
	before := prev.PrevSibling()
	if before != nil && before.IsNamed() && before.Kind() != "comment" &&
		before.EndPosition().Row == prev.StartPosition().Row {
		return false
	}
	return true
}

// spanAt locates the insertion point in front of anchor. Statement anchors
// that share a line with earlier code are flagged so the comment is not
// read back as that code's trailing comment.
func spanAt(anchor *sitter.Node, source []byte, statement bool) Span {
	offset := anchor.StartByte()
	indent := lineIndent(source, offset)
	lineStart := offset
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}
	return Span{
		Anchor:  offset,
		Indent:  indent,
		Line:    anchor.StartPosition().Row,
		OwnLine: statement && lineStart+uint(len(indent)) < offset,
	}
}

// parameterNames lists declared parameter names in order.
func parameterNames(fn *sitter.Node, source []byte) []string {
	if single := fn.ChildByFieldName("parameter"); single != nil {
		return []string{bindingName(single, source)}
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	names := make([]string, 0, params.NamedChildCount())
	for i := uint(0); i < params.NamedChildCount(); i++ {
		param := params.NamedChild(i)
		if param == nil || param.Kind() == "comment" {
			continue
		}
		if name := bindingName(param, source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func bindingName(node *sitter.Node, source []byte) string {
	switch node.Kind() {
	case "required_parameter", "optional_parameter":
		if pattern := node.ChildByFieldName("pattern"); pattern != nil {
			return bindingName(pattern, source)
		}
	case "rest_pattern":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child != nil && child.Kind() != "type_annotation" {
				return bindingName(child, source)
			}
		}
	case "assignment_pattern":
		if left := node.ChildByFieldName("left"); left != nil {
			return bindingName(left, source)
		}
	}
	// Destructuring patterns may span lines.
	return strings.Join(strings.Fields(nodeText(node, source)), " ")
}
