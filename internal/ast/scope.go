package ast

import "bennypowers.dev/sls/internal/symbols"

// Scope holds the declarations visible from the blocks enclosing an offset
type Scope struct {
	Variables []symbols.Variable
	Mixins    []symbols.Mixin
}

// Resolve descends from root toward offset and collects the variables and
// mixins declared directly in each enclosing block, plus the parameters of
// any enclosing mixin or function. Results run from the outermost scope to
// the innermost. The stylesheet's own top-level declarations are not
// collected, so a top-level offset (or one outside the root) yields an
// empty scope.
func Resolve(root Node, offset int) Scope {
	scope := Scope{
		Variables: []symbols.Variable{},
		Mixins:    []symbols.Mixin{},
	}
	if !inRoot(root, offset) {
		return scope
	}

	for node := childAt(root, offset); node != nil; node = childAt(node, offset) {
		switch node.Kind() {
		case KindBlock:
			for _, child := range node.Children() {
				switch child.Kind() {
				case KindVariable:
					scope.Variables = append(scope.Variables, ToVariable(child))
				case KindMixin:
					scope.Mixins = append(scope.Mixins, ToMixin(child))
				}
			}
		case KindMixin, KindFunction:
			scope.Variables = append(scope.Variables, Parameters(node)...)
		}
	}
	return scope
}

// SpanOf returns the node's byte range
func SpanOf(n Node) symbols.Span {
	return symbols.Span{Start: n.Start(), End: n.End()}
}

// ToVariable converts a variable or parameter node
func ToVariable(n Node) symbols.Variable {
	return symbols.Variable{
		Name:  n.Name(),
		Value: n.Value(),
		Span:  SpanOf(n),
	}
}

// ToMixin converts a mixin node, including its parameters
func ToMixin(n Node) symbols.Mixin {
	return symbols.Mixin{
		Name:       n.Name(),
		Parameters: Parameters(n),
		Span:       SpanOf(n),
	}
}

// ToFunction converts a function node, including its parameters
func ToFunction(n Node) symbols.Function {
	return symbols.Function{
		Name:       n.Name(),
		Parameters: Parameters(n),
		Span:       SpanOf(n),
	}
}

// Parameters returns the parameter children of a mixin or function node as
// variables owned by that declaration
func Parameters(n Node) []symbols.Variable {
	params := []symbols.Variable{}
	for _, child := range n.Children() {
		if child.Kind() != KindParameter {
			continue
		}
		v := ToVariable(child)
		v.Mixin = n.Name()
		params = append(params, v)
	}
	return params
}

// Visible reports whether a declaration starting at decl can be seen from
// offset. A declaration belongs to the innermost block enclosing it, or to
// the stylesheet when no block does, and is visible anywhere inside that
// owner.
func Visible(root Node, decl, offset int) bool {
	if !inRoot(root, decl) || !inRoot(root, offset) {
		return false
	}
	var owner Node
	for node := childAt(root, decl); node != nil; node = childAt(node, decl) {
		if node.Kind() == KindBlock && node.Start() < decl {
			owner = node
		}
	}
	if owner == nil {
		return true
	}
	return offset >= owner.Start() && offset < owner.End()
}
