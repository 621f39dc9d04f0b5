package analysis

import (
	"bennypowers.dev/sls/internal/ast"
	"bennypowers.dev/sls/internal/symbols"
)

// LookupVariable returns the declaration of the named variable visible at
// the requested offset. The scoped pass is searched first, innermost last
// wins, then the document's own declarations whose enclosing block holds
// the offset. Without a tree every declaration counts.
func (r *Result) LookupVariable(name string) (symbols.Variable, bool) {
	if r.root == nil {
		return r.Symbols.LookupVariable(name)
	}
	whole := r.Symbols.Variables[:len(r.Symbols.Variables)-len(r.Scope.Variables)]
	return lookup(r, name, r.Scope.Variables, whole, func(v symbols.Variable) (string, int) {
		return v.Name, v.Span.Start
	})
}

// LookupMixin returns the declaration of the named mixin visible at the
// requested offset, searched like LookupVariable
func (r *Result) LookupMixin(name string) (symbols.Mixin, bool) {
	if r.root == nil {
		return r.Symbols.LookupMixin(name)
	}
	whole := r.Symbols.Mixins[:len(r.Symbols.Mixins)-len(r.Scope.Mixins)]
	return lookup(r, name, r.Scope.Mixins, whole, func(m symbols.Mixin) (string, int) {
		return m.Name, m.Span.Start
	})
}

// LookupFunction returns the declaration of the named function visible at
// the requested offset
func (r *Result) LookupFunction(name string) (symbols.Function, bool) {
	if r.root == nil {
		return r.Symbols.LookupFunction(name)
	}
	return lookup(r, name, nil, r.Symbols.Functions, func(f symbols.Function) (string, int) {
		return f.Name, f.Span.Start
	})
}

func lookup[T any](r *Result, name string, scoped, whole []T, key func(T) (string, int)) (T, bool) {
	for i := len(scoped) - 1; i >= 0; i-- {
		if n, _ := key(scoped[i]); n == name {
			return scoped[i], true
		}
	}
	for i := len(whole) - 1; i >= 0; i-- {
		if n, start := key(whole[i]); n == name && ast.Visible(r.root, start, r.offset) {
			return whole[i], true
		}
	}
	var zero T
	return zero, false
}

// VisibleVariables returns the variables visible at the requested offset in
// declaration order, so later entries shadow earlier ones
func (r *Result) VisibleVariables() []symbols.Variable {
	if r.root == nil {
		return r.Symbols.Variables
	}
	whole := r.Symbols.Variables[:len(r.Symbols.Variables)-len(r.Scope.Variables)]
	return append(visible(r, whole, func(v symbols.Variable) int { return v.Span.Start }), r.Scope.Variables...)
}

// VisibleMixins returns the mixins visible at the requested offset in
// declaration order
func (r *Result) VisibleMixins() []symbols.Mixin {
	if r.root == nil {
		return r.Symbols.Mixins
	}
	whole := r.Symbols.Mixins[:len(r.Symbols.Mixins)-len(r.Scope.Mixins)]
	return append(visible(r, whole, func(m symbols.Mixin) int { return m.Span.Start }), r.Scope.Mixins...)
}

func visible[T any](r *Result, items []T, start func(T) int) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if ast.Visible(r.root, start(item), r.offset) {
			out = append(out, item)
		}
	}
	return out
}
