// Package namespace models a Module Namespace: a named, ordered bag of
// attributes, each tagged with the kind of value it holds. The scanner
// selects tool candidates from namespaces by tag and name alone, so no
// runtime reflection over packages is needed.
package namespace

import "fmt"

// Kind tags the value bound to an attribute.
type Kind int

const (
	// KindFunction is a plain function declared at module scope.
	KindFunction Kind = iota
	// KindBuiltin is a native function re-exported by a module.
	KindBuiltin
	// KindClass is a type or constructor.
	KindClass
	// KindModule is a reference to another namespace.
	KindModule
	// KindMethod is a method bound to a receiver.
	KindMethod
	// KindCallableObject is a value implementing a call operator.
	KindCallableObject
	// KindValue is a constant or any other non-callable value.
	KindValue
)

var kindNames = map[Kind]string{
	KindFunction:       "function",
	KindBuiltin:        "builtin",
	KindClass:          "class",
	KindModule:         "module",
	KindMethod:         "method",
	KindCallableObject: "callable",
	KindValue:          "value",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Callable reports whether values of this kind can be invoked.
func (k Kind) Callable() bool {
	switch k {
	case KindFunction, KindBuiltin, KindClass, KindMethod, KindCallableObject:
		return true
	default:
		return false
	}
}

// PlainFunction reports whether the kind is a module-level or native function.
func (k Kind) PlainFunction() bool {
	return k == KindFunction || k == KindBuiltin
}

// Attr is one named attribute of a namespace.
type Attr struct {
	Name  string
	Kind  Kind
	Value any
}

// Namespace is an ordered mapping from attribute name to Attr.
type Namespace struct {
	name  string
	attrs []Attr
	index map[string]int
}

// New returns an empty namespace.
func New(name string) *Namespace {
	return &Namespace{name: name, index: make(map[string]int)}
}

// Name returns the namespace name.
func (n *Namespace) Name() string {
	return n.name
}

// Len returns the number of attributes.
func (n *Namespace) Len() int {
	return len(n.attrs)
}

// Set binds attr to value. Re-binding an existing name replaces the value
// but keeps its original position.
func (n *Namespace) Set(attr string, kind Kind, value any) *Namespace {
	a := Attr{Name: attr, Kind: kind, Value: value}
	if i, ok := n.index[attr]; ok {
		n.attrs[i] = a
		return n
	}
	n.index[attr] = len(n.attrs)
	n.attrs = append(n.attrs, a)
	return n
}

// Func binds a plain function under its own name.
func (n *Namespace) Func(f *Function) *Namespace {
	return n.Set(f.Name, KindFunction, f)
}

// Alias binds a plain function under a name other than its own.
func (n *Namespace) Alias(attr string, f *Function) *Namespace {
	return n.Set(attr, KindFunction, f)
}

// Builtin binds a native function under its own name.
func (n *Namespace) Builtin(f *Function) *Namespace {
	return n.Set(f.Name, KindBuiltin, f)
}

// Class binds a type or constructor.
func (n *Namespace) Class(attr string, v any) *Namespace {
	return n.Set(attr, KindClass, v)
}

// Module binds a reference to another namespace.
func (n *Namespace) Module(attr string, m *Namespace) *Namespace {
	return n.Set(attr, KindModule, m)
}

// Method binds a method value.
func (n *Namespace) Method(attr string, v any) *Namespace {
	return n.Set(attr, KindMethod, v)
}

// Callable binds an object implementing a call operator.
func (n *Namespace) Callable(attr string, v any) *Namespace {
	return n.Set(attr, KindCallableObject, v)
}

// Value binds a constant.
func (n *Namespace) Value(attr string, v any) *Namespace {
	return n.Set(attr, KindValue, v)
}

// Lookup returns the attribute bound to name.
func (n *Namespace) Lookup(name string) (Attr, bool) {
	i, ok := n.index[name]
	if !ok {
		return Attr{}, false
	}
	return n.attrs[i], true
}

// Attrs returns a copy of the attributes in declared order.
func (n *Namespace) Attrs() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}
