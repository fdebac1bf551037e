package namespace

// Function is a plain function together with its declared signature.
//
// Fn must be a Go func value. Its parameters, after an optional leading
// context.Context, correspond one-to-one with Params. It returns a single
// value, optionally followed by an error.
type Function struct {
	// Name is the function's own identity and becomes the tool name.
	Name   string
	Doc    string
	Params []Param
	Fn     any
}

// Param declares one parameter of a Function.
type Param struct {
	Name     string
	Doc      string
	Default  any
	Optional bool
}

// Define returns a Function.
func Define(name, doc string, fn any, params ...Param) *Function {
	return &Function{Name: name, Doc: doc, Params: params, Fn: fn}
}

// Arg declares a required parameter.
func Arg(name, doc string) Param {
	return Param{Name: name, Doc: doc}
}

// Opt declares an optional parameter with a default. A nil default on a
// pointer parameter means the argument is absent.
func Opt(name, doc string, def any) Param {
	return Param{Name: name, Doc: doc, Default: def, Optional: true}
}
