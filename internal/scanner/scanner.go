// Package scanner enumerates tool candidates from module namespaces.
package scanner

import (
	"fmt"
	"iter"
	"strings"

	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

// Candidate is a public plain function found in a namespace.
type Candidate struct {
	Module string
	Attr   string
	Func   *namespace.Function
}

// Eligible reports whether an attribute may become a tool candidate: its
// name must not start with an underscore and it must hold a plain function.
func Eligible(a namespace.Attr) bool {
	if strings.HasPrefix(a.Name, "_") {
		return false
	}
	return a.Kind.Callable() && a.Kind.PlainFunction()
}

// Scan yields candidates from each namespace in the order given, and within
// a namespace in declared order. The sequence is lazy and may be ranged over
// any number of times with the same result. Candidates are never invoked.
//
// A nil namespace, or a function attribute that does not hold a
// *namespace.Function, is a misconfigured server and panics.
func Scan(namespaces ...*namespace.Namespace) iter.Seq[Candidate] {
	for i, ns := range namespaces {
		if ns == nil {
			panic(fmt.Sprintf("scanner: namespace %d is nil", i))
		}
	}

	return func(yield func(Candidate) bool) {
		for _, ns := range namespaces {
			for _, a := range ns.Attrs() {
				if !Eligible(a) {
					continue
				}
				fn, ok := a.Value.(*namespace.Function)
				if !ok || fn == nil {
					panic(fmt.Sprintf("scanner: %s.%s is tagged %s but holds %T", ns.Name(), a.Name, a.Kind, a.Value))
				}
				if !yield(Candidate{Module: ns.Name(), Attr: a.Name, Func: fn}) {
					return
				}
			}
		}
	}
}

// Collect returns every candidate Scan would yield.
func Collect(namespaces ...*namespace.Namespace) []Candidate {
	var out []Candidate
	for c := range Scan(namespaces...) {
		out = append(out, c)
	}
	return out
}

// CountByModule returns how many candidates each namespace contributes.
func CountByModule(ns *namespace.Namespace) int {
	n := 0
	for range Scan(ns) {
		n++
	}
	return n
}
