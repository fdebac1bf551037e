// Package servers catalogues the tool server variants. Each variant is a
// name, a version, usage instructions and the modules whose functions it
// exposes.
package servers

import (
	"slices"

	"github.com/bobmcallan/minimcp-servers/internal/modules/arithmetic"
	"github.com/bobmcallan/minimcp-servers/internal/modules/continuous"
	"github.com/bobmcallan/minimcp-servers/internal/modules/datetime"
	"github.com/bobmcallan/minimcp-servers/internal/modules/discrete"
	"github.com/bobmcallan/minimcp-servers/internal/modules/random"
	"github.com/bobmcallan/minimcp-servers/internal/modules/stats"
	"github.com/bobmcallan/minimcp-servers/internal/modules/text"
	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

// DefaultVersion is the version every variant advertises unless overridden.
const DefaultVersion = "1.0.0"

// Variant describes one tool server.
type Variant struct {
	Name         string
	Version      string
	Instructions string
	// Namespaces builds fresh module namespaces on each call.
	Namespaces func() []*namespace.Namespace
}

func modules(fns ...func() *namespace.Namespace) func() []*namespace.Namespace {
	return func() []*namespace.Namespace {
		out := make([]*namespace.Namespace, len(fns))
		for i, fn := range fns {
			out[i] = fn()
		}
		return out
	}
}

var catalog = []Variant{
	{
		Name:         "math-utils",
		Instructions: mathUtilsInstructions,
		Namespaces:   modules(arithmetic.Namespace, continuous.Namespace, discrete.Namespace, stats.Namespace),
	},
	{
		Name:         "arithmetic-math-utils",
		Instructions: arithmeticInstructions,
		Namespaces:   modules(arithmetic.Namespace),
	},
	{
		Name:         "continuous-math-utils",
		Instructions: continuousInstructions,
		Namespaces:   modules(continuous.Namespace),
	},
	{
		Name:         "discrete-math-utils",
		Instructions: discreteInstructions,
		Namespaces:   modules(discrete.Namespace),
	},
	{
		Name:         "statistics-math-utils",
		Instructions: statisticsInstructions,
		Namespaces:   modules(stats.Namespace),
	},
	{
		Name:         "datetime-utils",
		Instructions: datetimeInstructions,
		Namespaces:   modules(datetime.Namespace),
	},
	{
		Name:         "random-generator",
		Instructions: randomInstructions,
		Namespaces:   modules(random.Namespace),
	},
	{
		Name:         "text-utils",
		Instructions: textInstructions,
		Namespaces:   modules(text.Namespace),
	},
}

func init() {
	for i := range catalog {
		if catalog[i].Version == "" {
			catalog[i].Version = DefaultVersion
		}
	}
}

// All returns every variant in catalogue order.
func All() []Variant {
	return slices.Clone(catalog)
}

// Names returns the variant names in catalogue order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, v := range catalog {
		names[i] = v.Name
	}
	return names
}

// Lookup finds a variant by name.
func Lookup(name string) (Variant, bool) {
	for _, v := range catalog {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
