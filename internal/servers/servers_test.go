package servers

import (
	"slices"
	"testing"

	"github.com/bobmcallan/minimcp-servers/internal/common"
	"github.com/bobmcallan/minimcp-servers/internal/registrar"
	"github.com/bobmcallan/minimcp-servers/internal/tools"
)

func TestNames(t *testing.T) {
	want := []string{
		"math-utils", "arithmetic-math-utils", "continuous-math-utils", "discrete-math-utils",
		"statistics-math-utils", "datetime-utils", "random-generator", "text-utils",
	}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestLookup(t *testing.T) {
	v, ok := Lookup("text-utils")
	if !ok {
		t.Fatal("text-utils not found")
	}
	if v.Version != DefaultVersion {
		t.Errorf("expected version %s, got %s", DefaultVersion, v.Version)
	}
	if v.Instructions == "" {
		t.Error("expected instructions")
	}
	if _, ok := Lookup("no-such-server"); ok {
		t.Error("expected lookup of unknown variant to fail")
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "changed"
	if Names()[0] != "math-utils" {
		t.Error("mutating All() result changed the catalogue")
	}
}

func TestVariants_RegisterCleanly(t *testing.T) {
	want := map[string]int{
		"math-utils":            72,
		"arithmetic-math-utils": 21,
		"continuous-math-utils": 28,
		"discrete-math-utils":   6,
		"statistics-math-utils": 17,
		"datetime-utils":        9,
		"random-generator":      3,
		"text-utils":            18,
	}
	for _, v := range All() {
		t.Run(v.Name, func(t *testing.T) {
			srv := tools.New(v.Name, v.Version, v.Instructions, common.NewSilentLogger())
			res := registrar.RegisterModules(srv, common.NewSilentLogger(), v.Namespaces()...)
			if res.Failed() != 0 {
				t.Fatalf("unexpected failures: %+v", res.Failures)
			}
			if srv.Len() != want[v.Name] {
				t.Errorf("expected %d tools, got %d", want[v.Name], srv.Len())
			}
		})
	}
}

func TestNamespaces_AreFresh(t *testing.T) {
	v, _ := Lookup("math-utils")
	a, b := v.Namespaces(), v.Namespaces()
	if len(a) != 4 {
		t.Fatalf("expected 4 namespaces, got %d", len(a))
	}
	if a[0] == b[0] {
		t.Error("expected a new namespace per call")
	}
}
