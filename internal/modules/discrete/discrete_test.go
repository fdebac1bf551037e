package discrete

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/minimcp-servers/internal/common"
	"github.com/bobmcallan/minimcp-servers/internal/registrar"
	"github.com/bobmcallan/minimcp-servers/internal/tools"
)

func TestNamespace_RegistersEveryFunction(t *testing.T) {
	srv := tools.New("discrete-test", "1.0.0", "", common.NewSilentLogger())
	res := registrar.RegisterModules(srv, common.NewSilentLogger(), Namespace())
	if res.Failed() != 0 {
		t.Fatalf("expected no failures, got %+v", res.Failures)
	}
	if res.Registered != 6 {
		t.Errorf("expected 6 tools, got %d", res.Registered)
	}

	d, _ := srv.Lookup("factorial")
	if d.Result != "integer" {
		t.Errorf("expected factorial result type integer, got %s", d.Result)
	}
}

func TestFactorialThroughServer(t *testing.T) {
	srv := tools.New("discrete-test", "1.0.0", "", common.NewSilentLogger())
	registrar.RegisterModules(srv, common.NewSilentLogger(), Namespace())
	srv.Freeze()

	res, err := srv.Call(context.Background(), "factorial", map[string]any{"x": 25})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %v", res.Content)
	}
	if got := mcp.GetTextFromContent(res.Content[0]); got != "15511210043330985984000000" {
		t.Errorf("factorial(25) = %s", got)
	}
}

func TestIsqrt(t *testing.T) {
	for x, want := range map[int64]int64{0: 0, 1: 1, 15: 3, 16: 4, 17: 4, 1 << 62: 1 << 31} {
		got, err := isqrt(x)
		if err != nil || got != want {
			t.Errorf("isqrt(%d) = %d, %v; want %d", x, got, err, want)
		}
	}
	if _, err := isqrt(-1); err == nil {
		t.Error("expected error for negative isqrt")
	}
}

func TestFactorial(t *testing.T) {
	got, err := factorial(0)
	if err != nil || got.Int64() != 1 {
		t.Errorf("factorial(0) = %v, %v", got, err)
	}
	got, _ = factorial(5)
	if got.Int64() != 120 {
		t.Errorf("factorial(5) = %v", got)
	}
	if _, err := factorial(-1); err == nil {
		t.Error("expected error for negative factorial")
	}
	if _, err := factorial(maxOperand + 1); err == nil {
		t.Error("expected error above the operand limit")
	}
}

func TestGcdLcm(t *testing.T) {
	tests := []struct {
		a, b     int64
		gcd, lcm int64
	}{
		{12, 18, 6, 36},
		{-4, 6, 2, 12},
		{0, 5, 5, 0},
		{0, 0, 0, 0},
		{7, 13, 1, 91},
	}
	for _, tt := range tests {
		if got := gcd(tt.a, tt.b).Int64(); got != tt.gcd {
			t.Errorf("gcd(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.gcd)
		}
		if got := lcm(tt.a, tt.b).Int64(); got != tt.lcm {
			t.Errorf("lcm(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.lcm)
		}
	}
}

func TestCombinationPermutation(t *testing.T) {
	c, err := combination(5, 2)
	if err != nil || c.Int64() != 10 {
		t.Errorf("combination(5, 2) = %v, %v", c, err)
	}
	c, _ = combination(3, 5)
	if c.Sign() != 0 {
		t.Errorf("combination(3, 5) = %v, want 0", c)
	}
	if _, err := combination(-1, 2); err == nil {
		t.Error("expected error for negative n")
	}

	k := int64(2)
	p, err := permutation(5, &k)
	if err != nil || p.Int64() != 20 {
		t.Errorf("permutation(5, 2) = %v, %v", p, err)
	}
	p, _ = permutation(5, nil)
	if p.Int64() != 120 {
		t.Errorf("permutation(5) = %v, want 120", p)
	}
	zero := int64(0)
	p, _ = permutation(5, &zero)
	if p.Int64() != 1 {
		t.Errorf("permutation(5, 0) = %v, want 1", p)
	}
	big := int64(9)
	p, _ = permutation(5, &big)
	if p.Sign() != 0 {
		t.Errorf("permutation(5, 9) = %v, want 0", p)
	}
	neg := int64(-1)
	if _, err := permutation(5, &neg); err == nil {
		t.Error("expected error for negative k")
	}
}
