// Package registrar turns module namespaces into registered tools.
package registrar

import (
	"fmt"

	"github.com/bobmcallan/minimcp-servers/internal/common"
	"github.com/bobmcallan/minimcp-servers/internal/namespace"
	"github.com/bobmcallan/minimcp-servers/internal/scanner"
)

// ToolRegistrar registers one function as a tool under the function's own name.
type ToolRegistrar interface {
	RegisterTool(fn *namespace.Function) error
}

// Failure records a candidate that could not be registered.
type Failure struct {
	Module string
	Attr   string
	Tool   string
	Err    error
}

// Result summarises one registration pass.
type Result struct {
	Candidates int
	Registered int
	Failures   []Failure
}

// Failed returns the number of candidates that did not register.
func (r Result) Failed() int { return len(r.Failures) }

// RegisterModules registers every public plain function of the namespaces on
// target, in scan order. A candidate that fails is logged and skipped; the
// pass itself never fails.
func RegisterModules(target ToolRegistrar, logger *common.Logger, namespaces ...*namespace.Namespace) Result {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	candidates := scanner.Scan(namespaces...)

	var res Result
	for _, ns := range namespaces {
		logger.Info().
			Str("module", ns.Name()).
			Int("functions", scanner.CountByModule(ns)).
			Msg("registering module functions as tools")
	}

	for c := range candidates {
		res.Candidates++

		if err := attempt(target, c.Func); err != nil {
			logger.Warn().
				Str("module", c.Module).
				Str("function", c.Attr).
				Err(err).
				Msg("failed to register function")
			res.Failures = append(res.Failures, Failure{
				Module: c.Module,
				Attr:   c.Attr,
				Tool:   c.Func.Name,
				Err:    err,
			})
			continue
		}

		res.Registered++
		logger.Debug().
			Str("function", c.Attr).
			Str("tool", c.Func.Name).
			Msg("registered function as tool")
	}

	logger.Info().
		Int("registered", res.Registered).
		Int("failed", res.Failed()).
		Msg("tool registration complete")

	return res
}

// attempt registers fn, converting an adapter panic into an error.
func attempt(target ToolRegistrar, fn *namespace.Function) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("register %s panicked: %v", fn.Name, r)
		}
	}()
	return target.RegisterTool(fn)
}
