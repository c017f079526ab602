// Package expr implements visibility.Evaluator with a small boolean
// expression language, for example `role == "developer"` or
// `!archived && (tier == 2 || extras.beta)`.
package expr

import (
	"sync"

	"github.com/goliatone/go-roleform/pkg/visibility"
)

// Evaluator compiles rules on first use and caches the programs. It is safe
// for concurrent use.
type Evaluator struct {
	programs sync.Map
}

var _ visibility.Evaluator = (*Evaluator)(nil)

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) Eval(_ string, rule string, ctx visibility.Context) (bool, error) {
	program, err := e.program(rule)
	if err != nil {
		return false, err
	}
	return program.Eval(ctx), nil
}

func (e *Evaluator) program(rule string) (*Program, error) {
	if cached, ok := e.programs.Load(rule); ok {
		return cached.(*Program), nil
	}
	program, err := Compile(rule)
	if err != nil {
		return nil, err
	}
	actual, _ := e.programs.LoadOrStore(rule, program)
	return actual.(*Program), nil
}
