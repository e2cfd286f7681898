package filter

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Expressions see the record as the map variable "r", e.g.
// `r.department == "Engineering" && r.performance >= 80`.
const exprRecordVar = "r"

var exprProgramCache sync.Map

var newExprEnv = func() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable(exprRecordVar, cel.MapType(cel.StringType, cel.DynType)))
}

// ValidateExpr reports whether expr compiles to a boolean expression.
func ValidateExpr(expr string) error {
	_, err := loadOrCompileExpr(expr)
	return err
}

func exprPredicate[T any](expr string, vars func(T) map[string]any) (Predicate[T], error) {
	program, err := loadOrCompileExpr(expr)
	if err != nil {
		return nil, err
	}
	return func(rec T) bool {
		out, _, err := program.Eval(map[string]any{exprRecordVar: vars(rec)})
		if err != nil {
			// Missing keys or type mismatches exclude the record.
			return false
		}
		v, ok := out.Value().(bool)
		return ok && v
	}, nil
}

func loadOrCompileExpr(expr string) (cel.Program, error) {
	if cached, ok := exprProgramCache.Load(expr); ok {
		return cached.(cel.Program), nil
	}
	env, err := newExprEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, fmt.Errorf("%w: expression must evaluate to a boolean", ErrInvalidExpr)
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpr, err)
	}
	exprProgramCache.Store(expr, program)
	return program, nil
}
