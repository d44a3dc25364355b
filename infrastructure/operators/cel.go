package operators

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

const (
	// celValueVar is the CEL variable bound to the resolved field value.
	celValueVar = "value"

	// celCacheSize bounds the compiled-program cache, mirroring the
	// pattern cache.
	celCacheSize = 128

	// celCostLimit caps expression evaluation cost to prevent resource
	// exhaustion from runaway expressions.
	celCostLimit = 1_000_000
)

// newCELHandler builds the $cel handler: the operand is a CEL
// expression evaluated with the resolved field value bound as `value`,
// and must produce a boolean.
//
//	{"age": {"$cel": "value >= 18 && value < 65"}}
//
// Compiled programs are cached in a bounded LRU keyed by expression
// text. A compile failure or non-boolean result is an invalid operand;
// a runtime evaluation failure (e.g. a type error against this
// document's value) is a non-match.
func newCELHandler() ports.OperatorHandler {
	env, envErr := cel.NewEnv(cel.Variable(celValueVar, cel.DynType))
	programs := newLRUCache[cel.Program](celCacheSize)

	return func(_ ports.ValueMatcher, value, operand any) (bool, error) {
		if envErr != nil {
			return false, domain.NewOperatorError("$cel", "",
				fmt.Errorf("%w: cel environment unavailable: %v", domain.ErrInternal, envErr))
		}
		expression, ok := operand.(string)
		if !ok {
			return false, domain.NewOperatorError("$cel", "",
				fmt.Errorf("%w: operand must be a cel expression string, got %T", domain.ErrInvalidOperand, operand))
		}

		program, err := compileExpression(env, programs, expression)
		if err != nil {
			return false, domain.NewOperatorError("$cel", "",
				fmt.Errorf("%w: invalid expression %q: %v", domain.ErrInvalidOperand, expression, err))
		}

		out, _, err := program.Eval(map[string]any{celValueVar: value})
		if err != nil {
			return false, nil
		}
		result, ok := out.Value().(bool)
		if !ok {
			return false, domain.NewOperatorError("$cel", "",
				fmt.Errorf("%w: expression %q must evaluate to a boolean", domain.ErrInvalidOperand, expression))
		}
		return result, nil
	}
}

// compileExpression returns the compiled program for an expression,
// consulting the bounded cache first. Compilation happens outside the
// cache lock; racing misses compile twice and the cache keeps the last
// writer.
func compileExpression(env *cel.Env, programs *lruCache[cel.Program], expression string) (cel.Program, error) {
	if program, ok := programs.get(expression); ok {
		return program, nil
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := env.Program(ast, cel.CostLimit(celCostLimit))
	if err != nil {
		return nil, err
	}
	programs.add(expression, program)
	return program, nil
}
