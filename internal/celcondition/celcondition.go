// Package celcondition compiles CEL expressions used as field predicates.
// Expressions see the field under test as the dynamic variable "value".
package celcondition

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celtypes "github.com/google/cel-go/common/types"
)

// ValueVariable is the name the field value is bound to inside an expression.
const ValueVariable = "value"

// PrepareCondition compiles celCondition and checks that it yields a bool.
func PrepareCondition(celCondition string) (cel.Program, error) {
	env, err := cel.NewEnv(
		cel.Variable(ValueVariable, cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(celCondition)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("output type is not bool: %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to program CEL expression: %w", err)
	}
	return prg, nil
}

// EvaluateCondition runs prg against value. A runtime evaluation error is
// returned to the caller; callers treating the condition as a predicate
// should consider it a failed check.
func EvaluateCondition(prg cel.Program, value any) (bool, error) {
	out, _, err := prg.Eval(map[string]any{
		ValueVariable: value,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL condition: %w", err)
	}
	return out.Type() == celtypes.BoolType && out.Value() == true, nil
}
