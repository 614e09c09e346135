/*
 * expr.go, part of goMSO.
 *
 * Copyright 2026 The goMSO developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package expr holds the symbolic position expressions used by virtual-site
types. An expression is written in CEL over position variables named
r_i, r_j, r_k, ..., continuing alphabetically up to r_z. The variables are
ordered: r_i is always the position of the first parent site, r_j the second,
and so on. The set of variables an expression uses must be the contiguous run
starting at r_i; an expression over r_i and r_k but not r_j is ill-specified
and rejected at construction.

Expressions are scalar and are applied independently to the x, y and z
components of the bound vectors, which covers every weighted-combination
construction used by force-field virtual sites. Note that CEL does not
promote ints to doubles, so numeric literals must be written as floats:
"0.5*r_i + 0.5*r_j" works, "2*r_i" does not compile.
*/
package expr

import (
	"fmt"
	"sort"
	"strings"

	v3 "github.com/askforarun/gmso/v3"
	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

const varPrefix = "r_"

//MaxVars is the largest number of position variables an expression can use.
//The alphabet runs out after r_z, and no virtual-site construction in actual
//use gets anywhere near 18 parents.
const MaxVars = int('z'-'i') + 1

//VarName returns the name of the position variable bound to the (0-based)
//nth parent site: r_i for 0, r_j for 1, and so on.
func VarName(n int) (string, error) {
	if n < 0 || n >= MaxVars {
		return "", Error{fmt.Sprintf("No position variable for parent index %d, only %d available", n, MaxVars), []string{"VarName"}}
	}
	return varPrefix + string(rune('i'+n)), nil
}

//VarNames returns the names of the first n position variables, in binding
//order.
func VarNames(n int) ([]string, error) {
	if n < 0 || n > MaxVars {
		return nil, Error{fmt.Sprintf("Can't name %d position variables, only %d available", n, MaxVars), []string{"VarNames"}}
	}
	r := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, _ := VarName(i)
		r = append(r, v)
	}
	return r, nil
}

//varIndex returns the binding index of a position variable name,
//or -1 if the name does not follow the convention.
func varIndex(name string) int {
	if !strings.HasPrefix(name, varPrefix) || len(name) != len(varPrefix)+1 {
		return -1
	}
	c := rune(name[len(varPrefix)])
	if c < 'i' || c > 'z' {
		return -1
	}
	return int(c - 'i')
}

//Position is a compiled symbolic position expression. It is immutable and
//safe for concurrent evaluation.
type Position struct {
	source string
	vars   []string
	prg    cel.Program
}

//NewPosition compiles the given expression into a Position. The expression's
//free variables define, by their count, how many parent sites any site using
//this expression requires.
func NewPosition(expression string) (*Position, error) {
	free, err := freeVars(expression)
	if err != nil {
		return nil, errDecorate(err, "NewPosition")
	}
	if len(free) == 0 {
		return nil, Error{fmt.Sprintf("Expression %q uses no position variables", expression), []string{"NewPosition"}}
	}
	//The variables must be the contiguous run r_i, r_j, ... with no gaps,
	//otherwise the positional binding to parent sites is ambiguous.
	for n, v := range free {
		ix := varIndex(v)
		if ix < 0 {
			return nil, Error{fmt.Sprintf("Expression %q uses %q, which is not a position variable (r_i, r_j, ...)", expression, v), []string{"NewPosition"}}
		}
		if ix != n {
			want, _ := VarName(n)
			return nil, Error{fmt.Sprintf("Expression %q uses %q but not %q: position variables must be contiguous from r_i", expression, v, want), []string{"NewPosition"}}
		}
	}
	opts := make([]cel.EnvOption, 0, len(free))
	for _, v := range free {
		opts = append(opts, cel.Variable(v, cel.DoubleType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, Error{fmt.Sprintf("Couldn't build evaluation environment: %v", err), []string{"NewPosition"}}
	}
	ast, iss := env.Compile(expression)
	if iss != nil && iss.Err() != nil {
		return nil, Error{fmt.Sprintf("Couldn't compile expression %q: %v", expression, iss.Err()), []string{"NewPosition"}}
	}
	if !ast.OutputType().IsExactType(cel.DoubleType) {
		return nil, Error{fmt.Sprintf("Expression %q evaluates to %v, not to a number", expression, ast.OutputType()), []string{"NewPosition"}}
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, Error{fmt.Sprintf("Couldn't build program for expression %q: %v", expression, err), []string{"NewPosition"}}
	}
	return &Position{source: expression, vars: free, prg: prg}, nil
}

//String returns the source of the expression.
func (P *Position) String() string { return P.source }

//Vars returns the independent variables of the expression, in binding order.
//The returned slice is a copy.
func (P *Position) Vars() []string {
	r := make([]string, len(P.vars))
	copy(r, P.vars)
	return r
}

//NVars returns the number of independent variables of the expression, which
//is also the number of parent sites a virtual site using it requires.
func (P *Position) NVars() int { return len(P.vars) }

//Eval evaluates the expression with each variable bound to the
//corresponding vector (the first vector of each Matrix), componentwise,
//and returns the resulting vector. The bindings must cover exactly the
//expression's variables. Eval does not modify the bindings.
func (P *Position) Eval(bindings map[string]*v3.Matrix) (*v3.Matrix, error) {
	if len(bindings) != len(P.vars) {
		return nil, Error{fmt.Sprintf("Expression %q needs %d bindings, got %d", P.source, len(P.vars), len(bindings)), []string{"Eval"}}
	}
	for _, v := range P.vars {
		b, ok := bindings[v]
		if !ok || b == nil {
			return nil, Error{fmt.Sprintf("No binding for variable %s of expression %q", v, P.source), []string{"Eval"}}
		}
	}
	out := v3.Zeros(1)
	act := make(map[string]any, len(P.vars))
	for c := 0; c < 3; c++ {
		for _, v := range P.vars {
			act[v] = bindings[v].At(0, c)
		}
		val, _, err := P.prg.Eval(act)
		if err != nil {
			return nil, Error{fmt.Sprintf("Couldn't evaluate expression %q: %v", P.source, err), []string{"Eval"}}
		}
		f, ok := val.Value().(float64)
		if !ok {
			return nil, Error{fmt.Sprintf("Expression %q produced a %T, not a number", P.source, val.Value()), []string{"Eval"}}
		}
		out.Set(0, c, f)
	}
	return out, nil
}

//freeVars returns the free identifiers of the expression, in canonical
//binding order. Only the parse stage runs here, so identifiers outside the
//position-variable convention still come back and get rejected by the
//caller with a better message than the type-checker's.
func freeVars(expression string) ([]string, error) {
	env, err := cel.NewEnv()
	if err != nil {
		return nil, Error{fmt.Sprintf("Couldn't build parse environment: %v", err), []string{"freeVars"}}
	}
	parsed, iss := env.Parse(expression)
	if iss != nil && iss.Err() != nil {
		return nil, Error{fmt.Sprintf("Couldn't parse expression %q: %v", expression, iss.Err()), []string{"freeVars"}}
	}
	vars := make(map[string]bool)
	parsedExpr, err := cel.AstToParsedExpr(parsed)
	if err != nil {
		return nil, Error{fmt.Sprintf("Couldn't inspect expression %q: %v", expression, err), []string{"freeVars"}}
	}
	if parsedExpr.GetExpr() != nil {
		identsFromExpr(parsedExpr.GetExpr(), vars)
	}
	result := make([]string, 0, len(vars))
	for v := range vars {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := varIndex(result[i]), varIndex(result[j])
		if a >= 0 && b >= 0 {
			return a < b
		}
		return result[i] < result[j]
	})
	return result, nil
}

//identsFromExpr recursively collects identifier references from the parsed
//expression tree.
func identsFromExpr(e *exprpb.Expr, vars map[string]bool) {
	if e == nil {
		return
	}
	switch e.GetExprKind().(type) {
	case *exprpb.Expr_IdentExpr:
		vars[e.GetIdentExpr().GetName()] = true
	case *exprpb.Expr_SelectExpr:
		sel := e.GetSelectExpr()
		identsFromExpr(sel.GetOperand(), vars)
	case *exprpb.Expr_CallExpr:
		call := e.GetCallExpr()
		for _, arg := range call.GetArgs() {
			identsFromExpr(arg, vars)
		}
		if call.GetTarget() != nil {
			identsFromExpr(call.GetTarget(), vars)
		}
	case *exprpb.Expr_ListExpr:
		for _, elem := range e.GetListExpr().GetElements() {
			identsFromExpr(elem, vars)
		}
	case *exprpb.Expr_ComprehensionExpr:
		comp := e.GetComprehensionExpr()
		identsFromExpr(comp.GetIterRange(), vars)
		identsFromExpr(comp.GetAccuInit(), vars)
		identsFromExpr(comp.GetLoopCondition(), vars)
		identsFromExpr(comp.GetLoopStep(), vars)
		identsFromExpr(comp.GetResult(), vars)
	}
}

//Error is the error type for the expr package, compatible with the
//Decorate-style error handling used in the rest of the library.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the error,
//and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

type errorInt interface {
	Error() string
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}
