package system

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"gbf2/zdd"
)

// ErrSyntax reports an expression that is not a Boolean polynomial.
var ErrSyntax = errors.New("system: not a polynomial expression")

// ParsePolynomial parses an expression built from variables of the cache's ring,
// integer constants, +, -, *, unary minus and powers (^ or **). Arithmetic is over
// GF(2) with x^2 = x.
func ParsePolynomial(c *zdd.Cache, input string) (zdd.Poly, error) {
	tree, err := parser.Parse(input)
	if err != nil {
		return zdd.Poly{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return build(c, tree.Node)
}

func build(c *zdd.Cache, node ast.Node) (zdd.Poly, error) {
	r := c.Ring()
	switch n := node.(type) {
	case *ast.IdentifierNode:
		i, err := r.VarIndex(n.Value)
		if err != nil {
			return zdd.Poly{}, err
		}
		return r.Var(i), nil
	case *ast.IntegerNode:
		if n.Value%2 == 0 {
			return r.Zero(), nil
		}
		return r.One(), nil
	case *ast.BoolNode:
		if n.Value {
			return r.One(), nil
		}
		return r.Zero(), nil
	case *ast.UnaryNode:
		switch n.Operator {
		case "-", "+":
			return build(c, n.Node)
		}
		return zdd.Poly{}, fmt.Errorf("%w: unary %q", ErrSyntax, n.Operator)
	case *ast.BinaryNode:
		left, err := build(c, n.Left)
		if err != nil {
			return zdd.Poly{}, err
		}
		if n.Operator == "^" || n.Operator == "**" {
			exp, ok := n.Right.(*ast.IntegerNode)
			if !ok || exp.Value < 0 {
				return zdd.Poly{}, fmt.Errorf("%w: exponent must be a non-negative integer", ErrSyntax)
			}
			if exp.Value == 0 {
				return r.One(), nil
			}
			return left, nil
		}
		right, err := build(c, n.Right)
		if err != nil {
			return zdd.Poly{}, err
		}
		switch n.Operator {
		case "+", "-":
			return c.Add(left, right), nil
		case "*":
			return c.Mul(left, right), nil
		}
		return zdd.Poly{}, fmt.Errorf("%w: operator %q", ErrSyntax, n.Operator)
	}
	return zdd.Poly{}, fmt.Errorf("%w: unexpected %T", ErrSyntax, node)
}
