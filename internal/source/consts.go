package source

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/oasbuild/oasgen/internal/console"
)

// constVariable records one constant declaration. iotaValue is the
// spec index within the enclosing const block, which is what iota
// evaluates to for that spec.
type constVariable struct {
	name      string
	typ       ast.Expr
	expr      ast.Expr
	iotaValue int
	value     interface{}
}

// collectConstVariables gathers the constants of one const block.
// Specs with no value inherit the type and expression of the previous
// spec, per Go const-block semantics.
func (f *File) collectConstVariables(generalDeclaration *ast.GenDecl) {
	var lastValueSpec *ast.ValueSpec
	for specIndex, astSpec := range generalDeclaration.Specs {
		valueSpec, ok := astSpec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if len(valueSpec.Names) == 1 && len(valueSpec.Values) == 1 {
			lastValueSpec = valueSpec
		} else if len(valueSpec.Names) == 1 && len(valueSpec.Values) == 0 && valueSpec.Type == nil && lastValueSpec != nil {
			valueSpec.Type = lastValueSpec.Type
			valueSpec.Values = lastValueSpec.Values
		}
		for i, name := range valueSpec.Names {
			if name.Name == "_" {
				continue
			}
			variable := &constVariable{
				name:      name.Name,
				typ:       valueSpec.Type,
				iotaValue: specIndex,
			}
			if i < len(valueSpec.Values) {
				variable.expr = valueSpec.Values[i]
			}
			f.consts = append(f.consts, variable)
			f.constIndex[name.Name] = variable
		}
	}
}

func (f *File) evaluateConstVariables() {
	for _, variable := range f.consts {
		f.evaluateConst(variable, make(map[string]struct{}))
	}
}

// evaluateConst resolves a constant to its literal value, caching the
// result. The stack breaks reference cycles between constants.
func (f *File) evaluateConst(variable *constVariable, stack map[string]struct{}) interface{} {
	if variable.value != nil {
		return variable.value
	}
	if _, ok := stack[variable.name]; ok {
		return nil
	}
	stack[variable.name] = struct{}{}

	variable.value = f.evaluateConstExpr(variable.expr, variable.iotaValue, stack)
	if variable.value == nil {
		console.Logger.Debug("failed to evaluate const %s in %s", variable.name, f.Path)
	}
	return variable.value
}

// evaluateConstExpr handles the expression subset the enum idiom
// needs: literals, iota, references to other constants in the same
// source, parenthesized and unary expressions, additive arithmetic,
// and single-argument type conversions.
func (f *File) evaluateConstExpr(expr ast.Expr, iotaValue int, stack map[string]struct{}) interface{} {
	switch valueExpr := expr.(type) {
	case *ast.Ident:
		switch valueExpr.Name {
		case "iota":
			return int64(iotaValue)
		case "true":
			return true
		case "false":
			return false
		}
		if variable, ok := f.constIndex[valueExpr.Name]; ok {
			return f.evaluateConst(variable, stack)
		}
	case *ast.BasicLit:
		switch valueExpr.Kind {
		case token.INT:
			if x, err := strconv.ParseInt(valueExpr.Value, 0, 64); err == nil {
				return x
			}
		case token.FLOAT:
			if x, err := strconv.ParseFloat(valueExpr.Value, 64); err == nil {
				return x
			}
		case token.STRING:
			if s, err := strconv.Unquote(valueExpr.Value); err == nil {
				return s
			}
		case token.CHAR:
			if s, err := strconv.Unquote(valueExpr.Value); err == nil && s != "" {
				return int64([]rune(s)[0])
			}
		}
	case *ast.ParenExpr:
		return f.evaluateConstExpr(valueExpr.X, iotaValue, stack)
	case *ast.UnaryExpr:
		x := f.evaluateConstExpr(valueExpr.X, iotaValue, stack)
		if valueExpr.Op != token.SUB {
			return nil
		}
		switch value := x.(type) {
		case int64:
			return -value
		case float64:
			return -value
		}
	case *ast.BinaryExpr:
		x := f.evaluateConstExpr(valueExpr.X, iotaValue, stack)
		y := f.evaluateConstExpr(valueExpr.Y, iotaValue, stack)
		if x == nil || y == nil {
			return nil
		}
		return evaluateBinary(x, y, valueExpr.Op)
	case *ast.CallExpr:
		// explicit conversion like Role("admin")
		if len(valueExpr.Args) == 1 {
			return f.evaluateConstExpr(valueExpr.Args[0], iotaValue, stack)
		}
	}
	return nil
}

func evaluateBinary(x, y interface{}, operator token.Token) interface{} {
	if xs, ok := x.(string); ok {
		ys, ok := y.(string)
		if ok && operator == token.ADD {
			return xs + ys
		}
		return nil
	}

	xi, xok := x.(int64)
	yi, yok := y.(int64)
	if !xok || !yok {
		return nil
	}
	switch operator {
	case token.ADD:
		return xi + yi
	case token.SUB:
		return xi - yi
	case token.MUL:
		return xi * yi
	case token.QUO:
		if yi == 0 {
			return nil
		}
		return xi / yi
	case token.REM:
		if yi == 0 {
			return nil
		}
		return xi % yi
	case token.SHL:
		return xi << uint64(yi)
	case token.SHR:
		return xi >> uint64(yi)
	case token.AND:
		return xi & yi
	case token.OR:
		return xi | yi
	case token.XOR:
		return xi ^ yi
	}
	return nil
}

// enumFor returns the evaluated values of the constants declared with
// the named type, in declaration order. The literal kind comes from
// the first value; an unrecognized literal defaults to string.
func (f *File) enumFor(name string) ([]interface{}, PrimitiveKind, bool) {
	var values []interface{}
	for _, variable := range f.consts {
		ident, ok := variable.typ.(*ast.Ident)
		if !ok || ident.Name != name {
			continue
		}
		if variable.value == nil {
			console.Logger.Debug("skipping enum member %s of %s: value not evaluable", variable.name, name)
			continue
		}
		values = append(values, variable.value)
	}
	if len(values) == 0 {
		return nil, PrimitiveString, false
	}
	return values, literalKind(values[0]), true
}

func literalKind(value interface{}) PrimitiveKind {
	switch value.(type) {
	case int64:
		return PrimitiveInteger
	case float64:
		return PrimitiveNumber
	case bool:
		return PrimitiveBoolean
	case string:
		return PrimitiveString
	}
	return PrimitiveString
}
