// This file contains the logic for parsing HCL type expressions (e.g.,
// `integer`, `factor(["a", "b"])`, `partial({id = integer})`) into their
// corresponding ptype.Type descriptors.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/vecmap/internal/ctxlog"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ParseType parses a standalone type expression such as the value of the
// -type flag.
func ParseType(ctx context.Context, src string) (ptype.Type, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<type>", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse type expression: %w", diags)
	}
	return typeExprToPType(ctx, expr)
}

// typeExprToPType converts an HCL type expression into its descriptor.
func typeExprToPType(ctx context.Context, expr hcl.Expression) (ptype.Type, error) {
	logger := ctxlog.FromContext(ctx)

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return nil, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		logger.Debug("Parsing type expression as a keyword.", "keyword", rootName)
		switch rootName {
		case "logical":
			return ptype.Logical{}, nil
		case "integer":
			return ptype.Integer{}, nil
		case "double":
			return ptype.Double{}, nil
		case "character":
			return ptype.Character{}, nil
		case "date":
			return ptype.Date{}, nil
		case "factor":
			return ptype.Factor{}, nil
		case "any", "list":
			return ptype.Any{}, nil
		default:
			return nil, fmt.Errorf("unknown type %q", rootName)
		}

	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a constructor call.", "call", v.Name)
		if len(v.Args) != 1 {
			return nil, fmt.Errorf("type constructor %q requires exactly one argument, got %d", v.Name, len(v.Args))
		}
		switch v.Name {
		case "factor":
			return factorType(v.Args[0])
		case "record", "partial":
			obj, ok := v.Args[0].(*hclsyntax.ObjectConsExpr)
			if !ok {
				return nil, fmt.Errorf("%s() requires an object of field types, got %T", v.Name, v.Args[0])
			}
			fields, err := recordFields(ctx, obj)
			if err != nil {
				return nil, err
			}
			return ptype.Record{Fields: fields, Partial: v.Name == "partial"}, nil
		case "optional":
			return nil, fmt.Errorf("optional() is only valid as a record field type")
		default:
			return nil, fmt.Errorf("unknown type constructor %q", v.Name)
		}

	default:
		return nil, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

func factorType(arg hcl.Expression) (ptype.Type, error) {
	val, diags := arg.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid factor levels: %w", diags)
	}
	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("factor levels must be a list of strings: %w", err)
	}
	var levels []string
	if err := gocty.FromCtyValue(list, &levels); err != nil {
		return nil, fmt.Errorf("factor levels must be a list of strings: %w", err)
	}
	return ptype.Factor{Levels: levels}, nil
}

func recordFields(ctx context.Context, obj *hclsyntax.ObjectConsExpr) ([]ptype.Field, error) {
	fields := make([]ptype.Field, 0, len(obj.Items))
	seen := make(map[string]struct{}, len(obj.Items))
	for _, item := range obj.Items {
		name, err := fieldName(item.KeyExpr)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate record field %q", name)
		}
		seen[name] = struct{}{}

		valueExpr := item.ValueExpr
		optional := false
		if call, ok := valueExpr.(*hclsyntax.FunctionCallExpr); ok && call.Name == "optional" {
			if len(call.Args) != 1 {
				return nil, fmt.Errorf("optional() requires exactly one argument, got %d", len(call.Args))
			}
			valueExpr = call.Args[0]
			optional = true
		}
		t, err := typeExprToPType(ctx, valueExpr)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, ptype.Field{Name: name, Type: t, Optional: optional})
	}
	return fields, nil
}

// fieldName accepts both bare (`id = ...`) and quoted (`"first name" = ...`)
// object keys.
func fieldName(expr hcl.Expression) (string, error) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("invalid record field name: %w", diags)
	}
	if val.IsNull() || !val.Type().Equals(cty.String) {
		return "", fmt.Errorf("record field names must be strings")
	}
	return val.AsString(), nil
}
