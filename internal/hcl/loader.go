package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/vecmap/internal/ctxlog"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/zclconf/go-cty/cty"
)

// Input is the content of one results file.
type Input struct {
	// Results holds one literal per input element, in order.
	Results []cty.Value
	// Type is the requested output type, nil when the file names none.
	Type ptype.Type
	// Strict is set by `strict = true`.
	Strict bool
}

// Loader reads results files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL results loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses the results file at path.
func (l *Loader) Load(ctx context.Context, path string) (*Input, error) {
	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return l.decode(ctx, file.Body, path)
}

// LoadBytes parses results from src; filename is used in diagnostics only.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*Input, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, file.Body, filename)
}

// resultsFile is the top-level structure of a results file for decoding.
type resultsFile struct {
	Results hcl.Expression `hcl:"results"`
	Type    *hcl.Attribute `hcl:"type,optional"`
	Strict  *bool          `hcl:"strict,optional"`
}

func (l *Loader) decode(ctx context.Context, body hcl.Body, filename string) (*Input, error) {
	logger := ctxlog.FromContext(ctx)

	var parsed resultsFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	val, diags := parsed.Results.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: invalid results: %w", filename, diags)
	}
	if val.IsNull() || !(val.Type().IsTupleType() || val.Type().IsListType()) {
		return nil, fmt.Errorf("%s: results must be a list, got %s", filename, val.Type().FriendlyName())
	}

	in := &Input{Results: val.AsValueSlice()}
	if in.Results == nil {
		in.Results = []cty.Value{}
	}
	if parsed.Type != nil {
		t, err := typeExprToPType(ctx, parsed.Type.Expr)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid type: %w", filename, err)
		}
		in.Type = t
	}
	if parsed.Strict != nil {
		in.Strict = *parsed.Strict
	}

	logger.Debug("Results file loaded.", "file", filename, "results", len(in.Results), "type", ptype.Name(in.Type), "strict", in.Strict)
	return in, nil
}
