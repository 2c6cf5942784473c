package golden

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed record.cue
var recordSchema string

// schema validates raw record documents against #Record.
type schema struct {
	ctx    *cue.Context
	record cue.Value
}

func compileSchema() (*schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(recordSchema, cue.Filename("record.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}

	def := v.LookupPath(cue.ParsePath("#Record"))
	if !def.Exists() {
		return nil, fmt.Errorf("record schema: #Record not defined")
	}
	return &schema{ctx: ctx, record: def}, nil
}

// validate checks that data is JSON conforming to #Record.
func (s *schema) validate(name string, data []byte) error {
	expr, err := cuejson.Extract(name, data)
	if err != nil {
		return fmt.Errorf("parse: %s", formatCUEError(err))
	}

	v := s.ctx.BuildExpr(expr, cue.Filename(name))
	if err := v.Err(); err != nil {
		return fmt.Errorf("build: %s", formatCUEError(err))
	}

	if err := s.record.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema: %s", formatCUEError(err))
	}
	return nil
}

// formatCUEError flattens a CUE error list into one line.
func formatCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
