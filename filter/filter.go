// Package filter evaluates expr-lang expressions against normalized Gyazo files.
//
// Expressions see the file fields as variables (ID, Type, CreatedAt, Download,
// Permalink, App, Title, Source, Desc, HasMeta), isVideo() and the
// case-insensitive helpers includes, hasPrefix and hasSuffix:
//
//	Type == "png" and includes(App, "chrome")
//	isVideo() or CreatedAt startsWith "2024-"
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/gyazo/gyazo"
)

// Filter represents a compiled expr filter
type Filter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a filter expression
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(env(gyazo.File{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	return &Filter{
		program: program,
		expr:    expression,
	}, nil
}

// Match evaluates the filter against a file
func (f *Filter) Match(file gyazo.File) (bool, error) {
	result, err := expr.Run(f.program, env(file))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, FileID: file.ID, Reason: err.Error(), Err: err}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{Expression: f.expr, FileID: file.ID, Reason: fmt.Sprintf("result is %T, not bool", result)}
	}
	return matched, nil
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expr
}

// env builds the expression environment for a file
func env(file gyazo.File) map[string]any {
	var meta gyazo.Metadata
	if file.Meta != nil {
		meta = *file.Meta
	}

	return map[string]any{
		// File data
		"ID":        file.ID,
		"Type":      file.Type,
		"CreatedAt": file.CreatedAt,
		"Download":  file.Download,
		"Permalink": file.Permalink,
		"App":       meta.App,
		"Title":     meta.Title,
		"Source":    meta.URL,
		"Desc":      meta.Desc,
		"HasMeta":   file.Meta != nil,

		"isVideo": func() bool {
			return file.IsVideo()
		},

		// Case-insensitive string helpers. The builtin contains, startsWith and
		// endsWith operators stay available for exact matching.
		"includes": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
	}
}
