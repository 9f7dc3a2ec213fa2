// Package syntax selects a concrete-syntax front-end by language name.
//
// Two front-ends are registered:
//
//   - "go": Go-style statements, see [gosrc]
//   - "hcl": HCL attribute bodies, see [hclsrc]
//
// Both produce the same [expr.Program] shape, so the same source written in
// either language builds the same dependency graph.
//
// [gosrc]: github.com/matzehuels/exprflow/pkg/syntax/gosrc
// [hclsrc]: github.com/matzehuels/exprflow/pkg/syntax/hclsrc
// [expr.Program]: github.com/matzehuels/exprflow/pkg/expr.Program
package syntax

import (
	"path/filepath"
	"slices"
	"strings"

	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/expr"
	"github.com/matzehuels/exprflow/pkg/syntax/gosrc"
	"github.com/matzehuels/exprflow/pkg/syntax/hclsrc"
)

// DefaultLanguage is used when neither a language nor a known file
// extension is given.
const DefaultLanguage = gosrc.Language

// ParseFunc converts source text into a program.
type ParseFunc func(filename string, src []byte) (*expr.Program, error)

var parsers = map[string]ParseFunc{
	gosrc.Language:  gosrc.Parse,
	hclsrc.Language: hclsrc.Parse,
}

var extensions = map[string]string{
	".go":  gosrc.Language,
	".txt": gosrc.Language,
	".hcl": hclsrc.Language,
}

// Languages returns the registered language names, sorted.
func Languages() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Supported reports whether lang names a registered front-end.
func Supported(lang string) bool {
	_, ok := parsers[lang]
	return ok
}

// Detect returns the language for filename's extension, or
// [DefaultLanguage] when the extension is unknown.
func Detect(filename string) string {
	if lang, ok := extensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}
	return DefaultLanguage
}

// Parse parses src with the front-end registered for lang.
func Parse(lang, filename string, src []byte) (*expr.Program, error) {
	parse, ok := parsers[lang]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidLanguage,
			"unknown language %q (supported: %s)", lang, strings.Join(Languages(), ", "))
	}
	return parse(filename, src)
}
