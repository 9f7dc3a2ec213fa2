package depgraph_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/exprflow/pkg/depgraph"
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/expr"
	"github.com/matzehuels/exprflow/pkg/syntax/gosrc"
)

func build(t *testing.T, src string) (*depgraph.Graph, error) {
	t.Helper()
	prog, err := gosrc.Parse("test.go", []byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return depgraph.Build(prog)
}

func mustBuild(t *testing.T, src string) *depgraph.Graph {
	t.Helper()
	g, err := build(t, src)
	if err != nil {
		t.Fatalf("Build(%q): %v", src, err)
	}
	return g
}

func TestBuildDiscoveryOrder(t *testing.T) {
	g := mustBuild(t, "a = 1\nb = a + 2\nc = b * a")

	want := []string{"1", "a", "2", "a + 2", "b", "b * a", "c"}
	if got := g.Table.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := g.Finals.Keys(); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Finals = %v, want [c]", got)
	}
}

func TestBuildIndependentAssignments(t *testing.T) {
	g := mustBuild(t, "a = 1\nb = 2")

	if got := g.Table.Keys(); !slices.Equal(got, []string{"1", "a", "2", "b"}) {
		t.Errorf("Keys() = %v", got)
	}
	if got := g.Finals.Keys(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Finals = %v, want [a b]", got)
	}
}

func TestBuildDeduplicatesSubexpressions(t *testing.T) {
	g := mustBuild(t, "y = x + x")

	if got := g.Table.Keys(); !slices.Equal(got, []string{"x", "x + x", "y"}) {
		t.Fatalf("Keys() = %v", got)
	}
	sum, _ := g.Table.Get("x + x")
	if !slices.Equal(sum.Deps, []string{"x", "x"}) {
		t.Errorf("x + x deps = %v, want [x x]", sum.Deps)
	}
	// x -> x + x and x + x -> y
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}
}

func TestBuildSharedSubexpressionAcrossStatements(t *testing.T) {
	g := mustBuild(t, "p = a * b\nq = a * b + 1\nr = p + q")

	n := 0
	for _, k := range g.Table.Keys() {
		if k == "a * b" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("a * b appears %d times, want 1", n)
	}
	if got := g.Dependents("a * b"); !slices.Equal(got, []string{"p", "a * b + 1"}) {
		t.Errorf("Dependents(a * b) = %v", got)
	}
	if got := g.Finals.Keys(); !slices.Equal(got, []string{"r"}) {
		t.Errorf("Finals = %v, want [r]", got)
	}
}

func TestBuildTerminalsHaveNoDeps(t *testing.T) {
	g := mustBuild(t, "z = f(x, 3) - -y")

	for _, c := range g.Table.All() {
		switch c.Key {
		case "x", "3", "y":
			if !c.IsTerminal() {
				t.Errorf("%s should be terminal, deps %v", c.Key, c.Deps)
			}
		case "f(x, 3)":
			if !slices.Equal(c.Deps, []string{"x", "3"}) {
				t.Errorf("f(x, 3) deps = %v", c.Deps)
			}
		case "-y":
			if !slices.Equal(c.Deps, []string{"y"}) {
				t.Errorf("-y deps = %v", c.Deps)
			}
		}
	}
	if g.Table.Has("f") {
		t.Error("callee name should not be registered")
	}
}

func TestBuildZeroArgCall(t *testing.T) {
	g := mustBuild(t, "t = now()")

	c, ok := g.Table.Get("now()")
	if !ok {
		t.Fatal("now() missing")
	}
	if !c.IsTerminal() {
		t.Errorf("now() deps = %v, want none", c.Deps)
	}
}

func TestBuildLiveness(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		finals []string
	}{
		{"single", "a = 1", []string{"a"}},
		{"consumed", "a = 1\nb = a", []string{"b"}},
		{"consumed by bare expression", "a = 1\nf(a)", nil},
		{"chain", "a = 1\nb = a + 1\nc = b + 1", []string{"c"}},
		{"fan out", "a = 1\nb = a\nc = a", []string{"b", "c"}},
		{"free variable read", "b = x\nc = b", []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBuild(t, tt.src)
			if got := g.Finals.Keys(); !slices.Equal(got, tt.finals) {
				t.Errorf("Finals = %v, want %v", got, tt.finals)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		sentinel error
		code     apperrors.Code
		contains string
	}{
		{"redefinition", "a = 1\na = 2", depgraph.ErrDuplicateDefinition, apperrors.ErrCodeDuplicateDefinition, `"a"`},
		{"defined after read", "b = a\na = 1", depgraph.ErrDuplicateDefinition, apperrors.ErrCodeDuplicateDefinition, `"a"`},
		{"self reference", "a = a + 1", depgraph.ErrDuplicateDefinition, apperrors.ErrCodeDuplicateDefinition, "own definition"},
		{"computed callee", "y = (f())()", depgraph.ErrUnsupportedConstruct, apperrors.ErrCodeUnsupportedConstruct, "callee"},
		{"selector callee", "y = m.f(x)", depgraph.ErrUnsupportedConstruct, apperrors.ErrCodeUnsupportedConstruct, "callee"},
		{"multiple targets", "a, b = 1, 2", depgraph.ErrUnsupportedConstruct, apperrors.ErrCodeUnsupportedConstruct, "exactly one target"},
		{"non-name target", "a[0] = 1", depgraph.ErrUnsupportedConstruct, apperrors.ErrCodeUnsupportedConstruct, "target"},
		{"selector", "y = a.b", depgraph.ErrUnsupportedConstruct, apperrors.ErrCodeUnsupportedConstruct, "selector"},
		{"control flow", "if a { b = 1 }", depgraph.ErrUnsupportedConstruct, apperrors.ErrCodeUnsupportedConstruct, "if statement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := build(t, tt.src)
			if err == nil {
				t.Fatalf("Build(%q) succeeded with %v", tt.src, g.Table.Keys())
			}
			if g != nil {
				t.Error("failed build returned a graph")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
			if !apperrors.Is(err, tt.code) {
				t.Errorf("code = %q, want %q", apperrors.GetCode(err), tt.code)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err, tt.contains)
			}
		})
	}
}

func TestBuildErrorHasLine(t *testing.T) {
	_, err := build(t, "a = 1\nb = 2\na = 3")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 3:1") {
		t.Errorf("error %q should point at line 3:1", err)
	}
}

func TestBuildEmptyProgram(t *testing.T) {
	for _, p := range []*expr.Program{nil, {}} {
		g, err := depgraph.Build(p)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if g.Table.Len() != 0 || g.Finals.Len() != 0 {
			t.Errorf("empty program produced %v / %v", g.Table.Keys(), g.Finals.Keys())
		}
	}
}

func TestBuildNilNode(t *testing.T) {
	_, err := depgraph.Build(&expr.Program{Stmts: []expr.Node{nil}})
	if !apperrors.Is(err, apperrors.ErrCodeInternal) {
		t.Errorf("Build(nil node) = %v, want internal error", err)
	}
}

func TestBuildDeterministic(t *testing.T) {
	src := "a = f(x, y)\nb = a * (x - y)\nc = g(b, a, -x)"
	first := mustBuild(t, src)
	for range 10 {
		g := mustBuild(t, src)
		if !slices.Equal(g.Table.Keys(), first.Table.Keys()) {
			t.Fatalf("key order changed: %v vs %v", g.Table.Keys(), first.Table.Keys())
		}
		for i, c := range g.Table.All() {
			want, _ := first.Table.Get(c.Key)
			if !slices.Equal(c.Deps, want.Deps) {
				t.Errorf("entry %d (%s) deps %v, want %v", i, c.Key, c.Deps, want.Deps)
			}
		}
	}
}

func TestNewGraph(t *testing.T) {
	g := depgraph.NewGraph([]depgraph.Computation{
		{Key: "x"},
		{Key: "y", Deps: []string{"x"}},
		{Key: "x", Deps: []string{"z"}},
	}, depgraph.NewFinals("y", "y"))

	if got := g.Table.Keys(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Keys() = %v", got)
	}
	x, _ := g.Table.Get("x")
	if !slices.Equal(x.Deps, []string{"z"}) {
		t.Errorf("overwrite lost: %v", x.Deps)
	}
	if i, _ := g.Table.Index("x"); i != 0 {
		t.Errorf("overwrite moved x to %d", i)
	}
	if g.Finals.Len() != 1 {
		t.Errorf("Finals = %v", g.Finals.Keys())
	}
}

func TestComputationString(t *testing.T) {
	tests := []struct {
		c    depgraph.Computation
		want string
	}{
		{depgraph.Computation{Key: "x"}, `<Computation "x" has no dependencies>`},
		{depgraph.Computation{Key: "x + y", Deps: []string{"x", "y"}}, `<Computation "x + y" depends on "x", "y">`},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFinalsNilSafe(t *testing.T) {
	var f *depgraph.Finals
	if f.Len() != 0 || f.Contains("a") || f.Keys() != nil {
		t.Error("nil Finals should be empty")
	}
}
