package calltree

import (
	"strings"
	"testing"

	"github.com/glasspiral/glasspiral/pkg/trace"
)

func TestFromTraceNesting(t *testing.T) {
	steps := trace.Parse(strings.Join([]string{
		"CALL|main|||1|0",
		"DECL|x|1||2|1",
		"CALL|helper|||3|1",
		"ASSIGN|y|2||4|2",
		"RETURN|helper|||5|1",
		"ASSIGN|x|3||6|1",
		"RETURN|main|||7|0",
	}, "\n"))

	tree := FromTrace(steps)

	if len(tree.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(tree.Root.Children))
	}
	main := tree.Root.Children[0]
	if main.Name != "main" || main.StepIndex != 0 {
		t.Errorf("main node = %+v", main)
	}
	if main.Body != 2 {
		t.Errorf("main body = %d, want 2 (DECL + trailing ASSIGN)", main.Body)
	}
	if len(main.Children) != 1 {
		t.Fatalf("main children = %d, want 1", len(main.Children))
	}
	helper := main.Children[0]
	if helper.Name != "helper" || helper.Body != 1 {
		t.Errorf("helper node = %+v", helper)
	}
}

func TestFromTraceUnbalanced(t *testing.T) {
	// A stray RETURN must not pop past the root.
	steps := trace.Parse("RETURN|oops|||1|0\nCALL|main|||2|0")
	tree := FromTrace(steps)

	if len(tree.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(tree.Root.Children))
	}
	if tree.Root.Children[0].Name != "main" {
		t.Errorf("child = %q, want main", tree.Root.Children[0].Name)
	}
}

func TestFromTraceEmpty(t *testing.T) {
	tree := FromTrace(nil)
	if tree.Root == nil || len(tree.Root.Children) != 0 {
		t.Error("empty trace should yield a bare root")
	}
}

func TestToDOT(t *testing.T) {
	tree := FromTrace(trace.ExampleTrace())
	dot := ToDOT(tree, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("missing digraph header")
	}
	if !strings.Contains(dot, `"root" -> "call-0"`) {
		t.Error("missing edge from root to first call")
	}
	if !strings.Contains(dot, "dashed") {
		t.Error("root node should be dashed")
	}
	if strings.Contains(dot, "step:") {
		t.Error("detail lines should be off by default")
	}
}

func TestToDOTDetailed(t *testing.T) {
	tree := FromTrace(trace.ExampleTrace())
	dot := ToDOT(tree, Options{Detailed: true})

	if !strings.Contains(dot, "step: 0") {
		t.Error("detailed labels should include step index")
	}
	if !strings.Contains(dot, "body:") {
		t.Error("detailed labels should include body count")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	got := string(normalizeViewBox(svg))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`
	if got != want {
		t.Errorf("normalizeViewBox:\n got %s\nwant %s", got, want)
	}

	// SVG without a viewBox passes through unchanged.
	plain := []byte(`<svg>`)
	if string(normalizeViewBox(plain)) != `<svg>` {
		t.Error("missing viewBox should be left alone")
	}
}
