package shader

import (
	"strings"
	"testing"
)

func TestEmbeddedProgramsCarryEntryPoints(t *testing.T) {
	for _, s := range []Shader{TexturedQuad(), SolidColor()} {
		if s.Source() == "" {
			t.Fatalf("%s: embedded source is empty", s.Key())
		}
		for _, st := range []ShaderType{ShaderTypeVertex, ShaderTypeFragment} {
			ep := s.EntryPoint(st)
			if ep == "" {
				t.Errorf("%s: missing entry point for stage %d", s.Key(), st)
				continue
			}
			if !strings.Contains(s.Source(), "fn "+ep) {
				t.Errorf("%s: entry point %q not found in source", s.Key(), ep)
			}
		}
	}
}

func TestVertexLayoutStrides(t *testing.T) {
	if got := TexturedQuad().VertexLayouts()[0].ArrayStride; got != 16 {
		t.Errorf("textured quad stride = %d, want 16", got)
	}
	if got := SolidColor().VertexLayouts()[0].ArrayStride; got != 24 {
		t.Errorf("solid color stride = %d, want 24", got)
	}
}

func TestSourcesUsePixelToNDCTransform(t *testing.T) {
	// Both vertex stages must divide by the viewport uniform; the transform is
	// the renderer's single coordinate-space contract.
	for _, s := range []Shader{TexturedQuad(), SolidColor()} {
		if !strings.Contains(s.Source(), "viewport.size") {
			t.Errorf("%s: vertex stage does not reference the viewport uniform", s.Key())
		}
	}
}
