//go:build !js

// Package translator rewrites the embedded ESSL 3.00 sources for desktop core
// profile contexts using goshadertranslator.
package translator

import (
	"context"
	"fmt"

	"github.com/richinsley/goflower/shader"
	gst "github.com/richinsley/goshadertranslator"
)

// Translator converts WebGL2/ESSL 3.00 source into another GLSL dialect.
type Translator struct {
	xlate *gst.ShaderTranslator
}

// New starts a translator that targets GLSL 4.10 core.
func New(ctx context.Context) (*Translator, error) {
	t, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Translator{xlate: t}, nil
}

// Translate converts source for the given stage. Translation errors carry the
// translator's diagnostic and are reported as *shader.CompileError so callers
// handle them the same way as driver compile failures.
func (t *Translator) Translate(source string, stage shader.Stage) (string, error) {
	out, err := t.xlate.TranslateShader(source, stage.String(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", &shader.CompileError{Stage: stage, Log: err.Error()}
	}
	return out.Code, nil
}

// Check translates both embedded stages and reports the first failure.
func (t *Translator) Check() error {
	for _, stage := range []shader.Stage{shader.Vertex, shader.Fragment} {
		if _, err := t.Translate(shader.Source(stage), stage); err != nil {
			return err
		}
	}
	return nil
}
