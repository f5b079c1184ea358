package renderer

import (
	"fmt"

	"github.com/richinsley/goflower/geometry"
	"github.com/richinsley/goflower/graphics"
	"github.com/richinsley/goflower/shader"
	"go.uber.org/zap"
)

// SourceTranslator rewrites an embedded ESSL source for the current context.
// It is nil on GLES and WebGL contexts, which take the sources unchanged.
type SourceTranslator interface {
	Translate(source string, stage shader.Stage) (string, error)
}

// Renderer draws the flower with one program and one vertex array.
type Renderer struct {
	gl         graphics.GL
	log        *zap.Logger
	translator SourceTranslator
	program    *shader.Program
	mesh       *geometry.Mesh
	width      int
	height     int
}

// NewRenderer prepares a renderer for a width x height framebuffer; nothing
// touches the GPU until InitScene.
func NewRenderer(gl graphics.GL, log *zap.Logger, translator SourceTranslator, width, height int) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		gl:         gl,
		log:        log,
		translator: translator,
		width:      width,
		height:     height,
	}
}

// InitScene builds the shader program and uploads the flower mesh. Compile and
// link failures come back as *shader.CompileError and *shader.LinkError.
func (r *Renderer) InitScene() error {
	r.log.Info("OpenGL context",
		zap.String("version", r.gl.GetString(graphics.VERSION)),
		zap.String("renderer", r.gl.GetString(graphics.RENDERER)),
		zap.String("glsl", r.gl.GetString(graphics.SHADING_LANGUAGE_VERSION)),
	)

	vertexSource, err := r.source(shader.Vertex)
	if err != nil {
		return err
	}
	fragmentSource, err := r.source(shader.Fragment)
	if err != nil {
		return err
	}

	r.program, err = shader.NewProgram(r.gl, vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	r.log.Info("Program linked", zap.Uint32("program", r.program.ID))

	r.gl.UseProgram(r.program.ID)
	r.mesh = geometry.Upload(r.gl)
	r.log.Info("Data uploaded",
		zap.Int("vertices", geometry.VertexCount),
		zap.Int("stride", geometry.Stride),
	)

	for _, attr := range geometry.Layout {
		fields := []zap.Field{
			zap.String("name", attr.Name),
			zap.Uint32("layout", attr.Location),
			zap.Int("offset", attr.Offset),
		}
		// translated sources rename their inputs, so only untranslated
		// programs can be queried by the original name
		if r.translator == nil {
			fields = append(fields, zap.Int32("reported", r.gl.GetAttribLocation(r.program.ID, attr.Name)))
		}
		r.log.Debug("attribute", fields...)
	}

	r.gl.Viewport(0, 0, int32(r.width), int32(r.height))
	return nil
}

func (r *Renderer) source(stage shader.Stage) (string, error) {
	src := shader.Source(stage)
	if r.translator == nil {
		return src, nil
	}
	out, err := r.translator.Translate(src, stage)
	if err != nil {
		return "", fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	return out, nil
}

// RenderFrame clears to the animation's color and draws the six triangles.
// Presenting the frame is up to the host.
func (r *Renderer) RenderFrame(anim Animation) {
	c := anim.ClearColor()
	r.gl.ClearColor(c[0], c[1], c[2], c[3])
	r.gl.Clear(graphics.COLOR_BUFFER_BIT)
	r.mesh.Draw(r.gl)
}

// Shutdown deletes the program, both shader stages, the vertex buffer and the
// vertex array. It is safe to call before InitScene has finished.
func (r *Renderer) Shutdown() {
	if r.program != nil {
		r.program.Delete(r.gl)
		r.program = nil
	}
	if r.mesh != nil {
		r.mesh.Delete(r.gl)
		r.mesh = nil
	}
	r.log.Info("GPU objects released")
}
