package shader

import "github.com/richinsley/goflower/graphics"

// Stage identifies a programmable pipeline stage.
type Stage uint32

const (
	Vertex   Stage = graphics.VERTEX_SHADER
	Fragment Stage = graphics.FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return "unknown"
}

// Attribute locations fixed by the vertex stage's layout qualifiers.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 position;
layout (location = 1) in vec3 aColor;
out vec3 color;

void main() {
    gl_Position = vec4(position, 0.0, 1.0);
    color = aColor;
}
`

const fragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec3 color;
out vec4 out_color;

void main() {
    out_color = vec4(color, 1.0);
}
`

// VertexSource returns the ESSL 3.00 vertex stage. It is valid as-is for
// OpenGL ES 3.0 and WebGL 2.0 contexts.
func VertexSource() string {
	return vertexShaderSourceGLES
}

// FragmentSource returns the ESSL 3.00 fragment stage.
func FragmentSource() string {
	return fragmentShaderSourceGLES
}

// Source returns the embedded source for a stage.
func Source(stage Stage) string {
	if stage == Vertex {
		return VertexSource()
	}
	return FragmentSource()
}
