package shader

import (
	"strings"

	"github.com/richinsley/goflower/graphics"
)

// Program is a linked shader program together with the two stage objects it
// was built from. The stages stay alive until Delete.
type Program struct {
	ID       uint32
	Vertex   uint32
	Fragment uint32
}

// Compile creates a shader object for stage and compiles source into it.
// A non-success compile status is returned as a *CompileError.
func Compile(gl graphics.GL, source string, stage Stage) (uint32, error) {
	shader := gl.CreateShader(uint32(stage))
	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)

	if gl.GetShaderiv(shader, graphics.COMPILE_STATUS) == graphics.FALSE {
		return 0, &CompileError{Stage: stage, Log: diagnostic(gl.GetShaderInfoLog(shader))}
	}
	return shader, nil
}

// Link attaches both stages to a new program and links it.
// A non-success link status is returned as a *LinkError.
func Link(gl graphics.GL, vertexShader, fragmentShader uint32) (*Program, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	if gl.GetProgramiv(program, graphics.LINK_STATUS) == graphics.FALSE {
		return nil, &LinkError{Log: diagnostic(gl.GetProgramInfoLog(program))}
	}
	return &Program{ID: program, Vertex: vertexShader, Fragment: fragmentShader}, nil
}

// NewProgram compiles both stages and links them. Objects created before a
// failure are not released.
func NewProgram(gl graphics.GL, vertexSource, fragmentSource string) (*Program, error) {
	vs, err := Compile(gl, vertexSource, Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := Compile(gl, fragmentSource, Fragment)
	if err != nil {
		return nil, err
	}
	return Link(gl, vs, fs)
}

// Delete releases the program and then both stages.
func (p *Program) Delete(gl graphics.GL) {
	gl.DeleteProgram(p.ID)
	gl.DeleteShader(p.Fragment)
	gl.DeleteShader(p.Vertex)
}

// Some drivers report a failed status with an empty log.
func diagnostic(log string) string {
	log = strings.TrimSpace(log)
	if log == "" {
		return "no diagnostic reported by driver"
	}
	return log
}
