//go:build !js

// Package gles binds graphics.GL to the OpenGL ES 3.0 entry points resolved by
// go-gl. A GLES context must be current before calling New.
package gles

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/richinsley/goflower/graphics"
)

var glInitOnce sync.Once

// Binding implements graphics.GL on top of github.com/go-gl/gl/v3.1/gles2.
type Binding struct{}

var _ graphics.GL = (*Binding)(nil)

// New resolves the GLES function table for the current context.
func New() (*Binding, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL ES: %w", initErr)
	}
	return &Binding{}, nil
}

func (b *Binding) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (b *Binding) CreateShader(shaderType uint32) uint32 {
	return gl.CreateShader(shaderType)
}

func (b *Binding) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (b *Binding) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (b *Binding) GetShaderiv(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (b *Binding) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (b *Binding) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (b *Binding) CreateProgram() uint32 { return gl.CreateProgram() }

func (b *Binding) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (b *Binding) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (b *Binding) GetProgramiv(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (b *Binding) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (b *Binding) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (b *Binding) UseProgram(program uint32) { gl.UseProgram(program) }

func (b *Binding) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (b *Binding) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (b *Binding) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (b *Binding) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (b *Binding) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (b *Binding) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (b *Binding) BufferData(target uint32, data []float32, usage uint32) {
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (b *Binding) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (b *Binding) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (b *Binding) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (b *Binding) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (b *Binding) ClearColor(r, g, bl, a float32) { gl.ClearColor(r, g, bl, a) }

func (b *Binding) Clear(mask uint32) { gl.Clear(mask) }

func (b *Binding) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (b *Binding) ReadPixel(x, y int32) [4]uint8 {
	var px [4]uint8
	gl.ReadPixels(x, y, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}
