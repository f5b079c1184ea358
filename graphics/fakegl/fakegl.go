// Package fakegl provides a recording graphics.GL for tests. It keeps enough
// state to answer the queries the renderer makes and logs every call by name.
package fakegl

import (
	"fmt"
	"strings"

	"github.com/richinsley/goflower/graphics"
)

// AttribPointer captures one VertexAttribPointer call.
type AttribPointer struct {
	Index      uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     uint32
	VAO        uint32
}

// Shader is the fake's view of a shader object.
type Shader struct {
	Type     uint32
	Source   string
	Compiled bool
	Deleted  bool
}

// Program is the fake's view of a program object.
type Program struct {
	Attached []uint32
	Linked   bool
	Deleted  bool
}

// GL records calls and simulates object lifetimes.
type GL struct {
	// FailCompile makes CompileShader fail for shaders whose source contains
	// the given marker. The info log is CompileLog.
	FailCompile string
	CompileLog  string
	// FailLink makes LinkProgram fail with LinkLog.
	FailLink bool
	LinkLog  string
	// Pixel answers ReadPixel; nil reads the current clear color.
	Pixel func(x, y int32) [4]uint8

	Calls []string

	Shaders   map[uint32]*Shader
	Programs  map[uint32]*Program
	Buffers   map[uint32][]float32
	VAOs      map[uint32]bool
	Enabled   map[uint32]bool
	Pointers  []AttribPointer
	Usage     map[uint32]uint32
	Draws     int
	LastDraw  [3]int32
	ClearRGBA [4]float32
	Clears    int

	BoundVAO     uint32
	BoundBuffer  uint32
	BoundProgram uint32

	next uint32
}

var _ graphics.GL = (*GL)(nil)

// New returns an empty fake.
func New() *GL {
	return &GL{
		Shaders:  make(map[uint32]*Shader),
		Programs: make(map[uint32]*Program),
		Buffers:  make(map[uint32][]float32),
		VAOs:     make(map[uint32]bool),
		Enabled:  make(map[uint32]bool),
		Usage:    make(map[uint32]uint32),
		next:     1,
	}
}

func (g *GL) record(format string, args ...any) {
	g.Calls = append(g.Calls, fmt.Sprintf(format, args...))
}

func (g *GL) id() uint32 {
	id := g.next
	g.next++
	return id
}

// CallNames returns the recorded call names without arguments.
func (g *GL) CallNames() []string {
	names := make([]string, len(g.Calls))
	for i, c := range g.Calls {
		name, _, _ := strings.Cut(c, "(")
		names[i] = name
	}
	return names
}

func (g *GL) GetString(name uint32) string {
	g.record("GetString(%#x)", name)
	switch name {
	case graphics.VERSION:
		return "OpenGL ES 3.0 fakegl"
	case graphics.RENDERER:
		return "fakegl"
	case graphics.VENDOR:
		return "goflower"
	case graphics.SHADING_LANGUAGE_VERSION:
		return "OpenGL ES GLSL ES 3.00"
	}
	return ""
}

func (g *GL) CreateShader(shaderType uint32) uint32 {
	id := g.id()
	g.Shaders[id] = &Shader{Type: shaderType}
	g.record("CreateShader(%#x)", shaderType)
	return id
}

func (g *GL) ShaderSource(shader uint32, source string) {
	g.record("ShaderSource(%d)", shader)
	if s, ok := g.Shaders[shader]; ok {
		s.Source = source
	}
}

func (g *GL) CompileShader(shader uint32) {
	g.record("CompileShader(%d)", shader)
	s, ok := g.Shaders[shader]
	if !ok {
		return
	}
	s.Compiled = g.FailCompile == "" || !strings.Contains(s.Source, g.FailCompile)
}

func (g *GL) GetShaderiv(shader uint32, pname uint32) int32 {
	g.record("GetShaderiv(%d, %#x)", shader, pname)
	s, ok := g.Shaders[shader]
	if !ok {
		return 0
	}
	switch pname {
	case graphics.COMPILE_STATUS:
		if s.Compiled {
			return graphics.TRUE
		}
		return graphics.FALSE
	case graphics.INFO_LOG_LENGTH:
		if s.Compiled {
			return 0
		}
		return int32(len(g.CompileLog) + 1)
	}
	return 0
}

func (g *GL) GetShaderInfoLog(shader uint32) string {
	g.record("GetShaderInfoLog(%d)", shader)
	if s, ok := g.Shaders[shader]; ok && !s.Compiled {
		return g.CompileLog
	}
	return ""
}

func (g *GL) DeleteShader(shader uint32) {
	g.record("DeleteShader(%d)", shader)
	if s, ok := g.Shaders[shader]; ok {
		s.Deleted = true
	}
}

func (g *GL) CreateProgram() uint32 {
	id := g.id()
	g.Programs[id] = &Program{}
	g.record("CreateProgram()")
	return id
}

func (g *GL) AttachShader(program, shader uint32) {
	g.record("AttachShader(%d, %d)", program, shader)
	if p, ok := g.Programs[program]; ok {
		p.Attached = append(p.Attached, shader)
	}
}

func (g *GL) LinkProgram(program uint32) {
	g.record("LinkProgram(%d)", program)
	p, ok := g.Programs[program]
	if !ok {
		return
	}
	p.Linked = !g.FailLink
}

func (g *GL) GetProgramiv(program uint32, pname uint32) int32 {
	g.record("GetProgramiv(%d, %#x)", program, pname)
	p, ok := g.Programs[program]
	if !ok {
		return 0
	}
	switch pname {
	case graphics.LINK_STATUS:
		if p.Linked {
			return graphics.TRUE
		}
		return graphics.FALSE
	case graphics.INFO_LOG_LENGTH:
		if p.Linked {
			return 0
		}
		return int32(len(g.LinkLog) + 1)
	}
	return 0
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	g.record("GetProgramInfoLog(%d)", program)
	if p, ok := g.Programs[program]; ok && !p.Linked {
		return g.LinkLog
	}
	return ""
}

func (g *GL) GetAttribLocation(program uint32, name string) int32 {
	g.record("GetAttribLocation(%d, %s)", program, name)
	switch name {
	case "position":
		return 0
	case "aColor":
		return 1
	}
	return -1
}

func (g *GL) UseProgram(program uint32) {
	g.record("UseProgram(%d)", program)
	g.BoundProgram = program
}

func (g *GL) DeleteProgram(program uint32) {
	g.record("DeleteProgram(%d)", program)
	if p, ok := g.Programs[program]; ok {
		p.Deleted = true
	}
}

func (g *GL) GenVertexArray() uint32 {
	id := g.id()
	g.VAOs[id] = true
	g.record("GenVertexArray()")
	return id
}

func (g *GL) BindVertexArray(vao uint32) {
	g.record("BindVertexArray(%d)", vao)
	g.BoundVAO = vao
}

func (g *GL) DeleteVertexArray(vao uint32) {
	g.record("DeleteVertexArray(%d)", vao)
	delete(g.VAOs, vao)
}

func (g *GL) GenBuffer() uint32 {
	id := g.id()
	g.Buffers[id] = nil
	g.record("GenBuffer()")
	return id
}

func (g *GL) BindBuffer(target, buffer uint32) {
	g.record("BindBuffer(%#x, %d)", target, buffer)
	g.BoundBuffer = buffer
}

func (g *GL) BufferData(target uint32, data []float32, usage uint32) {
	g.record("BufferData(%#x, %d, %#x)", target, len(data), usage)
	g.Buffers[g.BoundBuffer] = append([]float32(nil), data...)
	g.Usage[g.BoundBuffer] = usage
}

func (g *GL) DeleteBuffer(buffer uint32) {
	g.record("DeleteBuffer(%d)", buffer)
	delete(g.Buffers, buffer)
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.record("EnableVertexAttribArray(%d)", index)
	g.Enabled[index] = true
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	g.record("VertexAttribPointer(%d, %d, %#x, %t, %d, %d)", index, size, xtype, normalized, stride, offset)
	g.Pointers = append(g.Pointers, AttribPointer{
		Index:      index,
		Size:       size,
		Type:       xtype,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
		Buffer:     g.BoundBuffer,
		VAO:        g.BoundVAO,
	})
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.record("ClearColor(%g, %g, %g, %g)", r, gr, b, a)
	g.ClearRGBA = [4]float32{r, gr, b, a}
}

func (g *GL) Clear(mask uint32) {
	g.record("Clear(%#x)", mask)
	g.Clears++
}

func (g *GL) DrawArrays(mode uint32, first, count int32) {
	g.record("DrawArrays(%#x, %d, %d)", mode, first, count)
	g.Draws++
	g.LastDraw = [3]int32{int32(mode), first, count}
}

func (g *GL) ReadPixel(x, y int32) [4]uint8 {
	g.record("ReadPixel(%d, %d)", x, y)
	if g.Pixel != nil {
		return g.Pixel(x, y)
	}
	var px [4]uint8
	for i, c := range g.ClearRGBA {
		px[i] = uint8(c*255 + 0.5)
	}
	return px
}
