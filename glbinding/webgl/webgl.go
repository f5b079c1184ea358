//go:build js && wasm

// Package webgl binds graphics.GL to a browser WebGL 2.0 context through
// syscall/js. WebGL hands out JS objects instead of integer names, so the
// binding keeps a handle table and gives the renderer plain uint32 ids.
package webgl

import (
	"encoding/binary"
	"fmt"
	"math"
	"syscall/js"

	"github.com/richinsley/goflower/graphics"
)

// Binding implements graphics.GL on a WebGL2RenderingContext.
type Binding struct {
	gl      js.Value
	handles map[uint32]js.Value
	next    uint32
}

var _ graphics.GL = (*Binding)(nil)

// New wraps a WebGL2RenderingContext obtained from canvas.getContext("webgl2").
func New(gl js.Value) (*Binding, error) {
	if gl.IsUndefined() || gl.IsNull() {
		return nil, fmt.Errorf("webgl2 context is required")
	}
	return &Binding{
		gl:      gl,
		handles: make(map[uint32]js.Value),
		next:    1,
	}, nil
}

func (b *Binding) put(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	id := b.next
	b.next++
	b.handles[id] = v
	return id
}

func (b *Binding) get(id uint32) js.Value {
	if v, ok := b.handles[id]; ok {
		return v
	}
	return js.Null()
}

func (b *Binding) drop(id uint32) js.Value {
	v := b.get(id)
	delete(b.handles, id)
	return v
}

func glBool(v js.Value) int32 {
	if v.Truthy() {
		return graphics.TRUE
	}
	return graphics.FALSE
}

func (b *Binding) GetString(name uint32) string {
	v := b.gl.Call("getParameter", name)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (b *Binding) CreateShader(shaderType uint32) uint32 {
	return b.put(b.gl.Call("createShader", shaderType))
}

func (b *Binding) ShaderSource(shader uint32, source string) {
	b.gl.Call("shaderSource", b.get(shader), source)
}

func (b *Binding) CompileShader(shader uint32) {
	b.gl.Call("compileShader", b.get(shader))
}

func (b *Binding) GetShaderiv(shader uint32, pname uint32) int32 {
	v := b.gl.Call("getShaderParameter", b.get(shader), pname)
	if v.Type() == js.TypeNumber {
		return int32(v.Int())
	}
	return glBool(v)
}

func (b *Binding) GetShaderInfoLog(shader uint32) string {
	v := b.gl.Call("getShaderInfoLog", b.get(shader))
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func (b *Binding) DeleteShader(shader uint32) {
	b.gl.Call("deleteShader", b.drop(shader))
}

func (b *Binding) CreateProgram() uint32 {
	return b.put(b.gl.Call("createProgram"))
}

func (b *Binding) AttachShader(program, shader uint32) {
	b.gl.Call("attachShader", b.get(program), b.get(shader))
}

func (b *Binding) LinkProgram(program uint32) {
	b.gl.Call("linkProgram", b.get(program))
}

func (b *Binding) GetProgramiv(program uint32, pname uint32) int32 {
	v := b.gl.Call("getProgramParameter", b.get(program), pname)
	if v.Type() == js.TypeNumber {
		return int32(v.Int())
	}
	return glBool(v)
}

func (b *Binding) GetProgramInfoLog(program uint32) string {
	v := b.gl.Call("getProgramInfoLog", b.get(program))
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func (b *Binding) GetAttribLocation(program uint32, name string) int32 {
	return int32(b.gl.Call("getAttribLocation", b.get(program), name).Int())
}

func (b *Binding) UseProgram(program uint32) {
	b.gl.Call("useProgram", b.get(program))
}

func (b *Binding) DeleteProgram(program uint32) {
	b.gl.Call("deleteProgram", b.drop(program))
}

func (b *Binding) GenVertexArray() uint32 {
	return b.put(b.gl.Call("createVertexArray"))
}

func (b *Binding) BindVertexArray(vao uint32) {
	b.gl.Call("bindVertexArray", b.get(vao))
}

func (b *Binding) DeleteVertexArray(vao uint32) {
	b.gl.Call("deleteVertexArray", b.drop(vao))
}

func (b *Binding) GenBuffer() uint32 {
	return b.put(b.gl.Call("createBuffer"))
}

func (b *Binding) BindBuffer(target, buffer uint32) {
	b.gl.Call("bindBuffer", target, b.get(buffer))
}

func (b *Binding) BufferData(target uint32, data []float32, usage uint32) {
	b.gl.Call("bufferData", target, float32Array(data), usage)
}

func (b *Binding) DeleteBuffer(buffer uint32) {
	b.gl.Call("deleteBuffer", b.drop(buffer))
}

func (b *Binding) EnableVertexAttribArray(index uint32) {
	b.gl.Call("enableVertexAttribArray", index)
}

func (b *Binding) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	b.gl.Call("vertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (b *Binding) Viewport(x, y, width, height int32) {
	b.gl.Call("viewport", x, y, width, height)
}

func (b *Binding) ClearColor(r, g, bl, a float32) {
	b.gl.Call("clearColor", r, g, bl, a)
}

func (b *Binding) Clear(mask uint32) {
	b.gl.Call("clear", mask)
}

func (b *Binding) DrawArrays(mode uint32, first, count int32) {
	b.gl.Call("drawArrays", mode, first, count)
}

func (b *Binding) ReadPixel(x, y int32) [4]uint8 {
	var px [4]uint8
	dst := js.Global().Get("Uint8Array").New(4)
	b.gl.Call("readPixels", x, y, 1, 1, b.gl.Get("RGBA"), b.gl.Get("UNSIGNED_BYTE"), dst)
	js.CopyBytesToGo(px[:], dst)
	return px
}

// float32Array copies data into a new JS Float32Array.
func float32Array(data []float32) js.Value {
	raw := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	u8 := js.Global().Get("Uint8Array").New(len(raw))
	js.CopyBytesToJS(u8, raw)
	return js.Global().Get("Float32Array").New(u8.Get("buffer"))
}
