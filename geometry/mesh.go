package geometry

import "github.com/richinsley/goflower/graphics"

// Mesh owns the GPU objects holding the flower vertices.
type Mesh struct {
	VAO uint32
	VBO uint32
}

// Upload creates the vertex array and buffer, copies the vertex data once with
// a static usage hint and configures the attributes in Layout. Both objects
// are unbound before returning.
func Upload(gl graphics.GL) *Mesh {
	m := &Mesh{}
	m.VAO = gl.GenVertexArray()
	gl.BindVertexArray(m.VAO)

	m.VBO = gl.GenBuffer()
	gl.BindBuffer(graphics.ARRAY_BUFFER, m.VBO)
	gl.BufferData(graphics.ARRAY_BUFFER, Vertices(), graphics.STATIC_DRAW)

	for _, attr := range Layout {
		gl.EnableVertexAttribArray(attr.Location)
		gl.VertexAttribPointer(attr.Location, attr.Size, graphics.FLOAT, false, Stride, attr.Offset)
	}

	gl.BindBuffer(graphics.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

// Draw issues the single draw call for all six triangles.
func (m *Mesh) Draw(gl graphics.GL) {
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(graphics.TRIANGLES, 0, VertexCount)
}

// Delete releases the buffer and, when one was created, the vertex array.
func (m *Mesh) Delete(gl graphics.GL) {
	gl.DeleteBuffer(m.VBO)
	if m.VAO != 0 {
		gl.DeleteVertexArray(m.VAO)
	}
}
