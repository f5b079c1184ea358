// Package geometry holds the flower mesh: six triangles fanned around the
// origin, each with its own color, stored as interleaved position/color floats.
package geometry

import "github.com/richinsley/goflower/shader"

const (
	PositionComponents = 2
	ColorComponents    = 3
	FloatsPerVertex    = PositionComponents + ColorComponents
	VertexCount        = 18
	TriangleCount      = VertexCount / 3
	floatSize          = 4

	// Stride is the distance in bytes between consecutive vertices.
	Stride = FloatsPerVertex * floatSize
	// PositionOffset and ColorOffset are byte offsets within a vertex.
	PositionOffset = 0
	ColorOffset    = PositionComponents * floatSize
)

var flowerVertices = [VertexCount * FloatsPerVertex]float32{
	0.1, 0.7, 0.1, 0.2, 0.3, 0.0, 0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.1, 0.2, 0.3,
	0.5, 0.4, 0.3, 0.2, 0.3, 0.0, 0.0, 0.3, 0.2, 0.3, 0.5, -0.4, 0.3, 0.2, 0.3,
	0.4, -0.5, 0.4, 0.2, 0.3, 0.0, 0.0, 0.4, 0.2, 0.3, 0.1, -0.7, 0.4, 0.2, 0.3,
	-0.1, -0.7, 0.5, 0.2, 0.3, 0.0, 0.0, 0.5, 0.2, 0.3, -0.4, -0.5, 0.5, 0.2, 0.3,
	-0.5, -0.4, 0.6, 0.2, 0.3, 0.0, 0.0, 0.6, 0.2, 0.3, -0.5, 0.4, 0.6, 0.2, 0.3,
	-0.4, 0.5, 0.7, 0.2, 0.3, 0.0, 0.0, 0.7, 0.2, 0.3, -0.1, 0.7, 0.7, 0.2, 0.3,
}

// Vertices returns a copy of the interleaved vertex data.
func Vertices() []float32 {
	v := flowerVertices
	return v[:]
}

// Attribute describes how one shader input reads from the vertex buffer.
type Attribute struct {
	Name     string
	Location uint32
	Size     int32
	Offset   int
}

// Layout is the attribute configuration matching the vertex stage's inputs.
var Layout = []Attribute{
	{Name: "position", Location: shader.PositionLocation, Size: PositionComponents, Offset: PositionOffset},
	{Name: "aColor", Location: shader.ColorLocation, Size: ColorComponents, Offset: ColorOffset},
}

// Triangle is one petal of the flower in normalized device coordinates.
type Triangle struct {
	Positions [3][2]float32
	Color     [3]float32
}

// Triangles decodes the vertex data into its six triangles. Every vertex of a
// triangle carries the same color.
func Triangles() []Triangle {
	tris := make([]Triangle, TriangleCount)
	for i := range tris {
		for v := 0; v < 3; v++ {
			base := (i*3 + v) * FloatsPerVertex
			tris[i].Positions[v] = [2]float32{flowerVertices[base], flowerVertices[base+1]}
			if v == 0 {
				copy(tris[i].Color[:], flowerVertices[base+PositionComponents:base+FloatsPerVertex])
			}
		}
	}
	return tris
}

// Centroid returns the triangle's center in normalized device coordinates.
func (t Triangle) Centroid() (float32, float32) {
	var x, y float32
	for _, p := range t.Positions {
		x += p[0]
		y += p[1]
	}
	return x / 3, y / 3
}

// PixelAt maps normalized device coordinates to a framebuffer pixel for a
// full-framebuffer viewport of the given size.
func PixelAt(x, y float32, width, height int) (int32, int32) {
	px := int32((x + 1) / 2 * float32(width))
	py := int32((y + 1) / 2 * float32(height))
	if px >= int32(width) {
		px = int32(width) - 1
	}
	if py >= int32(height) {
		py = int32(height) - 1
	}
	if px < 0 {
		px = 0
	}
	if py < 0 {
		py = 0
	}
	return px, py
}
