package graphics

// GL enum values shared by every binding. They are the values defined by the
// OpenGL ES 3.0 and WebGL 2.0 headers.
const (
	FALSE = 0
	TRUE  = 1

	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84

	ARRAY_BUFFER = 0x8892
	STATIC_DRAW  = 0x88E4
	FLOAT        = 0x1406
	TRIANGLES    = 0x0004

	COLOR_BUFFER_BIT = 0x00004000

	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	SHADING_LANGUAGE_VERSION = 0x8B8C
)

// GL is the subset of the OpenGL ES 3.0 / WebGL 2.0 function table the
// renderer uses. Bindings translate Go values to whatever the host API expects
// (pointers for cgo, typed arrays and JS objects for WebGL).
type GL interface {
	GetString(name uint32) string

	CreateShader(shaderType uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	GetAttribLocation(program uint32, name string) int32
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []float32, usage uint32)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer takes the attribute offset in bytes.
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawArrays(mode uint32, first, count int32)
	// ReadPixel returns the RGBA8 value of a single framebuffer pixel.
	ReadPixel(x, y int32) [4]uint8
}
