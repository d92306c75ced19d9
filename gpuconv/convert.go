package gpuconv

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/capcore/capcore/glfwcontext"
	"github.com/capcore/capcore/internal/corerr"
)

// NV12Frame holds the packed NV12 planes: Y (w*h bytes) followed by an
// interleaved UV plane (w*h/2 bytes), matching the layout the muxer's
// pixel format expects.
type NV12Frame struct {
	Width, Height int
	Y             []byte
	UV            []byte
}

// Converter owns a hidden GL context and the luma/chroma fragment programs
// used to pack an RGBA frame into NV12. It is not safe for concurrent use;
// export drives it from a single goroutine.
type Converter struct {
	ctx         *glfwcontext.Context
	lumaProg    uint32
	chromaProg  uint32
	srcTex      uint32
	lumaFBO     uint32
	lumaTex     uint32
	chromaFBO   uint32
	chromaTex   uint32
	vao         uint32
	texelSizeLL int32
	width       int
	height      int
}

// New attempts to stand up a headless GL context and compile the
// conversion programs. A non-nil error here is the "GPU converter init
// failure at start" case (§7): the caller logs and falls back to the CPU
// path, it is never fatal on its own.
func New(width, height int) (*Converter, error) {
	ctx, err := newContext(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", corerr.ErrGPUConversion, err)
	}

	c := &Converter{ctx: ctx, width: width, height: height}
	if err := c.build(); err != nil {
		ctx.Shutdown()
		return nil, fmt.Errorf("%w: %v", corerr.ErrGPUConversion, err)
	}
	return c, nil
}

func (c *Converter) build() error {
	lumaProg, err := newProgram(vertexShaderSource, lumaFragmentShaderSource)
	if err != nil {
		return err
	}
	chromaProg, err := newProgram(vertexShaderSource, chromaFragmentShaderSource)
	if err != nil {
		return err
	}
	c.lumaProg, c.chromaProg = lumaProg, chromaProg

	gl.GenTextures(1, &c.srcTex)
	gl.BindTexture(gl.TEXTURE_2D, c.srcTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	c.lumaFBO, c.lumaTex = makeTargetFBO(c.width, c.height)
	c.chromaFBO, c.chromaTex = makeTargetFBO(c.width/2, c.height/2)

	quad := []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	var vbo uint32
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)

	return nil
}

func makeTargetFBO(w, h int) (fbo, tex uint32) {
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RG8, int32(w), int32(h), 0, gl.RG, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return fbo, tex
}

// Convert packs a tightly-packed RGBA buffer (padding already stripped by
// the caller) into NV12. A failure here is mid-export and is always
// fatal — the caller never silently falls back once an export started.
func (c *Converter) Convert(rgba []byte) (NV12Frame, error) {
	if len(rgba) != c.width*c.height*4 {
		return NV12Frame{}, fmt.Errorf("%w: rgba buffer size %d does not match %dx%d", corerr.ErrGPUConversion, len(rgba), c.width, c.height)
	}

	gl.BindTexture(gl.TEXTURE_2D, c.srcTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(c.width), int32(c.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))

	gl.BindVertexArray(c.vao)

	y, err := c.renderPlane(c.lumaProg, c.lumaFBO, c.width, c.height, false)
	if err != nil {
		return NV12Frame{}, fmt.Errorf("%w: luma pass: %v", corerr.ErrGPUConversion, err)
	}
	uv, err := c.renderPlane(c.chromaProg, c.chromaFBO, c.width/2, c.height/2, true)
	if err != nil {
		return NV12Frame{}, fmt.Errorf("%w: chroma pass: %v", corerr.ErrGPUConversion, err)
	}

	return NV12Frame{Width: c.width, Height: c.height, Y: packLuma(y, c.width, c.height), UV: uv}, nil
}

func (c *Converter) renderPlane(prog, fbo uint32, w, h int, chroma bool) ([]byte, error) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.UseProgram(prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.srcTex)
	loc := gl.GetUniformLocation(prog, gl.Str("srcRGBA\x00"))
	gl.Uniform1i(loc, 0)
	if chroma {
		tsLoc := gl.GetUniformLocation(prog, gl.Str("texelSize\x00"))
		gl.Uniform2f(tsLoc, 1.0/float32(c.width), 1.0/float32(c.height))
	}
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	out := make([]byte, w*h*2)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RG, gl.UNSIGNED_BYTE, gl.Ptr(out))
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return out, nil
}

// packLuma drops the unused green channel the RG8 target carries for the
// luma plane, leaving a tightly packed w*h byte array.
func packLuma(rg []byte, w, h int) []byte {
	y := make([]byte, w*h)
	for i := 0; i < w*h; i++ {
		y[i] = rg[i*2]
	}
	return y
}

// Close releases the GL context. Safe to call once.
func (c *Converter) Close() {
	if c.ctx != nil {
		c.ctx.Shutdown()
	}
}

func newProgram(vertexSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		logStr := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(logStr))
		return 0, fmt.Errorf("link program: %s", logStr)
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		logStr := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(logStr))
		return 0, fmt.Errorf("compile shader: %s", logStr)
	}
	return shader, nil
}
