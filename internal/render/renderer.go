package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/rlester7/lenticular-viewer/internal/billboard"
	"github.com/rlester7/lenticular-viewer/internal/camera"
	"github.com/rlester7/lenticular-viewer/pkg/geom"
)

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uProjection * uView * uModel * vec4(aPosition, 1.0);
}
` + "\x00"

const fragmentShaderSource = `#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;

out vec4 FragColor;

void main() {
    vec3 normal = normalize(vNormal);
    vec3 lightDir = normalize(uLightDir);
    float diff = max(dot(normal, lightDir), 0.0);
    vec4 tex = texture(uTexture, vTexCoord);
    vec3 result = (uAmbient + diff * uDiffuse) * tex.rgb;
    FragColor = vec4(result, tex.a);
}
` + "\x00"

// Renderer draws a billboard into a Target with a fixed directional
// light. Each slat face carries its own texture, so the two face sets
// are drawn as separate batches.
type Renderer struct {
	program       uint32
	locModel      int32
	locView       int32
	locProjection int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32
	locTexture    int32
}

// NewRenderer compiles and links the billboard shader.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{}

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	r.program = gl.CreateProgram()
	gl.AttachShader(r.program, vertexShader)
	gl.AttachShader(r.program, fragmentShader)
	gl.LinkProgram(r.program)

	var status int32
	gl.GetProgramiv(r.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(r.program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(r.program, logLength, nil, gl.Str(log))
		return nil, fmt.Errorf("link failed: %s", log)
	}

	r.locModel = gl.GetUniformLocation(r.program, gl.Str("uModel\x00"))
	r.locView = gl.GetUniformLocation(r.program, gl.Str("uView\x00"))
	r.locProjection = gl.GetUniformLocation(r.program, gl.Str("uProjection\x00"))
	r.locLightDir = gl.GetUniformLocation(r.program, gl.Str("uLightDir\x00"))
	r.locAmbient = gl.GetUniformLocation(r.program, gl.Str("uAmbient\x00"))
	r.locDiffuse = gl.GetUniformLocation(r.program, gl.Str("uDiffuse\x00"))
	r.locTexture = gl.GetUniformLocation(r.program, gl.Str("uTexture\x00"))

	return r, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}

// Draw renders the board into target from the rig's viewpoint. The
// previous framebuffer binding and viewport are restored afterwards.
func (r *Renderer) Draw(target *Target, board *billboard.Board, rig *camera.Rig) {
	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	var prevViewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, target.fbo)
	gl.Viewport(0, 0, target.width, target.height)

	gl.ClearColor(0.15, 0.15, 0.2, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.UseProgram(r.program)

	aspect := float32(target.width) / float32(target.height)
	projection := geom.Perspective(0.785398, aspect, 0.01, 100.0) // 45 degrees FOV
	view := rig.ViewMatrix()
	model := geom.Identity()

	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())

	gl.Uniform3f(r.locLightDir, 0.3, 0.5, 1.0)
	gl.Uniform3f(r.locAmbient, 0.45, 0.45, 0.45)
	gl.Uniform3f(r.locDiffuse, 0.55, 0.55, 0.55)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.locTexture, 0)

	if board != nil {
		if n := board.Left.Bind(); n > 0 {
			gl.DrawArrays(gl.TRIANGLES, 0, n)
		}
		if n := board.Right.Bind(); n > 0 {
			gl.DrawArrays(gl.TRIANGLES, 0, n)
		}
	}

	gl.BindVertexArray(0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
	gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
}

// Destroy releases the shader program.
func (r *Renderer) Destroy() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
