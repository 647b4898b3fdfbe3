package gpu

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// LinkProgram compiles and links a vertex and fragment shader.
func LinkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindFragDataLocation(program, 0, gl.Str("outputColor\x00"))

	return program, link(program)
}

// LinkCompute compiles and links a compute shader.
func LinkCompute(source string) (uint32, error) {
	shader, err := compileShader(source, gl.COMPUTE_SHADER)
	if err != nil {
		return 0, fmt.Errorf("compute shader: %w", err)
	}
	defer gl.DeleteShader(shader)

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)

	return program, link(program)
}

func link(program uint32) error {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(program, l, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}

	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	source += "\x00"
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}
