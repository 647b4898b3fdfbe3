// Package gpu implements the render passes with OpenGL 4.6.
//
// Every function in this package must be called on the thread that owns the
// current GL context.
package gpu

import (
	"context"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

func debugSeverity(severity uint32) (string, slog.Level) {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high", slog.LevelError
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium", slog.LevelWarn
	case gl.DEBUG_SEVERITY_LOW:
		return "low", slog.LevelInfo
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "notification", slog.LevelDebug
	}
	return "unknown", slog.LevelWarn
}

func debugSource(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "application"
	case gl.DEBUG_SOURCE_OTHER:
		return "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "windowSystem"
	}
	return "unknownSource"
}

func debugType(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		return "marker"
	case gl.DEBUG_TYPE_OTHER:
		return "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "performance"
	case gl.DEBUG_TYPE_POP_GROUP:
		return "popGroup"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "portability"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return "pushGroup"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefinedBehavior"
	}
	return "unknownType"
}

// EnableDebugOutput routes GL debug messages to logger.
func EnableDebugOutput(logger *slog.Logger) {
	gl.DebugMessageCallback(func(
		source,
		gltype,
		id,
		severity uint32,
		length int32,
		message string,
		user unsafe.Pointer,
	) {
		severityStr, level := debugSeverity(severity)
		logger.Log(context.Background(), level, message,
			"source", debugSource(source),
			"type", debugType(gltype),
			"severity", severityStr,
			"id", id,
		)
	}, nil)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
}
