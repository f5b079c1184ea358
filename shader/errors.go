package shader

import "fmt"

// CompileError reports a shader stage that failed to compile. Log holds the
// driver's info log.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link. Log holds the driver's
// info log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}
