//go:build !(js && wasm)

package console

import (
	"fmt"
	"io"
	"os"
)

// Output receives console writes in non-WASM builds. Tests may swap it.
var Output io.Writer = os.Stderr

// Log writes its arguments to Output, space separated.
func Log(args ...any) {
	fmt.Fprintln(Output, args...)
}

// Warn writes its arguments to Output.
func Warn(args ...any) {
	fmt.Fprintln(Output, args...)
}

// Error writes its arguments to Output.
func Error(args ...any) {
	fmt.Fprintln(Output, args...)
}

// Debug writes its arguments to Output.
func Debug(args ...any) {
	fmt.Fprintln(Output, args...)
}
