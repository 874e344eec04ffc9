package domain

import "io"

// CompileRequest describes one toolchain invocation.
type CompileRequest struct {
	// Root is the project folder the toolchain runs in.
	Root string
	// OutputFolder receives compiled classes. It is relative to Root.
	OutputFolder string
	// Sources are the absolute paths of the units to compile.
	Sources       []string
	Classpath     Classpath
	JavaVersion   string
	BootClasspath string
	MaxErrors     int
	MaxWarnings   int
	Warnings      WarningsMode
	// Output receives the toolchain output while it runs. It may be nil.
	Output io.Writer
}

// CompileResult is the outcome of a toolchain invocation that could be started.
type CompileResult struct {
	ExitCode int
	// Output is the combined stdout and stderr of the toolchain.
	Output string
}
