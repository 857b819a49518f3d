package model

// Path represents a file system path.
type Path string

// TestCase identifies one test of a compiled test binary.
type TestCase struct {
	Binary Path
	Name   string
}
