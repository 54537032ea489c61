package main

import (
	"io"
	"os"
	"time"

	resume2pdf "github.com/alnah/go-resume2pdf"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the converter factory.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...resume2pdf.Option) (Converter, error)
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...resume2pdf.Option) (Converter, error) {
			return resume2pdf.NewConverter(opts...)
		},
	}
}
