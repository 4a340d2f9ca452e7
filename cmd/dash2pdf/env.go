package main

import (
	"context"
	"io"
	"os"

	dash2pdf "github.com/alnah/go-dash2pdf"
)

// Exporter is the library surface the CLI drives.
type Exporter interface {
	Export(ctx context.Context, p dash2pdf.Params, creds dash2pdf.Credentials) (*dash2pdf.Result, error)
}

// Environment holds injectable dependencies for testability.
// Includes I/O, process environment, and the exporter factory.
type Environment struct {
	Stdout      io.Writer
	Stderr      io.Writer
	LookupEnv   func(key string) (string, bool)
	Environ     func() []string
	NewExporter func(opts ...dash2pdf.Option) Exporter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Environ:   os.Environ,
		NewExporter: func(opts ...dash2pdf.Option) Exporter {
			return dash2pdf.NewExporter(opts...)
		},
	}
}

// getenv returns the value of key, or "" when unset.
func (e *Environment) getenv(key string) string {
	v, _ := e.LookupEnv(key)
	return v
}
