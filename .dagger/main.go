// Skala CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/skala/internal/dagger"
)

// Skala is the main module for the Skala CI/CD pipeline
type Skala struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Skala CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Skala {
	return &Skala{
		Source: source,
	}
}

// goContainer returns a Debian Bookworm-based Go container with the Go
// module and build caches and the project source mounted.
//
// It is the shared foundation for tests, builds, and linting.
func (s *Skala) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-bookworm").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", s.Source)
}

// Test runs the skala unit tests via "go test"
func (s *Skala) Test(ctx context.Context) (string, error) {
	return s.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
