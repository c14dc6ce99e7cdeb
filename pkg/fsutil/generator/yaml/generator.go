// Package yamlgenerator provides a generic YAML generator for arbitrary models.
package yamlgenerator

import (
	"fmt"

	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/marshaller"
)

// Options controls where generated content is written.
type Options struct {
	// Output is the file path to write to. When empty the content is only returned.
	Output string
	// Force overwrites an existing file instead of skipping it.
	Force bool
}

// Generator generates YAML for any marshallable model.
type Generator[T any] struct {
	Marshaller marshaller.Marshaller[T]
}

// NewGenerator creates and returns a new Generator instance.
func NewGenerator[T any]() *Generator[T] {
	return &Generator[T]{
		Marshaller: marshaller.NewYAMLMarshaller[T](),
	}
}

// Generate marshals model to YAML and writes it to opts.Output when set.
func (g *Generator[T]) Generate(model T, opts Options) (string, error) {
	out, err := g.Marshaller.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("marshal model: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.TryWriteFile(out, opts.Output, opts.Force)
		if err != nil {
			return "", fmt.Errorf("write yaml: %w", err)
		}

		return result, nil
	}

	return out, nil
}
