// Package marshaller converts models to and from their serialized form.
package marshaller

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Marshaller serializes and deserializes models of type T.
type Marshaller[T any] interface {
	Marshal(model T) (string, error)
	Unmarshal(data []byte, model T) error
}

// YAMLMarshaller marshals models to YAML. It honors json struct tags, which makes
// it suitable for Kubernetes API types.
type YAMLMarshaller[T any] struct{}

// NewYAMLMarshaller creates a YAMLMarshaller for type T.
func NewYAMLMarshaller[T any]() *YAMLMarshaller[T] {
	return &YAMLMarshaller[T]{}
}

// Marshal serializes model to YAML.
func (m *YAMLMarshaller[T]) Marshal(model T) (string, error) {
	out, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("marshal to yaml: %w", err)
	}

	return string(out), nil
}

// Unmarshal deserializes YAML data into model.
func (m *YAMLMarshaller[T]) Unmarshal(data []byte, model T) error {
	err := yaml.Unmarshal(data, model)
	if err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}

	return nil
}
