// Package generator defines the interface implemented by the manifest generators.
package generator

// Generator is implemented by the typed manifest generators (deployment, service,
// ingress, kustomization). The Options type parameter lets each implementation
// define its own options structure.
type Generator[T any, Options any] interface {
	Generate(model T, opts Options) (string, error)
}
