// Package v1alpha1 defines the v1alpha1 pipeline descriptor: the typed model behind
// pipeline.yaml, with constructors, defaulting, and validation.
package v1alpha1
