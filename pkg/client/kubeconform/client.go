// Package kubeconform validates Kubernetes manifests with the kubeconform validator.
package kubeconform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yannh/kubeconform/pkg/validator"
)

// DefaultSchemaLocation resolves schemas from the upstream kubernetes-json-schema
// mirrors bundled with kubeconform.
const DefaultSchemaLocation = "default"

// ErrValidationFailed is returned when one or more resources fail validation.
var ErrValidationFailed = errors.New("manifest validation failed")

// ValidationOptions configures validation behavior.
type ValidationOptions struct {
	// SkipKinds is a list of Kubernetes kinds to skip during validation (e.g. "Secret").
	SkipKinds []string
	// Strict rejects manifests with unknown fields.
	Strict bool
	// IgnoreMissingSchemas ignores resources with missing schemas.
	IgnoreMissingSchemas bool
	// KubernetesVersion selects the schema version to validate against ("master" default).
	KubernetesVersion string
}

// Client validates manifest files.
type Client struct {
	schemaLocations []string
}

// NewClient creates a client using the default schema location.
func NewClient() *Client {
	return &Client{schemaLocations: []string{DefaultSchemaLocation}}
}

// NewClientWithSchemaLocations creates a client resolving schemas from the given
// locations (paths or URL templates, tried in order).
func NewClientWithSchemaLocations(locations ...string) *Client {
	return &Client{schemaLocations: locations}
}

// ValidateFile validates a single manifest file.
// All individually invalid resources are reported in one error.
func (c *Client) ValidateFile(filePath string, opts *ValidationOptions) error {
	if opts == nil {
		opts = &ValidationOptions{}
	}

	v, err := c.newValidator(opts)
	if err != nil {
		return err
	}

	//nolint:gosec // G304: validating user-named manifest files is the point.
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	var failures []string

	for _, res := range v.Validate(filePath, file) {
		switch res.Status {
		case validator.Valid, validator.Skipped, validator.Empty:
			continue
		case validator.Invalid, validator.Error:
			failures = append(failures, res.Err.Error())
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrValidationFailed, filePath, strings.Join(failures, "; "))
	}

	return nil
}

// ValidateDirectory validates every YAML file under dirPath.
func (c *Client) ValidateDirectory(dirPath string, opts *ValidationOptions) error {
	files, err := FindYAMLFiles(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		err = c.ValidateFile(file, opts)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindYAMLFiles returns all YAML files under dirPath, sorted by walk order.
func FindYAMLFiles(dirPath string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dirPath, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			// Hidden directories (.git in manifest repos) hold no manifests.
			if strings.HasPrefix(entry.Name(), ".") && path != dirPath {
				return filepath.SkipDir
			}

			return nil
		}

		if isYAMLFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dirPath, err)
	}

	return files, nil
}

func (c *Client) newValidator(opts *ValidationOptions) (validator.Validator, error) {
	skipKinds := make(map[string]struct{}, len(opts.SkipKinds))
	for _, kind := range opts.SkipKinds {
		skipKinds[kind] = struct{}{}
	}

	v, err := validator.New(c.schemaLocations, validator.Opts{
		Strict:               opts.Strict,
		IgnoreMissingSchemas: opts.IgnoreMissingSchemas,
		SkipKinds:            skipKinds,
		KubernetesVersion:    opts.KubernetesVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	return v, nil
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	return ext == ".yaml" || ext == ".yml"
}
