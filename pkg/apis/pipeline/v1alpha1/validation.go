package v1alpha1

import "fmt"

const (
	minPort = 1
	maxPort = 65535
)

// Validate checks the pipeline descriptor for configuration errors.
// It assumes defaults have been applied.
func (p *Pipeline) Validate() error {
	if p.APIVersion != "" && p.APIVersion != APIVersion {
		return fmt.Errorf("%w: %q", ErrUnsupportedAPIVersion, p.APIVersion)
	}

	if p.Kind != "" && p.Kind != Kind {
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, p.Kind)
	}

	if p.Spec.Source.URL == "" {
		return ErrMissingSourceURL
	}

	if p.Spec.Manifests.URL == "" {
		return ErrMissingManifestsURL
	}

	if p.Spec.Image.Repository == "" {
		return ErrMissingRepository
	}

	err := validatePort("spec.app.containerPort", p.Spec.App.ContainerPort)
	if err != nil {
		return err
	}

	err = validatePort("spec.app.servicePort", p.Spec.App.ServicePort)
	if err != nil {
		return err
	}

	if p.Spec.App.Replicas < 0 {
		return ErrInvalidReplicas
	}

	return nil
}

func validatePort(field string, port int32) error {
	if port < minPort || port > maxPort {
		return fmt.Errorf("%w: %s is %d", ErrInvalidPort, field, port)
	}

	return nil
}
