// Package servicegenerator generates the application Service manifest.
package servicegenerator

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/marshaller"
)

// Generator generates a Service YAML manifest.
type Generator struct {
	Marshaller marshaller.Marshaller[*corev1.Service]
}

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{
		Marshaller: marshaller.NewYAMLMarshaller[*corev1.Service](),
	}
}

// Generate creates a Service manifest and writes it to the specified output.
func (g *Generator) Generate(
	service *corev1.Service,
	opts yamlgenerator.Options,
) (string, error) {
	service.APIVersion = "v1"
	service.Kind = "Service"

	out, err := g.Marshaller.Marshal(service)
	if err != nil {
		return "", fmt.Errorf("marshal service: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.TryWriteFile(out, opts.Output, opts.Force)
		if err != nil {
			return "", fmt.Errorf("write service: %w", err)
		}

		return result, nil
	}

	return out, nil
}

// Build constructs the ClusterIP Service fronting the application pods.
func Build(app v1alpha1.AppSpec) *corev1.Service {
	labels := map[string]string{"app": app.Name}

	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:   app.Name,
			Labels: labels,
		},
		Spec: corev1.ServiceSpec{
			Selector: labels,
			Ports: []corev1.ServicePort{
				{
					Port:       app.ServicePort,
					TargetPort: intstr.FromInt32(app.ContainerPort),
				},
			},
		},
	}
}
