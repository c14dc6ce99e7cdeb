// Package ingressgenerator generates the application Ingress manifest.
package ingressgenerator

import (
	"fmt"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/marshaller"
)

// Generator generates an Ingress YAML manifest.
type Generator struct {
	Marshaller marshaller.Marshaller[*networkingv1.Ingress]
}

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{
		Marshaller: marshaller.NewYAMLMarshaller[*networkingv1.Ingress](),
	}
}

// Generate creates an Ingress manifest and writes it to the specified output.
func (g *Generator) Generate(
	ingress *networkingv1.Ingress,
	opts yamlgenerator.Options,
) (string, error) {
	ingress.APIVersion = "networking.k8s.io/v1"
	ingress.Kind = "Ingress"

	out, err := g.Marshaller.Marshal(ingress)
	if err != nil {
		return "", fmt.Errorf("marshal ingress: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.TryWriteFile(out, opts.Output, opts.Force)
		if err != nil {
			return "", fmt.Errorf("write ingress: %w", err)
		}

		return result, nil
	}

	return out, nil
}

// Build constructs the Ingress routing the configured host to the Service.
func Build(app v1alpha1.AppSpec) *networkingv1.Ingress {
	pathTypePrefix := networkingv1.PathTypePrefix

	return &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:   app.Name,
			Labels: map[string]string{"app": app.Name},
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{
				{
					Host: app.IngressHost,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     "/",
									PathType: &pathTypePrefix,
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: app.Name,
											Port: networkingv1.ServiceBackendPort{
												Number: app.ServicePort,
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
