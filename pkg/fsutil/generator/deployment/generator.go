// Package deploymentgenerator generates the application Deployment manifest.
package deploymentgenerator

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/fsutil"
	yamlgenerator "github.com/sanketmote05/cicd-pipeline/pkg/fsutil/generator/yaml"
	"github.com/sanketmote05/cicd-pipeline/pkg/io/marshaller"
)

// Generator generates a Deployment YAML manifest.
type Generator struct {
	Marshaller marshaller.Marshaller[*appsv1.Deployment]
}

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{
		Marshaller: marshaller.NewYAMLMarshaller[*appsv1.Deployment](),
	}
}

// Generate creates a Deployment manifest and writes it to the specified output.
func (g *Generator) Generate(
	deployment *appsv1.Deployment,
	opts yamlgenerator.Options,
) (string, error) {
	deployment.APIVersion = "apps/v1"
	deployment.Kind = "Deployment"

	out, err := g.Marshaller.Marshal(deployment)
	if err != nil {
		return "", fmt.Errorf("marshal deployment: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.TryWriteFile(out, opts.Output, opts.Force)
		if err != nil {
			return "", fmt.Errorf("write deployment: %w", err)
		}

		return result, nil
	}

	return out, nil
}

// Build constructs the Deployment for an application. The image argument is the
// full reference the pipeline owns; the promote stage rewrites it on every run.
func Build(app v1alpha1.AppSpec, image string) *appsv1.Deployment {
	labels := map[string]string{"app": app.Name}
	replicas := app.Replicas

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:   app.Name,
			Labels: labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  app.Name,
							Image: image,
							Ports: []corev1.ContainerPort{
								{ContainerPort: app.ContainerPort},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{
										Path: "/",
										Port: intstr.FromInt32(app.ContainerPort),
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
