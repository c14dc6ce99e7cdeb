// Package reconciler provides shared plumbing for GitOps reconciliation clients.
package reconciler

import (
	"fmt"

	"k8s.io/client-go/dynamic"

	"github.com/sanketmote05/cicd-pipeline/pkg/k8s"
)

// Base holds a dynamic Kubernetes client used to interact with the custom
// resources of a GitOps engine.
type Base struct {
	Dynamic        dynamic.Interface
	KubeconfigPath string
}

// NewBase creates a Base with a dynamic client built from the kubeconfig.
func NewBase(kubeconfigPath, contextName string) (*Base, error) {
	restConfig, err := k8s.BuildRESTConfig(kubeconfigPath, contextName)
	if err != nil {
		return nil, err
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	return &Base{
		Dynamic:        dynamicClient,
		KubeconfigPath: kubeconfigPath,
	}, nil
}

// NewBaseWithClient creates a Base with a provided dynamic client (for testing).
func NewBaseWithClient(dynamicClient dynamic.Interface) *Base {
	return &Base{Dynamic: dynamicClient}
}
