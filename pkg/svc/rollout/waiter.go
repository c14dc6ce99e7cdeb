// Package rollout waits for Kubernetes deployment rollouts to complete.
package rollout

import (
	"context"
	"errors"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/sanketmote05/cicd-pipeline/pkg/k8s"
)

// Waiter errors.
var (
	// ErrRolloutTimeout is returned when the rollout does not complete in time.
	ErrRolloutTimeout = errors.New("timeout waiting for deployment rollout")
	// ErrProgressDeadlineExceeded is returned when the deployment stops progressing.
	ErrProgressDeadlineExceeded = errors.New("deployment exceeded its progress deadline")
)

const pollInterval = 2 * time.Second

// Waiter watches deployments until their latest revision is fully rolled out.
type Waiter struct {
	clientset kubernetes.Interface
}

// NewWaiter creates a Waiter from a kubeconfig path and context name.
func NewWaiter(kubeconfigPath, contextName string) (*Waiter, error) {
	restConfig, err := k8s.BuildRESTConfig(kubeconfigPath, contextName)
	if err != nil {
		return nil, fmt.Errorf("build REST config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create kubernetes client: %w", err)
	}

	return &Waiter{clientset: clientset}, nil
}

// NewWaiterWithClientset creates a Waiter with a provided clientset (for testing).
func NewWaiterWithClientset(clientset kubernetes.Interface) *Waiter {
	return &Waiter{clientset: clientset}
}

// Wait blocks until the named deployment's latest revision is rolled out,
// the progress deadline is exceeded, or the timeout elapses.
func (w *Waiter) Wait(ctx context.Context, namespace, name string, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		done, err := w.check(timeoutCtx, namespace, name)
		if err != nil {
			return err
		}

		if done {
			return nil
		}

		select {
		case <-timeoutCtx.Done():
			return ErrRolloutTimeout
		case <-ticker.C:
		}
	}
}

// Status returns a human-readable summary of the deployment's rollout progress.
func (w *Waiter) Status(ctx context.Context, namespace, name string) (string, error) {
	deployment, err := w.clientset.AppsV1().Deployments(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("get deployment: %w", err)
	}

	if rolloutComplete(deployment) {
		return fmt.Sprintf("deployment %q successfully rolled out", name), nil
	}

	return fmt.Sprintf(
		"deployment %q rolling out: %d/%d updated, %d available",
		name,
		deployment.Status.UpdatedReplicas,
		desiredReplicas(deployment),
		deployment.Status.AvailableReplicas,
	), nil
}

func (w *Waiter) check(ctx context.Context, namespace, name string) (bool, error) {
	deployment, err := w.clientset.AppsV1().Deployments(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return false, fmt.Errorf("get deployment: %w", err)
	}

	if progressDeadlineExceeded(deployment) {
		return false, fmt.Errorf("%w: %s", ErrProgressDeadlineExceeded, name)
	}

	return rolloutComplete(deployment), nil
}

// rolloutComplete reports whether the latest revision is fully rolled out.
func rolloutComplete(deployment *appsv1.Deployment) bool {
	if deployment.Status.ObservedGeneration < deployment.Generation {
		return false
	}

	desired := desiredReplicas(deployment)

	return deployment.Status.UpdatedReplicas == desired &&
		deployment.Status.AvailableReplicas == desired &&
		deployment.Status.Replicas == desired
}

func progressDeadlineExceeded(deployment *appsv1.Deployment) bool {
	for _, condition := range deployment.Status.Conditions {
		if condition.Type == appsv1.DeploymentProgressing &&
			condition.Reason == "ProgressDeadlineExceeded" {
			return true
		}
	}

	return false
}

func desiredReplicas(deployment *appsv1.Deployment) int32 {
	if deployment.Spec.Replicas == nil {
		return 1
	}

	return *deployment.Spec.Replicas
}
