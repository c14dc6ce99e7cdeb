// Package argocd triggers and observes Argo CD application syncs.
//
// The reconciliation loop itself belongs to the external controller; this package
// only asks it to refresh and watches the resulting status.
package argocd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/util/retry"

	"github.com/sanketmote05/cicd-pipeline/pkg/svc/reconciler"
)

// Reconciler errors.
var (
	// ErrReconcileTimeout is returned when reconciliation times out.
	ErrReconcileTimeout = errors.New("timeout waiting for argocd application sync")
	// ErrSourceNotAvailable is returned when the application's source cannot be fetched,
	// typically because the expected image tag or manifest revision was never pushed.
	ErrSourceNotAvailable = errors.New("argocd application source is not available")
	// ErrOperationFailed is returned when an Argo CD sync operation fails.
	ErrOperationFailed = errors.New("argocd operation failed")
)

const (
	// DefaultNamespace is the namespace Argo CD applications live in.
	DefaultNamespace = "argocd"

	refreshAnnotationKey = "argocd.argoproj.io/refresh"
	hardRefreshValue     = "hard"
	normalRefreshValue   = "normal"

	pollInterval = 2 * time.Second
)

// Reconciler handles Argo CD reconciliation operations for one application.
type Reconciler struct {
	*reconciler.Base

	appName   string
	namespace string
}

// NewReconciler creates a reconciler for the named application from a kubeconfig.
func NewReconciler(kubeconfigPath, contextName, appName string) (*Reconciler, error) {
	base, err := reconciler.NewBase(kubeconfigPath, contextName)
	if err != nil {
		return nil, fmt.Errorf("create argocd reconciler: %w", err)
	}

	return &Reconciler{Base: base, appName: appName, namespace: DefaultNamespace}, nil
}

// NewReconcilerWithClient creates a Reconciler with a provided dynamic client (for testing).
func NewReconcilerWithClient(dynamicClient dynamic.Interface, appName string) *Reconciler {
	return &Reconciler{
		Base:      reconciler.NewBaseWithClient(dynamicClient),
		appName:   appName,
		namespace: DefaultNamespace,
	}
}

// ReconcileOptions configures the reconciliation behavior.
type ReconcileOptions struct {
	// Timeout for waiting for application sync.
	Timeout time.Duration
	// HardRefresh requests Argo CD to drop its manifest caches.
	HardRefresh bool
}

// Reconcile triggers a refresh and waits for the application to be synced and healthy.
func (r *Reconciler) Reconcile(ctx context.Context, opts ReconcileOptions) error {
	err := r.TriggerRefresh(ctx, opts.HardRefresh)
	if err != nil {
		return err
	}

	return r.WaitForApplicationReady(ctx, opts.Timeout)
}

// TriggerRefresh sets the Argo CD refresh annotation on the application.
// Retries on optimistic-concurrency conflicts, since the Application is also mutated
// by Argo CD's own controllers between GET and UPDATE.
func (r *Reconciler) TriggerRefresh(ctx context.Context, hardRefresh bool) error {
	appClient := r.applicationClient()

	return retry.RetryOnConflict(retry.DefaultRetry, func() error {
		app, err := appClient.Get(ctx, r.appName, metav1.GetOptions{})
		if err != nil {
			return fmt.Errorf("get argocd application: %w", err)
		}

		annotations := app.GetAnnotations()
		if annotations == nil {
			annotations = make(map[string]string)
		}

		if hardRefresh {
			annotations[refreshAnnotationKey] = hardRefreshValue
		} else {
			annotations[refreshAnnotationKey] = normalRefreshValue
		}

		app.SetAnnotations(annotations)

		_, err = appClient.Update(ctx, app, metav1.UpdateOptions{})
		if err != nil {
			return fmt.Errorf("trigger argocd refresh: %w", err)
		}

		return nil
	})
}

// WaitForApplicationReady polls the application until it is Synced and Healthy.
func (r *Reconciler) WaitForApplicationReady(ctx context.Context, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	appClient := r.applicationClient()

	for {
		select {
		case <-timeoutCtx.Done():
			return ErrReconcileTimeout
		case <-ticker.C:
			ready, err := r.checkApplicationStatus(timeoutCtx, appClient)
			if err != nil {
				return err
			}

			if ready {
				return nil
			}
		}
	}
}

// applicationClient returns a dynamic client for Argo CD Applications.
func (r *Reconciler) applicationClient() dynamic.ResourceInterface {
	gvr := schema.GroupVersionResource{
		Group:    "argoproj.io",
		Version:  "v1alpha1",
		Resource: "applications",
	}

	return r.Dynamic.Resource(gvr).Namespace(r.namespace)
}

// checkApplicationStatus checks if the application is synced and healthy.
func (r *Reconciler) checkApplicationStatus(
	ctx context.Context,
	client dynamic.ResourceInterface,
) (bool, error) {
	app, err := client.Get(ctx, r.appName, metav1.GetOptions{})
	if err != nil {
		return false, fmt.Errorf("get argocd application: %w", err)
	}

	err = checkOperationState(app)
	if err != nil {
		return false, err
	}

	err = checkConditions(app)
	if err != nil {
		return false, err
	}

	return isApplicationSynced(app), nil
}

// checkOperationState checks if there's an operation in progress or failed.
func checkOperationState(app *unstructured.Unstructured) error {
	operationState, found, _ := unstructured.NestedMap(app.Object, "status", "operationState")
	if !found {
		return nil // No operation in progress
	}

	phase, _, _ := unstructured.NestedString(operationState, "phase")
	message, _, _ := unstructured.NestedString(operationState, "message")

	if phase == "Error" || phase == "Failed" {
		if isSourceRelatedError(message) {
			return fmt.Errorf("%w: %s", ErrSourceNotAvailable, message)
		}

		return fmt.Errorf("%w: %s", ErrOperationFailed, message)
	}

	return nil
}

// checkConditions checks for error conditions.
func checkConditions(app *unstructured.Unstructured) error {
	conditions, found, _ := unstructured.NestedSlice(app.Object, "status", "conditions")
	if !found {
		return nil
	}

	for _, condition := range conditions {
		condMap, ok := condition.(map[string]any)
		if !ok {
			continue
		}

		condType, _, _ := unstructured.NestedString(condMap, "type")
		condMessage, _, _ := unstructured.NestedString(condMap, "message")

		if condType == "ComparisonError" || condType == "SyncError" {
			if isSourceRelatedError(condMessage) {
				return fmt.Errorf("%w: %s", ErrSourceNotAvailable, condMessage)
			}
		}
	}

	return nil
}

// isSourceRelatedError checks if the error message indicates a source availability issue.
func isSourceRelatedError(message string) bool {
	sourceProblemPatterns := []string{
		"manifest unknown",
		"not found",
		"does not exist",
		"failed to fetch",
		"repository not found",
		"unable to resolve",
		"connection refused",
	}

	lowerMessage := strings.ToLower(message)
	for _, pattern := range sourceProblemPatterns {
		if strings.Contains(lowerMessage, pattern) {
			return true
		}
	}

	return false
}

// isApplicationSynced checks if the application is synced and healthy.
func isApplicationSynced(app *unstructured.Unstructured) bool {
	syncStatus, found, _ := unstructured.NestedString(app.Object, "status", "sync", "status")
	if !found || syncStatus != "Synced" {
		return false
	}

	healthStatus, found, _ := unstructured.NestedString(app.Object, "status", "health", "status")
	if !found || healthStatus != "Healthy" {
		return false
	}

	return true
}
