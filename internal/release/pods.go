package release

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// PodStatus summarizes one pod of the release.
type PodStatus struct {
	Name  string
	Phase corev1.PodPhase
	Ready bool
}

// PodStatuses lists the pods of the release in its namespace, for the deploy
// status output.
func PodStatuses(ctx context.Context, kubeconfig, namespace, releaseName string) ([]PodStatus, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, nil).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	pods, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: "app.kubernetes.io/instance=" + releaseName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	statuses := make([]PodStatus, 0, len(pods.Items))
	for _, pod := range pods.Items {
		statuses = append(statuses, PodStatus{
			Name:  pod.Name,
			Phase: pod.Status.Phase,
			Ready: podReady(pod),
		})
	}
	return statuses, nil
}

func podReady(pod corev1.Pod) bool {
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
