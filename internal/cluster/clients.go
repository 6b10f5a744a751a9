package cluster

import (
	"fmt"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"scaling_probe/internal/core"
)

type Clients struct {
	RestConfig *rest.Config
	Kube       kubernetes.Interface
	Dynamic    dynamic.Interface
}

// NewClients loads credentials the way kubectl does: an explicit kubeconfig
// path, then $KUBECONFIG and ~/.kube/config, then the in-cluster account.
func NewClients(kubeconfig string) (*Clients, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		loadingRules.ExplicitPath = kubeconfig
	}

	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: loading kubeconfig: %v", core.ErrConnectivity, err)
	}

	kubeClient, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: creating kubernetes client: %v", core.ErrConnectivity, err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: creating dynamic client: %v", core.ErrConnectivity, err)
	}

	return &Clients{
		RestConfig: restConfig,
		Kube:       kubeClient,
		Dynamic:    dynamicClient,
	}, nil
}
