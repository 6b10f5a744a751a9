package cluster

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"

	"scaling_probe/pkg/utils"
)

type PodLocator interface {
	FirstRunningPod(ctx context.Context, namespace, selector string) (string, error)
}

type ExecutorFactory func(config *rest.Config, method string, url *url.URL) (remotecommand.Executor, error)

// ExecRelay runs inline scripts inside the first running pod that matches
// the selector, like `kubectl exec <pod> -- python3 -c <script>`. The pod is
// looked up on every call so a rescheduled worker is picked up.
type ExecRelay struct {
	restConfig *rest.Config
	restClient rest.Interface
	locator    PodLocator

	Namespace   string
	Selector    string
	Container   string
	Interpreter string

	newExecutor ExecutorFactory

	mutex   sync.Mutex
	lastPod string
}

func NewExecRelay(restConfig *rest.Config, restClient rest.Interface, locator PodLocator, namespace, selector, container string) *ExecRelay {
	return &ExecRelay{
		restConfig:  restConfig,
		restClient:  restClient,
		locator:     locator,
		Namespace:   namespace,
		Selector:    selector,
		Container:   container,
		Interpreter: utils.RelayContainerCommand,
		newExecutor: remotecommand.NewSPDYExecutor,
	}
}

func (r *ExecRelay) Target() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.lastPod == "" {
		return fmt.Sprintf("%s/%s", r.Namespace, r.Selector)
	}

	return fmt.Sprintf("%s/%s", r.Namespace, r.lastPod)
}

func (r *ExecRelay) Run(ctx context.Context, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.QueueMutationTimeout)
	defer cancel()

	pod, err := r.locator.FirstRunningPod(ctx, r.Namespace, r.Selector)
	if err != nil {
		return "", err
	}

	r.mutex.Lock()
	r.lastPod = pod
	r.mutex.Unlock()

	req := r.restClient.Post().
		Resource("pods").
		Namespace(r.Namespace).
		Name(pod).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: r.Container,
			Command:   []string{r.Interpreter, "-c", script},
			Stdout:    true,
			Stderr:    true,
		}, scheme.ParameterCodec)

	executor, err := r.newExecutor(r.restConfig, "POST", req.URL())
	if err != nil {
		return "", fmt.Errorf("creating executor for %s/%s: %w", r.Namespace, pod, err)
	}

	var stdout, stderr bytes.Buffer
	err = executor.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return "", fmt.Errorf("exec in %s/%s failed: %w (stderr: %s)", r.Namespace, pod, err, strings.TrimSpace(stderr.String()))
	}

	if stderr.Len() > 0 {
		logrus.Debugf("exec in %s/%s wrote to stderr: %s", r.Namespace, pod, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
