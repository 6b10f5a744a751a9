package cluster

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"

	"scaling_probe/internal/core"
	"scaling_probe/pkg/utils"
)

const readyConditionType = "Ready"

var AutoscalerGVR = schema.GroupVersionResource{
	Group:    utils.AutoscalerGroup,
	Version:  utils.AutoscalerVersion,
	Resource: utils.AutoscalerResource,
}

// Observer reads worker replica and autoscaler state. All operations are read
// only and bounded by the cluster query timeout.
type Observer struct {
	kubeClient    kubernetes.Interface
	dynamicClient dynamic.Interface
	autoscalerGVR schema.GroupVersionResource
}

func NewObserver(kubeClient kubernetes.Interface, dynamicClient dynamic.Interface) *Observer {
	return &Observer{
		kubeClient:    kubeClient,
		dynamicClient: dynamicClient,
		autoscalerGVR: AutoscalerGVR,
	}
}

func (o *Observer) runningPods(ctx context.Context, namespace, selector string) ([]corev1.Pod, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.ClusterQueryTimeout)
	defer cancel()

	pods, err := o.kubeClient.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, classify(err, "list pods", fmt.Sprintf("%s/%s", namespace, selector))
	}

	running := make([]corev1.Pod, 0, len(pods.Items))
	for _, pod := range pods.Items {
		if pod.Status.Phase == corev1.PodRunning {
			running = append(running, pod)
		}
	}

	sort.Slice(running, func(i, j int) bool {
		return running[i].Name < running[j].Name
	})

	return running, nil
}

func (o *Observer) ReadRunningReplicas(ctx context.Context, namespace, selector string) core.Result[int] {
	pods, err := o.runningPods(ctx, namespace, selector)
	if err != nil {
		return core.Fail[int](err)
	}

	return core.Ok(len(pods))
}

// RunningReplicaCount returns 0 when the cluster cannot be queried.
func (o *Observer) RunningReplicaCount(ctx context.Context, namespace, selector string) int {
	return o.ReadRunningReplicas(ctx, namespace, selector).OrDefault(0, "list pods", namespace+"/"+selector)
}

// FirstRunningPod picks the pod the relay executes in.
func (o *Observer) FirstRunningPod(ctx context.Context, namespace, selector string) (string, error) {
	pods, err := o.runningPods(ctx, namespace, selector)
	if err != nil {
		return "", err
	}

	if len(pods) == 0 {
		return "", fmt.Errorf("%w: no running pod in %s matching %q", core.ErrNotFound, namespace, selector)
	}

	return pods[0].Name, nil
}

func (o *Observer) ReadAutoscalerStatus(ctx context.Context, namespace string) core.Result[core.AutoscalerStatus] {
	ctx, cancel := context.WithTimeout(ctx, utils.ClusterQueryTimeout)
	defer cancel()

	list, err := o.dynamicClient.Resource(o.autoscalerGVR).Namespace(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return core.Fail[core.AutoscalerStatus](classify(err, "list "+o.autoscalerGVR.Resource, namespace))
	}

	if len(list.Items) == 0 {
		return core.Fail[core.AutoscalerStatus](fmt.Errorf("%w: no %s in namespace %s", core.ErrNotFound, o.autoscalerGVR.Resource, namespace))
	}

	items := list.Items
	sort.Slice(items, func(i, j int) bool {
		return items[i].GetName() < items[j].GetName()
	})

	if len(items) > 1 {
		logrus.Warnf("Found %d %s in namespace %s, only %s is inspected", len(items), o.autoscalerGVR.Resource, namespace, items[0].GetName())
	}

	return core.Ok(parseAutoscaler(&items[0]))
}

// AutoscalerStatus reports Unknown readiness when nothing can be read.
func (o *Observer) AutoscalerStatus(ctx context.Context, namespace string) core.AutoscalerStatus {
	return o.ReadAutoscalerStatus(ctx, namespace).OrDefault(core.UnknownAutoscalerStatus(), "list "+o.autoscalerGVR.Resource, namespace)
}

func parseAutoscaler(obj *unstructured.Unstructured) core.AutoscalerStatus {
	status := core.AutoscalerStatus{
		Name:  obj.GetName(),
		Ready: core.ReadyUnknown,
	}

	triggers, found, err := unstructured.NestedSlice(obj.Object, "spec", "triggers")
	if err != nil {
		logrus.Debugf("Malformed triggers on %s - %v", obj.GetName(), err)
	} else if found {
		status.TriggerCount = len(triggers)
	}

	conditions, found, err := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if err != nil || !found {
		return status
	}

	for _, c := range conditions {
		condition, ok := c.(map[string]interface{})
		if !ok {
			continue
		}

		if conditionType, _ := condition["type"].(string); conditionType != readyConditionType {
			continue
		}

		conditionStatus, _ := condition["status"].(string)
		status.Ready = core.ParseReadyStatus(conditionStatus)
		break
	}

	return status
}

func classify(err error, operation, target string) error {
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("%w: %s %s: %w", core.ErrNotFound, operation, target, err)
	}

	return fmt.Errorf("%w: %s %s: %w", core.ErrConnectivity, operation, target, err)
}
