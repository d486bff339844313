package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// DefaultNamespace is used when no CloudWatch namespace is configured.
const DefaultNamespace = "Storefront"

// ServiceDimension tags every data point with the emitting service.
const ServiceDimension = "Service"

type putMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsClient publishes storefront counters and latencies. It serves both the
// HTTP metrics middleware and the checkout business metrics.
type MetricsClient struct {
	api       putMetricDataAPI
	namespace string
	service   string
	enabled   bool
	now       func() time.Time
}

// NewMetricsClient creates a CloudWatch metrics client. A disabled client drops every data point.
func NewMetricsClient(cfg aws.Config, namespace, service string, enabled bool) *MetricsClient {
	return newMetricsClient(cloudwatch.NewFromConfig(cfg), namespace, service, enabled)
}

func newMetricsClient(api putMetricDataAPI, namespace, service string, enabled bool) *MetricsClient {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &MetricsClient{api: api, namespace: namespace, service: service, enabled: enabled, now: time.Now}
}

// IsEnabled is safe on a nil client.
func (m *MetricsClient) IsEnabled() bool {
	return m != nil && m.enabled
}

func (m *MetricsClient) RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error {
	return m.put(ctx, metricName, 1, types.StandardUnitCount, dimensions)
}

// RecordLatency records d in milliseconds.
func (m *MetricsClient) RecordLatency(ctx context.Context, metricName string, d time.Duration, dimensions map[string]string) error {
	return m.put(ctx, metricName, float64(d.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}

func (m *MetricsClient) put(ctx context.Context, metricName string, value float64, unit types.StandardUnit, dimensions map[string]string) error {
	if !m.IsEnabled() {
		return nil
	}

	datum := types.MetricDatum{
		MetricName: aws.String(metricName),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(m.now()),
		Dimensions: m.dimensions(dimensions),
	}
	if _, err := m.api.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: []types.MetricDatum{datum},
	}); err != nil {
		return fmt.Errorf("put metric %s: %w", metricName, err)
	}
	return nil
}

// dimensions adds the service tag and orders the result by name.
func (m *MetricsClient) dimensions(extra map[string]string) []types.Dimension {
	names := make([]string, 0, len(extra)+1)
	for k := range extra {
		if k != ServiceDimension {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	dims := make([]types.Dimension, 0, len(names)+1)
	if m.service != "" {
		dims = append(dims, types.Dimension{Name: aws.String(ServiceDimension), Value: aws.String(m.service)})
	}
	for _, k := range names {
		dims = append(dims, types.Dimension{Name: aws.String(k), Value: aws.String(extra[k])})
	}
	return dims
}
