package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront/models"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestMetricsClient(t *testing.T) {
	fake := &fakeCloudWatch{}
	m := newMetricsClient(fake, "", "storefront", true)

	require.NoError(t, m.RecordCount(context.Background(), "OrdersCreated", map[string]string{"PaymentMethod": "sbp", "DeliveryMethod": "pickup"}))
	require.NoError(t, m.RecordLatency(context.Background(), "OrderSubmitLatency", 250*time.Millisecond, nil))

	require.Len(t, fake.inputs, 2)
	assert.Equal(t, DefaultNamespace, aws.ToString(fake.inputs[0].Namespace))
	datum := fake.inputs[0].MetricData[0]
	assert.Equal(t, "OrdersCreated", aws.ToString(datum.MetricName))
	assert.Equal(t, types.StandardUnitCount, datum.Unit)
	require.Len(t, datum.Dimensions, 3)
	assert.Equal(t, ServiceDimension, aws.ToString(datum.Dimensions[0].Name))
	assert.Equal(t, "storefront", aws.ToString(datum.Dimensions[0].Value))
	assert.Equal(t, "DeliveryMethod", aws.ToString(datum.Dimensions[1].Name))
	assert.Equal(t, "pickup", aws.ToString(datum.Dimensions[1].Value))
	assert.Equal(t, "PaymentMethod", aws.ToString(datum.Dimensions[2].Name))

	latency := fake.inputs[1].MetricData[0]
	assert.Equal(t, float64(250), aws.ToFloat64(latency.Value))
	assert.Equal(t, types.StandardUnitMilliseconds, latency.Unit)
}

func TestMetricsClient_Disabled(t *testing.T) {
	fake := &fakeCloudWatch{}
	m := newMetricsClient(fake, "Custom", "", false)
	require.NoError(t, m.RecordCount(context.Background(), "x", nil))
	assert.Empty(t, fake.inputs)
	assert.False(t, m.IsEnabled())

	var nilClient *MetricsClient
	assert.False(t, nilClient.IsEnabled())
	assert.NoError(t, nilClient.RecordCount(context.Background(), "x", nil))
}

type fakeLogs struct {
	groupErr error
	events   []string
	tokens   []*string
	next     int
}

func (f *fakeLogs) CreateLogGroup(context.Context, *cloudwatchlogs.CreateLogGroupInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error) {
	return &cloudwatchlogs.CreateLogGroupOutput{}, f.groupErr
}

func (f *fakeLogs) PutRetentionPolicy(context.Context, *cloudwatchlogs.PutRetentionPolicyInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error) {
	return &cloudwatchlogs.PutRetentionPolicyOutput{}, nil
}

func (f *fakeLogs) CreateLogStream(context.Context, *cloudwatchlogs.CreateLogStreamInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error) {
	return &cloudwatchlogs.CreateLogStreamOutput{}, nil
}

func (f *fakeLogs) PutLogEvents(_ context.Context, in *cloudwatchlogs.PutLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error) {
	for _, e := range in.LogEvents {
		f.events = append(f.events, aws.ToString(e.Message))
	}
	f.tokens = append(f.tokens, in.SequenceToken)
	f.next++
	return &cloudwatchlogs.PutLogEventsOutput{NextSequenceToken: aws.String(string(rune('a' + f.next)))}, nil
}

func TestCloudWatchLogsClient_Write(t *testing.T) {
	fake := &fakeLogs{groupErr: &logtypes.ResourceAlreadyExistsException{}}
	c, err := newCloudWatchLogsClient(context.Background(), fake, "", "storefront")
	require.NoError(t, err)
	assert.Equal(t, DefaultLogGroup, c.logGroupName)

	n, err := c.Write([]byte(`{"msg":"one"}`))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	_, _ = c.Write([]byte(`{"msg":"two"}`))

	assert.Equal(t, []string{`{"msg":"one"}`, `{"msg":"two"}`}, fake.events)
	assert.Nil(t, fake.tokens[0])
	assert.Equal(t, "b", aws.ToString(fake.tokens[1]))
}

func TestCloudWatchLogsClient_GroupFailure(t *testing.T) {
	fake := &fakeLogs{groupErr: errors.New("access denied")}
	_, err := newCloudWatchLogsClient(context.Background(), fake, "/g", "storefront")
	assert.Error(t, err)
}

type fakeSecrets struct {
	calls int
	value *string
}

func (f *fakeSecrets) GetSecretValue(context.Context, *secretsmanager.GetSecretValueInput, ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestSecretsClient_Caches(t *testing.T) {
	fake := &fakeSecrets{value: aws.String("s3cr3t")}
	s := newSecretsClient(fake)

	for i := 0; i < 3; i++ {
		v, err := s.GetSecret(context.Background(), "storefront/SESSION_SECRET")
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", v)
	}
	assert.Equal(t, 1, fake.calls)
}

func TestSecretsClient_KeyValueSecret(t *testing.T) {
	fake := &fakeSecrets{value: aws.String(`{"SESSION_SECRET":"from-json","OTHER":"x"}`)}
	v, err := newSecretsClient(fake).GetSecret(context.Background(), "storefront/SESSION_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-json", v)

	_, err = newSecretsClient(fake).GetSecret(context.Background(), "storefront/MISSING")
	assert.Error(t, err)
}

func TestSecretsClient_NoString(t *testing.T) {
	_, err := newSecretsClient(&fakeSecrets{}).GetSecret(context.Background(), "binary")
	assert.Error(t, err)
}

type fakeSNS struct {
	input *sns.PublishInput
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	return &sns.PublishOutput{}, nil
}

func TestSNSPublisher(t *testing.T) {
	fake := &fakeSNS{}
	p := &SNSPublisher{client: fake, topicArn: "arn:aws:sns:eu-central-1:000000000000:orders"}

	err := p.PublishOrderSubmitted(context.Background(), models.OrderSubmittedEvent{
		Event:   models.EventOrderSubmitted,
		OrderID: "101",
		Total:   "41970",
	})
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "arn:aws:sns:eu-central-1:000000000000:orders", aws.ToString(fake.input.TopicArn))
	assert.Equal(t, models.EventOrderSubmitted, aws.ToString(fake.input.MessageAttributes["event"].StringValue))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(fake.input.Message)), &body))
	assert.Equal(t, "101", body["order_id"])
}

func TestSNSPublisher_EmptyTopic(t *testing.T) {
	p := &SNSPublisher{client: &fakeSNS{}}
	assert.Error(t, p.PublishOrderSubmitted(context.Background(), models.OrderSubmittedEvent{}))
}
