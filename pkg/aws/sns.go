package aws

import (
	"context"
	"encoding/json"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/yashrajoria/storefront/models"
)

type publishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes order events to one SNS topic.
type SNSPublisher struct {
	client   publishAPI
	topicArn string
}

func NewSNSPublisher(cfg sdkaws.Config, topicArn string) *SNSPublisher {
	return &SNSPublisher{client: sns.NewFromConfig(cfg), topicArn: topicArn}
}

// PublishOrderSubmitted sends event as JSON with an "event" message attribute
// so subscribers can filter on it.
func (s *SNSPublisher) PublishOrderSubmitted(ctx context.Context, event models.OrderSubmittedEvent) error {
	if s.topicArn == "" {
		return fmt.Errorf("empty topicArn")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: sdkaws.String(s.topicArn),
		Message:  sdkaws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(event.Event),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", s.topicArn, err)
	}
	return nil
}
