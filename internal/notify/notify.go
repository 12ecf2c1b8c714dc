package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/workout"
)

// Notifier announces a newly persisted workout to subscribers. Publish
// failures are returned to the caller, who treats them as non-fatal:
// the workout is already durable by the time Publish runs.
type Notifier interface {
	Publish(ctx context.Context, rec workout.Record) error
}

type snsClient interface {
	Publish(ctx context.Context, in *sns.PublishInput, opts ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes workout summaries to an SNS topic for fan-out
// to subscribed endpoints (email, etc).
type SNSNotifier struct {
	client   snsClient
	topicARN string
}

func NewSNS(client snsClient, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN}
}

func (n *SNSNotifier) Publish(ctx context.Context, rec workout.Record) error {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String("FitLog: Workout Logged - " + rec.Exercise),
		Message:  aws.String(rec.Summary()),
	})
	if err != nil {
		return fmt.Errorf("publish workout %s: %w", rec.ID, err)
	}
	return nil
}

// LogNotifier writes summaries to a logger. Used by the dev server and
// by the Lambda when no topic is configured.
type LogNotifier struct {
	log *log.Logger
}

func NewLog(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.New(log.Writer(), "notify ", log.LstdFlags|log.LUTC)
	}
	return &LogNotifier{log: logger}
}

func (n *LogNotifier) Publish(_ context.Context, rec workout.Record) error {
	n.log.Printf("workout logged:\n%s", rec.Summary())
	return nil
}
