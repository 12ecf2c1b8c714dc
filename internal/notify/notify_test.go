package notify

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/workout"
)

type fakeSNS struct {
	published []*sns.PublishInput
	err       error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published = append(f.published, in)
	return &sns.PublishOutput{}, nil
}

func TestSNSNotifierPublishesSummary(t *testing.T) {
	fake := &fakeSNS{}
	n := NewSNS(fake, "arn:aws:sns:us-east-1:123456789012:FitLogNotifications")

	sets := 3
	rec := workout.Record{
		ID:        "w1",
		Exercise:  "Squat",
		Sets:      &sets,
		CreatedAt: time.Date(2026, 2, 3, 7, 30, 0, 0, time.UTC),
	}
	if err := n.Publish(context.Background(), rec); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(fake.published) != 1 {
		t.Fatalf("expected one publish, got %d", len(fake.published))
	}
	in := fake.published[0]
	if aws.ToString(in.TopicArn) != "arn:aws:sns:us-east-1:123456789012:FitLogNotifications" {
		t.Fatalf("unexpected topic arn: %s", aws.ToString(in.TopicArn))
	}
	if aws.ToString(in.Subject) != "FitLog: Workout Logged - Squat" {
		t.Fatalf("unexpected subject: %s", aws.ToString(in.Subject))
	}
	msg := aws.ToString(in.Message)
	if !strings.Contains(msg, "Exercise: Squat") || !strings.Contains(msg, "Sets: 3") {
		t.Fatalf("summary missing details:\n%s", msg)
	}
}

func TestSNSNotifierReturnsPublishError(t *testing.T) {
	fake := &fakeSNS{err: errors.New("topic gone")}
	n := NewSNS(fake, "arn:aws:sns:us-east-1:123456789012:FitLogNotifications")

	err := n.Publish(context.Background(), workout.Record{ID: "w1", Exercise: "Squat"})
	if err == nil || !strings.Contains(err.Error(), "topic gone") {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestLogNotifierWritesSummary(t *testing.T) {
	var buf bytes.Buffer
	n := NewLog(log.New(&buf, "", 0))

	rec := workout.Record{Exercise: "Bench", CreatedAt: time.Now().UTC()}
	if err := n.Publish(context.Background(), rec); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !strings.Contains(buf.String(), "Exercise: Bench") {
		t.Fatalf("log output missing summary:\n%s", buf.String())
	}
}
