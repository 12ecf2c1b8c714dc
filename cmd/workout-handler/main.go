package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/config"
	"github.com/rahulansharma682/fitlog-cloud-computing/internal/handler"
	"github.com/rahulansharma682/fitlog-cloud-computing/internal/notify"
	"github.com/rahulansharma682/fitlog-cloud-computing/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "workout-handler ", log.LstdFlags|log.LUTC)

	cfg, err := config.LoadLambda()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	// Cold start: build the AWS clients once, reuse them across warm
	// invocations.
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatalf("aws config: %v", err)
	}

	st := store.NewS3(s3.NewFromConfig(awsCfg), cfg.DataBucket, logger)

	var notifier notify.Notifier
	if cfg.TopicARN != "" {
		notifier = notify.NewSNS(sns.NewFromConfig(awsCfg), cfg.TopicARN)
	} else {
		logger.Printf("SNS_TOPIC_ARN not set, notifications disabled")
		notifier = notify.NewLog(logger)
	}

	h := handler.New(st, notifier, logger)
	lambda.Start(handler.Lambda(h))
}
