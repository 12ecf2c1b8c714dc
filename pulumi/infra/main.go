package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/route53"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/sns"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// FitLog stack: frontend website bucket, private data bucket, SNS
// notification topic, the workout handler Lambda with a public
// function URL, and Route 53 records tying it to the custom domain.
func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		cfg := config.New(ctx, "")
		domainName := cfg.Get("domainName")
		if domainName == "" {
			domainName = "rchemitiganti.com"
		}
		notificationEmail := cfg.Get("notificationEmail")

		// Frontend bucket. The bucket name must match the domain for
		// the Route 53 alias to resolve to the website endpoint.
		frontendBucket, err := s3.NewBucket(ctx, "fitlog-frontend", &s3.BucketArgs{
			Bucket: pulumi.String(domainName),
			Website: &s3.BucketWebsiteArgs{
				IndexDocument: pulumi.String("index.html"),
			},
			ForceDestroy: pulumi.Bool(true),
		})
		if err != nil {
			return err
		}

		frontendAccess, err := s3.NewBucketPublicAccessBlock(ctx, "fitlog-frontend-access", &s3.BucketPublicAccessBlockArgs{
			Bucket:                frontendBucket.ID(),
			BlockPublicAcls:       pulumi.Bool(false),
			BlockPublicPolicy:     pulumi.Bool(false),
			IgnorePublicAcls:      pulumi.Bool(false),
			RestrictPublicBuckets: pulumi.Bool(false),
		})
		if err != nil {
			return err
		}

		_, err = s3.NewBucketPolicy(ctx, "fitlog-frontend-policy", &s3.BucketPolicyArgs{
			Bucket: frontendBucket.ID(),
			Policy: frontendBucket.Arn.ApplyT(func(arn string) (string, error) {
				policy, err := json.Marshal(map[string]any{
					"Version": "2012-10-17",
					"Statement": []map[string]any{{
						"Effect":    "Allow",
						"Principal": "*",
						"Action":    "s3:GetObject",
						"Resource":  arn + "/*",
					}},
				})
				return string(policy), err
			}).(pulumi.StringOutput),
		}, pulumi.DependsOn([]pulumi.Resource{frontendAccess}))
		if err != nil {
			return err
		}

		// Private data bucket for workout records.
		dataBucket, err := s3.NewBucket(ctx, "fitlog-data", &s3.BucketArgs{
			Versioning: &s3.BucketVersioningArgs{
				Enabled: pulumi.Bool(true),
			},
			ServerSideEncryptionConfiguration: &s3.BucketServerSideEncryptionConfigurationArgs{
				Rule: &s3.BucketServerSideEncryptionConfigurationRuleArgs{
					ApplyServerSideEncryptionByDefault: &s3.BucketServerSideEncryptionConfigurationRuleApplyServerSideEncryptionByDefaultArgs{
						SseAlgorithm: pulumi.String("AES256"),
					},
				},
			},
			ForceDestroy: pulumi.Bool(true),
		})
		if err != nil {
			return err
		}

		topic, err := sns.NewTopic(ctx, "fitlog-notifications", &sns.TopicArgs{
			Name:        pulumi.String("FitLogNotifications"),
			DisplayName: pulumi.String("FitLog Workout Notifications"),
		})
		if err != nil {
			return err
		}

		if notificationEmail != "" {
			_, err = sns.NewTopicSubscription(ctx, "fitlog-email-subscription", &sns.TopicSubscriptionArgs{
				Topic:    topic.Arn,
				Protocol: pulumi.String("email"),
				Endpoint: pulumi.String(notificationEmail),
			})
			if err != nil {
				return err
			}
		}

		assumeRole, err := json.Marshal(map[string]any{
			"Version": "2012-10-17",
			"Statement": []map[string]any{{
				"Effect":    "Allow",
				"Principal": map[string]any{"Service": "lambda.amazonaws.com"},
				"Action":    "sts:AssumeRole",
			}},
		})
		if err != nil {
			return err
		}

		role, err := iam.NewRole(ctx, "fitlog-handler-role", &iam.RoleArgs{
			AssumeRolePolicy: pulumi.String(string(assumeRole)),
		})
		if err != nil {
			return err
		}

		_, err = iam.NewRolePolicyAttachment(ctx, "fitlog-handler-logs", &iam.RolePolicyAttachmentArgs{
			Role:      role.Name,
			PolicyArn: pulumi.String("arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"),
		})
		if err != nil {
			return err
		}

		_, err = iam.NewRolePolicy(ctx, "fitlog-handler-access", &iam.RolePolicyArgs{
			Role: role.ID(),
			Policy: pulumi.All(dataBucket.Arn, topic.Arn).ApplyT(func(args []any) (string, error) {
				bucketArn := args[0].(string)
				topicArn := args[1].(string)
				policy, err := json.Marshal(map[string]any{
					"Version": "2012-10-17",
					"Statement": []map[string]any{
						{
							"Effect":   "Allow",
							"Action":   []string{"s3:GetObject", "s3:PutObject", "s3:DeleteObject"},
							"Resource": bucketArn + "/*",
						},
						{
							"Effect":   "Allow",
							"Action":   []string{"s3:ListBucket"},
							"Resource": bucketArn,
						},
						{
							"Effect":   "Allow",
							"Action":   []string{"sns:Publish"},
							"Resource": topicArn,
						},
					},
				})
				return string(policy), err
			}).(pulumi.StringOutput),
		})
		if err != nil {
			return err
		}

		handler, err := lambda.NewFunction(ctx, "fitlog-workout-handler", &lambda.FunctionArgs{
			Runtime: pulumi.String("provided.al2023"),
			Handler: pulumi.String("bootstrap"),
			Code:    pulumi.NewFileArchive("../../bin/workout-handler.zip"),
			Role:    role.Arn,
			Environment: &lambda.FunctionEnvironmentArgs{
				Variables: pulumi.StringMap{
					"DATA_BUCKET_NAME": dataBucket.Bucket,
					"SNS_TOPIC_ARN":    topic.Arn,
				},
			},
			Timeout:    pulumi.Int(30),
			MemorySize: pulumi.Int(256),
		})
		if err != nil {
			return err
		}

		// CORS is handled in the handler itself, not on the URL, to
		// avoid duplicate headers.
		functionURL, err := lambda.NewFunctionUrl(ctx, "fitlog-handler-url", &lambda.FunctionUrlArgs{
			FunctionName:      handler.Name,
			AuthorizationType: pulumi.String("NONE"),
		})
		if err != nil {
			return err
		}

		zone, err := route53.LookupZone(ctx, &route53.LookupZoneArgs{
			Name: pulumi.StringRef(domainName),
		})
		if err != nil {
			return err
		}

		_, err = route53.NewRecord(ctx, "fitlog-frontend-record", &route53.RecordArgs{
			ZoneId: pulumi.String(zone.ZoneId),
			Name:   pulumi.String(domainName),
			Type:   pulumi.String("A"),
			Aliases: route53.RecordAliasArray{
				&route53.RecordAliasArgs{
					Name:                 frontendBucket.WebsiteDomain,
					ZoneId:               frontendBucket.HostedZoneId,
					EvaluateTargetHealth: pulumi.Bool(false),
				},
			},
		})
		if err != nil {
			return err
		}

		apiDomain := functionURL.FunctionUrl.ApplyT(func(url string) string {
			return strings.TrimSuffix(strings.TrimPrefix(url, "https://"), "/")
		}).(pulumi.StringOutput)

		_, err = route53.NewRecord(ctx, "fitlog-api-record", &route53.RecordArgs{
			ZoneId:  pulumi.String(zone.ZoneId),
			Name:    pulumi.String("api"),
			Type:    pulumi.String("CNAME"),
			Ttl:     pulumi.Int(300),
			Records: pulumi.StringArray{apiDomain},
		})
		if err != nil {
			return err
		}

		ctx.Export("frontendBucketName", frontendBucket.Bucket)
		ctx.Export("frontendWebsiteURL", frontendBucket.WebsiteEndpoint)
		ctx.Export("customDomainURL", pulumi.String(fmt.Sprintf("http://%s", domainName)))
		ctx.Export("lambdaFunctionURL", functionURL.FunctionUrl)
		ctx.Export("apiEndpoint", pulumi.String(fmt.Sprintf("https://api.%s", domainName)))
		ctx.Export("dataBucketName", dataBucket.Bucket)
		ctx.Export("snsTopicArn", topic.Arn)
		ctx.Export("hostedZoneId", pulumi.String(zone.ZoneId))
		return nil
	})
}
