package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/workout"
)

const keyPrefix = "workouts/"

// s3Client is the slice of the S3 API the store uses.
type s3Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store persists each workout record as one JSON object in the data
// bucket, keyed by id.
type S3Store struct {
	client s3Client
	bucket string
	log    *log.Logger
}

func NewS3(client s3Client, bucket string, logger *log.Logger) *S3Store {
	if logger == nil {
		logger = log.New(log.Writer(), "store ", log.LstdFlags|log.LUTC)
	}
	return &S3Store{client: client, bucket: bucket, log: logger}
}

func objectKey(id string) string {
	return keyPrefix + id + ".json"
}

func (s *S3Store) Put(ctx context.Context, rec workout.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode workout %s: %w", rec.ID, err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey(rec.ID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"exercise": rec.Exercise,
			"date":     rec.CreatedAt.UTC().Format("2006-01-02"),
		},
	})
	if err != nil {
		return fmt.Errorf("put workout %s: %w", rec.ID, err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, id string) (workout.Record, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(id)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return workout.Record{}, fmt.Errorf("workout %s: %w", id, ErrNotFound)
		}
		return workout.Record{}, fmt.Errorf("get workout %s: %w", id, err)
	}
	defer out.Body.Close()

	var rec workout.Record
	if err := json.NewDecoder(out.Body).Decode(&rec); err != nil {
		return workout.Record{}, fmt.Errorf("decode workout %s: %w", id, err)
	}
	return rec, nil
}

func (s *S3Store) List(ctx context.Context) ([]workout.Record, error) {
	records := []workout.Record{}
	var token *string
	for {
		page, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(keyPrefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list workouts: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			rec, err := s.readObject(ctx, key)
			if err != nil {
				// One corrupt or unreadable object must not take down
				// the whole listing.
				s.log.Printf("skip unreadable object %s: %v", key, err)
				continue
			}
			records = append(records, rec)
		}
		if page.NextContinuationToken == nil {
			break
		}
		token = page.NextContinuationToken
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (s *S3Store) readObject(ctx context.Context, key string) (workout.Record, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return workout.Record{}, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return workout.Record{}, err
	}
	var rec workout.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return workout.Record{}, err
	}
	if rec.ID == "" {
		rec.ID = strings.TrimSuffix(path.Base(key), ".json")
	}
	return rec, nil
}

func (s *S3Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(id)),
	})
	if err != nil {
		return fmt.Errorf("delete workout %s: %w", id, err)
	}
	return nil
}
