// Package backupstore pushes snapshot files to an S3-compatible bucket and
// fetches them back. The store moves opaque JSON documents; producing and
// merging snapshots is the backup service's job.
package backupstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vkuznecovs/minutekeeper/internal/shared"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	s3PutObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
	s3GetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in)
	}
	s3ListObjects = func(c *s3.Client, ctx context.Context, in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
		return c.ListObjectsV2(ctx, in)
	}
)

// Options configures access to the backup bucket. Endpoint is optional and
// points at a MinIO or other S3-compatible server when set.
type Options struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type S3Store struct {
	opts Options
}

func NewS3Store(opts Options) *S3Store {
	return &S3Store{opts: opts}
}

func backupKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("backups/%d/%02d/%02d/%v.json", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3Store) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.opts.AccessKey,
			s.opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload stores the snapshot document under a fresh timestamped key and
// returns the key.
func (s *S3Store) Upload(ctx context.Context, snapshot []byte) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	key := backupKey()
	_, err = s3PutObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(snapshot),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}
	return key, nil
}

// Download fetches the snapshot document stored under key.
func (s *S3Store) Download(ctx context.Context, key string) ([]byte, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := s3GetObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download backup %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup %s: %w", key, err)
	}
	return body, nil
}

// LatestKey returns the key of the most recently written backup, or
// shared.ErrNotFound when the bucket holds none.
func (s *S3Store) LatestKey(ctx context.Context) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	var latest string
	var latestAt time.Time
	var token *string
	for {
		out, err := s3ListObjects(client, ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.opts.Bucket),
			Prefix:            aws.String("backups/"),
			ContinuationToken: token,
		})
		if err != nil {
			return "", fmt.Errorf("failed to list backups: %w", err)
		}

		for _, obj := range out.Contents {
			if obj.LastModified != nil && obj.LastModified.After(latestAt) {
				latestAt = *obj.LastModified
				latest = aws.ToString(obj.Key)
			}
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}

	if latest == "" {
		return "", shared.ErrNotFound
	}
	return latest, nil
}
