package storage

import (
	"bytes"
	"context"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sync"
)

const objectContentType = "text/plain; charset=utf-8"

type S3Client struct {
	SinkName       string
	Bucket         string
	Prefix         string
	AccessKey      string
	SecretKey      string
	Token          string
	RoleArn        string
	Region         string
	Endpoint       string
	ForcePathStyle bool

	mutex    sync.Mutex
	s3Client *s3.Client
}

func (c *S3Client) Name() string {
	return c.SinkName
}

func (c *S3Client) getClient(ctx context.Context) (*s3.Client, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.s3Client != nil {
		return c.s3Client, nil
	}

	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}

	if c.AccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, c.Token)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build S3 client")
	}

	if c.RoleArn != "" {
		log.Debugf("Sink %s assumes role %s", c.SinkName, c.RoleArn)
		cfg.Credentials = aws.NewCredentialsCache(
			stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), c.RoleArn))
	}

	c.s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = c.ForcePathStyle
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})

	return c.s3Client, nil
}

func (c *S3Client) Put(ctx context.Context, object string, body []byte) error {
	svc, err := c.getClient(ctx)
	if err != nil {
		return errors.Wrap(err, "could not acquire S3 client instance")
	}

	key := objectKey(c.Prefix, object)

	_, err = svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(objectContentType),
	})

	if err != nil {
		return describe(err, "failed to put %s into bucket %s", key, c.Bucket)
	}

	log.Debugf("Put %d bytes to s3://%s/%s", len(body), c.Bucket, key)

	return nil
}

func (c *S3Client) List(ctx context.Context) ([]string, error) {
	svc, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not acquire S3 client instance")
	}

	input := &s3.ListObjectsV2Input{Bucket: aws.String(c.Bucket)}
	if c.Prefix != "" {
		input.Prefix = aws.String(c.Prefix)
	}

	var names []string
	paginator := s3.NewListObjectsV2Paginator(svc, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, describe(err, "failed to list objects in bucket %s", c.Bucket)
		}

		log.Debugf("Retrieved %d items from bucket %s", len(page.Contents), c.Bucket)

		for _, obj := range page.Contents {
			names = append(names, aws.ToString(obj.Key))
		}
	}

	return names, nil
}

// describe wraps err and adds the service error code when S3 answered.
func describe(err error, format string, args ...interface{}) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return errors.Wrapf(err, format+" (%s)", append(args, apiErr.ErrorCode())...)
	}
	return errors.Wrapf(err, format, args...)
}
