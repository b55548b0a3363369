package storage

import (
	"context"
	"github.com/tatermelon/stftime/config"
	"path"
)

// Client writes rendered presets to one sink. Object names use forward
// slashes regardless of the platform.
type Client interface {
	Name() string
	Put(ctx context.Context, object string, body []byte) error
	List(ctx context.Context) ([]string, error)
}

func NewClient(sink *config.Sink) Client {
	if sink.IsLocal() {
		return &LocalClient{
			SinkName:  sink.Name,
			Directory: sink.Directory,
			Prefix:    sink.Prefix,
		}
	}

	return &S3Client{
		SinkName:       sink.Name,
		Bucket:         sink.Bucket,
		Prefix:         sink.Prefix,
		Region:         sink.Region,
		AccessKey:      sink.AccessKey,
		SecretKey:      sink.SecretKey,
		Token:          sink.Token,
		RoleArn:        sink.RoleArn,
		Endpoint:       sink.Endpoint,
		ForcePathStyle: sink.ForcePathStyle,
	}
}

func objectKey(prefix string, object string) string {
	if prefix == "" {
		return object
	}
	return path.Join(prefix, object)
}
