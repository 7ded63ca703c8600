// Package objectstore reads incoming documents from an S3-compatible bucket.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

// MaxObjectSize caps how much of one object is read into memory.
const MaxObjectSize = 64 << 20

const scheme = "s3://"

// API is the subset of the S3 client used here.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Object struct {
	Key         string
	Data        []byte
	ContentType string
}

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Client struct {
	api    API
	bucket string
	logger *slog.Logger
}

// New builds a client for cfg. Path-style addressing is used so MinIO and
// other self-hosted stores work.
func New(ctx context.Context, cfg common.StorageConfig, logger *slog.Logger) (*Client, error) {
	endpoint := cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return NewWithAPI(api, cfg.Bucket, logger), nil
}

// NewWithAPI wraps an existing S3 API implementation.
func NewWithAPI(api API, bucket string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{api: api, bucket: bucket, logger: logger}
}

func (c *Client) Bucket() string { return c.bucket }

// Ping lists at most one key to verify the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to S3: %w", err)
	}
	return nil
}

// Get downloads one object.
func (c *Client) Get(ctx context.Context, key string) (*Object, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, common.NewAppError("OBJECT_NOT_FOUND", fmt.Sprintf("s3://%s/%s", c.bucket, key), common.ErrNotFound)
		}
		c.logger.Error("s3 get failed", "bucket", c.bucket, "key", key, "error", err)
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if len(data) > MaxObjectSize {
		return nil, common.NewAppError("OBJECT_TOO_LARGE", key, common.ErrInvalidInput)
	}
	c.logger.Debug("s3 object fetched", "bucket", c.bucket, "key", key, "bytes", len(data))
	return &Object{Key: key, Data: data, ContentType: aws.ToString(out.ContentType)}, nil
}

// List returns importable documents (pdf, txt) under prefix.
func (c *Client) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var out []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if _, ok := constants.AllowedExtensions[constants.NormalizeExt(path.Ext(key))]; !ok {
				continue
			}
			out = append(out, ObjectInfo{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return out, nil
}

// URI formats a key in this client's bucket as s3://bucket/key.
func (c *Client) URI(key string) string {
	return scheme + c.bucket + "/" + key
}

// ParseURI splits s3://bucket/key. ok is false for anything else.
func ParseURI(s string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(s, scheme) {
		return "", "", false
	}
	bucket, key, found := strings.Cut(strings.TrimPrefix(s, scheme), "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// IsURI reports whether s names an object rather than a local path.
func IsURI(s string) bool {
	_, _, ok := ParseURI(s)
	return ok
}
