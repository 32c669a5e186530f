package s3

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/singleflight"

	"github.com/inquesta/casefile/pkg/loader"
)

// S3EvidenceFileLoader is an EvidenceFileLoader implementation that loads
// file contents from an S3 bucket. It uses the AWS SDK v2 for Go and works
// with S3-compatible storage like MinIO.
type S3EvidenceFileLoader struct {
	bucket string
	client *s3.Client

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewS3EvidenceFileLoaderWithClient creates a new S3EvidenceFileLoader using
// an existing s3.Client. This is useful if you want to reuse a preconfigured
// AWS client.
func NewS3EvidenceFileLoaderWithClient(bucket string, client *s3.Client) *S3EvidenceFileLoader {
	return &S3EvidenceFileLoader{
		bucket: bucket,
		client: client,
		cache:  make(map[string][]byte),
	}
}

// NewS3EvidenceFileLoaderParams defines the configuration parameters for
// creating a new S3EvidenceFileLoader.
type NewS3EvidenceFileLoaderParams struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3EvidenceFileLoader creates a new S3EvidenceFileLoader using the
// provided parameters. It initializes an AWS S3 client with static
// credentials and the given endpoint/region.
func NewS3EvidenceFileLoader(ctx context.Context, params NewS3EvidenceFileLoaderParams) (*S3EvidenceFileLoader, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(params.Region),
		config.WithBaseEndpoint(params.Endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)

	return &S3EvidenceFileLoader{
		bucket: params.Bucket,
		client: client,
		cache:  make(map[string][]byte),
	}, nil
}

// GetFileText retrieves the contents of the given EvidenceFile from the
// configured S3 bucket. It implements the EvidenceFileLoader interface.
func (l *S3EvidenceFileLoader) GetFileText(ctx context.Context, file loader.EvidenceFile) ([]byte, error) {
	cacheKey := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[cacheKey]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(cacheKey, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[cacheKey]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(l.bucket),
			Key:    aws.String(file.FilePath),
		})
		if err != nil {
			return nil, err
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, err
		}

		byts := buf.Bytes()

		l.cacheMu.Lock()
		l.cache[cacheKey] = byts
		l.cacheMu.Unlock()

		return byts, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
