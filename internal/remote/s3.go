package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of the S3 client used by S3Remote.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// uploader is the subset of manager.Uploader used by S3Remote.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Options configures an S3Remote.
type S3Options struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string // S3-compatible endpoint; enables path-style addressing
	Profile  string // shared config profile

	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// S3Remote stores objects in an S3 bucket under an optional key prefix.
type S3Remote struct {
	name     string
	bucket   string
	prefix   string
	client   s3API
	uploader uploader
}

// NewS3Remote creates an S3Remote, loading AWS configuration from the
// environment and shared config files.
func NewS3Remote(ctx context.Context, name string, opts S3Options) (*S3Remote, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 remote requires s3_bucket to be set")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Remote(name, opts.Bucket, opts.Prefix, client, manager.NewUploader(client)), nil
}

func newS3Remote(name, bucket, prefix string, client s3API, up uploader) *S3Remote {
	return &S3Remote{name: name, bucket: bucket, prefix: prefix, client: client, uploader: up}
}

func (r *S3Remote) Name() string { return r.name }

func (r *S3Remote) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return path.Join(r.prefix, key)
}

func (r *S3Remote) Put(ctx context.Context, key string, body io.Reader, size int64) error {
	_, err := r.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.key(key)),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("application/yaml"),
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", r.bucket, r.key(key), err)
	}
	return nil
}

func (r *S3Remote) Get(ctx context.Context, key string, w io.Writer) error {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return fmt.Errorf("%w: s3://%s/%s", ErrNotFound, r.bucket, r.key(key))
		}
		return fmt.Errorf("downloading s3://%s/%s: %w", r.bucket, r.key(key), err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("reading s3://%s/%s: %w", r.bucket, r.key(key), err)
	}
	return nil
}

// ValidateSetup checks that the bucket exists and is accessible.
func (r *S3Remote) ValidateSetup(ctx context.Context) error {
	if _, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r.bucket)}); err != nil {
		return fmt.Errorf("s3 bucket %s not accessible: %w", r.bucket, err)
	}
	return nil
}

var _ Remote = (*S3Remote)(nil)
