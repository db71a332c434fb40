package remote

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3 keeps objects in a map keyed by "bucket/key".
type fakeS3 struct {
	objects map[string][]byte
	headErr error
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: make(map[string][]byte)} }

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &manager.UploadOutput{Key: in.Key}, nil
}

func TestS3Remote_PutGetWithPrefix(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	r := newS3Remote("cloud", "modes-bucket", "desk", fake, fake)

	data := "- name: 3440x1440_100\n"
	if err := r.Put(ctx, ModesKey, strings.NewReader(data), int64(len(data))); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok := fake.objects["modes-bucket/desk/modes.yml"]; !ok {
		t.Fatalf("object not stored under prefixed key, have %v", fake.objects)
	}

	var buf bytes.Buffer
	if err := r.Get(ctx, ModesKey, &buf); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if buf.String() != data {
		t.Errorf("Get() = %q, want %q", buf.String(), data)
	}
}

func TestS3Remote_GetMissing(t *testing.T) {
	fake := newFakeS3()
	r := newS3Remote("cloud", "modes-bucket", "", fake, fake)

	err := r.Get(context.Background(), ModesKey, &bytes.Buffer{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestS3Remote_ValidateSetup(t *testing.T) {
	fake := newFakeS3()
	r := newS3Remote("cloud", "modes-bucket", "", fake, fake)

	if err := r.ValidateSetup(context.Background()); err != nil {
		t.Errorf("ValidateSetup() error = %v", err)
	}

	fake.headErr = errors.New("forbidden")
	if err := r.ValidateSetup(context.Background()); err == nil {
		t.Error("ValidateSetup() expected error when bucket is not accessible")
	}
}
