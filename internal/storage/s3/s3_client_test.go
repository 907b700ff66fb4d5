package s3_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/internal/port"
	s3storage "postboard/internal/storage/s3"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	if input.Body != nil {
		b, _ := io.ReadAll(input.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{Location: "https://bucket.s3.amazonaws.com/" + *input.Key, ETag: aws.String(`"etag"`)}, nil
}

type fakeDeleteAPI struct {
	keys []string
	err  error
}

func (f *fakeDeleteAPI) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.keys = append(f.keys, *params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.DeleteObjectOutput{}, nil
}

func presignClient() *s3.PresignClient {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", "")),
	})
	return s3.NewPresignClient(client)
}

func TestS3Client_Put(t *testing.T) {
	up := &fakeUploader{}
	store := s3storage.New("images", &fakeDeleteAPI{}, up, presignClient(), time.Hour)

	out, err := store.Put(context.Background(), port.PutInput{
		Key:         "uploads/test/abc-cat.png",
		Body:        strings.NewReader("png-bytes"),
		ContentType: "image/png",
		Size:        9,
	})

	require.NoError(t, err)
	assert.Equal(t, "uploads/test/abc-cat.png", out.Key)
	assert.Equal(t, `"etag"`, out.ETag)
	assert.Equal(t, "images", *up.input.Bucket)
	assert.Equal(t, "image/png", *up.input.ContentType)
	assert.Equal(t, "png-bytes", up.body)
}

func TestS3Client_Put_Error(t *testing.T) {
	up := &fakeUploader{err: errors.New("access denied")}
	store := s3storage.New("images", &fakeDeleteAPI{}, up, presignClient(), time.Hour)

	out, err := store.Put(context.Background(), port.PutInput{Key: "k", Body: strings.NewReader("x")})

	assert.Nil(t, out)
	assert.ErrorContains(t, err, "s3 upload")
}

func TestS3Client_Delete(t *testing.T) {
	api := &fakeDeleteAPI{}
	store := s3storage.New("images", api, &fakeUploader{}, presignClient(), time.Hour)

	require.NoError(t, store.Delete(context.Background(), "uploads/test/abc-"))
	assert.Equal(t, []string{"uploads/test/abc-"}, api.keys)
}

func TestS3Client_Delete_MissingObjectIsNotAnError(t *testing.T) {
	store := s3storage.New("images", &fakeDeleteAPI{err: &types.NoSuchKey{}}, &fakeUploader{}, presignClient(), time.Hour)
	assert.NoError(t, store.Delete(context.Background(), "gone"))

	store = s3storage.New("images", &fakeDeleteAPI{err: &smithy.GenericAPIError{Code: "NotFound"}}, &fakeUploader{}, presignClient(), time.Hour)
	assert.NoError(t, store.Delete(context.Background(), "gone"))
}

func TestS3Client_Delete_Error(t *testing.T) {
	store := s3storage.New("images", &fakeDeleteAPI{err: &smithy.GenericAPIError{Code: "AccessDenied"}}, &fakeUploader{}, presignClient(), time.Hour)

	err := store.Delete(context.Background(), "k")
	assert.ErrorContains(t, err, "s3 delete")
}

func TestS3Client_GetSignedURL(t *testing.T) {
	store := s3storage.New("images", &fakeDeleteAPI{}, &fakeUploader{}, presignClient(), time.Hour)

	url, err := store.GetSignedURL(context.Background(), "uploads/test/abc-cat.png", 10*time.Minute)

	require.NoError(t, err)
	assert.Contains(t, url, "uploads/test/abc-cat.png")
	assert.Contains(t, url, "X-Amz-Expires=600")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestS3Client_GetSignedURL_DefaultTTL(t *testing.T) {
	store := s3storage.New("images", &fakeDeleteAPI{}, &fakeUploader{}, presignClient(), 45*time.Minute)

	url, err := store.GetSignedURL(context.Background(), "uploads/test/abc-cat.png", 0)

	require.NoError(t, err)
	assert.Contains(t, url, "X-Amz-Expires=2700")
}
