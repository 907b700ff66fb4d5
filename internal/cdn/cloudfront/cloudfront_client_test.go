package cloudfront_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cdn "postboard/internal/cdn/cloudfront"
)

type fakeInvalidationAPI struct {
	inputs []*cloudfront.CreateInvalidationInput
	err    error
}

func (f *fakeInvalidationAPI) CreateInvalidation(_ context.Context, params *cloudfront.CreateInvalidationInput, _ ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &cloudfront.CreateInvalidationOutput{
		Invalidation: &types.Invalidation{Id: aws.String("I2J0I21PCUYOIK")},
	}, nil
}

func TestInvalidate(t *testing.T) {
	api := &fakeInvalidationAPI{}
	now := time.Unix(1700000000, 42)
	gw := cdn.New(api, "E123", func() time.Time { return now })

	id, err := gw.Invalidate(context.Background(), []string{"/uploads/test/abc-"})

	require.NoError(t, err)
	assert.Equal(t, "I2J0I21PCUYOIK", id)
	require.Len(t, api.inputs, 1)

	in := api.inputs[0]
	assert.Equal(t, "E123", *in.DistributionId)
	assert.Equal(t, int32(1), *in.InvalidationBatch.Paths.Quantity)
	assert.Equal(t, []string{"/uploads/test/abc-"}, in.InvalidationBatch.Paths.Items)
	assert.Equal(t, "uploads/test/abc--1700000000000000042", *in.InvalidationBatch.CallerReference)
}

func TestInvalidate_AddsLeadingSlash(t *testing.T) {
	api := &fakeInvalidationAPI{}
	gw := cdn.New(api, "E123", nil)

	_, err := gw.Invalidate(context.Background(), []string{"uploads/test/a-", "/uploads/test/b-"})

	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/test/a-", "/uploads/test/b-"}, api.inputs[0].InvalidationBatch.Paths.Items)
	assert.Equal(t, int32(2), *api.inputs[0].InvalidationBatch.Paths.Quantity)
}

func TestInvalidate_RepeatedKeyGetsFreshCallerReference(t *testing.T) {
	api := &fakeInvalidationAPI{}
	tick := time.Unix(1700000000, 0)
	gw := cdn.New(api, "E123", func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	})

	_, err := gw.Invalidate(context.Background(), []string{"/uploads/test/abc-"})
	require.NoError(t, err)
	_, err = gw.Invalidate(context.Background(), []string{"/uploads/test/abc-"})
	require.NoError(t, err)

	require.Len(t, api.inputs, 2)
	assert.NotEqual(t, *api.inputs[0].InvalidationBatch.CallerReference, *api.inputs[1].InvalidationBatch.CallerReference)
}

func TestInvalidate_NoPaths(t *testing.T) {
	api := &fakeInvalidationAPI{}
	gw := cdn.New(api, "E123", nil)

	_, err := gw.Invalidate(context.Background(), nil)

	assert.Error(t, err)
	assert.Empty(t, api.inputs)
}

func TestInvalidate_APIError(t *testing.T) {
	gw := cdn.New(&fakeInvalidationAPI{err: errors.New("throttled")}, "E123", nil)

	id, err := gw.Invalidate(context.Background(), []string{"/k"})

	assert.Empty(t, id)
	assert.ErrorContains(t, err, "throttled")
}
