package cloudfront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"

	"postboard/internal/port"
)

// InvalidationAPI is the subset of the CloudFront client used by the gateway.
type InvalidationAPI interface {
	CreateInvalidation(ctx context.Context, params *cloudfront.CreateInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)
}

type cloudFrontClient struct {
	api            InvalidationAPI
	distributionID string
	now            func() time.Time
}

// NewCloudFrontClient creates a CDN gateway for a single distribution.
func NewCloudFrontClient(awsCfg aws.Config, distributionID string) port.CDN {
	return New(cloudfront.NewFromConfig(awsCfg), distributionID, time.Now)
}

// New assembles a CDN gateway from an API client and a clock.
func New(api InvalidationAPI, distributionID string, now func() time.Time) port.CDN {
	if now == nil {
		now = time.Now
	}
	return &cloudFrontClient{api: api, distributionID: distributionID, now: now}
}

func (c *cloudFrontClient) Invalidate(ctx context.Context, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", errors.New("cloudfront invalidate: no paths")
	}

	items := make([]string, 0, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		items = append(items, p)
	}

	out, err := c.api.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(c.distributionID),
		InvalidationBatch: &types.InvalidationBatch{
			CallerReference: aws.String(c.callerReference(items[0])),
			Paths: &types.Paths{
				Quantity: aws.Int32(int32(len(items))),
				Items:    items,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("cloudfront CreateInvalidation: %w", err)
	}

	if out.Invalidation == nil || out.Invalidation.Id == nil {
		return "", nil
	}
	return *out.Invalidation.Id, nil
}

// callerReference must differ between batches or CloudFront rejects the
// second one as a duplicate, so the path is suffixed with the request time.
func (c *cloudFrontClient) callerReference(path string) string {
	return fmt.Sprintf("%s-%d", strings.TrimPrefix(path, "/"), c.now().UnixNano())
}
