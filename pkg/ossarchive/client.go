// Package ossarchive uploads finished pipeline videos to Alibaba Cloud OSS
// for long-term storage. Entirely optional; disabled unless configured.
package ossarchive

import (
	"context"
	"fmt"
	"path"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

type Client struct {
	client *oss.Client
	bucket string
	region string
	prefix string
}

func NewClient(region, bucket, accessKeyId, accessKeySecret, prefix string) *Client {
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyId, accessKeySecret)).
		WithRegion(region)

	return &Client{
		client: oss.NewClient(cfg),
		bucket: bucket,
		region: region,
		prefix: prefix,
	}
}

// UploadFile stores the local file under prefix/name and returns the public
// object URL.
func (c *Client) UploadFile(ctx context.Context, name, localPath string) (string, error) {
	key := path.Join(c.prefix, name)

	_, err := c.client.PutObjectFromFile(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(c.bucket),
		Key:    oss.Ptr(key),
	}, localPath)
	if err != nil {
		return "", fmt.Errorf("oss upload %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.oss-%s.aliyuncs.com/%s", c.bucket, c.region, key), nil
}
