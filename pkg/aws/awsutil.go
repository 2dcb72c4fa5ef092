package aws

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Client is an abstraction layer for interacting with AWS services.
type Client struct {
	s3 *s3.S3
}

// NewClient creates a new AWS client, expecting that the environment variables configure the settings.
func NewClient() *Client {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	return &Client{
		s3: s3.New(sess),
	}
}

// ObjectSize returns the size in bytes of the S3 object.
func (c *Client) ObjectSize(ctx context.Context, bucket, key string) (int64, error) {
	output, err := c.s3.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return 0, fmt.Errorf("head s3://%s/%s: %w", bucket, key, err)
	}
	if output.ContentLength == nil {
		return 0, fmt.Errorf("head s3://%s/%s: no content length", bucket, key)
	}
	return *output.ContentLength, nil
}

// GetObjectRange reads bytes [from, to] (inclusive) of the S3 object.
func (c *Client) GetObjectRange(ctx context.Context, bucket, key string, from, to int64) ([]byte, error) {
	byteRange := fmt.Sprintf("bytes=%d-%d", from, to)
	output, err := c.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Range:  &byteRange,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s (%s): %w", bucket, key, byteRange, err)
	}
	defer output.Body.Close()
	body, err := ioutil.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s (%s): %w", bucket, key, byteRange, err)
	}
	return body, nil
}
