package uploadservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewUploadService builds an S3 client from static credentials. Signing happens locally,
// so no request reaches AWS until the caller uses the URL.
func NewUploadService(region, accessKey, secretKey, bucket string, expiry time.Duration) (*UploadService, error) {
	if bucket == "" {
		return nil, errors.New("upload bucket must be provided")
	}

	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}

	return &UploadService{
		svc:    s3.New(sess),
		bucket: bucket,
		expiry: expiry,
		now:    time.Now,
	}, nil
}

// GenerateUploadURL presigns a PutObject request for a fresh, timestamp-salted key.
func (s *UploadService) GenerateUploadURL(ctx context.Context) (*UploadURL, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := fmt.Sprintf("%s-%d%s", id, now.UnixMilli(), imageExtension)

	req, _ := s.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(ImageContentType),
	})
	req.SetContext(ctx)

	url, err := req.Presign(s.expiry)
	if err != nil {
		return nil, fmt.Errorf("could not presign upload url: %w", err)
	}

	return &UploadURL{
		URL:       url,
		Key:       key,
		ExpiresAt: now.Add(s.expiry),
	}, nil
}
