package uploadservice

import (
	"time"

	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	ImageContentType = "image/jpeg"
	imageExtension   = ".jpeg"

	DefaultURLExpiry = 1000 * time.Second
)

type UploadService struct {
	svc    *s3.S3
	bucket string
	expiry time.Duration
	now    func() time.Time
}

// UploadURL is a presigned PUT target for a single image.
type UploadURL struct {
	URL       string    `json:"uploadURL"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}
