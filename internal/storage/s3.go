package storage

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Uploader is the media host the listing features delegate images to.
// It hands back stable public URLs.
type Uploader interface {
	Upload(data []byte, filename string) (string, error)
	Delete(url string) error
}

type S3Uploader struct {
	client *s3.S3
	bucket string
	region string
}

func NewS3Uploader(region, bucket string) (*S3Uploader, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	return &S3Uploader{client: s3.New(sess), bucket: bucket, region: region}, nil
}

func (u *S3Uploader) Upload(data []byte, filename string) (string, error) {
	key := "uploads/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		ACL:           aws.String("public-read"),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

func (u *S3Uploader) Delete(url string) error {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", u.bucket, u.region)
	key := strings.TrimPrefix(url, prefix)
	if key == url {
		// Not one of ours, nothing to delete.
		return nil
	}

	_, err := u.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	return err
}
