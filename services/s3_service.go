package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobAPI is the blob-store surface the match service depends on.
type BlobAPI interface {
	ObjectURL(key string) string
	DeleteObject(ctx context.Context, key string) error
}

// S3Service stores match images and resolves their public URLs.
type S3Service struct {
	Client *s3.Client
	Bucket string
	Region string
}

// NewS3Service initializes the S3 client from the ambient AWS config.
func NewS3Service() *S3Service {
	region := os.Getenv("AWS_REGION")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config for S3: %v", err)
	}
	return &S3Service{
		Client: s3.NewFromConfig(cfg),
		Bucket: os.Getenv("S3_BUCKET_NAME"),
		Region: region,
	}
}

// ImageKey builds the object key for a match image:
// images/{DD-MM-YYYY}-{HH-MM}-{match-name-with-spaces-as-dashes}.jpg
func ImageKey(matchName string, dateTime time.Time) string {
	name := strings.Join(strings.Fields(matchName), "-")
	return fmt.Sprintf("images/%s-%s-%s.jpg",
		dateTime.Format("02-01-2006"),
		dateTime.Format("15-04"),
		name,
	)
}

// GenerateUploadURL returns a presigned PUT URL the client uploads the
// match image to, plus the object key to hand back on match creation.
func (s *S3Service) GenerateUploadURL(matchName string, dateTime time.Time, fileType string) (string, string, error) {
	key := ImageKey(matchName, dateTime)
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(s.Client)
	presignedURL, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// ObjectURL resolves a stored key into a publicly fetchable URL.
func (s *S3Service) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key)
}

// DeleteObject removes an uploaded blob. Used to clean up the image when
// the match document write fails after a successful upload.
func (s *S3Service) DeleteObject(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object '%s': %w", key, err)
	}
	return nil
}
