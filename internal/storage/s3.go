package storage

import (
	"alcyxob/fitsocial/internal/config"
	"context"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Storage implements MediaStorage on an S3-compatible bucket.
type s3Storage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucketName    string
	publicBaseURL string
	urlExpiry     time.Duration
}

// NewS3Storage creates a media store. When cfg.PublicBaseURL is set, uploaded
// media is addressed as <PublicBaseURL>/<key>; otherwise a presigned GET URL
// is returned.
func NewS3Storage(ctx context.Context, cfg config.S3Config) (MediaStorage, error) {
	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx,
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true // MinIO and most S3-compatible stores need path-style addressing
	})

	expiry := cfg.URLExpiry
	if expiry <= 0 || expiry > DefaultPresignedURLExpiry {
		expiry = DefaultPresignedURLExpiry
	}

	log.Printf("S3 media storage initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)

	return &s3Storage{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    cfg.BucketName,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		urlExpiry:     expiry,
	}, nil
}

// Upload puts the file in the bucket and returns the URL to store on the post.
func (s *s3Storage) Upload(ctx context.Context, file MediaFile) (Uploaded, error) {
	if file.Body == nil || file.Size == 0 {
		return Uploaded{}, ErrEmptyMedia
	}
	objectKey, err := ObjectKey(file)
	if err != nil {
		return Uploaded{}, err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        file.Body,
		ContentType: aws.String(file.ContentType),
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Printf("ERROR: Failed to upload media '%s': %v", objectKey, err)
		return Uploaded{}, err
	}

	if s.publicBaseURL != "" {
		return Uploaded{Key: objectKey, URL: s.publicBaseURL + "/" + objectKey}, nil
	}
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.urlExpiry))
	if err != nil {
		log.Printf("ERROR: Failed to generate presigned GET URL for key '%s': %v", objectKey, err)
		return Uploaded{Key: objectKey}, err
	}
	return Uploaded{Key: objectKey, URL: req.URL}, nil
}

// Delete removes an uploaded object, used when the post that needed it
// could not be created.
func (s *s3Storage) Delete(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete object '%s' from bucket '%s': %v", objectKey, s.bucketName, err)
		return err
	}
	log.Printf("INFO: Deleted object '%s' from bucket '%s'", objectKey, s.bucketName)
	return nil
}
