// Package avatars issues presigned S3 URLs for avatar image storage.
// Clients upload the picked image straight to object storage and save the
// resulting public URL on their profile.
package avatars

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/haidang99/oceanchat/internal/server/config"
)

type Service struct {
	config *sc.Config
}

func NewService(config *sc.Config) *Service {
	return &Service{config: config}
}

// randomStorageKey spreads objects by upload date to keep listings sane.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("avatars/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Service) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return s3.NewPresignClient(client), nil
}

// GetPresignedPutUrl returns a fresh storage key, a presigned PUT URL valid
// for 15 minutes, and the stable public URL of the object once uploaded.
func (s *Service) GetPresignedPutUrl(ctx context.Context) (string, string, string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", "", err
	}

	bucket := s.config.S3Bucket
	key := randomStorageKey()

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", "", err
	}

	publicURL := fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.config.S3BaseEndpoint, "/"), bucket, key)

	return key, req.URL, publicURL, nil
}

// GetPresignedGetUrl returns a time-limited download URL for an existing
// avatar object, for deployments where the bucket is not public.
func (s *Service) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
