package minio

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"livestock-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient wraps the MinIO client used for animal photo storage.
type MinioClient struct {
	client *minio.Client
	config config.MinioConfig
}

// AnimalPhotosBucket holds uploaded animal photos; the bucket is public-read
// so image_url links can be served straight to the mobile client.
const AnimalPhotosBucket = "animal-photos"

func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	endpoint := strings.TrimPrefix(cfg.MinioURL, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Printf("Invalid value for MinIO secure flag: %v. Defaulting to false.", err)
		isSecure = false
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err = minioClient.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO server: %w", err)
	}

	log.Printf("Successfully connected to MinIO at %s", cfg.MinioURL)

	mc := &MinioClient{
		client: minioClient,
		config: cfg,
	}

	if err := mc.ensureBucket(context.Background(), AnimalPhotosBucket); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket %s: %w", AnimalPhotosBucket, err)
	}

	if err := mc.SetPublicReadPolicy(context.Background(), AnimalPhotosBucket); err != nil {
		log.Printf("Failed to set public policy for %s bucket: %v", AnimalPhotosBucket, err)
	}

	return mc, nil
}

func (mc *MinioClient) ensureBucket(ctx context.Context, bucketName string) error {
	exists, err := mc.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}

	if !exists {
		err := mc.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
			Region: mc.config.MinioLocation,
		})
		if err != nil {
			return fmt.Errorf("error creating bucket %s: %w", bucketName, err)
		}
		log.Printf("Created bucket: %s", bucketName)
	}

	return nil
}

// SetPublicReadPolicy sets a public read-only policy for a bucket
func (mc *MinioClient) SetPublicReadPolicy(ctx context.Context, bucketName string) error {
	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": "*"},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, bucketName)

	err := mc.client.SetBucketPolicy(ctx, bucketName, policy)
	if err != nil {
		return fmt.Errorf("error setting public read policy for bucket %s: %w", bucketName, err)
	}

	return nil
}

// UploadFile uploads a photo stream and returns the resource URL to store on
// the animal record.
func (mc *MinioClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error) {
	_, err := mc.client.PutObject(ctx, AnimalPhotosBucket, objectName, reader, objectSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s to bucket %s: %w", objectName, AnimalPhotosBucket, err)
	}

	log.Printf("Successfully uploaded file: %s to bucket: %s", objectName, AnimalPhotosBucket)
	return mc.config.MinioResourceURL + AnimalPhotosBucket + "/" + objectName, nil
}

// RemoveFile deletes a photo object by name.
func (mc *MinioClient) RemoveFile(ctx context.Context, objectName string) error {
	err := mc.client.RemoveObject(ctx, AnimalPhotosBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove file %s: %w", objectName, err)
	}
	return nil
}
