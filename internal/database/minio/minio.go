package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"goldenticket-service/internal/config"
)

// MinioClient wraps the MinIO client with game service specific functionality
type MinioClient struct {
	client *minio.Client
	config config.MinioConfig
}

// Storage defines bucket names for different data types
var Storage = struct {
	ReceiptPhotos string
	Exports       string
}{
	ReceiptPhotos: "receipt-photos",
	Exports:       "exports",
}

// BucketNames contains all bucket names for the game service
var BucketNames = []string{
	Storage.ReceiptPhotos,
	Storage.Exports,
}

// NewMinioClient initializes a new MinIO client with the provided configuration
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

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = minioClient.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO server: %w", err)
	}

	log.Printf("Successfully connected to MinIO at %s", cfg.MinioURL)

	mc := &MinioClient{
		client: minioClient,
		config: cfg,
	}

	if err := mc.ensureRequiredBuckets(); err != nil {
		return nil, fmt.Errorf("failed to ensure required buckets: %w", err)
	}

	return mc, nil
}

// ensureRequiredBuckets creates all required buckets if they don't exist
func (mc *MinioClient) ensureRequiredBuckets() error {
	ctx := context.Background()

	for _, bucketName := range BucketNames {
		if err := mc.ensureBucket(ctx, bucketName); err != nil {
			return fmt.Errorf("failed to ensure bucket %s: %w", bucketName, err)
		}
	}

	return nil
}

// ensureBucket creates a bucket if it doesn't exist
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

// UploadBytes uploads byte data to the specified bucket
func (mc *MinioClient) UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	reader := bytes.NewReader(data)
	_, err := mc.client.PutObject(ctx, bucketName, objectName, reader, int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload bytes to %s in bucket %s: %w", objectName, bucketName, err)
	}

	log.Printf("Successfully uploaded %d bytes to: %s in bucket: %s", len(data), objectName, bucketName)
	return nil
}

// UploadFile uploads a file to the specified bucket
func (mc *MinioClient) UploadFile(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	_, err := mc.client.PutObject(ctx, bucketName, objectName, reader, objectSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload file %s to bucket %s: %w", objectName, bucketName, err)
	}

	return nil
}

// GetFile retrieves a file from the specified bucket
func (mc *MinioClient) GetFile(ctx context.Context, bucketName, objectName string) (*minio.Object, error) {
	object, err := mc.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s from bucket %s: %w", objectName, bucketName, err)
	}

	return object, nil
}

// DeleteFile deletes a file from the specified bucket
func (mc *MinioClient) DeleteFile(ctx context.Context, bucketName, objectName string) error {
	err := mc.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file %s from bucket %s: %w", objectName, bucketName, err)
	}

	return nil
}

// GetPresignedURL generates a presigned URL for temporary access to an object
func (mc *MinioClient) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := mc.client.PresignedGetObject(ctx, bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for %s in bucket %s: %w", objectName, bucketName, err)
	}

	return presignedURL.String(), nil
}

// FileExists checks if a file exists in the specified bucket
func (mc *MinioClient) FileExists(ctx context.Context, bucketName, objectName string) (bool, error) {
	_, err := mc.client.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("error checking file existence for %s in bucket %s: %w", objectName, bucketName, err)
	}
	return true, nil
}

// GetConfig returns the MinIO configuration
func (mc *MinioClient) GetConfig() config.MinioConfig {
	return mc.config
}
