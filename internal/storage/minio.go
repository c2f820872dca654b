package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const bucketName = "reelstgram-bucket"

type minioUploader struct {
	client         *minio.Client
	publicEndpoint string
}

// initMinio connects the MinIO client and creates the public-read media
// bucket if it does not exist yet.
func initMinio() *minioUploader {
	client, err := minio.New(
		os.Getenv("MINIO_INTERNAL_ENDPOINT"),
		&minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: false,
		})
	if err != nil {
		log.Fatalf("MinIO initialization error: %v", err)
	}

	exists, err := client.BucketExists(context.Background(), bucketName)
	if err != nil {
		log.Fatalf("Bucket check error: %v", err)
	}

	if !exists {
		if err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatalf("Error creating bucket: %v", err)
		}

		policy := `{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": "*",
				"Action": "s3:GetObject",
				"Resource": "arn:aws:s3:::` + bucketName + `/*"
			}
		]
	}`

		if err = client.SetBucketPolicy(context.Background(), bucketName, policy); err != nil {
			log.Fatalln(err)
		}
		log.Printf("Bucket %s is set to public", bucketName)
	}

	return &minioUploader{
		client:         client,
		publicEndpoint: os.Getenv("MINIO_PUBLIC_ENDPOINT"),
	}
}

func (m *minioUploader) Upload(ctx context.Context, filename string, src io.Reader, size int64, mimeType string) (string, error) {
	_, err := m.client.PutObject(
		ctx,
		bucketName,
		filename,
		src,
		size,
		minio.PutObjectOptions{ContentType: mimeType},
	)
	if err != nil {
		return "", fmt.Errorf("file upload error: %w", err)
	}
	return m.publicEndpoint + "/" + bucketName + "/" + filename, nil
}

func (m *minioUploader) Delete(ctx context.Context, filename string) error {
	_, err := m.client.StatObject(ctx, bucketName, filename, minio.StatObjectOptions{})
	if err != nil {
		var minioErr minio.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return errors.New("file not found")
		}
		return fmt.Errorf("error checking file existence: %w", err)
	}
	if err = m.client.RemoveObject(ctx, bucketName, filename, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file from storage: %w", err)
	}
	return nil
}
