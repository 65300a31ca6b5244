package aws

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
)

// S3ArchiveRepositoryImpl copies report files to an S3 bucket.
type S3ArchiveRepositoryImpl struct {
	clients *ClientFactory
	bucket  string
	prefix  string
}

// NewS3ArchiveRepository cria um ArchiveRepository que grava em s3://bucket/prefix/.
func NewS3ArchiveRepository(clients *ClientFactory, bucket, prefix string) repository.ArchiveRepository {
	return &S3ArchiveRepositoryImpl{clients: clients, bucket: bucket, prefix: prefix}
}

// Upload grava o arquivo local em <prefix>/<key> e devolve a URI s3://.
func (r *S3ArchiveRepositoryImpl) Upload(ctx context.Context, key string, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening %s for upload: %w", filePath, err)
	}
	defer file.Close()

	client, err := r.clients.getServiceClient(ctx, "s3")
	if err != nil {
		return "", err
	}
	s3Client := client.(s3API)

	objectKey := path.Join(r.prefix, key)
	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading %s to s3://%s/%s: %w", filePath, r.bucket, objectKey, err)
	}

	return fmt.Sprintf("s3://%s/%s", r.bucket, objectKey), nil
}
