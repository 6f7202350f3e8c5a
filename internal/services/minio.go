package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"gehna-backend/internal/config"
	"gehna-backend/internal/database"
)

// UploadImage streams an uploaded file into MinIO under folder/ and returns
// its public URL. Object names are uuid-based so repeated uploads of the
// same filename never clobber each other.
func UploadImage(ctx context.Context, folder string, fileHeader *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO not configured")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := config.Getenv("MINIO_BUCKET", "gehna")
	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	_, err = database.MinIO.PutObject(ctx, bucket, objectName, f, fileHeader.Size,
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	publicBase := os.Getenv("MINIO_PUBLIC_URL")
	if publicBase == "" {
		publicBase = fmt.Sprintf("http://%s", os.Getenv("MINIO_ENDPOINT"))
	}
	return fmt.Sprintf("%s/%s/%s", publicBase, bucket, objectName), nil
}
