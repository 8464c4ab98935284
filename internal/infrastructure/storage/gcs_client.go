package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const publicURLPrefix = "https://storage.googleapis.com/"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageExtension returns the file extension for an accepted image content
// type, or false if the type is not accepted.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	return ext, ok
}

// ObjectName builds the storage path for an upload under folder.
func ObjectName(folder, contentType string, at time.Time) string {
	ext, ok := ImageExtension(contentType)
	if !ok {
		ext = ".bin"
	}
	name := fmt.Sprintf("%s-%s%s", uuid.New().String(), at.Format("20060102150405"), ext)
	return path.Join(folder, name)
}

// PublicURL is the address an object in bucket is served from.
func PublicURL(bucket, object string) string {
	return publicURLPrefix + bucket + "/" + object
}

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

// NewCloudStorageClient opens bucketName and makes sure browsers on
// allowedOrigins can read from it. A CORS failure still returns a usable
// client alongside the error.
func NewCloudStorageClient(ctx context.Context, bucketName string, allowedOrigins []string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	c := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	if err := c.ensureCORS(ctx, allowedOrigins); err != nil {
		return c, fmt.Errorf("failed to set bucket CORS: %w", err)
	}

	return c, nil
}

func (c *CloudStorageClient) ensureCORS(ctx context.Context, origins []string) error {
	bucket := c.client.Bucket(c.bucketName)

	attrs, err := bucket.Attrs(ctx)
	if err != nil {
		return err
	}
	if len(attrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          time.Hour,
			Methods:         []string{"GET", "HEAD"},
			Origins:         origins,
			ResponseHeaders: []string{"Content-Type"},
		}},
	})
	return err
}

// UploadImage streams file into folder and makes it publicly readable.
func (c *CloudStorageClient) UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	objectName := ObjectName(folder, contentType, time.Now())

	obj := c.client.Bucket(c.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %w", err)
	}

	return PublicURL(c.bucketName, objectName), nil
}

// ObjectFromURL is the inverse of PublicURL. It reports false for URLs that
// do not point into bucket.
func ObjectFromURL(bucket, fileURL string) (string, bool) {
	if !strings.HasPrefix(fileURL, publicURLPrefix) {
		return "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(fileURL, publicURLPrefix), "/", 2)
	if len(parts) != 2 || parts[0] != bucket || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// DeleteFile removes an uploaded image. External URLs and objects that are
// already gone are not errors.
func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	object, ok := ObjectFromURL(c.bucketName, fileURL)
	if !ok {
		return nil
	}

	err := c.client.Bucket(c.bucketName).Object(object).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
