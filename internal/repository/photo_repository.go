package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPhotoNotFound is returned when no GridFS file has the requested id.
var ErrPhotoNotFound = errors.New("photo not found")

// PhotoRepository keeps property photos in the GridFS "photos" bucket.
type PhotoRepository struct {
	DB *mongo.Database
}

func NewPhotoRepository(db *mongo.Database) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

func (r *PhotoRepository) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(r.DB, options.GridFSBucket().SetName("photos"))
	if err != nil {
		return nil, err
	}
	// gridfs takes deadlines rather than contexts.
	if deadline, ok := ctx.Deadline(); ok {
		_ = bucket.SetReadDeadline(deadline)
		_ = bucket.SetWriteDeadline(deadline)
	}
	return bucket, nil
}

// Upload streams file into GridFS and returns the new file id as hex.
// The file only exists once the stream has been closed successfully.
func (r *PhotoRepository) Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	bucket, err := r.bucket(ctx)
	if err != nil {
		return "", fmt.Errorf("PhotoRepository.Upload: %w", err)
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	stream, err := bucket.OpenUploadStream(filename, opts)
	if err != nil {
		return "", fmt.Errorf("PhotoRepository.Upload: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}

	if _, err := io.Copy(stream, file); err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("PhotoRepository.Upload: copy: %w", err)
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("PhotoRepository.Upload: close: %w", err)
	}

	return stream.FileID.(primitive.ObjectID).Hex(), nil
}

// Download returns the photo bytes and the content type recorded at upload.
func (r *PhotoRepository) Download(ctx context.Context, photoID string) ([]byte, string, error) {
	oid, ok := objectID(photoID)
	if !ok {
		return nil, "", ErrPhotoNotFound
	}
	bucket, err := r.bucket(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("PhotoRepository.Download: %w", err)
	}

	stream, err := bucket.OpenDownloadStream(oid)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, "", ErrPhotoNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("PhotoRepository.Download: %w", err)
	}
	defer stream.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, "", fmt.Errorf("PhotoRepository.Download: read: %w", err)
	}

	contentType := "image/jpeg"
	if f := stream.GetFile(); f != nil && f.Metadata != nil {
		if v, ok := f.Metadata.Lookup("contentType").StringValueOK(); ok && v != "" {
			contentType = v
		}
	}
	return data, contentType, nil
}

// Delete removes a photo and its chunks. A missing photo is not an error.
func (r *PhotoRepository) Delete(ctx context.Context, photoID string) error {
	oid, ok := objectID(photoID)
	if !ok {
		return nil
	}
	bucket, err := r.bucket(ctx)
	if err != nil {
		return fmt.Errorf("PhotoRepository.Delete: %w", err)
	}
	if err := bucket.DeleteContext(ctx, oid); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("PhotoRepository.Delete: %w", err)
	}
	return nil
}
