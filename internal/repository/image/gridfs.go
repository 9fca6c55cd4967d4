package image

import (
	"context"
	"errors"
	"io"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

// Store keeps product images in a GridFS bucket named "images".
type Store struct {
	bucket *gridfs.Bucket
	logger *log.Logger
}

func NewStore(db *mongo.Database, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, err
	}
	return &Store{bucket: bucket, logger: logger}, nil
}

// Upload stores the file and returns its hex id. The content type travels in
// the file metadata.
func (s *Store) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}
	id, err := s.bucket.UploadFromStream(filename, r,
		options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType}),
	)
	if err != nil {
		s.logger.Printf("image store: upload %s error=%v", filename, err)
		return "", err
	}
	s.logger.Printf("image store: uploaded %s id=%s", filename, id.Hex())
	return id.Hex(), nil
}

// Open returns a reader over the stored file plus its content type.
func (s *Store) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", domain.ErrNotFound
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(deadline)
	}
	stream, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", err
	}

	contentType := "application/octet-stream"
	if file := stream.GetFile(); file != nil && len(file.Metadata) > 0 {
		if v, err := file.Metadata.LookupErr("contentType"); err == nil {
			if ct, ok := v.StringValueOK(); ok {
				contentType = ct
			}
		}
	}
	return stream, contentType, nil
}
