package port

import (
	"context"
	"io"
)

// UploadInput describes one object to store. FileName, when set, becomes the
// attachment name browsers use when the object is downloaded.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
	FileName    string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
}

// ObjectStorage keeps attachments and generated exports outside the database.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	// PresignDownload returns a time-limited GET URL. A non-empty fileName
	// overrides the name the object is saved under.
	PresignDownload(ctx context.Context, bucket, key, fileName string, expirySeconds int64) (string, error)
}
