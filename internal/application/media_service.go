package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// sniffLen matches the mimetype package's default read limit.
const sniffLen = 3072

// ObjectStore writes uploaded media and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type MediaService struct {
	Store         ObjectStore // nil disables uploads
	MaxImageBytes int64
	MaxVideoBytes int64
	Timeout       time.Duration
	Logger        *logrus.Logger
	NewName       func() string
}

func NewMediaService(store ObjectStore, maxImage, maxVideo int64, logger *logrus.Logger) *MediaService {
	return &MediaService{
		Store:         store,
		MaxImageBytes: maxImage,
		MaxVideoBytes: maxVideo,
		Timeout:       2 * time.Minute,
		Logger:        logger,
		NewName:       uuid.NewString,
	}
}

type MediaUpload struct {
	URL         string    `json:"url"`
	Kind        MediaKind `json:"kind"`
	ContentType string    `json:"contentType"`
}

// Upload sniffs the content type of r, enforces the per-kind size limit and
// stores the object under media/<images|videos>/. size is the declared length
// or -1 when unknown.
func (s *MediaService) Upload(ctx context.Context, filename string, size int64, r io.Reader) (*MediaUpload, error) {
	if s.Store == nil {
		return nil, ErrMediaUnavailable
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrUnsupportedMedia
	}

	mt := mimetype.Detect(head)
	kind, ok := kindOf(mt.String())
	if !ok {
		return nil, ErrUnsupportedMedia
	}
	limit := s.limitFor(kind)
	if size > limit {
		return nil, &MediaTooLargeError{Kind: kind, Limit: limit}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = mt.Extension()
	}
	dir := "images"
	if kind == MediaVideo {
		dir = "videos"
	}
	objectPath := path.Join("media", dir, s.NewName()+ext)

	body := &cappedReader{r: io.MultiReader(bytes.NewReader(head), r), left: limit, kind: kind, limit: limit}

	c := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		c, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	contentType := strings.SplitN(mt.String(), ";", 2)[0]
	url, err := s.Store.Put(c, objectPath, contentType, body)
	if err != nil {
		var tooLarge *MediaTooLargeError
		if errors.As(err, &tooLarge) {
			return nil, tooLarge
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", objectPath).Error("media upload failed")
		}
		return nil, err
	}
	return &MediaUpload{URL: url, Kind: kind, ContentType: contentType}, nil
}

func (s *MediaService) limitFor(kind MediaKind) int64 {
	if kind == MediaVideo {
		return s.MaxVideoBytes
	}
	return s.MaxImageBytes
}

func kindOf(contentType string) (MediaKind, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaImage, true
	case strings.HasPrefix(contentType, "video/"):
		return MediaVideo, true
	}
	return "", false
}

// cappedReader fails with MediaTooLargeError once more than limit bytes
// have been read.
type cappedReader struct {
	r     io.Reader
	left  int64
	kind  MediaKind
	limit int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.left < 0 {
		return 0, &MediaTooLargeError{Kind: c.kind, Limit: c.limit}
	}
	if int64(len(p)) > c.left+1 {
		p = p[:c.left+1]
	}
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, &MediaTooLargeError{Kind: c.kind, Limit: c.limit}
	}
	return n, err
}
