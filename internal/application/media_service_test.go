package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memObjects struct {
	objects map[string][]byte
	types   map[string]string
}

func (m *memObjects) Put(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
		m.types = map[string]string{}
	}
	m.objects[objectPath] = b
	m.types[objectPath] = contentType
	return "https://storage.example.com/" + objectPath, nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func mp4Header() []byte {
	return append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)
}

func newMediaService(store ObjectStore, maxImage, maxVideo int64) *MediaService {
	svc := NewMediaService(store, maxImage, maxVideo, nil)
	svc.NewName = func() string { return "fixed" }
	return svc
}

func TestUploadImage(t *testing.T) {
	store := &memObjects{}
	svc := newMediaService(store, 1<<20, 1<<20)

	up, err := svc.Upload(context.Background(), "Pothole.PNG", int64(len(pngHeader)), bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, MediaImage, up.Kind)
	assert.Equal(t, "image/png", up.ContentType)
	assert.Equal(t, "https://storage.example.com/media/images/fixed.png", up.URL)
	assert.Equal(t, pngHeader, store.objects["media/images/fixed.png"])
}

func TestUploadVideoWithoutExtension(t *testing.T) {
	store := &memObjects{}
	svc := newMediaService(store, 1<<20, 1<<20)

	up, err := svc.Upload(context.Background(), "clip", -1, bytes.NewReader(mp4Header()))
	require.NoError(t, err)
	assert.Equal(t, MediaVideo, up.Kind)
	assert.Equal(t, "https://storage.example.com/media/videos/fixed.mp4", up.URL)
}

func TestUploadRejectsDeclaredOversize(t *testing.T) {
	svc := newMediaService(&memObjects{}, 1<<20, 50<<20)

	_, err := svc.Upload(context.Background(), "clip.mp4", 51<<20, bytes.NewReader(mp4Header()))
	require.ErrorIs(t, err, ErrMediaTooLarge)
	assert.Equal(t, "Video file is too large. Maximum size is 50MB.", err.Error())
}

func TestUploadRejectsStreamedOversize(t *testing.T) {
	store := &memObjects{}
	svc := newMediaService(store, 64, 64)

	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 100)...)
	_, err := svc.Upload(context.Background(), "big.png", -1, bytes.NewReader(body))

	var tooLarge *MediaTooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, MediaImage, tooLarge.Kind)
	assert.Empty(t, store.objects)
}

func TestUploadRejectsOtherTypes(t *testing.T) {
	svc := newMediaService(&memObjects{}, 1<<20, 1<<20)

	_, err := svc.Upload(context.Background(), "notes.txt", 5, bytes.NewReader([]byte("hello world")))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	_, err = svc.Upload(context.Background(), "empty.png", 0, bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestUploadWithoutStore(t *testing.T) {
	svc := newMediaService(nil, 1<<20, 1<<20)
	_, err := svc.Upload(context.Background(), "a.png", 1, bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrMediaUnavailable)
}
