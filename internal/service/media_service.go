package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
	"github.com/teamprojectsorg/My-Home-Web-BE/internal/repository/storage"
)

const (
	// MaxUploadSize is the upload size bound, checked before the payload is read
	MaxUploadSize = 20 * 1024 * 1024 // 20 MiB
	// JPEGQuality is the fixed re-encode quality; every stored image is JPEG
	JPEGQuality = 60
)

// allowedExtensions and allowedContentTypes must BOTH match for an upload to
// be accepted.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// MediaService validates, transcodes and stores uploaded images. Transcoding
// is CPU-and-memory heavy, so concurrent transcodes are bounded by a weighted
// semaphore; a burst of uploads queues instead of exhausting process memory.
type MediaService struct {
	store      storage.ObjectStore
	transcodes *semaphore.Weighted
}

// NewMediaService creates a new MediaService with the given transcode bound
func NewMediaService(store storage.ObjectStore, maxConcurrentTranscodes int64) *MediaService {
	return &MediaService{
		store:      store,
		transcodes: semaphore.NewWeighted(maxConcurrentTranscodes),
	}
}

// ValidateHeader checks the size bound and the extension/content-type pair
// without reading the payload.
func (s *MediaService) ValidateHeader(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return domain.ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if !allowedExtensions[ext] || !allowedContentTypes[contentType] {
		return domain.ErrUnsupportedMedia
	}
	return nil
}

// ProcessAndStore runs one upload through the pipeline: size bound, type
// validation, spool to a temp file, transcode to JPEG, upload under the given
// key. The temp file is removed on every exit path. Returns the stored
// object's public URL.
func (s *MediaService) ProcessAndStore(ctx context.Context, file *multipart.FileHeader, key string) (string, error) {
	if err := s.ValidateHeader(file); err != nil {
		return "", err
	}

	tmpPath, err := s.spool(file)
	if tmpPath != "" {
		defer func() {
			if rmErr := os.Remove(tmpPath); rmErr != nil {
				log.Error().Err(rmErr).Str("path", tmpPath).Msg("Failed to remove temp upload")
			}
		}()
	}
	if err != nil {
		return "", err
	}

	encoded, err := s.transcode(ctx, tmpPath)
	if err != nil {
		return "", err
	}

	url, err := s.store.Put(ctx, key, bytes.NewReader(encoded), int64(len(encoded)), "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return url, nil
}

// Remove deletes a stored object, used to undo an upload whose database
// attach failed.
func (s *MediaService) Remove(ctx context.Context, key string) error {
	return s.store.Remove(ctx, key)
}

// spool writes the upload to a temp file. The temp path is returned even on
// error so the caller can clean up a partial write.
func (s *MediaService) spool(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer tmp.Close()

	// The multipart header size is client-declared; re-check while copying.
	n, err := io.Copy(tmp, io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return tmp.Name(), fmt.Errorf("spool upload: %w", err)
	}
	if n > MaxUploadSize {
		return tmp.Name(), domain.ErrFileTooLarge
	}
	return tmp.Name(), nil
}

// transcode re-encodes the spooled image as JPEG at the fixed quality,
// normalizing storage format regardless of source format.
func (s *MediaService) transcode(ctx context.Context, path string) ([]byte, error) {
	if err := s.transcodes.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire transcode slot: %w", err)
	}
	defer s.transcodes.Release(1)

	img, err := imaging.Open(path)
	if err != nil {
		return nil, domain.Invalid("Invalid Image Data")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
