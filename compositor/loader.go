package compositor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP uploads with image.Decode

	"koon7r-storefront/utils"
)

const (
	// MaxImageBytes caps a single encoded source image (uploads and mockups)
	MaxImageBytes = 5 << 20
	// MaxImageSide caps the declared width and height of a source image before it is decoded
	MaxImageSide = 8000
)

// ErrUnsupportedSource is returned for upload references that are not inline images
var ErrUnsupportedSource = errors.New("only inline data:image uploads are accepted")

// Loader fetches and decodes an image reference
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// SourceLoader loads images from data URIs, http(s) URLs and local files.
// Relative file paths resolve against baseDir. Only use it for trusted references
// such as the configured mockups; buyer uploads go through UploadLoader.
type SourceLoader struct {
	client  *http.Client
	baseDir string
}

// NewSourceLoader creates a SourceLoader. A nil client gets a 10 second timeout client.
func NewSourceLoader(client *http.Client, baseDir string) *SourceLoader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SourceLoader{client: client, baseDir: baseDir}
}

// Ensure SourceLoader implements Loader
var _ Loader = (*SourceLoader)(nil)

// Load fetches ref and decodes it, applying EXIF orientation
func (l *SourceLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	data, err := l.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}

// DecodeImage decodes data after checking its declared dimensions against MaxImageSide,
// so a small compressed file cannot claim a huge raster
func DecodeImage(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width > MaxImageSide || cfg.Height > MaxImageSide {
		return nil, fmt.Errorf("image is %dx%d pixels, limit is %dx%d", cfg.Width, cfg.Height, MaxImageSide, MaxImageSide)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// UploadLoader loads buyer uploads. Only inline data:image URIs are accepted, so an upload
// can never name a file on disk or make the server fetch a URL.
type UploadLoader struct{}

// NewUploadLoader creates an UploadLoader
func NewUploadLoader() *UploadLoader {
	return &UploadLoader{}
}

// Ensure UploadLoader implements Loader
var _ Loader = (*UploadLoader)(nil)

// Check rejects references UploadLoader would refuse to load
func (l *UploadLoader) Check(ref string) error {
	if !strings.HasPrefix(strings.TrimSpace(ref), "data:image/") {
		return ErrUnsupportedSource
	}
	return nil
}

// Load decodes an inline image upload
func (l *UploadLoader) Load(_ context.Context, ref string) (image.Image, error) {
	if err := l.Check(ref); err != nil {
		return nil, err
	}

	_, data, err := utils.ParseDataURI(strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image is %d bytes, limit is %d", len(data), MaxImageBytes)
	}
	return DecodeImage(data)
}

// Fetch returns the raw bytes behind ref
func (l *SourceLoader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty image reference")
	}

	switch {
	case strings.HasPrefix(ref, "data:"):
		_, data, err := utils.ParseDataURI(ref)
		if err != nil {
			return nil, err
		}
		if len(data) > MaxImageBytes {
			return nil, fmt.Errorf("image is %d bytes, limit is %d", len(data), MaxImageBytes)
		}
		return data, nil

	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return l.fetchURL(ctx, ref)

	default:
		return l.readFile(strings.TrimPrefix(ref, "file://"))
	}
}

func (l *SourceLoader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	}
	return data, nil
}

func (l *SourceLoader) readFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && l.baseDir != "" {
		path = filepath.Join(l.baseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return nil, fmt.Errorf("image file is %d bytes, limit is %d", info.Size(), MaxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}
