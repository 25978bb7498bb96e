package service

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"

	"koon7r-storefront/compositor"
	"koon7r-storefront/utils"
)

const (
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// OptimizeImage shrinks an image so its longest side fits the named size and encodes it as PNG.
// size: "thumb" or "medium". Transparency is preserved; images already small enough are only re-encoded.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := compositor.DecodeImage(imageData)
	if err != nil {
		return nil, err
	}

	var maxDim int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
	case "medium":
		maxDim = maxSizeMedium
	default:
		maxDim = maxSizeMedium
		log.Printf("⚠️ OptimizeImage: Unknown size '%s', defaulting to medium", size)
	}

	var resized image.Image = img
	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		resized = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		log.Printf("🔄 OptimizeImage: Resized %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(),
			resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// OptimizeDataURI runs OptimizeImage over an inline image. Non-inline references are returned unchanged.
func OptimizeDataURI(uri, size string) (string, error) {
	mediaType, data, err := utils.ParseDataURI(uri)
	if err != nil {
		return uri, nil
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("data URI is not an image: %s", mediaType)
	}

	optimized, err := OptimizeImage(data, size)
	if err != nil {
		return "", err
	}
	return utils.EncodeDataURI("image/png", optimized), nil
}
