package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"camelia-boutique/models"
	"camelia-boutique/utils"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-retryablehttp"
)

// Target widths and per-width JPEG quality. WebP/AVIF encoding would need
// CGO, so the "modern" variants are quality-tuned JPEG; the mid-width one
// doubles as the universally-decodable fallback.
var derivativeWidths = []struct {
	width   int
	quality int
}{
	{400, 75},
	{800, 80},
	{1200, 85},
}

const fallbackWidth = 800

// ImageOptimizer downloads source images and writes resized, re-encoded
// derivatives under the output directory. Failures never escape: a source
// whose derivatives cannot be generated degrades to its original URL.
type ImageOptimizer struct {
	outputDir    string
	publicPrefix string // path prefix recorded in the catalog for generated files
	client       *http.Client
}

// NewImageOptimizer creates an ImageOptimizer writing to outputDir.
// publicPrefix is prepended to generated basenames in the catalog
// (e.g. "/images/catalog").
func NewImageOptimizer(outputDir, publicPrefix string) *ImageOptimizer {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	return &ImageOptimizer{
		outputDir:    outputDir,
		publicPrefix: publicPrefix,
		client:       rc.StandardClient(),
	}
}

// EnsureOutputDir creates the output directory if absent
func (o *ImageOptimizer) EnsureOutputDir() error {
	if err := os.MkdirAll(o.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// fetch downloads the source image bytes
func (o *ImageOptimizer) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeToWidth downscales img to the target width keeping aspect ratio.
// Images already narrower than the target are re-encoded as-is.
func resizeToWidth(img image.Image, width int) image.Image {
	if img.Bounds().Dx() <= width {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// Generate produces the derivative set for one source image. It never
// returns an error: any fetch, decode or encode failure for the whole
// source degrades the set to the original URL, and a failure for a single
// width only drops that variant.
func (o *ImageOptimizer) Generate(ctx context.Context, sourceURL, productName string, index int) models.DerivativeSet {
	data, err := o.fetch(ctx, sourceURL)
	if err != nil {
		log.Printf("⚠️  Derivative generation degraded for %s: %v", sourceURL, err)
		return models.Degraded(sourceURL)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("⚠️  Failed to decode image %s: %v", sourceURL, err)
		return models.Degraded(sourceURL)
	}
	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	basename := utils.DerivativeBasename(productName, sourceURL, index)
	set := models.DerivativeSet{
		Base:     sourceURL,
		Variants: map[models.VariantKey]string{},
		Fallback: sourceURL,
	}

	for _, target := range derivativeWidths {
		resized := resizeToWidth(img, target.width)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: target.quality}); err != nil {
			log.Printf("⚠️  Failed to encode %s at %dw: %v", sourceURL, target.width, err)
			continue
		}

		filename := fmt.Sprintf("%s-%dw.jpg", basename, target.width)
		if err := os.WriteFile(filepath.Join(o.outputDir, filename), buf.Bytes(), 0644); err != nil {
			log.Printf("⚠️  Failed to write %s: %v", filename, err)
			continue
		}

		publicPath := o.publicPrefix + "/" + filename
		set.Variants[models.VariantKey{Width: target.width, Format: "jpeg"}] = publicPath
	}

	if set.IsDegraded() {
		log.Printf("⚠️  No variant generated for %s, keeping original URL", sourceURL)
		return models.Degraded(sourceURL)
	}

	// Largest generated variant becomes the base; the mid-width one is the
	// designated fallback when present.
	for _, target := range derivativeWidths {
		if p, ok := set.Variants[models.VariantKey{Width: target.width, Format: "jpeg"}]; ok {
			set.Base = p
		}
	}
	if p, ok := set.Variants[models.VariantKey{Width: fallbackWidth, Format: "jpeg"}]; ok {
		set.Fallback = p
	} else {
		set.Fallback = set.Base
	}

	return set
}
