package recognizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// ErrNoText is returned when the image yields no recognizable text.
var ErrNoText = errors.New("no text recognized in image")

// Recognizer turns a still image into the concatenated recognized text.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Tesseract recognizes text with a fresh gosseract client per call, so a
// single value is safe for concurrent use.
type Tesseract struct {
	Languages []string
	// MinHeight upscales smaller images before recognition; 0 disables it.
	MinHeight int
}

func NewTesseract(languages []string, minHeight int) *Tesseract {
	return &Tesseract{Languages: languages, MinHeight: minHeight}
}

func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prepared, cleanup, err := t.preprocess(imagePath)
	if err != nil {
		return "", err
	}
	defer cleanup()

	client := gosseract.NewClient()
	defer client.Close()
	if len(t.Languages) > 0 {
		if err := client.SetLanguage(t.Languages...); err != nil {
			return "", fmt.Errorf("set ocr language: %w", err)
		}
	}
	if err := client.SetImage(prepared); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	fragments := make([]string, 0, len(boxes))
	for _, b := range boxes {
		fragments = append(fragments, b.Word)
	}
	text := JoinFragments(fragments)
	if text == "" {
		// some builds return no line boxes for single-line crops
		page, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("ocr error: %w", err)
		}
		text = JoinFragments(strings.Split(page, "\n"))
	}
	if text == "" {
		return "", ErrNoText
	}
	log.Printf("[Recognizer] OCR %s snippet=%q", imagePath, snippet(text, 120))
	return text, nil
}

// JoinFragments concatenates recognized fragments in order with no separator.
func JoinFragments(fragments []string) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(strings.TrimSpace(f))
	}
	return b.String()
}

// preprocess writes a grayscale, upscaled copy of the image to a temp file.
// If the copy cannot be written the source path is used as-is.
func (t *Tesseract) preprocess(path string) (string, func(), error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}
	gray := imaging.Grayscale(img)
	if t.MinHeight > 0 && gray.Bounds().Dy() < t.MinHeight {
		gray = imaging.Resize(gray, 0, t.MinHeight, imaging.Lanczos)
	}

	tmpFile, err := os.CreateTemp("", "ocr-*.png")
	if err != nil {
		return path, func() {}, nil
	}
	tmp := tmpFile.Name()
	_ = tmpFile.Close()
	if err := imaging.Save(gray, tmp); err != nil {
		_ = os.Remove(tmp)
		return path, func() {}, nil
	}
	return tmp, func() { _ = os.Remove(tmp) }, nil
}

func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
