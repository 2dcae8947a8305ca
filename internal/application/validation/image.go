package validation

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	_ "golang.org/x/image/webp"
)

const maxImageBytes = 10 << 20

// ProbeState is the outcome of testing an image reference.
type ProbeState int

const (
	ProbeUntested ProbeState = iota
	ProbeValid
	ProbeInvalid
)

func (s ProbeState) String() string {
	return [...]string{"untested", "valid", "invalid"}[s]
}

func (s ProbeState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ProbeResult describes a probed image.
type ProbeResult struct {
	State  ProbeState `json:"state"`
	Format string     `json:"format,omitempty"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
	Error  string     `json:"error,omitempty"`
}

func invalid(err error) ProbeResult {
	return ProbeResult{State: ProbeInvalid, Error: err.Error()}
}

// ImageProber loads a URL and accepts it only when the body decodes as an
// image. Every probe is bounded by the timeout and never hangs.
type ImageProber struct {
	client  *http.Client
	timeout time.Duration
}

func NewImageProber(timeout time.Duration) *ImageProber {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ImageProber{client: &http.Client{}, timeout: timeout}
}

// Probe tests an http(s) URL or a data URI.
func (p *ImageProber) Probe(ctx context.Context, ref string) ProbeResult {
	ref = strings.TrimSpace(ref)
	if IsDataURI(ref) {
		cfg, format, err := decodeDataURIConfig(ref)
		if err != nil {
			return invalid(err)
		}
		return ProbeResult{State: ProbeValid, Format: format, Width: cfg.Width, Height: cfg.Height}
	}
	if !IsHTTPURL(ref) {
		return invalid(ErrURL)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return invalid(err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return invalid(fmt.Errorf("görsel %s içinde yüklenemedi", p.timeout))
		}
		return invalid(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return invalid(fmt.Errorf("görsel yüklenemedi: HTTP %d", resp.StatusCode))
	}

	cfg, format, err := image.DecodeConfig(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return invalid(fmt.Errorf("görsel %s içinde yüklenemedi", p.timeout))
		}
		return invalid(fmt.Errorf("dosya bir görsel değil: %w", err))
	}
	return ProbeResult{State: ProbeValid, Format: format, Width: cfg.Width, Height: cfg.Height}
}

// IsDataURI reports whether value looks like an inline base64 image.
func IsDataURI(value string) bool {
	return strings.HasPrefix(value, "data:image/") && strings.Contains(value, ";base64,")
}

// DecodeImageDataURI returns the image bytes of a data URI after checking
// that they decode as an image.
func DecodeImageDataURI(value string) ([]byte, error) {
	if !IsDataURI(value) {
		return nil, ErrImage
	}
	payload := value[strings.Index(value, ";base64,")+len(";base64,"):]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("geçersiz base64: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("görsel %d bayttan büyük olamaz", maxImageBytes)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dosya bir görsel değil: %w", err)
	}
	return data, nil
}

// EncodeImageDataURI builds a data URI from raw image bytes, sniffing the format.
func EncodeImageDataURI(data []byte) (string, error) {
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("görsel %d bayttan büyük olamaz", maxImageBytes)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("dosya bir görsel değil: %w", err)
	}
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func decodeDataURIConfig(value string) (image.Config, string, error) {
	data, err := DecodeImageDataURI(value)
	if err != nil {
		return image.Config{}, "", err
	}
	return image.DecodeConfig(bytes.NewReader(data))
}
