// Package covers downloads resolved hero images into a local covers
// directory, resized to a sane maximum width.
package covers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/tripfolio/cityscout/internal/city"
	"github.com/tripfolio/cityscout/internal/fileutil"
)

const defaultMaxWidth = 1920

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Downloader saves hero images under a covers directory, one file per
// city named by its sanitized name.
type Downloader struct {
	httpClient HTTPDoer
	dir        string
	maxWidth   int
	overwrite  bool
}

// Option is a functional option for configuring the Downloader.
type Option func(*Downloader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(d *Downloader) {
		if doer != nil {
			d.httpClient = doer
		}
	}
}

// WithMaxWidth caps the saved image width; wider downloads are resized.
func WithMaxWidth(width int) Option {
	return func(d *Downloader) {
		if width > 0 {
			d.maxWidth = width
		}
	}
}

// WithOverwrite re-downloads covers that already exist on disk.
func WithOverwrite(overwrite bool) Option {
	return func(d *Downloader) {
		d.overwrite = overwrite
	}
}

// NewDownloader creates a cover downloader writing into dir.
func NewDownloader(dir string, opts ...Option) *Downloader {
	d := &Downloader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		dir:        dir,
		maxWidth:   defaultMaxWidth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches the hero image for a city and saves it as JPEG under
// the covers directory. Existing covers are kept unless overwrite is set.
// The signature matches the seeder's cover hook.
func (d *Downloader) Download(ctx context.Context, c *city.City, heroURL string) error {
	if heroURL == "" {
		return nil
	}

	savePath := filepath.Join(d.dir, fileutil.BuildCoverFilename(c.Name))
	if fileutil.FileExists(savePath) && !d.overwrite {
		slog.Debug("Cover already exists, skipping download", "path", savePath)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, heroURL, nil)
	if err != nil {
		return err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d downloading cover", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}

	if img.Bounds().Dx() > d.maxWidth {
		img = imaging.Resize(img, d.maxWidth, 0, imaging.Lanczos)
	}

	if err := fileutil.EnsureDir(savePath); err != nil {
		return err
	}
	if err := imaging.Save(img, savePath, imaging.JPEGQuality(85)); err != nil {
		return err
	}

	slog.Info("Downloaded cover", "city", c.Name, "path", savePath)
	return nil
}
