package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"
	"sync"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// ErrNotPNG is returned when a page that must be a PNG decodes as another format.
var ErrNotPNG = errors.New("page is not a PNG image")

// page is a decoded page together with the format reported by the decoder.
type page struct {
	img    image.Image
	format string
}

// PageCache provides thread-safe caching of decoded note pages.
//
// Pages are keyed by the exact path string used to load them. Once a page is
// decoded, later Load calls for the same path return the cached image without
// disk I/O.
//
// Cached pages remain in memory until removed via Evict or Clear. Hosts that
// process many pages should evict each page once its manifest is written.
type PageCache struct {
	mu    sync.RWMutex
	pages map[string]page
}

// NewPageCache creates an empty page cache.
func NewPageCache() *PageCache {
	return &PageCache{
		pages: make(map[string]page),
	}
}

// Load retrieves a page from the cache or decodes it from disk.
//
// PNG and JPEG files are accepted here; callers that require PNG input
// check the format with LoadPNG or LoadPageInfo.
func (c *PageCache) Load(path string) (image.Image, error) {
	p, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return p.img, nil
}

// LoadPNG is Load restricted to PNG files.
func (c *PageCache) LoadPNG(path string) (image.Image, error) {
	p, err := c.load(path)
	if err != nil {
		return nil, err
	}
	if p.format != "png" {
		return nil, fmt.Errorf("%s: %w (decoded as %s)", path, ErrNotPNG, p.format)
	}
	return p.img, nil
}

func (c *PageCache) load(path string) (page, error) {
	c.mu.RLock()
	if p, ok := c.pages[path]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return page{}, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return page{}, fmt.Errorf("failed to decode page: %w", err)
	}

	p := page{img: img, format: format}
	c.mu.Lock()
	c.pages[path] = p
	c.mu.Unlock()

	return p, nil
}

// Len reports the number of cached pages.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}

// Clear removes all pages from the cache.
func (c *PageCache) Clear() {
	c.mu.Lock()
	c.pages = make(map[string]page)
	c.mu.Unlock()
}

// Evict removes the page loaded under path. Unknown paths are ignored.
func (c *PageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.pages, path)
	c.mu.Unlock()
}

// PageInfo contains metadata about a note page file.
type PageInfo struct {
	// Width is the page width in pixels.
	Width int `json:"width"`

	// Height is the page height in pixels.
	Height int `json:"height"`

	// Format is the format reported by the decoder, e.g. "png".
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha reports whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// Grayscale reports whether the page decoded to a gray color model.
	Grayscale bool `json:"grayscale"`

	// FileSizeBytes is the size of the page file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Size returns the page dimensions.
func (i PageInfo) Size() geometry.Size {
	return geometry.Size{Width: i.Width, Height: i.Height}
}

// LoadPageInfo loads a page into the cache and describes it.
//
// Color depth and alpha are derived from the decoded Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - *image.RGBA, *image.NRGBA and their 16-bit forms carry alpha
//   - *image.Gray, *image.Gray16 are grayscale
func LoadPageInfo(cache *PageCache, path string) (*PageInfo, error) {
	p, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat page: %w", err)
	}

	info := &PageInfo{
		Width:         p.img.Bounds().Dx(),
		Height:        p.img.Bounds().Dy(),
		Format:        strings.ToLower(p.format),
		ColorDepth:    "8-bit",
		FileSizeBytes: stat.Size(),
	}

	switch p.img.(type) {
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.Gray:
		info.Grayscale = true
	case *image.Gray16:
		info.Grayscale = true
		info.ColorDepth = "16-bit"
	}

	return info, nil
}
