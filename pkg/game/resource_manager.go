package game

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/gallery/pkg/embedded"
)

// ResourceManager is responsible for centralized management of gallery resources.
// It loads and caches images and font faces, so each resource is decoded only once.
//
// Lookup order for a relative path:
//   - the gallery config directory (baseDir), when the config came from disk
//   - the embedded assets
//   - the working directory
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the game loop goroutine.
type ResourceManager struct {
	baseDir string

	imageCache    map[string]*ebiten.Image     // path -> Image
	failedImages  map[string]error             // path -> load error, avoids retrying every frame
	fontSource    *text.GoTextFaceSource       // shared Go Regular source
	fontFaceCache map[float64]*text.GoTextFace // size -> face
}

// NewResourceManager creates a ResourceManager.
// baseDir is the directory of an external gallery config, or "" for the embedded one.
func NewResourceManager(baseDir string) *ResourceManager {
	return &ResourceManager{
		baseDir:       baseDir,
		imageCache:    make(map[string]*ebiten.Image),
		failedImages:  make(map[string]error),
		fontFaceCache: make(map[float64]*text.GoTextFace),
	}
}

// readFile resolves path against baseDir, the embedded assets and the working directory.
func (rm *ResourceManager) readFile(path string) ([]byte, error) {
	if filepath.IsAbs(path) {
		return os.ReadFile(path)
	}

	if rm.baseDir != "" {
		if data, err := os.ReadFile(filepath.Join(rm.baseDir, path)); err == nil {
			return data, nil
		}
	}

	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}

	return os.ReadFile(path)
}

// LoadImage loads an image and caches it for future use.
// Failures are cached too; callers fall back to a placeholder.
//
// Supported formats: PNG, JPEG.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}
	if err, failed := rm.failedImages[path]; failed {
		return nil, err
	}

	img, err := rm.decodeImage(path)
	if err != nil {
		rm.failedImages[path] = err
		log.Warn("[ResourceManager] Image unavailable, using placeholder", "path", path, "err", err)
		return nil, err
	}

	rm.imageCache[path] = img
	return img, nil
}

func (rm *ResourceManager) decodeImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("empty image path")
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return ebiten.NewImageFromImage(decoded), nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadFont returns a Go Regular face of the given size.
// The face source is parsed once and shared by all sizes.
func (rm *ResourceManager) LoadFont(size float64) (*text.GoTextFace, error) {
	if cachedFace, exists := rm.fontFaceCache[size]; exists {
		return cachedFace, nil
	}

	if rm.fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source: %w", err)
		}
		rm.fontSource = source
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face, nil
}

// placeholderPalette 图片缺失时使用的纯色，按路径稳定选取
var placeholderPalette = []color.RGBA{
	{R: 0x5b, G: 0x4d, B: 0x43, A: 0xff},
	{R: 0x3f, G: 0x52, B: 0x5c, A: 0xff},
	{R: 0x6b, G: 0x5a, B: 0x3e, A: 0xff},
	{R: 0x4a, G: 0x3f, B: 0x5e, A: 0xff},
	{R: 0x3e, G: 0x5e, B: 0x4b, A: 0xff},
	{R: 0x66, G: 0x44, B: 0x44, A: 0xff},
}

// PlaceholderColor 同一路径总是得到同一颜色，网格项与 mover 颜色一致
func PlaceholderColor(path string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(path))
	return placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
}
