package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

func GetDefaultFontPath() string {
	// Check local fonts directory
	entries, err := os.ReadDir("fonts")
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				ext := strings.ToLower(filepath.Ext(entry.Name()))
				if ext == ".ttf" || ext == ".ttc" {
					return filepath.Join("fonts", entry.Name())
				}
			}
		}
	}

	// System paths
	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = []string{"C:\\Windows\\Fonts\\arial.ttf"}
	case "darwin":
		paths = []string{"/System/Library/Fonts/Helvetica.ttc"}
	default:
		paths = []string{
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// maxCachedTexts bounds the cache; status lines change every trial.
const maxCachedTexts = 64

type CacheEntry struct {
	Texture *sdl.Texture
	W, H    float32
}

// TextCache renders strings to textures once and reuses them across frames.
type TextCache struct {
	font    *ttf.Font
	entries map[string]*CacheEntry
}

func NewTextCache(font *ttf.Font) *TextCache {
	return &TextCache{
		font:    font,
		entries: make(map[string]*CacheEntry),
	}
}

// Get returns the texture for text in the given color, or nil when no font
// is loaded or rendering fails.
func (c *TextCache) Get(renderer *sdl.Renderer, text string, color sdl.Color) *CacheEntry {
	if c.font == nil || text == "" {
		return nil
	}
	key := FormatColor(color) + ":" + text
	if entry, ok := c.entries[key]; ok {
		return entry
	}
	if len(c.entries) >= maxCachedTexts {
		c.Destroy()
	}

	entry := &CacheEntry{}
	surf, err := c.font.RenderTextBlended(text, color)
	if err == nil && surf != nil {
		tex, err := renderer.CreateTextureFromSurface(surf)
		if err == nil {
			entry.Texture = tex
			entry.W = float32(surf.W)
			entry.H = float32(surf.H)
		}
		surf.Destroy()
	}
	c.entries[key] = entry
	return entry
}

// Draw renders text with its top-left corner at (x, y) and returns the
// height used.
func (c *TextCache) Draw(renderer *sdl.Renderer, text string, color sdl.Color, x, y float32) float32 {
	entry := c.Get(renderer, text, color)
	if entry == nil || entry.Texture == nil {
		return 0
	}
	dst := sdl.FRect{X: x, Y: y, W: entry.W, H: entry.H}
	renderer.RenderTexture(entry.Texture, nil, &dst)
	return entry.H
}

func (c *TextCache) Destroy() {
	for key, entry := range c.entries {
		if entry.Texture != nil {
			entry.Texture.Destroy()
		}
		delete(c.entries, key)
	}
}
