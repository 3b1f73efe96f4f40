package graphics

import (
	"image"
	"sync"
)

// ImageCache keeps decoded texture images by path so several textures,
// possibly in different contexts, can be built from one decode.
type ImageCache struct {
	mu      sync.RWMutex
	maxSize int
	images  map[string]*image.RGBA
}

func NewImageCache(maxSize int) *ImageCache {
	return &ImageCache{maxSize: maxSize, images: make(map[string]*image.RGBA)}
}

// Get returns the cached image for path, decoding it on first use.
func (c *ImageCache) Get(path string) (*image.RGBA, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if img, ok := c.images[path]; ok {
		return img, nil
	}

	img, err := LoadImage(path, c.maxSize)
	if err != nil {
		return nil, err
	}

	c.images[path] = img
	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}
