package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// createTestImage creates a simple test image file and returns its path.
// The file lives in the test's temp dir and is removed automatically.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
	if cache.Len() != 0 {
		t.Errorf("new cache Len: got %d, want 0", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	path := createTestImage(t, 64, 32, color.RGBA{0, 0, 255, 255})
	cache := NewImageCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Errorf("dimensions: got %v, want 64x32", img.Bounds())
	}

	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if again != img {
		t.Error("second Load should return the cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestImageCache_LoadMissing(t *testing.T) {
	cache := NewImageCache()

	if _, err := cache.Load("/nonexistent/image.png"); err == nil {
		t.Error("Load should fail for a missing file")
	}
	if cache.Len() != 0 {
		t.Errorf("failed load should not be cached, Len=%d", cache.Len())
	}
}

func TestImageCache_LoadNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := NewImageCache().Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_Evict(t *testing.T) {
	path := createTestImage(t, 10, 10, color.White)
	cache := NewImageCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	if cache.Len() != 0 {
		t.Errorf("after Evict Len: got %d, want 0", cache.Len())
	}

	cache.Evict("/never/loaded.png")
}

func TestImageCache_ReloadsRewrittenFile(t *testing.T) {
	path := createTestImage(t, 10, 10, color.White)
	cache := NewImageCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	data, err := os.ReadFile(createTestImage(t, 40, 20, color.Black))
	if err != nil {
		t.Fatalf("failed to read replacement: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to rewrite image: %v", err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("failed to touch image: %v", err)
	}

	dims, err := cache.Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if dims.Width != 40 || dims.Height != 20 {
		t.Errorf("Dimensions after rewrite: got %dx%d, want 40x20", dims.Width, dims.Height)
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestImageCache_Dimensions(t *testing.T) {
	path := createTestImage(t, 300, 200, color.Black)

	dims, err := NewImageCache().Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("Dimensions: got %dx%d, want 300x200", dims.Width, dims.Height)
	}
}

func TestImageCache_Concurrent(t *testing.T) {
	path := createTestImage(t, 16, 16, color.White)
	cache := NewImageCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}
