// package common contains common types that are used throughout this library. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// KeyboardState is a read-only snapshot of the tracked keys maintained by the
// window's event pump. Only the directional keys and WASD are tracked; all
// other keys pass through to the platform's default handling.
type KeyboardState struct {
	// Up, Down, Left, Right report whether the corresponding arrow key is held.
	Up, Down, Left, Right bool

	// W, A, S, D report whether the corresponding letter key is held.
	W, A, S, D bool
}

// MouseButtonState is a read-only snapshot of the left and right mouse buttons
// maintained by the window's event pump.
type MouseButtonState struct {
	// LeftDown and RightDown report whether the button is currently held.
	LeftDown, RightDown bool

	// LeftClicked and RightClicked report whether a press was observed during
	// the most recent poll. These are edge flags: they are reset at the start of
	// every PollEvents call and are true for exactly one poll per press, even if
	// the button remains held.
	LeftClicked, RightClicked bool
}

// TextureStagingData holds BGRA8 pixel data for a texture pending GPU upload.
// Pixels are row-major with a stride of Width*4 bytes and 4 bytes per pixel in
// B, G, R, A order, matching the renderer's fixed surface format.
type TextureStagingData struct {
	// Pixels is the raw BGRA8 pixel buffer. Its length must be Width*Height*4.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Validate checks that the staging data's pixel buffer matches its dimensions.
//
// Returns:
//   - error: an error describing the mismatch, or nil if the data is consistent
func (t *TextureStagingData) Validate() error {
	if t.Width == 0 || t.Height == 0 {
		return fmt.Errorf("texture dimensions must be non-zero, got %dx%d", t.Width, t.Height)
	}
	if expected := int(t.Width) * int(t.Height) * 4; len(t.Pixels) != expected {
		return fmt.Errorf("pixel buffer length %d does not match %dx%d BGRA8 (%d bytes)", len(t.Pixels), t.Width, t.Height, expected)
	}
	return nil
}

// DecodeImageBytes decodes PNG or JPEG bytes into BGRA8 staging data.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - data: raw PNG or JPEG file bytes
//
// Returns:
//   - TextureStagingData: the decoded BGRA8 pixels and dimensions
//   - error: error if decoding fails
func DecodeImageBytes(data []byte) (TextureStagingData, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return stagingFromImage(img), nil
}

// DecodeImageFile decodes a PNG or JPEG file on disk into BGRA8 staging data.
//
// Parameters:
//   - path: path to the image file
//
// Returns:
//   - TextureStagingData: the decoded BGRA8 pixels and dimensions
//   - error: error if the file cannot be opened or decoded
func DecodeImageFile(path string) (TextureStagingData, error) {
	file, err := os.Open(path)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image file %s: %w", path, err)
	}
	return stagingFromImage(img), nil
}

// stagingFromImage converts a decoded image to BGRA8 staging data.
// image/draw produces RGBA; the R and B channels are swapped in place to match
// the renderer's fixed BGRA8 surface format.
func stagingFromImage(img image.Image) TextureStagingData {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	pix := rgba.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}

	return TextureStagingData{
		Pixels: pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}
