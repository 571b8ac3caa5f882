// Package ocr is a text box source: it finds text in an image with Tesseract
// and returns where it is as bounding boxes.
//
// It wraps the Tesseract OCR engine through gosseract/v2, which needs the
// Tesseract library and language data at build and run time:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Levels
//
// Boxes can be taken at several granularities:
//   - "word" (default): one box per recognized word
//   - "line": one box per text line
//   - "paragraph", "block": larger layout units
//
// # Coordinates
//
// Boxes are bbox.Rect values relative to the top-left pixel of the image,
// also when recognition is restricted to a region.
package ocr
