// Package ocr reads the identifier written or printed on a spray card.
//
// Cards are usually labelled with a field, row or nozzle code next to the
// collection area. ReadLabel crops that strip and hands it to the Tesseract
// engine (via gosseract/v2) so the code can be stored with the coverage
// report.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Languages
//
// The default language is English ("eng"). Other Tesseract language codes
// ("deu", "fra", "spa", ...) work when their data files are installed.
//
// # Error Handling
//
// If word-level bounding boxes cannot be produced, ReadLabel still returns
// the recognized text with an empty Words slice.
package ocr
