// Package spray implements the spray-card coverage core: grayscale
// reduction, automatic (Otsu) binarization and per-section coverage.
//
// # Pipeline
//
// A card image flows through three pure steps:
//
//  1. ToGrayscale: color image -> single-channel intensity (BT.601 weights)
//  2. Binarize: intensity histogram -> global threshold T -> two-level Mask
//  3. AnalyzeSections: Mask + section count N -> CoverageReport
//
// Nothing in this package keeps state between calls. Every function returns
// freshly allocated values and never mutates its inputs, so independent
// images can be processed concurrently without synchronization.
//
// # Polarity
//
// Deposit is darker than the card: pixels with intensity strictly below T
// are SPRAYED, everything else is BACKGROUND. In a Mask image SPRAYED
// pixels hold 0 and BACKGROUND pixels hold 255.
//
// # Sections
//
// The mask is split into N vertical bands of floor(width/N) columns. The
// last band runs to the right edge, so it absorbs any remainder columns.
// Coverage for a band is computed against that band's actual pixel count.
//
// # Errors
//
// Invalid arguments are reported with errors wrapping ErrInvalidInput or
// ErrInvalidConfiguration; use errors.Is to classify them. A uniform image
// is not an error: it yields a threshold of 0 and an all-BACKGROUND mask.
package spray
