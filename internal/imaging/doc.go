// Package imaging loads spray card images and prepares them for analysis.
//
// It decodes image files (PNG, JPEG, GIF, BMP, TIFF, WebP), applies EXIF
// orientation so phone photos of cards come out upright, reports basic file
// metadata and crops a region of interest out of a larger photo.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// Every function in this package is stateless. Nothing is cached between
// calls; each load decodes the file again.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - File I/O errors during image loading
//   - Undecodable or empty images
//   - Regions outside the image bounds or with x1 >= x2 or y1 >= y2
package imaging
