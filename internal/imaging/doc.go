// Package imaging loads image files and turns them into detector input.
//
// It is the boundary between files on disk and package detection, which only
// understands decoded RGBA pixel buffers. Decoding, region selection,
// downscaling, and the mapping of detection results back onto the source
// image all live here.
//
// # Supported Formats
//
// PNG, JPEG, and GIF via the standard library; BMP, TIFF, and WebP via
// golang.org/x/image. Formats are recognised from file contents.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// A Frame remembers the offset and scale between its own pixels and the source
// image so that Frame.MapResult can report shapes in source coordinates.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Frames are never shared by
// the package and may be used from any goroutine.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - File I/O or decoding errors during image loading
package imaging
