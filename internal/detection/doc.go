// Package detection finds and classifies filled geometric shapes in raster images.
//
// The package consumes an already-decoded RGBA pixel buffer and reports each
// connected foreground region it recognises as a circle, triangle, rectangle,
// pentagon, or star, with a confidence score, bounding box, centroid, and
// pixel area. It never reads files; see package imaging for decoding.
//
// # Pipeline
//
// Stages run strictly in order, each producing a new buffer or collection:
//
//  1. Luminance: RGBA to one intensity byte per pixel (BT.601 weights;
//     pixels with alpha < 128 become white)
//  2. Binarize: Otsu threshold with a polarity chosen from mean brightness,
//     so dark-on-light and light-on-dark drawings both segment the shapes
//  3. ExtractBlobs: 4-connected flood fill into point sets of ≥ 10 pixels
//  4. FilterBlobs: keep blobs whose bounding-box area is within
//     [50, 0.9 × image area]
//  5. ClassifyBlob: convex hull, Douglas-Peucker vertex count, and a
//     priority-ordered rule table over circularity, aspect ratio, extent,
//     and solidity
//
// When stage 4 yields nothing, Detector retries with a morphologically closed
// mask and then with a ladder of fixed thresholds.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding-box Width and Height are max−min of the enclosed points
//
// # Confidence Scores
//
// Confidence comes from the rule that matched, not from a fitted model. Base
// values range from 0.83 to 0.96 and round circles gain a bonus with
// circularity; every score is capped at 0.98.
//
// # Concurrency
//
// Every function is a pure function of its arguments. Detector holds only
// configuration, so concurrent Detect calls need no coordination.
//
// # Limitations
//
// Each connected component is treated as exactly one shape: touching or
// overlapping shapes come back as one (usually rejected) blob. Components
// touching the image border lose their edge pixels.
package detection
