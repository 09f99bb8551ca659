package detection

// Blob size limits.
const (
	// MinBlobPoints is the smallest component kept by ExtractBlobs.
	MinBlobPoints = 10

	// MinBlobBoxArea is the smallest bounding-box area kept by FilterBlobs.
	MinBlobBoxArea = 50

	// MaxBlobBoxFraction caps a blob's bounding-box area as a share of the
	// image area. Anything larger is taken to be background.
	MaxBlobBoxFraction = 0.9
)

// ExtractBlobs groups the mask's foreground pixels into connected components.
//
// Pixels are scanned in row-major order and each unvisited foreground pixel
// seeds a flood fill. Connectivity is 4-connected (no diagonals), so two
// shapes touching only at a corner stay separate.
//
// The outermost rows and columns are never scanned or filled, so shapes
// clipped by the image edge lose their edge pixels instead of merging with a
// frame of foreground along the border.
//
// Components with fewer than MinBlobPoints pixels are discarded as noise.
// Blobs are returned in discovery order.
func ExtractBlobs(m *Mask) []Blob {
	visited := make([]bool, m.Width*m.Height)
	blobs := make([]Blob, 0)

	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.Foreground(x, y) && !visited[y*m.Width+x] {
				blob := make(Blob, 0)
				fillComponent(m, visited, x, y, &blob)
				if len(blob) >= MinBlobPoints {
					blobs = append(blobs, blob)
				}
			}
		}
	}

	return blobs
}

// fillComponent performs an iterative flood fill from (startX, startY).
//
// Uses an explicit stack so memory, not call depth, bounds the size of a
// component. Marks visited pixels and appends them to blob.
func fillComponent(m *Mask, visited []bool, startX, startY int, blob *Blob) {
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 1 || p.X >= m.Width-1 || p.Y < 1 || p.Y >= m.Height-1 {
			continue
		}
		i := p.Y*m.Width + p.X
		if visited[i] || m.Pix[i] == 0 {
			continue
		}

		visited[i] = true
		*blob = append(*blob, p)

		stack = append(stack,
			Point{X: p.X + 1, Y: p.Y},
			Point{X: p.X - 1, Y: p.Y},
			Point{X: p.X, Y: p.Y + 1},
			Point{X: p.X, Y: p.Y - 1},
		)
	}
}

// FilterBlobs keeps the blobs whose bounding-box area lies within
// [MinBlobBoxArea, MaxBlobBoxFraction × width × height].
func FilterBlobs(blobs []Blob, width, height int) []Blob {
	maxArea := MaxBlobBoxFraction * float64(width*height)

	kept := make([]Blob, 0, len(blobs))
	for _, b := range blobs {
		area := BoundingBoxOf(b).Area()
		if area >= MinBlobBoxArea && float64(area) <= maxArea {
			kept = append(kept, b)
		}
	}
	return kept
}
