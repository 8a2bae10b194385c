package runtime

import "github.com/odvcencio/trellis/pkg/ui/backend"

// Region is an integer cell rectangle.
type Region struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the region covers no cells.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Cell represents a single character cell in the buffer.
type Cell struct {
	Rune rune
	// Comb holds combining characters; a string keeps Cell comparable.
	Comb  string
	Style backend.Style
}

// Buffer is the desktop's back buffer. Drawables write into it through the
// backend.RenderTarget methods, then dirty cells are flushed to the backend.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	// Dirty tracking - tracks which cells have changed
	dirty      []bool // Parallel to cells, true if cell changed
	dirtyCount int    // Number of dirty cells (fast check)
	dirtyRect  Region // Bounding box of dirty region
}

var _ backend.RenderTarget = (*Buffer)(nil)

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	w, h = max(0, w), max(0, h)
	return &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions, preserving content where possible.
func (b *Buffer) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	if w == b.width && h == b.height {
		return
	}
	newCells := make([]Cell, w*h)
	for y := 0; y < min(h, b.height); y++ {
		for x := 0; x < min(w, b.width); x++ {
			newCells[y*w+x] = b.cells[y*b.width+x]
		}
	}
	b.cells = newCells
	b.dirty = make([]bool, w*h)
	b.width = w
	b.height = h
	b.MarkAllDirty()
}

// Clear fills the buffer with spaces and default style.
func (b *Buffer) Clear() {
	b.Fill(Region{0, 0, b.width, b.height}, ' ', backend.DefaultStyle())
}

// Get returns the cell at position (x, y).
// Returns a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at position (x, y).
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	b.put(x, y, Cell{Rune: r, Style: s})
}

// SetContent implements backend.RenderTarget.
func (b *Buffer) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.put(x, y, Cell{Rune: mainc, Comb: string(comb), Style: style})
}

// SetString writes s one rune per cell starting at (x, y), clipped to the buffer.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) {
	if y < 0 || y >= b.height {
		return
	}
	px := x
	for _, r := range s {
		if px >= b.width {
			break
		}
		b.put(px, y, Cell{Rune: r, Style: style})
		px++
	}
}

// Fill fills a rectangular region with a rune and style.
func (b *Buffer) Fill(r Region, ch rune, s backend.Style) {
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(b.width, r.X+r.Width)
	y1 := min(b.height, r.Y+r.Height)

	cell := Cell{Rune: ch, Style: s}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.put(x, y, cell)
		}
	}
}

// put stores cell and marks it dirty only if the content changed.
func (b *Buffer) put(x, y int, cell Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	if b.cells[idx] == cell {
		return
	}
	b.cells[idx] = cell
	b.markCellDirty(x, y, idx)
}

// --- Dirty Tracking Methods ---

func (b *Buffer) markCellDirty(x, y, idx int) {
	if b.dirty[idx] {
		return
	}
	b.dirty[idx] = true
	b.dirtyCount++

	if b.dirtyCount == 1 {
		b.dirtyRect = Region{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	if x < b.dirtyRect.X {
		b.dirtyRect.Width += b.dirtyRect.X - x
		b.dirtyRect.X = x
	} else if x >= b.dirtyRect.X+b.dirtyRect.Width {
		b.dirtyRect.Width = x - b.dirtyRect.X + 1
	}
	if y < b.dirtyRect.Y {
		b.dirtyRect.Height += b.dirtyRect.Y - y
		b.dirtyRect.Y = y
	} else if y >= b.dirtyRect.Y+b.dirtyRect.Height {
		b.dirtyRect.Height = y - b.dirtyRect.Y + 1
	}
}

// MarkAllDirty marks the entire buffer as dirty.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
	b.dirtyRect = Region{X: 0, Y: 0, Width: b.width, Height: b.height}
}

// ClearDirty resets all dirty flags.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyCount = 0
	b.dirtyRect = Region{}
}

// IsDirty returns true if any cells have changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of dirty cells.
// Returns an empty region if nothing is dirty.
func (b *Buffer) DirtyRect() Region {
	return b.dirtyRect
}

// IsCellDirty returns true if the cell at (x, y) is dirty.
func (b *Buffer) IsCellDirty(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.dirty[y*b.width+x]
}

// ForEachDirtyCell calls fn for each dirty cell.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	if b.dirtyCount == 0 {
		return
	}
	// Most cells dirty: a linear scan beats walking the rect.
	if b.dirtyCount > b.width*b.height/2 {
		for idx, d := range b.dirty {
			if d {
				fn(idx%b.width, idx/b.width, b.cells[idx])
			}
		}
		return
	}
	for y := b.dirtyRect.Y; y < b.dirtyRect.Y+b.dirtyRect.Height && y < b.height; y++ {
		for x := b.dirtyRect.X; x < b.dirtyRect.X+b.dirtyRect.Width && x < b.width; x++ {
			idx := y*b.width + x
			if b.dirty[idx] {
				fn(x, y, b.cells[idx])
			}
		}
	}
}

// Flush writes dirty cells to target and clears the dirty flags.
// It returns the number of cells written.
func (b *Buffer) Flush(target backend.RenderTarget) int {
	n := 0
	b.ForEachDirtyCell(func(x, y int, cell Cell) {
		var comb []rune
		if cell.Comb != "" {
			comb = []rune(cell.Comb)
		}
		target.SetContent(x, y, cell.Rune, comb, cell.Style)
		n++
	})
	b.ClearDirty()
	return n
}
