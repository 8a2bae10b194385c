package widget

// BinBase is a container holding at most one child.
type BinBase struct {
	ContainerBase
}

// NewBin returns a standalone bin.
func NewBin() *BinBase {
	b := &BinBase{}
	b.SetSelf(b)
	return b
}

func (b *BinBase) Name() string { return "Bin" }

// Child returns the child, or nil.
func (b *BinBase) Child() Widget {
	if len(b.children) == 0 {
		return nil
	}
	return b.children[0]
}

// Add replaces the current child with child.
func (b *BinBase) Add(child Widget) bool {
	if child == nil || IsAncestor(child, b.thisContainer()) {
		return false
	}
	if current := b.Child(); current != nil {
		if current == child {
			return false
		}
		b.thisContainer().Remove(current)
	}
	return b.ContainerBase.Add(child)
}

var _ Container = (*BinBase)(nil)
