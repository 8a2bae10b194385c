package widget

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/odvcencio/trellis/pkg/observability"
	"github.com/odvcencio/trellis/pkg/ui/backend/mocks"
	"github.com/odvcencio/trellis/pkg/ui/geom"
	"github.com/odvcencio/trellis/pkg/ui/terminal"
)

func TestZeroBase(t *testing.T) {
	var b Base
	assert.True(t, b.IsVisible())
	assert.True(t, b.IsSensitive())
	assert.True(t, b.IsInvalidated())
	assert.Equal(t, StateNormal, b.State())
	assert.Equal(t, NoButton, b.MouseButtonDown())
	assert.Nil(t, b.Parent())
	assert.Equal(t, geom.Rect{}, b.Allocation())
	assert.Equal(t, "Widget", b.Name())
}

func TestSetAllocationIdempotent(t *testing.T) {
	log := &eventLog{}
	p := newProbe("p", log)

	require.True(t, p.SetAllocation(geom.NewRect(1, 2, 10, 5)))
	assert.Equal(t, []string{"p:abs-hook", "p:alloc-hook", "p:size-allocate"}, log.entries)

	p.ExposeTo(newCellCounter(20, 20))
	require.False(t, p.IsInvalidated())

	log.reset()
	assert.False(t, p.SetAllocation(geom.NewRect(1, 2, 10, 5)))
	assert.Empty(t, log.entries)
	assert.False(t, p.IsInvalidated())
}

func TestSetAllocationAligns(t *testing.T) {
	p := newProbe("p", &eventLog{})
	p.ExposeTo(nil)
	require.False(t, p.IsInvalidated())

	require.True(t, p.SetAllocation(geom.NewRect(10.4, 10.6, 50, 50)))
	assert.Equal(t, geom.NewRect(10, 11, 50, 50), p.Allocation())
	assert.True(t, p.IsInvalidated())

	// Same rect after rounding is a no-op.
	assert.False(t, p.SetAllocation(geom.NewRect(10.2, 11.3, 50.1, 49.8)))
}

func TestInvalidationCoalesces(t *testing.T) {
	p := newProbe("p", &eventLog{})
	p.SetAllocation(geom.NewRect(0, 0, 3, 2))
	target := newCellCounter(10, 10)

	p.ExposeTo(target)
	assert.Equal(t, 1, p.builds)

	assert.True(t, p.Invalidate())
	assert.False(t, p.Invalidate())
	assert.False(t, p.Invalidate())

	p.ExposeTo(target)
	assert.Equal(t, 2, p.builds)

	p.ExposeTo(target)
	assert.Equal(t, 2, p.builds, "a valid widget reuses its drawable")
}

func TestExposeDrawsAtAbsolutePosition(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	child := newProbe("child", log)
	require.True(t, root.Add(child))

	root.SetAllocation(geom.NewRect(2, 1, 10, 10))
	child.SetAllocation(geom.NewRect(3, 2, 2, 1))

	target := newCellCounter(20, 20)
	root.ExposeTo(target)

	assert.Equal(t, 2, target.writes)
	assert.Equal(t, '#', target.cells[[2]int{5, 3}])
	assert.Equal(t, '#', target.cells[[2]int{6, 3}])
}

func TestHiddenSubtreeNotExposed(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: any SetContent fails the test.
	target := mocks.NewMockRenderTarget(ctrl)

	log := &eventLog{}
	root := newProbeBox("root", log)
	child := newProbe("child", log)
	root.Add(child)
	child.SetAllocation(geom.NewRect(0, 0, 4, 4))

	root.Show(false)
	root.ExposeTo(target)

	assert.Equal(t, 0, child.builds)
	assert.True(t, child.IsInvalidated())
}

func TestVisibleChildDrawsThroughMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := mocks.NewMockRenderTarget(ctrl)
	target.EXPECT().SetContent(0, 0, '#', gomock.Any(), gomock.Any()).Times(1)

	p := newProbe("p", &eventLog{})
	p.SetAllocation(geom.NewRect(0, 0, 1, 1))
	p.ExposeTo(target)
}

func TestSetPositionMovesWithoutRebuild(t *testing.T) {
	log := &eventLog{}
	p := newProbe("p", log)
	p.SetAllocation(geom.NewRect(0, 0, 2, 1))
	p.ExposeTo(nil)
	require.False(t, p.IsInvalidated())

	log.reset()
	require.True(t, p.SetPosition(geom.Vector{X: 4.6, Y: 3}))
	assert.Equal(t, geom.NewRect(5, 3, 2, 1), p.Allocation())
	assert.False(t, p.IsInvalidated())
	assert.Equal(t, geom.Vector{X: 5, Y: 3}, p.Drawable().Bounds().Position())
	assert.Contains(t, log.entries, "p:size-allocate")

	assert.False(t, p.SetPosition(geom.Vector{X: 5, Y: 3}))

	target := newCellCounter(10, 10)
	p.ExposeTo(target)
	assert.Equal(t, 1, p.builds)
	assert.Equal(t, '#', target.cells[[2]int{5, 3}])
}

func TestAbsolutePositionNested(t *testing.T) {
	log := &eventLog{}
	outer := newProbeBox("outer", log)
	inner := newProbeBox("inner", log)
	leaf := newProbe("leaf", log)
	outer.Add(inner)
	inner.Add(leaf)

	outer.SetAllocation(geom.NewRect(10, 5, 50, 50))
	inner.SetAllocation(geom.NewRect(2, 3, 20, 20))
	leaf.SetAllocation(geom.NewRect(1, 1, 2, 2))

	assert.Equal(t, geom.Vector{X: 13, Y: 9}, leaf.AbsolutePosition())
	assert.Equal(t, geom.NewRect(13, 9, 2, 2), leaf.AbsoluteRect())

	leaf.ExposeTo(nil)
	log.reset()
	outer.SetPosition(geom.Vector{X: 0, Y: 0})
	assert.Contains(t, log.entries, "leaf:abs-hook")
	assert.Equal(t, geom.Vector{X: 3, Y: 4}, leaf.Drawable().Bounds().Position())
}

func TestResizePropagatesToRoot(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	mid := newProbeBox("mid", log)
	leaf := newProbe("leaf", log)
	root.Add(mid)
	mid.Add(leaf)
	log.reset()

	leaf.req = geom.Vector{X: 30, Y: 10}
	leaf.RequestResize()

	var calcs []string
	for _, e := range log.entries {
		if len(e) > 5 && e[len(e)-5:] == ":calc" {
			calcs = append(calcs, e)
		}
	}
	assert.Equal(t, []string{"leaf:calc", "mid:calc", "root:calc"}, calcs)
	assert.Equal(t, geom.Vector{X: 30, Y: 10}, mid.Requisition())
	assert.Equal(t, geom.NewRect(0, 0, 30, 10), root.Allocation())
	assert.Contains(t, log.entries, "root:size-allocate")
}

func TestRootNeverShrinks(t *testing.T) {
	p := newProbe("p", &eventLog{})
	p.SetAllocation(geom.NewRect(0, 0, 40, 20))
	p.req = geom.Vector{X: 10, Y: 30}
	p.RequestResize()
	assert.Equal(t, geom.NewRect(0, 0, 40, 30), p.Allocation())
}

func TestCustomRequisition(t *testing.T) {
	tests := []struct {
		name    string
		custom  geom.Vector
		wantSet bool
		wantReq geom.Vector
	}{
		{"width only", geom.Vector{X: 7, Y: -1}, true, geom.Vector{X: 7, Y: 3}},
		{"height only", geom.Vector{X: 0, Y: 9}, true, geom.Vector{X: 5, Y: 9}},
		{"zero height is an override", geom.Vector{X: 0, Y: 0}, true, geom.Vector{X: 5, Y: 0}},
		{"negative width with height", geom.Vector{X: -3, Y: 2}, true, geom.Vector{X: 5, Y: 2}},
		{"both", geom.Vector{X: 8, Y: 4}, true, geom.Vector{X: 8, Y: 4}},
		{"clear", geom.Vector{X: 0, Y: -1}, false, geom.Vector{X: 5, Y: 3}},
		{"clear negative", geom.Vector{X: -1, Y: -1}, false, geom.Vector{X: 5, Y: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProbe("p", &eventLog{})
			p.req = geom.Vector{X: 5, Y: 3}

			p.SetRequisition(tt.custom)

			_, set := p.CustomRequisition()
			assert.Equal(t, tt.wantSet, set)
			assert.Equal(t, tt.wantReq, p.Requisition())
		})
	}
}

func TestClearCustomRequisition(t *testing.T) {
	p := newProbe("p", &eventLog{})
	p.req = geom.Vector{X: 5, Y: 3}
	p.SetRequisition(geom.Vector{X: 20, Y: 20})
	require.Equal(t, geom.Vector{X: 20, Y: 20}, p.Requisition())

	p.SetRequisition(geom.Vector{X: 0, Y: -1})
	assert.Equal(t, geom.Vector{X: 5, Y: 3}, p.Requisition())
}

func TestRefreshFiresHooksWhenUnchanged(t *testing.T) {
	log := &eventLog{}
	p := newProbe("p", log)
	p.SetAllocation(geom.NewRect(0, 0, 10, 10))
	p.ExposeTo(nil)
	log.reset()

	p.Refresh()

	assert.Equal(t, []string{"p:calc", "p:size-request", "p:abs-hook", "p:alloc-hook"}, log.entries)
	assert.True(t, p.IsInvalidated())
}

func TestShowRequestsResize(t *testing.T) {
	log := &eventLog{}
	p := newProbe("p", log)

	p.Show(true)
	assert.Empty(t, log.entries, "already visible")

	p.Show(false)
	assert.False(t, p.IsVisible())
	assert.Contains(t, log.entries, "p:size-request")
}

func TestInvalidateNotifiesAncestors(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	mid := newProbeBox("mid", log)
	leaf := newProbe("leaf", log)
	root.Add(mid)
	mid.Add(leaf)

	var damaged []Widget
	root.SetInvalidationListener(func(w Widget) { damaged = append(damaged, w) })

	root.ExposeTo(nil)
	mid.childInvalid = nil
	root.childInvalid = nil

	require.True(t, leaf.Invalidate())
	assert.Equal(t, []Widget{leaf}, mid.childInvalid)
	assert.Equal(t, []Widget{leaf}, root.childInvalid)
	assert.Equal(t, []Widget{leaf}, damaged)
}

func TestSetStateEmitsAndGrabsFocus(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	p := newProbe("p", log)
	root.Add(p)
	log.reset()

	require.True(t, p.SetState(StateActive))
	assert.Equal(t, []string{"p:state-hook:normal", "p:state-change", "p:gain-focus", "p:focus-hook"}, log.entries)
	assert.True(t, p.HasFocus(p))
	assert.True(t, root.HasFocus(p))
	assert.Equal(t, Widget(p), root.FocusedWidget())

	assert.False(t, p.SetState(StateActive))
}

// bouncer changes its own state when it becomes Active.
type bouncer struct {
	probe
}

func newBouncer(log *eventLog) *bouncer {
	b := &bouncer{probe: probe{tag: "b", log: log}}
	b.SetSelf(b)
	connectSignals(&b.SignalSet, "b", log)
	return b
}

func (b *bouncer) HandleStateChange(old State) {
	b.probe.HandleStateChange(old)
	if b.State() == StateActive {
		b.SetState(StatePrelight)
	}
}

func TestSetStateReentrant(t *testing.T) {
	log := &eventLog{}
	b := newBouncer(log)

	assert.True(t, b.SetState(StateActive))
	assert.Equal(t, StatePrelight, b.State())
	assert.False(t, b.HasFocus(b))

	var changes int
	for _, e := range log.entries {
		if e == "b:state-change" {
			changes++
		}
	}
	assert.Equal(t, 1, changes)
}

func TestFocusExclusive(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	a := newProbe("a", log)
	b := newProbe("b", log)
	root.Add(a)
	root.Add(b)

	a.SetState(StateActive)
	require.True(t, root.HasFocus(a))
	log.reset()

	b.SetState(StateActive)

	assert.True(t, root.HasFocus(b))
	assert.False(t, root.HasFocus(a))
	assert.Equal(t, StateNormal, a.State())
	assert.Equal(t, StateActive, b.State())

	lost := indexOf(log.entries, "a:lost-focus")
	gain := indexOf(log.entries, "b:gain-focus")
	require.GreaterOrEqual(t, lost, 0)
	require.GreaterOrEqual(t, gain, 0)
	assert.Less(t, lost, gain)
}

func TestGrabFocusSameWidgetIsNoop(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	a := newProbe("a", log)
	root.Add(a)
	a.GrabFocus(a)
	log.reset()

	before := testutil.ToFloat64(observability.FocusChanges)
	a.GrabFocus(a)
	assert.Empty(t, log.entries)
	assert.Equal(t, before, testutil.ToFloat64(observability.FocusChanges))
}

func TestGrabFocusNilClears(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	a := newProbe("a", log)
	root.Add(a)
	a.SetState(StateActive)

	root.GrabFocus(nil)
	assert.Nil(t, root.FocusedWidget())
	assert.Equal(t, StateNormal, a.State())
	assert.Contains(t, log.entries, "a:lost-focus")
}

func TestSetParentRequiresContainer(t *testing.T) {
	a := newProbe("a", &eventLog{})
	b := newProbe("b", &eventLog{})
	assert.False(t, a.SetParent(b))
	assert.Nil(t, a.Parent())
}

func TestRootAndIsAncestor(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	mid := newProbeBox("mid", log)
	leaf := newProbe("leaf", log)
	root.Add(mid)
	mid.Add(leaf)

	assert.Equal(t, Widget(root), Root(leaf))
	assert.Equal(t, Widget(root), Root(root))
	assert.Nil(t, Root(nil))
	assert.True(t, IsAncestor(root, leaf))
	assert.True(t, IsAncestor(leaf, leaf))
	assert.False(t, IsAncestor(leaf, root))
}

func TestSetSensitiveInvalidates(t *testing.T) {
	p := newProbe("p", &eventLog{})
	p.ExposeTo(nil)
	p.SetSensitive(false)
	assert.False(t, p.IsSensitive())
	assert.True(t, p.IsInvalidated())
}

func TestDisposeDropsDrawables(t *testing.T) {
	log := &eventLog{}
	root := newProbeBox("root", log)
	leaf := newProbe("leaf", log)
	root.Add(leaf)
	root.ExposeTo(nil)
	require.NotNil(t, leaf.Drawable())

	root.Dispose()
	assert.Nil(t, leaf.Drawable())
	assert.True(t, leaf.IsInvalidated())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.Equal(t, "left", ButtonLeft.String())
}

func TestKeyEventKind(t *testing.T) {
	var ev Event = KeyEvent{Code: terminal.KeyEnter, Pressed: true}
	assert.Equal(t, "key", ev.Kind())
}

func indexOf(entries []string, want string) int {
	for i, e := range entries {
		if e == want {
			return i
		}
	}
	return -1
}
