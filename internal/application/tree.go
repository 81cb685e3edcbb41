package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"funkit/internal/domain"
)

// LoadState is the lifecycle of a tree item's children. It only moves
// forward; the only way back is a full tree reset.
type LoadState int

const (
	LoadUnloaded LoadState = iota
	LoadPlaceholder
	LoadLoaded
)

func (s LoadState) String() string {
	switch s {
	case LoadUnloaded:
		return "unloaded"
	case LoadPlaceholder:
		return "placeholder"
	case LoadLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Mode selects where tree structure comes from. The two modes are mutually
// exclusive within one controller; switching resets all items.
type Mode int

const (
	ModeGraph Mode = iota
	ModeOutline
)

// StubTitle is the label of the synthetic loading child under an
// unexpanded placeholder item.
const StubTitle = "…"

// TreeItem is one node of the navigation tree. Identity is the Handle:
// a document referenced from two places yields two distinct items with the
// same TargetID. Items live until the next full tree reset.
type TreeItem struct {
	Handle   string
	TargetID int64 // meaningful in graph mode only
	Title    string
	State    LoadState
	Stub     bool   // synthetic loading child, never expandable
	Missing  bool   // target id did not resolve in the store
	Number   string // hierarchical number; structural, not visual
	Expanded bool   // visual open/closed state, independent of State

	parent   *TreeItem
	children []*TreeItem
}

// Parent returns the parent item, or nil for a root.
func (it *TreeItem) Parent() *TreeItem {
	return it.parent
}

// Children returns the item's current children, stubs included.
func (it *TreeItem) Children() []*TreeItem {
	return it.children
}

// Depth returns the item's depth; roots are at depth 0.
func (it *TreeItem) Depth() int {
	depth := 0
	for cur := it.parent; cur != nil; cur = cur.parent {
		depth++
	}
	return depth
}

// GraphSource is what the controller needs from the derived-graph side.
// *Deriver satisfies it.
type GraphSource interface {
	Children(parentID int64) ([]domain.ChildDoc, error)
	Roots(ctx context.Context) ([]int64, error)
	AncestorChain(id int64) ([]int64, error)
	Describe(id int64) domain.ChildDoc
	Refresh()
}

// JumpResult tells a JumpTo caller how the target was reached.
type JumpResult int

const (
	// JumpRevealed means the target item is materialized and selected.
	JumpRevealed JumpResult = iota

	// JumpOpenedDirectly means no ancestor chain was available and the
	// direct-open callback was invoked instead. Degraded, not an error.
	JumpOpenedDirectly
)

// Controller owns the navigation tree: per-item load state, lazy expansion,
// ancestor-chain jump, and hierarchical numbering. It is the only component
// with mutable long-lived state, and it is not safe for concurrent use; all
// calls must come from the host's event loop.
type Controller struct {
	graph      GraphSource
	openDirect OnOpenFunc

	mode     Mode
	items    map[string]*TreeItem
	roots    []*TreeItem
	selected string
}

// NewController creates a controller in graph mode with an empty tree.
// openDirect is the fallback used by JumpTo when no ancestry is available.
func NewController(graph GraphSource, openDirect OnOpenFunc) *Controller {
	return &Controller{
		graph:      graph,
		openDirect: openDirect,
		items:      make(map[string]*TreeItem),
		mode:       ModeGraph,
	}
}

// Mode returns the current structure source.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Roots returns the current top-level items.
func (c *Controller) Roots() []*TreeItem {
	return c.roots
}

// Item looks up a materialized item by handle.
func (c *Controller) Item(handle string) (*TreeItem, bool) {
	it, ok := c.items[handle]
	return it, ok
}

// Selected returns the currently selected item, or nil.
func (c *Controller) Selected() *TreeItem {
	if it, ok := c.items[c.selected]; ok {
		return it
	}
	return nil
}

// Select marks an item as selected.
func (c *Controller) Select(handle string) error {
	if _, ok := c.items[handle]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, handle)
	}
	c.selected = handle
	return nil
}

// LoadRoots resets the tree and populates graph-mode roots. The roots scan
// is O(corpus size); callers off the interactive path should compute ids
// via Deriver.Roots first and hand them to SetRoots instead.
func (c *Controller) LoadRoots(ctx context.Context) error {
	ids, err := c.graph.Roots(ctx)
	if err != nil {
		return err
	}
	c.SetRoots(ids)
	return nil
}

// SetRoots resets the tree and materializes one placeholder item per root
// id. Intended for results marshaled back from a background roots scan.
func (c *Controller) SetRoots(ids []int64) {
	c.reset(ModeGraph)
	for _, id := range ids {
		desc := c.graph.Describe(id)
		c.insertDoc(nil, desc)
	}
	c.renumber()
}

// LoadOutline resets the tree and populates it from imported outline nodes.
// Outline items carry no load state machinery: the whole tree is present,
// so every item is inserted Loaded with no stub.
func (c *Controller) LoadOutline(nodes []domain.OutlineNode) {
	c.reset(ModeOutline)
	c.insertOutline(nil, nodes)
	c.renumber()
}

func (c *Controller) insertOutline(parent *TreeItem, nodes []domain.OutlineNode) {
	for _, n := range nodes {
		it := &TreeItem{
			Handle: uuid.NewString(),
			Title:  n.Text,
			State:  LoadLoaded,
			parent: parent,
		}
		c.attach(parent, it)
		c.insertOutline(it, n.Children)
	}
}

// Expand marks an item open and, in graph mode, transitions a Placeholder
// to Loaded: the stub is removed and one new Placeholder child is inserted
// per derived child. Expanding a Loaded item only toggles visibility.
func (c *Controller) Expand(handle string) error {
	it, ok := c.items[handle]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, handle)
	}
	if it.Stub {
		return fmt.Errorf("%w: stub items do not expand", ErrInvalidID)
	}
	it.Expanded = true
	if c.mode != ModeGraph || it.State != LoadPlaceholder {
		return nil
	}

	children, err := c.graph.Children(it.TargetID)
	if err != nil {
		// Leave the placeholder (and its stub) in place for a retry.
		return err
	}

	c.removeStubs(it)
	for _, child := range children {
		c.insertDoc(it, child)
	}
	it.State = LoadLoaded
	c.renumber()
	return nil
}

// Collapse closes an item visually. Load state never reverts.
func (c *Controller) Collapse(handle string) error {
	it, ok := c.items[handle]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, handle)
	}
	it.Expanded = false
	return nil
}

// ExpandToDepth loads and opens every item at depth < d. Items at depth d
// stay Placeholder: visible and expandable, but not loaded.
func (c *Controller) ExpandToDepth(d int) error {
	for _, root := range c.roots {
		if err := c.expandToDepth(root, 0, d); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) expandToDepth(it *TreeItem, depth, limit int) error {
	if it.Stub || depth >= limit {
		return nil
	}
	if err := c.Expand(it.Handle); err != nil {
		return err
	}
	for _, child := range it.children {
		if err := c.expandToDepth(child, depth+1, limit); err != nil {
			return err
		}
	}
	return nil
}

// JumpTo selects and reveals the item for a target id. An already
// materialized item is revealed in place. Otherwise the ancestor chain is
// materialized and expanded down to the target. When no chain is available
// the injected direct-open callback is invoked and the degraded
// JumpOpenedDirectly result reported; JumpTo does not fail for that.
func (c *Controller) JumpTo(ctx context.Context, targetID int64) (JumpResult, error) {
	if c.mode != ModeGraph {
		return 0, ErrWrongMode
	}

	if it := c.findByTarget(targetID); it != nil {
		c.reveal(it)
		return JumpRevealed, nil
	}

	chain, err := c.graph.AncestorChain(targetID)
	if err != nil {
		return 0, err
	}
	if len(chain) == 0 {
		if c.openDirect != nil {
			c.openDirect(targetID)
		}
		return JumpOpenedDirectly, nil
	}

	var parent *TreeItem
	for _, ancestorID := range chain {
		it := c.ensureChild(parent, ancestorID)
		if err := c.Expand(it.Handle); err != nil {
			return 0, err
		}
		parent = it
	}
	target := c.ensureChild(parent, targetID)
	c.reveal(target)
	return JumpRevealed, nil
}

// Refresh performs a full tree reset: the roots cache is dropped and the
// graph-mode tree reloaded from a fresh corpus scan.
func (c *Controller) Refresh(ctx context.Context) error {
	c.graph.Refresh()
	return c.LoadRoots(ctx)
}

// Flatten returns the items a view should render, honoring the visual
// expanded state. Stub children of open placeholders are included so a
// loading marker can be drawn.
func (c *Controller) Flatten() []*TreeItem {
	var out []*TreeItem
	var walk func(items []*TreeItem)
	walk = func(items []*TreeItem) {
		for _, it := range items {
			out = append(out, it)
			if it.Expanded {
				walk(it.children)
			}
		}
	}
	walk(c.roots)
	return out
}

// --- internals ---

func (c *Controller) reset(mode Mode) {
	c.mode = mode
	c.items = make(map[string]*TreeItem)
	c.roots = nil
	c.selected = ""
}

// insertDoc adds a Placeholder item with a synthetic stub child so the view
// shows it as expandable without loading anything.
func (c *Controller) insertDoc(parent *TreeItem, desc domain.ChildDoc) *TreeItem {
	it := &TreeItem{
		Handle:   uuid.NewString(),
		TargetID: desc.ID,
		Title:    desc.Title,
		Missing:  desc.Missing,
		State:    LoadPlaceholder,
		parent:   parent,
	}
	c.attach(parent, it)

	stub := &TreeItem{
		Handle: uuid.NewString(),
		Title:  StubTitle,
		Stub:   true,
		parent: it,
	}
	c.attach(it, stub)
	return it
}

func (c *Controller) attach(parent, it *TreeItem) {
	c.items[it.Handle] = it
	if parent == nil {
		c.roots = append(c.roots, it)
	} else {
		parent.children = append(parent.children, it)
	}
}

func (c *Controller) removeStubs(it *TreeItem) {
	kept := it.children[:0]
	for _, child := range it.children {
		if child.Stub {
			delete(c.items, child.Handle)
			continue
		}
		kept = append(kept, child)
	}
	it.children = kept
}

// findByTarget returns the first materialized non-stub item for a target
// id, in depth-first insertion order.
func (c *Controller) findByTarget(targetID int64) *TreeItem {
	var find func(items []*TreeItem) *TreeItem
	find = func(items []*TreeItem) *TreeItem {
		for _, it := range items {
			if !it.Stub && it.TargetID == targetID {
				return it
			}
			if found := find(it.children); found != nil {
				return found
			}
		}
		return nil
	}
	return find(c.roots)
}

// ensureChild finds an existing child for the id under parent (nil means
// top level), or inserts one. Reuse keeps a jump from duplicating items
// that an earlier expansion already materialized.
func (c *Controller) ensureChild(parent *TreeItem, id int64) *TreeItem {
	siblings := c.roots
	if parent != nil {
		siblings = parent.children
	}
	for _, it := range siblings {
		if !it.Stub && it.TargetID == id {
			return it
		}
	}
	it := c.insertDoc(parent, c.graph.Describe(id))
	c.renumber()
	return it
}

// reveal opens every ancestor and selects the item.
func (c *Controller) reveal(it *TreeItem) {
	for cur := it.parent; cur != nil; cur = cur.parent {
		cur.Expanded = true
	}
	c.selected = it.Handle
}

// renumber recomputes hierarchical numbers (1, 1.1, 1.2, 2, ...) for the
// whole tree. Numbering is a property of structure, not of what is
// currently visible: collapsed subtrees are numbered too. Stubs are
// synthetic and get no number.
func (c *Controller) renumber() {
	numberItems(c.roots, nil)
}

func numberItems(items []*TreeItem, prefix []int) {
	n := 0
	for _, it := range items {
		if it.Stub {
			it.Number = ""
			continue
		}
		n++
		parts := append(append([]int(nil), prefix...), n)
		it.Number = joinNumber(parts)
		numberItems(it.children, parts)
	}
}

func joinNumber(parts []int) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, ".")
}
