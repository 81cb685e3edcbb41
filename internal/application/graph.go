package application

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"funkit/internal/domain"
	"funkit/internal/ports"
)

// MissingTitle is the stub title shown for references whose target id does
// not resolve to a stored document.
const MissingTitle = "(missing)"

// Deriver computes navigation structure from inline references. Nothing is
// persisted: children and roots are recomputed from document text on demand,
// so the derived graph can never drift from the store. Each Deriver owns its
// own roots cache; separate tree views over different corpora use separate
// Deriver instances.
type Deriver struct {
	store ports.DocumentStore

	mu        sync.Mutex
	roots     []int64
	haveRoots bool
	sf        singleflight.Group
}

// NewDeriver creates a Deriver over the given store.
func NewDeriver(store ports.DocumentStore) *Deriver {
	return &Deriver{store: store}
}

// Children returns the documents referenced from the parent's body, in
// first-occurrence order with duplicate targets removed. A binary or absent
// parent yields no children. Targets that do not resolve yield a "(missing)"
// stub entry instead of being dropped.
func (d *Deriver) Children(parentID int64) ([]domain.ChildDoc, error) {
	parent, err := d.store.Get(parentID)
	if err != nil {
		return nil, &StoreError{Op: "get", ID: parentID, Err: err}
	}
	if parent == nil || parent.IsBinary() {
		return nil, nil
	}

	seen := make(map[int64]bool)
	var children []domain.ChildDoc
	for _, ref := range domain.Scan(parent.Body) {
		if seen[ref.TargetID] {
			continue
		}
		seen[ref.TargetID] = true

		target, err := d.store.Get(ref.TargetID)
		if err != nil || target == nil {
			// Unresolvable targets stay visible as stubs.
			children = append(children, domain.ChildDoc{ID: ref.TargetID, Title: MissingTitle, Missing: true})
			continue
		}
		children = append(children, domain.ChildDoc{ID: target.ID, Title: target.DisplayTitle()})
	}
	return children, nil
}

// Roots returns the ids of documents that are never referenced from any
// other document. When every document is referenced (a fully cyclic corpus)
// it falls back to all ids so navigation never shows an empty tree.
//
// The result is O(corpus size) to compute, so it is cached per Deriver and
// recomputed only after Refresh. Concurrent calls while a computation is in
// flight coalesce onto the same result; a caller whose context is cancelled
// abandons the shared computation without disturbing it.
func (d *Deriver) Roots(ctx context.Context) ([]int64, error) {
	d.mu.Lock()
	if d.haveRoots {
		roots := slices.Clone(d.roots)
		d.mu.Unlock()
		return roots, nil
	}
	d.mu.Unlock()

	ch := d.sf.DoChan("roots", func() (interface{}, error) {
		roots, err := d.computeRoots()
		if err != nil {
			return nil, err
		}
		d.mu.Lock()
		d.roots = roots
		d.haveRoots = true
		d.mu.Unlock()
		return roots, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]int64)), nil
	}
}

func (d *Deriver) computeRoots() ([]int64, error) {
	allIDs, err := d.store.ListAllIDs()
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}

	referenced := make(map[int64]bool)
	for _, id := range allIDs {
		doc, err := d.store.Get(id)
		if err != nil || doc == nil || doc.IsBinary() {
			// Unreadable and binary documents contribute zero references.
			continue
		}
		for _, ref := range domain.Scan(doc.Body) {
			referenced[ref.TargetID] = true
		}
	}

	var roots []int64
	for _, id := range allIDs {
		if !referenced[id] {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		roots = slices.Clone(allIDs)
	}
	return roots, nil
}

// AllIDs lists every document id without deriving anything. Views use it as
// a last resort when a roots scan fails, so the tree shows everything rather
// than nothing.
func (d *Deriver) AllIDs() ([]int64, error) {
	ids, err := d.store.ListAllIDs()
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return ids, nil
}

// Describe resolves an id to a child-entry shape for tree labels, yielding
// a "(missing)" stub when the id does not resolve.
func (d *Deriver) Describe(id int64) domain.ChildDoc {
	doc, err := d.store.Get(id)
	if err != nil || doc == nil {
		return domain.ChildDoc{ID: id, Title: MissingTitle, Missing: true}
	}
	return domain.ChildDoc{ID: doc.ID, Title: doc.DisplayTitle()}
}

// AncestorChain walks an explicit parent relation from the target up to its
// root, returning ancestor ids root-first (the target itself is excluded).
// When the store exposes no parent relation the chain is empty; that is a
// capability gap, not an error, and callers fall back to opening directly.
func (d *Deriver) AncestorChain(id int64) ([]int64, error) {
	resolver, ok := d.store.(ports.ParentResolver)
	if !ok {
		return nil, nil
	}

	var chain []int64
	seen := map[int64]bool{id: true}
	cur := id
	for {
		parent, ok, err := resolver.Parent(cur)
		if err != nil {
			return nil, &StoreError{Op: "parent", ID: cur, Err: err}
		}
		if !ok || seen[parent] {
			break
		}
		seen[parent] = true
		chain = append(chain, parent)
		cur = parent
	}
	slices.Reverse(chain)
	return chain, nil
}

// Refresh drops the cached roots so the next Roots call rescans the corpus.
func (d *Deriver) Refresh() {
	d.mu.Lock()
	d.haveRoots = false
	d.roots = nil
	d.mu.Unlock()
}
