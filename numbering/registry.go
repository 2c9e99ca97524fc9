package numbering

import "fmt"

// StyleLookup maps a numbering style id to the abstract numbering that
// carries its definition. Implementations typically consult the document's
// style sheet (the style's w:numPr/w:numId, then that instance's abstract).
type StyleLookup interface {
	AbstractForStyle(styleID string) (abstractID int, ok bool)
}

// StyleLookupFunc adapts a function to StyleLookup.
type StyleLookupFunc func(styleID string) (int, bool)

// AbstractForStyle calls f(styleID).
func (f StyleLookupFunc) AbstractForStyle(styleID string) (int, bool) {
	return f(styleID)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStyleLookup sets the style lookup used for numStyleLink indirection
// when no abstract in the registry declares the style itself.
func WithStyleLookup(l StyleLookup) RegistryOption {
	return func(r *Registry) {
		r.styles = l
	}
}

// WithMaxLinkDepth bounds the number of style links followed for one level.
func WithMaxLinkDepth(depth int) RegistryOption {
	return func(r *Registry) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// Registry resolves levels of abstract numberings, following style links.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	abstracts map[int]*AbstractNumbering
	styleDefs map[string]int // styleLink -> abstractID
	store     *LevelStore
	styles    StyleLookup
	maxDepth  int
}

// NewRegistry builds a registry over the given abstract numberings.
func NewRegistry(abstracts []AbstractNumbering, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		abstracts: make(map[int]*AbstractNumbering, len(abstracts)),
		styleDefs: make(map[string]int),
		maxDepth:  8,
	}
	for _, opt := range opts {
		opt(r)
	}

	for i := range abstracts {
		a := abstracts[i]
		if _, dup := r.abstracts[a.ID]; dup {
			return nil, fmt.Errorf("%w: abstractNumId %d", ErrDuplicateDefinition, a.ID)
		}
		r.abstracts[a.ID] = &a
		if a.StyleLink != nil && *a.StyleLink != "" {
			// First declaration wins, matching document order.
			if _, seen := r.styleDefs[*a.StyleLink]; !seen {
				r.styleDefs[*a.StyleLink] = a.ID
			}
		}
	}

	store, err := NewLevelStore(abstracts)
	if err != nil {
		return nil, err
	}
	r.store = store

	return r, nil
}

// Abstract returns the abstract numbering with the given id.
func (r *Registry) Abstract(id int) (*AbstractNumbering, bool) {
	a, ok := r.abstracts[id]
	return a, ok
}

// Store returns the underlying level store.
func (r *Registry) Store() *LevelStore {
	return r.store
}

// ResolveAbstractLevel returns the definition that governs level of the
// abstract numbering abstractID.
//
// When the abstract is style-linked, formatting fields come from the linked
// numbering's level while paragraph properties still come from the local
// level if one exists. An unresolvable link falls back to the local level.
func (r *Registry) ResolveAbstractLevel(abstractID, level int) (LevelDefinition, error) {
	if _, ok := r.abstracts[abstractID]; !ok {
		return LevelDefinition{}, unknownAbstract(abstractID)
	}
	visited := make(map[int]bool)
	return r.resolve(abstractID, level, visited)
}

func (r *Registry) resolve(abstractID, level int, visited map[int]bool) (LevelDefinition, error) {
	visited[abstractID] = true

	a := r.abstracts[abstractID]
	local, hasLocal := r.store.Lookup(abstractID, level)

	switch src := a.Source().(type) {
	case StyleLinked:
		target, ok := r.linkedAbstract(src.StyleID)
		if ok && !visited[target] && len(visited) <= r.maxDepth {
			linked, err := r.resolve(target, level, visited)
			if err == nil {
				return mergeLinked(local, hasLocal, linked), nil
			}
		}
	case LocalLevels:
	}

	if !hasLocal {
		return LevelDefinition{}, unknownLevel(abstractID, level)
	}
	return local, nil
}

// linkedAbstract finds the abstract numbering that defines styleID.
func (r *Registry) linkedAbstract(styleID string) (int, bool) {
	if id, ok := r.styleDefs[styleID]; ok {
		return id, true
	}
	if r.styles != nil {
		if id, ok := r.styles.AbstractForStyle(styleID); ok {
			if _, known := r.abstracts[id]; known {
				return id, true
			}
		}
	}
	return 0, false
}

// mergeLinked takes formatting from the linked level and structural
// paragraph properties from the local level when present.
func mergeLinked(local LevelDefinition, hasLocal bool, linked LevelDefinition) LevelDefinition {
	out := linked
	if hasLocal {
		out.Level = local.Level
		if !local.Paragraph.IsZero() {
			out.Paragraph = local.Paragraph
		}
	}
	return out
}
