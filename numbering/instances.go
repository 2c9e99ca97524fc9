package numbering

import "fmt"

type instanceEntry struct {
	abstractID int
	overrides  map[int]LevelOverride
}

// InstanceTable maps numbering instance ids to their abstract numbering and
// per-level overrides. It is immutable after construction.
type InstanceTable struct {
	registry  *Registry
	instances map[int]instanceEntry
}

// NewInstanceTable indexes the numbering instances. Abstract references are
// not checked here; a dangling reference surfaces when a level is resolved.
// When an instance overrides the same level twice, the later entry wins.
func NewInstanceTable(instances []NumberingInstance, registry *Registry) (*InstanceTable, error) {
	t := &InstanceTable{
		registry:  registry,
		instances: make(map[int]instanceEntry, len(instances)),
	}

	for _, inst := range instances {
		if _, dup := t.instances[inst.ID]; dup {
			return nil, fmt.Errorf("%w: numId %d", ErrDuplicateDefinition, inst.ID)
		}
		entry := instanceEntry{abstractID: inst.AbstractID}
		if len(inst.Overrides) > 0 {
			entry.overrides = make(map[int]LevelOverride, len(inst.Overrides))
			for _, o := range inst.Overrides {
				entry.overrides[o.Level] = o
			}
		}
		t.instances[inst.ID] = entry
	}

	return t, nil
}

// Registry returns the abstract numbering registry behind the table.
func (t *InstanceTable) Registry() *Registry {
	return t.registry
}

// AbstractID returns the abstract numbering an instance instantiates.
func (t *InstanceTable) AbstractID(instanceID int) (int, bool) {
	e, ok := t.instances[instanceID]
	return e.abstractID, ok
}

// Override returns the override for level of the instance, if any.
func (t *InstanceTable) Override(instanceID, level int) (LevelOverride, bool) {
	e, ok := t.instances[instanceID]
	if !ok {
		return LevelOverride{}, false
	}
	o, ok := e.overrides[level]
	return o, ok
}

// ResolveInstanceLevel returns the effective level for a paragraph that
// references (instanceID, level).
//
// An overrideLevel replaces the abstract definition entirely and also
// satisfies a level the abstract does not define. An overrideStart replaces
// the start value and takes precedence over overrideLevel's own start.
func (t *InstanceTable) ResolveInstanceLevel(instanceID, level int) (EffectiveLevel, error) {
	e, ok := t.instances[instanceID]
	if !ok {
		return EffectiveLevel{}, unknownInstance(instanceID)
	}

	override, hasOverride := e.overrides[level]

	var def LevelDefinition
	switch {
	case hasOverride && override.Definition != nil:
		// Still surface a dangling abstract reference.
		if _, ok := t.registry.Abstract(e.abstractID); !ok {
			return EffectiveLevel{}, unknownAbstract(e.abstractID)
		}
		def = *override.Definition
		def.Level = level
	default:
		var err error
		def, err = t.registry.ResolveAbstractLevel(e.abstractID, level)
		if err != nil {
			return EffectiveLevel{}, fmt.Errorf("numId %d: %w", instanceID, err)
		}
	}

	eff := EffectiveLevel{
		InstanceID:     instanceID,
		AbstractID:     e.abstractID,
		Level:          level,
		Start:          def.Start,
		Format:         def.Format,
		Text:           def.Text,
		Justification:  def.Justification,
		Suffix:         def.Suffix,
		ParagraphStyle: def.ParagraphStyle,
		Paragraph:      def.Paragraph,
		Restart:        def.Restart,
		Legal:          def.Legal,
		Overridden:     hasOverride && override.Definition != nil,
	}
	if hasOverride && override.Start != nil {
		eff.Start = *override.Start
		eff.Overridden = true
	}
	if eff.Suffix == "" {
		eff.Suffix = SuffixTab
	}

	return eff, nil
}
