package numbering

// Label is the resolved list label of one paragraph.
type Label struct {
	InstanceID    int
	Level         int
	Text          string
	Suffix        Suffix
	Value         int // counter value of the paragraph's own level
	Format        Format
	Justification Justification
	Paragraph     ParagraphProperties

	// Warnings holds non-fatal conditions, such as *FallbackError.
	Warnings []error
}

// WithSuffix returns the label followed by its suffix separator.
// An empty label yields the empty string.
func (l Label) WithSuffix() string {
	if l.Text == "" {
		return ""
	}
	return l.Text + l.Suffix.Separator()
}

// Resolver renders list labels from immutable numbering tables. It keeps no
// per-pass state and may be shared by concurrent passes, each with its own
// CounterState.
type Resolver struct {
	instances *InstanceTable
}

// NewResolver returns a resolver over the given instance table.
func NewResolver(instances *InstanceTable) *Resolver {
	return &Resolver{instances: instances}
}

// Load builds the level store, registry and instance table for defs and
// returns a resolver over them.
func Load(defs Definitions, opts ...RegistryOption) (*Resolver, error) {
	registry, err := NewRegistry(defs.Abstracts, opts...)
	if err != nil {
		return nil, err
	}
	instances, err := NewInstanceTable(defs.Instances, registry)
	if err != nil {
		return nil, err
	}
	return NewResolver(instances), nil
}

// Instances returns the instance table behind the resolver.
func (r *Resolver) Instances() *InstanceTable {
	return r.instances
}

// ResolveLevel returns the effective level without touching any counter.
func (r *Resolver) ResolveLevel(instanceID, level int) (EffectiveLevel, error) {
	return r.instances.ResolveInstanceLevel(instanceID, level)
}

// RenderLabel advances the counter of (instanceID, level) in state and
// renders the paragraph's label. Paragraphs must be passed in document
// order. On error, state is left unchanged.
func (r *Resolver) RenderLabel(state *CounterState, instanceID, level int) (Label, error) {
	eff, err := r.instances.ResolveInstanceLevel(instanceID, level)
	if err != nil {
		return Label{}, err
	}

	value := state.advance(instanceID, level, eff.Start)
	state.resetDeeper(instanceID, level, func(deeper int) bool {
		return r.restarts(instanceID, deeper, level)
	})

	label := Label{
		InstanceID:    instanceID,
		Level:         level,
		Suffix:        eff.Suffix,
		Value:         value,
		Format:        eff.Format,
		Justification: eff.Justification,
		Paragraph:     eff.Paragraph,
	}

	switch eff.Format {
	case FormatNone:
		return label, nil
	case FormatBullet:
		label.Text = eff.Text
		return label, nil
	}

	label.Text = renderPattern(eff.Text, func(placeholder int) string {
		text, warn := r.placeholderText(state, eff, placeholder)
		if warn != nil {
			label.Warnings = append(label.Warnings, warn)
		}
		return text
	})

	return label, nil
}

// restarts reports whether using level resets the counter of deeper.
func (r *Resolver) restarts(instanceID, deeper, level int) bool {
	eff, err := r.instances.ResolveInstanceLevel(instanceID, deeper)
	if err != nil || eff.Restart == nil {
		return true
	}
	return level < *eff.Restart
}

// placeholderText renders the %N placeholder for level placeholder while
// rendering eff. A level that was never used shows its effective start.
func (r *Resolver) placeholderText(state *CounterState, eff EffectiveLevel, placeholder int) (string, error) {
	format := eff.Format
	value, active := state.Value(eff.InstanceID, placeholder)

	if placeholder != eff.Level {
		other, err := r.instances.ResolveInstanceLevel(eff.InstanceID, placeholder)
		if err != nil {
			// Word renders references to undefined levels as nothing.
			return "", nil
		}
		format = other.Format
		if !active {
			value = other.Start
		}
	}

	if eff.Legal && format.IsNumeric() {
		format = FormatDecimal
	}
	if format == FormatNone || format == FormatBullet {
		return "", nil
	}

	return FormatNumber(format, value)
}

// Pass is a render pass: a resolver paired with its own counter state.
type Pass struct {
	resolver *Resolver
	state    *CounterState
}

// Pass starts a new render pass with empty counters.
func (r *Resolver) Pass() *Pass {
	return &Pass{resolver: r, state: NewCounterState()}
}

// RenderLabel renders the next paragraph of the pass.
func (p *Pass) RenderLabel(instanceID, level int) (Label, error) {
	return p.resolver.RenderLabel(p.state, instanceID, level)
}

// State returns the pass's counter state.
func (p *Pass) State() *CounterState {
	return p.state
}
