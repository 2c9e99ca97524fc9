package numbering

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func lvl(level int, format Format, text string) LevelDefinition {
	return LevelDefinition{
		Level:         level,
		Start:         1,
		Format:        format,
		Text:          text,
		Justification: JustifyLeft,
		Suffix:        SuffixTab,
	}
}

// outline returns a three-level "1.", "1.a.", "1.a.i." scheme.
func outline(id int) AbstractNumbering {
	return AbstractNumbering{
		ID: id,
		Levels: []LevelDefinition{
			lvl(0, FormatDecimal, "%1."),
			lvl(1, FormatLowerLetter, "%1.%2."),
			lvl(2, FormatLowerRoman, "%1.%2.%3."),
		},
	}
}

func mustLoad(t *testing.T, defs Definitions, opts ...RegistryOption) *Resolver {
	t.Helper()
	res, err := Load(defs, opts...)
	require.NoError(t, err)
	return res
}

func render(t *testing.T, res *Resolver, state *CounterState, numID, level int) Label {
	t.Helper()
	label, err := res.RenderLabel(state, numID, level)
	require.NoError(t, err)
	return label
}

func TestRenderLabel_RestartSequence(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})
	state := NewCounterState()

	levels := []int{0, 1, 1, 0, 1}
	wantValues := []int{1, 1, 2, 2, 1}
	wantText := []string{"1.", "1.a.", "1.b.", "2.", "2.a."}

	for i, level := range levels {
		label := render(t, res, state, 1, level)
		assert.Equal(t, wantValues[i], label.Value, "paragraph %d", i)
		assert.Equal(t, wantText[i], label.Text, "paragraph %d", i)
		assert.Equal(t, SuffixTab, label.Suffix)
		assert.Empty(t, label.Warnings)
	}
}

func TestRenderLabel_DeepRestart(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})
	state := NewCounterState()

	var got []string
	for _, level := range []int{0, 1, 2, 2, 1, 2, 0, 2} {
		got = append(got, render(t, res, state, 1, level).Text)
	}

	assert.Equal(t, []string{
		"1.", "1.a.", "1.a.i.", "1.a.ii.", "1.b.", "1.b.i.", "2.", "2.a.i.",
	}, got)
}

func TestRenderLabel_FormatMatchesAbstract(t *testing.T) {
	formats := []struct {
		format Format
		want   string
	}{
		{FormatDecimal, "1"},
		{FormatUpperRoman, "I"},
		{FormatLowerRoman, "i"},
		{FormatUpperLetter, "A"},
		{FormatLowerLetter, "a"},
		{FormatOrdinal, "1st"},
		{FormatCardinalText, "One"},
	}

	for _, f := range formats {
		t.Run(string(f.format), func(t *testing.T) {
			res := mustLoad(t, Definitions{
				Abstracts: []AbstractNumbering{{ID: 3, Levels: []LevelDefinition{lvl(0, f.format, "%1")}}},
				Instances: []NumberingInstance{{ID: 9, AbstractID: 3}},
			})
			label := render(t, res, NewCounterState(), 9, 0)
			assert.Equal(t, f.want, label.Text)
			assert.Equal(t, f.format, label.Format)
		})
	}
}

func TestRenderLabel_AncestorNeverUsed(t *testing.T) {
	abs := outline(0)
	abs.Levels[0].Start = 4
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{abs},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})

	// Level 1 used before level 0: the ancestor shows its start value.
	label := render(t, res, NewCounterState(), 1, 1)
	assert.Equal(t, "4.a.", label.Text)
}

func TestRenderLabel_OverrideStart(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{
			ID:         2,
			AbstractID: 0,
			Overrides:  []LevelOverride{{Level: 0, Start: intPtr(5)}},
		}},
	})
	state := NewCounterState()

	assert.Equal(t, 5, render(t, res, state, 2, 0).Value)
	assert.Equal(t, 6, render(t, res, state, 2, 0).Value)
}

func TestRenderLabel_OverrideStartAfterRestart(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{
			ID:         2,
			AbstractID: 0,
			Overrides:  []LevelOverride{{Level: 1, Start: intPtr(3)}},
		}},
	})
	state := NewCounterState()

	var got []string
	for _, level := range []int{0, 1, 1, 0, 1} {
		got = append(got, render(t, res, state, 2, level).Text)
	}
	assert.Equal(t, []string{"1.", "1.c.", "1.d.", "2.", "2.c."}, got)
}

func TestRenderLabel_OverrideLevel(t *testing.T) {
	replacement := lvl(0, FormatLowerRoman, "(%1)")
	replacement.Suffix = SuffixSpace

	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{
			{ID: 1, AbstractID: 0},
			{ID: 2, AbstractID: 0, Overrides: []LevelOverride{{Level: 0, Definition: &replacement}}},
		},
	})
	state := NewCounterState()

	plain := []string{}
	overridden := []string{}
	for i := 0; i < 3; i++ {
		plain = append(plain, render(t, res, state, 1, 0).Text)
		label := render(t, res, state, 2, 0)
		overridden = append(overridden, label.Text)
		assert.Equal(t, SuffixSpace, label.Suffix)
		assert.Equal(t, i+1, label.Value)
	}

	assert.Equal(t, []string{"1.", "2.", "3."}, plain)
	assert.Equal(t, []string{"(i)", "(ii)", "(iii)"}, overridden)
}

func TestRenderLabel_OverrideStartWinsOverOverrideLevel(t *testing.T) {
	replacement := lvl(0, FormatDecimal, "%1.")
	replacement.Start = 10

	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{
			ID:         1,
			AbstractID: 0,
			Overrides:  []LevelOverride{{Level: 0, Start: intPtr(20), Definition: &replacement}},
		}},
	})

	assert.Equal(t, "20.", render(t, res, NewCounterState(), 1, 0).Text)
}

func TestRenderLabel_InertOverride(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0, Overrides: []LevelOverride{{Level: 0}}}},
	})

	eff, err := res.ResolveLevel(1, 0)
	require.NoError(t, err)
	assert.False(t, eff.Overridden)
	assert.Equal(t, "1.", render(t, res, NewCounterState(), 1, 0).Text)
}

func TestRenderLabel_OverrideLevelFillsMissingLevel(t *testing.T) {
	extra := lvl(5, FormatUpperLetter, "%6)")
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0, Overrides: []LevelOverride{{Level: 5, Definition: &extra}}}},
	})

	assert.Equal(t, "A)", render(t, res, NewCounterState(), 1, 5).Text)
}

func TestRenderLabel_RomanFallback(t *testing.T) {
	def := lvl(0, FormatUpperRoman, "%1.")
	def.Start = 3999
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{{ID: 0, Levels: []LevelDefinition{def}}},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})
	state := NewCounterState()

	first := render(t, res, state, 1, 0)
	assert.Equal(t, "MMMCMXCIX.", first.Text)
	assert.Empty(t, first.Warnings)

	second := render(t, res, state, 1, 0)
	assert.Equal(t, "4000.", second.Text)
	require.Len(t, second.Warnings, 1)
	assert.True(t, errors.Is(second.Warnings[0], ErrFormatFallback))
}

func TestRenderLabel_BulletAndNone(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{{ID: 0, Levels: []LevelDefinition{
			lvl(0, FormatBullet, "•"),
			lvl(1, FormatNone, "%2."),
			lvl(2, FormatBullet, "%1"),
		}}},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})
	state := NewCounterState()

	assert.Equal(t, "•", render(t, res, state, 1, 0).Text)

	none := render(t, res, state, 1, 1)
	assert.Equal(t, "", none.Text)
	assert.Equal(t, "", none.WithSuffix())

	// Bullet patterns are used literally.
	assert.Equal(t, "%1", render(t, res, state, 1, 2).Text)
}

func TestRenderLabel_LegalNumbering(t *testing.T) {
	abs := AbstractNumbering{ID: 0, Levels: []LevelDefinition{
		lvl(0, FormatUpperRoman, "%1."),
		lvl(1, FormatDecimal, "%1.%2"),
	}}
	abs.Levels[1].Legal = true
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{abs},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})
	state := NewCounterState()

	render(t, res, state, 1, 0)
	assert.Equal(t, "II.", render(t, res, state, 1, 0).Text)
	assert.Equal(t, "2.1", render(t, res, state, 1, 1).Text)
}

func TestRenderLabel_LevelRestart(t *testing.T) {
	abs := outline(0)
	abs.Levels[1].Restart = intPtr(0) // never restart
	abs.Levels[2].Restart = intPtr(1) // restart only after level 0
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{abs},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})
	state := NewCounterState()

	var got []string
	for _, level := range []int{0, 1, 2, 1, 2, 0, 1, 2} {
		got = append(got, render(t, res, state, 1, level).Text)
	}
	assert.Equal(t, []string{
		"1.", "1.a.", "1.a.i.", "1.b.", "1.b.ii.", "2.", "2.c.", "2.c.i.",
	}, got)
}

func TestRenderLabel_InstancesCountIndependently(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}, {ID: 2, AbstractID: 0}},
	})
	state := NewCounterState()

	assert.Equal(t, "1.", render(t, res, state, 1, 0).Text)
	assert.Equal(t, "2.", render(t, res, state, 1, 0).Text)
	assert.Equal(t, "1.", render(t, res, state, 2, 0).Text)
	assert.Equal(t, "3.", render(t, res, state, 1, 0).Text)
	assert.Equal(t, 2, state.Len())
}

func TestRenderLabel_Errors(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{
			{ID: 1, AbstractID: 0},
			{ID: 2, AbstractID: 42},
		},
	})
	state := NewCounterState()

	_, err := res.RenderLabel(state, 99, 0)
	assert.True(t, errors.Is(err, ErrUnknownInstance))

	_, err = res.RenderLabel(state, 2, 0)
	assert.True(t, errors.Is(err, ErrUnknownAbstractNumbering))

	_, err = res.RenderLabel(state, 1, 7)
	assert.True(t, errors.Is(err, ErrUnknownLevel))

	assert.Equal(t, 0, state.Len(), "failed renders must not touch counters")
}

func TestRenderLabel_WithSuffix(t *testing.T) {
	def := lvl(0, FormatDecimal, "%1)")
	def.Suffix = SuffixSpace
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{{ID: 0, Levels: []LevelDefinition{def}}},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})

	assert.Equal(t, "1) ", render(t, res, NewCounterState(), 1, 0).WithSuffix())
}

func TestPass(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})

	a, b := res.Pass(), res.Pass()
	for i := 0; i < 3; i++ {
		_, err := a.RenderLabel(1, 0)
		require.NoError(t, err)
	}
	label, err := b.RenderLabel(1, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, label.Value, "passes must not share counters")
	v, ok := a.State().Value(1, 0)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestPass_ConcurrentPassesShareTables(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})

	const passes = 8
	results := make([][]string, passes)
	var wg sync.WaitGroup
	for i := 0; i < passes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pass := res.Pass()
			for _, level := range []int{0, 1, 1, 0, 1} {
				label, err := pass.RenderLabel(1, level)
				if err != nil {
					return
				}
				results[i] = append(results[i], label.Text)
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, []string{"1.", "1.a.", "1.b.", "2.", "2.a."}, got, "pass %d", i)
	}
}

func TestLoad_Duplicates(t *testing.T) {
	_, err := Load(Definitions{Abstracts: []AbstractNumbering{outline(0), outline(0)}})
	assert.True(t, errors.Is(err, ErrDuplicateDefinition))

	dupLevel := outline(1)
	dupLevel.Levels = append(dupLevel.Levels, lvl(0, FormatDecimal, "%1"))
	_, err = Load(Definitions{Abstracts: []AbstractNumbering{dupLevel}})
	assert.True(t, errors.Is(err, ErrDuplicateDefinition))

	_, err = Load(Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1}, {ID: 1}},
	})
	assert.True(t, errors.Is(err, ErrDuplicateDefinition))
}

func TestCounterState_Reset(t *testing.T) {
	res := mustLoad(t, Definitions{
		Abstracts: []AbstractNumbering{outline(0)},
		Instances: []NumberingInstance{{ID: 1, AbstractID: 0}},
	})
	state := NewCounterState()
	render(t, res, state, 1, 0)
	render(t, res, state, 1, 1)
	assert.Equal(t, 2, state.Len())

	state.Reset()
	assert.Equal(t, 0, state.Len())
	_, ok := state.Value(1, 0)
	assert.False(t, ok)
}
