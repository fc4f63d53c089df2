package cssdecl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssflow/core/cssdecl"
	"github.com/cssflow/core/cssvalue"
)

func declaredDisplay(d cssvalue.Display) cssvalue.Single[cssvalue.Display] {
	return cssvalue.Single[cssvalue.Display]{Presence: cssvalue.Declared, Value: d}
}

// TestCascadeBasics is spec §8 scenario 1: two `display` declarations plus
// `position` and `float` fed in reverse source order, the first `display`
// (in feed order) winning.
func TestCascadeBasics(t *testing.T) {
	t.Parallel()

	s := cssdecl.NewStore()
	block, err := s.OpenBlock()
	require.NoError(t, err)

	// Reverse source order: `display: inline` was last in source, so it is
	// fed (and wins) first.
	require.NoError(t, s.AddValues(cssdecl.Normal, cssdecl.Values{
		BoxStyle: &cssvalue.BoxStyle{Display: declaredDisplay(cssvalue.DisplayInline)},
	}))
	// `display: inherit` is not fed here; `display: block` plays the part
	// of an earlier-in-source declaration that must lose. The invalid
	// `position: neutral` is filtered before reaching the core (spec §7:
	// "Parser-level errors ... never reach the core"), so it is not fed.
	require.NoError(t, s.AddValues(cssdecl.Normal, cssdecl.Values{
		BoxStyle: &cssvalue.BoxStyle{Display: declaredDisplay(cssvalue.DisplayBlock)},
	}))
	require.NoError(t, s.AddValues(cssdecl.Normal, cssdecl.Values{
		BoxStyle: &cssvalue.BoxStyle{
			Position: cssvalue.Single[cssvalue.Position]{Presence: cssvalue.Declared, Value: cssvalue.PositionRelative},
			Float:    cssvalue.Single[cssvalue.Float]{Presence: cssvalue.Declared, Value: cssvalue.FloatNone},
		},
	}))
	require.NoError(t, s.CloseBlock(block))

	var dest cssvalue.BoxStyle
	require.NoError(t, s.Apply(cssvalue.TagBoxStyle, block, cssdecl.Normal, &dest))

	assert.Equal(t, cssvalue.DisplayInline, dest.Display.Value)
	assert.Equal(t, cssvalue.PositionRelative, dest.Position.Value)
	assert.Equal(t, cssvalue.FloatNone, dest.Float.Value)
}

// TestAllUnsetAbsorbsLaterWrites is spec §8 scenario 2.
func TestAllUnsetAbsorbsLaterWrites(t *testing.T) {
	t.Parallel()

	s := cssdecl.NewStore()
	block, err := s.OpenBlock()
	require.NoError(t, err)

	require.NoError(t, s.AddAll(cssdecl.Normal, cssvalue.KeywordUnset))
	// A second add_all call is a no-op; a syntactically invalid `all: ...`
	// would never reach the core, but even a duplicate valid one must not
	// change anything.
	require.NoError(t, s.AddAll(cssdecl.Normal, cssvalue.KeywordInitial))

	require.NoError(t, s.AddValues(cssdecl.Normal, cssdecl.Values{
		BoxStyle: &cssvalue.BoxStyle{Display: declaredDisplay(cssvalue.DisplayBlock)},
	}))
	require.NoError(t, s.CloseBlock(block))

	assert.True(t, s.HasValues(block, cssdecl.Normal))

	var dest cssvalue.BoxStyle
	require.NoError(t, s.Apply(cssvalue.TagBoxStyle, block, cssdecl.Normal, &dest))
	assert.Equal(t, cssvalue.Unset, dest.Display.Presence, "all:unset must still win even though display:block was fed after it")
	assert.Equal(t, cssvalue.Unset, dest.Position.Presence)
	assert.Equal(t, cssvalue.Unset, dest.Float.Presence)
}

// TestMultiValueWithImportance is spec §8 scenario 3.
func TestMultiValueWithImportance(t *testing.T) {
	t.Parallel()

	s := cssdecl.NewStore()
	block, err := s.OpenBlock()
	require.NoError(t, err)

	require.NoError(t, s.AddValues(cssdecl.Normal, cssdecl.Values{
		BackgroundClip: &cssvalue.BackgroundClip{
			Clip: cssvalue.Multi[cssvalue.ClipBox]{
				Presence: cssvalue.Declared,
				Values:   []cssvalue.ClipBox{cssvalue.ClipBorderBox, cssvalue.ClipPaddingBox},
			},
		},
	}))
	require.NoError(t, s.AddValues(cssdecl.Important, cssdecl.Values{
		BackgroundClip: &cssvalue.BackgroundClip{
			Clip: cssvalue.Multi[cssvalue.ClipBox]{Presence: cssvalue.Initial},
		},
	}))
	require.NoError(t, s.CloseBlock(block))

	var normalDest, importantDest cssvalue.BackgroundClip
	require.NoError(t, s.Apply(cssvalue.TagBackgroundClip, block, cssdecl.Normal, &normalDest))
	require.NoError(t, s.Apply(cssvalue.TagBackgroundClip, block, cssdecl.Important, &importantDest))

	assert.Equal(t, []cssvalue.ClipBox{cssvalue.ClipBorderBox, cssvalue.ClipPaddingBox}, normalDest.Clip.Values)
	assert.Equal(t, cssvalue.Initial, importantDest.Clip.Presence)
}

func TestOpenBlockWhileOpenPanics(t *testing.T) {
	t.Parallel()

	s := cssdecl.NewStore()
	_, err := s.OpenBlock()
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = s.OpenBlock()
	})
}

func TestAddValuesRequiresOpenBlock(t *testing.T) {
	t.Parallel()

	s := cssdecl.NewStore()
	err := s.AddValues(cssdecl.Normal, cssdecl.Values{BoxStyle: &cssvalue.BoxStyle{}})
	assert.Error(t, err)
}

func TestBlockIdsIncreaseMonotonically(t *testing.T) {
	t.Parallel()

	s := cssdecl.NewStore()
	var ids []cssdecl.BlockId
	for i := 0; i < 5; i++ {
		id, err := s.OpenBlock()
		require.NoError(t, err)
		require.NoError(t, s.CloseBlock(id))
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}
