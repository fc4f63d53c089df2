// Package cssdecl implements the C2 component: the declared-value store, an
// arena-backed, append-only table mapping (block, aggregate, field,
// importance) -> value with partial-cascade semantics (spec §4.1).
package cssdecl

import (
	"fmt"
	"math"

	"go.uber.org/atomic"
	"golang.org/x/xerrors"

	"oss.terrastruct.com/util-go/xdefer"

	"github.com/cssflow/core/cssdecl/valuearena"
	"github.com/cssflow/core/cssflowerr"
	"github.com/cssflow/core/cssvalue"
)

// BlockId identifies a declaration block. BlockId ordering is the tie-break
// for cascade order (spec §3); the zero value is never issued and marks an
// invalid/unset id.
type BlockId uint32

// Importance is the CSS `!important` axis: every block owns two logically
// parallel sub-blocks, one per importance (spec §3).
type Importance uint8

const (
	Normal Importance = iota
	Important

	numImportances
)

func (i Importance) String() string {
	if i == Important {
		return "important"
	}
	return "normal"
}

// Values is the heterogeneous record spec §4.1's add_values takes: a
// present field (non-nil pointer) touches that aggregate; an absent one
// (nil) leaves it alone. Each pointer must be the concrete aggregate type
// named by its field (e.g. BoxStyle is *cssvalue.BoxStyle).
type Values struct {
	BoxStyle        *cssvalue.BoxStyle
	HorizontalEdges *cssvalue.HorizontalEdges
	VerticalEdges   *cssvalue.VerticalEdges
	BackgroundClip  *cssvalue.BackgroundClip
	TextColor       *cssvalue.TextColor
	BackgroundColor *cssvalue.BackgroundColor
	BorderColors    *cssvalue.BorderColors
}

type allState struct {
	set     bool
	keyword cssvalue.CssWideKeyword
}

type blockState struct {
	closed bool
	all    [numImportances]allState
	touched [numImportances]bool

	boxStyle        [numImportances]cssvalue.BoxStyle
	horizontalEdges [numImportances]cssvalue.HorizontalEdges
	verticalEdges   [numImportances]cssvalue.VerticalEdges
	backgroundClip  [numImportances]cssvalue.BackgroundClip
	textColor       [numImportances]cssvalue.TextColor
	backgroundColor [numImportances]cssvalue.BackgroundColor
	borderColors    [numImportances]cssvalue.BorderColors
}

// Store is the declared-value table for one document load (spec §5: "C2 is
// process-long within a document load"). The BlockId counter is an atomic
// so independent documents — or a producer feeding new blocks while a
// consumer applies older, already-closed ones — never race on id
// allocation, matching spec §5's allowance for parallelizing across
// independent documents.
type Store struct {
	nextID atomic.Uint32
	blocks map[BlockId]*blockState
	openID BlockId

	arena *valuearena.Arena
}

// NewStore creates an empty declared-value store.
func NewStore() *Store {
	return &Store{
		blocks: make(map[BlockId]*blockState),
		arena:  valuearena.New(),
	}
}

// OpenBlock creates a new, empty, currently-open block (spec §4.1). Only one
// block may be open at a time; calling OpenBlock while one is already open
// is a caller invariant violation and panics, matching the teacher's own
// treatment of invariant violations (see SPEC_FULL.md §7).
func (s *Store) OpenBlock() (BlockId, error) {
	if s.openID != 0 {
		panic(fmt.Sprintf("cssdecl: block %d is still open", s.openID))
	}
	next := s.nextID.Inc()
	if next == math.MaxUint32 {
		return 0, cssflowerr.Overflow("cssdecl: block id space exhausted")
	}
	id := BlockId(next)
	s.blocks[id] = &blockState{}
	s.openID = id
	return id, nil
}

// CloseBlock marks the open block immutable. It is a no-op to call
// CloseBlock for a block that isn't open (including one already closed).
func (s *Store) CloseBlock(id BlockId) (err error) {
	defer xdefer.Errorf(&err, "cssdecl: close block %d", id)

	if s.openID != id {
		return nil
	}
	b, ok := s.blocks[id]
	if !ok {
		return fmt.Errorf("unknown block")
	}
	b.closed = true
	s.openID = 0
	return nil
}

func (s *Store) mustOpenBlock() (*blockState, error) {
	if s.openID == 0 {
		return nil, fmt.Errorf("cssdecl: no block is open")
	}
	return s.blocks[s.openID], nil
}

// AddAll records the `all` shorthand for the open block's given importance
// (spec §4.1). If `all` is already set for that importance, this is a
// no-op: the first call wins.
func (s *Store) AddAll(importance Importance, keyword cssvalue.CssWideKeyword) error {
	b, err := s.mustOpenBlock()
	if err != nil {
		return err
	}
	if b.all[importance].set {
		return nil
	}
	b.all[importance] = allState{set: true, keyword: keyword}
	b.touched[importance] = true
	return nil
}

// AddValues merges values into the open block's given importance,
// respecting first-writer-wins per field and the `all` absorption rule
// (spec §4.1): once `all` has been set for this importance, AddValues is a
// total no-op.
func (s *Store) AddValues(importance Importance, values Values) error {
	b, err := s.mustOpenBlock()
	if err != nil {
		return err
	}
	if b.all[importance].set {
		return nil
	}

	if values.BoxStyle != nil {
		b.boxStyle[importance].mergeFrom(*values.BoxStyle)
		b.touched[importance] = true
	}
	if values.HorizontalEdges != nil {
		b.horizontalEdges[importance].mergeFrom(*values.HorizontalEdges)
		b.touched[importance] = true
	}
	if values.VerticalEdges != nil {
		b.verticalEdges[importance].mergeFrom(*values.VerticalEdges)
		b.touched[importance] = true
	}
	if values.BackgroundClip != nil {
		if len(values.BackgroundClip.Clip.Values) > cssvalue.MaxMultiLen {
			return cssflowerr.Overflow("cssdecl: background-clip list exceeds 63 entries")
		}
		clip := *values.BackgroundClip
		if clip.Clip.Presence == cssvalue.Declared {
			clip.Clip.Values = valuearena.Append(s.arena, clip.Clip.Values)
		}
		b.backgroundClip[importance].mergeFrom(clip)
		b.touched[importance] = true
	}
	if values.TextColor != nil {
		b.textColor[importance].mergeFrom(*values.TextColor)
		b.touched[importance] = true
	}
	if values.BackgroundColor != nil {
		b.backgroundColor[importance].mergeFrom(*values.BackgroundColor)
		b.touched[importance] = true
	}
	if values.BorderColors != nil {
		b.borderColors[importance].mergeFrom(*values.BorderColors)
		b.touched[importance] = true
	}
	return nil
}

// HasValues reports whether any declaration (a field, or `all`) has been
// recorded for block at the given importance.
func (s *Store) HasValues(block BlockId, importance Importance) bool {
	b, ok := s.blocks[block]
	if !ok {
		return false
	}
	return b.touched[importance]
}

// Apply reads block's stored partial-cascade for one aggregate at the given
// importance and merges it into dest (same concrete aggregate pointer type
// as tag), writing only fields still Undeclared in dest. Unwritten fields
// are filled from the block's `all(importance)` keyword if set (spec
// §4.1).
func (s *Store) Apply(tag cssvalue.AggregateTag, block BlockId, importance Importance, dest any) (err error) {
	defer xdefer.Errorf(&err, "cssdecl: apply %s for block %d/%s", tag, block, importance)

	b, ok := s.blocks[block]
	if !ok {
		return fmt.Errorf("unknown block")
	}

	stored, err := s.storedAggregate(b, tag, importance)
	if err != nil {
		return xerrors.Errorf("read stored aggregate: %w", err)
	}
	if err := cssvalue.MergeInto(tag, dest, stored); err != nil {
		return err
	}
	if all := b.all[importance]; all.set {
		if err := cssvalue.FillUndeclaredFromAll(tag, dest, all.keyword); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) storedAggregate(b *blockState, tag cssvalue.AggregateTag, importance Importance) (any, error) {
	switch tag {
	case cssvalue.TagBoxStyle:
		return &b.boxStyle[importance], nil
	case cssvalue.TagHorizontalEdges:
		return &b.horizontalEdges[importance], nil
	case cssvalue.TagVerticalEdges:
		return &b.verticalEdges[importance], nil
	case cssvalue.TagBackgroundClip:
		return &b.backgroundClip[importance], nil
	case cssvalue.TagTextColor:
		return &b.textColor[importance], nil
	case cssvalue.TagBackgroundColor:
		return &b.backgroundColor[importance], nil
	case cssvalue.TagBorderColors:
		return &b.borderColors[importance], nil
	default:
		return nil, fmt.Errorf("unknown aggregate tag %s", tag)
	}
}
