package cssvalue

import "fmt"

// AggregateTag enumerates the closed set of aggregates (spec §3: "the
// closed set of aggregate tags is fixed at implementation time").
type AggregateTag uint8

const (
	TagBoxStyle AggregateTag = iota
	TagHorizontalEdges
	TagVerticalEdges
	TagBackgroundClip
	TagTextColor
	TagBackgroundColor
	TagBorderColors

	numAggregateTags
)

// Tags lists every tag in declaration order, for callers that need to walk
// the whole closed set.
func Tags() []AggregateTag {
	tags := make([]AggregateTag, numAggregateTags)
	for i := range tags {
		tags[i] = AggregateTag(i)
	}
	return tags
}

func (t AggregateTag) String() string {
	switch t {
	case TagBoxStyle:
		return "box_style"
	case TagHorizontalEdges:
		return "horizontal_edges"
	case TagVerticalEdges:
		return "vertical_edges"
	case TagBackgroundClip:
		return "background_clip"
	case TagTextColor:
		return "text_color"
	case TagBackgroundColor:
		return "background_color"
	case TagBorderColors:
		return "border_colors"
	default:
		return fmt.Sprintf("AggregateTag(%d)", uint8(t))
	}
}

// Arity classifies an aggregate by whether its fields hold at most one value
// (Single) or an ordered list (Multi), per spec §3.
type Arity uint8

const (
	ArityMixed Arity = iota
	ArityAllSingle
	ArityAllMulti
)

// Arity reports this tag's field-arity classification.
func (t AggregateTag) Arity() Arity {
	if t == TagBackgroundClip {
		return ArityAllMulti
	}
	return ArityAllSingle
}

// Inheritance classifies an aggregate by spec §3's "all fields inherit, or
// none do" rule.
type Inheritance uint8

const (
	InheritNone Inheritance = iota
	InheritAll
)

// Inheritance reports this tag's inheritance classification.
func (t AggregateTag) Inheritance() Inheritance {
	if t == TagTextColor {
		return InheritAll
	}
	return InheritNone
}

// New returns a fresh, all-Undeclared aggregate value for tag, as the
// concrete Go type (*BoxStyle, *HorizontalEdges, ...) boxed in an any. This
// is the zero-value starting point for both C2's per-block storage and C3's
// first touch of a tag (spec §4.1, §4.2).
func New(tag AggregateTag) any {
	switch tag {
	case TagBoxStyle:
		return &BoxStyle{}
	case TagHorizontalEdges:
		return &HorizontalEdges{}
	case TagVerticalEdges:
		return &VerticalEdges{}
	case TagBackgroundClip:
		return &BackgroundClip{}
	case TagTextColor:
		return &TextColor{}
	case TagBackgroundColor:
		return &BackgroundColor{}
	case TagBorderColors:
		return &BorderColors{}
	default:
		panic(fmt.Sprintf("cssvalue: unknown tag %d", tag))
	}
}

// MergeInto merges src's present fields into dst (both must be the same
// concrete aggregate pointer type for tag), writing only fields still
// Undeclared in dst (first-writer-wins). Returns an error if either value's
// dynamic type doesn't match tag.
func MergeInto(tag AggregateTag, dst, src any) error {
	switch tag {
	case TagBoxStyle:
		d, ok1 := dst.(*BoxStyle)
		s, ok2 := src.(*BoxStyle)
		if !ok1 || !ok2 {
			return mismatchErr(tag, dst, src)
		}
		d.mergeFrom(*s)
	case TagHorizontalEdges:
		d, ok1 := dst.(*HorizontalEdges)
		s, ok2 := src.(*HorizontalEdges)
		if !ok1 || !ok2 {
			return mismatchErr(tag, dst, src)
		}
		d.mergeFrom(*s)
	case TagVerticalEdges:
		d, ok1 := dst.(*VerticalEdges)
		s, ok2 := src.(*VerticalEdges)
		if !ok1 || !ok2 {
			return mismatchErr(tag, dst, src)
		}
		d.mergeFrom(*s)
	case TagBackgroundClip:
		d, ok1 := dst.(*BackgroundClip)
		s, ok2 := src.(*BackgroundClip)
		if !ok1 || !ok2 {
			return mismatchErr(tag, dst, src)
		}
		d.mergeFrom(*s)
	case TagTextColor:
		d, ok1 := dst.(*TextColor)
		s, ok2 := src.(*TextColor)
		if !ok1 || !ok2 {
			return mismatchErr(tag, dst, src)
		}
		d.mergeFrom(*s)
	case TagBackgroundColor:
		d, ok1 := dst.(*BackgroundColor)
		s, ok2 := src.(*BackgroundColor)
		if !ok1 || !ok2 {
			return mismatchErr(tag, dst, src)
		}
		d.mergeFrom(*s)
	case TagBorderColors:
		d, ok1 := dst.(*BorderColors)
		s, ok2 := src.(*BorderColors)
		if !ok1 || !ok2 {
			return mismatchErr(tag, dst, src)
		}
		d.mergeFrom(*s)
	default:
		return fmt.Errorf("cssvalue: unknown tag %d", tag)
	}
	return nil
}

// FillUndeclaredFromAll fills every still-Undeclared field of v (the
// concrete aggregate pointer type for tag) with the given CSS-wide
// keyword's presence. Used only by cssdecl.Store.Apply (spec §4.1).
func FillUndeclaredFromAll(tag AggregateTag, v any, kw CssWideKeyword) error {
	switch tag {
	case TagBoxStyle:
		a, ok := v.(*BoxStyle)
		if !ok {
			return mismatchErr(tag, v, nil)
		}
		a.fillFromAll(kw)
	case TagHorizontalEdges:
		a, ok := v.(*HorizontalEdges)
		if !ok {
			return mismatchErr(tag, v, nil)
		}
		a.fillFromAll(kw)
	case TagVerticalEdges:
		a, ok := v.(*VerticalEdges)
		if !ok {
			return mismatchErr(tag, v, nil)
		}
		a.fillFromAll(kw)
	case TagBackgroundClip:
		a, ok := v.(*BackgroundClip)
		if !ok {
			return mismatchErr(tag, v, nil)
		}
		a.fillFromAll(kw)
	case TagTextColor:
		a, ok := v.(*TextColor)
		if !ok {
			return mismatchErr(tag, v, nil)
		}
		a.fillFromAll(kw)
	case TagBackgroundColor:
		a, ok := v.(*BackgroundColor)
		if !ok {
			return mismatchErr(tag, v, nil)
		}
		a.fillFromAll(kw)
	case TagBorderColors:
		a, ok := v.(*BorderColors)
		if !ok {
			return mismatchErr(tag, v, nil)
		}
		a.fillFromAll(kw)
	default:
		return fmt.Errorf("cssvalue: unknown tag %d", tag)
	}
	return nil
}

func mismatchErr(tag AggregateTag, dst, src any) error {
	return fmt.Errorf("cssvalue: dest/src type mismatch for tag %s (dst=%T src=%T)", tag, dst, src)
}
