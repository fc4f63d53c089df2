// Package cssvalue implements the C1 component: aggregates, the closed set
// of related CSS longhands stored together, each field a tagged sum of
// undeclared | initial | inherit | unset | declared(T) (spec §3).
//
// The aggregate set is fixed at build time, so field access is a direct
// struct field rather than a reflective lookup — the translation of the
// source's comptime-generated per-field branches that spec §9 calls for.
package cssvalue

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/cssflow/core/unit"
)

// Presence is the tagged-sum discriminant shared by every field of every
// aggregate: undeclared | initial | inherit | unset | declared(T).
type Presence uint8

const (
	Undeclared Presence = iota
	Initial
	Inherit
	Unset
	Declared
)

func (p Presence) String() string {
	switch p {
	case Undeclared:
		return "undeclared"
	case Initial:
		return "initial"
	case Inherit:
		return "inherit"
	case Unset:
		return "unset"
	case Declared:
		return "declared"
	default:
		return "invalid"
	}
}

// CssWideKeyword is one of the three CSS-wide keywords: initial, inherit
// and unset (glossary; spec §3's "four CSS-wide keywords" is reconciled to
// these three here).
type CssWideKeyword uint8

const (
	KeywordInitial CssWideKeyword = iota
	KeywordInherit
	KeywordUnset
)

func presenceForKeyword(kw CssWideKeyword) Presence {
	switch kw {
	case KeywordInitial:
		return Initial
	case KeywordInherit:
		return Inherit
	case KeywordUnset:
		return Unset
	default:
		return Undeclared
	}
}

// Single is a field that holds at most one value.
type Single[T any] struct {
	Presence Presence
	Value    T
}

// MergeSingle writes src into dst iff dst is still Undeclared (first-writer-
// wins, spec §4.1/§4.2).
func MergeSingle[T any](dst *Single[T], src Single[T]) {
	if dst.Presence == Undeclared && src.Presence != Undeclared {
		*dst = src
	}
}

// FillFromAll sets dst to the CSS-wide keyword's presence iff dst is still
// Undeclared. Used only by C2's Apply (spec §4.1); C3 keeps its `all`
// keyword apart (Cascaded.All) and its Get never calls this.
func (f *Single[T]) FillFromAll(kw CssWideKeyword) {
	if f.Presence == Undeclared {
		f.Presence = presenceForKeyword(kw)
	}
}

// Multi is a field that holds an ordered list of at most 63 values
// (spec §3).
type Multi[T any] struct {
	Presence Presence
	Values   []T
}

// MaxMultiLen is the multi-arity field length bound named in spec §3/§4.1.
const MaxMultiLen = 63

// MergeMulti writes src into dst iff dst is still Undeclared.
func MergeMulti[T any](dst *Multi[T], src Multi[T]) {
	if dst.Presence == Undeclared && src.Presence != Undeclared {
		*dst = src
	}
}

// FillFromAll sets dst to the CSS-wide keyword's presence iff dst is still
// Undeclared.
func (f *Multi[T]) FillFromAll(kw CssWideKeyword) {
	if f.Presence == Undeclared {
		f.Presence = presenceForKeyword(kw)
	}
}

// Color is the declared-value type backing every color-valued longhand.
// Parsing CSS color syntax into this type is the csscolorparser package's
// job (see ParseColor); the underlying representation is go-colorful's
// Color for the RGB channels, which the painter (an external collaborator,
// per spec §6) reads directly off boxtree.Node for background/border
// painting. Alpha is kept alongside since colorful.Color has no alpha
// channel of its own.
type Color struct {
	colorful.Color
	Alpha float64
}

// Display is the `display` longhand's declared value, restricted to the
// outer/inner display types the box-generation collaborator (spec §6,
// external) can consume.
type Display uint8

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayInlineBlock
	DisplayFlowRoot
	DisplayNone
)

// Position is the `position` longhand.
type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// Float is the `float` longhand.
type Float uint8

const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

// ClipBox is one value of the `background-clip` multi-value longhand.
type ClipBox uint8

const (
	ClipBorderBox ClipBox = iota
	ClipPaddingBox
	ClipContentBox
	// ClipRound (the "background-image: round" repeat style) is excluded
	// per spec §9's Open Questions: it is a TODO in the source.
)

// BoxStyle groups display/position/float, the aggregate named in spec §3's
// worked example. None of its fields inherit.
type BoxStyle struct {
	Display  Single[Display]
	Position Single[Position]
	Float    Single[Float]
}

func (a *BoxStyle) mergeFrom(src BoxStyle) {
	MergeSingle(&a.Display, src.Display)
	MergeSingle(&a.Position, src.Position)
	MergeSingle(&a.Float, src.Float)
}

func (a *BoxStyle) fillFromAll(kw CssWideKeyword) {
	a.Display.FillFromAll(kw)
	a.Position.FillFromAll(kw)
	a.Float.FillFromAll(kw)
}

// HorizontalEdges groups the left/right padding, border width, and margin
// longhands, spec §3's second worked example. None of its fields inherit.
type HorizontalEdges struct {
	PaddingLeft  Single[unit.Unit]
	PaddingRight Single[unit.Unit]
	BorderLeft   Single[unit.Unit]
	BorderRight  Single[unit.Unit]
	MarginLeft   Single[Margin]
	MarginRight  Single[Margin]
}

func (a *HorizontalEdges) mergeFrom(src HorizontalEdges) {
	MergeSingle(&a.PaddingLeft, src.PaddingLeft)
	MergeSingle(&a.PaddingRight, src.PaddingRight)
	MergeSingle(&a.BorderLeft, src.BorderLeft)
	MergeSingle(&a.BorderRight, src.BorderRight)
	MergeSingle(&a.MarginLeft, src.MarginLeft)
	MergeSingle(&a.MarginRight, src.MarginRight)
}

func (a *HorizontalEdges) fillFromAll(kw CssWideKeyword) {
	a.PaddingLeft.FillFromAll(kw)
	a.PaddingRight.FillFromAll(kw)
	a.BorderLeft.FillFromAll(kw)
	a.BorderRight.FillFromAll(kw)
	a.MarginLeft.FillFromAll(kw)
	a.MarginRight.FillFromAll(kw)
}

// VerticalEdges mirrors HorizontalEdges for the top/bottom sides.
type VerticalEdges struct {
	PaddingTop    Single[unit.Unit]
	PaddingBottom Single[unit.Unit]
	BorderTop     Single[unit.Unit]
	BorderBottom  Single[unit.Unit]
	MarginTop     Single[Margin]
	MarginBottom  Single[Margin]
}

func (a *VerticalEdges) mergeFrom(src VerticalEdges) {
	MergeSingle(&a.PaddingTop, src.PaddingTop)
	MergeSingle(&a.PaddingBottom, src.PaddingBottom)
	MergeSingle(&a.BorderTop, src.BorderTop)
	MergeSingle(&a.BorderBottom, src.BorderBottom)
	MergeSingle(&a.MarginTop, src.MarginTop)
	MergeSingle(&a.MarginBottom, src.MarginBottom)
}

func (a *VerticalEdges) fillFromAll(kw CssWideKeyword) {
	a.PaddingTop.FillFromAll(kw)
	a.PaddingBottom.FillFromAll(kw)
	a.BorderTop.FillFromAll(kw)
	a.BorderBottom.FillFromAll(kw)
	a.MarginTop.FillFromAll(kw)
	a.MarginBottom.FillFromAll(kw)
}

// Margin is a margin longhand's value: either a fixed layout-unit length or
// the `auto` keyword (used for centering), kept distinct from a plain Unit
// so HorizontalEdges can represent `margin-left: auto`.
type Margin struct {
	Auto  bool
	Value unit.Unit
}

// BackgroundClip is the multi-arity aggregate named in spec §3/§8 (a
// `background-clip: a, b, c` comma list).
type BackgroundClip struct {
	Clip Multi[ClipBox]
}

func (a *BackgroundClip) mergeFrom(src BackgroundClip) {
	MergeMulti(&a.Clip, src.Clip)
}

func (a *BackgroundClip) fillFromAll(kw CssWideKeyword) {
	a.Clip.FillFromAll(kw)
}

// TextColor is the `color` longhand. Unlike the other aggregates here, it
// inherits (spec §3's inheritance-type classification).
type TextColor struct {
	Color Single[Color]
}

func (a *TextColor) mergeFrom(src TextColor) {
	MergeSingle(&a.Color, src.Color)
}

func (a *TextColor) fillFromAll(kw CssWideKeyword) {
	a.Color.FillFromAll(kw)
}

// BackgroundColor is `background-color`; it does not inherit.
type BackgroundColor struct {
	Color Single[Color]
}

func (a *BackgroundColor) mergeFrom(src BackgroundColor) {
	MergeSingle(&a.Color, src.Color)
}

func (a *BackgroundColor) fillFromAll(kw CssWideKeyword) {
	a.Color.FillFromAll(kw)
}

// BorderColors groups the four per-side border-color longhands; it does not
// inherit.
type BorderColors struct {
	Top    Single[Color]
	Right  Single[Color]
	Bottom Single[Color]
	Left   Single[Color]
}

func (a *BorderColors) mergeFrom(src BorderColors) {
	MergeSingle(&a.Top, src.Top)
	MergeSingle(&a.Right, src.Right)
	MergeSingle(&a.Bottom, src.Bottom)
	MergeSingle(&a.Left, src.Left)
}

func (a *BorderColors) fillFromAll(kw CssWideKeyword) {
	a.Top.FillFromAll(kw)
	a.Right.FillFromAll(kw)
	a.Bottom.FillFromAll(kw)
	a.Left.FillFromAll(kw)
}
