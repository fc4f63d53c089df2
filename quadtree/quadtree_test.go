package quadtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cssflow/core/quadtree"
	"github.com/cssflow/core/unit"
)

func rect(x, y, w, h int32) unit.Rect {
	return unit.Rect{X: unit.Unit(x), Y: unit.Unit(y), W: unit.Unit(w), H: unit.Unit(h)}
}

// TestHitTestSinglePatch is spec §8 scenario 4's first two queries: two
// single-patch objects in far-apart patches.
func TestHitTestSinglePatch(t *testing.T) {
	t.Parallel()

	tr := quadtree.New[string](unit.Unit(1024), 7)
	tr.Insert(rect(0, 0, 1, 1), "A")
	tr.Insert(rect(10000, 10000, 1, 1), "B")

	assert.ElementsMatch(t, []string{"A"}, tr.FindInRect(rect(0, 0, 2, 2)))
	assert.ElementsMatch(t, []string{"A", "B"}, tr.FindInRect(rect(0, 0, 20000, 20000)))
}

// TestHitTestLargeObject is spec §8 scenario 4's third case: a bbox spanning
// two patches on each axis is stored as a large object and found by any
// query whose patch span intersects [0,2]x[0,2].
func TestHitTestLargeObject(t *testing.T) {
	t.Parallel()

	tr := quadtree.New[string](unit.Unit(1024), 7)
	tr.Insert(rect(0, 0, 2000, 2000), "C")

	assert.ElementsMatch(t, []string{"C"}, tr.FindInRect(rect(0, 0, 1, 1)))
	assert.ElementsMatch(t, []string{"C"}, tr.FindInRect(rect(1500, 1500, 10, 10)))
	assert.Empty(t, tr.FindInRect(rect(3000, 3000, 1, 1)))
}

func TestFindInRectEmptyTree(t *testing.T) {
	t.Parallel()

	tr := quadtree.New[int](unit.Unit(1024), 7)
	assert.Empty(t, tr.FindInRect(rect(0, 0, 100, 100)))
}

// TestCompletenessAndSoundness is a lightweight instance of the spec §8
// completeness/soundness properties: every inserted object whose bbox
// intersects the query is returned, and the result never exceeds the
// inserted count for non-spanning objects.
func TestCompletenessAndSoundness(t *testing.T) {
	t.Parallel()

	tr := quadtree.New[int](unit.Unit(1024), 7)
	boxes := []unit.Rect{
		rect(0, 0, 4, 4),
		rect(100, 100, 8, 8),
		rect(500, 500, 16, 16),
		rect(1020, 1020, 8, 8), // spans patches (0,0)-(1,1): large object
	}
	for i, b := range boxes {
		tr.Insert(b, i)
	}

	query := rect(0, 0, 2000, 2000)
	found := tr.FindInRect(query)
	assert.LessOrEqual(t, len(found), len(boxes))

	for i, b := range boxes {
		if b.Intersects(query) {
			assert.Contains(t, found, i, "box %d must be found: it intersects the query", i)
		}
	}
}

func TestDeepSubdivisionStillFindsSmallObject(t *testing.T) {
	t.Parallel()

	tr := quadtree.New[string](unit.Unit(1024), 7)
	// Two small, nearby-but-distinct boxes force subdivision past the top
	// level, exercising recursion into child quadrants.
	tr.Insert(rect(10, 10, 1, 1), "near")
	tr.Insert(rect(900, 900, 1, 1), "far")

	assert.ElementsMatch(t, []string{"near"}, tr.FindInRect(rect(0, 0, 20, 20)))
	assert.ElementsMatch(t, []string{"near", "far"}, tr.FindInRect(rect(0, 0, 1024, 1024)))
}
