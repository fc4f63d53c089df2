// Package visualize renders a quadtree's patch occupancy as a scatter plot,
// for eyeballing how objects cluster across the patch grid during
// development. It is not part of the library's public surface.
package visualize

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cssflow/core/quadtree"
)

// occupancy is satisfied by *quadtree.Tree[O] for any O, without exposing
// the object type parameter to this package.
type occupancy interface {
	OccupiedPatches() (patches []quadtree.PatchCoord, largeCount int)
}

// PatchOccupancyPlot builds a scatter plot with one point per occupied
// patch, titled with the count of large (cross-patch) objects.
func PatchOccupancyPlot(t occupancy) (*plot.Plot, error) {
	patches, largeCount := t.OccupiedPatches()

	p := plot.New()

	p.Title.Text = fmt.Sprintf("quadtree patch occupancy (%d large objects)", largeCount)
	p.X.Label.Text = "patch x"
	p.Y.Label.Text = "patch y"

	pts := make(plotter.XYs, len(patches))
	for i, pc := range patches {
		pts[i] = plotter.XY{X: float64(pc.PX), Y: float64(pc.PY)}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("visualize: build scatter: %w", err)
	}
	p.Add(scatter)

	return p, nil
}

// SavePNG renders p to path as a PNG of the given size in inches.
func SavePNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	if err := p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path); err != nil {
		return fmt.Errorf("visualize: save %s: %w", path, err)
	}
	return nil
}
