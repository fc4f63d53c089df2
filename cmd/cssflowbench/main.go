// Command cssflowbench builds a synthetic document and times C5's
// draw-order construction over it, reporting the drawable count and the
// number of hits for a large viewport query.
// It exists to exercise the core end-to-end outside of tests; it is not
// part of the library's public surface (spec §6: "the core is a library").
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/spf13/pflag"

	"github.com/cssflow/core/boxtree"
	"github.com/cssflow/core/drawlist"
	"github.com/cssflow/core/internal/fixtures"
	"github.com/cssflow/core/unit"
)

func main() {
	depth := pflag.IntP("depth", "d", 6, "maximum box-tree nesting depth")
	children := pflag.IntP("children", "c", 4, "maximum children per box")
	seed := pflag.Int64P("seed", "s", 1, "random seed")
	pflag.Parse()

	log := slog.Make(sloghuman.Sink(os.Stderr))
	ctx := context.Background()

	doc, err := buildRandomDocument(*seed, *depth, *children)
	if err != nil {
		log.Fatal(ctx, "build synthetic document", slog.Error(err))
	}

	start := time.Now()
	list, err := drawlist.Build(ctx, log, doc)
	if err != nil {
		log.Fatal(ctx, "build draw order list", slog.Error(err))
	}
	elapsed := time.Since(start)

	viewport := unit.Rect{X: -1 << 20, Y: -1 << 20, W: 1 << 21, H: 1 << 21}
	refs := list.FindInRect(viewport)

	log.Info(ctx, "bench complete",
		slog.F("elapsed", elapsed.String()),
		slog.F("drawables", list.Len()),
		slog.F("viewport_hits", len(refs)),
	)
	fmt.Printf("elapsed=%s drawables=%d viewport_hits=%d\n", elapsed, list.Len(), len(refs))
}

func buildRandomDocument(seed int64, maxDepth, maxChildren int) (*boxtree.Document, error) {
	r := rand.New(rand.NewSource(seed))
	g := fixtures.NewBoxGraph("root")

	next := 0
	var build func(parent string, depth int)
	build = func(parent string, depth int) {
		if depth >= maxDepth {
			return
		}
		n := r.Intn(maxChildren + 1)
		for i := 0; i < n; i++ {
			next++
			id := fmt.Sprintf("n%d", next)
			attrs := map[string]interface{}{
				"width":  10 + r.Intn(200),
				"height": 10 + r.Intn(200),
			}
			if r.Float64() < 0.2 {
				attrs["stacking_context"] = true
				attrs["z_index"] = r.Intn(7) - 3
			}
			if err := g.AddBox(parent, id, attrs); err != nil {
				panic(err) // only reachable if the generator itself is buggy
			}
			build(id, depth+1)
		}
	}
	build("root", 0)

	return fixtures.Compile(g)
}
