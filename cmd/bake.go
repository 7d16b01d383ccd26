package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/unframework/lightbake/atlas"
	"github.com/unframework/lightbake/renderer"
	"github.com/unframework/lightbake/texture"
	"github.com/urfave/cli"
)

// Bake the demo scene headless for a fixed number of passes and write the
// composited lightmap to a png file.
func BakeLightmap(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := optionsFromContext(ctx)

	items, lights, specs := demoScene()
	b, err := renderer.New(items, lights, specs, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	b.OnReady(func(m *atlas.Map) {
		logger.Noticef("atlas ready: %d occupied texel(s)", m.OccupiedCount())
	})

	passes := uint32(ctx.Int("passes"))
	for b.Passes() < passes {
		if err = b.Advance(0); err != nil {
			return err
		}
	}

	displayBakeStats(b.Stats())

	out := ctx.String("out")
	if err = writePNG(out, b.Output()); err != nil {
		return err
	}
	logger.Noticef("wrote composited lightmap to %s", out)

	return nil
}

func optionsFromContext(ctx *cli.Context) renderer.Options {
	filter := texture.Linear
	if ctx.String("filter") == "nearest" {
		filter = texture.Nearest
	}

	return renderer.Options{
		Width:          uint32(ctx.Int("width")),
		Height:         uint32(ctx.Int("height")),
		ProbeSize:      uint32(ctx.Int("probe-size")),
		Filter:         filter,
		AutoStartDelay: uint32(ctx.Int("start-delay")),
		Average:        ctx.Bool("average"),
		TickBudget:     uint32(ctx.Int("budget")),
		Seed:           ctx.Int64("seed"),
	}
}

func displayBakeStats(stats renderer.BakeStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Factor", "Ticks", "Passes", "Last tick"})
	for _, stat := range stats.Factors {
		table.Append([]string{
			stat.Name,
			fmt.Sprintf("%d", stat.Ticks),
			fmt.Sprintf("%d", stat.Passes),
			fmt.Sprintf("%s", stat.LastTickTime),
		})
	}
	table.SetFooter([]string{"", "", "occupied texels", fmt.Sprintf("%d", stats.OccupiedTexels)})

	table.Render()
	logger.Noticef("bake statistics (session %d)\n%s", stats.Session, buf.String())
}

func writePNG(path string, tex *texture.Texture) error {
	img := image.NewRGBA(image.Rect(0, 0, int(tex.Width), int(tex.Height)))
	copy(img.Pix, tex.RGBA8())

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
