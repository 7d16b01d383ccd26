package main

import (
	"os"

	"github.com/unframework/lightbake/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lightbake"
	app.Usage = "bake static global-illumination lightmaps"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	bakeFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 64,
			Usage: "lightmap width in texels",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 64,
			Usage: "lightmap height in texels",
		},
		cli.IntFlag{
			Name:  "probe-size",
			Value: 16,
			Usage: "edge length of the square probe render target",
		},
		cli.IntFlag{
			Name:  "budget",
			Value: 64,
			Usage: "texel ticks per frame across all factors",
		},
		cli.IntFlag{
			Name:  "start-delay",
			Value: 0,
			Usage: "frames to wait before the scene snapshot is taken",
		},
		cli.StringFlag{
			Name:  "filter",
			Value: "linear",
			Usage: "output texture filter mode (nearest/linear)",
		},
		cli.BoolFlag{
			Name:  "average",
			Usage: "blend revisits into a moving average instead of overwriting",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 0,
			Usage: "probe sampling seed (0 = time-based)",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "bake",
			Usage: "bake the demo scene headless and write the lightmap to a png file",
			Description: `
Snapshot the built-in demo scene, rasterize its secondary-UV layout into an
atlas map, then progressively bake irradiance until every factor has
completed the requested number of full passes.`,
			Flags: append(bakeFlags,
				cli.IntFlag{
					Name:  "passes",
					Value: 1,
					Usage: "full accumulation passes to complete before exit",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "lightmap.png",
					Usage: "image filename for the composited lightmap",
				},
			),
			Action: cmd.BakeLightmap,
		},
		{
			Name:  "view",
			Usage: "bake the demo scene while displaying the lightmap in a window",
			Flags: append(bakeFlags,
				cli.IntFlag{
					Name:  "scale",
					Value: 4,
					Usage: "window pixels per lightmap texel",
				},
			),
			Action: cmd.ViewLightmap,
		},
	}

	app.Run(os.Args)
}
