// Command shadercompose composes the shader template fragments into one
// source module and writes it to an output directory. It is the build-time
// step that persists the composed source; with --validate it also compiles
// a specialized probe kernel against a live GL context to catch template
// errors before they ship.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shaderbuild"
	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/tileeval"
)

func init() {
	// GL contexts are bound to the thread that created them.
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:  "shadercompose",
		Usage: "compose and validate the SDF shader template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "build",
				Usage:   "output directory for the composed source",
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "compile a specialized probe kernel on the local GPU",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	composed, err := shaderbuild.ComposeTemplate()
	if err != nil {
		return fmt.Errorf("composing template: %w", err)
	}
	outDir := c.String("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(outDir, "shader_template.glsl")
	if err := os.WriteFile(outPath, []byte(composed), 0o644); err != nil {
		return err
	}
	log.Printf("composed shader template to %s (%d bytes)", outPath, len(composed))

	if !c.Bool("validate") {
		return nil
	}
	platform, err := tileeval.NewPlatform()
	if err != nil {
		return fmt.Errorf("acquiring GL context: %w", err)
	}
	defer platform.Terminate()

	// A probe stream touching every operator routine exercises the whole
	// template during compilation.
	probe := shape.NewCompiler()
	pt := probe.Point(geo.Point{})
	circle := probe.Dilate(pt, 1000)
	cloud := probe.PointCloud([]geo.Point{{Lon: 1}, {Lat: 1}})
	line := probe.GeodesicString([]geo.Point{{Lon: -1}, {Lon: 1}})
	area := probe.Edge(probe.WithVdg(shape.NewVoronoiDiagram([][]geo.Point{
		{{Lon: -1, Lat: -1}, {Lon: 1, Lat: -1}, {Lon: 0, Lat: 1}},
	})))
	tex, err := shape.NewContourTexture(2, 2, -1, 1, -1, 1, []float32{0, 1, 2, 3})
	if err != nil {
		return err
	}
	contour := probe.WithContourTexture(tex, 1)
	u := probe.Union([]shape.Register{circle, cloud, line, area, contour})
	x := probe.Intersection([]shape.Register{u, contour})
	probe.Boundary(probe.Subtract(x, probe.Invert(cloud)), cloud, shape.BoundaryInside)
	if err := probe.Err(); err != nil {
		return err
	}
	source, err := shaderbuild.BuildComputeSource(probe.Instructions())
	if err != nil {
		return err
	}
	if err := tileeval.ValidateSource(platform, source); err != nil {
		return fmt.Errorf("composed shader failed validation: %w", err)
	}
	log.Print("composed shader validated")
	return nil
}
