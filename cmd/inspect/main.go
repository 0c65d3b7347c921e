package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"robot3d/internal/animation"
	"robot3d/internal/mesh"
	"robot3d/internal/pose"
	"robot3d/internal/postprocess"
	"robot3d/internal/raster"
	"robot3d/internal/scenario"
	"robot3d/internal/skeleton"
)

func main() {
	heading := flag.Float64("heading", pose.DefaultHeading, "Root heading in degrees")
	torso := flag.Float64("torso", pose.RestTorso, "Torso tilt in degrees")
	hip := flag.Float64("hip", pose.RestHip, "Left hip angle in degrees")
	knee := flag.Float64("knee", pose.RestKnee, "Left knee angle in degrees")
	spin := flag.Float64("spin", 0, "Cannon spin in degrees")
	scriptFile := flag.String("script", "", "Run a scenario script first and inspect its final pose")
	asJSON := flag.Bool("json", false, "Print pose and draw commands as JSON")
	webpOut := flag.String("webp", "", "Also render the pose to this WebP file")
	zoom := flag.Int("zoom", 1, "Enlarge the WebP by this integer factor")
	flag.Parse()

	p := pose.New()
	p.RootHeading = *heading
	p.SetTorso(*torso)
	p.SetHip(*hip)
	p.SetKnee(*knee)
	p.CannonSpin = *spin

	if *scriptFile != "" {
		f, err := os.Open(*scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		script, err := scenario.Parse(f, animation.DefaultInterval)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		final := scenario.Run(script, scenario.Options{Pose: p}).Final
		p = &final
	}

	cmds := skeleton.Compose(p)

	if *asJSON {
		printJSON(p, cmds)
	} else {
		printTable(p, cmds)
	}

	if *webpOut != "" {
		if err := writeWebP(*webpOut, p, *zoom); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *webpOut)
	}
}

func printTable(p *pose.State, cmds []skeleton.DrawCmd) {
	fmt.Printf("Pose: heading=%.1f torso=%.1f hip=%.1f knee=%.1f shoulder=%.1f spin=%.1f\n",
		p.RootHeading, p.TorsoTilt, p.HipAngle, p.KneeAngle, p.ShoulderAngle, p.CannonSpin)
	fmt.Printf("Modes: %v, Selected: %s\n", p.Modes(), p.Selected)
	fmt.Printf("Draw commands: %d\n", len(cmds))

	cache := mesh.NewCache()
	tris := 0
	for i, c := range cmds {
		m := cache.Get(c.Prim)
		tris += m.TriangleCount()
		o := c.Transform.Translation()
		fmt.Printf("  [%2d] %-22s %-9s %-13s origin (%7.2f, %7.2f, %7.2f) tris=%d\n",
			i, c.Part, c.Prim.Kind, c.Material.Name, o[0], o[1], o[2], m.TriangleCount())
	}
	fmt.Printf("Triangles: %d\n", tris)
}

type cmdJSON struct {
	Part      string      `json:"part"`
	Kind      string      `json:"kind"`
	Material  string      `json:"material"`
	Transform [16]float64 `json:"transform"`
}

func printJSON(p *pose.State, cmds []skeleton.DrawCmd) {
	out := struct {
		Pose  pose.State `json:"pose"`
		Modes []string   `json:"modes"`
		Cmds  []cmdJSON  `json:"draw_commands"`
	}{Pose: p.Snapshot(), Modes: p.Modes()}

	for _, c := range cmds {
		out.Cmds = append(out.Cmds, cmdJSON{
			Part:      c.Part,
			Kind:      c.Prim.Kind.String(),
			Material:  c.Material.Name,
			Transform: [16]float64(c.Transform),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func writeWebP(path string, p *pose.State, zoom int) error {
	r := raster.New(650, 500)
	r.Supersample = 2

	start := time.Now()
	img := postprocess.Upscale(r.Frame(skeleton.Scene(p, "")), zoom)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	fmt.Printf("Rendered in %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}
