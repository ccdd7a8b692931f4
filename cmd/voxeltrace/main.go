package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/voxeltrace/internal/voxeltrace"
)

func main() {
	voxeltrace.Debug = os.Getenv("DEBUG") != ""
	voxeltrace.RAW = os.Getenv("RAW") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if err := newRootCmd(&options{}).Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		// os.Exit skips deferred calls
		if profile {
			pprof.StopCPUProfile()
		}
		os.Exit(1)
	}
}

// options are the command-line overrides of the config.
type options struct {
	quiet   bool
	bvh     bool
	frames  int
	spp     int
	width   int
	height  int
	outDir  string
	format  string
	gifOut  string
	skybox  bool
	workers int
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "voxeltrace [config]",
		Short:         "Render a day/night timelapse of a voxel scene",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			voxeltrace.SetupLogging(voxeltrace.Debug, o.quiet)
			cfg := voxeltrace.DefaultConfig()
			if len(args) > 0 {
				var err error
				if cfg, err = voxeltrace.LoadConfig(args[0]); err != nil {
					return err
				}
			}
			if err := o.apply(cmd, cfg); err != nil {
				return err
			}
			return voxeltrace.Run(cfg)
		},
	}
	fl := cmd.Flags()
	fl.BoolVarP(&o.quiet, "quiet", "q", false, "only log errors")
	fl.BoolVar(&o.bvh, "bvh", false, "accelerate intersection with a BVH")
	fl.IntVarP(&o.frames, "frames", "n", 0, "number of frames (overrides fps*seconds)")
	fl.IntVar(&o.spp, "spp", 0, "samples per pixel")
	fl.IntVar(&o.width, "width", 0, "image width")
	fl.IntVar(&o.height, "height", 0, "image height")
	fl.StringVarP(&o.outDir, "out", "o", voxeltrace.DefaultOutDir, "output directory")
	fl.StringVarP(&o.format, "format", "f", voxeltrace.DefaultFormat, "frame format: bmp, png, tiff or jpg")
	fl.StringVar(&o.gifOut, "gif", "", "also write a downscaled animated GIF preview here")
	fl.BoolVar(&o.skybox, "skybox", false, "use the cube-map skybox instead of the procedural sky")
	fl.IntVarP(&o.workers, "workers", "j", 0, "tiles rendered in parallel (default: GOMAXPROCS)")
	return cmd
}

// apply overrides cfg with the flags given on the command line.
// Paths are expanded here because the config's own expansion already ran.
func (o *options) apply(cmd *cobra.Command, cfg *voxeltrace.Config) error {
	fl := cmd.Flags()
	if fl.Changed("bvh") || os.Getenv("BVH") != "" {
		cfg.UseBVH = o.bvh || os.Getenv("BVH") != ""
	}
	if fl.Changed("frames") {
		cfg.Frames = o.frames
	}
	if fl.Changed("spp") && o.spp > 0 {
		cfg.Spp = o.spp
	}
	if fl.Changed("width") && o.width > 0 {
		cfg.Width = o.width
	}
	if fl.Changed("height") && o.height > 0 {
		cfg.Height = o.height
	}
	if fl.Changed("out") {
		dir, err := homedir.Expand(o.outDir)
		if err != nil {
			return err
		}
		cfg.OutDir = dir
	}
	if fl.Changed("format") {
		if !voxeltrace.IsImageFormat(o.format) {
			return fmt.Errorf("unknown output format %q", o.format)
		}
		cfg.Format = strings.ToLower(strings.TrimPrefix(o.format, "."))
	}
	if fl.Changed("gif") {
		gif, err := homedir.Expand(o.gifOut)
		if err != nil {
			return err
		}
		cfg.GIFOut = gif
	}
	if fl.Changed("skybox") {
		procedural := !o.skybox
		cfg.ProceduralSky = &procedural
	}
	if fl.Changed("workers") {
		cfg.Workers = o.workers
	}
	return nil
}
