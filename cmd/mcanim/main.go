package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
	"github.com/Carmen-Shannon/oxy-mcanim/engine"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/loader"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/sampler"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/serializer"
	"github.com/Carmen-Shannon/oxy-mcanim/internal/config"
	"github.com/Carmen-Shannon/oxy-mcanim/internal/telemetry"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// app carries what the Before hook sets up for the subcommands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{logger: slog.Default()}
	err := a.command().Run(ctx, os.Args)

	if a.shutdown != nil {
		if serr := a.shutdown(context.Background()); serr != nil {
			a.logger.Error("failed to shutdown tracer", slog.String("error", serr.Error()))
		}
	}
	if err != nil {
		a.logger.Error("mcanim failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:  "mcanim",
		Usage: "export transform keyframe animations as JSON documents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: config.DefaultPath, Usage: "config file", TakesFile: true},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "export one object's keyed transforms",
				Flags: []cli.Flag{
					sceneFlag(),
					&cli.StringFlag{Name: "object", Aliases: []string{"o"}, Usage: "name of the object to export", Required: true},
					&cli.StringFlag{Name: "out", Usage: "output JSON file", Required: true, TakesFile: true},
					&cli.IntFlag{Name: "id", Usage: "animation id"},
					&cli.StringFlag{Name: "name", Usage: "animation name"},
					&cli.StringFlag{Name: "type", Value: "TRANSFORM", Usage: "animation type"},
					&cli.BoolFlag{Name: "looping", Value: true, Usage: "restart the animation after the last frame"},
					&cli.BoolFlag{Name: "reset-when-done", Usage: "restore the rest pose after the last frame"},
					&cli.IntFlag{Name: "start", Usage: "first frame to export (inclusive)"},
					&cli.IntFlag{Name: "end", Usage: "last frame to export (inclusive)"},
					animationFlag(),
					fpsFlag(),
				},
				Action: a.export,
			},
			{
				Name:   "batch",
				Usage:  "run every export listed in the config",
				Flags:  []cli.Flag{sceneFlag(), animationFlag(), fpsFlag()},
				Action: a.batch,
			},
			{
				Name:  "inspect",
				Usage: "list the objects of a scene and their keyed frames",
				Flags: []cli.Flag{
					sceneFlag(), animationFlag(), fpsFlag(),
					&cli.StringFlag{Name: "format", Value: "text", Usage: "output format: text or yaml"},
				},
				Action: a.inspect,
			},
		},
	}
}

func sceneFlag() cli.Flag {
	return &cli.StringFlag{Name: "scene", Aliases: []string{"s"}, Usage: "scene file (.gltf, .glb, .yaml, .yml)", Required: true, TakesFile: true}
}

func animationFlag() cli.Flag {
	return &cli.StringFlag{Name: "animation", Usage: "glTF animation to import (default: config export.animation, else the first)"}
}

func fpsFlag() cli.Flag {
	return &cli.FloatFlag{Name: "fps", Usage: "frames per second for glTF key times (default: config export.fps)"}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if !cmd.IsSet("config") {
		path = ""
	}

	cfg, err := config.Load(path)
	if err != nil {
		return ctx, err
	}
	a.cfg = cfg

	a.logger = cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(a.logger)

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(cfg.Telemetry.ServiceName, os.Stderr, a.logger)
		if err != nil {
			return ctx, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		a.shutdown = shutdown
	}

	return ctx, nil
}

// loadScene imports the --scene file with fps and animation overrides from the flags.
func (a *app) loadScene(cmd *cli.Command) (scene.Scene, error) {
	fps := a.cfg.Export.FPS
	if cmd.IsSet("fps") {
		fps = cmd.Float("fps")
	}

	l := loader.NewLoader(
		loader.WithFPS(fps),
		loader.WithAnimationName(common.Coalesce(cmd.String("animation"), a.cfg.Export.Animation)),
		loader.WithLogger(a.logger),
	)
	return l.Load(cmd.String("scene"))
}

// newSampler builds a sampler for the configured runtime profile.
func (a *app) newSampler(logger *slog.Logger) (sampler.Sampler, error) {
	space, err := common.ParseSpace(a.cfg.Runtime.Space)
	if err != nil {
		return nil, err
	}
	axis, err := common.ParseUpAxis(a.cfg.Runtime.UpAxis)
	if err != nil {
		return nil, err
	}
	return sampler.NewSampler(
		sampler.WithSpace(space),
		sampler.WithUpAxis(axis),
		sampler.WithLogger(logger),
	), nil
}

// newEngine builds an engine for the configured runtime profile. Output directories are created
// by the write step, so failed exports leave nothing behind.
func (a *app) newEngine() (engine.Engine, error) {
	logger := a.logger.With("runtime", a.cfg.Runtime.Name)
	s, err := a.newSampler(logger)
	if err != nil {
		return nil, err
	}

	return engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithSampler(s),
		engine.WithSerializer(serializer.NewSerializer(
			serializer.WithPrecision(a.cfg.Export.Precision),
			serializer.WithCreateDirs(true),
			serializer.WithLogger(logger),
		)),
		engine.WithWorkers(a.cfg.Export.Workers),
		engine.WithProfiling(a.logger.Enabled(context.Background(), slog.LevelDebug)),
	), nil
}

func (a *app) export(ctx context.Context, cmd *cli.Command) error {
	scn, err := a.loadScene(cmd)
	if err != nil {
		return err
	}

	e, err := a.newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	ec := engine.ExportCommand{
		Scene:         scn,
		Object:        cmd.String("object"),
		Output:        cmd.String("out"),
		Type:          cmd.String("type"),
		ID:            cmd.Int("id"),
		Name:          cmd.String("name"),
		Looping:       cmd.Bool("looping"),
		ResetWhenDone: cmd.Bool("reset-when-done"),
	}
	if cmd.IsSet("start") {
		start := cmd.Int("start")
		ec.FrameStart = &start
	}
	if cmd.IsSet("end") {
		end := cmd.Int("end")
		ec.FrameEnd = &end
	}

	res, err := e.Handle(ctx, ec)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s: %d frames, %d bytes\n", res.Path, res.Frames, res.Bytes)
	return nil
}

func (a *app) batch(ctx context.Context, cmd *cli.Command) error {
	if len(a.cfg.Exports) == 0 {
		return fmt.Errorf("no exports configured")
	}

	scn, err := a.loadScene(cmd)
	if err != nil {
		return err
	}

	e, err := a.newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	jobs := make([]engine.Job, 0, len(a.cfg.Exports))
	for _, job := range a.cfg.Exports {
		sc, req, path, err := engine.ExportCommand{
			Scene:         scn,
			Object:        job.Object,
			Output:        job.Output,
			Type:          job.Type,
			ID:            job.ID,
			Name:          job.Name,
			Looping:       job.IsLooping(),
			ResetWhenDone: job.ResetWhenDone,
			FrameStart:    job.FrameStart,
			FrameEnd:      job.FrameEnd,
		}.Resolve()
		if err != nil {
			return err
		}
		jobs = append(jobs, engine.Job{Scene: sc, Request: req, Path: path})
	}

	results, err := e.ExportBatch(ctx, jobs)
	for _, res := range results {
		if res.Err == nil {
			fmt.Fprintf(os.Stdout, "%s: %d frames, %d bytes\n", res.Path, res.Frames, res.Bytes)
		}
	}
	return err
}

func (a *app) inspect(_ context.Context, cmd *cli.Command) error {
	scn, err := a.loadScene(cmd)
	if err != nil {
		return err
	}

	w := os.Stdout
	switch cmd.String("format") {
	case "yaml":
		data, err := loader.EncodeYAML(scn)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "text":
		s, err := a.newSampler(a.logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "scene %q (%g fps, %d objects)\n", scn.Name(), scn.FPS(), scn.Count())
		for _, obj := range scn.Objects() {
			parent := "-"
			if p := obj.Parent(); p != nil {
				parent = p.Name()
			}
			fmt.Fprintf(w, "  %-24s parent=%-16s keyed=%v\n", obj.Name(), parent, s.KeyedFrames(obj))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", cmd.String("format"))
	}
}
