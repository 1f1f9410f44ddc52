package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishfeed/audio"
	"github.com/pthm-cable/fishfeed/camera"
	"github.com/pthm-cable/fishfeed/config"
	"github.com/pthm-cable/fishfeed/game"
	"github.com/pthm-cable/fishfeed/renderer"
	"github.com/pthm-cable/fishfeed/systems"
	"github.com/pthm-cable/fishfeed/ui"
)

func main() {
	// A .env file, if present, supplies flag defaults
	if err := config.LoadEnv(""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	envSeed, err := config.EnvInt64(config.EnvSeed, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// CLI flags
	configPath := flag.String("config", config.EnvString(config.EnvConfig, ""), "Path to config.yaml (empty = use defaults)")
	levelPath := flag.String("level", config.EnvString(config.EnvLevel, ""), "Path to a level YAML file (empty = level from config)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by a seeded autopilot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", config.EnvString(config.EnvOutputDir, ""), "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", envSeed, "Autopilot RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	mute := flag.Bool("mute", false, "Start with sound muted")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	level := cfg.Level
	if *levelPath != "" {
		l, err := config.LoadLevel(*levelPath)
		if err != nil {
			slog.Error("failed to load level", "path", *levelPath, "error", err)
			os.Exit(1)
		}
		level = l
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Headless:  *headless,
	}

	if *headless {
		os.Exit(runHeadless(opts, level, *maxTicks))
	}
	os.Exit(runGraphical(opts, level, *maxTicks, *mute))
}

// runHeadless runs a pure CPU simulation, no raylib needed. Sound cues are
// recorded and summarized at the end.
func runHeadless(opts game.Options, level config.LevelConfig, maxTicks int) int {
	sounds := audio.NewRecorder()
	opts.Sound = sounds

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer g.Unload()

	if err := g.StartSession(level); err != nil {
		slog.Error("failed to start session", "error", err)
		return 1
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"level", level.Name,
		"max_ticks", maxTicks,
	)

	for maxTicks <= 0 || int(g.Tick()) < maxTicks {
		g.Step()
	}

	slog.Info("max ticks reached",
		"tick", g.Tick(),
		"spawn_cues", sounds.Count(systems.SoundSpawn),
		"hit_cues", sounds.Count(systems.SoundHit),
	)
	return 0
}

// runGraphical opens a window and runs the fixed-step loop under raylib.
func runGraphical(opts game.Options, level config.LevelConfig, maxTicks int, mute bool) int {
	cfg := config.Cfg()

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Fish Feed")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	cam := camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), level.Playfield, cfg.Screen.Zoom)
	opts.Transform = cam

	player := audio.NewPlayer(cfg.Audio.Volume)
	defer player.Close()
	player.SetMuted(mute || !cfg.Audio.Enabled)
	if cfg.Audio.Enabled {
		if err := player.Init(); err != nil {
			slog.Warn("audio unavailable, continuing without sound", "error", err)
		} else {
			opts.Sound = player
		}
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer g.Unload()

	if err := g.StartSession(level); err != nil {
		slog.Error("failed to start session", "error", err)
		return 1
	}

	scene := renderer.NewScene(cam, int32(cfg.Screen.Width), int32(cfg.Screen.Height))
	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(int32(cfg.Screen.Width)-230, 110)
	controls := ui.NewControlsPanel(int32(cfg.Screen.Width)-230, 10, 220)

	var events []systems.InputEvent
	start := time.Now()
	last := start

	for !rl.WindowShouldClose() {
		now := time.Now()
		frameDt := now.Sub(last)
		last = now

		if rl.IsWindowResized() {
			w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
			scene.Resize(w, h)
			controls.SetPosition(w-230, 10)
			perfPanel.SetPosition(w-230, 110)
		}
		renderer.HandleCamera(cam)
		if rl.IsKeyPressed(rl.KeySpace) {
			g.TogglePause()
		}

		mouse := rl.GetMousePosition()
		events = renderer.PollPointer(events[:0], controls.Contains(mouse.X, mouse.Y))
		for _, ev := range events {
			g.PushInput(ev)
		}

		g.Update(frameDt)

		rl.BeginDrawing()
		scene.Draw(g, now.Sub(start).Seconds())
		hud.Draw(ui.HUDData{
			Level:   level.Name,
			Fish:    g.FishCount(),
			Pellets: g.PelletCount(),
			Tick:    g.Tick(),
			FPS:     rl.GetFPS(),
			Paused:  g.Paused(),
			Stats:   g.LastStats(),
			TopFish: g.Meals().Top(3),
		})
		perfPanel.Draw(g.Perf().Stats())
		action := controls.Draw(ui.ControlsState{
			Volume: player.Volume(),
			Muted:  player.Muted(),
			Paused: g.Paused(),
		})
		hud.DrawControls(int32(rl.GetScreenHeight()), "Click: drop food | Space: pause | Right drag: pan | Wheel: zoom | Home: reset view")
		rl.EndDrawing()

		if action.VolumeChanged {
			player.SetVolume(action.Volume)
		}
		if action.ToggleMute {
			player.SetMuted(!player.Muted())
		}
		if action.TogglePause {
			g.TogglePause()
		}
		if action.Restart {
			if err := g.StartSession(level); err != nil {
				slog.Error("failed to restart session", "error", err)
				return 1
			}
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return 0
}
