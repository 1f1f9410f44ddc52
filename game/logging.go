package game

import (
	"log/slog"

	"github.com/pthm-cable/fishfeed/config"
)

// logConfig logs the simulation parameters once at startup.
func (g *Game) logConfig() {
	cfg := g.config()
	slog.Info("game created",
		"seed", g.rngSeed,
		"tick_rate", cfg.Simulation.TickRate,
		"dt", cfg.Derived.DT,
		"parallel_fish", cfg.Simulation.ParallelFish,
		"hit_radius", cfg.Fish.HitRadius,
		"alert_radius", cfg.Fish.AlertRadius,
		"eating_duration", cfg.Derived.EatingDuration,
		"player_cooldown", cfg.Derived.PlayerCooldown,
	)
}

// logSessionStart logs the spawned population.
func (g *Game) logSessionStart() {
	fish, props, players := 0, 0, 0
	for _, s := range g.level.Spawns {
		switch s.Kind {
		case config.KindFish:
			fish++
		case config.KindProp:
			props++
		case config.KindPlayer:
			players++
		}
	}
	slog.Info("session started",
		"level", g.level.Name,
		"fish", fish,
		"props", props,
		"player", players > 0,
	)
	if players == 0 {
		slog.Warn("level has no player spawn; presses will be ignored", "level", g.level.Name)
	}
}

// logSessionEnd logs the session summary and the best fed fish.
func (g *Game) logSessionEnd() {
	slog.Info("session ended",
		"level", g.level.Name,
		"ticks", g.tick,
		"fish", g.meals.Count(),
		"hungry", g.meals.Hungry(),
	)
	for _, r := range g.meals.Top(3) {
		if r.Meals == 0 {
			break
		}
		slog.Info("top fish", "fish", r)
	}
}
