package telemetry

import (
	"log/slog"
	"slices"

	"github.com/pthm-cable/fishfeed/components"
)

// FishRecord tracks one fish's feeding history over a session.
type FishRecord struct {
	FishID       uint32
	Variant      components.Variant
	SpawnTick    int32
	Meals        int
	LastMealTick int32 // -1 until the first meal
}

// MealTracker manages per-fish feeding records.
type MealTracker struct {
	records map[uint32]*FishRecord
}

// NewMealTracker creates an empty tracker.
func NewMealTracker() *MealTracker {
	return &MealTracker{records: make(map[uint32]*FishRecord)}
}

// Register starts tracking a fish.
func (mt *MealTracker) Register(fishID uint32, variant components.Variant, spawnTick int32) {
	mt.records[fishID] = &FishRecord{
		FishID:       fishID,
		Variant:      variant,
		SpawnTick:    spawnTick,
		LastMealTick: -1,
	}
}

// RecordMeal counts a meal. Unknown fish are ignored.
func (mt *MealTracker) RecordMeal(fishID uint32, tick int32) {
	if r := mt.records[fishID]; r != nil {
		r.Meals++
		r.LastMealTick = tick
	}
}

// Get returns the record for a fish, or nil if not tracked.
func (mt *MealTracker) Get(fishID uint32) *FishRecord {
	return mt.records[fishID]
}

// Count returns the number of tracked fish.
func (mt *MealTracker) Count() int {
	return len(mt.records)
}

// Top returns up to n records with the most meals, ties broken by lower ID.
func (mt *MealTracker) Top(n int) []FishRecord {
	all := make([]FishRecord, 0, len(mt.records))
	for _, r := range mt.records {
		all = append(all, *r)
	}
	slices.SortFunc(all, func(a, b FishRecord) int {
		if a.Meals != b.Meals {
			return b.Meals - a.Meals
		}
		return int(a.FishID) - int(b.FishID)
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// Hungry returns how many tracked fish have not eaten yet.
func (mt *MealTracker) Hungry() int {
	n := 0
	for _, r := range mt.records {
		if r.Meals == 0 {
			n++
		}
	}
	return n
}

// Reset forgets every fish.
func (mt *MealTracker) Reset() {
	clear(mt.records)
}

// LogValue implements slog.LogValuer for structured logging.
func (r FishRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("fish_id", int(r.FishID)),
		slog.String("variant", r.Variant.String()),
		slog.Int("meals", r.Meals),
		slog.Int("last_meal_tick", int(r.LastMealTick)),
	)
}
