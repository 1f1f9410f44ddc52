package systems

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/pthm-cable/fishfeed/components"
)

func TestWithin(t *testing.T) {
	origin := components.Position{}
	tests := []struct {
		name   string
		b      components.Position
		radius float64
		want   bool
	}{
		{"inside", components.Position{X: 3, Y: 4}, 5.5, true},
		{"exactly on radius", components.Position{X: 3, Y: 4}, 5, false},
		{"outside", components.Position{X: 6, Y: 0}, 5, false},
		{"same point", origin, 1, true},
		{"zero radius", origin, 0, false},
		{"negative radius", origin, -1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Within(origin, tc.b, tc.radius); got != tc.want {
				t.Errorf("Within(%+v, %+v, %v) = %v, want %v", origin, tc.b, tc.radius, got, tc.want)
			}
		})
	}
}

func TestPelletGridMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	grid := NewPelletGrid(testField, 48)

	pellets := make([]PelletView, 300)
	for i := range pellets {
		// Some pellets sit outside the playfield and land in edge cells
		pellets[i].Pos = components.Position{
			X: rng.Float64()*(testField.Width()+40) - 20,
			Y: rng.Float64()*(testField.Height()+40) - 20,
		}
		grid.Insert(i, pellets[i].Pos)
	}

	for q := 0; q < 50; q++ {
		pos := components.Position{X: rng.Float64() * testField.Width(), Y: rng.Float64() * testField.Height()}
		radius := 5 + rng.Float64()*70

		var got []int
		for _, n := range grid.QueryRadiusInto(nil, pos, radius, pellets) {
			got = append(got, n.Index)
		}
		var want []int
		for i := range pellets {
			if Within(pos, pellets[i].Pos, radius) {
				want = append(want, i)
			}
		}
		slices.Sort(got)

		if !slices.Equal(got, want) {
			t.Fatalf("query %d at %+v r=%v: got %v, want %v", q, pos, radius, got, want)
		}
	}
}

func TestPelletGridClear(t *testing.T) {
	grid := NewPelletGrid(testField, 48)
	pellets := []PelletView{{Pos: components.Position{X: 10, Y: 10}}}
	grid.Insert(0, pellets[0].Pos)
	grid.Clear()

	if got := grid.QueryRadiusInto(nil, pellets[0].Pos, 100, pellets); len(got) != 0 {
		t.Errorf("found %d pellets after Clear", len(got))
	}
}

func TestInsertSorted(t *testing.T) {
	var xs []int
	for _, v := range []int{5, 1, 4, 1, 9, 0} {
		xs = insertSorted(xs, v)
	}
	if want := []int{0, 1, 1, 4, 5, 9}; !slices.Equal(xs, want) {
		t.Errorf("insertSorted = %v, want %v", xs, want)
	}
}

func TestPhaseOrder(t *testing.T) {
	var keys []string
	for _, p := range Phases() {
		keys = append(keys, p.String())
	}
	want := []string{"pellets", "prune", "fish", "props", "player", "telemetry"}
	if !slices.Equal(keys, want) {
		t.Errorf("Phases = %v, want %v", keys, want)
	}
	if got := PhaseFish.Info().Name; got != "Fish" {
		t.Errorf("PhaseFish name = %q, want %q", got, "Fish")
	}
	if got := Phase(42).Info().Name; got != "?" {
		t.Errorf("unknown phase name = %q, want %q", got, "?")
	}
}
