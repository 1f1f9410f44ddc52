package components

import "fmt"

// String returns the display name for a FishState.
func (s FishState) String() string {
	names := FishStateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// FishStateNames returns the display names for all fish states.
// The order matches the FishState constants.
func FishStateNames() []string {
	return []string{"Idle", "SlowLeft", "FastLeft", "SlowRight", "FastRight", "EatingLeft", "EatingRight"}
}

// FishStateCount returns the number of fish states.
func FishStateCount() int {
	return len(FishStateNames())
}

// AllFishStates returns every FishState in declaration order.
func AllFishStates() []FishState {
	states := make([]FishState, FishStateCount())
	for i := range states {
		states[i] = FishState(i)
	}
	return states
}

// String returns the level-file name for a Variant.
func (v Variant) String() string {
	switch v {
	case VariantCommon:
		return "common"
	case VariantRare:
		return "rare"
	}
	return "unknown"
}

// ParseVariant maps a level-file variant name to a Variant.
// An empty name selects the common variant.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "", "common", "grey":
		return VariantCommon, nil
	case "rare", "golden":
		return VariantRare, nil
	}
	return VariantCommon, fmt.Errorf("unknown fish variant %q", name)
}

// SpriteFrame returns the atlas frame for a fish state:
// 0 swim left, 1 swim right, 2 eat left, 3 eat right.
func (s FishState) SpriteFrame() int {
	frame := 0
	if !s.FacingLeft() {
		frame = 1
	}
	if s.Eating() {
		frame += 2
	}
	return frame
}
