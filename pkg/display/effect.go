package display

import "slices"

// Effect selects the styling treatment applied to segments as they
// switch. The effect rides along with restyle commands; rendering is
// up to the consumer.
type Effect int

const (
	// EffectNone applies the target style directly.
	EffectNone Effect = iota
	// EffectPulse periodically brightens the lit segments.
	EffectPulse
	// EffectColorCycle rotates lit segments through a palette.
	EffectColorCycle
	// EffectFade interpolates from the previous style to the target.
	EffectFade
	// EffectPowerOn flashes a segment bright when it switches on, then
	// settles to the target style.
	EffectPowerOn
)

var effectNames = map[Effect]string{
	EffectNone:       "none",
	EffectPulse:      "pulse",
	EffectColorCycle: "color-cycle",
	EffectFade:       "fade",
	EffectPowerOn:    "power-on",
}

func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return "none"
}

// ParseEffect converts an effect name to its Effect value.
// Unrecognized names fall back to EffectNone.
func ParseEffect(name string) Effect {
	for e, n := range effectNames {
		if n == name {
			return e
		}
	}
	return EffectNone
}

// EffectNames returns all recognized effect names, sorted.
func EffectNames() []string {
	names := make([]string, 0, len(effectNames))
	for _, n := range effectNames {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
