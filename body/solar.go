package body

// Mercury's diameter anchors the visual scale of every planet
const mercuryKm = 4879

// PlanetDiameter converts a real diameter in km to the visual scale
func PlanetDiameter(km, massFactor float64) float64 {
	return km / mercuryKm * .25 * massFactor
}

// SolarSystem returns the default sun with its inner planets, the Moon and Jupiter
// Positions are in AU along +X; days in hours; periods in time units (Earth days)
func SolarSystem(massFactor float64) Spec {
	d := func(km float64) float64 { return PlanetDiameter(km, massFactor) }

	return Spec{
		Name:     "Sun",
		Diameter: 1,
		Day:      27,
		Color:    "#FDB813",
		Children: []Spec{
			{Name: "Mercury", Diameter: d(4879), Position: [3]float64{.387, 0, 0}, Day: 4222.6, Period: 88, Color: "#B5B5B5"},
			{Name: "Venus", Diameter: d(12_104), Position: [3]float64{.723, 0, 0}, Day: 2802, Period: 224.7, Color: "#E8CDA2"},
			{
				Name: "Earth", Diameter: d(12_756), Position: [3]float64{1, 0, 0}, Day: 24, Period: 365.2, Color: "#2E86AB",
				Children: []Spec{
					{Name: "Moon", Diameter: d(3475), Position: [3]float64{1.257, 0, 0}, Day: 708.7, Period: 27.3, Color: "#C8C8C8"},
				},
			},
			{Name: "Mars", Diameter: d(6792), Position: [3]float64{1.52, 0, 0}, Day: 24.7, Period: 687, Color: "#C1440E"},
			{Name: "Jupiter", Diameter: d(142_984), Position: [3]float64{5.2, 0, 0}, Day: 9.9, Period: 4331, Color: "#C88B3A"},
		},
	}
}
