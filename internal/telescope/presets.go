package telescope

import "github.com/psrsim/psrsim/internal/units"

// GBT returns the 100m Green Bank Telescope with its GUPPI systems.
// At ~1 GHz the effective area is about 5500 m² and Tsys about 35 K.
func GBT() *Telescope {
	g := New("GBT", units.Meters(100),
		WithArea(units.SquareMeters(5500)),
		WithTsys(units.Kelvin(35)))

	g.AddSystem("820_GUPPI",
		Receiver{Name: "820", Fcent: units.Megahertz(820), Bandwidth: units.Megahertz(180)},
		Backend{Name: "GUPPI", SampRate: units.Megahertz(3.125)})
	g.AddSystem("Lband_GUPPI",
		Receiver{Name: "Lband", Fcent: units.Megahertz(1400), Bandwidth: units.Megahertz(800)},
		Backend{Name: "GUPPI", SampRate: units.Megahertz(12.5)})
	return g
}

// Arecibo returns the Arecibo 300m telescope with its PUPPI systems.
// With Lwide the effective area is about 22000 m² and Tsys about 35 K.
func Arecibo() *Telescope {
	a := New("Arecibo", units.Meters(300),
		WithArea(units.SquareMeters(22000)),
		WithTsys(units.Kelvin(35)))

	a.AddSystem("430_PUPPI",
		Receiver{Name: "430", Fcent: units.Megahertz(430), Bandwidth: units.Megahertz(100)},
		Backend{Name: "PUPPI", SampRate: units.Megahertz(1.5625)})
	a.AddSystem("Lband_PUPPI",
		Receiver{Name: "Lband", Fcent: units.Megahertz(1410), Bandwidth: units.Megahertz(800)},
		Backend{Name: "PUPPI", SampRate: units.Megahertz(12.5)})
	a.AddSystem("Sband_PUPPI",
		Receiver{Name: "Sband", Fcent: units.Megahertz(2030), Bandwidth: units.Megahertz(400)},
		Backend{Name: "PUPPI", SampRate: units.Megahertz(12.5)})
	return a
}
