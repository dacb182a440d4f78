package config

import "github.com/spf13/pflag"

// Overrides are the subset of settings exposed as direct CLI flags; the
// full settings surface remains reachable through the key/value file
// loaded by Load, matching spec.md §6's split between file-based settings
// and the CLI collaborator.
type Overrides struct {
	LayerHeight    float64
	ExtrusionWidth float64
	InfillDensity  float64
	Shells         int
	GenerateSupport bool
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *pflag.FlagSet, o *Overrides) {
	fs.Float64Var(&o.LayerHeight, "layer-height", 0, "override layer_height (mm)")
	fs.Float64Var(&o.ExtrusionWidth, "extrusion-width", 0, "override extrusion_width (mm)")
	fs.Float64Var(&o.InfillDensity, "infill-density", -1, "override infill_density (0..1)")
	fs.IntVar(&o.Shells, "shells", 0, "override number of shells")
	fs.BoolVar(&o.GenerateSupport, "support", false, "enable support generation")
}

// Apply merges non-zero overrides onto s, in place, after Load has already
// computed the file-based settings and before Derive's formulas are
// re-evaluated (Load always calls derive after apply runs, so CLI
// overrides participate in the derived-settings formulas).
func (o *Overrides) Apply(s *Settings) {
	if o.LayerHeight > 0 {
		s.LayerHeight = o.LayerHeight
	}
	if o.ExtrusionWidth > 0 {
		s.ExtrusionWidth = o.ExtrusionWidth
	}
	if o.InfillDensity >= 0 {
		s.InfillDensity = o.InfillDensity
	}
	if o.Shells > 0 {
		s.NumShells = o.Shells
	}
	if o.GenerateSupport {
		s.GenerateSupport = true
	}
	s.derive()
}
