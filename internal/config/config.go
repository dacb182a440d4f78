// Package config loads the key/value settings record spec.md §6 describes,
// merges CLI overrides on top, computes the derived settings once, and
// exposes the result as an immutable *Settings passed by reference to every
// stage (spec.md §9: "construct an immutable configuration value at
// startup, pass by shared reference everywhere").
package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ConfigError carries the file/line context spec.md §7 requires for
// configuration errors.
type ConfigError struct {
	Key  string
	Line int
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config: line %d, key %q: %v", e.Line, e.Key, e.Err)
	}
	return fmt.Sprintf("config: key %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InfillPattern enumerates the supported infill line patterns (spec.md
// §4.5).
type InfillPattern int

const (
	InfillGrid InfillPattern = iota
	InfillTriangle
	InfillTriangle2
	InfillRectilinear
)

func parseInfillPattern(s string) (InfillPattern, bool) {
	switch strings.ToLower(s) {
	case "grid":
		return InfillGrid, true
	case "triangle":
		return InfillTriangle, true
	case "triangle2":
		return InfillTriangle2, true
	case "rectilinear":
		return InfillRectilinear, true
	}
	return 0, false
}

// Settings is the full, frozen configuration record. Fields are grouped
// roughly following spec.md §4's component order. Derived fields are
// computed once by derive() and never recomputed mid-run.
type Settings struct {
	// Geometry / scale
	ScaleConstant   int64
	LayerHeight     float64
	ExtrusionWidth  float64
	PackingDensity  float64
	EdgePackingDensity float64
	MaterialDiameter float64
	EdgeOverlap     float64
	Coarseness      float64 // simplify_ε = coarseness * S

	// Shells / insets
	NumShells        int
	InfillOverlap    float64
	FillThreshold    float64
	MinShellContact  float64
	SeamAlign        bool
	CombineAll       bool
	InsetPolicy      string // "strict" or "weighted"
	InsetOutsideFirst bool

	// Infill
	InfillDensity          float64
	InfillPattern          InfillPattern
	SolidInfillAngle       float64
	RoofThickness          float64
	FloorThickness         float64
	SolidFillExpansion     float64
	MinSparseInfillLen     float64
	InfillSmoothThreshold  float64
	IronTopSurface         bool
	IronDensity            float64
	InsetGapFill           bool

	// Support
	GenerateSupport      bool
	SupportAngleDegrees  float64
	SupportMargin        float64
	SupportVertMargin    int
	SupportXYExpansion   float64
	SupportEverywhere    bool
	SolidSupportBase     bool
	SupportDensity       float64
	InterfaceDensity     float64

	// Brim / raft
	BrimWidth            float64
	BrimAdhesionFactor   float64
	RaftEnabled          bool
	RaftBaseLayerHeight  float64
	RaftVertMargin       int
	RaftInterfaceLayers  int

	// Planner
	Combing             bool
	ShellClip           float64
	CoastLen            float64
	AnchorEnabled        bool
	MovingRetract        bool
	MovingRetractSpeed   float64 // resolved positive absolute speed
	WipeLen              float64
	RetractLen           float64
	RetractSpeed         float64
	RetractThreshold     float64
	RetractMinTravel     float64
	ExtraRestartLen      float64
	SeparateZTravel      bool

	// Feed rates (resolved to positive absolute values after load)
	FeedRate              float64
	PerimeterFeedRate     float64
	LoopFeedRate          float64
	SolidInfillFeedRate   float64
	SparseInfillFeedRate  float64
	SupportFeedRate       float64
	TravelFeedRate        float64
	IronFeedRate          float64
	FirstLayerMult        float64
	MinLayerTime          float64
	MinFeedRate           float64
	LayerTimeSamples      int

	// Textual substitution / per-layer fragments
	GCodeVariables map[string]string
	AtLayer        map[int]string
	Prologue       string
	Epilogue       string

	// Derived (computed by Derive, never user-set directly)
	ExtrusionArea         float64
	EdgeWidth             float64
	EdgeOffset            float64
	MaterialArea          float64
	RoofLayers            int
	FloorLayers           int
	BrimLines             int
	SolidInfillClipOffset float64
	InterfaceClipOffset   float64
	XYExtra               float64
}

// Default returns a Settings populated with the reference defaults used
// throughout spec.md's worked examples.
func Default() *Settings {
	return &Settings{
		ScaleConstant:      1000,
		LayerHeight:        0.2,
		ExtrusionWidth:     0.45,
		PackingDensity:     1.0,
		EdgePackingDensity: 1.0,
		MaterialDiameter:   1.75,
		EdgeOverlap:        1.0,
		Coarseness:         0.02,

		NumShells:       2,
		InfillOverlap:   0.15,
		FillThreshold:   0.1,
		MinShellContact: 0,
		SeamAlign:       true,
		InsetPolicy:       "weighted",
		InsetOutsideFirst: true,

		InfillDensity:    0.2,
		InfillPattern:    InfillGrid,
		SolidInfillAngle: 45,
		RoofThickness:    0.8,
		FloorThickness:   0.8,
		MinSparseInfillLen: 0.5,
		InfillSmoothThreshold: 0.5,
		InsetGapFill:     true,

		SupportAngleDegrees: 60,
		SupportMargin:       0.2,
		SupportVertMargin:   1,
		SupportXYExpansion:  0.7,
		SupportDensity:      0.2,
		InterfaceDensity:    0.7,

		BrimAdhesionFactor: 0.5,
		RaftVertMargin:     1,
		RaftInterfaceLayers: 2,

		Combing:          true,
		ShellClip:        0,
		AnchorEnabled:    true,
		RetractLen:       1.0,
		RetractSpeed:     30,
		RetractThreshold: 1.5,
		RetractMinTravel: 1.5,

		FeedRate:           50,
		PerimeterFeedRate:  -0.5,
		LoopFeedRate:       -0.5,
		SolidInfillFeedRate: -1.0,
		SparseInfillFeedRate: -1.0,
		SupportFeedRate:    -1.0,
		TravelFeedRate:     -3.0,
		IronFeedRate:       -0.2,
		FirstLayerMult:     0.5,
		MinLayerTime:       5,
		MinFeedRate:        10,
		LayerTimeSamples:   5,

		GCodeVariables: map[string]string{},
		AtLayer:        map[int]string{},
	}
}

// Load parses a simple "key = value" settings file (one setting per line,
// '#' starts a comment, blank lines ignored) on top of a base Settings
// (usually Default()), resolving the gcode_variable and at_layer aliases
// spec.md §6 calls out, then calling Derive.
func Load(r io.Reader, base *Settings) (*Settings, error) {
	s := *base
	if s.GCodeVariables == nil {
		s.GCodeVariables = map[string]string{}
	}
	if s.AtLayer == nil {
		s.AtLayer = map[int]string{}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, &ConfigError{Line: lineNo, Err: fmt.Errorf("expected key = value")}
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if err := s.apply(key, value); err != nil {
			return nil, &ConfigError{Key: key, Line: lineNo, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: reading settings: %w", err)
	}

	s.resolveFeedRates()
	s.derive()
	return &s, nil
}

func (s *Settings) apply(key, value string) error {
	switch key {
	case "gcode_variable":
		name, val, ok := strings.Cut(value, "=")
		if !ok {
			return fmt.Errorf("gcode_variable requires name=value")
		}
		s.GCodeVariables[strings.TrimSpace(name)] = strings.TrimSpace(val)
		return nil
	case "at_layer":
		idxStr, frag, ok := strings.Cut(value, ":")
		if !ok {
			return fmt.Errorf("at_layer requires index:fragment")
		}
		idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
		if err != nil {
			return fmt.Errorf("at_layer index: %w", err)
		}
		s.AtLayer[idx] = frag
		return nil
	}

	field, ok := fieldTable[key]
	if !ok {
		return fmt.Errorf("unknown setting")
	}
	return field.set(s, value)
}

// settingField binds a config key to a typed struct field setter, with an
// optional numeric range, matching spec.md §6's "semantic type, read-only
// flag, ... optional numeric range" description.
type settingField struct {
	set func(s *Settings, value string) error
}

func realField(getter func(s *Settings) *float64, min, max float64, hasRange bool) settingField {
	return settingField{set: func(s *Settings, value string) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("expected real number: %w", err)
		}
		if hasRange && (f < min || f > max) {
			return fmt.Errorf("value %v out of range [%v, %v]", f, min, max)
		}
		*getter(s) = f
		return nil
	}}
}

func intField(getter func(s *Settings) *int) settingField {
	return settingField{set: func(s *Settings, value string) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("expected integer: %w", err)
		}
		*getter(s) = v
		return nil
	}}
}

func boolField(getter func(s *Settings) *bool) settingField {
	return settingField{set: func(s *Settings, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected boolean: %w", err)
		}
		*getter(s) = v
		return nil
	}}
}

func stringField(getter func(s *Settings) *string) settingField {
	return settingField{set: func(s *Settings, value string) error {
		*getter(s) = value
		return nil
	}}
}

var fieldTable = map[string]settingField{
	"layer_height":         realField(func(s *Settings) *float64 { return &s.LayerHeight }, 0, 0, false),
	"extrusion_width":      realField(func(s *Settings) *float64 { return &s.ExtrusionWidth }, 0, 0, false),
	"packing_density":      realField(func(s *Settings) *float64 { return &s.PackingDensity }, 0, 1, true),
	"edge_packing_density": realField(func(s *Settings) *float64 { return &s.EdgePackingDensity }, 0, 1, true),
	"edge_overlap":         realField(func(s *Settings) *float64 { return &s.EdgeOverlap }, 0, 1, true),
	"infill_density":       realField(func(s *Settings) *float64 { return &s.InfillDensity }, 0, 1, true),
	"infill_overlap":       realField(func(s *Settings) *float64 { return &s.InfillOverlap }, 0, 1, true),
	"fill_threshold":       realField(func(s *Settings) *float64 { return &s.FillThreshold }, 0, 0, false),
	"solid_infill_angle":   realField(func(s *Settings) *float64 { return &s.SolidInfillAngle }, 0, 0, false),
	"roof_thickness":       realField(func(s *Settings) *float64 { return &s.RoofThickness }, 0, 0, false),
	"brim_width":           realField(func(s *Settings) *float64 { return &s.BrimWidth }, 0, 0, false),
	"brim_adhesion_factor": realField(func(s *Settings) *float64 { return &s.BrimAdhesionFactor }, 0, 1, true),
	"support_angle":        realField(func(s *Settings) *float64 { return &s.SupportAngleDegrees }, 0, 90, true),
	"support_margin":       realField(func(s *Settings) *float64 { return &s.SupportMargin }, 0, 0, false),
	"support_xy_expansion": realField(func(s *Settings) *float64 { return &s.SupportXYExpansion }, 0, 0, false),
	"support_density":      realField(func(s *Settings) *float64 { return &s.SupportDensity }, 0, 1, true),
	"interface_density":    realField(func(s *Settings) *float64 { return &s.InterfaceDensity }, 0, 1, true),
	"retract_len":          realField(func(s *Settings) *float64 { return &s.RetractLen }, 0, 0, false),
	"retract_speed":        realField(func(s *Settings) *float64 { return &s.RetractSpeed }, 0, 0, false),
	"retract_threshold":    realField(func(s *Settings) *float64 { return &s.RetractThreshold }, 0, 0, false),
	"retract_min_travel":   realField(func(s *Settings) *float64 { return &s.RetractMinTravel }, 0, 0, false),
	"extra_restart_len":    realField(func(s *Settings) *float64 { return &s.ExtraRestartLen }, 0, 0, false),
	"wipe_len":             realField(func(s *Settings) *float64 { return &s.WipeLen }, 0, 0, false),
	"coast_len":            realField(func(s *Settings) *float64 { return &s.CoastLen }, 0, 0, false),
	"shell_clip":           realField(func(s *Settings) *float64 { return &s.ShellClip }, 0, 0, false),
	"feed_rate":            realField(func(s *Settings) *float64 { return &s.FeedRate }, 0, 0, false),
	"perimeter_feed_rate":  realField(func(s *Settings) *float64 { return &s.PerimeterFeedRate }, 0, 0, false),
	"loop_feed_rate":       realField(func(s *Settings) *float64 { return &s.LoopFeedRate }, 0, 0, false),
	"solid_infill_feed_rate": realField(func(s *Settings) *float64 { return &s.SolidInfillFeedRate }, 0, 0, false),
	"infill_feed_rate": settingField{set: func(s *Settings, value string) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("expected real number: %w", err)
		}
		s.SolidInfillFeedRate = f
		s.SparseInfillFeedRate = f
		return nil
	}},
	"min_layer_time":    realField(func(s *Settings) *float64 { return &s.MinLayerTime }, 0, 0, false),
	"min_feed_rate":     realField(func(s *Settings) *float64 { return &s.MinFeedRate }, 0, 0, false),
	"first_layer_mult":  realField(func(s *Settings) *float64 { return &s.FirstLayerMult }, 0, 0, false),
	"material_diameter": realField(func(s *Settings) *float64 { return &s.MaterialDiameter }, 0, 0, false),
	"coarseness":        realField(func(s *Settings) *float64 { return &s.Coarseness }, 0, 0, false),
	"infill_smooth_threshold": realField(func(s *Settings) *float64 { return &s.InfillSmoothThreshold }, 0, 0, false),

	"shells":              intField(func(s *Settings) *int { return &s.NumShells }),
	"support_vert_margin":  intField(func(s *Settings) *int { return &s.SupportVertMargin }),
	"raft_vert_margin":     intField(func(s *Settings) *int { return &s.RaftVertMargin }),
	"raft_interface_layers": intField(func(s *Settings) *int { return &s.RaftInterfaceLayers }),
	"layer_time_samples":   intField(func(s *Settings) *int { return &s.LayerTimeSamples }),
	"scale_constant": settingField{set: func(s *Settings, value string) error {
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("expected integer: %w", err)
		}
		s.ScaleConstant = v
		return nil
	}},

	"generate_support":   boolField(func(s *Settings) *bool { return &s.GenerateSupport }),
	"support_everywhere": boolField(func(s *Settings) *bool { return &s.SupportEverywhere }),
	"solid_support_base": boolField(func(s *Settings) *bool { return &s.SolidSupportBase }),
	"seam_align":         boolField(func(s *Settings) *bool { return &s.SeamAlign }),
	"combine_all":        boolField(func(s *Settings) *bool { return &s.CombineAll }),
	"iron_top_surface":   boolField(func(s *Settings) *bool { return &s.IronTopSurface }),
	"inset_outside_first": boolField(func(s *Settings) *bool { return &s.InsetOutsideFirst }),
	"inset_policy": settingField{set: func(s *Settings, value string) error {
		if value != "strict" && value != "weighted" {
			return fmt.Errorf("inset_policy must be \"strict\" or \"weighted\"")
		}
		s.InsetPolicy = value
		return nil
	}},
	"comb":               boolField(func(s *Settings) *bool { return &s.Combing }),
	"moving_retract":     boolField(func(s *Settings) *bool { return &s.MovingRetract }),
	"separate_z_travel":  boolField(func(s *Settings) *bool { return &s.SeparateZTravel }),
	"raft":               boolField(func(s *Settings) *bool { return &s.RaftEnabled }),

	"infill_pattern": settingField{set: func(s *Settings, value string) error {
		p, ok := parseInfillPattern(value)
		if !ok {
			return fmt.Errorf("unknown infill pattern %q", value)
		}
		s.InfillPattern = p
		return nil
	}},

	"prologue": stringField(func(s *Settings) *string { return &s.Prologue }),
	"epilogue": stringField(func(s *Settings) *string { return &s.Epilogue }),
}

// resolveFeedRates turns the negative "multiple of base feed rate" encoding
// (spec.md §6) into positive absolute values.
func (s *Settings) resolveFeedRates() {
	resolve := func(v, base float64) float64 {
		if v < 0 {
			return -v * base
		}
		return v
	}
	s.PerimeterFeedRate = resolve(s.PerimeterFeedRate, s.FeedRate)
	s.LoopFeedRate = resolve(s.LoopFeedRate, s.FeedRate)
	s.SolidInfillFeedRate = resolve(s.SolidInfillFeedRate, s.FeedRate)
	s.SparseInfillFeedRate = resolve(s.SparseInfillFeedRate, s.FeedRate)
	s.SupportFeedRate = resolve(s.SupportFeedRate, s.FeedRate)
	s.TravelFeedRate = resolve(s.TravelFeedRate, s.FeedRate)
	s.IronFeedRate = resolve(s.IronFeedRate, s.SolidInfillFeedRate)
	s.MovingRetractSpeed = resolve(s.MovingRetractSpeed, s.RetractSpeed)
}

// derive computes the derived settings of spec.md §6 from the loaded
// record, once.
func (s *Settings) derive() {
	w := s.ExtrusionWidth
	h := s.LayerHeight

	s.ExtrusionArea = w*h - (h*h-h*h*math.Pi/4)*(1-s.PackingDensity)
	s.EdgeWidth = (s.ExtrusionArea-h*h*math.Pi/4)/h + h
	s.EdgeOffset = -(s.EdgeWidth + (s.EdgeWidth-w)*(1-s.EdgePackingDensity)) / 2

	d := s.MaterialDiameter
	s.MaterialArea = d * d * math.Pi / 4

	if h > 0 {
		s.RoofLayers = int(math.Round(s.RoofThickness / h))
		s.FloorLayers = int(math.Round(s.FloorThickness / h))
	}
	if w > 0 {
		s.BrimLines = int(math.Round(s.BrimWidth / w))
	}

	solidClip := (0.5+float64(s.NumShells)-s.FillThreshold-s.MinShellContact) * w
	if solidClip < 0 {
		solidClip = 0
	}
	s.SolidInfillClipOffset = solidClip

	angle := s.SupportAngleDegrees * math.Pi / 180
	interfaceClip := (w/2)*(1-s.EdgeOverlap) + (0.5+s.SupportMargin)*s.EdgeWidth - s.EdgeOffset - w/8
	tanTerm := math.Tan(angle) * h
	if tanTerm < interfaceClip {
		interfaceClip = tanTerm
	}
	s.InterfaceClipOffset = interfaceClip

	s.XYExtra = s.BrimWidth + s.SupportMargin*s.EdgeWidth + s.SupportXYExpansion
	if s.RaftEnabled {
		s.XYExtra += s.RaftVertMarginWidth()
	}
}

// RaftVertMarginWidth is a small helper kept distinct from derive's inline
// math because it is also used by internal/adhesion to size the raft
// footprint.
func (s *Settings) RaftVertMarginWidth() float64 {
	return float64(s.RaftVertMargin) * s.LayerHeight
}

// SupportAngleRadians returns the configured support overhang angle in
// radians, as used by the tan(support_angle)*h formulas in spec.md §4.6.
func (s *Settings) SupportAngleRadians() float64 {
	return s.SupportAngleDegrees * math.Pi / 180
}
