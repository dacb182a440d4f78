// Package gcode formats a planned move stream into G-code text (spec.md
// §6 "Output motion stream"), grounded on piwi3910-cnc-calculator's
// Generator: a strings.Builder-based emitter that tracks last-position
// state for delta-only field output, a decimal formatter, and
// comment/variable substitution in prologue/epilogue fragments.
package gcode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/latticefab/layerkit/internal/config"
	"github.com/latticefab/layerkit/internal/geom"
	"github.com/latticefab/layerkit/internal/layer"
	"github.com/rs/zerolog"
)

// Emit formats layers against cfg and writes the result to w, grounded on
// piwi3910-cnc-calculator's Generator.GenerateAll entrypoint.
func Emit(w io.Writer, layers []*layer.Layer, cfg *config.Settings, log zerolog.Logger) error {
	_, err := io.WriteString(w, NewEmitter(cfg, log).Emit(layers))
	return err
}

// Emitter formats a sequence of planned layers into one G-code text
// stream, maintaining its own monotone Machine state separate from the
// per-layer planning Machine (spec.md §5's "export-side Machine").
type Emitter struct {
	cfg *config.Settings
	log zerolog.Logger

	b        strings.Builder
	lastX    int64
	lastY    int64
	lastZ    int64
	lastFeed float64
	hasLast  bool
}

// NewEmitter constructs an Emitter bound to cfg's scale and textual
// substitution settings.
func NewEmitter(cfg *config.Settings, log zerolog.Logger) *Emitter {
	return &Emitter{cfg: cfg, log: log}
}

// Emit writes the prologue, every layer's at_layer fragment and moves in
// ascending order, and the epilogue, returning the assembled text.
func (e *Emitter) Emit(layers []*layer.Layer) string {
	if e.cfg.Prologue != "" {
		e.b.WriteString(e.substitute(e.cfg.Prologue))
		e.b.WriteString("\n")
	}

	for _, l := range layers {
		if frag, ok := e.cfg.AtLayer[l.Index]; ok {
			e.b.WriteString(e.substitute(frag))
			e.b.WriteString("\n")
		}
		e.b.WriteString(fmt.Sprintf("; layer %d, z=%.3f\n", l.Index, l.Z))
		for _, mv := range l.Moves {
			e.writeMove(mv)
		}
	}

	if e.cfg.Epilogue != "" {
		e.b.WriteString(e.substitute(e.cfg.Epilogue))
		e.b.WriteString("\n")
	}
	return e.b.String()
}

// writeMove appends one Move as G0/G1 lines, splitting a Z-changing travel
// into its own Z-only move first when separate_z_travel is set, and
// emitting only the fields that changed since the last move.
func (e *Emitter) writeMove(mv layer.Move) {
	if mv.IsTravel && e.cfg.SeparateZTravel && e.hasLast && mv.Z != e.lastZ {
		e.writeLine(layer.Move{X: e.lastX, Y: e.lastY, Z: mv.Z, FeedRate: mv.FeedRate, IsTravel: true, Scalable: mv.Scalable})
	}
	e.writeLine(mv)
}

func (e *Emitter) writeLine(mv layer.Move) {
	cmd := "G1"
	if mv.IsTravel {
		cmd = "G0"
	}
	var parts []string
	if !e.hasLast || mv.X != e.lastX {
		parts = append(parts, "X"+e.format(geom.FromScaled(mv.X, e.cfg.ScaleConstant)))
	}
	if !e.hasLast || mv.Y != e.lastY {
		parts = append(parts, "Y"+e.format(geom.FromScaled(mv.Y, e.cfg.ScaleConstant)))
	}
	if !e.hasLast || mv.Z != e.lastZ {
		parts = append(parts, "Z"+e.format(geom.FromScaled(mv.Z, e.cfg.ScaleConstant)))
	}
	if mv.DeltaE != 0 {
		parts = append(parts, "E"+e.format(mv.DeltaE))
	}
	feedPerMinute := mv.FeedRate * 60
	if !e.hasLast || feedPerMinute != e.lastFeed {
		parts = append(parts, "F"+e.format(feedPerMinute))
		e.lastFeed = feedPerMinute
	}
	if len(parts) == 0 {
		return
	}
	e.b.WriteString(cmd)
	e.b.WriteString(" ")
	e.b.WriteString(strings.Join(parts, " "))
	e.b.WriteString("\n")

	e.lastX, e.lastY, e.lastZ = mv.X, mv.Y, mv.Z
	e.hasLast = true
}

func (e *Emitter) format(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// substitute resolves {name} placeholders against cfg.GCodeVariables (there
// are no built-in names); an unknown variable logs a warning and
// substitutes nothing (spec.md §6).
func (e *Emitter) substitute(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		start := strings.IndexByte(s[i:], '{')
		if start < 0 {
			out.WriteString(s[i:])
			break
		}
		start += i
		end := strings.IndexByte(s[start:], '}')
		if end < 0 {
			out.WriteString(s[i:])
			break
		}
		end += start
		out.WriteString(s[i:start])
		name := s[start+1 : end]
		if val, ok := e.cfg.GCodeVariables[name]; ok {
			out.WriteString(val)
		} else {
			e.log.Warn().Str("variable", name).Msg("unknown gcode variable, substituting nothing")
		}
		i = end + 1
	}
	return out.String()
}
