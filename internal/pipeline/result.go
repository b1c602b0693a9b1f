package pipeline

import (
	"github.com/cadtrace/cadvec/internal/refine"
	"github.com/cadtrace/cadvec/internal/vectorpath"
)

// ColorGroupCount records how many paths were assigned a given hex color.
type ColorGroupCount struct {
	Hex   string
	Count int
}

// StageTiming records how long one named stage took.
type StageTiming struct {
	Stage         string
	DurationNanos int64
}

// Metadata carries diagnostic information about one conversion run.
type Metadata struct {
	Format          string
	DurationMillis  float64
	PathCount       int
	LayerCount      int
	StageTimings    []StageTiming
}

// Result is the full output of one Convert call.
type Result struct {
	Document         string
	Width            int
	Height           int
	Paths            []vectorpath.Path
	Layers           []vectorpath.Layer
	ColorGroups      []ColorGroupCount
	Metadata         Metadata
	RefinementReport *refine.Report
}
