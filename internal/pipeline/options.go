package pipeline

// EdgeDetectionOptions configures the binary/edge extraction stage.
type EdgeDetectionOptions struct {
	Method              string // "skeleton" (default), "canny"
	LowThreshold        float64
	HighThreshold       float64
	GaussianBlur        float64
	ApplyNoiseReduction bool
}

// ContourDetectionOptions configures the contour tracer.
type ContourDetectionOptions struct {
	Method   string // "edge-chain" (default), "moore", "suzuki", "marching-squares"
	MinArea  float64
	MaxArea  float64
	Simplify bool
	// SimplifyMethod selects the polyline simplifier Simplify runs:
	// "douglas-peucker" (default), "visvalingam", "reumann-witkam", or
	// "bezier" (fits cubic Bezier curves, then resamples them back into a
	// polyline for the line-based emitter).
	SimplifyMethod   string
	Tolerance        float64
	TargetPointCount int // used by "visvalingam"; 0 means half the input points
}

// SVGOptions configures the vector emitter.
type SVGOptions struct {
	StrokeWidth    float64
	Precision      int
	Optimize       bool
	AddMetadata    bool
	AddLayerGroups bool
	ViewBox        [4]float64
}

// ColorExtractionOptions configures the color analyzer.
type ColorExtractionOptions struct {
	MaxColors        int
	MinPercentage    float64
	Quantize         string // "", "perceptual"
	IgnoreBackground bool
	HasBackgroundColor bool
	BackgroundColor  [3]uint8
}

// RefinementOptions configures the refinement loop.
type RefinementOptions struct {
	Enabled           bool
	TargetAccuracy    float64
	MaxIterations     int
	SnapRadius        int
	GapFillMinCluster int
	SpuriousThreshold float64
	DistanceTolerance float64
	Parallel          bool
}

// Options is the full per-invocation configuration record.
type Options struct {
	InvertColors       bool
	EdgeDetection      EdgeDetectionOptions
	ContourDetection   ContourDetectionOptions
	SVG                SVGOptions
	ColorExtraction    ColorExtractionOptions
	SmoothCurves bool
	// SmoothMethod selects the curve-smoothing algorithm applied when
	// SmoothCurves is set: "chaikin" (default), "moving-average", or
	// "gaussian". CurveTension in [0,1] scales each method's strength.
	SmoothMethod string
	CurveTension float64
	DetectLayers       bool
	MergeSimilarPaths  bool
	PathMergeThreshold float64
	Refinement         RefinementOptions
}

// Defaults returns the documented pipeline defaults.
func Defaults() Options {
	return Options{
		EdgeDetection: EdgeDetectionOptions{
			Method:        "skeleton",
			LowThreshold:  50,
			HighThreshold: 150,
			GaussianBlur:  1.0,
		},
		ContourDetection: ContourDetectionOptions{
			Method:    "edge-chain",
			MinArea:   0,
			MaxArea:   0,
			Simplify:  true,
			Tolerance: 1.0,
		},
		SVG: SVGOptions{
			StrokeWidth: 1,
			Precision:   3,
		},
		ColorExtraction: ColorExtractionOptions{
			MaxColors:        10,
			MinPercentage:    0.1,
			IgnoreBackground: true,
		},
		CurveTension:       0.5,
		DetectLayers:       true,
		MergeSimilarPaths:  true,
		PathMergeThreshold: 30,
		Refinement: RefinementOptions{
			Enabled:           true,
			TargetAccuracy:    0.85,
			MaxIterations:     3,
			SnapRadius:        3,
			GapFillMinCluster: 20,
			SpuriousThreshold: 0.7,
			DistanceTolerance: 2,
		},
	}
}
