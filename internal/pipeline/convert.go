package pipeline

import (
	"fmt"
	"math"

	"github.com/cadtrace/cadvec/internal/contour"
	"github.com/cadtrace/cadvec/internal/edge"
	"github.com/cadtrace/cadvec/internal/emit"
	"github.com/cadtrace/cadvec/internal/palette"
	"github.com/cadtrace/cadvec/internal/preprocess"
	"github.com/cadtrace/cadvec/internal/raster"
	"github.com/cadtrace/cadvec/internal/refine"
	"github.com/cadtrace/cadvec/internal/simplify"
	"github.com/cadtrace/cadvec/internal/vectorpath"
)

func stageErr(stage string, kind ErrorKind, cause error) error {
	return &StageError{Stage: stage, Kind: kind, Cause: cause}
}

// Convert runs the full synchronous raster-to-vector pipeline on img with
// the given options. A panic raised inside any stage is recovered and
// returned as a ProcessingFailed StageError.
func Convert(img *raster.Image, opts Options) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			result, err = Result{}, stageErr("convert", ProcessingFailed, cause)
		}
	}()

	if img == nil || img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*4 {
		return Result{}, stageErr("validate", InvalidImage, fmt.Errorf("pixel buffer size does not match width*height*4"))
	}

	working := img
	if opts.InvertColors {
		working = preprocess.Invert(working)
	}

	gray := preprocess.Grayscale(working)
	if opts.EdgeDetection.ApplyNoiseReduction {
		denoised := preprocess.MedianFilter(working)
		gray = preprocess.Grayscale(denoised)
	}

	var mask *raster.BinaryMask
	switch opts.EdgeDetection.Method {
	case "", "skeleton":
		thresholded := edge.Threshold(gray)
		mask = edge.Skeletonize(thresholded)
	case "canny":
		mask = edge.Canny(gray, edge.CannyOptions{
			Sigma: opts.EdgeDetection.GaussianBlur,
			Low:   opts.EdgeDetection.LowThreshold,
			High:  opts.EdgeDetection.HighThreshold,
		})
	default:
		return Result{}, stageErr("edge", UnknownMethod, fmt.Errorf("unknown edge detection method %q", opts.EdgeDetection.Method))
	}

	var traced []contour.Contour
	switch opts.ContourDetection.Method {
	case "", "edge-chain":
		traced = contour.TraceEdgeChain(mask)
	case "moore":
		traced = contour.TraceMoore(mask)
	case "suzuki":
		for _, sc := range contour.TraceSuzuki(mask) {
			traced = append(traced, sc.Contour)
		}
	case "marching-squares":
		traced = contour.TraceMarchingSquares(gray, 128)
	default:
		return Result{}, stageErr("contour", UnknownMethod, fmt.Errorf("unknown contour detection method %q", opts.ContourDetection.Method))
	}

	var simplifyHook func([]contour.Contour) []contour.Contour
	if opts.ContourDetection.Simplify {
		simplifyHook = func(cs []contour.Contour) []contour.Contour {
			out := make([]contour.Contour, len(cs))
			for i, c := range cs {
				out[i] = contour.NewContour(simplifyPoints(c.Points, opts.ContourDetection), c.Closed, c.Hole)
			}
			return out
		}
	}
	traced = contour.PostProcess(traced, opts.ContourDetection.MinArea, opts.ContourDetection.MaxArea, simplifyHook)

	paths := make([]vectorpath.Path, len(traced))
	for i, c := range traced {
		paths[i] = vectorpath.Path{
			Points:      c.Points,
			Closed:      c.Closed,
			StrokeWidth: opts.SVG.StrokeWidth,
		}
	}

	if opts.SmoothCurves {
		tension := opts.CurveTension
		if tension < 0 {
			tension = 0
		} else if tension > 1 {
			tension = 1
		}
		for i := range paths {
			paths[i].Points = smoothPoints(paths[i].Points, paths[i].Closed, opts.SmoothMethod, tension)
		}
	}

	background := palette.DetectBackground(working)
	perceptual := opts.ColorExtraction.Quantize == "perceptual"
	candidates := palette.ExtractPalette(working, background, perceptual)
	for i := range paths {
		paths[i].Color = palette.SampleColor(working, paths[i].Points, candidates)
	}

	mergeThreshold := 0.0
	if opts.MergeSimilarPaths {
		mergeThreshold = opts.PathMergeThreshold
	}

	var layers []vectorpath.Layer
	if opts.DetectLayers {
		colors := make([]raster.Color, len(paths))
		for i, p := range paths {
			colors[i] = p.Color
		}
		buckets := palette.GroupLayers(colors, mergeThreshold, perceptual)
		layers = make([]vectorpath.Layer, len(buckets))
		for i, bucket := range buckets {
			layer := vectorpath.Layer{
				ID:      fmt.Sprintf("layer-%d", i),
				Name:    fmt.Sprintf("Layer %d", i),
				Color:   bucket.Color,
				Visible: true,
			}
			for _, idx := range bucket.Indices {
				paths[idx].Layer = layer.ID
				layer.Paths = append(layer.Paths, paths[idx])
			}
			layers[i] = layer
		}
	}

	var refinementReport *refine.Report
	if opts.Refinement.Enabled {
		refOpts := refine.Options{
			Tau:               opts.Refinement.DistanceTolerance,
			TargetF1:          opts.Refinement.TargetAccuracy,
			MaxIterations:     opts.Refinement.MaxIterations,
			SnapRadius:        opts.Refinement.SnapRadius,
			GapFillMinCluster: opts.Refinement.GapFillMinCluster,
			SpuriousThreshold: opts.Refinement.SpuriousThreshold,
		}
		refined, report := refine.Refine(paths, mask, refOpts)
		paths = refined
		refinementReport = &report
		if opts.DetectLayers {
			layers = regroupLayers(paths, mergeThreshold, perceptual)
		}
	}

	colorGroups := buildColorGroups(paths)

	emitOpts := emit.Options{
		Precision:      opts.SVG.Precision,
		StrokeWidth:    opts.SVG.StrokeWidth,
		Optimize:       opts.SVG.Optimize,
		AddMetadata:    opts.SVG.AddMetadata,
		AddLayerGroups: opts.SVG.AddLayerGroups && opts.DetectLayers,
	}
	if emitOpts.Precision == 0 {
		emitOpts.Precision = 3
	}

	var loosePaths []vectorpath.Path
	if !emitOpts.AddLayerGroups {
		loosePaths = paths
	}

	doc := emit.Document(img.Width, img.Height, layers, loosePaths, emitOpts)

	return Result{
		Document:    doc,
		Width:       img.Width,
		Height:      img.Height,
		Paths:       paths,
		Layers:      layers,
		ColorGroups: colorGroups,
		Metadata: Metadata{
			PathCount:  len(paths),
			LayerCount: len(layers),
		},
		RefinementReport: refinementReport,
	}, nil
}

func regroupLayers(paths []vectorpath.Path, threshold float64, perceptual bool) []vectorpath.Layer {
	colors := make([]raster.Color, len(paths))
	for i, p := range paths {
		colors[i] = p.Color
	}
	buckets := palette.GroupLayers(colors, threshold, perceptual)
	layers := make([]vectorpath.Layer, len(buckets))
	for i, bucket := range buckets {
		layer := vectorpath.Layer{
			ID:      fmt.Sprintf("layer-%d", i),
			Name:    fmt.Sprintf("Layer %d", i),
			Color:   bucket.Color,
			Visible: true,
		}
		for _, idx := range bucket.Indices {
			paths[idx].Layer = layer.ID
			layer.Paths = append(layer.Paths, paths[idx])
		}
		layers[i] = layer
	}
	return layers
}

// simplifyPoints dispatches to the configured polyline simplifier.
func simplifyPoints(points []raster.Point, opts ContourDetectionOptions) []raster.Point {
	switch opts.SimplifyMethod {
	case "visvalingam":
		target := opts.TargetPointCount
		if target <= 0 {
			target = len(points) / 2
			if target < 2 {
				target = 2
			}
		}
		return simplify.VisvalingamWhyatt(points, target)
	case "reumann-witkam":
		return simplify.ReumannWitkam(points, opts.Tolerance)
	case "bezier":
		curves := simplify.FitBezier(points, opts.Tolerance)
		return simplify.SampleBezier(curves, 8)
	default:
		return simplify.DouglasPeucker(points, opts.Tolerance)
	}
}

// smoothPoints dispatches to the configured curve smoother, with tension in
// [0,1] scaling each method's strength: more Chaikin passes, a wider
// moving-average window, or a larger Gaussian sigma.
func smoothPoints(points []raster.Point, closed bool, method string, tension float64) []raster.Point {
	switch method {
	case "moving-average":
		window := 1 + int(math.Round(tension*4))
		return simplify.MovingAverage(points, window)
	case "gaussian":
		sigma := 0.5 + tension*2
		return simplify.GaussianSmooth(points, sigma)
	default:
		iterations := 1 + int(math.Round(tension*3))
		return simplify.Chaikin(points, iterations, closed)
	}
}

func buildColorGroups(paths []vectorpath.Path) []ColorGroupCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range paths {
		hex := p.Color.Hex()
		if counts[hex] == 0 {
			order = append(order, hex)
		}
		counts[hex]++
	}
	out := make([]ColorGroupCount, len(order))
	for i, hex := range order {
		out[i] = ColorGroupCount{Hex: hex, Count: counts[hex]}
	}
	return out
}
