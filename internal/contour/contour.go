package contour

// Method names a tracer mode; the values are the selector strings
// pipeline.Convert accepts for ContourDetectionOptions.Method.
type Method string

const (
	MethodEdgeChain      Method = "edge-chain"
	MethodMoore          Method = "moore"
	MethodSuzukiAbe      Method = "suzuki"
	MethodMarchingSquares Method = "marching-squares"
)

// PostProcess applies the common post-processing step shared by every
// tracer mode: an area filter, followed by an optional simplify pass.
func PostProcess(contours []Contour, minArea, maxArea float64, simplify func([]Contour) []Contour) []Contour {
	filtered := FilterByArea(contours, minArea, maxArea)
	if simplify == nil {
		return filtered
	}
	return simplify(filtered)
}
