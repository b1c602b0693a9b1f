package palette

import (
	"math/rand"

	"github.com/cadtrace/cadvec/internal/raster"
)

// KMeans finds k dominant colors among samples, seeding centroids with
// k-means++ (first centroid uniform random, subsequent centroids weighted
// by squared distance to the nearest existing centroid), then iterating
// assignment/mean-update until no centroid moves more than 1 unit or 20
// iterations elapse. rng is the caller-supplied source of randomness for
// the k-means++ seeding.
func KMeans(samples []raster.Color, k int, rng *rand.Rand) []raster.Color {
	if len(samples) == 0 || k <= 0 {
		return nil
	}
	if k > len(samples) {
		k = len(samples)
	}

	centroids := seedPlusPlus(samples, k, rng)

	for iter := 0; iter < 20; iter++ {
		sums := make([][3]float64, k)
		counts := make([]int, k)

		for _, s := range samples {
			best, bestDist := 0, distSq(s, centroids[0])
			for i := 1; i < k; i++ {
				d := distSq(s, centroids[i])
				if d < bestDist {
					best, bestDist = i, d
				}
			}
			sums[best][0] += float64(s.R)
			sums[best][1] += float64(s.G)
			sums[best][2] += float64(s.B)
			counts[best]++
		}

		maxMove := 0.0
		for i := 0; i < k; i++ {
			if counts[i] == 0 {
				// Empty clusters are skipped, not counted toward
				// convergence and not recentered.
				continue
			}
			newC := raster.Color{
				R: uint8(sums[i][0] / float64(counts[i])),
				G: uint8(sums[i][1] / float64(counts[i])),
				B: uint8(sums[i][2] / float64(counts[i])),
				A: 255,
			}
			move := DistanceRGB(newC, centroids[i])
			if move > maxMove {
				maxMove = move
			}
			centroids[i] = newC
		}

		if maxMove <= 1 {
			break
		}
	}

	return centroids
}

func distSq(a, b raster.Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

func seedPlusPlus(samples []raster.Color, k int, rng *rand.Rand) []raster.Color {
	centroids := make([]raster.Color, 0, k)
	centroids = append(centroids, samples[rng.Intn(len(samples))])

	for len(centroids) < k {
		weights := make([]float64, len(samples))
		total := 0.0
		for i, s := range samples {
			minDist := distSq(s, centroids[0])
			for _, c := range centroids[1:] {
				if d := distSq(s, c); d < minDist {
					minDist = d
				}
			}
			weights[i] = minDist
			total += minDist
		}
		if total == 0 {
			centroids = append(centroids, samples[rng.Intn(len(samples))])
			continue
		}
		target := rng.Float64() * total
		acc := 0.0
		chosen := samples[len(samples)-1]
		for i, w := range weights {
			acc += w
			if acc >= target {
				chosen = samples[i]
				break
			}
		}
		centroids = append(centroids, chosen)
	}

	return centroids
}
