// Package main provides the Manifold CLI.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/manifold-ml/manifold/array"
	"github.com/manifold-ml/manifold/geometry"
	"github.com/manifold-ml/manifold/learning"
)

const version = "v0.1.0-dev"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	root := &cobra.Command{
		Use:   "manifold",
		Short: "Riemannian geometry and statistics toolkit",
	}
	root.AddCommand(versionCmd(), demoCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("manifold %s\n", version)
		},
	}
}

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run small end-to-end demos",
	}
	cmd.AddCommand(demoMeanCmd(), demoSphereCmd(), demoClassifyCmd())
	return cmd
}

func demoMeanCmd() *cobra.Command {
	var (
		nodes   int
		samples int
		noise   float64
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "mean",
		Short: "Estimate the Frechet mean of randomly relabeled graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(seed))
			space := geometry.NewGraphSpace(nodes)
			metric, err := geometry.NewGraphSpaceMetric(space, geometry.GraphSpaceConfig{})
			if err != nil {
				return err
			}

			base := space.RandomPoint(1, rng)
			points := make([]*array.Array, samples)
			for i := range points {
				perturbed := base.Add(array.Randn(space.Shape(), rng).MulScalar(noise))
				points[i] = geometry.PermutationAction{}.Act(randomPermutation(nodes, rng), perturbed)
			}
			x := array.Stack(points, 0)

			est, err := learning.NewAACFrechet(metric, learning.AACFrechetConfig{Rand: rng})
			if err != nil {
				return err
			}
			res, err := est.Fit(x)
			if err != nil {
				return err
			}

			log.Info().
				Int("nodes", nodes).
				Int("samples", samples).
				Int("n_iter", res.NIter).
				Bool("converged", res.Converged).
				Float64("dist_to_base", metric.Dist(res.Estimate, base).Item()).
				Msg("Quotient Frechet mean estimated")
			return nil
		},
	}
	cmd.Flags().IntVar(&nodes, "nodes", 4, "graph nodes")
	cmd.Flags().IntVar(&samples, "samples", 12, "relabeled samples to draw")
	cmd.Flags().Float64Var(&noise, "noise", 0.05, "entrywise noise level")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func demoSphereCmd() *cobra.Command {
	var rungs int
	cmd := &cobra.Command{
		Use:   "sphere",
		Short: "Transport a tangent vector along a sphere geodesic",
		RunE: func(cmd *cobra.Command, args []string) error {
			immersion := func(p *array.Array) *array.Array {
				theta, phi := p.At(0), p.At(1)
				return array.FromValues(
					math.Cos(phi)*math.Sin(theta),
					math.Sin(phi)*math.Sin(theta),
					math.Cos(theta))
			}
			metric, err := geometry.NewPullbackMetric(2, 3, immersion, geometry.PullbackConfig{})
			if err != nil {
				return err
			}

			a := array.FromValues(math.Pi/4, 0.3)
			b := array.FromValues(math.Pi/2, 1.0)
			log.Info().
				Float64("dist", metric.Dist(a, b).Item()).
				Msg("Geodesic distance computed")

			direction := metric.Log(b, a)
			tangent := direction.MulScalar(0.5)
			res, err := geometry.LadderParallelTransport(metric, tangent, a, direction,
				geometry.LadderConfig{NRungs: rungs})
			if err != nil {
				return err
			}

			log.Info().
				Int("rungs", rungs).
				Float64("norm_before", metric.Norm(tangent, a).Item()).
				Float64("norm_after", metric.Norm(res.TransportedTangentVec, res.EndPoint).Item()).
				Msg("Pole ladder transport finished")
			return nil
		},
	}
	cmd.Flags().IntVar(&rungs, "rungs", 8, "ladder rungs")
	return cmd
}

func demoClassifyCmd() *cobra.Command {
	var (
		perClass int
		seed     int64
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify two point clouds with class means",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(seed))
			metric := geometry.NewEuclideanMetric(2)

			near := array.Randn(array.Shape{perClass, 2}, rng).MulScalar(0.5)
			far := array.Randn(array.Shape{perClass, 2}, rng).MulScalar(0.5).
				Add(array.FromValues(3, 0))
			x := array.Concat([]*array.Array{near, far}, 0)
			labels := make([]int, 2*perClass)
			for i := perClass; i < len(labels); i++ {
				labels[i] = 1
			}

			est, err := learning.NewMDM(metric, learning.MDMConfig{})
			if err != nil {
				return err
			}
			model, err := est.Fit(x, labels)
			if err != nil {
				return err
			}
			score, err := model.Score(x, labels)
			if err != nil {
				return err
			}

			log.Info().
				Int("samples", len(labels)).
				Ints("classes", model.Classes()).
				Float64("accuracy", score).
				Msg("Nearest-mean classifier fitted")
			return nil
		},
	}
	cmd.Flags().IntVar(&perClass, "per-class", 50, "samples per class")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

// randomPermutation draws a node relabeling in one-line notation.
func randomPermutation(n int, rng *rand.Rand) *array.Array {
	perm := make([]float64, n)
	for i, p := range rng.Perm(n) {
		perm[i] = float64(p)
	}
	return array.MustFromSlice(perm, array.Shape{n})
}
