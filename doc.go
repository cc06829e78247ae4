// Package ratingfit estimates how much each player rating contributes to a box
// score statistic, by ordinary least squares over a league's player seasons.
//
// Given players with per-season ratings (height, strength, speed, shooting and
// so on) and per-season stats, ratingfit pairs every qualifying ratings row
// with the same season's stat line and solves
//
//	β = (XᵗX)⁻¹ Xᵗy
//
// where each row of X holds one player season's ratings and y holds the
// chosen response (PER by default). The resulting coefficients say how many
// points of the response one point of each rating is worth, which is the
// usual way to rebalance a ratings-to-performance model.
//
// # Packages
//
//   - core/matrix: dense row-major matrix with transpose, multiply,
//     Gauss–Jordan reduction and in-place inversion
//   - linear: RegressionCoefficients and a LinearRegression estimator with
//     optional intercept
//   - preprocessing: StandardScaler for standardized fits
//   - metrics: MSE, RMSE, MAE and R² for goodness of fit
//   - ratings: player data model, JSON/YAML/CSV loaders, sample collection
//     and the end-to-end Fit
//   - pkg/report: text, markdown, JSON and YAML reports plus a fitted vs
//     observed plot
//   - pkg/config: TOML/YAML/JSON run configuration
//   - cmd/ratingfit: the command line front end
//
// # Quick Start
//
// Fitting the normal equations directly:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/hoopsim/ratingfit/core/matrix"
//	    "github.com/hoopsim/ratingfit/linear"
//	)
//
//	func main() {
//	    X, _ := matrix.New([][]float64{{1, 0}, {0, 1}, {1, 1}})
//	    y, _ := matrix.ColumnVector([]float64{3, -2, 1})
//
//	    beta, err := linear.RegressionCoefficients(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(beta.Col(0)) // [3 -2]
//	}
//
// Fitting rating weights from a player file:
//
//	players, err := ratings.LoadPlayersFile("players.json", nil, "", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := ratings.Run(ctx, players, ratings.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range res.Weights {
//	    fmt.Printf("%-5s %8.3f\n", w.Rating, w.Scaled)
//	}
//
// # Error Handling
//
// Errors carry stack traces and typed details (see pkg/errors). A singular
// normal-equation matrix, which happens when ratings are collinear or there
// are fewer qualifying samples than ratings, is reported as
// errors.ErrSingularMatrix:
//
//	if errors.Is(err, errors.ErrSingularMatrix) {
//	    // drop a rating or lower the minutes floor
//	}
//
// # Command Line
//
//	ratingfit fit players.json --response per --min-minutes 500 --format markdown
package ratingfit
