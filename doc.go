// Package weaklearn fits linear classifiers to weak-supervision design
// matrices by elastic-net regularized logistic regression.
//
// Rows of the design matrix are instances and columns are noisy labeling
// signals: hand-written labeling functions and learned features, each voting
// +1, -1 or abstaining with 0. Given observed ±1 labels, weaklearn learns a
// weight per signal.
//
// # Quick Start
//
//	prob, _ := datasets.Generate(datasets.SmallConfig(), rand.New(rand.NewPCG(1, 1)))
//	n, _ := prob.X.Dims()
//
//	model := linear_model.NewElasticNetLogisticRegression(
//	    linear_model.WithAlpha(1),
//	    linear_model.WithMuSeq(1, 1e-2, 1e-4),
//	    linear_model.WithInitialWeights(prob.W0),
//	    linear_model.WithCV(3, true),
//	)
//	if err := model.Fit(prob.X, mat.NewVecDense(n, prob.GT)); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.SelectedMu(), model.Weights())
//
// # Packages
//
//   - sklearn/linear_model: loss evaluator, proximal-gradient solver,
//     warm-started regularization path, cross-validated strength selection,
//     and the ElasticNetLogisticRegression estimator
//   - sklearn/model_selection: k-fold splitters
//   - core/matrix: dense and CSR design matrices behind one interface
//   - core/model: estimator interfaces, fitted state, weight export
//   - core/parallel: fold-level fan-out
//   - datasets: synthetic weak-supervision problems
//   - metrics: sign accuracy and fold statistics
//   - pkg/errors, pkg/log: structured errors and zerolog-backed logging
//
// # Solver
//
// Each iteration takes a gradient step on the mean logistic loss, shrinks
// the weights by 1/(1 + rate·(1-alpha)·mu), and soft-thresholds them by
// rate·alpha·mu. Iteration stops when the Euclidean norm of the weight
// change drops below tol or after maxIter iterations.
package weaklearn
