// Package maxent is the module root of a maximum-entropy solver for
// discrete variables under exclusion constraints.
//
// 🚀 What is in the box?
//
//	Given N variables over a shared domain {0..k-1}, unary exclusions
//	("n is never v") and pairwise exclusions ("a and b never agree"),
//	compute the distribution with the largest Shannon entropy.
//
//	The solve is hand-built: the KKT stationarity system is assembled
//	node by node and driven to zero by a safeguarded Newton iteration.
//
// ✨ Layout
//
//	constraint/ — VarAndValue, Constraint, Set; textual neq(a,b) / not(n=v)
//	kkt/        — unknown-vector arena, residual and Jacobian
//	newton/     — damped, positivity-preserving Newton–Raphson
//	linsolve/   — regularised LU with refinement and SVD fallback (gonum)
//	maxent/     — Optimize / OptimizeDecomposed and the Result type
//	decompose/  — connected components and value folding
//	report/     — Pr[var=value] output
//	config/     — YAML problem files
//	cmd/maxent/ — the command-line tool
//
// ⚙️ Quick start
//
//	go run ./cmd/maxent solve
//	go run ./cmd/maxent solve --variables 2 --k 2 --constraint 'neq(0,1)'
package maxent
