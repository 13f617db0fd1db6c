// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package gpssim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Machine epsilon of float64
const EPS = 2.220446049250313e-16

// Solve the linear system A x = b in the least squares sense using SVD
//   - x minimizes |A x - b|^2, and among all minimizers has the smallest |x|
//   - Singular values below EPS * max(m, n) * s[0] are treated as zero,
//     which is the same cut-off as LAPACK gelsd with the default rcond
//   - Return the effective rank and the singular values (descending)
func SolveMinNorm(A mat.Matrix, b mat.Vector) (x *mat.VecDense, rank int, sv []float64, err error) {

	m, n := A.Dims()
	if m == 0 || n == 0 {
		return nil, 0, nil, fmt.Errorf("%w: empty matrix A(%d x %d)", ErrDimensionMismatch, m, n)
	}
	if b.Len() != m {
		return nil, 0, nil, fmt.Errorf("%w: A(%d x %d), b(%d x 1)", ErrDimensionMismatch, m, n, b.Len())
	}

	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDFull); !ok {
		return nil, 0, nil, fmt.Errorf("SVD factorization failed. A(%d x %d)", m, n)
	}
	sv = svd.Values(nil)

	// Effective rank
	rcond := EPS * float64(max(m, n))
	if sv[0] > 0 {
		rank = svd.Rank(rcond)
	}
	PrintD(4, "\tsv=%v, rank=%d\n", sv, rank)

	// A == 0: every x is a minimizer, the smallest one is the origin
	x = mat.NewVecDense(n, nil)
	if rank == 0 {
		return x, 0, sv, nil
	}
	svd.SolveVecTo(x, b, rank)

	return x, rank, sv, nil
}

// Solve the observation equation using weighted least squares
// - dx = (G^t W G)^-1 G^t W dr
// - Return the error covariance matrix (G^t W G)^-1 as cov
func SolveLS(G mat.Matrix, dr mat.Vector, W mat.Matrix) (dx mat.Vector, cov mat.Matrix, err error) {

	n1, m1 := G.Dims()
	n2, m2 := W.Dims()
	if n1 != n2 {
		return nil, nil, fmt.Errorf("invalid matrix size. G^T(%d x %d), W(%d x %d)", m1, n1, n2, m2)
	}
	l1 := dr.Len()
	if l1 != m2 {
		return nil, nil, fmt.Errorf("invalid matrix size. W(%d x %d), dr(%d x 1)", n2, m2, l1)
	}

	// A (G^t W G)
	var WG mat.Dense
	WG.Mul(W, G)
	var A mat.Dense
	A.Mul(G.T(), &WG)

	// b (G^t W dr)
	var GtW mat.Dense
	GtW.Mul(G.T(), W)
	var b mat.VecDense
	b.MulVec(&GtW, dr)

	// Solve for x (x = A^-1 b)
	var x mat.VecDense
	err = x.SolveVec(&A, &b)
	if err != nil {
		return nil, nil, err
	}
	dx = &x

	// Set (G^T W G)^-1 as the covariance matrix
	var c mat.Dense
	err = c.Inverse(&A)
	if err != nil {
		return nil, nil, err
	}
	cov = &c

	return
}
