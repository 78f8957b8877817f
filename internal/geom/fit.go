package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by Fit for violated input preconditions.
var (
	ErrTooFewPoints = errors.New("geom: at least 3 point pairs required for a rigid fit")
	ErrSizeMismatch = errors.New("geom: point sets must have equal length")
)

// FitResult holds the rigid transform mapping one point set onto another.
type FitResult struct {
	// Rotation R and Translation t minimize sum |R*a[i] + t - b[i]|^2.
	Rotation    Matrix
	Translation Vec
	// RMS is the root-mean-square residual over all point pairs.
	RMS float64
}

// Apply transforms p by the fitted rotation and translation.
func (f FitResult) Apply(p Vec) Vec {
	return f.Rotation.MulVec(p).Add(f.Translation)
}

// Fit computes the rigid-body transform that best superimposes point set a
// onto point set b in the least-squares sense, using the SVD of the
// cross-covariance matrix of the centered sets. The raw SVD solution can be
// a reflection; it is corrected to a proper rotation (det +1) by negating
// the singular-vector column belonging to the smallest singular value.
//
// A degenerate covariance matrix (e.g. all points collinear) does not fail:
// the best available orthonormal solution is still returned so that a bulk
// scan over thousands of residues never halts on one pathological case.
func Fit(a, b []Vec) (FitResult, error) {
	if len(a) != len(b) {
		return FitResult{}, ErrSizeMismatch
	}
	if len(a) < 3 {
		return FitResult{}, ErrTooFewPoints
	}

	ca := Centroid(a)
	cb := Centroid(b)

	// Cross-covariance C[i][j] = sum_k (a[k]-ca)[i] * (b[k]-cb)[j].
	var cov Matrix
	for k := range a {
		da := a[k].Sub(ca)
		db := b[k].Sub(cb)
		va := [3]float64{da.X, da.Y, da.Z}
		vb := [3]float64{db.X, db.Y, db.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i][j] += va[i] * vb[j]
			}
		}
	}

	c := mat.NewDense(3, 3, []float64{
		cov[0][0], cov[0][1], cov[0][2],
		cov[1][0], cov[1][1], cov[1][2],
		cov[2][0], cov[2][1], cov[2][2],
	})

	var svd mat.SVD
	if ok := svd.Factorize(c, mat.SVDFull); !ok {
		// SVD failure is vanishingly rare for 3x3 input; fall back to an
		// identity rotation so the caller's scan can continue.
		res := FitResult{Rotation: Identity, Translation: cb.Sub(ca)}
		res.RMS = fitRMS(a, b, res)
		return res, nil
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	r := rotationFromSVD(&u, &v)
	if r.Det() < 0 {
		// Reflection: negate the last column of V (smallest singular value)
		// and rebuild.
		for i := 0; i < 3; i++ {
			v.Set(i, 2, -v.At(i, 2))
		}
		r = rotationFromSVD(&u, &v)
	}

	res := FitResult{
		Rotation:    r,
		Translation: cb.Sub(r.MulVec(ca)),
	}
	res.RMS = fitRMS(a, b, res)
	return res, nil
}

// rotationFromSVD builds R = V * U^T from the SVD factors of the
// cross-covariance matrix.
func rotationFromSVD(u, v *mat.Dense) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += v.At(i, k) * u.At(j, k)
			}
			r[i][j] = s
		}
	}
	return r
}

func fitRMS(a, b []Vec, f FitResult) float64 {
	var sum float64
	for i := range a {
		d := f.Apply(a[i]).Sub(b[i])
		sum += d.Dot(d)
	}
	return math.Sqrt(sum / float64(len(a)))
}
