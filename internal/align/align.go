// Package align implements principal-axis alignment (SPEC_FULL.md A6):
// centre a point set on its centroid, diagonalize its covariance
// matrix with a cyclic Jacobi eigenvalue sweep, and return the
// rotation that puts the largest-variance axis along +z, matching the
// caller expectation noted in spec.md §6 ("the pore axis tends to
// align with +z"). A single-use 3x3 symmetric eigensolve doesn't
// justify pulling in a general linear-algebra dependency (no pack
// example imports one); the classic cyclic Jacobi sweep is a dozen
// lines and converges to machine precision in a handful of sweeps for
// any real symmetric 3x3.
package align

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	jacobiMaxSweeps = 100
	jacobiTol       = 1e-12
)

// Principal computes the centroid of atoms, the 3x3 covariance matrix
// of the centred points, and its eigendecomposition, then returns the
// rotation mapping the covariance's eigenvectors onto the coordinate
// axes (largest-variance eigenvector becomes +z, per spec.md §6) and
// the translation that centers atoms on the origin. Applying
// translation then rotation to atoms aligns the structure's principal
// axes with the frame.
func Principal(atoms []mgl64.Vec3) (rotation mgl64.Mat3, translation mgl64.Vec3) {
	if len(atoms) == 0 {
		return mgl64.Ident3(), mgl64.Vec3{}
	}

	centroid := mgl64.Vec3{}
	for _, a := range atoms {
		centroid = centroid.Add(a)
	}
	centroid = centroid.Mul(1.0 / float64(len(atoms)))

	var cov [3][3]float64
	for _, a := range atoms {
		c := a.Sub(centroid)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i][j] += c[i] * c[j]
			}
		}
	}
	n := float64(len(atoms))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cov[i][j] /= n
		}
	}

	eigvals, eigvecs := jacobiEigen3(cov)
	order := sortDescending(eigvals)

	// row 2 (z) gets the largest-variance eigenvector, rows 0 and 1
	// (x,y) the remaining two in descending order.
	rowToEigCol := [3]int{order[1], order[2], order[0]}
	var r [3][3]float64
	for row, eigCol := range rowToEigCol {
		for k := 0; k < 3; k++ {
			r[row][k] = eigvecs[k][eigCol]
		}
	}

	if det3(r) < 0 {
		for k := 0; k < 3; k++ {
			r[2][k] = -r[2][k]
		}
	}

	return mgl64.Mat3{
		r[0][0], r[1][0], r[2][0],
		r[0][1], r[1][1], r[2][1],
		r[0][2], r[1][2], r[2][2],
	}, centroid.Mul(-1)
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// sortDescending returns the indices of v in order of descending value.
func sortDescending(v [3]float64) [3]int {
	idx := [3]int{0, 1, 2}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if v[idx[j]] > v[idx[i]] {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
	}
	return idx
}

// jacobiEigen3 diagonalizes a real symmetric 3x3 matrix by the
// classic cyclic Jacobi rotation sweep, returning its eigenvalues and
// a matrix whose columns are the corresponding eigenvectors.
func jacobiEigen3(a [3][3]float64) ([3]float64, [3][3]float64) {
	v := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	offDiag := func(m [3][3]float64) float64 {
		return math.Abs(m[0][1]) + math.Abs(m[0][2]) + math.Abs(m[1][2])
	}

	for sweep := 0; sweep < jacobiMaxSweeps && offDiag(a) > jacobiTol; sweep++ {
		for _, pq := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
			p, q := pq[0], pq[1]
			apq := a[p][q]
			if math.Abs(apq) < jacobiTol {
				continue
			}
			app, aqq := a[p][p], a[q][q]
			theta := (aqq - app) / (2 * apq)
			t := sign(theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
			c := 1 / math.Sqrt(t*t+1)
			s := t * c

			rIdx := 3 - p - q
			arp, arq := a[rIdx][p], a[rIdx][q]

			a[p][p] = c*c*app - 2*s*c*apq + s*s*aqq
			a[q][q] = s*s*app + 2*s*c*apq + c*c*aqq
			a[p][q], a[q][p] = 0, 0
			newRP := c*arp - s*arq
			newRQ := s*arp + c*arq
			a[rIdx][p], a[p][rIdx] = newRP, newRP
			a[rIdx][q], a[q][rIdx] = newRQ, newRQ

			for row := 0; row < 3; row++ {
				vrp, vrq := v[row][p], v[row][q]
				v[row][p] = c*vrp - s*vrq
				v[row][q] = s*vrp + c*vrq
			}
		}
	}

	return [3]float64{a[0][0], a[1][1], a[2][2]}, v
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
