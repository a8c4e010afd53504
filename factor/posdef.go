package factor

import (
	"multifrontal/front"
	"multifrontal/maths"
	"multifrontal/ssidserr"
)

// BlockSize is the panel width used by the block-partitioned Cholesky
// factorization, per spec.md §4.E.
const BlockSize = 16

// FactorPosdef factors f's fully-summed n*n leading block (n = f.Ncol)
// plus the m-n row panel below it (m = f.Nrow) into its lower Cholesky
// factor, right-looking and block-partitioned in panels of BlockSize
// columns. On success f.Nelim == f.Ncol and f.NdelayOut == 0.
//
// Fails at the first non-positive diagonal, returning
// *ssidserr.NotPositiveDefinite with the 1-based failing column.
func FactorPosdef(f *front.Front) error {
	m, n, ld := f.Nrow, f.Ncol, f.LcolRows()
	lcol := f.Lcol

	for j := 0; j < n; j += BlockSize {
		nb := BlockSize
		if n-j < nb {
			nb = n - j
		}

		diag := lcol[j*ld+j:]
		if fail := maths.CholeskyUnblocked(diag, ld, nb); fail != 0 {
			return &ssidserr.NotPositiveDefinite{Column: j + fail}
		}

		if m > j+nb {
			panel := lcol[j*ld+(j+nb):]
			maths.TrsmRightLowerTranspose(panel, ld, m-j-nb, nb, diag, ld)

			if n > j+nb {
				trailing := lcol[(j+nb)*ld+(j+nb):]
				maths.GemmSub(trailing, ld, m-j-nb, n-j-nb, nb, panel, ld, panel, ld)
			}
		}
	}

	f.Nelim = n
	f.NdelayOut = 0
	return nil
}
