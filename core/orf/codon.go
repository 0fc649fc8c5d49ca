// core/orf/codon.go
package orf

// aminoByIndex is NCBI translation table 1 in TCAG base order:
// index = 16*t(b1) + 4*t(b2) + t(b3) with T=0, C=1, A=2, G=3.
const aminoByIndex = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"

func baseOrd(b byte) int {
	switch b {
	case 'T':
		return 0
	case 'C':
		return 1
	case 'A':
		return 2
	case 'G':
		return 3
	}
	return -1
}

// AminoAcid translates one codon, returning 'X' for codons holding
// any base outside ACGT and '*' for stops.
func AminoAcid(c [3]byte) byte {
	i1, i2, i3 := baseOrd(c[0]), baseOrd(c[1]), baseOrd(c[2])
	if i1 < 0 || i2 < 0 || i3 < 0 {
		return 'X'
	}
	return aminoByIndex[16*i1+4*i2+i3]
}

// IsStop reports whether c is one of TAA, TAG, TGA.
func IsStop(c [3]byte) bool {
	return c[0] == 'T' && (c[1] == 'A' && (c[2] == 'A' || c[2] == 'G') ||
		c[1] == 'G' && c[2] == 'A')
}

// StartPolicy names the genes allowed to open on non-ATG codons.
// Plastid rps19 commonly opens on GTG and ndhD is edited to open on
// ACG, so those gene sets widen the accepted start codons.
type StartPolicy struct {
	GTG map[string]bool
	ACG map[string]bool
}

// DefaultStartPolicy returns the stock exception sets.
func DefaultStartPolicy() StartPolicy {
	return StartPolicy{
		GTG: map[string]bool{"rps19": true},
		ACG: map[string]bool{"ndhD": true},
	}
}

// IsStart reports whether c can open the named gene: ATG always can,
// the exception codons only for their designated gene sets.
func (p StartPolicy) IsStart(c [3]byte, gene string) bool {
	switch c {
	case [3]byte{'A', 'T', 'G'}:
		return true
	case [3]byte{'G', 'T', 'G'}:
		return p.GTG[gene]
	case [3]byte{'A', 'C', 'G'}:
		return p.ACG[gene]
	}
	return false
}
