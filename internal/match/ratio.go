package match

// Ratio computes the Ratcliff/Obershelp similarity of two strings:
// 2*M / (len(a)+len(b)), where M is the total length of matching blocks
// found by recursively locating the longest common substring and repeating
// on the pieces to its left and right. Inputs are expected to be normalized
// (ASCII) so comparison is byte-wise. Two empty strings are identical.
//
// This is the classic gestalt pattern-matching ratio; the algorithm is held
// fixed because the resolver's threshold behavior depends on it.
func Ratio(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 1.0
	}
	m := matchingTotal(a, b)
	return 2 * float64(m) / float64(len(a)+len(b))
}

func matchingTotal(a, b string) int {
	i, j, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingTotal(a[:i], b[:j]) +
		matchingTotal(a[i+size:], b[j+size:])
}

// longestMatch finds the longest common substring of a and b, preferring the
// earliest position in a, then in b, among equal-length candidates. The
// j2len map carries run lengths ending at each position of b for the
// previous position of a.
func longestMatch(a, b string) (bi, bj, bsize int) {
	j2len := make(map[int]int, len(b))
	for i := 0; i < len(a); i++ {
		next := make(map[int]int, len(b))
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bsize {
				bi, bj, bsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return bi, bj, bsize
}
