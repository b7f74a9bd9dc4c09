package groebner

import (
	"encoding/hex"
	"io"

	"golang.org/x/crypto/sha3"

	"gbf2/zdd"
)

// Digest fingerprints a basis with SHA3-256 over the printed polynomials, one per
// line, in the given order. Reduced bases come out of MinimalizeAndTailReduce in
// a canonical order, so equal ideals give equal digests.
func Digest(polys []zdd.Poly) string {
	h := sha3.New256()
	for _, p := range polys {
		io.WriteString(h, p.String())
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
