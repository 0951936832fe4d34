package embedding

import (
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
)

// Graph is anything carrying a near-triangulation: wheels, cartwheels and
// configurations all qualify.
type Graph interface {
	NearTriangulation() *datastructure.NearTriangulation
}

// IsIsomorphic reports whether a and b are the same graph up to rotation and
// reflection: some edge of b aligns with edge 0 of a such that each embeds in
// the other with strict degree checking.
func IsIsomorphic(a, b Graph) bool {
	ant := a.NearTriangulation()
	bnt := b.NearTriangulation()
	for ei := range bnt.Edges() {
		if NumEmbeddings(ant, bnt, 0, ei, nil) > 0 && NumEmbeddings(bnt, ant, ei, 0, nil) > 0 {
			return true
		}
	}
	return false
}

// MakeUnique keeps the first representative of every isomorphism class,
// preserving order.
func MakeUnique[W Graph](wheels []W) []W {
	var unique []W
	for _, w := range wheels {
		add := true
		for _, u := range unique {
			if IsIsomorphic(w, u) {
				add = false
				break
			}
		}
		if add {
			unique = append(unique, w)
		}
	}
	return unique
}

// UniqueWithCharge is MakeUnique keeping, for each class, the maximum of the
// charges of its merged members.
func UniqueWithCharge[W Graph](wheels []W, charges []int) ([]W, []int) {
	var unique []W
	var uniqueCharges []int
	for i, w := range wheels {
		add := true
		for j, u := range unique {
			if IsIsomorphic(w, u) {
				if charges[i] > uniqueCharges[j] {
					uniqueCharges[j] = charges[i]
				}
				add = false
				break
			}
		}
		if add {
			unique = append(unique, w)
			uniqueCharges = append(uniqueCharges, charges[i])
		}
	}
	return unique, uniqueCharges
}

// MakeUniquePinned de-duplicates with the given edge pinned onto itself, so
// graphs count as equal only when they agree as seen from that edge.
func MakeUniquePinned[W Graph](wheels []W, edgeID int) []W {
	var unique []W
	for _, w := range wheels {
		add := true
		for _, u := range unique {
			if NumEmbeddings(w.NearTriangulation(), u.NearTriangulation(), edgeID, edgeID, nil) > 0 &&
				NumEmbeddings(u.NearTriangulation(), w.NearTriangulation(), edgeID, edgeID, nil) > 0 {
				add = false
				break
			}
		}
		if add {
			unique = append(unique, w)
		}
	}
	return unique
}
