package guidance

import (
	"strings"

	"github.com/lintang-b-s/Slopex/pkg/datastructure"
)

/*
getAlternativeTurns. jumlah edge lain yang bisa diambil dari tail selain currentEdge & balik ke prevVertex. misal:

		 |
	 alternative
		 |
--prev-- B --currentEdge---
		 |
	alternative
		 |

dari B ada 2 alternative. kalau 0, belokan di B tidak perlu instruksi karena cuma ada satu jalan.
*/
func (db *DirectionBuilder) getAlternativeTurns(tail, head, prevVertex datastructure.Index) int {
	alternatives := 0
	db.graph.ForOutEdgesOf(tail, func(e *datastructure.Edge) {
		if e.GetHead() != prevVertex && e.GetHead() != head {
			alternatives++
		}
	})
	return alternatives
}

// isLeavingCurrentStreet. street name changes, or both are unnamed and the road type changes.
func isLeavingCurrentStreet(prevEdge, currEdge *datastructure.Edge) bool {
	prevName, currName := prevEdge.GetStreetName(), currEdge.GetStreetName()
	if isSameName(prevName, currName) {
		return false
	}
	if isEmpty(prevName) && isEmpty(currName) {
		return prevEdge.GetRoadType() != currEdge.GetRoadType()
	}
	return true
}

func isSameName(name1, name2 string) bool {
	if isEmpty(name1) || isEmpty(name2) {
		// nama street kosong di osm, dianggap beda
		return false
	}
	return strings.EqualFold(strings.TrimSpace(name1), strings.TrimSpace(name2))
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}
