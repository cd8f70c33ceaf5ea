package importer

import "github.com/spritelab/spritesem/pkg/types"

// Relationship is one accepted relationship edge surfaced by import.
type Relationship struct {
	Source string
	Kind   types.RelationshipKind
	Target string
}

// InferZOrder derives render layering from containment edges: a token's z is
// one above the highest z of its containers, with uncontained tokens at 0.
// A containment cycle does not recurse forever: only the re-entrant lookup
// bottoms out at 0, and the cycle's members stack above it.
func InferZOrder(tokens []string, relationships []Relationship) map[string]int {
	containedIn := make(map[string][]string)
	for _, rel := range relationships {
		if rel.Kind == types.ContainedWithin {
			containedIn[rel.Source] = append(containedIn[rel.Source], rel.Target)
		}
	}

	zOrder := make(map[string]int, len(tokens))
	computing := make(map[string]bool)

	var compute func(token string) int
	compute = func(token string) int {
		if z, ok := zOrder[token]; ok {
			return z
		}
		if computing[token] {
			return 0
		}
		computing[token] = true

		z := 0
		if containers, ok := containedIn[token]; ok {
			maxZ := 0
			for _, c := range containers {
				if cz := compute(c); cz > maxZ {
					maxZ = cz
				}
			}
			z = maxZ + 1
		}

		delete(computing, token)
		zOrder[token] = z
		return z
	}

	for _, token := range tokens {
		compute(token)
	}
	return zOrder
}
