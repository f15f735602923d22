package sqtile

// selectTopK rearranges pop.Ind in place (Hoare/Lomuto-style partial
// quickselect, spec.md §4.8) so that the K individuals with the
// lowest fitness occupy slots [0,K); their order within that prefix
// is unspecified. Ties are broken by each individual's slot index at
// the time selectTopK was called, via the parallel pop.order scratch,
// so repeated selection over equal fitnesses is deterministic and
// doesn't churn slot contents for no reason.
//
// Unlike a full sort, this stops once the K-boundary is resolved:
// average O(n) instead of O(n log n).
func selectTopK(pop *Population) {
	for i := range pop.order {
		pop.order[i] = i
	}
	quickSelect(pop.Ind, pop.order, 0, len(pop.Ind)-1, pop.K)
}

func less(ind []Permutation, order []int, i, j int) bool {
	if ind[i].Fitness != ind[j].Fitness {
		return ind[i].Fitness < ind[j].Fitness
	}
	return order[i] < order[j]
}

func swap(ind []Permutation, order []int, i, j int) {
	ind[i], ind[j] = ind[j], ind[i]
	order[i], order[j] = order[j], order[i]
}

// quickSelect partitions ind[lo..hi] so that the k smallest elements
// (by the `less` order) occupy ind[lo..lo+k) -- here always called
// with lo=0, so the invariant is simply "the smallest k occupy the
// front k slots".
func quickSelect(ind []Permutation, order []int, lo, hi, k int) {
	for lo < hi {
		p := partition(ind, order, lo, hi)
		switch {
		case p == k-1:
			return
		case p < k-1:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition is a Lomuto partition using the middle element as pivot
// (avoids worst-case behavior on already-sorted input, which the
// seeded initial population reliably produces).
func partition(ind []Permutation, order []int, lo, hi int) int {
	mid := lo + (hi-lo)/2
	swap(ind, order, mid, hi)
	pivotFitness := ind[hi].Fitness
	pivotOrder := order[hi]

	i := lo
	for j := lo; j < hi; j++ {
		if ind[j].Fitness < pivotFitness || (ind[j].Fitness == pivotFitness && order[j] < pivotOrder) {
			swap(ind, order, i, j)
			i++
		}
	}
	swap(ind, order, i, hi)
	return i
}
