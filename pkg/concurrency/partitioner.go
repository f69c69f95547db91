package concurrency

// Partition is a contiguous mapped node-id range, [Start, Start+Length).
type Partition struct {
	Start  int64
	Length int64
}

// End returns the exclusive upper bound of the partition.
func (p Partition) End() int64 { return p.Start + p.Length }

// DegreeFunction returns the work weight (e.g. node degree) of a mapped node id, used by
// degree-balanced partitioning.
type DegreeFunction func(nodeID int64) int64

// RangePartition splits [0, total) into n contiguous, equal-width, pairwise-disjoint
// ranges whose union is [0, total) (spec.md §8 invariant 11), mirroring the teacher's
// RangePartition in pkg/partition/partition.go generalized from a partition-count lookup
// to a list of Partition values the caller iterates directly.
func RangePartition(total int64, n int) []Partition {
	if n < 1 {
		n = 1
	}
	if total <= 0 {
		return nil
	}
	base := total / int64(n)
	extra := total % int64(n)

	parts := make([]Partition, 0, n)
	start := int64(0)
	for i := 0; i < n; i++ {
		length := base
		if int64(i) < extra {
			length++
		}
		if length == 0 {
			continue
		}
		parts = append(parts, Partition{Start: start, Length: length})
		start += length
	}
	return parts
}

// mergeThreshold is the fraction of the target per-partition share below which a tail
// partition is merged into its predecessor (spec.md §4.2: "merging small tail
// partitions below a threshold (67% of the target share)").
const mergeThreshold = 0.67

// DegreePartition splits [0, total) into approximately n ranges whose summed degree
// (via degreeFn) is roughly equal, merging any resulting partition whose summed degree
// falls under 67% of the target per-partition share into its predecessor.
func DegreePartition(total int64, n int, degreeFn DegreeFunction) []Partition {
	if n < 1 {
		n = 1
	}
	if total <= 0 {
		return nil
	}

	// Prefix-sum total degree to know the global target share.
	var totalDegree int64
	degrees := make([]int64, total)
	for i := int64(0); i < total; i++ {
		d := degreeFn(i)
		degrees[i] = d
		totalDegree += d
	}
	targetShare := float64(totalDegree) / float64(n)
	if targetShare <= 0 {
		return RangePartition(total, n)
	}

	var parts []Partition
	start := int64(0)
	var acc int64
	for i := int64(0); i < total; i++ {
		acc += degrees[i]
		atEnd := i == total-1
		if float64(acc) >= targetShare || atEnd {
			parts = append(parts, Partition{Start: start, Length: i - start + 1})
			start = i + 1
			acc = 0
		}
	}

	return mergeSmallTails(parts, degrees, targetShare)
}

func mergeSmallTails(parts []Partition, degrees []int64, targetShare float64) []Partition {
	if len(parts) < 2 {
		return parts
	}
	sumDegree := func(p Partition) int64 {
		var s int64
		for i := p.Start; i < p.End(); i++ {
			s += degrees[i]
		}
		return s
	}

	out := make([]Partition, 0, len(parts))
	for _, p := range parts {
		if len(out) > 0 && float64(sumDegree(p)) < mergeThreshold*targetShare {
			last := out[len(out)-1]
			out[len(out)-1] = Partition{Start: last.Start, Length: last.Length + p.Length}
			continue
		}
		out = append(out, p)
	}
	return out
}

// PageAligned returns a RangePartition whose boundaries fall on page-sized strides
// (spec.md §4.2: "page-aligned partitioning for cache friendliness"), useful when the
// caller wants partitions that line up with HugeArray page boundaries.
func PageAligned(total int64, pageSize int64, n int) []Partition {
	if pageSize <= 0 {
		return RangePartition(total, n)
	}
	pages := (total + pageSize - 1) / pageSize
	pageParts := RangePartition(pages, n)
	out := make([]Partition, 0, len(pageParts))
	for _, pp := range pageParts {
		start := pp.Start * pageSize
		end := pp.End() * pageSize
		if end > total {
			end = total
		}
		if end <= start {
			continue
		}
		out = append(out, Partition{Start: start, Length: end - start})
	}
	return out
}
