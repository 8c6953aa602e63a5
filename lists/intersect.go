package lists

// IntersectSorted intersects two ascending lists in place of out.
func IntersectSorted[T ~int | ~uint64 | ~uint16](a, b, out []T) int {
	filled := 0
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out[filled] = a[i]
			filled++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}

	return filled
}

// IntersectAll folds IntersectSorted over every input. A nil result means
// no inputs were given.
func IntersectAll[T ~int | ~uint64 | ~uint16](inputs ...[]T) []T {
	if len(inputs) == 0 {
		return nil
	}

	result := append([]T{}, inputs[0]...)

	for _, input := range inputs[1:] {
		filled := IntersectSorted(result, input, result)
		result = result[:filled]

		if filled == 0 {
			break
		}
	}

	return result
}
