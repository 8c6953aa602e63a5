package ops

func Equal(value, cmp string) bool {
	return value == cmp
}

func NotEqual(value, cmp string) bool {
	return value != cmp
}

// SelectEqual writes indices of present values equal to cmp into out and
// returns how many were written. out must be at least len(values) long.
func SelectEqual(values []string, present []bool, cmp string, out []int) int {
	filled := 0

	for i, v := range values {
		if present[i] && v == cmp {
			out[filled] = i
			filled++
		}
	}

	return filled
}
