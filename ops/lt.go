package ops

import "strings"

func Less(value, cmp string) bool {
	return strings.Compare(value, cmp) < 0
}

func LessOrEqual(value, cmp string) bool {
	return strings.Compare(value, cmp) <= 0
}

func SelectLess(values []string, present []bool, cmp string, out []int) int {
	return selectWith(values, present, out, func(v string) bool {
		return v < cmp
	})
}

func SelectLessOrEqual(values []string, present []bool, cmp string, out []int) int {
	return selectWith(values, present, out, func(v string) bool {
		return v <= cmp
	})
}

func selectWith(values []string, present []bool, out []int, pred func(string) bool) int {
	filled := 0

	for i, v := range values {
		if present[i] && pred(v) {
			out[filled] = i
			filled++
		}
	}

	return filled
}
