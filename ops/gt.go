package ops

import "strings"

func Greater(value, cmp string) bool {
	return strings.Compare(value, cmp) > 0
}

func GreaterOrEqual(value, cmp string) bool {
	return strings.Compare(value, cmp) >= 0
}

func SelectGreater(values []string, present []bool, cmp string, out []int) int {
	return selectWith(values, present, out, func(v string) bool {
		return v > cmp
	})
}

func SelectGreaterOrEqual(values []string, present []bool, cmp string, out []int) int {
	return selectWith(values, present, out, func(v string) bool {
		return v >= cmp
	})
}
