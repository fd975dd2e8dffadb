package tools

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

func Min[T Number](a, b T) T {
	if a <= b {
		return a
	}

	return b
}

func Max[T Number](a, b T) T {
	if a >= b {
		return a
	}

	return b
}

// Clamp keeps v within [lo, hi].
func Clamp[T Number](v, lo, hi T) T {
	return Max(lo, Min(v, hi))
}

func Ternary[T any](eq bool, a, b T) T {
	if eq {
		return a
	}

	return b
}
