package mutate

// Copy-on-write slice helpers. None of them modify their input.

func replaceAt[T any](xs []T, i int, v T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	out[i] = v
	return out
}

func removeAt[T any](xs []T, i int) []T {
	out := make([]T, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}

func insertAt[T any](xs []T, i int, v T) []T {
	out := make([]T, 0, len(xs)+1)
	out = append(out, xs[:i]...)
	out = append(out, v)
	return append(out, xs[i:]...)
}

func appendCopy[T any](xs []T, v T) []T {
	out := make([]T, 0, len(xs)+1)
	out = append(out, xs...)
	return append(out, v)
}
