package libutil

func MinI(a, b int) int {
	if a < b {
		return a
	}
	return b
}
