//go:build !linux && !darwin

package arena

// mapCells falls back to heap storage where anonymous mappings are not wired up.
func mapCells(n int) ([]int32, func() error, error) {
	return heapCells(n)
}
