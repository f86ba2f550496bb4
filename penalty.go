package pointmetric

// CountExtraOrMissing returns |len(pred) − len(gt)|, the number of points
// that cannot be matched.
func CountExtraOrMissing(pred, gt PointSet) int {
	d := len(pred) - len(gt)
	if d < 0 {
		return -d
	}
	return d
}
