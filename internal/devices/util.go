package devices

// mapRange maps value from the [oldMin,oldMax] range into [newMin,newMax],
// matching the original firmware's map_to_range helper.
func mapRange(value, oldMin, oldMax, newMin, newMax float64) float64 {
	return ((value - oldMin) / (oldMax - oldMin) * (newMax - newMin)) + newMin
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
