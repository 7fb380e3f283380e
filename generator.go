package hwseed

// GenerateDeterministicValue maps seed onto the closed range [minVal, maxVal].
//
// The seed is passed through [Mix32] and reduced modulo the range width. The
// function keeps no state: identical arguments always produce the identical
// result. Inverted bounds are swapped, so the result always lies between the
// two bounds. The full range [0, 2^32-1] is accepted.
func GenerateDeterministicValue(seed, minVal, maxVal uint32) uint32 {
	if minVal > maxVal {
		minVal, maxVal = maxVal, minVal
	}

	span := uint64(maxVal) - uint64(minVal) + 1
	mixed := uint64(Mix32(seed))

	return minVal + uint32(mixed%span)
}
