package channel

// Unicode mathematical bold base code points. Uppercase and lowercase
// letters map through contiguous offsets from their base; digits map
// through a separate base.
const (
	boldUpperBase = rune(0x1D400)
	boldLowerBase = rune(0x1D41A)
	boldDigitBase = rune(0x1D7CE)
)

// Bold replaces every ASCII letter and digit with its Unicode
// mathematical bold counterpart and passes everything else through
// unchanged. Already-bold runes fall outside the ASCII ranges, so
// re-applying the transform is harmless.
func Bold(s string) string {
	runes := []rune(s)

	for i, r := range runes {
		switch {
		case r >= 'A' && r <= 'Z':
			runes[i] = boldUpperBase + (r - 'A')
		case r >= 'a' && r <= 'z':
			runes[i] = boldLowerBase + (r - 'a')
		case r >= '0' && r <= '9':
			runes[i] = boldDigitBase + (r - '0')
		}
	}

	return string(runes)
}
