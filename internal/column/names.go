package column

// DefaultName returns the spreadsheet-style name for column i: A..Z, AA..ZZ,
// AAA and so on.
func DefaultName(i int) string {
	var buf []byte
	for n := i; n >= 0; n = n/26 - 1 {
		buf = append([]byte{byte('A' + n%26)}, buf...)
	}
	return string(buf)
}
