package zc

// String converts this View into a string, given its source arena.
func (r View) String(src []byte) string {
	if r.Len() == 0 {
		return ""
	}
	return string(r.Bytes(src))
}
