package dto

// MapList converts entities to their response views, always returning a
// non-nil slice so empty listings render as [].
func MapList[M any, R any](items []*M, view func(*M) *R) []*R {
	out := make([]*R, 0, len(items))
	for _, item := range items {
		out = append(out, view(item))
	}
	return out
}
