package game

// Cleanup keeps only bullets that are active and strictly inside the display extended
// by margin. The slice is filtered in place.
func Cleanup(bullets []*Bullet, bounds Bounds, margin int) []*Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		if b.Active && bounds.WithinMargin(b.pos, margin) {
			kept = append(kept, b)
		}
	}
	// release dropped pointers
	for i := len(kept); i < len(bullets); i++ {
		bullets[i] = nil
	}
	return kept
}
