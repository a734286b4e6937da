package domain

// BannerSlot is one row of the admin banner rotation while it is being
// reordered locally. Order always equals the 1-based array position; every
// mutation below renumbers so the invariant holds after any sequence of
// toggles and moves.
type BannerSlot struct {
	BannerID int64  `json:"bannerId"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

// SlotsFromBanners builds the initial working list from the banners the
// backend currently shows, in their served order.
func SlotsFromBanners(banners []Banner) []BannerSlot {
	slots := make([]BannerSlot, 0, len(banners))
	for _, b := range banners {
		if !b.Visible {
			continue
		}
		slots = append(slots, BannerSlot{BannerID: b.ID, Title: b.Title})
	}
	RenumberSlots(slots)
	return slots
}

// RenumberSlots rewrites every Order field to its 1-based position.
func RenumberSlots(slots []BannerSlot) {
	for i := range slots {
		slots[i].Order = i + 1
	}
}

// ToggleSlot removes the banner from the working list if present, otherwise
// appends it at the end. The result is renumbered.
func ToggleSlot(slots []BannerSlot, bannerID int64, title string) []BannerSlot {
	for i, s := range slots {
		if s.BannerID == bannerID {
			slots = append(slots[:i], slots[i+1:]...)
			RenumberSlots(slots)
			return slots
		}
	}
	slots = append(slots, BannerSlot{BannerID: bannerID, Title: title})
	RenumberSlots(slots)
	return slots
}

// MoveSlotUp swaps the slot at i with its predecessor. Out-of-range or
// already-first indexes are no-ops.
func MoveSlotUp(slots []BannerSlot, i int) {
	if i <= 0 || i >= len(slots) {
		return
	}
	slots[i-1], slots[i] = slots[i], slots[i-1]
	RenumberSlots(slots)
}

// MoveSlotDown swaps the slot at i with its successor. Out-of-range or
// already-last indexes are no-ops.
func MoveSlotDown(slots []BannerSlot, i int) {
	if i < 0 || i >= len(slots)-1 {
		return
	}
	slots[i], slots[i+1] = slots[i+1], slots[i]
	RenumberSlots(slots)
}
