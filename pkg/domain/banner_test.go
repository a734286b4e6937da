package domain

import "testing"

func testBanners() []Banner {
	return []Banner{
		{ID: 1, Title: "comeback teaser", Visible: true},
		{ID: 2, Title: "fan meeting", Visible: false},
		{ID: 3, Title: "tour dates", Visible: true},
		{ID: 4, Title: "merch drop", Visible: true},
	}
}

func assertContiguous(t *testing.T, slots []BannerSlot) {
	t.Helper()
	for i, s := range slots {
		if s.Order != i+1 {
			t.Errorf("slot %d has order %d, want %d", i, s.Order, i+1)
		}
	}
}

func TestSlotsFromBannersSkipsHidden(t *testing.T) {
	slots := SlotsFromBanners(testBanners())
	if len(slots) != 3 {
		t.Fatalf("expected 3 visible slots, got %d", len(slots))
	}
	if slots[0].BannerID != 1 || slots[1].BannerID != 3 || slots[2].BannerID != 4 {
		t.Errorf("unexpected slot ids: %+v", slots)
	}
	assertContiguous(t, slots)
}

func TestToggleSlotRemovesAndRenumbers(t *testing.T) {
	slots := SlotsFromBanners(testBanners())
	slots = ToggleSlot(slots, 3, "tour dates")

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots after removal, got %d", len(slots))
	}
	for _, s := range slots {
		if s.BannerID == 3 {
			t.Error("banner 3 should have been removed")
		}
	}
	assertContiguous(t, slots)
}

func TestToggleSlotAppendsAtEnd(t *testing.T) {
	slots := SlotsFromBanners(testBanners())
	slots = ToggleSlot(slots, 2, "fan meeting")

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots after append, got %d", len(slots))
	}
	last := slots[len(slots)-1]
	if last.BannerID != 2 || last.Order != 4 {
		t.Errorf("expected banner 2 appended with order 4, got %+v", last)
	}
	assertContiguous(t, slots)
}

func TestMoveSlotUp(t *testing.T) {
	slots := SlotsFromBanners(testBanners())
	MoveSlotUp(slots, 1)

	if slots[0].BannerID != 3 || slots[1].BannerID != 1 {
		t.Errorf("expected swap of first two slots, got %+v", slots)
	}
	assertContiguous(t, slots)
}

func TestMoveSlotDown(t *testing.T) {
	slots := SlotsFromBanners(testBanners())
	MoveSlotDown(slots, 0)

	if slots[0].BannerID != 3 || slots[1].BannerID != 1 {
		t.Errorf("expected swap of first two slots, got %+v", slots)
	}
	assertContiguous(t, slots)
}

func TestMoveSlotOutOfRangeIsNoop(t *testing.T) {
	slots := SlotsFromBanners(testBanners())
	want := make([]BannerSlot, len(slots))
	copy(want, slots)

	MoveSlotUp(slots, 0)
	MoveSlotUp(slots, -1)
	MoveSlotUp(slots, len(slots))
	MoveSlotDown(slots, len(slots)-1)
	MoveSlotDown(slots, 99)

	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d changed: got %+v, want %+v", i, slots[i], want[i])
		}
	}
}

func TestOrderInvariantSurvivesMixedEdits(t *testing.T) {
	slots := SlotsFromBanners(testBanners())
	slots = ToggleSlot(slots, 2, "fan meeting")
	MoveSlotUp(slots, 3)
	slots = ToggleSlot(slots, 1, "comeback teaser")
	MoveSlotDown(slots, 0)
	assertContiguous(t, slots)
}
