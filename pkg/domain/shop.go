package domain

import "time"

// Item is a shop catalog item.
type Item struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Summary   string       `json:"summary,omitempty"`
	Price     int64        `json:"price"`
	Point     int64        `json:"point,omitempty"`
	ImagePath string       `json:"imagePath,omitempty"`
	SoldOut   bool         `json:"soldOut"`
	Options   []ItemOption `json:"options,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ItemOption is a selectable variant of an item (size, color, edition).
type ItemOption struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ExtraPrice int64  `json:"extraPrice,omitempty"`
	SoldOut    bool   `json:"soldOut"`
}

// CartLine mirrors one server-side cart row. The client never edits a line
// in place; every mutation round-trips and the response replaces the mirror.
type CartLine struct {
	ID         int64  `json:"id"`
	ItemID     int64  `json:"itemId"`
	ItemName   string `json:"itemName"`
	OptionID   int64  `json:"optionId,omitempty"`
	OptionName string `json:"optionName,omitempty"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"`
}
