package domain

import "time"

// Board is a community board category.
type Board struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PostCount   int    `json:"postCount"`
}

// Post is a community board post.
type Post struct {
	ID             int64     `json:"id"`
	BoardID        int64     `json:"boardId"`
	AuthorNickname string    `json:"authorNickname"`
	Title          string    `json:"title"`
	Body           string    `json:"body,omitempty"`
	CommentCount   int       `json:"commentCount"`
	ViewCount      int       `json:"viewCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Comment is a comment on a board post.
type Comment struct {
	ID             int64     `json:"id"`
	PostID         int64     `json:"postId"`
	AuthorNickname string    `json:"authorNickname"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}
