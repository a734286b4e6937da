package api

import (
	"context"
	"fmt"

	"github.com/minjipark/encore/pkg/domain"
)

// ListBoards returns all community boards.
func (c *Client) ListBoards(ctx context.Context) ([]domain.Board, error) {
	var boards []domain.Board
	if err := c.get(ctx, "/api/boards", &boards); err != nil {
		return nil, fmt.Errorf("api.ListBoards: %w", err)
	}
	return boards, nil
}

// ListPosts fetches a page of posts for a board.
func (c *Client) ListPosts(ctx context.Context, boardID int64, page Page) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.get(ctx, "/api/boards/"+itoa(boardID)+"/posts?"+page.query().Encode(), &posts); err != nil {
		return nil, fmt.Errorf("api.ListPosts: %w", err)
	}
	return posts, nil
}

// GetPost fetches a single post with its body.
func (c *Client) GetPost(ctx context.Context, postID int64) (*domain.Post, error) {
	var post domain.Post
	if err := c.get(ctx, "/api/posts/"+itoa(postID), &post); err != nil {
		return nil, fmt.Errorf("api.GetPost: %w", err)
	}
	return &post, nil
}

// CreatePostRequest is the payload for a new board post.
type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreatePost creates a post and returns the server's copy.
func (c *Client) CreatePost(ctx context.Context, boardID int64, req CreatePostRequest) (*domain.Post, error) {
	var created domain.Post
	if err := c.post(ctx, "/api/boards/"+itoa(boardID)+"/posts", req, &created); err != nil {
		return nil, fmt.Errorf("api.CreatePost: %w", err)
	}
	return &created, nil
}

// ListComments returns the comments of a post.
func (c *Client) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.get(ctx, "/api/posts/"+itoa(postID)+"/comments", &comments); err != nil {
		return nil, fmt.Errorf("api.ListComments: %w", err)
	}
	return comments, nil
}

// CreateComment adds a comment to a post and returns the server's copy.
func (c *Client) CreateComment(ctx context.Context, postID int64, body string) (*domain.Comment, error) {
	var created domain.Comment
	if err := c.post(ctx, "/api/posts/"+itoa(postID)+"/comments", map[string]string{"body": body}, &created); err != nil {
		return nil, fmt.Errorf("api.CreateComment: %w", err)
	}
	return &created, nil
}
