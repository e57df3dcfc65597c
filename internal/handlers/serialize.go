package handlers

import (
	"feed/internal/dto"
	"feed/internal/models"
)

// commentTree arranges the comments of one article into reply threads.
// It is built from a single fetch and indexed by id.
type commentTree struct {
	comments []models.Comment
	byID     map[uint]int
	children map[uint][]int
	names    map[uint]string
}

func newCommentTree(comments []models.Comment, names map[uint]string) *commentTree {
	t := &commentTree{
		comments: comments,
		byID:     make(map[uint]int, len(comments)),
		children: make(map[uint][]int),
		names:    names,
	}
	for i, c := range comments {
		t.byID[c.ID] = i
		if c.ParentCommentID != nil {
			t.children[*c.ParentCommentID] = append(t.children[*c.ParentCommentID], i)
		}
	}
	return t
}

// authorIDs lists the distinct authors of the comments.
func authorIDs(comments []models.Comment) []uint {
	seen := make(map[uint]bool, len(comments))
	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}
	return ids
}

// Roots returns the top-level comments with their replies embedded.
func (t *commentTree) Roots() []dto.CommentResponse {
	out := make([]dto.CommentResponse, 0)
	for i, c := range t.comments {
		if c.IsTopLevel() {
			out = append(out, t.node(i, map[uint]bool{}))
		}
	}
	return out
}

// Find returns the comment with its replies embedded.
func (t *commentTree) Find(id uint) (dto.CommentResponse, bool) {
	i, ok := t.byID[id]
	if !ok {
		return dto.CommentResponse{}, false
	}
	return t.node(i, map[uint]bool{}), true
}

func (t *commentTree) node(i int, path map[uint]bool) dto.CommentResponse {
	c := &t.comments[i]
	resp := dto.NewCommentResponse(c, nameOf(t.names, c.AuthorID))

	kids := t.children[c.ID]
	if len(kids) == 0 || path[c.ID] {
		return resp
	}
	path[c.ID] = true
	resp.ChildComments = make([]dto.CommentResponse, 0, len(kids))
	for _, k := range kids {
		resp.ChildComments = append(resp.ChildComments, t.node(k, path))
	}
	delete(path, c.ID)
	return resp
}
