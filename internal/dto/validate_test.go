package dto

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRequiredOrder(t *testing.T) {
	errs := Required("article", TextPtr("author", nil), Text("title", "  "), Text("content", "body"))
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(errs))
	}
	if got := errs[0].Error(); got != "The author of article is missing." {
		t.Errorf("Unexpected first error: %s", got)
	}
	if errs[1].Field != "title" {
		t.Errorf("Expected title second, got %s", errs[1].Field)
	}
}

func TestArticleRequestValidateCreate(t *testing.T) {
	title := "Title"
	content := "Body"
	var author uint = 1

	tests := []struct {
		name string
		req  ArticleRequest
		want string
	}{
		{"valid", ArticleRequest{Title: &title, Content: &content, AuthorID: &author}, ""},
		{"missing title", ArticleRequest{Content: &content, AuthorID: &author}, "The title of article is missing."},
		{"missing author", ArticleRequest{Title: &title, Content: &content}, "The author of article is missing."},
		{"long title", ArticleRequest{Title: ptr(strings.Repeat("x", 101)), Content: &content, AuthorID: &author}, "The title of article must be at most 100 characters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.ValidateCreate()
			if tt.want == "" {
				if len(errs) != 0 {
					t.Errorf("Expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) == 0 || errs[0].Error() != tt.want {
				t.Errorf("Expected %q, got %v", tt.want, errs)
			}
		})
	}
}

func TestLikeRequestValidate(t *testing.T) {
	if errs := (LikeRequest{Reaction: "heart"}).Validate(); len(errs) != 0 {
		t.Errorf("heart should be valid, got %v", errs)
	}
	if errs := (LikeRequest{Reaction: "&#128077;"}).Validate(); len(errs) != 0 {
		t.Errorf("Emoji entity should be valid, got %v", errs)
	}
	if errs := (LikeRequest{}).Validate(); len(errs) != 1 || errs[0].Error() != "The reaction of like is missing." {
		t.Errorf("Unexpected errors for empty reaction: %v", errs)
	}
	if errs := (LikeRequest{Reaction: "angry"}).Validate(); len(errs) != 1 || errs[0].Error() != "The reaction of like is invalid." {
		t.Errorf("Unexpected errors for unknown reaction: %v", errs)
	}
}

func TestNullableID(t *testing.T) {
	tests := []struct {
		body    string
		wantSet bool
		want    uint
	}{
		{`{}`, false, 0},
		{`{"parent_comment": null}`, true, 0},
		{`{"parent_comment": 0}`, true, 0},
		{`{"parent_comment": 7}`, true, 7},
	}
	for _, tt := range tests {
		var req UpdateCommentRequest
		if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tt.body, err)
		}
		p := req.ParentCommentID
		if p.Set != tt.wantSet {
			t.Errorf("%s: expected Set=%v, got %v", tt.body, tt.wantSet, p.Set)
		}
		if tt.want == 0 && p.Value != nil {
			t.Errorf("%s: expected nil value, got %d", tt.body, *p.Value)
		}
		if tt.want != 0 && (p.Value == nil || *p.Value != tt.want) {
			t.Errorf("%s: expected %d, got %v", tt.body, tt.want, p.Value)
		}
	}
}

func TestAuthorRequestComposesFullName(t *testing.T) {
	req := AuthorRequest{Username: ptr("jane"), Password: ptr("pw"), FirstName: ptr("Jane")}
	if errs := req.ValidateCreate(); len(errs) != 0 {
		t.Errorf("First name alone should give a full name, got %v", errs)
	}
	req.FirstName = nil
	if errs := req.ValidateCreate(); len(errs) != 1 || errs[0].Field != "full_name" {
		t.Errorf("Expected missing full_name, got %v", errs)
	}
}

func ptr[T any](v T) *T { return &v }
