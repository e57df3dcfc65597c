package models

import (
	"strings"
)

type Reaction string

const (
	ReactionLike     Reaction = "like"
	ReactionCry      Reaction = "cry"
	ReactionSurprise Reaction = "surprise"
	ReactionLaugh    Reaction = "laugh"
	ReactionHeart    Reaction = "heart"
)

// HTML entities of the emoji shown for each reaction.
var reactionEmoji = map[Reaction]string{
	ReactionLike:     "&#128077;",
	ReactionCry:      "&#128557;",
	ReactionSurprise: "&#128562;",
	ReactionLaugh:    "&#128514;",
	ReactionHeart:    "&#129505;",
}

// Reactions lists every reaction kind in display order.
func Reactions() []Reaction {
	return []Reaction{ReactionLike, ReactionCry, ReactionSurprise, ReactionLaugh, ReactionHeart}
}

// ParseReaction accepts either the kind name ("like") or its emoji entity ("&#128077;").
func ParseReaction(s string) (Reaction, bool) {
	s = strings.TrimSpace(s)
	if _, ok := reactionEmoji[Reaction(strings.ToLower(s))]; ok {
		return Reaction(strings.ToLower(s)), true
	}
	for r, entity := range reactionEmoji {
		if entity == s {
			return r, true
		}
	}
	return "", false
}

func (r Reaction) Valid() bool {
	_, ok := reactionEmoji[r]
	return ok
}

func (r Reaction) Emoji() string {
	return reactionEmoji[r]
}
