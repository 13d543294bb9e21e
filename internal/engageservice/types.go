package engageservice

import (
	"database/sql"
	"time"
)

type EngageService struct {
	m *EngageModel
}

type EngageModel struct {
	db *sql.DB
}

// Comment is one row of a blog's comment listing.
type Comment struct {
	ID   int    `json:"id"`
	Body string `json:"comment"`
}

// Like is one row of a blog's or comment's like listing.
type Like struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeList is a like listing together with its total, which covers all rows
// and not just the returned ones.
type LikeList struct {
	Likes      []Like `json:"likes"`
	TotalLikes int    `json:"totalLikes"`
}
