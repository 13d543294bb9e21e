package followservice

import "database/sql"

// FollowPageSize is the fixed page size of the follower and following
// listings.
const FollowPageSize = 5

type FollowService struct {
	m *FollowModel
}

type FollowModel struct {
	db *sql.DB
}

// FollowUser is one row of a follower or following listing.
type FollowUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
