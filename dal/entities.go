package dal

import (
	"time"
)

type Visibility string

const (
	VizPublic   Visibility = "PUBLIC"
	VizFriends  Visibility = "FRIENDS"
	VizUnlisted Visibility = "UNLISTED"
	VizDeleted  Visibility = "DELETED"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VizPublic, VizFriends, VizUnlisted, VizDeleted:
		return true
	}
	return false
}

type FollowStatus string

const (
	FollowPending  FollowStatus = "pending"
	FollowAccepted FollowStatus = "accepted"
	FollowDenied   FollowStatus = "denied"
)

type InboxItemType string

const (
	InboxFollow  InboxItemType = "follow"
	InboxPost    InboxItemType = "post"
	InboxComment InboxItemType = "comment"
	InboxLike    InboxItemType = "like"
)

type Author struct {
	Id           string // https://node-a.example/authors/0d9c3f4e-...
	Host         string // node-a.example
	DisplayName  string
	Github       string
	ProfileImage string
	Page         string
	IsLocal      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Node struct {
	Id           int
	BaseUrl      string // https://node-b.example
	Host         string // node-b.example
	Username     string // What the peer presents to us
	PasswordHash string // bcrypt
	OutUsername  string // What we present to the peer
	OutPassword  string
	Enabled      bool
}

type Follow struct {
	FollowerId   string
	FollowerHost string
	Followee     string
	CreatedAt    time.Time
}

type FollowRequest struct {
	Id         int64
	FollowerId string
	Followee   string
	Status     FollowStatus
	Summary    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Post struct {
	Id          string
	AuthorId    string
	Title       string
	Description string
	Content     string
	ContentType string
	Visibility  Visibility
	Published   time.Time
	UpdatedAt   time.Time
}

type Comment struct {
	Id          string
	AuthorId    string
	PostId      string
	Comment     string
	ContentType string
	Published   time.Time
}

type Like struct {
	Id        string
	AuthorId  string
	Object    string // Post or comment being liked
	Published time.Time
}

// InboxItem is a reference from an author's inbox to a follow request, post, comment or like row.
type InboxItem struct {
	OwnerId  string
	ItemType InboxItemType
	ItemRef  string
	AddedAt  time.Time
}
