package dto

type InboxResp struct {
	Type   string `json:"type"`
	Author string `json:"author"`
	Items  []any  `json:"items"`
}

type InboxFollowRequest struct {
	Type    string    `json:"type"`
	Summary string    `json:"summary"`
	Status  string    `json:"status"`
	Actor   AuthorRef `json:"actor"`
	Object  AuthorRef `json:"object"`
}

type InboxPost struct {
	Type        string             `json:"type"`
	Id          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Content     string             `json:"content"`
	ContentType string             `json:"contentType"`
	Visibility  string             `json:"visibility"`
	Author      AuthorRef          `json:"author"`
	Published   string             `json:"published"`
	Comments    CommentsCollection `json:"comments"`
	Likes       LikesCollection    `json:"likes"`
}

type CommentsCollection struct {
	Type  string             `json:"type"`
	Id    string             `json:"id"`
	Count int                `json:"count"`
	Items []*CommentActivity `json:"src"`
}

type LikesCollection struct {
	Type  string          `json:"type"`
	Id    string          `json:"id"`
	Count int             `json:"count"`
	Items []*LikeActivity `json:"src"`
}

type DenyFollowReq struct {
	FollowerId string `json:"follower_id"`
}

type FollowersResp struct {
	Type      string       `json:"type"`
	Followers []*AuthorRef `json:"followers"`
}

type OutcomeResp struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
