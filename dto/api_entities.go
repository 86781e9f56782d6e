package dto

type RegisterAuthorReq struct {
	DisplayName  string `json:"displayName"`
	Github       string `json:"github"`
	ProfileImage string `json:"profileImage"`
	Page         string `json:"page"`
}

type CreatePostReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	Visibility  string `json:"visibility"`
}

type LikeReq struct {
	Object string `json:"object"`
}

type LikeResp struct {
	Liked bool          `json:"liked"`
	Like  *LikeActivity `json:"like,omitempty"`
}

type CommentReq struct {
	Post        string `json:"post"`
	Comment     string `json:"comment"`
	ContentType string `json:"contentType"`
}

type FollowReq struct {
	Target string `json:"target"`
}
