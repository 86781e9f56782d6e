package dto

import (
	"encoding/json"
)

type ActivityType string

const (
	TypeFollow         ActivityType = "follow"
	TypeUnfollow       ActivityType = "unfollow"
	TypeFollowDecision ActivityType = "follow-decision"
	TypeLike           ActivityType = "like"
	TypeComment        ActivityType = "comment"
	TypePost           ActivityType = "post"
)

// Activity is one of FollowActivity, UnfollowActivity, FollowDecisionActivity, LikeActivity,
// CommentActivity or PostActivity.
type Activity interface {
	Type() ActivityType
	// Origin is the actor or author the activity comes from.
	Origin() *AuthorRef
}

type AuthorRef struct {
	Type         string `json:"type,omitempty"`
	Id           string `json:"id"`
	Host         string `json:"host,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	Github       string `json:"github,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Page         string `json:"page,omitempty"`
}

type FollowActivity struct {
	Kind    ActivityType `json:"type"`
	Summary string       `json:"summary"`
	Actor   AuthorRef    `json:"actor"`
	Object  AuthorRef    `json:"object"`
}

type UnfollowActivity struct {
	Kind   ActivityType `json:"type"`
	Actor  AuthorRef    `json:"actor"`
	Object *AuthorRef   `json:"object,omitempty"`
}

type FollowDecisionActivity struct {
	Kind     ActivityType `json:"type"`
	Summary  string       `json:"summary,omitempty"`
	Decision string       `json:"decision,omitempty"`
	Actor    *AuthorRef   `json:"actor,omitempty"`
	Object   *AuthorRef   `json:"object,omitempty"`
}

type LikeActivity struct {
	Kind      ActivityType `json:"type"`
	Id        string       `json:"id"`
	Summary   string       `json:"summary,omitempty"`
	Object    string       `json:"object"`
	Author    AuthorRef    `json:"author"`
	Published string       `json:"published"`
}

type CommentActivity struct {
	Kind        ActivityType `json:"type"`
	Id          string       `json:"id"`
	Author      AuthorRef    `json:"author"`
	Comment     string       `json:"comment"`
	ContentType string       `json:"contentType"`
	Post        string       `json:"post"`
	Published   string       `json:"published"`
}

type PostActivity struct {
	Kind        ActivityType `json:"type"`
	Id          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Content     string       `json:"content"`
	ContentType string       `json:"contentType"`
	Visibility  string       `json:"visibility"`
	Author      AuthorRef    `json:"author"`
	Published   string       `json:"published"`
}

func (a *FollowActivity) Type() ActivityType         { return TypeFollow }
func (a *UnfollowActivity) Type() ActivityType       { return TypeUnfollow }
func (a *FollowDecisionActivity) Type() ActivityType { return TypeFollowDecision }
func (a *LikeActivity) Type() ActivityType           { return TypeLike }
func (a *CommentActivity) Type() ActivityType        { return TypeComment }
func (a *PostActivity) Type() ActivityType           { return TypePost }

func (a *FollowActivity) Origin() *AuthorRef         { return &a.Actor }
func (a *UnfollowActivity) Origin() *AuthorRef       { return &a.Actor }
func (a *FollowDecisionActivity) Origin() *AuthorRef { return a.Actor }
func (a *LikeActivity) Origin() *AuthorRef           { return &a.Author }
func (a *CommentActivity) Origin() *AuthorRef        { return &a.Author }
func (a *PostActivity) Origin() *AuthorRef           { return &a.Author }

// Serialize renders an activity for delivery, always stamping its canonical type.
func Serialize(act Activity) ([]byte, error) {
	switch a := act.(type) {
	case *FollowActivity:
		a.Kind = TypeFollow
	case *UnfollowActivity:
		a.Kind = TypeUnfollow
	case *FollowDecisionActivity:
		a.Kind = TypeFollowDecision
	case *LikeActivity:
		a.Kind = TypeLike
	case *CommentActivity:
		a.Kind = TypeComment
	case *PostActivity:
		a.Kind = TypePost
	}
	return json.Marshal(act)
}
