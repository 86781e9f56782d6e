package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidActivity = errors.New("invalid activity")

type activityEnvelope struct {
	Type string `json:"type"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidActivity, fmt.Sprintf(format, args...))
}

// ParseActivity decodes an inbound activity into its concrete variant and checks required fields.
// The type is case-insensitive and "update" is read as "post". Every error it returns wraps ErrInvalidActivity.
func ParseActivity(body []byte) (Activity, error) {

	var env activityEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, invalid("malformed JSON: %v", err)
	}
	actType := ActivityType(strings.ToLower(strings.TrimSpace(env.Type)))
	if actType == "update" {
		actType = TypePost
	}

	var act Activity
	switch actType {
	case TypeFollow:
		act = &FollowActivity{}
	case TypeUnfollow:
		act = &UnfollowActivity{}
	case TypeFollowDecision:
		act = &FollowDecisionActivity{}
	case TypeLike:
		act = &LikeActivity{}
	case TypeComment:
		act = &CommentActivity{}
	case TypePost:
		act = &PostActivity{}
	case "":
		return nil, invalid("missing type")
	default:
		return nil, invalid("unsupported type '%s'", env.Type)
	}
	if err := json.Unmarshal(body, act); err != nil {
		return nil, invalid("malformed %s: %v", actType, err)
	}
	if err := validate(act); err != nil {
		return nil, err
	}
	return act, nil
}

func validate(act Activity) error {
	switch a := act.(type) {
	case *FollowActivity:
		a.Kind = TypeFollow
		if a.Actor.Id == "" {
			return invalid("follow: actor.id is required")
		}
	case *UnfollowActivity:
		a.Kind = TypeUnfollow
		if a.Actor.Id == "" {
			return invalid("unfollow: actor.id is required")
		}
	case *FollowDecisionActivity:
		a.Kind = TypeFollowDecision
	case *LikeActivity:
		a.Kind = TypeLike
		if a.Id == "" || a.Object == "" || a.Author.Id == "" {
			return invalid("like: id, object and author.id are required")
		}
	case *CommentActivity:
		a.Kind = TypeComment
		if a.Id == "" || a.Author.Id == "" || a.Post == "" || a.Comment == "" {
			return invalid("comment: id, author.id, post and comment are required")
		}
	case *PostActivity:
		a.Kind = TypePost
		if a.Id == "" || a.Author.Id == "" {
			return invalid("post: id and author.id are required")
		}
	}
	return nil
}
