package logic

import (
	"strings"
	"time"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Unparseable or missing timestamps become the time of arrival.
func parseTime(str string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func authorToRef(author *dal.Author) *dto.AuthorRef {
	return &dto.AuthorRef{
		Type:         "author",
		Id:           author.Id,
		Host:         author.Host,
		DisplayName:  author.DisplayName,
		Github:       author.Github,
		ProfileImage: author.ProfileImage,
		Page:         author.Page,
	}
}

func refToAuthor(ref *dto.AuthorRef) *dal.Author {
	host := shared.NormalizeHost(ref.Host)
	if host == "" {
		host = shared.NormalizeHost(ref.Id)
	}
	return &dal.Author{
		Id:           ref.Id,
		Host:         host,
		DisplayName:  ref.DisplayName,
		Github:       ref.Github,
		ProfileImage: ref.ProfileImage,
		Page:         ref.Page,
	}
}

func hasProfile(ref *dto.AuthorRef) bool {
	return ref.DisplayName != "" || ref.Github != "" || ref.ProfileImage != "" || ref.Page != ""
}

func postToActivity(post *dal.Post, author *dto.AuthorRef) *dto.PostActivity {
	return &dto.PostActivity{
		Kind:        dto.TypePost,
		Id:          post.Id,
		Title:       post.Title,
		Description: post.Description,
		Content:     post.Content,
		ContentType: post.ContentType,
		Visibility:  string(post.Visibility),
		Author:      *author,
		Published:   formatTime(post.Published),
	}
}

func commentToActivity(comment *dal.Comment, author *dto.AuthorRef) *dto.CommentActivity {
	return &dto.CommentActivity{
		Kind:        dto.TypeComment,
		Id:          comment.Id,
		Author:      *author,
		Comment:     comment.Comment,
		ContentType: comment.ContentType,
		Post:        comment.PostId,
		Published:   formatTime(comment.Published),
	}
}

func likeToActivity(like *dal.Like, author *dto.AuthorRef) *dto.LikeActivity {
	return &dto.LikeActivity{
		Kind:      dto.TypeLike,
		Id:        like.Id,
		Object:    like.Object,
		Author:    *author,
		Published: formatTime(like.Published),
	}
}

// Owner of a post or comment URL by path shape alone: the part before /posts/.
// A comment URL is first cut back to its post.
func ownerFromUrl(objectUrl string) string {
	if ix := strings.Index(objectUrl, "/comments/"); ix >= 0 {
		objectUrl = objectUrl[:ix]
	}
	if ix := strings.Index(objectUrl, "/posts/"); ix >= 0 {
		return objectUrl[:ix]
	}
	return ""
}

func isHtml(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), "text/html")
}
