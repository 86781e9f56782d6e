package logic

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../mocks/mock_local_actions.go -package mocks github.com/mcmclean4/Social-Distribution-sub000/logic ILocalActions

// ILocalActions are the things local authors do that produce activities for other inboxes.
type ILocalActions interface {
	RegisterAuthor(req *dto.RegisterAuthorReq) (*dto.AuthorRef, *Problem, error)
	CreatePost(authorSerial string, req *dto.CreatePostReq) (*dto.PostActivity, *Problem, error)
	// ToggleLike likes the object, or removes the like if the author already likes it.
	ToggleLike(authorSerial, object string) (*dto.LikeResp, *Problem, error)
	AddComment(authorSerial string, req *dto.CommentReq) (*dto.CommentActivity, *Problem, error)
}

type localActions struct {
	cfg         *shared.Config
	logger      shared.ILogger
	repo        dal.IRepo
	distributor IDistributor
	idb         *shared.IdBuilder
	sanitizer   *contentSanitizer
}

func NewLocalActions(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	distributor IDistributor,
) ILocalActions {
	return &localActions{
		cfg:         cfg,
		logger:      logger,
		repo:        repo,
		distributor: distributor,
		idb:         shared.NewIdBuilder(cfg),
		sanitizer:   newContentSanitizer(),
	}
}

func (la *localActions) RegisterAuthor(req *dto.RegisterAuthorReq) (*dto.AuthorRef, *Problem, error) {

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, newProblem(ProblemValidation, "displayName is required"), nil
	}
	author := dal.Author{
		Id:           la.idb.AuthorUrl(la.idb.NewSerial()),
		Host:         shared.NormalizeHost(la.cfg.Host),
		DisplayName:  displayName,
		Github:       req.Github,
		ProfileImage: req.ProfileImage,
		Page:         req.Page,
		IsLocal:      true,
	}
	if err := la.repo.UpsertAuthor(&author); err != nil {
		return nil, nil, fmt.Errorf("failed to store new author: %w", err)
	}
	la.logger.Infof("Registered author %s (%s)", author.Id, displayName)
	return authorToRef(&author), nil, nil
}

func (la *localActions) CreatePost(authorSerial string, req *dto.CreatePostReq) (*dto.PostActivity, *Problem, error) {

	author, prob, err := lookupLocalAuthor(la.repo, la.idb, authorSerial)
	if prob != nil || err != nil {
		return nil, prob, err
	}
	if req.Title == "" && req.Content == "" {
		return nil, newProblem(ProblemValidation, "title or content is required"), nil
	}
	viz := dal.Visibility(strings.ToUpper(req.Visibility))
	if viz == "" {
		viz = dal.VizPublic
	}
	if !viz.IsValid() || viz == dal.VizDeleted {
		return nil, newProblem(ProblemValidation, "invalid visibility '%s'", req.Visibility), nil
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}
	post := dal.Post{
		Id:          la.idb.PostUrl(author.Id, la.idb.NewSerial()),
		AuthorId:    author.Id,
		Title:       req.Title,
		Description: req.Description,
		Content:     la.sanitizer.sanitize(contentType, req.Content),
		ContentType: contentType,
		Visibility:  viz,
		Published:   time.Now().UTC(),
	}
	if err = la.repo.UpsertPost(&post); err != nil {
		return nil, nil, fmt.Errorf("failed to store post: %w", err)
	}
	payload := postToActivity(&post, authorToRef(author))

	if viz == dal.VizPublic || viz == dal.VizFriends {
		la.distributor.Distribute(payload, author.Id, DeliverPost)
		localFollowers, err := la.repo.GetLocalFollowers(author.Id, shared.NormalizeHost(la.cfg.Host))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get local followers: %w", err)
		}
		for _, followerId := range localFollowers {
			err = la.repo.AddInboxItem(&dal.InboxItem{OwnerId: followerId, ItemType: dal.InboxPost, ItemRef: post.Id})
			if err != nil {
				return nil, nil, fmt.Errorf("failed to add post to inbox of %s: %w", followerId, err)
			}
		}
	}
	return payload, nil, nil
}

func (la *localActions) ToggleLike(authorSerial, object string) (*dto.LikeResp, *Problem, error) {

	author, prob, err := lookupLocalAuthor(la.repo, la.idb, authorSerial)
	if prob != nil || err != nil {
		return nil, prob, err
	}
	if _, err = shared.GetHostName(object); err != nil {
		return nil, newProblem(ProblemValidation, "invalid object '%s'", object), nil
	}

	removed, err := la.repo.DeleteLike(author.Id, object)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to remove like: %w", err)
	}
	if removed {
		la.logger.Debugf("%s no longer likes %s", author.Id, object)
		return &dto.LikeResp{Liked: false}, nil, nil
	}

	ownerId, err := resolveContentOwner(la.repo, object)
	if err != nil {
		return nil, nil, err
	}
	if ownerId == "" {
		return nil, newProblem(ProblemNotFound, "cannot tell who owns %s", object), nil
	}

	like := dal.Like{
		Id:        la.idb.LikeUrl(author.Id, la.idb.NewSerial()),
		AuthorId:  author.Id,
		Object:    object,
		Published: time.Now().UTC(),
	}
	isNew, err := la.repo.AddLikeIfNotExist(&like)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store like: %w", err)
	}
	if !isNew {
		// Lost a race with a concurrent like by the same author
		existing, err := la.repo.GetLikeByAuthor(author.Id, object)
		if err != nil || existing == nil {
			return nil, nil, fmt.Errorf("failed to get concurrent like: %w", err)
		}
		return &dto.LikeResp{Liked: true, Like: likeToActivity(existing, authorToRef(author))}, nil, nil
	}
	payload := likeToActivity(&like, authorToRef(author))

	if la.idb.IsLocal(ownerId) {
		la.distributor.Distribute(payload, ownerId, DeliverLike)
		if ownerId != author.Id {
			err = la.repo.AddInboxItem(&dal.InboxItem{OwnerId: ownerId, ItemType: dal.InboxLike, ItemRef: like.Id})
			if err != nil {
				return nil, nil, fmt.Errorf("failed to add like to inbox: %w", err)
			}
		}
	} else {
		la.distributor.DeliverTo(payload, ownerId, DeliverLike)
	}
	return &dto.LikeResp{Liked: true, Like: payload}, nil, nil
}

func (la *localActions) AddComment(authorSerial string, req *dto.CommentReq) (*dto.CommentActivity, *Problem, error) {

	author, prob, err := lookupLocalAuthor(la.repo, la.idb, authorSerial)
	if prob != nil || err != nil {
		return nil, prob, err
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, newProblem(ProblemValidation, "comment is required"), nil
	}
	post, err := la.repo.GetPost(req.Post)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil || post.Visibility == dal.VizDeleted {
		return nil, newProblem(ProblemNotFound, "post not found"), nil
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}
	comment := dal.Comment{
		Id:          la.idb.CommentedUrl(author.Id, la.idb.NewSerial()),
		AuthorId:    author.Id,
		PostId:      post.Id,
		Comment:     la.sanitizer.sanitize(contentType, req.Comment),
		ContentType: contentType,
		Published:   time.Now().UTC(),
	}
	if err = la.repo.UpsertComment(&comment); err != nil {
		return nil, nil, fmt.Errorf("failed to store comment: %w", err)
	}
	payload := commentToActivity(&comment, authorToRef(author))

	if la.idb.IsLocal(post.AuthorId) {
		la.distributor.Distribute(payload, post.AuthorId, DeliverComment)
		if post.AuthorId != author.Id {
			err = la.repo.AddInboxItem(&dal.InboxItem{OwnerId: post.AuthorId, ItemType: dal.InboxComment, ItemRef: comment.Id})
			if err != nil {
				return nil, nil, fmt.Errorf("failed to add comment to inbox: %w", err)
			}
		}
	} else {
		la.distributor.DeliverTo(payload, post.AuthorId, DeliverComment)
	}
	return payload, nil, nil
}
