package logic

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../mocks/mock_ingestor.go -package mocks github.com/mcmclean4/Social-Distribution-sub000/logic IIngestor

type IIngestor interface {
	Ingest(targetSerial string, sender *dal.Node, body []byte) (*Outcome, *Problem, error)
	GetInbox(targetSerial string) (*dto.InboxResp, *Problem, error)
	DenyFollow(targetSerial, followerId string) (*Problem, error)
}

// Outcome of an applied activity.
type Outcome struct {
	Status  int
	Message string
}

type ingestor struct {
	cfg         *shared.Config
	logger      shared.ILogger
	repo        dal.IRepo
	auth        INodeAuthenticator
	distributor IDistributor
	metrics     IMetrics
	idb         *shared.IdBuilder
	sanitizer   *contentSanitizer
}

func NewIngestor(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	auth INodeAuthenticator,
	distributor IDistributor,
	metrics IMetrics,
) IIngestor {
	return &ingestor{
		cfg:         cfg,
		logger:      logger,
		repo:        repo,
		auth:        auth,
		distributor: distributor,
		metrics:     metrics,
		idb:         shared.NewIdBuilder(cfg),
		sanitizer:   newContentSanitizer(),
	}
}

func (ing *ingestor) getLocalAuthor(serial string) (*dal.Author, *Problem, error) {
	return lookupLocalAuthor(ing.repo, ing.idb, serial)
}

func (ing *ingestor) Ingest(targetSerial string, sender *dal.Node, body []byte) (*Outcome, *Problem, error) {

	target, prob, err := ing.getLocalAuthor(targetSerial)
	if prob != nil || err != nil {
		return nil, prob, err
	}

	act, err := dto.ParseActivity(body)
	if err != nil {
		return nil, newProblem(ProblemValidation, "%v", err), nil
	}

	if prob, err = ing.checkTrust(act); prob != nil || err != nil {
		if prob != nil {
			ing.metrics.InboxRejected("untrusted_host")
		}
		return nil, prob, err
	}

	if sender != nil {
		ing.logger.Debugf("Ingesting %s for %s from node %s", act.Type(), target.Id, sender.BaseUrl)
	} else {
		ing.logger.Debugf("Ingesting %s for %s without node credentials", act.Type(), target.Id)
	}

	var outcome *Outcome
	switch a := act.(type) {
	case *dto.FollowActivity:
		outcome, prob, err = ing.handleFollow(target, a)
	case *dto.UnfollowActivity:
		outcome, prob, err = ing.handleUnfollow(target, a)
	case *dto.FollowDecisionActivity:
		outcome = &Outcome{http.StatusCreated, "follow-decision acknowledged"}
	case *dto.LikeActivity:
		outcome, prob, err = ing.handleLike(target, a)
	case *dto.CommentActivity:
		outcome, prob, err = ing.handleComment(target, a)
	case *dto.PostActivity:
		outcome, prob, err = ing.handlePost(target, a)
	default:
		return nil, newProblem(ProblemValidation, "unsupported activity"), nil
	}
	if prob != nil || err != nil {
		return nil, prob, err
	}
	ing.metrics.ActivityIngested(string(act.Type()))
	return outcome, nil, nil
}

// Rejects an activity whose declared actor or author comes from a disabled node.
// Both the declared host and the host in the id are checked.
func (ing *ingestor) checkTrust(act dto.Activity) (*Problem, error) {
	origin := act.Origin()
	if origin == nil {
		return nil, nil
	}
	for _, hostOrUrl := range []string{origin.Host, origin.Id} {
		if hostOrUrl == "" {
			continue
		}
		trusted, err := ing.auth.IsHostTrusted(hostOrUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to check trust for %s: %w", hostOrUrl, err)
		}
		if !trusted {
			ing.logger.Infof("Rejecting %s from disabled node host %s", act.Type(), hostOrUrl)
			return newProblem(ProblemTrustRejected, "activities from %s are not accepted",
				shared.NormalizeHost(hostOrUrl)), nil
		}
	}
	return nil, nil
}

// Update-or-create for a remote author; local authors are never overwritten from inbound payloads.
func (ing *ingestor) upsertRemoteAuthor(ref *dto.AuthorRef) error {
	if ing.idb.IsLocal(ref.Id) {
		return nil
	}
	author := refToAuthor(ref)
	if author.Host == "" {
		return fmt.Errorf("author id '%s' has no host", ref.Id)
	}
	if !hasProfile(ref) {
		return ing.repo.EnsureAuthor(author.Id, author.Host)
	}
	return ing.repo.UpsertAuthor(author)
}

// Placeholder node for a host we have not heard of; it carries no credentials but can later be disabled.
func (ing *ingestor) registerNodeIfNew(actorId string) error {
	if ing.idb.IsLocal(actorId) {
		return nil
	}
	host, err := shared.GetHostName(actorId)
	if err != nil {
		return err
	}
	node, err := ing.repo.GetNodeByHost(host)
	if err != nil || node != nil {
		return err
	}
	isNew, err := ing.repo.AddNodeIfNotExist(&dal.Node{
		BaseUrl: shared.GetBaseUrl(actorId),
		Host:    host,
		Enabled: true,
	})
	if isNew {
		ing.logger.Infof("Registered previously unseen node host %s", host)
	}
	return err
}

func (ing *ingestor) handleFollow(target *dal.Author, act *dto.FollowActivity) (*Outcome, *Problem, error) {

	if err := ing.upsertRemoteAuthor(&act.Actor); err != nil {
		return nil, nil, fmt.Errorf("failed to store follower %s: %w", act.Actor.Id, err)
	}
	if err := ing.registerNodeIfNew(act.Actor.Id); err != nil {
		return nil, nil, fmt.Errorf("failed to register node for %s: %w", act.Actor.Id, err)
	}
	summary := shared.TruncateWithEllipsis(act.Summary, shared.MaxSummaryLen)
	req, isNew, err := ing.repo.GetOrCreateFollowRequest(act.Actor.Id, target.Id, summary)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store follow request: %w", err)
	}
	if req.Status == dal.FollowPending {
		err = ing.repo.AddInboxItem(&dal.InboxItem{
			OwnerId:  target.Id,
			ItemType: dal.InboxFollow,
			ItemRef:  strconv.FormatInt(req.Id, 10),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to add follow request to inbox: %w", err)
		}
	}
	if isNew {
		ing.logger.Infof("Follow request from %s to %s", act.Actor.Id, target.Id)
	}
	return &Outcome{http.StatusCreated, "follow processed"}, nil, nil
}

func (ing *ingestor) handleUnfollow(target *dal.Author, act *dto.UnfollowActivity) (*Outcome, *Problem, error) {

	removed, err := ing.repo.DeleteFollowRelation(act.Actor.Id, target.Id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to remove follow relation: %w", err)
	}
	if !removed {
		return &Outcome{http.StatusNotFound, "not found"}, nil, nil
	}
	ing.logger.Infof("%s unfollowed %s", act.Actor.Id, target.Id)
	return &Outcome{http.StatusCreated, "unfollow processed"}, nil, nil
}

func (ing *ingestor) handleLike(target *dal.Author, act *dto.LikeActivity) (*Outcome, *Problem, error) {

	if err := ing.upsertRemoteAuthor(&act.Author); err != nil {
		return nil, nil, fmt.Errorf("failed to store liker %s: %w", act.Author.Id, err)
	}

	existing, err := ing.repo.GetLikeByAuthor(act.Author.Id, act.Object)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check for existing like: %w", err)
	}
	alreadyExists := &Outcome{http.StatusOK, "like already exists"}
	if existing != nil {
		return alreadyExists, nil, nil
	}
	isNew, err := ing.repo.AddLikeIfNotExist(&dal.Like{
		Id:        act.Id,
		AuthorId:  act.Author.Id,
		Object:    act.Object,
		Published: parseTime(act.Published),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store like: %w", err)
	}
	if !isNew {
		return alreadyExists, nil, nil
	}
	err = ing.repo.AddInboxItem(&dal.InboxItem{OwnerId: target.Id, ItemType: dal.InboxLike, ItemRef: act.Id})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add like to inbox: %w", err)
	}

	ownerId, err := resolveContentOwner(ing.repo, act.Object)
	if err != nil {
		return nil, nil, err
	}
	if ownerId != "" && ing.idb.IsLocal(ownerId) {
		ing.distributor.Distribute(act, ownerId, DeliverLike)
	}
	return &Outcome{http.StatusCreated, "like processed"}, nil, nil
}

// Author of the post (or of the comment's post) that an object URL names.
// Known rows win; otherwise the URL's path shape decides. Empty if neither works.
func resolveContentOwner(repo dal.IRepo, object string) (string, error) {
	post, err := repo.GetPost(object)
	if err != nil {
		return "", fmt.Errorf("failed to look up liked post: %w", err)
	}
	if post != nil {
		return post.AuthorId, nil
	}
	comment, err := repo.GetComment(object)
	if err != nil {
		return "", fmt.Errorf("failed to look up liked comment: %w", err)
	}
	if comment != nil {
		if post, err = repo.GetPost(comment.PostId); err != nil {
			return "", fmt.Errorf("failed to look up commented post: %w", err)
		}
		if post != nil {
			return post.AuthorId, nil
		}
		return ownerFromUrl(comment.PostId), nil
	}
	return ownerFromUrl(object), nil
}

func (ing *ingestor) handleComment(target *dal.Author, act *dto.CommentActivity) (*Outcome, *Problem, error) {

	if err := ing.upsertRemoteAuthor(&act.Author); err != nil {
		return nil, nil, fmt.Errorf("failed to store commenter %s: %w", act.Author.Id, err)
	}
	post, err := ing.repo.GetPost(act.Post)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up commented post: %w", err)
	}
	if post == nil {
		return nil, newProblem(ProblemNotFound, "post not found"), nil
	}
	if act.ContentType == "" {
		act.ContentType = "text/plain"
	}
	act.Comment = ing.sanitizer.sanitize(act.ContentType, act.Comment)
	err = ing.repo.UpsertComment(&dal.Comment{
		Id:          act.Id,
		AuthorId:    act.Author.Id,
		PostId:      post.Id,
		Comment:     act.Comment,
		ContentType: act.ContentType,
		Published:   parseTime(act.Published),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store comment: %w", err)
	}
	err = ing.repo.AddInboxItem(&dal.InboxItem{OwnerId: target.Id, ItemType: dal.InboxComment, ItemRef: act.Id})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add comment to inbox: %w", err)
	}
	if ing.idb.IsLocal(post.AuthorId) {
		ing.distributor.Distribute(act, post.AuthorId, DeliverComment)
	}
	return &Outcome{http.StatusCreated, "comment processed"}, nil, nil
}

func (ing *ingestor) handlePost(target *dal.Author, act *dto.PostActivity) (*Outcome, *Problem, error) {

	viz := dal.Visibility(strings.ToUpper(strings.TrimSpace(act.Visibility)))
	if viz == "" {
		viz = dal.VizPublic
	}
	if !viz.IsValid() {
		return nil, newProblem(ProblemValidation, "invalid visibility '%s'", act.Visibility), nil
	}
	if err := ing.upsertRemoteAuthor(&act.Author); err != nil {
		return nil, nil, fmt.Errorf("failed to store post author %s: %w", act.Author.Id, err)
	}
	if act.ContentType == "" {
		act.ContentType = "text/plain"
	}
	err := ing.repo.UpsertPost(&dal.Post{
		Id:          act.Id,
		AuthorId:    act.Author.Id,
		Title:       act.Title,
		Description: act.Description,
		Content:     ing.sanitizer.sanitize(act.ContentType, act.Content),
		ContentType: act.ContentType,
		Visibility:  viz,
		Published:   parseTime(act.Published),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store post: %w", err)
	}
	err = ing.repo.AddInboxItem(&dal.InboxItem{OwnerId: target.Id, ItemType: dal.InboxPost, ItemRef: act.Id})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add post to inbox: %w", err)
	}
	return &Outcome{http.StatusCreated, "post processed"}, nil, nil
}

func (ing *ingestor) DenyFollow(targetSerial, followerId string) (*Problem, error) {

	target, prob, err := ing.getLocalAuthor(targetSerial)
	if prob != nil || err != nil {
		return prob, err
	}
	if followerId == "" {
		return newProblem(ProblemValidation, "follower_id is required"), nil
	}
	found, err := ing.repo.DenyFollowRequest(followerId, target.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to deny follow request: %w", err)
	}
	if !found {
		return newProblem(ProblemNotFound, "no pending follow request from %s", followerId), nil
	}
	ing.logger.Infof("%s denied follow request from %s", target.Id, followerId)
	return nil, nil
}

var errInboxItemGone = errors.New("inbox item no longer exists")

// GetInbox materializes the inbox from the rows it references: follow requests, posts, likes, comments.
func (ing *ingestor) GetInbox(targetSerial string) (*dto.InboxResp, *Problem, error) {

	target, prob, err := ing.getLocalAuthor(targetSerial)
	if prob != nil || err != nil {
		return nil, prob, err
	}
	items, err := ing.repo.GetInboxItems(target.Id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get inbox items: %w", err)
	}

	refs := newAuthorRefCache(ing.repo)
	byType := make(map[dal.InboxItemType][]any)
	for _, item := range items {
		var entry any
		switch item.ItemType {
		case dal.InboxFollow:
			entry, err = ing.materializeFollow(target, item.ItemRef, refs)
		case dal.InboxPost:
			entry, err = ing.materializePost(item.ItemRef, refs)
		case dal.InboxLike:
			entry, err = ing.materializeLike(item.ItemRef, refs)
		case dal.InboxComment:
			entry, err = ing.materializeComment(item.ItemRef, refs)
		default:
			err = errInboxItemGone
		}
		if errors.Is(err, errInboxItemGone) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		byType[item.ItemType] = append(byType[item.ItemType], entry)
	}

	resp := dto.InboxResp{
		Type:   "inbox",
		Author: target.Id,
		Items:  make([]any, 0, len(items)),
	}
	for _, itemType := range []dal.InboxItemType{dal.InboxFollow, dal.InboxPost, dal.InboxLike, dal.InboxComment} {
		resp.Items = append(resp.Items, byType[itemType]...)
	}
	return &resp, nil, nil
}

func (ing *ingestor) materializeFollow(target *dal.Author, ref string, refs *authorRefCache) (any, error) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, errInboxItemGone
	}
	req, err := ing.repo.GetFollowRequest(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get follow request %d: %w", id, err)
	}
	if req == nil {
		return nil, errInboxItemGone
	}
	actor, err := refs.get(req.FollowerId)
	if err != nil {
		return nil, err
	}
	return &dto.InboxFollowRequest{
		Type:    string(dto.TypeFollow),
		Summary: req.Summary,
		Status:  string(req.Status),
		Actor:   *actor,
		Object:  *authorToRef(target),
	}, nil
}

func (ing *ingestor) materializePost(ref string, refs *authorRefCache) (any, error) {
	post, err := ing.repo.GetPost(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", ref, err)
	}
	if post == nil || post.Visibility == dal.VizDeleted {
		return nil, errInboxItemGone
	}
	author, err := refs.get(post.AuthorId)
	if err != nil {
		return nil, err
	}
	res := &dto.InboxPost{
		Type:        string(dto.TypePost),
		Id:          post.Id,
		Title:       post.Title,
		Description: post.Description,
		Content:     post.Content,
		ContentType: post.ContentType,
		Visibility:  string(post.Visibility),
		Author:      *author,
		Published:   formatTime(post.Published),
		Comments:    dto.CommentsCollection{Type: "comments", Id: post.Id + "/comments", Items: []*dto.CommentActivity{}},
		Likes:       dto.LikesCollection{Type: "likes", Id: post.Id + "/likes", Items: []*dto.LikeActivity{}},
	}

	comments, err := ing.repo.GetCommentsForPost(post.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments of %s: %w", post.Id, err)
	}
	for _, comment := range comments {
		commenter, err := refs.get(comment.AuthorId)
		if err != nil {
			return nil, err
		}
		res.Comments.Items = append(res.Comments.Items, commentToActivity(comment, commenter))
	}
	res.Comments.Count = len(res.Comments.Items)

	likes, err := ing.repo.GetLikesForObject(post.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to get likes of %s: %w", post.Id, err)
	}
	for _, like := range likes {
		liker, err := refs.get(like.AuthorId)
		if err != nil {
			return nil, err
		}
		res.Likes.Items = append(res.Likes.Items, likeToActivity(like, liker))
	}
	res.Likes.Count = len(res.Likes.Items)
	return res, nil
}

func (ing *ingestor) materializeLike(ref string, refs *authorRefCache) (any, error) {
	like, err := ing.repo.GetLike(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get like %s: %w", ref, err)
	}
	if like == nil {
		return nil, errInboxItemGone
	}
	liker, err := refs.get(like.AuthorId)
	if err != nil {
		return nil, err
	}
	return likeToActivity(like, liker), nil
}

func (ing *ingestor) materializeComment(ref string, refs *authorRefCache) (any, error) {
	comment, err := ing.repo.GetComment(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %s: %w", ref, err)
	}
	if comment == nil {
		return nil, errInboxItemGone
	}
	commenter, err := refs.get(comment.AuthorId)
	if err != nil {
		return nil, err
	}
	return commentToActivity(comment, commenter), nil
}

// Author lookups for one inbox read; ids with no author row come back as bare references.
type authorRefCache struct {
	repo  dal.IRepo
	cache map[string]*dto.AuthorRef
}

func newAuthorRefCache(repo dal.IRepo) *authorRefCache {
	return &authorRefCache{repo, make(map[string]*dto.AuthorRef)}
}

func (arc *authorRefCache) get(id string) (*dto.AuthorRef, error) {
	if ref, ok := arc.cache[id]; ok {
		return ref, nil
	}
	author, err := arc.repo.GetAuthor(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get author %s: %w", id, err)
	}
	var ref *dto.AuthorRef
	if author != nil {
		ref = authorToRef(author)
	} else {
		ref = &dto.AuthorRef{Type: "author", Id: id, Host: shared.NormalizeHost(id)}
	}
	arc.cache[id] = ref
	return ref, nil
}
