package server

import (
	"net/http"

	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/logic"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

type apiHandlerGroup struct {
	cfg       *shared.Config
	logger    shared.ILogger
	metrics   logic.IMetrics
	actions   logic.ILocalActions
	lifecycle logic.IFollowLifecycle
}

func NewApiHandlerGroup(
	cfg *shared.Config,
	logger shared.ILogger,
	metrics logic.IMetrics,
	actions logic.ILocalActions,
	lifecycle logic.IFollowLifecycle,
) IHandlerGroup {
	res := apiHandlerGroup{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		actions:   actions,
		lifecycle: lifecycle,
	}
	return &res
}

func (hg *apiHandlerGroup) Prefix() string {
	return "/api"
}

func (hg *apiHandlerGroup) GroupDefs() []handlerDef {
	return []handlerDef{
		{"POST", "/authors", func(w http.ResponseWriter, r *http.Request) { hg.postAuthor(w, r) }},
		{"POST", "/authors/{serial}/posts", func(w http.ResponseWriter, r *http.Request) { hg.postPost(w, r) }},
		{"POST", "/authors/{serial}/likes", func(w http.ResponseWriter, r *http.Request) { hg.postLike(w, r) }},
		{"POST", "/authors/{serial}/comments", func(w http.ResponseWriter, r *http.Request) { hg.postComment(w, r) }},
		{"POST", "/authors/{serial}/follow", func(w http.ResponseWriter, r *http.Request) { hg.postFollow(w, r) }},
		{"DELETE", "/authors/{serial}/follow", func(w http.ResponseWriter, r *http.Request) { hg.deleteFollow(w, r) }},
	}
}

func (hg *apiHandlerGroup) AuthMW() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return hg.authMW(next)
	}
}

func (hg *apiHandlerGroup) authMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !checkApiKey(hg.cfg, hg.logger, w, r) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (hg *apiHandlerGroup) postAuthor(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartApiRequestIn("author_post")
	defer obs.Finish()

	var req dto.RegisterAuthorReq
	if !readJsonBody(hg.logger, w, r, &req) {
		return
	}
	resp, prob, err := hg.actions.RegisterAuthor(&req)
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonStatus(hg.logger, w, http.StatusCreated, resp)
}

func (hg *apiHandlerGroup) postPost(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartApiRequestIn("post_post")
	defer obs.Finish()

	var req dto.CreatePostReq
	if !readJsonBody(hg.logger, w, r, &req) {
		return
	}
	resp, prob, err := hg.actions.CreatePost(pathVar(r, "serial"), &req)
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonStatus(hg.logger, w, http.StatusCreated, resp)
}

func (hg *apiHandlerGroup) postLike(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartApiRequestIn("like_post")
	defer obs.Finish()

	var req dto.LikeReq
	if !readJsonBody(hg.logger, w, r, &req) {
		return
	}
	resp, prob, err := hg.actions.ToggleLike(pathVar(r, "serial"), req.Object)
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonResponse(hg.logger, w, resp)
}

func (hg *apiHandlerGroup) postComment(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartApiRequestIn("comment_post")
	defer obs.Finish()

	var req dto.CommentReq
	if !readJsonBody(hg.logger, w, r, &req) {
		return
	}
	resp, prob, err := hg.actions.AddComment(pathVar(r, "serial"), &req)
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonStatus(hg.logger, w, http.StatusCreated, resp)
}

func (hg *apiHandlerGroup) postFollow(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartApiRequestIn("follow_post")
	defer obs.Finish()

	var req dto.FollowReq
	if !readJsonBody(hg.logger, w, r, &req) {
		return
	}
	prob, err := hg.lifecycle.Follow(r.Context(), pathVar(r, "serial"), req.Target)
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonStatus(hg.logger, w, http.StatusCreated,
		&dto.OutcomeResp{Status: http.StatusCreated, Message: "follow request sent"})
}

func (hg *apiHandlerGroup) deleteFollow(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartApiRequestIn("follow_delete")
	defer obs.Finish()

	var req dto.FollowReq
	if !readJsonBody(hg.logger, w, r, &req) {
		return
	}
	prob, err := hg.lifecycle.Unfollow(pathVar(r, "serial"), req.Target)
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonResponse(hg.logger, w, &dto.OutcomeResp{Status: http.StatusOK, Message: "unfollowed"})
}
