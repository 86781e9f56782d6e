package server

import (
	"net"
	"net/http"

	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/logic"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

// Node-facing surface under /authors: the inbox and the follower sub-resources.
type authorsHandlerGroup struct {
	cfg       *shared.Config
	logger    shared.ILogger
	metrics   logic.IMetrics
	auth      logic.INodeAuthenticator
	ingestor  logic.IIngestor
	followers logic.IFollowers
	limiter   *inboxLimiter
}

func NewAuthorsHandlerGroup(
	cfg *shared.Config,
	logger shared.ILogger,
	metrics logic.IMetrics,
	auth logic.INodeAuthenticator,
	ingestor logic.IIngestor,
	followers logic.IFollowers,
) IHandlerGroup {
	res := authorsHandlerGroup{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		auth:      auth,
		ingestor:  ingestor,
		followers: followers,
		limiter:   newInboxLimiter(cfg),
	}
	return &res
}

func (hg *authorsHandlerGroup) Prefix() string {
	return "/authors"
}

func (hg *authorsHandlerGroup) GroupDefs() []handlerDef {
	return []handlerDef{
		{"POST", "/{serial}/inbox", func(w http.ResponseWriter, r *http.Request) { hg.postInbox(w, r) }},
		{"PUT", "/{serial}/inbox", func(w http.ResponseWriter, r *http.Request) { hg.postInbox(w, r) }},
		{"GET", "/{serial}/inbox", func(w http.ResponseWriter, r *http.Request) { hg.getInbox(w, r) }},
		{"DELETE", "/{serial}/inbox", func(w http.ResponseWriter, r *http.Request) { hg.deleteInbox(w, r) }},
		{"GET", "/{serial}/followers", func(w http.ResponseWriter, r *http.Request) { hg.getFollowers(w, r) }},
		{"GET", "/{serial}/followers/{follower:.+}", func(w http.ResponseWriter, r *http.Request) { hg.getFollower(w, r) }},
		{"PUT", "/{serial}/followers/{follower:.+}", func(w http.ResponseWriter, r *http.Request) { hg.putFollower(w, r) }},
		{"DELETE", "/{serial}/followers/{follower:.+}", func(w http.ResponseWriter, r *http.Request) { hg.deleteFollower(w, r) }},
	}
}

// Authentication differs per route, so each handler does its own.
func (hg *authorsHandlerGroup) AuthMW() func(next http.Handler) http.Handler {
	return emptyMW
}

func (hg *authorsHandlerGroup) postInbox(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartInboxRequestIn("inbox_post")
	defer obs.Finish()

	node, prob, err := hg.auth.Authenticate(r)
	if prob != nil {
		hg.metrics.InboxRejected("auth")
	}
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	limiterKey := ""
	if node != nil {
		limiterKey = "node:" + node.Username
	} else {
		// Local API clients may post to an inbox without node credentials
		if !hg.cfg.AllowAnonymousInbox && !isValidApiKey(hg.cfg, r.Header.Get(apiKeyHeader)) {
			hg.metrics.InboxRejected("anonymous")
			hg.logger.Infof("Rejecting anonymous inbox POST: %s", r.URL.Path)
			writeErrorResponse(w, missingCredentials, http.StatusUnauthorized)
			return
		}
		limiterKey = "ip:" + remoteHost(r)
	}
	if !hg.limiter.allow(limiterKey) {
		hg.metrics.InboxRejected("rate_limit")
		hg.logger.Warnf("Inbox rate limit exceeded for %s", limiterKey)
		writeErrorResponse(w, tooManyRequests, http.StatusTooManyRequests)
		return
	}

	body := readBody(hg.logger, w, r)
	if body == nil {
		return
	}
	outcome, prob, err := hg.ingestor.Ingest(pathVar(r, "serial"), node, body)
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonStatus(hg.logger, w, outcome.Status, &dto.OutcomeResp{Status: outcome.Status, Message: outcome.Message})
}

func (hg *authorsHandlerGroup) getInbox(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartInboxRequestIn("inbox_get")
	defer obs.Finish()

	if !checkApiKey(hg.cfg, hg.logger, w, r) {
		return
	}
	resp, prob, err := hg.ingestor.GetInbox(pathVar(r, "serial"))
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonResponse(hg.logger, w, resp)
}

func (hg *authorsHandlerGroup) deleteInbox(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartInboxRequestIn("inbox_delete")
	defer obs.Finish()

	if !checkApiKey(hg.cfg, hg.logger, w, r) {
		return
	}
	var req dto.DenyFollowReq
	if !readJsonBody(hg.logger, w, r, &req) {
		return
	}
	prob, err := hg.ingestor.DenyFollow(pathVar(r, "serial"), req.FollowerId)
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonResponse(hg.logger, w, &dto.OutcomeResp{Status: http.StatusOK, Message: "follow request denied"})
}

func (hg *authorsHandlerGroup) getFollowers(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartInboxRequestIn("followers_get")
	defer obs.Finish()

	resp, prob, err := hg.followers.List(pathVar(r, "serial"))
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonResponse(hg.logger, w, resp)
}

func (hg *authorsHandlerGroup) getFollower(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartInboxRequestIn("follower_get")
	defer obs.Finish()

	resp, prob, err := hg.followers.Check(pathVar(r, "serial"), pathVar(r, "follower"))
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonResponse(hg.logger, w, resp)
}

func (hg *authorsHandlerGroup) putFollower(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartInboxRequestIn("follower_put")
	defer obs.Finish()

	if !checkApiKey(hg.cfg, hg.logger, w, r) {
		return
	}
	prob, err := hg.followers.Approve(pathVar(r, "serial"), pathVar(r, "follower"))
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonResponse(hg.logger, w, &dto.OutcomeResp{Status: http.StatusOK, Message: "follow request approved"})
}

func (hg *authorsHandlerGroup) deleteFollower(w http.ResponseWriter, r *http.Request) {

	obs := hg.metrics.StartInboxRequestIn("follower_delete")
	defer obs.Finish()

	if !checkApiKey(hg.cfg, hg.logger, w, r) {
		return
	}
	prob, err := hg.followers.Remove(pathVar(r, "serial"), pathVar(r, "follower"))
	if writeOutcome(hg.logger, w, r, prob, err) {
		return
	}
	writeJsonResponse(hg.logger, w, &dto.OutcomeResp{Status: http.StatusOK, Message: "follower removed"})
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
