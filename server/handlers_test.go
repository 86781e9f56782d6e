package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/logic"
	"github.com/mcmclean4/Social-Distribution-sub000/mocks"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testApiKey = "test-api-key"
const testMetricsToken = "test-metrics-token"
const bobId = "https://node-b.test/authors/bob"

type serverHarness struct {
	cfg           *shared.Config
	mockLogger    *mocks.MockILogger
	mockAuth      *mocks.MockINodeAuthenticator
	mockIngestor  *mocks.MockIIngestor
	mockFollowers *mocks.MockIFollowers
	mockActions   *mocks.MockILocalActions
	mockLifecycle *mocks.MockIFollowLifecycle
	handler       http.Handler
}

func setupServerTest(t *testing.T, inboxRatePerMin int) (*gomock.Controller, *serverHarness) {

	ctrl := gomock.NewController(t)

	h := &serverHarness{
		cfg: &shared.Config{
			Host:            "node-a.test",
			InboxRatePerMin: inboxRatePerMin,
			Secrets: shared.Secrets{
				ApiKeys:     []string{testApiKey},
				MetricsAuth: testMetricsToken,
			},
		},
		mockLogger:    mocks.NewMockILogger(ctrl),
		mockAuth:      mocks.NewMockINodeAuthenticator(ctrl),
		mockIngestor:  mocks.NewMockIIngestor(ctrl),
		mockFollowers: mocks.NewMockIFollowers(ctrl),
		mockActions:   mocks.NewMockILocalActions(ctrl),
		mockLifecycle: mocks.NewMockIFollowLifecycle(ctrl),
	}
	h.cfg.ApplyDefaults()
	setupDummyLogger(h.mockLogger)

	metrics := logic.NewMetrics(h.cfg)
	groups := []IHandlerGroup{
		NewAuthorsHandlerGroup(h.cfg, h.mockLogger, metrics, h.mockAuth, h.mockIngestor, h.mockFollowers),
		NewApiHandlerGroup(h.cfg, h.mockLogger, metrics, h.mockActions, h.mockLifecycle),
		NewMetricsHandlerGroup(h.cfg, h.mockLogger),
	}
	h.handler = trimSlashHandler(NewMux(groups, h.mockLogger))

	return ctrl, h
}

func setupDummyLogger(mockLogger *mocks.MockILogger) {
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Printf(gomock.Any(), gomock.Any()).AnyTimes()
}

func (h *serverHarness) serve(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) *T {
	var res T
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return &res
}

var withApiKey = map[string]string{apiKeyHeader: testApiKey}

const followJson = `{"type":"follow","actor":{"id":"https://node-b.test/authors/bob"}}`

func TestInboxPostRequiresCredentials(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	h.mockAuth.EXPECT().Authenticate(gomock.Any()).Return(nil, nil, nil).Times(1)

	rec := h.serve("POST", "/authors/alice/inbox", followJson, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decodeBody[errorResp](t, rec)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestInboxPostRejectedNode(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	h.mockAuth.EXPECT().Authenticate(gomock.Any()).
		Return(nil, &logic.Problem{Kind: logic.ProblemDisabledNode, Message: "node is disabled"}, nil).Times(1)
	h.mockAuth.EXPECT().Authenticate(gomock.Any()).
		Return(nil, &logic.Problem{Kind: logic.ProblemAuthentication, Message: "invalid credentials"}, nil).Times(1)

	rec := h.serve("POST", "/authors/alice/inbox", followJson, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.serve("POST", "/authors/alice/inbox", followJson, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInboxPostFromNode(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	node := &dal.Node{BaseUrl: "https://node-b.test", Host: "node-b.test", Username: "from-b", Enabled: true}
	h.mockAuth.EXPECT().Authenticate(gomock.Any()).Return(node, nil, nil).Times(3)
	h.mockIngestor.EXPECT().Ingest("alice", node, []byte(followJson)).
		Return(&logic.Outcome{Status: http.StatusCreated, Message: "follow processed"}, nil, nil).Times(1)
	h.mockIngestor.EXPECT().Ingest("alice", node, []byte(`{}`)).
		Return(nil, &logic.Problem{Kind: logic.ProblemValidation, Message: "missing type"}, nil).Times(1)
	h.mockIngestor.EXPECT().Ingest("bob", node, gomock.Any()).
		Return(nil, nil, errors.New("disk on fire")).Times(1)

	rec := h.serve("POST", "/authors/alice/inbox", followJson, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[dto.OutcomeResp](t, rec)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "follow processed", resp.Message)

	rec = h.serve("POST", "/authors/alice/inbox/", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.serve("PUT", "/authors/bob/inbox", followJson, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInboxPostAnonymousWithApiKey(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	h.mockAuth.EXPECT().Authenticate(gomock.Any()).Return(nil, nil, nil).Times(1)
	h.mockIngestor.EXPECT().Ingest("alice", gomock.Nil(), gomock.Any()).
		Return(&logic.Outcome{Status: http.StatusNotFound, Message: "not found"}, nil, nil).Times(1)

	rec := h.serve("POST", "/authors/alice/inbox", `{"type":"unfollow","actor":{"id":"x"}}`, withApiKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeBody[dto.OutcomeResp](t, rec)
	assert.Equal(t, "not found", resp.Message)
}

func TestInboxPostRateLimited(t *testing.T) {
	ctrl, h := setupServerTest(t, 2)
	defer ctrl.Finish()

	nodeB := &dal.Node{BaseUrl: "https://node-b.test", Username: "from-b", Enabled: true}
	nodeD := &dal.Node{BaseUrl: "https://node-d.test", Username: "from-d", Enabled: true}
	h.mockAuth.EXPECT().Authenticate(gomock.Any()).Return(nodeB, nil, nil).Times(3)
	h.mockAuth.EXPECT().Authenticate(gomock.Any()).Return(nodeD, nil, nil).Times(1)
	h.mockIngestor.EXPECT().Ingest("alice", gomock.Any(), gomock.Any()).
		Return(&logic.Outcome{Status: http.StatusCreated, Message: "ok"}, nil, nil).Times(3)

	assert.Equal(t, http.StatusCreated, h.serve("POST", "/authors/alice/inbox", followJson, nil).Code)
	assert.Equal(t, http.StatusCreated, h.serve("POST", "/authors/alice/inbox", followJson, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, h.serve("POST", "/authors/alice/inbox", followJson, nil).Code)
	// Buckets are per sender
	assert.Equal(t, http.StatusCreated, h.serve("POST", "/authors/alice/inbox", followJson, nil).Code)
}

func TestGetInbox(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	inbox := &dto.InboxResp{
		Type:   "inbox",
		Author: "https://node-a.test/authors/alice",
		Items:  []any{&dto.LikeActivity{Kind: dto.TypeLike, Id: bobId + "/liked/1", Object: "x"}},
	}
	h.mockIngestor.EXPECT().GetInbox("alice").Return(inbox, nil, nil).Times(1)

	rec := h.serve("GET", "/authors/alice/inbox", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.serve("GET", "/authors/alice/inbox", "", withApiKey)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "inbox", (*resp)["type"])
	assert.Equal(t, 1, len((*resp)["items"].([]any)))
}

func TestDenyFollowViaInboxDelete(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	h.mockIngestor.EXPECT().DenyFollow("alice", bobId).Return(nil, nil).Times(1)
	h.mockIngestor.EXPECT().DenyFollow("alice", "https://node-d.test/authors/dan").
		Return(&logic.Problem{Kind: logic.ProblemNotFound, Message: "no pending follow request"}, nil).Times(1)

	rec := h.serve("DELETE", "/authors/alice/inbox", `{"follower_id":"`+bobId+`"}`, withApiKey)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.serve("DELETE", "/authors/alice/inbox", `{"follower_id":"https://node-d.test/authors/dan"}`, withApiKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.serve("DELETE", "/authors/alice/inbox", `{not json`, withApiKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFollowerRoutes(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	encoded := "/authors/alice/followers/" + url.PathEscape(bobId)
	require.NotContains(t, encoded, "//")

	h.mockFollowers.EXPECT().List("alice").
		Return(&dto.FollowersResp{Type: "followers", Followers: []*dto.AuthorRef{{Id: bobId}}}, nil, nil).Times(1)
	h.mockFollowers.EXPECT().Check("alice", bobId).Return(&dto.AuthorRef{Type: "author", Id: bobId}, nil, nil).Times(1)
	h.mockFollowers.EXPECT().Approve("alice", bobId).Return(nil, nil).Times(1)
	h.mockFollowers.EXPECT().Remove("alice", bobId).
		Return(&logic.Problem{Kind: logic.ProblemNotFound, Message: "not a follower"}, nil).Times(1)

	rec := h.serve("GET", "/authors/alice/followers/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[dto.FollowersResp](t, rec)
	require.Equal(t, 1, len(list.Followers))

	rec = h.serve("GET", encoded, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	follower := decodeBody[dto.AuthorRef](t, rec)
	assert.Equal(t, bobId, follower.Id)

	// Changing followers needs the API key
	rec = h.serve("PUT", encoded, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = h.serve("PUT", encoded, "", withApiKey)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = h.serve("DELETE", encoded, "", withApiKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApiRoutes(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	aliceRef := &dto.AuthorRef{Type: "author", Id: "https://node-a.test/authors/alice"}
	h.mockActions.EXPECT().RegisterAuthor(&dto.RegisterAuthorReq{DisplayName: "Alice"}).Return(aliceRef, nil, nil).Times(1)
	h.mockActions.EXPECT().ToggleLike("alice", bobId+"/posts/b1").Return(&dto.LikeResp{Liked: false}, nil, nil).Times(1)
	h.mockActions.EXPECT().CreatePost("alice", gomock.Any()).
		Return(&dto.PostActivity{Kind: dto.TypePost, Id: aliceRef.Id + "/posts/p1"}, nil, nil).Times(1)
	h.mockActions.EXPECT().AddComment("alice", &dto.CommentReq{Post: bobId + "/posts/b1", Comment: "Hi"}).
		Return(&dto.CommentActivity{Kind: dto.TypeComment, Id: aliceRef.Id + "/commented/c1"}, nil, nil).Times(1)
	h.mockLifecycle.EXPECT().Follow(gomock.Any(), "alice", bobId).
		Return(&logic.Problem{Kind: logic.ProblemDelivery, Message: "follow request could not be delivered"}, nil).Times(1)
	h.mockLifecycle.EXPECT().Unfollow("alice", bobId).Return(nil, nil).Times(1)

	rec := h.serve("POST", "/api/authors", `{"displayName":"Alice"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.serve("POST", "/api/authors", `{"displayName":"Alice"}`, withApiKey)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, aliceRef.Id, decodeBody[dto.AuthorRef](t, rec).Id)

	rec = h.serve("POST", "/api/authors/alice/posts", `{"title":"Hello"}`, withApiKey)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = h.serve("POST", "/api/authors/alice/likes", `{"object":"`+bobId+`/posts/b1"}`, withApiKey)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[dto.LikeResp](t, rec).Liked)

	rec = h.serve("POST", "/api/authors/alice/comments", `{"post":"`+bobId+`/posts/b1","comment":"Hi"}`, withApiKey)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = h.serve("POST", "/api/authors/alice/follow", `{"target":"`+bobId+`"}`, withApiKey)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = h.serve("DELETE", "/api/authors/alice/follow", `{"target":"`+bobId+`"}`, withApiKey)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.serve("POST", "/api/authors/alice/posts", `[broken`, withApiKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsAndNotFound(t *testing.T) {
	ctrl, h := setupServerTest(t, 0)
	defer ctrl.Finish()

	rec := h.serve("GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = h.serve("GET", "/metrics", "", map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = h.serve("GET", "/metrics", "", map[string]string{"Authorization": "Bearer " + testMetricsToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.serve("GET", "/nothing/here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeBody[errorResp](t, rec).Status)
}
