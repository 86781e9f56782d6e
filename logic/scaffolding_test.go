package logic_test

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/logic"
	"github.com/mcmclean4/Social-Distribution-sub000/mocks"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const localHost = "node-a.test"
const remoteHost = "node-b.test"
const disabledHost = "node-c.test"

type logicHarness struct {
	cfg             *shared.Config
	mockLogger      *mocks.MockILogger
	mockDistributor *mocks.MockIDistributor
	mockSender      *mocks.MockIActivitySender
	repo            dal.IRepo
	metrics         logic.IMetrics
	auth            logic.INodeAuthenticator
	idb             *shared.IdBuilder
}

// Real store in a temp sqlite file; collaborators that talk to other nodes are mocked.
func setupLogicHarness(t *testing.T) (*gomock.Controller, *logicHarness) {

	ctrl := gomock.NewController(t)

	cfg := &shared.Config{
		Host:   localHost,
		Scheme: "https",
		DbFile: filepath.Join(t.TempDir(), "test.db"),
	}
	cfg.ApplyDefaults()

	h := &logicHarness{
		cfg:             cfg,
		mockLogger:      mocks.NewMockILogger(ctrl),
		mockDistributor: mocks.NewMockIDistributor(ctrl),
		mockSender:      mocks.NewMockIActivitySender(ctrl),
		idb:             shared.NewIdBuilder(cfg),
	}
	setupDummyLogger(h.mockLogger)

	h.repo = dal.NewRepo(cfg, h.mockLogger)
	h.repo.InitUpdateDb()
	h.metrics = logic.NewMetrics(cfg)
	h.auth = logic.NewNodeAuthenticator(h.mockLogger, h.repo)

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

func (h *logicHarness) addLocalAuthor(t *testing.T, serial, name string) *dal.Author {
	author := &dal.Author{
		Id:          h.idb.AuthorUrl(serial),
		Host:        localHost,
		DisplayName: name,
		IsLocal:     true,
	}
	require.Nil(t, h.repo.UpsertAuthor(author))
	return author
}

func (h *logicHarness) addPost(t *testing.T, authorId, serial string) *dal.Post {
	post := &dal.Post{
		Id:          h.idb.PostUrl(authorId, serial),
		AuthorId:    authorId,
		Title:       "Post " + serial,
		Content:     "Hello",
		ContentType: "text/plain",
		Visibility:  dal.VizPublic,
		Published:   time.Now().UTC(),
	}
	require.Nil(t, h.repo.UpsertPost(post))
	return post
}

func (h *logicHarness) seedNodes(t *testing.T) {
	require.Nil(t, h.auth.SeedNodes([]shared.NodeSecret{
		{
			BaseUrl:     "https://" + remoteHost,
			Username:    "from-b",
			Password:    "pass-b",
			OutUsername: "to-b",
			OutPassword: "out-pass-b",
			Enabled:     true,
		},
		{
			BaseUrl:  "https://" + disabledHost,
			Username: "from-c",
			Password: "pass-c",
			Enabled:  false,
		},
	}))
}

func remoteAuthorId(host, serial string) string {
	return fmt.Sprintf("https://%s/authors/%s", host, serial)
}

func authorJson(id, displayName string) map[string]any {
	host, _ := shared.GetHostName(id)
	return map[string]any{
		"type":        "author",
		"id":          id,
		"host":        "https://" + host + "/",
		"displayName": displayName,
	}
}

func followBody(actorId, actorName, targetId string) []byte {
	return mustJson(map[string]any{
		"type":    "Follow",
		"summary": actorName + " wants to follow you",
		"actor":   authorJson(actorId, actorName),
		"object":  map[string]any{"type": "author", "id": targetId},
	})
}

func unfollowBody(actorId string) []byte {
	return mustJson(map[string]any{
		"type":  "unfollow",
		"actor": map[string]any{"id": actorId},
	})
}

func likeBody(id, authorId, object string) []byte {
	return mustJson(map[string]any{
		"type":      "like",
		"id":        id,
		"object":    object,
		"author":    authorJson(authorId, "Liker"),
		"published": "2024-03-01T12:00:00Z",
	})
}

func commentBody(id, authorId, postId, text, contentType string) []byte {
	return mustJson(map[string]any{
		"type":        "comment",
		"id":          id,
		"author":      authorJson(authorId, "Commenter"),
		"comment":     text,
		"contentType": contentType,
		"post":        postId,
		"published":   "2024-03-01T12:00:00Z",
	})
}

func postBody(actType, id, authorId, title, content, contentType, visibility string) []byte {
	return mustJson(map[string]any{
		"type":        actType,
		"id":          id,
		"title":       title,
		"content":     content,
		"contentType": contentType,
		"visibility":  visibility,
		"author":      authorJson(authorId, "Poster"),
		"published":   "2024-03-01T12:00:00Z",
	})
}

func mustJson(obj any) []byte {
	res, err := json.Marshal(obj)
	if err != nil {
		panic(err)
	}
	return res
}

func nodeWithHost(host string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		node, ok := x.(*dal.Node)
		return ok && node != nil && node.Host == host
	})
}
