package logic_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupFollowLifecycleTest(t *testing.T) (*gomock.Controller, *logicHarness, logic.IFollowLifecycle) {
	ctrl, h := setupLogicHarness(t)
	ing := logic.NewIngestor(h.cfg, h.mockLogger, h.repo, h.auth, h.mockDistributor, h.metrics)
	fl := logic.NewFollowLifecycle(h.cfg, h.mockLogger, h.repo, h.mockSender, ing)
	return ctrl, h, fl
}

func TestFollowRemoteAuthor(t *testing.T) {
	ctrl, h, fl := setupFollowLifecycleTest(t)
	defer ctrl.Finish()

	alice := h.addLocalAuthor(t, "alice", "Alice")
	h.seedNodes(t)
	bobId := remoteAuthorId(remoteHost, "bob")

	h.mockSender.EXPECT().Send(gomock.Any(), nodeWithHost(remoteHost), bobId+"/inbox", gomock.Any(),
		10*time.Second, "follow").
		DoAndReturn(func(ctx context.Context, node *dal.Node, inboxUrl string, body []byte,
			timeout time.Duration, label string) error {
			act, err := dto.ParseActivity(body)
			require.Nil(t, err)
			follow, ok := act.(*dto.FollowActivity)
			require.True(t, ok)
			assert.Equal(t, alice.Id, follow.Actor.Id)
			assert.Equal(t, "Alice", follow.Actor.DisplayName)
			assert.Equal(t, bobId, follow.Object.Id)
			assert.Contains(t, follow.Summary, "Alice wants to follow")
			// Nothing is recorded before the target's node accepts
			following, _ := h.repo.IsFollowing(alice.Id, bobId)
			assert.False(t, following)
			return nil
		}).Times(1)

	prob, err := fl.Follow(context.Background(), "alice", bobId)
	require.Nil(t, err)
	require.Nil(t, prob)

	following, _ := h.repo.IsFollowing(alice.Id, bobId)
	assert.True(t, following)
	reqs, _ := h.repo.GetFollowRequests(alice.Id, bobId)
	require.Equal(t, 1, len(reqs))
	assert.Equal(t, dal.FollowPending, reqs[0].Status)
	bob, _ := h.repo.GetAuthor(bobId)
	require.NotNil(t, bob)
	assert.Equal(t, remoteHost, bob.Host)
	local, _ := h.repo.GetLocalFollowers(bobId, localHost)
	assert.Equal(t, []string{alice.Id}, local)
}

func TestFollowRemoteDeliveryFails(t *testing.T) {
	ctrl, h, fl := setupFollowLifecycleTest(t)
	defer ctrl.Finish()

	alice := h.addLocalAuthor(t, "alice", "Alice")
	h.seedNodes(t)
	bobId := remoteAuthorId(remoteHost, "bob")

	h.mockSender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("got status 500 Internal Server Error")).Times(1)

	prob, err := fl.Follow(context.Background(), "alice", bobId)
	require.Nil(t, err)
	require.NotNil(t, prob)
	assert.Equal(t, logic.ProblemDelivery, prob.Kind)
	assert.Equal(t, http.StatusBadGateway, prob.StatusCode())

	following, _ := h.repo.IsFollowing(alice.Id, bobId)
	assert.False(t, following)
	reqs, _ := h.repo.GetFollowRequests(alice.Id, bobId)
	assert.Zero(t, len(reqs))
}

func TestFollowRejectedTargets(t *testing.T) {
	ctrl, h, fl := setupFollowLifecycleTest(t)
	defer ctrl.Finish()

	alice := h.addLocalAuthor(t, "alice", "Alice")
	h.seedNodes(t)

	cases := []struct {
		localSerial string
		targetId    string
		status      int
	}{
		{"alice", remoteAuthorId("node-d.test", "dan"), http.StatusNotFound},
		{"alice", remoteAuthorId(disabledHost, "cid"), http.StatusForbidden},
		{"alice", alice.Id, http.StatusBadRequest},
		{"alice", "not a url", http.StatusBadRequest},
		{"nobody", remoteAuthorId(remoteHost, "bob"), http.StatusNotFound},
		{"alice", h.idb.AuthorUrl("carol") + "/posts/x", http.StatusNotFound},
	}
	for _, c := range cases {
		prob, err := fl.Follow(context.Background(), c.localSerial, c.targetId)
		assert.Nil(t, err, c.targetId)
		require.NotNil(t, prob, c.targetId)
		assert.Equal(t, c.status, prob.StatusCode(), c.targetId)
	}
	followers, _ := h.repo.GetLocalFollowers(remoteAuthorId(remoteHost, "bob"), localHost)
	assert.Zero(t, len(followers))
}

func TestFollowLocalAuthor(t *testing.T) {
	ctrl, h, fl := setupFollowLifecycleTest(t)
	defer ctrl.Finish()

	alice := h.addLocalAuthor(t, "alice", "Alice")
	carol := h.addLocalAuthor(t, "carol", "Carol")

	// Delivered in-process: no sender expectations
	prob, err := fl.Follow(context.Background(), "alice", carol.Id)
	require.Nil(t, err)
	require.Nil(t, prob)

	following, _ := h.repo.IsFollowing(alice.Id, carol.Id)
	assert.True(t, following)
	reqs, _ := h.repo.GetFollowRequests(alice.Id, carol.Id)
	require.Equal(t, 1, len(reqs))
	assert.Equal(t, dal.FollowPending, reqs[0].Status)
	items, _ := h.repo.GetInboxItems(carol.Id)
	require.Equal(t, 1, len(items))
	assert.Equal(t, dal.InboxFollow, items[0].ItemType)

	// Local follower is not part of the remote fan-out set
	remote, _ := h.repo.GetRemoteFollowers(carol.Id, localHost)
	assert.Zero(t, len(remote))
}

func TestUnfollow(t *testing.T) {
	ctrl, h, fl := setupFollowLifecycleTest(t)
	defer ctrl.Finish()

	alice := h.addLocalAuthor(t, "alice", "Alice")
	bobId := remoteAuthorId(remoteHost, "bob")

	prob, err := fl.Unfollow("alice", bobId)
	assert.Nil(t, err)
	require.NotNil(t, prob)
	assert.Equal(t, http.StatusNotFound, prob.StatusCode())

	require.Nil(t, h.repo.AddFollowWithRequest(alice.Id, localHost, bobId, ""))

	// Remote node is not told: no sender expectations
	prob, err = fl.Unfollow("alice", bobId)
	require.Nil(t, err)
	require.Nil(t, prob)
	following, _ := h.repo.IsFollowing(alice.Id, bobId)
	assert.False(t, following)
}
