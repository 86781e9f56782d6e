package dal

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const localHost = "node-a.test"
const remoteHost = "node-b.test"

const aliceId = "https://node-a.test/authors/alice"
const bobId = "https://node-b.test/authors/bob"
const carolId = "https://node-a.test/authors/carol"

func setupRepoTest(t *testing.T) IRepo {
	cfg := &shared.Config{
		Host:   localHost,
		DbFile: filepath.Join(t.TempDir(), "test.db"),
	}
	repo := NewRepo(cfg, log.New(io.Discard))
	repo.InitUpdateDb()
	return repo
}

func TestInitUpdateDbIsRepeatable(t *testing.T) {
	cfg := &shared.Config{DbFile: filepath.Join(t.TempDir(), "test.db")}
	logger := log.New(io.Discard)
	NewRepo(cfg, logger).InitUpdateDb()
	assert.NotPanics(t, func() { NewRepo(cfg, logger).InitUpdateDb() })
}

func TestUpsertAuthorKeepsLocalFlag(t *testing.T) {
	repo := setupRepoTest(t)

	require.Nil(t, repo.UpsertAuthor(&Author{Id: aliceId, Host: localHost, DisplayName: "Alice", IsLocal: true}))
	require.Nil(t, repo.UpsertAuthor(&Author{Id: aliceId, Host: localHost, DisplayName: "Alice B."}))

	author, err := repo.GetAuthor(aliceId)
	require.Nil(t, err)
	require.NotNil(t, author)
	assert.Equal(t, "Alice B.", author.DisplayName)
	assert.True(t, author.IsLocal)

	// Placeholder does not overwrite a known profile
	require.Nil(t, repo.EnsureAuthor(aliceId, localHost))
	author, _ = repo.GetAuthor(aliceId)
	assert.Equal(t, "Alice B.", author.DisplayName)

	missing, err := repo.GetAuthor(bobId)
	assert.Nil(t, err)
	assert.Nil(t, missing)
}

func TestNodes(t *testing.T) {
	repo := setupRepoTest(t)

	isNew, err := repo.AddNodeIfNotExist(&Node{BaseUrl: "https://node-b.test", Host: remoteHost, Username: "b", Enabled: true})
	require.Nil(t, err)
	assert.True(t, isNew)
	isNew, err = repo.AddNodeIfNotExist(&Node{BaseUrl: "https://node-b.test", Host: remoteHost, Enabled: true})
	require.Nil(t, err)
	assert.False(t, isNew)

	// Placeholders without a username do not collide with each other
	isNew, err = repo.AddNodeIfNotExist(&Node{BaseUrl: "https://node-c.test", Host: "node-c.test", Enabled: true})
	require.Nil(t, err)
	assert.True(t, isNew)
	isNew, err = repo.AddNodeIfNotExist(&Node{BaseUrl: "https://node-d.test", Host: "node-d.test", Enabled: true})
	require.Nil(t, err)
	assert.True(t, isNew)

	node, err := repo.GetNodeByUsername("b")
	require.Nil(t, err)
	require.NotNil(t, node)
	assert.Equal(t, remoteHost, node.Host)
	assert.True(t, node.Enabled)

	disabled, err := repo.IsHostDisabled(remoteHost)
	require.Nil(t, err)
	assert.False(t, disabled)

	require.Nil(t, repo.SetNodeEnabled("https://node-b.test", false))
	disabled, err = repo.IsHostDisabled(remoteHost)
	require.Nil(t, err)
	assert.True(t, disabled)

	node, err = repo.GetNodeByHost(remoteHost)
	require.Nil(t, err)
	require.NotNil(t, node)
	assert.False(t, node.Enabled)

	node, err = repo.GetNodeByHost("nowhere.test")
	assert.Nil(t, err)
	assert.Nil(t, node)
}

func TestUpsertNodeOverwrites(t *testing.T) {
	repo := setupRepoTest(t)

	require.Nil(t, repo.UpsertNode(&Node{BaseUrl: "https://node-b.test", Host: remoteHost, Enabled: true}))
	require.Nil(t, repo.UpsertNode(&Node{
		BaseUrl:     "https://node-b.test",
		Host:        remoteHost,
		Username:    "b",
		OutUsername: "a",
		OutPassword: "secret",
		Enabled:     true,
	}))
	node, err := repo.GetNodeByHost(remoteHost)
	require.Nil(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "b", node.Username)
	assert.Equal(t, "a", node.OutUsername)
	assert.Equal(t, "secret", node.OutPassword)
}

func TestFollowRequestApprove(t *testing.T) {
	repo := setupRepoTest(t)

	req, isNew, err := repo.GetOrCreateFollowRequest(bobId, aliceId, "Bob wants to follow Alice")
	require.Nil(t, err)
	assert.True(t, isNew)
	assert.Equal(t, FollowPending, req.Status)

	again, isNew, err := repo.GetOrCreateFollowRequest(bobId, aliceId, "Bob wants to follow Alice")
	require.Nil(t, err)
	assert.False(t, isNew)
	assert.Equal(t, req.Id, again.Id)

	require.Nil(t, repo.AddInboxItem(&InboxItem{OwnerId: aliceId, ItemType: InboxFollow, ItemRef: "1"}))
	items, _ := repo.GetInboxItems(aliceId)
	require.Equal(t, 1, len(items))

	found, err := repo.ApproveFollowRequest(bobId, remoteHost, aliceId)
	require.Nil(t, err)
	assert.True(t, found)

	reqs, err := repo.GetFollowRequests(bobId, aliceId)
	require.Nil(t, err)
	require.Equal(t, 1, len(reqs))
	assert.Equal(t, FollowAccepted, reqs[0].Status)

	following, err := repo.IsFollowing(bobId, aliceId)
	require.Nil(t, err)
	assert.True(t, following)

	items, _ = repo.GetInboxItems(aliceId)
	assert.Zero(t, len(items))

	// Approving twice leaves exactly one follow
	found, err = repo.ApproveFollowRequest(bobId, remoteHost, aliceId)
	require.Nil(t, err)
	assert.True(t, found)
	remote, _ := repo.GetRemoteFollowers(aliceId, localHost)
	assert.Equal(t, []string{bobId}, remote)

	found, err = repo.ApproveFollowRequest(carolId, localHost, aliceId)
	require.Nil(t, err)
	assert.False(t, found)
}

func TestFollowRequestDeny(t *testing.T) {
	repo := setupRepoTest(t)

	req, _, err := repo.GetOrCreateFollowRequest(bobId, aliceId, "")
	require.Nil(t, err)
	require.Nil(t, repo.AddInboxItem(&InboxItem{OwnerId: aliceId, ItemType: InboxFollow, ItemRef: "1"}))

	found, err := repo.DenyFollowRequest(bobId, aliceId)
	require.Nil(t, err)
	assert.True(t, found)

	denied, err := repo.GetFollowRequest(req.Id)
	require.Nil(t, err)
	require.NotNil(t, denied)
	assert.Equal(t, FollowDenied, denied.Status)

	following, _ := repo.IsFollowing(bobId, aliceId)
	assert.False(t, following)
	items, _ := repo.GetInboxItems(aliceId)
	assert.Zero(t, len(items))

	found, err = repo.DenyFollowRequest(bobId, aliceId)
	require.Nil(t, err)
	assert.False(t, found)

	// Denied request stays on record; a new attempt gets a fresh row
	fresh, isNew, err := repo.GetOrCreateFollowRequest(bobId, aliceId, "")
	require.Nil(t, err)
	assert.True(t, isNew)
	assert.NotEqual(t, req.Id, fresh.Id)
	reqs, _ := repo.GetFollowRequests(bobId, aliceId)
	assert.Equal(t, 2, len(reqs))

	// Cannot approve something that is not pending or accepted
	found, err = repo.DenyFollowRequest(bobId, aliceId)
	require.Nil(t, err)
	assert.True(t, found)
	found, err = repo.ApproveFollowRequest(bobId, remoteHost, aliceId)
	require.Nil(t, err)
	assert.False(t, found)
}

func TestDeleteFollowRelation(t *testing.T) {
	repo := setupRepoTest(t)

	removed, err := repo.DeleteFollowRelation(bobId, aliceId)
	require.Nil(t, err)
	assert.False(t, removed)

	require.Nil(t, repo.AddFollowWithRequest(bobId, remoteHost, aliceId, "summary"))
	reqs, _ := repo.GetFollowRequests(bobId, aliceId)
	require.Equal(t, 1, len(reqs))
	require.Nil(t, repo.AddInboxItem(&InboxItem{OwnerId: aliceId, ItemType: InboxFollow, ItemRef: "1"}))

	removed, err = repo.DeleteFollowRelation(bobId, aliceId)
	require.Nil(t, err)
	assert.True(t, removed)

	following, _ := repo.IsFollowing(bobId, aliceId)
	assert.False(t, following)
	reqs, _ = repo.GetFollowRequests(bobId, aliceId)
	assert.Zero(t, len(reqs))
	items, _ := repo.GetInboxItems(aliceId)
	assert.Zero(t, len(items))
}

func TestFollowersLocalAndRemote(t *testing.T) {
	repo := setupRepoTest(t)

	require.Nil(t, repo.UpsertAuthor(&Author{Id: bobId, Host: remoteHost, DisplayName: "Bob"}))
	require.Nil(t, repo.AddFollowWithRequest(bobId, remoteHost, aliceId, ""))
	require.Nil(t, repo.AddFollowWithRequest(carolId, localHost, aliceId, ""))
	require.Nil(t, repo.AddFollowWithRequest("https://node-c.test/authors/dan", "node-c.test", aliceId, ""))

	remote, err := repo.GetRemoteFollowers(aliceId, localHost)
	require.Nil(t, err)
	assert.Equal(t, []string{bobId, "https://node-c.test/authors/dan"}, remote)

	local, err := repo.GetLocalFollowers(aliceId, localHost)
	require.Nil(t, err)
	assert.Equal(t, []string{carolId}, local)

	// Only followers with an author record
	followers, err := repo.GetFollowers(aliceId)
	require.Nil(t, err)
	require.Equal(t, 1, len(followers))
	assert.Equal(t, "Bob", followers[0].DisplayName)

	removed, err := repo.RemoveFollow(bobId, aliceId)
	require.Nil(t, err)
	assert.True(t, removed)
	removed, err = repo.RemoveFollow(bobId, aliceId)
	require.Nil(t, err)
	assert.False(t, removed)
	remote, _ = repo.GetRemoteFollowers(aliceId, localHost)
	assert.Equal(t, []string{"https://node-c.test/authors/dan"}, remote)
}

func TestUpsertPostLastWriteWins(t *testing.T) {
	repo := setupRepoTest(t)

	postId := aliceId + "/posts/p1"
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.Nil(t, repo.UpsertPost(&Post{Id: postId, AuthorId: aliceId, Title: "First", Content: "one",
		ContentType: "text/plain", Visibility: VizPublic, Published: published}))
	require.Nil(t, repo.UpsertPost(&Post{Id: postId, AuthorId: aliceId, Title: "Second", Content: "two",
		ContentType: "text/markdown", Visibility: VizFriends, Published: published}))

	post, err := repo.GetPost(postId)
	require.Nil(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Second", post.Title)
	assert.Equal(t, "two", post.Content)
	assert.Equal(t, VizFriends, post.Visibility)
	assert.True(t, published.Equal(post.Published))

	missing, err := repo.GetPost(aliceId + "/posts/nope")
	assert.Nil(t, err)
	assert.Nil(t, missing)
}

func TestCommentsForPost(t *testing.T) {
	repo := setupRepoTest(t)

	postId := aliceId + "/posts/p1"
	older := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	require.Nil(t, repo.UpsertComment(&Comment{Id: bobId + "/commented/c1", AuthorId: bobId, PostId: postId,
		Comment: "first", ContentType: "text/plain", Published: older}))
	require.Nil(t, repo.UpsertComment(&Comment{Id: bobId + "/commented/c2", AuthorId: bobId, PostId: postId,
		Comment: "second", ContentType: "text/plain", Published: newer}))
	require.Nil(t, repo.UpsertComment(&Comment{Id: bobId + "/commented/c1", AuthorId: bobId, PostId: postId,
		Comment: "first, edited", ContentType: "text/plain", Published: older}))

	comments, err := repo.GetCommentsForPost(postId)
	require.Nil(t, err)
	require.Equal(t, 2, len(comments))
	assert.Equal(t, "second", comments[0].Comment)
	assert.Equal(t, "first, edited", comments[1].Comment)
}

func TestLikeUniquePerAuthorAndObject(t *testing.T) {
	repo := setupRepoTest(t)

	object := aliceId + "/posts/p1"
	isNew, err := repo.AddLikeIfNotExist(&Like{Id: bobId + "/liked/l1", AuthorId: bobId, Object: object,
		Published: time.Now().UTC()})
	require.Nil(t, err)
	assert.True(t, isNew)

	// Same author and object under a different id
	isNew, err = repo.AddLikeIfNotExist(&Like{Id: bobId + "/liked/l2", AuthorId: bobId, Object: object,
		Published: time.Now().UTC()})
	require.Nil(t, err)
	assert.False(t, isNew)

	likes, err := repo.GetLikesForObject(object)
	require.Nil(t, err)
	require.Equal(t, 1, len(likes))
	assert.Equal(t, bobId+"/liked/l1", likes[0].Id)

	like, err := repo.GetLikeByAuthor(bobId, object)
	require.Nil(t, err)
	require.NotNil(t, like)
	assert.Equal(t, bobId+"/liked/l1", like.Id)

	require.Nil(t, repo.AddInboxItem(&InboxItem{OwnerId: aliceId, ItemType: InboxLike, ItemRef: like.Id}))
	removed, err := repo.DeleteLike(bobId, object)
	require.Nil(t, err)
	assert.True(t, removed)
	items, _ := repo.GetInboxItems(aliceId)
	assert.Zero(t, len(items))

	removed, err = repo.DeleteLike(bobId, object)
	require.Nil(t, err)
	assert.False(t, removed)
	like, err = repo.GetLike(bobId + "/liked/l1")
	assert.Nil(t, err)
	assert.Nil(t, like)
}

func TestInboxItems(t *testing.T) {
	repo := setupRepoTest(t)

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.Nil(t, repo.AddInboxItem(&InboxItem{OwnerId: aliceId, ItemType: InboxPost, ItemRef: "p1", AddedAt: start}))
	require.Nil(t, repo.AddInboxItem(&InboxItem{OwnerId: aliceId, ItemType: InboxLike, ItemRef: "l1",
		AddedAt: start.Add(time.Minute)}))
	// Duplicate reference is ignored
	require.Nil(t, repo.AddInboxItem(&InboxItem{OwnerId: aliceId, ItemType: InboxPost, ItemRef: "p1",
		AddedAt: start.Add(time.Hour)}))
	require.Nil(t, repo.AddInboxItem(&InboxItem{OwnerId: carolId, ItemType: InboxPost, ItemRef: "p1"}))

	items, err := repo.GetInboxItems(aliceId)
	require.Nil(t, err)
	require.Equal(t, 2, len(items))
	assert.Equal(t, InboxLike, items[0].ItemType)
	assert.Equal(t, InboxPost, items[1].ItemType)

	require.Nil(t, repo.RemoveInboxItem(aliceId, InboxPost, "p1"))
	items, _ = repo.GetInboxItems(aliceId)
	assert.Equal(t, 1, len(items))
	items, _ = repo.GetInboxItems(carolId)
	assert.Equal(t, 1, len(items))
}
