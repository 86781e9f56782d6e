package dal

import (
	"database/sql"
	"errors"
	"strconv"
	"time"
)

const followRequestCols = `id, follower_id, followee, status, summary, created_at, updated_at`

func scanFollowRequest(row rowScanner) (*FollowRequest, error) {
	var res FollowRequest
	err := row.Scan(&res.Id, &res.FollowerId, &res.Followee, &res.Status, &res.Summary,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Latest request for the pair whose status is one of the given ones; nil if there is none.
func getLatestFollowRequest(q querier, followerId, followee string, statuses ...FollowStatus) (*FollowRequest, error) {
	query := `SELECT ` + followRequestCols + ` FROM follow_requests WHERE follower_id=? AND followee=? AND status IN (`
	args := []any{followerId, followee}
	for i, st := range statuses {
		if i > 0 {
			query += ", "
		}
		query += "?"
		args = append(args, st)
	}
	query += `) ORDER BY id DESC LIMIT 1`
	res, err := scanFollowRequest(q.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func getOrCreateFollowRequest(q querier, followerId, followee, summary string) (*FollowRequest, bool, error) {
	req, err := getLatestFollowRequest(q, followerId, followee, FollowPending, FollowAccepted)
	if err != nil || req != nil {
		return req, false, err
	}
	now := time.Now().UTC()
	res, err := q.Exec(`INSERT INTO follow_requests (follower_id, followee, status, summary, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?)`, followerId, followee, FollowPending, summary, now, now)
	if err != nil {
		return nil, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, err
	}
	req = &FollowRequest{
		Id:         id,
		FollowerId: followerId,
		Followee:   followee,
		Status:     FollowPending,
		Summary:    summary,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return req, true, nil
}

// GetOrCreateFollowRequest returns the open (pending or accepted) request for the pair, or adds a pending one.
// Denied requests stay as they are; a new attempt after a denial gets a fresh row.
func (repo *Repo) GetOrCreateFollowRequest(followerId, followee, summary string) (*FollowRequest, bool, error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	return getOrCreateFollowRequest(repo.db, followerId, followee, summary)
}

func (repo *Repo) GetFollowRequest(id int64) (*FollowRequest, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	row := repo.db.QueryRow(`SELECT `+followRequestCols+` FROM follow_requests WHERE id=?`, id)
	res, err := scanFollowRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

func (repo *Repo) GetFollowRequests(followerId, followee string) ([]*FollowRequest, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query(`SELECT `+followRequestCols+` FROM follow_requests
		WHERE follower_id=? AND followee=? ORDER BY id ASC`, followerId, followee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]*FollowRequest, 0)
	for rows.Next() {
		req, err := scanFollowRequest(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, req)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ApproveFollowRequest accepts the open request for the pair, creates the follow and takes the request out
// of the followee's inbox, all in one transaction. Returns false if there is no pending or accepted request.
func (repo *Repo) ApproveFollowRequest(followerId, followerHost, followee string) (found bool, err error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	var tx *sql.Tx
	if tx, err = repo.db.Begin(); err != nil {
		return false, err
	}
	defer rollback(tx)

	req, err := getLatestFollowRequest(tx, followerId, followee, FollowPending, FollowAccepted)
	if err != nil || req == nil {
		return false, err
	}
	now := time.Now().UTC()
	if req.Status == FollowPending {
		_, err = tx.Exec(`UPDATE follow_requests SET status=?, updated_at=? WHERE id=?`, FollowAccepted, now, req.Id)
		if err != nil {
			return false, err
		}
	}
	_, err = tx.Exec(`INSERT INTO follows (follower_id, follower_host, followee, created_at) VALUES(?, ?, ?, ?)
		ON CONFLICT DO NOTHING`, followerId, followerHost, followee, now)
	if err != nil {
		return false, err
	}
	_, err = tx.Exec(`DELETE FROM inbox_items WHERE owner_id=? AND item_type=? AND item_ref=?`,
		followee, InboxFollow, strconv.FormatInt(req.Id, 10))
	if err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// DenyFollowRequest marks the pending request for the pair as denied and removes it from the inbox.
// The request row itself is kept.
func (repo *Repo) DenyFollowRequest(followerId, followee string) (found bool, err error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	var tx *sql.Tx
	if tx, err = repo.db.Begin(); err != nil {
		return false, err
	}
	defer rollback(tx)

	req, err := getLatestFollowRequest(tx, followerId, followee, FollowPending)
	if err != nil || req == nil {
		return false, err
	}
	_, err = tx.Exec(`UPDATE follow_requests SET status=?, updated_at=? WHERE id=?`,
		FollowDenied, time.Now().UTC(), req.Id)
	if err != nil {
		return false, err
	}
	_, err = tx.Exec(`DELETE FROM inbox_items WHERE owner_id=? AND item_type=? AND item_ref=?`,
		followee, InboxFollow, strconv.FormatInt(req.Id, 10))
	if err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// DeleteFollowRelation removes the follow and every follow request for the pair, including inbox references.
func (repo *Repo) DeleteFollowRelation(followerId, followee string) (removed bool, err error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	var tx *sql.Tx
	if tx, err = repo.db.Begin(); err != nil {
		return false, err
	}
	defer rollback(tx)

	var res sql.Result
	var affected int64
	res, err = tx.Exec(`DELETE FROM follows WHERE follower_id=? AND followee=?`, followerId, followee)
	if err != nil {
		return false, err
	}
	if affected, err = res.RowsAffected(); err != nil {
		return false, err
	}
	removed = affected != 0

	_, err = tx.Exec(`DELETE FROM inbox_items WHERE owner_id=? AND item_type=? AND item_ref IN
		(SELECT CAST(id AS TEXT) FROM follow_requests WHERE follower_id=? AND followee=?)`,
		followee, InboxFollow, followerId, followee)
	if err != nil {
		return false, err
	}
	res, err = tx.Exec(`DELETE FROM follow_requests WHERE follower_id=? AND followee=?`, followerId, followee)
	if err != nil {
		return false, err
	}
	if affected, err = res.RowsAffected(); err != nil {
		return false, err
	}
	removed = removed || affected != 0
	return removed, tx.Commit()
}

// AddFollowWithRequest records an outgoing follow that the followee's node has taken delivery of:
// an open follow request plus the follow itself, in one transaction.
func (repo *Repo) AddFollowWithRequest(followerId, followerHost, followee, summary string) (err error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	var tx *sql.Tx
	if tx, err = repo.db.Begin(); err != nil {
		return err
	}
	defer rollback(tx)

	if _, _, err = getOrCreateFollowRequest(tx, followerId, followee, summary); err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO follows (follower_id, follower_host, followee, created_at) VALUES(?, ?, ?, ?)
		ON CONFLICT DO NOTHING`, followerId, followerHost, followee, time.Now().UTC())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (repo *Repo) RemoveFollow(followerId, followee string) (bool, error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	res, err := repo.db.Exec(`DELETE FROM follows WHERE follower_id=? AND followee=?`, followerId, followee)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected != 0, nil
}

func (repo *Repo) IsFollowing(followerId, followee string) (bool, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	row := repo.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE follower_id=? AND followee=?`, followerId, followee)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count != 0, nil
}

// GetFollowers returns the followers whose author record is known here; ids with no author row are omitted.
func (repo *Repo) GetFollowers(followee string) ([]*Author, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query(`SELECT a.id, a.host, a.display_name, a.github, a.profile_image, a.page,
			a.is_local, a.created_at, a.updated_at
		FROM follows f JOIN authors a ON a.id=f.follower_id
		WHERE f.followee=? ORDER BY f.created_at ASC`, followee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]*Author, 0)
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, author)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (repo *Repo) getFollowerIds(query string, args ...any) ([]string, error) {
	rows, err := repo.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]string, 0)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// GetRemoteFollowers is the fan-out set: followers of followee hosted anywhere but localHost.
func (repo *Repo) GetRemoteFollowers(followee, localHost string) ([]string, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	return repo.getFollowerIds(`SELECT DISTINCT follower_id FROM follows
		WHERE followee=? AND follower_host<>? ORDER BY follower_id`, followee, localHost)
}

func (repo *Repo) GetLocalFollowers(followee, localHost string) ([]string, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	return repo.getFollowerIds(`SELECT DISTINCT follower_id FROM follows
		WHERE followee=? AND follower_host=? ORDER BY follower_id`, followee, localHost)
}
