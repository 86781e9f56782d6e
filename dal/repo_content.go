package dal

import (
	"database/sql"
	"errors"
	"time"
)

const postCols = `id, author_id, title, description, content, content_type, visibility, published, updated_at`
const commentCols = `id, author_id, post_id, comment, content_type, published`
const likeCols = `id, author_id, object, published`

func scanPost(row rowScanner) (*Post, error) {
	var res Post
	err := row.Scan(&res.Id, &res.AuthorId, &res.Title, &res.Description, &res.Content, &res.ContentType,
		&res.Visibility, &res.Published, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanComment(row rowScanner) (*Comment, error) {
	var res Comment
	err := row.Scan(&res.Id, &res.AuthorId, &res.PostId, &res.Comment, &res.ContentType, &res.Published)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanLike(row rowScanner) (*Like, error) {
	var res Like
	err := row.Scan(&res.Id, &res.AuthorId, &res.Object, &res.Published)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func noRowsToNil[T any](res *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

// UpsertPost is last-write-wins on the post's id.
func (repo *Repo) UpsertPost(post *Post) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec(`INSERT INTO posts (`+postCols+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET author_id=excluded.author_id, title=excluded.title,
			description=excluded.description, content=excluded.content, content_type=excluded.content_type,
			visibility=excluded.visibility, published=excluded.published, updated_at=excluded.updated_at`,
		post.Id, post.AuthorId, post.Title, post.Description, post.Content, post.ContentType,
		post.Visibility, post.Published, time.Now().UTC())
	return err
}

func (repo *Repo) GetPost(id string) (*Post, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	return noRowsToNil[Post](scanPost(repo.db.QueryRow(`SELECT `+postCols+` FROM posts WHERE id=?`, id)))
}

// UpsertComment is last-write-wins on the comment's id.
func (repo *Repo) UpsertComment(comment *Comment) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec(`INSERT INTO comments (`+commentCols+`) VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET author_id=excluded.author_id, post_id=excluded.post_id,
			comment=excluded.comment, content_type=excluded.content_type, published=excluded.published`,
		comment.Id, comment.AuthorId, comment.PostId, comment.Comment, comment.ContentType, comment.Published)
	return err
}

func (repo *Repo) GetComment(id string) (*Comment, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	return noRowsToNil[Comment](scanComment(repo.db.QueryRow(`SELECT `+commentCols+` FROM comments WHERE id=?`, id)))
}

func (repo *Repo) GetCommentsForPost(postId string) ([]*Comment, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query(`SELECT `+commentCols+` FROM comments WHERE post_id=?
		ORDER BY published DESC, id ASC`, postId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// AddLikeIfNotExist stores the like unless the author already likes the object (or the id is taken).
func (repo *Repo) AddLikeIfNotExist(like *Like) (isNew bool, err error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err = repo.db.Exec(`INSERT INTO likes (`+likeCols+`) VALUES(?, ?, ?, ?)`,
		like.Id, like.AuthorId, like.Object, like.Published)
	if err == nil {
		return true, nil
	}
	// Duplicate key: one like per author and object
	if isDuplicateKey(err) {
		return false, nil
	}
	return false, err
}

func (repo *Repo) GetLike(id string) (*Like, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	return noRowsToNil[Like](scanLike(repo.db.QueryRow(`SELECT `+likeCols+` FROM likes WHERE id=?`, id)))
}

func (repo *Repo) GetLikeByAuthor(authorId, object string) (*Like, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	row := repo.db.QueryRow(`SELECT `+likeCols+` FROM likes WHERE author_id=? AND object=?`, authorId, object)
	return noRowsToNil[Like](scanLike(row))
}

func (repo *Repo) DeleteLike(authorId, object string) (removed bool, err error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	var tx *sql.Tx
	if tx, err = repo.db.Begin(); err != nil {
		return false, err
	}
	defer rollback(tx)

	var likeId string
	row := tx.QueryRow(`SELECT id FROM likes WHERE author_id=? AND object=?`, authorId, object)
	if err = row.Scan(&likeId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if _, err = tx.Exec(`DELETE FROM likes WHERE id=?`, likeId); err != nil {
		return false, err
	}
	if _, err = tx.Exec(`DELETE FROM inbox_items WHERE item_type=? AND item_ref=?`, InboxLike, likeId); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (repo *Repo) GetLikesForObject(object string) ([]*Like, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query(`SELECT `+likeCols+` FROM likes WHERE object=?
		ORDER BY published DESC, id ASC`, object)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]*Like, 0)
	for rows.Next() {
		like, err := scanLike(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, like)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
