package dal

import (
	"database/sql"
	"errors"
	"time"
)

const authorCols = `id, host, display_name, github, profile_image, page, is_local, created_at, updated_at`

func scanAuthor(row rowScanner) (*Author, error) {
	var res Author
	var isLocal int
	err := row.Scan(&res.Id, &res.Host, &res.DisplayName, &res.Github, &res.ProfileImage, &res.Page,
		&isLocal, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.IsLocal = isLocal != 0
	return &res, nil
}

// UpsertAuthor creates the author or refreshes its profile fields. A stored local author never becomes remote.
func (repo *Repo) UpsertAuthor(author *Author) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	now := time.Now().UTC()
	_, err := repo.db.Exec(`INSERT INTO authors (`+authorCols+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET host=excluded.host, display_name=excluded.display_name,
			github=excluded.github, profile_image=excluded.profile_image, page=excluded.page,
			is_local=MAX(authors.is_local, excluded.is_local), updated_at=excluded.updated_at`,
		author.Id, author.Host, author.DisplayName, author.Github, author.ProfileImage, author.Page,
		boolToInt(author.IsLocal), now, now)
	return err
}

// EnsureAuthor adds a remote placeholder if no author with this id is known yet.
func (repo *Repo) EnsureAuthor(id, host string) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	now := time.Now().UTC()
	_, err := repo.db.Exec(`INSERT INTO authors (id, host, created_at, updated_at) VALUES(?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`, id, host, now, now)
	return err
}

func (repo *Repo) GetAuthor(id string) (*Author, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	row := repo.db.QueryRow(`SELECT `+authorCols+` FROM authors WHERE id=?`, id)
	res, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}
