package dal

import (
	"database/sql"
	"errors"
)

const nodeCols = `id, base_url, host, COALESCE(username, ''), password_hash, out_username, out_password, enabled`

func scanNode(row rowScanner) (*Node, error) {
	var res Node
	var enabled int
	err := row.Scan(&res.Id, &res.BaseUrl, &res.Host, &res.Username, &res.PasswordHash,
		&res.OutUsername, &res.OutPassword, &enabled)
	if err != nil {
		return nil, err
	}
	res.Enabled = enabled != 0
	return &res, nil
}

func (repo *Repo) getNode(query string, args ...any) (*Node, error) {
	row := repo.db.QueryRow(query, args...)
	res, err := scanNode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

// UpsertNode creates or overwrites the node with the same base URL.
func (repo *Repo) UpsertNode(node *Node) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec(`INSERT INTO nodes
		(base_url, host, username, password_hash, out_username, out_password, enabled)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(base_url) DO UPDATE SET host=excluded.host, username=excluded.username,
			password_hash=excluded.password_hash, out_username=excluded.out_username,
			out_password=excluded.out_password, enabled=excluded.enabled`,
		node.BaseUrl, node.Host, nullIfEmpty(node.Username), node.PasswordHash,
		node.OutUsername, node.OutPassword, boolToInt(node.Enabled))
	return err
}

func (repo *Repo) AddNodeIfNotExist(node *Node) (isNew bool, err error) {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err = repo.db.Exec(`INSERT INTO nodes
		(base_url, host, username, password_hash, out_username, out_password, enabled)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		node.BaseUrl, node.Host, nullIfEmpty(node.Username), node.PasswordHash,
		node.OutUsername, node.OutPassword, boolToInt(node.Enabled))
	if err == nil {
		return true, nil
	}
	// Duplicate key: node with this base URL (or username) already exists
	if isDuplicateKey(err) {
		return false, nil
	}
	return false, err
}

func (repo *Repo) GetNodeByUsername(username string) (*Node, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	return repo.getNode(`SELECT `+nodeCols+` FROM nodes WHERE username=?`, username)
}

// GetNodeByHost returns the node for a host, preferring enabled nodes that have outbound credentials.
func (repo *Repo) GetNodeByHost(host string) (*Node, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	return repo.getNode(`SELECT `+nodeCols+` FROM nodes WHERE host=?
		ORDER BY enabled DESC, out_username<>'' DESC, id ASC LIMIT 1`, host)
}

func (repo *Repo) IsHostDisabled(host string) (bool, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	row := repo.db.QueryRow(`SELECT COUNT(*) FROM nodes WHERE host=? AND enabled=0`, host)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count != 0, nil
}

func (repo *Repo) SetNodeEnabled(baseUrl string, enabled bool) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec(`UPDATE nodes SET enabled=? WHERE base_url=?`, boolToInt(enabled), baseUrl)
	return err
}
