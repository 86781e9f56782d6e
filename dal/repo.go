package dal

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"github.com/mattn/go-sqlite3"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
	"sync"
)

const schemaVer = 1

//go:embed scripts/*
var scripts embed.FS

type IRepo interface {
	InitUpdateDb()

	UpsertAuthor(author *Author) error
	EnsureAuthor(id, host string) error
	GetAuthor(id string) (*Author, error)

	UpsertNode(node *Node) error
	AddNodeIfNotExist(node *Node) (isNew bool, err error)
	GetNodeByUsername(username string) (*Node, error)
	GetNodeByHost(host string) (*Node, error)
	IsHostDisabled(host string) (bool, error)
	SetNodeEnabled(baseUrl string, enabled bool) error

	GetOrCreateFollowRequest(followerId, followee, summary string) (req *FollowRequest, isNew bool, err error)
	GetFollowRequest(id int64) (*FollowRequest, error)
	GetFollowRequests(followerId, followee string) ([]*FollowRequest, error)
	ApproveFollowRequest(followerId, followerHost, followee string) (found bool, err error)
	DenyFollowRequest(followerId, followee string) (found bool, err error)
	DeleteFollowRelation(followerId, followee string) (removed bool, err error)
	AddFollowWithRequest(followerId, followerHost, followee, summary string) error
	RemoveFollow(followerId, followee string) (removed bool, err error)
	IsFollowing(followerId, followee string) (bool, error)
	GetFollowers(followee string) ([]*Author, error)
	GetRemoteFollowers(followee, localHost string) ([]string, error)
	GetLocalFollowers(followee, localHost string) ([]string, error)

	UpsertPost(post *Post) error
	GetPost(id string) (*Post, error)
	UpsertComment(comment *Comment) error
	GetComment(id string) (*Comment, error)
	GetCommentsForPost(postId string) ([]*Comment, error)
	AddLikeIfNotExist(like *Like) (isNew bool, err error)
	GetLike(id string) (*Like, error)
	GetLikeByAuthor(authorId, object string) (*Like, error)
	DeleteLike(authorId, object string) (removed bool, err error)
	GetLikesForObject(object string) ([]*Like, error)

	AddInboxItem(item *InboxItem) error
	RemoveInboxItem(ownerId string, itemType InboxItemType, itemRef string) error
	GetInboxItems(ownerId string) ([]*InboxItem, error)
}

type Repo struct {
	cfg    *shared.Config
	logger shared.ILogger
	db     *sql.DB
	muDb   sync.RWMutex
}

func NewRepo(cfg *shared.Config, logger shared.ILogger) IRepo {

	var err error
	var db *sql.DB

	// https://phiresky.github.io/blog/2020/sqlite-performance-tuning/
	// https://github.com/mattn/go-sqlite3/issues/1022#issuecomment-1067353980
	// _synchronous=1 is "normal"
	cstr := "file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_synchronous=1&_busy_timeout=5000"
	db, err = sql.Open("sqlite3", fmt.Sprintf(cstr, cfg.DbFile))
	if err != nil {
		logger.Errorf("Failed to open/create DB file: %s: %v", cfg.DbFile, err)
		panic(err)
	}

	repo := Repo{
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	return &repo
}

func (repo *Repo) InitUpdateDb() {

	dbVer := 0
	sysParamsExists := false
	var err error
	var rows *sql.Rows

	rows, err = repo.db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name='sys_params'")
	if err != nil {
		repo.logger.Errorf("Failed to check if 'sys_params' table exists: %v", err)
		panic(err)
	}
	for rows.Next() {
		sysParamsExists = true
	}
	_ = rows.Close()
	if !sysParamsExists {
		repo.logger.Printf("Database appears to be empty; current schema version is %d", schemaVer)
	} else {
		row := repo.db.QueryRow("SELECT val FROM sys_params WHERE name='schema_ver'")
		if err = row.Scan(&dbVer); err != nil {
			repo.logger.Errorf("Failed to query schema version: %v", err)
			panic(err)
		}
		repo.logger.Printf("Database is at version %d; current schema version is %d", dbVer, schemaVer)
	}
	for i := dbVer; i < schemaVer; i += 1 {
		nextVer := i + 1
		fn := fmt.Sprintf("scripts/create-%02d.sql", nextVer)
		repo.logger.Printf("Running %s", fn)
		var sqlBytes []byte
		if sqlBytes, err = scripts.ReadFile(fn); err != nil {
			repo.logger.Errorf("Failed to read init script %s: %v", fn, err)
			panic(err)
		}
		sqlStr := string(sqlBytes)
		if _, err = repo.db.Exec(sqlStr); err != nil {
			repo.logger.Errorf("Failed to execute init script %s: %v", fn, err)
			panic(err)
		}
		_, err = repo.db.Exec("UPDATE sys_params SET val=? WHERE name='schema_ver'", nextVer)
		if err != nil {
			repo.logger.Errorf("Failed to update schema_ver to %d: %v", nextVer, err)
			panic(err)
		}
	}
}

// Primary key or unique constraint violated
func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// MySQL would be mysql.MySQLError with Number == 1062
	return sqliteErr.Code == sqlite3.ErrConstraint &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

func nullIfEmpty(str string) interface{} {
	if str == "" {
		return nil
	}
	return str
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type rowScanner interface {
	Scan(dest ...any) error
}

func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
