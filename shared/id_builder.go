package shared

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

type IdBuilder struct {
	Scheme string
	Host   string
}

func NewIdBuilder(cfg *Config) *IdBuilder {
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return &IdBuilder{Scheme: scheme, Host: cfg.Host}
}

func (idb *IdBuilder) NewSerial() string {
	return uuid.NewString()
}

func (idb *IdBuilder) SiteUrl() string {
	return fmt.Sprintf("%s://%s", idb.Scheme, idb.Host)
}

func (idb *IdBuilder) AuthorUrl(serial string) string {
	return fmt.Sprintf("%s://%s/authors/%s", idb.Scheme, idb.Host, serial)
}

func (idb *IdBuilder) AuthorInbox(serial string) string {
	return InboxUrl(idb.AuthorUrl(serial))
}

func (idb *IdBuilder) PostUrl(authorId, serial string) string {
	return fmt.Sprintf("%s/posts/%s", strings.TrimRight(authorId, "/"), serial)
}

func (idb *IdBuilder) CommentedUrl(authorId, serial string) string {
	return fmt.Sprintf("%s/commented/%s", strings.TrimRight(authorId, "/"), serial)
}

func (idb *IdBuilder) LikeUrl(authorId, serial string) string {
	return fmt.Sprintf("%s/liked/%s", strings.TrimRight(authorId, "/"), serial)
}

// IsLocal tells whether an FQID is hosted on this node.
func (idb *IdBuilder) IsLocal(fqid string) bool {
	host, err := GetHostName(fqid)
	if err != nil {
		return false
	}
	return host == NormalizeHost(idb.Host)
}

// AuthorSerial extracts the local serial from an author FQID on this node.
// Returns false if the id is foreign or not an author id.
func (idb *IdBuilder) AuthorSerial(authorId string) (string, bool) {
	if !idb.IsLocal(authorId) {
		return "", false
	}
	parsed, err := url.Parse(authorId)
	if err != nil {
		return "", false
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != "authors" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
