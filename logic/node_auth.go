package logic

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../mocks/mock_node_authenticator.go -package mocks github.com/mcmclean4/Social-Distribution-sub000/logic INodeAuthenticator

type INodeAuthenticator interface {
	// Authenticate resolves the peer node behind a request's Basic credentials.
	// No Authorization header at all yields (nil, nil, nil); the caller decides if anonymous is acceptable.
	Authenticate(r *http.Request) (*dal.Node, *Problem, error)
	// IsHostTrusted is false if a disabled node is registered for the host.
	IsHostTrusted(hostOrUrl string) (bool, error)
	SeedNodes(nodes []shared.NodeSecret) error
}

var bcryptCost = bcrypt.DefaultCost

type nodeAuthenticator struct {
	logger shared.ILogger
	repo   dal.IRepo
}

func NewNodeAuthenticator(logger shared.ILogger, repo dal.IRepo) INodeAuthenticator {
	return &nodeAuthenticator{logger, repo}
}

func (na *nodeAuthenticator) Authenticate(r *http.Request) (*dal.Node, *Problem, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil, nil
	}
	if !strings.HasPrefix(strings.ToLower(authHeader), "basic ") {
		return nil, newProblem(ProblemAuthentication, "unsupported authorization scheme"), nil
	}
	username, password, ok := r.BasicAuth()
	if !ok || username == "" {
		return nil, newProblem(ProblemAuthentication, "malformed basic credentials"), nil
	}

	node, err := na.repo.GetNodeByUsername(username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up node for user '%s': %w", username, err)
	}
	if node == nil || node.PasswordHash == "" {
		na.logger.Infof("Rejecting credentials for unknown node user '%s'", username)
		return nil, newProblem(ProblemAuthentication, "invalid credentials"), nil
	}
	if err = bcrypt.CompareHashAndPassword([]byte(node.PasswordHash), []byte(password)); err != nil {
		na.logger.Infof("Rejecting wrong password for node user '%s'", username)
		return nil, newProblem(ProblemAuthentication, "invalid credentials"), nil
	}
	if !node.Enabled {
		na.logger.Infof("Rejecting request from disabled node %s", node.BaseUrl)
		return nil, newProblem(ProblemDisabledNode, "node is disabled"), nil
	}
	return node, nil, nil
}

func (na *nodeAuthenticator) IsHostTrusted(hostOrUrl string) (bool, error) {
	host := shared.NormalizeHost(hostOrUrl)
	if host == "" {
		return true, nil
	}
	disabled, err := na.repo.IsHostDisabled(host)
	if err != nil {
		return false, err
	}
	return !disabled, nil
}

// SeedNodes stores the configured peers, hashing the credentials they present to us.
func (na *nodeAuthenticator) SeedNodes(nodes []shared.NodeSecret) error {
	for _, ns := range nodes {
		host := shared.NormalizeHost(ns.BaseUrl)
		if host == "" {
			return fmt.Errorf("node has invalid base URL '%s'", ns.BaseUrl)
		}
		node := dal.Node{
			BaseUrl:     strings.TrimRight(ns.BaseUrl, "/"),
			Host:        host,
			Username:    ns.Username,
			OutUsername: ns.OutUsername,
			OutPassword: ns.OutPassword,
			Enabled:     ns.Enabled,
		}
		if ns.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(ns.Password), bcryptCost)
			if err != nil {
				return fmt.Errorf("failed to hash password for node %s: %w", ns.BaseUrl, err)
			}
			node.PasswordHash = string(hash)
		}
		if err := na.repo.UpsertNode(&node); err != nil {
			return fmt.Errorf("failed to store node %s: %w", ns.BaseUrl, err)
		}
		na.logger.Infof("Registered node %s (enabled: %v)", node.BaseUrl, node.Enabled)
	}
	return nil
}
