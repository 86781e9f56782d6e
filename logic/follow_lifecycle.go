package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../mocks/mock_follow_lifecycle.go -package mocks github.com/mcmclean4/Social-Distribution-sub000/logic IFollowLifecycle

type IFollowLifecycle interface {
	// Follow delivers a follow activity to the target's inbox and, once the target's node accepts it,
	// records both a follow request and the follow itself.
	Follow(ctx context.Context, localSerial, targetId string) (*Problem, error)
	// Unfollow drops the local follow row; the target's node is not told.
	Unfollow(localSerial, targetId string) (*Problem, error)
}

type followLifecycle struct {
	cfg      *shared.Config
	logger   shared.ILogger
	repo     dal.IRepo
	sender   IActivitySender
	ingestor IIngestor
	idb      *shared.IdBuilder
}

func NewFollowLifecycle(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	sender IActivitySender,
	ingestor IIngestor,
) IFollowLifecycle {
	return &followLifecycle{cfg, logger, repo, sender, ingestor, shared.NewIdBuilder(cfg)}
}

func (fl *followLifecycle) Follow(ctx context.Context, localSerial, targetId string) (*Problem, error) {

	local, prob, err := lookupLocalAuthor(fl.repo, fl.idb, localSerial)
	if prob != nil || err != nil {
		return prob, err
	}
	targetHost, err := shared.GetHostName(targetId)
	if err != nil {
		return newProblem(ProblemValidation, "invalid target '%s'", targetId), nil
	}
	if targetId == local.Id {
		return newProblem(ProblemValidation, "authors cannot follow themselves"), nil
	}

	object := dto.AuthorRef{Type: "author", Id: targetId, Host: targetHost}
	target, err := fl.repo.GetAuthor(targetId)
	if err != nil {
		return nil, fmt.Errorf("failed to get target %s: %w", targetId, err)
	}
	if target != nil {
		object = *authorToRef(target)
	}
	act := &dto.FollowActivity{
		Kind:    dto.TypeFollow,
		Summary: fmt.Sprintf("%s wants to follow %s", displayName(local), displayNameRef(&object)),
		Actor:   *authorToRef(local),
		Object:  object,
	}
	body, err := dto.Serialize(act)
	if err != nil {
		return nil, err
	}

	if fl.idb.IsLocal(targetId) {
		prob, err = fl.deliverLocally(targetId, body)
	} else {
		prob, err = fl.deliverRemotely(ctx, targetId, targetHost, body)
	}
	if prob != nil || err != nil {
		return prob, err
	}

	if target == nil {
		if err = fl.repo.EnsureAuthor(targetId, targetHost); err != nil {
			return nil, fmt.Errorf("failed to store followed author %s: %w", targetId, err)
		}
	}
	err = fl.repo.AddFollowWithRequest(local.Id, shared.NormalizeHost(fl.cfg.Host), targetId, act.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to record follow: %w", err)
	}
	fl.logger.Infof("%s now follows %s", local.Id, targetId)
	return nil, nil
}

// Same outcome as an inbound POST, without the network hop.
func (fl *followLifecycle) deliverLocally(targetId string, body []byte) (*Problem, error) {
	serial, ok := fl.idb.AuthorSerial(targetId)
	if !ok {
		return newProblem(ProblemNotFound, "author not found"), nil
	}
	_, prob, err := fl.ingestor.Ingest(serial, nil, body)
	return prob, err
}

func (fl *followLifecycle) deliverRemotely(ctx context.Context, targetId, targetHost string, body []byte) (*Problem, error) {
	node, err := fl.repo.GetNodeByHost(targetHost)
	if err != nil {
		return nil, fmt.Errorf("failed to look up node for %s: %w", targetHost, err)
	}
	if node == nil {
		return newProblem(ProblemNotFound, "no node registered for %s", targetHost), nil
	}
	if !node.Enabled {
		return newProblem(ProblemTrustRejected, "node %s is disabled", node.BaseUrl), nil
	}
	timeout := time.Duration(fl.cfg.Delivery.FollowTimeoutSec) * time.Second
	err = fl.sender.Send(ctx, node, shared.InboxUrl(targetId), body, timeout, string(DeliverFollow))
	if err != nil {
		fl.logger.Warnf("Follow request to %s failed: %v", targetId, err)
		return newProblem(ProblemDelivery, "follow request could not be delivered"), nil
	}
	return nil, nil
}

func (fl *followLifecycle) Unfollow(localSerial, targetId string) (*Problem, error) {

	local, prob, err := lookupLocalAuthor(fl.repo, fl.idb, localSerial)
	if prob != nil || err != nil {
		return prob, err
	}
	removed, err := fl.repo.RemoveFollow(local.Id, targetId)
	if err != nil {
		return nil, fmt.Errorf("failed to remove follow: %w", err)
	}
	if !removed {
		return newProblem(ProblemNotFound, "not following %s", targetId), nil
	}
	fl.logger.Infof("%s unfollowed %s", local.Id, targetId)
	return nil, nil
}

func displayName(author *dal.Author) string {
	if author.DisplayName != "" {
		return author.DisplayName
	}
	return author.Id
}

func displayNameRef(ref *dto.AuthorRef) string {
	if ref.DisplayName != "" {
		return ref.DisplayName
	}
	return ref.Id
}
