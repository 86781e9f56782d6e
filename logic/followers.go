package logic

import (
	"fmt"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../mocks/mock_followers.go -package mocks github.com/mcmclean4/Social-Distribution-sub000/logic IFollowers

type IFollowers interface {
	Approve(targetSerial, followerId string) (*Problem, error)
	List(targetSerial string) (*dto.FollowersResp, *Problem, error)
	Remove(targetSerial, followerId string) (*Problem, error)
	Check(targetSerial, followerId string) (*dto.AuthorRef, *Problem, error)
}

type followers struct {
	logger shared.ILogger
	repo   dal.IRepo
	idb    *shared.IdBuilder
}

func NewFollowers(cfg *shared.Config, logger shared.ILogger, repo dal.IRepo) IFollowers {
	return &followers{logger, repo, shared.NewIdBuilder(cfg)}
}

func lookupLocalAuthor(repo dal.IRepo, idb *shared.IdBuilder, serial string) (*dal.Author, *Problem, error) {
	authorId := idb.AuthorUrl(serial)
	author, err := repo.GetAuthor(authorId)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get author %s: %w", authorId, err)
	}
	if author == nil || !author.IsLocal {
		return nil, newProblem(ProblemNotFound, "author not found"), nil
	}
	return author, nil, nil
}

func (f *followers) Approve(targetSerial, followerId string) (*Problem, error) {

	target, prob, err := lookupLocalAuthor(f.repo, f.idb, targetSerial)
	if prob != nil || err != nil {
		return prob, err
	}
	followerHost := shared.NormalizeHost(followerId)
	if followerHost == "" {
		return newProblem(ProblemValidation, "invalid follower id '%s'", followerId), nil
	}
	found, err := f.repo.ApproveFollowRequest(followerId, followerHost, target.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve follow request: %w", err)
	}
	if !found {
		return newProblem(ProblemNotFound, "no follow request from %s", followerId), nil
	}
	f.logger.Infof("%s approved follower %s", target.Id, followerId)
	return nil, nil
}

// List only returns followers with an author record on this node.
func (f *followers) List(targetSerial string) (*dto.FollowersResp, *Problem, error) {

	target, prob, err := lookupLocalAuthor(f.repo, f.idb, targetSerial)
	if prob != nil || err != nil {
		return nil, prob, err
	}
	authors, err := f.repo.GetFollowers(target.Id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get followers of %s: %w", target.Id, err)
	}
	resp := dto.FollowersResp{Type: "followers", Followers: make([]*dto.AuthorRef, 0, len(authors))}
	for _, author := range authors {
		resp.Followers = append(resp.Followers, authorToRef(author))
	}
	return &resp, nil, nil
}

func (f *followers) Remove(targetSerial, followerId string) (*Problem, error) {

	target, prob, err := lookupLocalAuthor(f.repo, f.idb, targetSerial)
	if prob != nil || err != nil {
		return prob, err
	}
	removed, err := f.repo.RemoveFollow(followerId, target.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to remove follower: %w", err)
	}
	if !removed {
		return newProblem(ProblemNotFound, "%s is not a follower", followerId), nil
	}
	f.logger.Infof("%s removed follower %s", target.Id, followerId)
	return nil, nil
}

func (f *followers) Check(targetSerial, followerId string) (*dto.AuthorRef, *Problem, error) {

	target, prob, err := lookupLocalAuthor(f.repo, f.idb, targetSerial)
	if prob != nil || err != nil {
		return nil, prob, err
	}
	following, err := f.repo.IsFollowing(followerId, target.Id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check follower: %w", err)
	}
	if !following {
		return nil, newProblem(ProblemNotFound, "%s is not a follower", followerId), nil
	}
	author, err := f.repo.GetAuthor(followerId)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get follower %s: %w", followerId, err)
	}
	if author == nil {
		return &dto.AuthorRef{Type: "author", Id: followerId, Host: shared.NormalizeHost(followerId)}, nil, nil
	}
	return authorToRef(author), nil, nil
}
