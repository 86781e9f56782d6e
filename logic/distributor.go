package logic

import (
	"context"
	"sync"
	"time"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/dto"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
	"github.com/spaolacci/murmur3"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../mocks/mock_distributor.go -package mocks github.com/mcmclean4/Social-Distribution-sub000/logic IDistributor

type DeliveryKind string

const (
	DeliverLike    DeliveryKind = "like"
	DeliverComment DeliveryKind = "comment"
	DeliverPost    DeliveryKind = "post"
	DeliverFollow  DeliveryKind = "follow"
)

type IDistributor interface {
	// Distribute queues the payload for every remote follower of ownerId, except the payload's own actor
	// and followers on the actor's host. Returns without waiting for deliveries.
	Distribute(payload dto.Activity, ownerId string, kind DeliveryKind)
	// DeliverTo queues the payload for one recipient's inbox.
	DeliverTo(payload dto.Activity, recipientId string, kind DeliveryKind)
	Start()
	Stop(ctx context.Context) error
}

type deliveryJob struct {
	key      uint64
	kind     DeliveryKind
	node     *dal.Node
	inboxUrl string
	body     []byte
}

type distributor struct {
	cfg      *shared.Config
	logger   shared.ILogger
	repo     dal.IRepo
	sender   IActivitySender
	metrics  IMetrics
	queue    chan *deliveryJob
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	muState  sync.RWMutex
	started  bool
	stopped  bool
	muFlight sync.Mutex
	inFlight map[uint64]struct{}
}

func NewDistributor(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	sender IActivitySender,
	metrics IMetrics,
) IDistributor {
	ctx, cancel := context.WithCancel(context.Background())
	return &distributor{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		sender:   sender,
		metrics:  metrics,
		queue:    make(chan *deliveryJob, cfg.Delivery.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
		inFlight: make(map[uint64]struct{}),
	}
}

func (d *distributor) Start() {
	d.muState.Lock()
	defer d.muState.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	for i := 0; i < d.cfg.Delivery.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.logger.Infof("Started %d delivery workers", d.cfg.Delivery.Workers)
}

// Stop closes the queue and waits for the workers to drain it. If ctx expires first,
// in-flight requests are cancelled.
func (d *distributor) Stop(ctx context.Context) error {
	d.muState.Lock()
	if d.stopped {
		d.muState.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.muState.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *distributor) worker() {
	defer d.wg.Done()
	for job := range d.queue {
		d.metrics.DeliveryQueueLength(len(d.queue))
		d.deliver(job)
	}
}

func (d *distributor) deliver(job *deliveryJob) {
	defer d.release(job.key)

	err := d.sender.Send(d.ctx, job.node, job.inboxUrl, job.body, d.timeout(job.kind), string(job.kind))
	if err != nil {
		d.logger.Warnf("Failed to deliver %s to %s: %v", job.kind, job.inboxUrl, err)
		d.metrics.DeliveryFailed(string(job.kind))
		return
	}
	d.logger.Debugf("Delivered %s to %s", job.kind, job.inboxUrl)
	d.metrics.DeliverySent(string(job.kind))
}

func (d *distributor) timeout(kind DeliveryKind) time.Duration {
	var sec int
	switch kind {
	case DeliverLike:
		sec = d.cfg.Delivery.LikeTimeoutSec
	case DeliverComment:
		sec = d.cfg.Delivery.CommentTimeoutSec
	case DeliverFollow:
		sec = d.cfg.Delivery.FollowTimeoutSec
	default:
		sec = d.cfg.Delivery.PostTimeoutSec
	}
	return time.Duration(sec) * time.Second
}

func (d *distributor) Distribute(payload dto.Activity, ownerId string, kind DeliveryKind) {

	owner, err := d.repo.GetAuthor(ownerId)
	if err != nil {
		d.logger.Errorf("Failed to look up content owner %s: %v", ownerId, err)
		return
	}
	if owner == nil {
		d.logger.Warnf("Not distributing %s: content owner %s is unknown", kind, ownerId)
		return
	}

	origin := payload.Origin()
	originId, originHost := "", ""
	if origin != nil {
		originId = origin.Id
		originHost = shared.NormalizeHost(origin.Host)
		if originHost == "" {
			originHost = shared.NormalizeHost(origin.Id)
		}
	}

	body, err := dto.Serialize(payload)
	if err != nil {
		d.logger.Errorf("Failed to serialize %s for distribution: %v", kind, err)
		return
	}

	followers, err := d.repo.GetRemoteFollowers(owner.Id, shared.NormalizeHost(d.cfg.Host))
	if err != nil {
		d.logger.Errorf("Failed to get remote followers of %s: %v", owner.Id, err)
		return
	}

	for _, followerId := range followers {
		if followerId == originId {
			continue
		}
		followerHost, err := shared.GetHostName(followerId)
		if err != nil {
			d.logger.Warnf("Skipping follower with invalid id %s: %v", followerId, err)
			continue
		}
		if followerHost == originHost {
			continue
		}
		d.enqueueFor(followerId, followerHost, body, kind)
	}
}

func (d *distributor) DeliverTo(payload dto.Activity, recipientId string, kind DeliveryKind) {
	recipientHost, err := shared.GetHostName(recipientId)
	if err != nil {
		d.logger.Warnf("Not delivering %s to invalid recipient %s: %v", kind, recipientId, err)
		return
	}
	body, err := dto.Serialize(payload)
	if err != nil {
		d.logger.Errorf("Failed to serialize %s for delivery: %v", kind, err)
		return
	}
	d.enqueueFor(recipientId, recipientHost, body, kind)
}

func (d *distributor) enqueueFor(recipientId, recipientHost string, body []byte, kind DeliveryKind) {
	node, err := d.repo.GetNodeByHost(recipientHost)
	if err != nil {
		d.logger.Errorf("Failed to look up node for %s: %v", recipientHost, err)
		return
	}
	if node == nil {
		d.logger.Infof("Skipping %s: no node registered for host %s", recipientId, recipientHost)
		return
	}
	if !node.Enabled {
		d.logger.Infof("Skipping %s: node %s is disabled", recipientId, node.BaseUrl)
		return
	}
	// Peers reject unauthenticated inbox POSTs
	if node.OutUsername == "" {
		d.logger.Infof("Skipping %s: node %s has no outbound credentials", recipientId, node.BaseUrl)
		return
	}
	inboxUrl := shared.InboxUrl(recipientId)
	d.enqueue(&deliveryJob{
		key:      deliveryKey(inboxUrl, body),
		kind:     kind,
		node:     node,
		inboxUrl: inboxUrl,
		body:     body,
	})
}

func deliveryKey(inboxUrl string, body []byte) uint64 {
	h := murmur3.New64()
	h.Write([]byte(inboxUrl))
	h.Write([]byte{0})
	h.Write(body)
	return h.Sum64()
}

func (d *distributor) enqueue(job *deliveryJob) {

	d.muFlight.Lock()
	if _, exists := d.inFlight[job.key]; exists {
		d.muFlight.Unlock()
		d.logger.Debugf("Identical %s to %s already in flight", job.kind, job.inboxUrl)
		return
	}
	d.inFlight[job.key] = struct{}{}
	d.muFlight.Unlock()

	d.muState.RLock()
	defer d.muState.RUnlock()

	if d.stopped {
		d.release(job.key)
		d.logger.Warnf("Dropping %s to %s: distributor stopped", job.kind, job.inboxUrl)
		d.metrics.DeliveryDropped(string(job.kind))
		return
	}
	select {
	case d.queue <- job:
		d.metrics.DeliveryQueueLength(len(d.queue))
	default:
		d.release(job.key)
		d.logger.Warnf("Dropping %s to %s: delivery queue full", job.kind, job.inboxUrl)
		d.metrics.DeliveryDropped(string(job.kind))
	}
}

func (d *distributor) release(key uint64) {
	d.muFlight.Lock()
	delete(d.inFlight, key)
	d.muFlight.Unlock()
}
