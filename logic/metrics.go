package logic

import (
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

type IMetrics interface {
	StartApiRequestIn(label string) IRequestObserver
	StartInboxRequestIn(label string) IRequestObserver
	StartRequestOut(label string) IRequestObserver
	ActivityIngested(actType string)
	InboxRejected(reason string)
	DeliverySent(kind string)
	DeliveryFailed(kind string)
	DeliveryDropped(kind string)
	DeliveryQueueLength(length int)
	ServiceStarted()
}

type IRequestObserver interface {
	Finish()
}

type metrics struct {
	cfg                 *shared.Config
	apiRequestsIn       *prometheus.HistogramVec
	inboxRequestsIn     *prometheus.HistogramVec
	requestsOut         *prometheus.HistogramVec
	activitiesIngested  *prometheus.CounterVec
	inboxRejected       *prometheus.CounterVec
	deliveriesSent      *prometheus.CounterVec
	deliveriesFailed    *prometheus.CounterVec
	deliveriesDropped   *prometheus.CounterVec
	deliveryQueueLength prometheus.Gauge
	serviceStarted      prometheus.Counter
}

func NewMetrics(cfg *shared.Config) IMetrics {

	res := metrics{}
	res.cfg = cfg

	res.apiRequestsIn = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "api_requests_in_duration",
		Help: "Duration in seconds of local API requests served.",
	}, []string{"label"})
	prometheus.Register(res.apiRequestsIn)

	res.inboxRequestsIn = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "inbox_requests_in_duration",
		Help: "Duration in seconds of inbox and follower requests served.",
	}, []string{"label"})
	prometheus.Register(res.inboxRequestsIn)

	res.requestsOut = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "node_requests_out_duration",
		Help: "Duration in seconds of requests made to peer nodes.",
	}, []string{"label"})
	prometheus.Register(res.requestsOut)

	res.activitiesIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "activities_ingested",
		Help: "Number of inbound activities applied, by type",
	}, []string{"type"})
	prometheus.Register(res.activitiesIngested)

	res.inboxRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inbox_rejected",
		Help: "Number of inbound inbox requests rejected, by reason",
	}, []string{"reason"})
	prometheus.Register(res.inboxRejected)

	res.deliveriesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deliveries_sent",
		Help: "Number of activities delivered to remote inboxes",
	}, []string{"kind"})
	prometheus.Register(res.deliveriesSent)

	res.deliveriesFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deliveries_failed",
		Help: "Number of failed deliveries to remote inboxes",
	}, []string{"kind"})
	prometheus.Register(res.deliveriesFailed)

	res.deliveriesDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deliveries_dropped",
		Help: "Number of deliveries dropped because the queue was full",
	}, []string{"kind"})
	prometheus.Register(res.deliveriesDropped)

	res.deliveryQueueLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "delivery_queue_length",
		Help: "Items waiting in the delivery queue",
	})
	prometheus.Register(res.deliveryQueueLength)

	res.serviceStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "service_started",
		Help: "Service has started up",
	})
	prometheus.Register(res.serviceStarted)

	return &res
}

type requestObserver struct {
	label string
	start time.Time
	hgvec *prometheus.HistogramVec
}

func (ro *requestObserver) Finish() {
	now := time.Now()
	elapsed := float64(now.UnixMilli()-ro.start.UnixMilli()) / 1000.0
	ro.hgvec.WithLabelValues(ro.label).Observe(elapsed)
}

func (m *metrics) StartApiRequestIn(label string) IRequestObserver {
	return &requestObserver{label, time.Now(), m.apiRequestsIn}
}

func (m *metrics) StartInboxRequestIn(label string) IRequestObserver {
	return &requestObserver{label, time.Now(), m.inboxRequestsIn}
}

func (m *metrics) StartRequestOut(label string) IRequestObserver {
	return &requestObserver{label, time.Now(), m.requestsOut}
}

func (m *metrics) ActivityIngested(actType string) {
	m.activitiesIngested.WithLabelValues(actType).Add(1)
}

func (m *metrics) InboxRejected(reason string) {
	m.inboxRejected.WithLabelValues(reason).Add(1)
}

func (m *metrics) DeliverySent(kind string) {
	m.deliveriesSent.WithLabelValues(kind).Add(1)
}

func (m *metrics) DeliveryFailed(kind string) {
	m.deliveriesFailed.WithLabelValues(kind).Add(1)
}

func (m *metrics) DeliveryDropped(kind string) {
	m.deliveriesDropped.WithLabelValues(kind).Add(1)
}

func (m *metrics) DeliveryQueueLength(length int) {
	m.deliveryQueueLength.Set(float64(length))
}

func (m *metrics) ServiceStarted() {
	m.serviceStarted.Add(1)
}
