package logic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mcmclean4/Social-Distribution-sub000/dal"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../mocks/mock_activity_sender.go -package mocks github.com/mcmclean4/Social-Distribution-sub000/logic IActivitySender

type IActivitySender interface {
	// Send POSTs an activity to an inbox, authenticating with the node's outbound credentials if it has any.
	// Any status of 300 or above is an error.
	Send(ctx context.Context, node *dal.Node, inboxUrl string, body []byte, timeout time.Duration, label string) error
}

const maxErrorBodyLen = 512

type activitySender struct {
	logger    shared.ILogger
	userAgent shared.IUserAgent
	metrics   IMetrics
	client    *http.Client
}

func NewActivitySender(
	logger shared.ILogger,
	userAgent shared.IUserAgent,
	metrics IMetrics,
) IActivitySender {
	// Following a redirect would turn the POST into a body-less GET
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &activitySender{logger, userAgent, metrics, client}
}

func (sender *activitySender) Send(
	ctx context.Context,
	node *dal.Node,
	inboxUrl string,
	body []byte,
	timeout time.Duration,
	label string,
) error {

	obs := sender.metrics.StartRequestOut(label)
	defer obs.Finish()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", inboxUrl, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("invalid inbox url '%s': %w", inboxUrl, err)
	}
	sender.userAgent.AddUserAgent(req)
	req.Header.Set("Content-Type", "application/json")
	if node != nil && node.OutUsername != "" {
		req.SetBasicAuth(node.OutUsername, node.OutPassword)
	}

	resp, err := sender.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		msg := fmt.Sprintf("got redirect %s from %s to '%s'", resp.Status, inboxUrl, resp.Header.Get("Location"))
		sender.logger.Warnf("Activity POST not delivered: %s", msg)
		return errors.New(msg)
	}
	if resp.StatusCode >= 400 {
		msg := fmt.Sprintf("got status %s from %s: response: %s", resp.Status, inboxUrl, respBody)
		sender.logger.Warnf("Activity POST failed: %s", msg)
		return errors.New(msg)
	}

	return nil
}
