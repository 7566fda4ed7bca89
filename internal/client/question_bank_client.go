package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var ErrUnexpectedStatus = errors.New("question bank download returned unexpected status")

type QuestionBankClient struct {
	URL             string
	HTTPClient      *http.Client
	MaxRetries      uint64
	InitialInterval time.Duration
}

func NewQuestionBankClient(url string, timeoutSec int, maxRetries int) *QuestionBankClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &QuestionBankClient{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		MaxRetries:      uint64(maxRetries),
		InitialInterval: 500 * time.Millisecond,
	}
}

// Download fetches the raw bank document. Server errors and transport
// failures are retried; any other non-200 status fails immediately.
func (c *QuestionBankClient) Download(ctx context.Context) ([]byte, error) {
	var body []byte
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("构造下载请求失败: %w", err))
		}
		req.Header.Set("Accept", "application/json, text/plain, */*")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("下载题库请求失败: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
			if resp.StatusCode >= http.StatusInternalServerError {
				return err
			}
			return backoff.Permanent(err)
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("读取题库响应体失败: %w", err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.InitialInterval
	err := backoff.RetryNotify(op,
		backoff.WithContext(backoff.WithMaxRetries(policy, c.MaxRetries), ctx),
		func(e error, next time.Duration) {
			log.Printf("[BankClient] 第 %d 次下载失败: %v，%v 后重试...", attempt, e, next)
		})
	if err != nil {
		return nil, err
	}
	log.Printf("[BankClient] 题库下载完成 (Size: %d bytes)", len(body))
	return body, nil
}
