// Package httpclient 上游 JSON 接口的公共 GET 客户端（代理、超时、gzip）
package httpclient

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ParlaySync/internal/config"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 20 * time.Second
	// 错误响应体只截取前 512 字节放进错误信息
	errorBodyLimit = 512
)

// StatusError 上游返回非 2xx
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// Client 只做 GET + JSON 解码
type Client struct {
	http   *http.Client
	logger *logrus.Logger
}

// New 按数据源配置构建客户端；代理地址非法时忽略代理继续
func New(cfg *config.SourceConfig, logger *logrus.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.IdleConnTimeout = 30 * time.Second
	// gzip 在 GetJSON 里手动解压
	transport.DisableCompression = true

	if cfg.Proxy != "" {
		if proxyURL, err := url.Parse(cfg.Proxy); err != nil {
			logger.WithError(err).WithField("proxy", cfg.Proxy).Warn("代理地址解析失败，将不使用代理")
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.WithField("proxy", cfg.Proxy).Info("HTTP客户端已配置代理")
		}
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:   &http.Client{Timeout: timeout, Transport: transport},
		logger: logger,
	}
}

// GetJSON 请求 rawURL 并把响应体解码到 out；非 2xx 返回 *StatusError
func (c *Client) GetJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).Warn("关闭响应体失败")
		}
	}()

	body, err := decodedBody(resp)
	if err != nil {
		return fmt.Errorf("gzip解压失败: %w", err)
	}
	if gz, ok := body.(*gzip.Reader); ok {
		defer gz.Close()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(body, errorBodyLimit))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	c.logger.WithField("url", rawURL).Debug("上游请求成功")
	return nil
}

func decodedBody(resp *http.Response) (io.Reader, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return resp.Body, nil
	}
	return gzip.NewReader(resp.Body)
}
