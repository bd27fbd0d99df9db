package bls

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	gbytes "github.com/labstack/gommon/bytes"
	"github.com/ougirez/cpi/internal/pkg/logger"
)

const (
	DefaultBaseURL = "https://download.bls.gov/pub/time.series/cu"

	FileAreas         = "cu.area"
	FileItems         = "cu.item"
	FilePeriods       = "cu.period"
	FilePeriodicities = "cu.periodicity"
	FileSeries        = "cu.series"

	defaultRetries = 10
	retryInterval  = 10 * time.Millisecond
)

type Config struct {
	BaseURL string
	// BLS отвечает 403 на запросы без User-Agent с контактами.
	UserAgent  string
	Retries    uint64
	HTTPClient *http.Client
}

type Client struct {
	baseURL    *url.URL
	userAgent  string
	retries    uint64
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Retries == 0 {
		cfg.Retries = defaultRetries
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 5 * time.Minute}
	}

	u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	return &Client{
		baseURL:    u,
		userAgent:  cfg.UserAgent,
		retries:    cfg.Retries,
		httpClient: cfg.HTTPClient,
	}, nil
}

// Fetch скачивает файл целиком, повторяя запрос при ошибках и не-200 ответах.
func (c *Client) Fetch(ctx context.Context, name string) ([]byte, error) {
	fileURL := c.baseURL.JoinPath(name).String()

	var body []byte
	err := backoff.Retry(
		func() error {
			data, err := c.get(ctx, fileURL)
			if err != nil {
				return err
			}
			body = data
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), c.retries),
			ctx,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}

	logger.Debugf(ctx, "downloaded %s, %s", name, gbytes.Format(int64(len(body))))
	return body, nil
}

func (c *Client) Open(ctx context.Context, name string) (io.Reader, error) {
	data, err := c.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// ListFiles разбирает html листинг директории и возвращает имена файлов в ней.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	r, err := c.Open(ctx, "/")
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	dir := strings.TrimSuffix(c.baseURL.Path, "/")
	files := make([]string, 0, 64)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		ref, parseErr := url.Parse(href)
		if parseErr != nil {
			return
		}

		p := ref.Path
		if !strings.HasPrefix(p, "/") {
			p = path.Join(dir, p)
		}
		if path.Dir(p) != dir || strings.HasSuffix(href, "/") {
			// скипаем родительскую директорию и поддиректории
			return
		}
		files = append(files, path.Base(p))
	})

	return files, nil
}

func (c *Client) get(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Get: %w", err)
	}
	defer resp.Body.Close()

	// Проверяем статус ответа, он должен быть 200 OK
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
