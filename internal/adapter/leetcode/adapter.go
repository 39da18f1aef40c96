package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.PlatformLeetCode, New)
}

const allContestsQuery = `{ allContests { title titleSlug startTime duration } }`

// Adapter LeetCode GraphQL 偶发风控拒绝，抓不到时退化为周赛日程生成器，
// 因此 FetchContests 永不报错，也就不会触发上层重试
type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func New(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.ContestAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.New(time.Duration(cfg.Timeout)*time.Second, cfg.Proxy, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return "LeetCode"
}

// FetchContests 先走GraphQL，失败或无未来场次时用兜底生成器
func (a *Adapter) FetchContests(ctx context.Context) ([]model.NormalizedContest, error) {
	contests, err := a.fetchLive(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("LeetCode GraphQL抓取失败，使用兜底日程")
		return GenerateFallback(time.Now()), nil
	}
	if len(contests) == 0 {
		a.logger.Warn("LeetCode未返回未来场次，使用兜底日程")
		return GenerateFallback(time.Now()), nil
	}
	return contests, nil
}

func (a *Adapter) fetchLive(ctx context.Context) ([]model.NormalizedContest, error) {
	body, err := json.Marshal(map[string]string{"query": allContestsQuery})
	if err != nil {
		return nil, fmt.Errorf("构造查询失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求GraphQL失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GraphQL接口返回%d", resp.StatusCode)
	}

	var payload model.LeetCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析GraphQL响应失败: %w", err)
	}

	limit := a.cfg.Limit
	if limit <= 0 {
		limit = 8
	}
	now := time.Now().Unix()

	var contests []model.NormalizedContest
	for _, c := range payload.Data.AllContests {
		if c.StartTime <= now {
			continue
		}
		if len(contests) >= limit {
			break
		}
		contests = append(contests, model.NormalizedContest{
			Name:       c.Title,
			URL:        fmt.Sprintf("https://leetcode.com/contest/%s", c.TitleSlug),
			StartTime:  time.Unix(c.StartTime, 0).UTC(),
			Duration:   c.Duration,
			Platform:   a.GetName(),
			ExternalID: fmt.Sprintf("lc-%s", c.TitleSlug),
		})
	}

	return contests, nil
}
