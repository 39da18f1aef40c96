package codeforces

import (
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
	adapter.Register(model.PlatformCodeforces, New)
}

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

// GetName ========== 实现ContestAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "CodeForces"
}

// FetchContests 拉取 contest.list 并过滤出未开始/进行中的比赛
func (a *Adapter) FetchContests(ctx context.Context) ([]model.NormalizedContest, error) {
	listURL := fmt.Sprintf("%s/contest.list", a.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取比赛列表失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("比赛列表接口返回%d", resp.StatusCode)
	}

	var payload model.CodeforcesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析比赛列表失败: %w", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("接口状态异常: %s", payload.Status)
	}

	limit := a.cfg.Limit
	if limit <= 0 {
		limit = 20
	}

	var contests []model.NormalizedContest
	for _, c := range payload.Result {
		// 只要 BEFORE / CODING 两个阶段，已结束的不进库
		if c.Phase != "BEFORE" && c.Phase != "CODING" {
			continue
		}
		if len(contests) >= limit {
			break
		}

		start := time.Now().UTC()
		if c.StartTimeSeconds > 0 {
			start = time.Unix(c.StartTimeSeconds, 0).UTC()
		}
		contests = append(contests, model.NormalizedContest{
			Name:       c.Name,
			URL:        fmt.Sprintf("https://codeforces.com/contest/%d", c.ID),
			StartTime:  start,
			Duration:   c.DurationSeconds,
			Platform:   a.GetName(),
			ExternalID: fmt.Sprintf("cf-%d", c.ID),
		})
	}

	return contests, nil
}
