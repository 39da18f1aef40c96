package atcoder

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
	adapter.Register(model.PlatformAtCoder, New)
}

// Adapter AtCoder 官方无公开比赛API，走 kenkoooo 社区镜像的 contests.json
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
	return "AtCoder"
}

// FetchContests 拉取全量比赛表，只保留未来场次
func (a *Adapter) FetchContests(ctx context.Context) ([]model.NormalizedContest, error) {
	listURL := fmt.Sprintf("%s/contests.json", a.cfg.BaseURL)
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

	var raw []model.AtCoderContest
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("解析比赛列表失败: %w", err)
	}

	limit := a.cfg.Limit
	if limit <= 0 {
		limit = 10
	}
	now := time.Now().Unix()

	var contests []model.NormalizedContest
	for _, c := range raw {
		if c.StartEpochSecond <= now {
			continue
		}
		if len(contests) >= limit {
			break
		}
		contests = append(contests, model.NormalizedContest{
			Name:       c.Title,
			URL:        fmt.Sprintf("https://atcoder.jp/contests/%s", c.ID),
			StartTime:  time.Unix(c.StartEpochSecond, 0).UTC(),
			Duration:   c.DurationSecond,
			Platform:   a.GetName(),
			ExternalID: fmt.Sprintf("ac-%s", c.ID),
		})
	}

	return contests, nil
}
