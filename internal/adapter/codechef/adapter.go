package codechef

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.PlatformCodeChef, New)
}

const listPath = "/list/contests/all?sort_by=START&sorting_order=asc&offset=0&mode=all"

// Adapter CodeChef 接口偶发5xx/风控，抓不到时退化为 Starters 日程生成器，
// 与 LeetCode 适配器同策略：FetchContests 永不报错
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
	return "CodeChef"
}

// FetchContests 先走官方列表接口，失败或无数据时用兜底生成器
func (a *Adapter) FetchContests(ctx context.Context) ([]model.NormalizedContest, error) {
	contests, err := a.fetchLive(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("CodeChef接口抓取失败，使用兜底日程")
		return GenerateFallback(time.Now()), nil
	}
	if len(contests) == 0 {
		a.logger.Warn("CodeChef未返回可用场次，使用兜底日程")
		return GenerateFallback(time.Now()), nil
	}
	return contests, nil
}

func (a *Adapter) fetchLive(ctx context.Context) ([]model.NormalizedContest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+listPath, nil)
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

	var payload model.CodeChefResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析比赛列表失败: %w", err)
	}

	// 未来场次在前，进行中的拼在后面
	upcoming := append([]model.CodeChefContest{}, payload.FutureContests...)
	upcoming = append(upcoming, payload.PresentContests...)

	limit := a.cfg.Limit
	if limit <= 0 {
		limit = 10
	}

	var contests []model.NormalizedContest
	for _, c := range upcoming {
		if len(contests) >= limit {
			break
		}
		start, err := parseStartTime(c)
		if err != nil {
			a.logger.WithError(err).WithField("contest", c.ContestCode).Warn("开赛时间解析失败，跳过")
			continue
		}

		// contest_duration 是分钟字符串，缺省按120分钟
		minutes, err := strconv.Atoi(c.ContestDuration)
		if err != nil || minutes <= 0 {
			minutes = 120
		}

		contests = append(contests, model.NormalizedContest{
			Name:       c.ContestName,
			URL:        fmt.Sprintf("https://www.codechef.com/%s", c.ContestCode),
			StartTime:  start,
			Duration:   minutes * 60,
			Platform:   a.GetName(),
			ExternalID: fmt.Sprintf("cc-%s", c.ContestCode),
		})
	}

	return contests, nil
}

// parseStartTime 优先ISO字段，退回旧格式字段
func parseStartTime(c model.CodeChefContest) (time.Time, error) {
	if c.ContestStartDateISO != "" {
		if t, err := time.Parse(time.RFC3339, c.ContestStartDateISO); err == nil {
			return t.UTC(), nil
		}
	}
	t, err := time.Parse("02 Jan 2006 15:04:05", c.ContestStartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("无法解析时间 %q / %q", c.ContestStartDateISO, c.ContestStartDate)
	}
	return t.UTC(), nil
}
