package leetcode

import (
	"fmt"
	"time"

	"ContestSync/internal/model"
)

// 周赛编号锚点：2023-01-01 前后对应 Weekly Contest 330 附近
var weeklyAnchor = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	weeklyAnchorNumber = 330
	weeklyDuration     = 5400 // 90分钟
)

// GenerateFallback 按已知周赛日程（每周日10:30 UTC）生成未来4场，
// 纯计算无I/O，输入相同输出相同
func GenerateFallback(now time.Time) []model.NormalizedContest {
	now = now.UTC()
	var contests []model.NormalizedContest

	for i := 0; i < 4; i++ {
		daysUntilSunday := (7 - int(now.Weekday())) % 7
		day := now.AddDate(0, 0, daysUntilSunday+i*7)
		start := time.Date(day.Year(), day.Month(), day.Day(), 10, 30, 0, 0, time.UTC)
		if !start.After(now) {
			continue
		}

		weeksSinceAnchor := int(start.Sub(weeklyAnchor).Hours() / (24 * 7))
		weekNum := weeksSinceAnchor + weeklyAnchorNumber
		contests = append(contests, model.NormalizedContest{
			Name:       fmt.Sprintf("Weekly Contest %d", weekNum),
			URL:        fmt.Sprintf("https://leetcode.com/contest/weekly-contest-%d", weekNum),
			StartTime:  start,
			Duration:   weeklyDuration,
			Platform:   "LeetCode",
			ExternalID: fmt.Sprintf("lc-weekly-contest-%d", weekNum),
		})
	}

	return contests
}
