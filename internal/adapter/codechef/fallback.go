package codechef

import (
	"fmt"
	"time"

	"ContestSync/internal/model"
)

const (
	startersAnchorNumber = 170  // 当前 Starters 期数附近的锚点
	startersDuration     = 7200 // 2小时
)

// GenerateFallback 按 Starters 固定日程（每周三14:30 UTC）生成未来4场，
// 纯计算无I/O
func GenerateFallback(now time.Time) []model.NormalizedContest {
	now = now.UTC()
	var contests []model.NormalizedContest

	for i := 0; i < 4; i++ {
		daysUntilWed := (int(time.Wednesday) - int(now.Weekday()) + 7) % 7
		if daysUntilWed == 0 {
			daysUntilWed = 7
		}
		day := now.AddDate(0, 0, daysUntilWed+i*7)
		start := time.Date(day.Year(), day.Month(), day.Day(), 14, 30, 0, 0, time.UTC)
		if !start.After(now) {
			continue
		}

		num := startersAnchorNumber + i
		contests = append(contests, model.NormalizedContest{
			Name:       fmt.Sprintf("Starters %d", num),
			URL:        "https://www.codechef.com/contests",
			StartTime:  start,
			Duration:   startersDuration,
			Platform:   "CodeChef",
			ExternalID: fmt.Sprintf("cc-starters-%d", num),
		})
	}

	return contests
}
