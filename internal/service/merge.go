package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ContestSync/internal/model"
)

// MergeContests 合并多来源的规范化赛事列表并按开赛时间升序输出
// 入参顺序即来源优先级：同键冲突时排前面的列表赢
//
// 去重键是严格键：名称（去首尾空白、小写）+ 开赛时刻（RFC3339）。
// 已知局限：同一场比赛在不同来源若开赛时间差哪怕一秒（常见于时区
// 解析偏差）就不会合并；刻意不放宽，放宽会引入误合并风险
func MergeContests(lists ...[]model.NormalizedContest) []model.NormalizedContest {
	seen := make(map[string]bool)
	var merged []model.NormalizedContest

	for _, list := range lists {
		for _, c := range list {
			key := mergeKey(c.Name, c.StartTime)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, c)
		}
	}

	// 稳定排序：同一开赛时刻保持输入顺序
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartTime.Before(merged[j].StartTime)
	})
	return merged
}

func mergeKey(name string, start time.Time) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return fmt.Sprintf("%s|%s", normalized, start.UTC().Format(time.RFC3339))
}
