package model

// 各平台原始响应结构（只解析同步需要的字段，其余忽略）

// CodeforcesResponse Codeforces contest.list 接口外层
type CodeforcesResponse struct {
	Status string              `json:"status"` // OK / FAILED
	Result []CodeforcesContest `json:"result"`
}

// CodeforcesContest Codeforces 单场比赛
type CodeforcesContest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Phase            string `json:"phase"` // BEFORE / CODING / FINISHED ...
	DurationSeconds  int    `json:"durationSeconds"`
	StartTimeSeconds int64  `json:"startTimeSeconds"` // 可能缺失（如体验赛）
}

// AtCoderContest kenkoooo 社区镜像 contests.json 单条
type AtCoderContest struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	StartEpochSecond int64  `json:"start_epoch_second"`
	DurationSecond   int    `json:"duration_second"`
}

// LeetCodeResponse LeetCode GraphQL allContests 响应
type LeetCodeResponse struct {
	Data struct {
		AllContests []LeetCodeContest `json:"allContests"`
	} `json:"data"`
}

// LeetCodeContest LeetCode 单场比赛
type LeetCodeContest struct {
	Title     string `json:"title"`
	TitleSlug string `json:"titleSlug"`
	StartTime int64  `json:"startTime"` // epoch秒
	Duration  int    `json:"duration"`  // 秒
}

// CodeChefResponse CodeChef 比赛列表接口
type CodeChefResponse struct {
	FutureContests  []CodeChefContest `json:"future_contests"`
	PresentContests []CodeChefContest `json:"present_contests"`
}

// CodeChefContest CodeChef 单场比赛，时间字段有两套，优先 ISO
type CodeChefContest struct {
	ContestCode         string `json:"contest_code"`
	ContestName         string `json:"contest_name"`
	ContestStartDateISO string `json:"contest_start_date_iso"`
	ContestStartDate    string `json:"contest_start_date"`
	ContestDuration     string `json:"contest_duration"` // 分钟，字符串
}
