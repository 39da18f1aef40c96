package model

// 平台key（配置、偏好、自动订阅统一用小写key；展示名只在Contest.Platform里）
const (
	PlatformCodeforces = "codeforces"
	PlatformAtCoder    = "atcoder"
	PlatformLeetCode   = "leetcode"
	PlatformCodeChef   = "codechef"
)

// platformKeys 展示名→key 固定映射表，不在表内的平台不参与自动订阅
var platformKeys = map[string]string{
	"CodeForces": PlatformCodeforces,
	"AtCoder":    PlatformAtCoder,
	"LeetCode":   PlatformLeetCode,
	"CodeChef":   PlatformCodeChef,
}

// PlatformKey 展示名转小写key
func PlatformKey(displayName string) (string, bool) {
	key, ok := platformKeys[displayName]
	return key, ok
}
