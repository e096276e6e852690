package util

import "strings"

// IsEmptyOrNonsense 空白、少于 3 个字符或不含任何 ASCII 字母的答案视为无效
func IsEmptyOrNonsense(s string) bool {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 3 {
		return true
	}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

func WordCount(s string) int {
	return len(strings.Fields(s))
}
