package logger

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
)

// Sanitizer 負責過濾日誌中的個人路徑
//
// Photo paths usually live under the user's home directory. The sanitizer
// rewrites the current home directory to "~" and masks the user name in
// other home-like paths. A zero Sanitizer passes everything through.
type Sanitizer struct {
	mu       sync.RWMutex
	home     *regexp.Regexp
	patterns []SanitizeRule
}

// SanitizeRule 單一過濾規則
type SanitizeRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewSanitizer 建立預設 sanitizer
func NewSanitizer() *Sanitizer {
	home, _ := os.UserHomeDir()
	return newSanitizer(home)
}

func newSanitizer(home string) *Sanitizer {
	s := &Sanitizer{patterns: defaultSanitizeRules()}
	if home = strings.TrimRight(home, `/\`); home != "" {
		// Only whole path elements: "/root" must not match "/rootfs"
		s.home = regexp.MustCompile(regexp.QuoteMeta(home) + `([/\\\s"]|$)`)
	}
	return s
}

// defaultSanitizeRules 回傳預設過濾規則
func defaultSanitizeRules() []SanitizeRule {
	return []SanitizeRule{
		// Windows 使用者路徑 (支援所有磁碟機與 UNC，不區分大小寫)
		{regexp.MustCompile(`(?i)([A-Z]:\\Users\\)[^\\]+`), "${1}***"},
		{regexp.MustCompile(`(?i)(\\\\[^\\]+\\[^\\]+\\Users\\)[^\\]+`), "${1}***"},

		// Unix 家目錄
		{regexp.MustCompile(`/home/[^/\s]+`), "/home/***"},
		{regexp.MustCompile(`/Users/[^/\s]+`), "/Users/***"},
	}
}

// Sanitize rewrites home directories in input
func (s *Sanitizer) Sanitize(input string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := input
	if s.home != nil {
		result = s.home.ReplaceAllString(result, "~$1")
	}
	for _, rule := range s.patterns {
		result = rule.Pattern.ReplaceAllString(result, rule.Replacement)
	}
	return result
}

// SanitizeArgs sanitizes the string and error values of key-value pairs
func (s *Sanitizer) SanitizeArgs(args []any) []any {
	if len(args) == 0 || s.empty() {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 1; i < len(result); i += 2 {
		switch v := result[i].(type) {
		case string:
			result[i] = s.Sanitize(v)
		case error:
			result[i] = s.Sanitize(v.Error())
		}
	}

	return result
}

func (s *Sanitizer) empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.home == nil && len(s.patterns) == 0
}

// AddRule 新增自訂過濾規則
func (s *Sanitizer) AddRule(pattern string, replacement string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = append(s.patterns, SanitizeRule{
		Pattern:     re,
		Replacement: replacement,
	})
	return nil
}
