package news

import (
	"fmt"
	"strings"
	"time"
)

// Subject is the delivery subject line for every digest run.
const Subject = "[Compliance Digest] 신규 규제 소식 / 법률 변경 알림"

// RenderDigest builds the plain-text digest body. Deterministic for a given
// article order and timestamp; now is injected so tests can pin it.
func RenderDigest(articles []Article, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("규제 준수 뉴스 요약 – %s (Asia/Seoul 기준)\n", now.Format("2006-01-02 15:04:05")))
	b.WriteString(strings.Repeat("−", 60))
	b.WriteString("\n")

	for i, a := range articles {
		b.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, a.Source, a.Title))
		if a.Published != "" {
			b.WriteString(fmt.Sprintf("   발행일: %s\n", a.Published))
		}
		b.WriteString(fmt.Sprintf("   원문 요약: %s\n", a.Summary))
		// The translation line is omitted when no translation happened,
		// which includes native-language sources.
		if a.Translated != "" && a.Translated != a.Summary {
			b.WriteString(fmt.Sprintf("   한국어 번역: %s\n", a.Translated))
		}
		if a.Link != "" {
			b.WriteString(fmt.Sprintf("   링크: %s\n", a.Link))
		}
		b.WriteString("\n")
	}

	return b.String()
}
