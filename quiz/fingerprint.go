package quiz

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Fingerprint 基于测验内容生成确定性的 UUID（SHA-1），内容相同则结果相同。
func (q *Quiz) Fingerprint() uuid.UUID {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\x00%s\x00", q.Title, q.Subtitle)
	for _, question := range q.Questions {
		fmt.Fprintf(&b, "%d\x00%s\x00", question.Index, question.Text)
		for _, l := range Labels {
			fmt.Fprintf(&b, "%s\x00%s\x00", l, question.Options[l])
		}
	}
	for _, s := range q.AnswerKey() {
		fmt.Fprintf(&b, "%d\x00%s\x00%s\x00", s.Number, s.Answer, s.Explanation)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(b.String()))
}
