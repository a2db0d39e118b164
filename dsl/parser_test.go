package dsl_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ByLCY/quizpress/dsl"
	"github.com/ByLCY/quizpress/quiz"
)

const sampleQuiz = `
# 网络基础
title: "Networking"
subtitle: "Basics"

question "Which OSI layer routes?" {
  A: "Physical"
  B: "Network"
  C: "Transport"
  D: "Application"
}

// 单行写法
question "Default HTTPS port?" { A: "80"; B: "443"; C: "21"; D: "25" }

answer 2 B "HTTPS listens on 443."
answer 1 B "Routing happens at Layer 3."
`

func TestParseFile(t *testing.T) {
	file, err := dsl.ParseString(sampleQuiz)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(file.Entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(file.Entries))
	}
	title := file.Entries[0].Field
	if title == nil || title.Key != "title" || string(title.Value) != "Networking" {
		t.Fatalf("unexpected title entry: %+v", file.Entries[0])
	}
	q := file.Entries[2].Question
	if q == nil {
		t.Fatalf("expected question entry, got %+v", file.Entries[2])
	}
	if len(q.Options) != 4 || q.Options[1].Label != "B" || string(q.Options[1].Text) != "Network" {
		t.Fatalf("unexpected options: %+v", q.Options)
	}
	if q.Pos.Line != 6 {
		t.Fatalf("expected question on line 6, got %d", q.Pos.Line)
	}
	answer := file.Entries[4].Answer
	if answer == nil || answer.Number != 2 || answer.Label != "B" {
		t.Fatalf("unexpected answer entry: %+v", file.Entries[4])
	}
}

func TestDecodeValidates(t *testing.T) {
	doc, err := dsl.Decode([]byte(sampleQuiz))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	q, err := quiz.Validate(doc)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if q.Title != "Networking" || q.Subtitle != "Basics" {
		t.Fatalf("unexpected header: %q / %q", q.Title, q.Subtitle)
	}
	if len(q.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(q.Questions))
	}
	if got := q.Questions[1].Option(quiz.LabelB); got != "443" {
		t.Fatalf("expected option B of question 2 to be 443, got %q", got)
	}
	key := q.AnswerKey()
	if key[0].Number != 1 || key[1].Explanation != "HTTPS listens on 443." {
		t.Fatalf("unexpected answer key: %+v", key)
	}
}

func TestDecodeEscapes(t *testing.T) {
	doc, err := dsl.Decode([]byte(`title: "Say \"hi\"\n世界"`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if *doc.Title != "Say \"hi\"\n世界" {
		t.Fatalf("unexpected title %q", *doc.Title)
	}
}

func TestDecodeEmptyFile(t *testing.T) {
	doc, err := dsl.Decode([]byte("# nothing here\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if doc.Title != nil || doc.Subtitle != nil {
		t.Fatalf("expected absent title/subtitle, got %+v", doc)
	}
	_, err = quiz.Validate(doc)
	if !errors.Is(err, quiz.ErrEmptyQuiz) || !errors.Is(err, quiz.ErrMissingField) {
		t.Fatalf("expected EmptyQuiz and MissingField, got %v", err)
	}
}

func TestDecodeRejectsDuplicates(t *testing.T) {
	cases := map[string]string{
		"duplicate label": `question "Q" { A: "a"; A: "b" }`,
		"duplicate title": "title: \"a\"\ntitle: \"b\"",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dsl.Decode([]byte(input))
			if err == nil || !strings.Contains(err.Error(), "重复") {
				t.Fatalf("expected duplicate error, got %v", err)
			}
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := dsl.Decode([]byte(`question "Q" { A "missing colon" }`))
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !strings.Contains(err.Error(), "解析 .quiz 失败") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBadLabelReachesValidator(t *testing.T) {
	doc, err := dsl.Decode([]byte(`
title: "T"
subtitle: "S"
question "Q" { A: "a"; B: "b"; C: "c"; D: "d" }
answer 1 E "nope"
`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, err := quiz.Validate(doc); !errors.Is(err, quiz.ErrInvalidAnswerLabel) {
		t.Fatalf("expected InvalidAnswerLabel, got %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	want := quiz.Sample()
	text := dsl.Format(want)
	got, err := dsl.Decode([]byte(text))
	if err != nil {
		t.Fatalf("decode of formatted sample failed: %v\n%s", err, text)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}
