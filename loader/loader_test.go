package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/quizpress/binding"
	"github.com/ByLCY/quizpress/quiz"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatOf(t *testing.T) {
	cases := map[string]Format{
		"a.json":     FormatJSON,
		"dir/b.YAML": FormatYAML,
		"c.yml":      FormatYAML,
		"d.quiz":     FormatQuiz,
	}
	for path, want := range cases {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("notes.txt")
	assert.ErrorContains(t, err, "不支持的文件类型")
}

func TestLoadAllFormatsAgree(t *testing.T) {
	sample := quiz.Sample()
	want, err := quiz.Validate(sample)
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatYAML, FormatQuiz} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(format, quiz.Sample())
			require.NoError(t, err)
			path := writeFile(t, "sample."+string(format), string(data))

			got, err := LoadQuiz(path, nil)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadBindsBeforeNormalizing(t *testing.T) {
	path := writeFile(t, "bound.yaml", `
title: "  ${course} quiz  "
subtitle: "Week ${week}"
questions:
  - text: "Who teaches ${course}?"
    options: {A: "${teachers[0]}", B: "${teachers[1]}", C: "${missing}", D: "nobody"}
solution_table:
  - {number: 1, answer: " A ", explanation: "${teachers[0]} runs ${course}."}
`)
	binder, err := binding.ParseJSON(`{"course":"Networks","week":3,"teachers":["Ada","Linus"]}`)
	require.NoError(t, err)

	q, err := LoadQuiz(path, binder)
	require.NoError(t, err)
	assert.Equal(t, "Networks quiz", q.Title)
	assert.Equal(t, "Week 3", q.Subtitle)
	assert.Equal(t, "Ada", q.Questions[0].Option(quiz.LabelA))
	assert.Equal(t, "${missing}", q.Questions[0].Option(quiz.LabelC))
	assert.Equal(t, quiz.LabelA, q.Solutions[0].Answer)
	assert.Equal(t, "Ada runs Networks.", q.Solutions[0].Explanation)
	assert.Equal(t, []string{"missing"}, binder.Missing())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), nil)
	assert.ErrorContains(t, err, "无法读取测验文件")

	bad := writeFile(t, "bad.json", `{"title": 1}`)
	_, err = Load(bad, nil)
	assert.ErrorContains(t, err, "bad.json")

	empty := writeFile(t, "empty.json", `{"title":"t","subtitle":"s","questions":[],"solution_table":[]}`)
	_, err = LoadQuiz(empty, nil)
	assert.True(t, errors.Is(err, quiz.ErrEmptyQuiz))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
