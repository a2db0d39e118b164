// Package config 读取 TOML 配置：内置默认值之上叠加用户文件，并解析为渲染参数。
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/quizpress/compose"
	"github.com/ByLCY/quizpress/layout"
)

// EnvPath 为指定配置文件路径的环境变量。
const EnvPath = "QUIZPRESS_CONFIG"

//go:embed default.toml
var defaultConfig string

type Config struct {
	Page   PageConfig   `toml:"page"`
	Text   TextConfig   `toml:"text"`
	Layout LayoutConfig `toml:"layout"`
	Labels LabelConfig  `toml:"labels"`
	Fonts  FontConfig   `toml:"fonts"`
	Meta   MetaConfig   `toml:"meta"`
	Output OutputConfig `toml:"output"`

	// 配置文件所在目录，用于解析相对字体路径；仅使用默认值时为空。
	Dir string `toml:"-"`
}

type PageConfig struct {
	Size        string `toml:"size"`
	Orientation string `toml:"orientation"`
	Margin      string `toml:"margin"`
	Width       string `toml:"width"`
	Height      string `toml:"height"`
}

type TextConfig struct {
	TitleSize    string `toml:"title_size"`
	BodySize     string `toml:"body_size"`
	LineHeight   string `toml:"line_height"`
	OptionIndent string `toml:"option_indent"`
	QuestionGap  string `toml:"question_gap"`
	TitleGap     string `toml:"title_gap"`
}

type LayoutConfig struct {
	KeepTogether bool `toml:"keep_together"`
	TitlePage    bool `toml:"title_page"`
}

type LabelConfig struct {
	Questions string `toml:"questions"`
	AnswerKey string `toml:"answer_key"`
}

type FontConfig struct {
	Regular string `toml:"regular"`
	Bold    string `toml:"bold"`
}

type MetaConfig struct {
	Author  string `toml:"author"`
	Creator string `toml:"creator"`
	Subject string `toml:"subject"`
}

type OutputConfig struct {
	Backend string `toml:"backend"`
}

// Default 返回内置默认配置。
func Default() *Config {
	c := &Config{}
	if err := c.Load(defaultConfig); err != nil {
		panic(fmt.Sprintf("内置默认配置无效: %v", err))
	}
	return c
}

// Load 将 TOML 文本叠加到当前配置上，未出现的键保持原值。未知键视为错误。
func (c *Config) Load(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("未知配置项: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadFile 读取 path 并叠加到默认配置上。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	c := Default()
	if err := c.Load(string(data)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Dir = filepath.Dir(path)
	return c, nil
}

// Resolve 依次使用 path、环境变量 QUIZPRESS_CONFIG，均为空时返回默认配置。
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Geometry 将页面与字号配置换算为 mm。配置中的纸张尺寸扣除边距后作为可打印区域。
func (c *Config) Geometry() (layout.Geometry, error) {
	var geo layout.Geometry
	width, height, err := c.pageSize()
	if err != nil {
		return geo, err
	}
	margin, err := length("page.margin", c.Page.Margin)
	if err != nil {
		return geo, err
	}
	printable, err := layout.OnPaper(width, height, margin)
	if err != nil {
		return geo, fmt.Errorf("page.margin: %w", err)
	}
	title, err := layout.ParseLength(c.Text.TitleSize)
	if err != nil {
		return geo, fmt.Errorf("text.title_size: %w", err)
	}
	body, err := layout.ParseLength(c.Text.BodySize)
	if err != nil {
		return geo, fmt.Errorf("text.body_size: %w", err)
	}
	lh, err := layout.ParseLineHeight(c.Text.LineHeight)
	if err != nil {
		return geo, fmt.Errorf("text.line_height: %w", err)
	}
	// 无单位的字号按 pt 理解，与常见排版习惯一致。
	if title.Unit == layout.UnitNone {
		title.Unit = layout.UnitPT
	}
	if body.Unit == layout.UnitNone {
		body.Unit = layout.UnitPT
	}
	geo = layout.Geometry{
		PageWidth:  printable.PageWidth,
		PageHeight: printable.PageHeight,
		Margin:     margin,
		LineHeight: lh.Resolve(body, layout.UnitMM),
		TitleSize:  title.ToMM(),
		BodySize:   body.ToMM(),
	}
	if err := geo.Validate(); err != nil {
		return geo, fmt.Errorf("页面配置无效: %w", err)
	}
	return geo, nil
}

func (c *Config) pageSize() (float64, float64, error) {
	landscape := false
	switch strings.ToLower(strings.TrimSpace(c.Page.Orientation)) {
	case "", "portrait":
	case "landscape":
		landscape = true
	default:
		return 0, 0, fmt.Errorf("page.orientation: 未知方向 %q", c.Page.Orientation)
	}
	if c.Page.Width != "" || c.Page.Height != "" {
		w, err := length("page.width", c.Page.Width)
		if err != nil {
			return 0, 0, err
		}
		h, err := length("page.height", c.Page.Height)
		if err != nil {
			return 0, 0, err
		}
		if landscape && h > w {
			w, h = h, w
		}
		return w, h, nil
	}
	w, h, err := layout.PageSize(c.Page.Size, landscape)
	if err != nil {
		return 0, 0, fmt.Errorf("page.size: %w", err)
	}
	return w, h, nil
}

// ComposeOptions 返回文档排版参数。
func (c *Config) ComposeOptions() (compose.Options, error) {
	geo, err := c.Geometry()
	if err != nil {
		return compose.Options{}, err
	}
	opts := compose.Options{
		Geometry:         geo,
		KeepTogether:     c.Layout.KeepTogether,
		TitlePage:        c.Layout.TitlePage,
		QuestionsHeading: c.Labels.Questions,
		AnswerKeyHeading: c.Labels.AnswerKey,
	}
	if opts.OptionIndent, err = length("text.option_indent", c.Text.OptionIndent); err != nil {
		return compose.Options{}, err
	}
	if opts.QuestionGap, err = length("text.question_gap", c.Text.QuestionGap); err != nil {
		return compose.Options{}, err
	}
	if opts.TitleGap, err = length("text.title_gap", c.Text.TitleGap); err != nil {
		return compose.Options{}, err
	}
	if opts.OptionIndent >= geo.ContentWidth() {
		return compose.Options{}, fmt.Errorf("text.option_indent %gmm 超过可打印宽度 %gmm", opts.OptionIndent, geo.ContentWidth())
	}
	return opts, nil
}

// length 解析长度并换算为 mm；无单位的数值按 mm 处理。
func length(key, value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return l.ToMM(), nil
}
