package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ByLCY/quizpress/binding"
	"github.com/ByLCY/quizpress/compose"
	"github.com/ByLCY/quizpress/config"
	"github.com/ByLCY/quizpress/fonts"
	"github.com/ByLCY/quizpress/layout"
	"github.com/ByLCY/quizpress/loader"
	"github.com/ByLCY/quizpress/picker"
	"github.com/ByLCY/quizpress/quiz"
	"github.com/ByLCY/quizpress/renderer"
	canvasrenderer "github.com/ByLCY/quizpress/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/quizpress/renderer/fpdf"
	"github.com/ByLCY/quizpress/renderer/record"
)

type options struct {
	input      string
	output     string
	configPath string
	backend    string
	dataJSON   string
	debugPath  string
	pick       bool
	sample     bool
	template   string
	verbose    bool
}

type result struct {
	output      string
	stats       compose.Stats
	fingerprint uuid.UUID
	missing     []string
}

func main() {
	var o options
	flag.StringVar(&o.input, "in", "", "测验文件路径（.json/.yaml/.yml/.quiz）")
	flag.StringVar(&o.output, "out", "", "PDF 输出路径，默认与输入文件同名")
	flag.StringVar(&o.configPath, "config", "", "TOML 配置文件路径（也可用环境变量 "+config.EnvPath+"）")
	flag.StringVar(&o.backend, "backend", "", "PDF 后端：canvas 或 fpdf，默认取配置文件")
	flag.StringVar(&o.dataJSON, "data", "", "绑定到 ${...} 占位符的 JSON 数据，@file.json 表示从文件读取")
	flag.StringVar(&o.debugPath, "debug", "", "布局调试 JSON 输出路径")
	flag.BoolVar(&o.pick, "pick", false, "在终端中选择测验文件")
	flag.BoolVar(&o.sample, "sample", false, "渲染内置示例测验")
	flag.StringVar(&o.template, "template", "", "将示例测验以 json/yaml/quiz 格式输出到标准输出")
	flag.BoolVar(&o.verbose, "v", false, "输出渲染统计")
	flag.Parse()

	if o.template != "" {
		if err := writeTemplate(o.template); err != nil {
			log.Fatalf("导出模板失败: %v", err)
		}
		return
	}

	if o.pick || (o.input == "" && !o.sample) {
		path, err := picker.Run(".", loader.Extensions, nil, nil)
		if errors.Is(err, picker.ErrCancelled) {
			fmt.Println("未选择测验文件")
			return
		}
		if err != nil {
			log.Fatalf("%v", err)
		}
		o.input = path
	}

	res, err := run(o)
	if err != nil {
		var verr *quiz.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				log.Printf("  - %s", issue)
			}
			log.Fatalf("测验数据校验失败，共 %d 处问题", len(verr.Issues))
		}
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	for _, path := range res.missing {
		log.Printf("警告: 占位符 ${%s} 没有对应的数据", path)
	}
	fmt.Printf("已生成 PDF：%s\n", res.output)
	if o.verbose {
		s := res.stats
		fmt.Printf("页数 %d，题目 %d，选项 %d，答案 %d，指纹 %s\n", s.Pages, s.Questions, s.Options, s.KeyEntries, res.fingerprint)
	}
}

// run 串联加载、校验、排版与渲染。
func run(o options) (*result, error) {
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, err
	}
	binder, err := binding.ParseJSON(o.dataJSON)
	if err != nil {
		return nil, err
	}

	var doc *quiz.Document
	if o.sample {
		doc = quiz.Sample()
		loader.Prepare(doc, binder)
	} else {
		if o.input == "" {
			return nil, fmt.Errorf("缺少输入文件")
		}
		if doc, err = loader.Load(o.input, binder); err != nil {
			return nil, err
		}
	}
	q, err := quiz.Validate(doc)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.ComposeOptions()
	if err != nil {
		return nil, err
	}
	backend := o.backend
	if backend == "" {
		backend = cfg.Output.Backend
	}
	regular, err := fonts.Resolve(cfg.Fonts.Regular, cfg.Dir, "regular")
	if err != nil {
		return nil, err
	}
	bold, err := fonts.Resolve(cfg.Fonts.Bold, cfg.Dir, "bold")
	if err != nil {
		return nil, err
	}
	fingerprint := q.Fingerprint()
	pdfDoc, err := newDocument(backend, renderer.Options{
		Width:   opts.Geometry.PaperWidth(),
		Height:  opts.Geometry.PaperHeight(),
		Regular: regular,
		Bold:    bold,
		Meta: renderer.Meta{
			Title:    q.Title,
			Subject:  cfg.Meta.Subject,
			Keywords: []string{"quiz", fingerprint.String()},
			Author:   cfg.Meta.Author,
			Creator:  cfg.Meta.Creator,
		},
	})
	if err != nil {
		return nil, err
	}

	var surface layout.Surface = pdfDoc
	var rec *record.Recorder
	if o.debugPath != "" {
		rec = record.New(pdfDoc)
		surface = rec
	}
	stats, err := compose.Render(q, surface, opts)
	if err != nil {
		return nil, fmt.Errorf("排版失败: %w", err)
	}
	pdfBytes, err := pdfDoc.Close()
	if err != nil {
		return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if rec != nil {
		if err := writeDebug(rec, o.debugPath); err != nil {
			return nil, err
		}
	}

	output := o.output
	if output == "" {
		output = defaultOutput(o)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(output, pdfBytes, 0o644); err != nil {
		return nil, fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return &result{output: output, stats: stats, fingerprint: fingerprint, missing: binder.Missing()}, nil
}

func newDocument(backend string, opts renderer.Options) (renderer.Document, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "canvas":
		return canvasrenderer.New(opts)
	case "fpdf":
		return fpdfrenderer.New(opts)
	default:
		return nil, fmt.Errorf("未知的 PDF 后端 %q（可用：canvas, fpdf）", backend)
	}
}

// defaultOutput 将输入文件的扩展名替换为 .pdf；示例测验输出到 sample.pdf。
func defaultOutput(o options) string {
	if o.sample || o.input == "" {
		return "sample.pdf"
	}
	return strings.TrimSuffix(o.input, filepath.Ext(o.input)) + ".pdf"
}

func writeTemplate(name string) error {
	format, err := loader.ParseFormat(name)
	if err != nil {
		return err
	}
	data, err := loader.Encode(format, quiz.Sample())
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func writeDebug(rec *record.Recorder, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := rec.WriteDebugJSON(debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
