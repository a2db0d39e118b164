package layout

// Options 配置排版策略。
type Options struct {
	// KeepTogether 为 true 时，PlaceBlock 会在当前页剩余空间放不下整块内容时先换页。
	KeepTogether bool
}
