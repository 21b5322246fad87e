package layout

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// 行距 = 字号 + lineLeading。
const lineLeading = 2.0

// 分节线位于分节标题之后光标上方 ruleOffset 处，画线后光标再下移 ruleAdvance。
const (
	ruleOffset  = 5.0
	ruleAdvance = 6.0
)

type pageAccumulator struct {
	texts []TextBox
	rules []Rule
}

func (p *pageAccumulator) appendText(tb TextBox) {
	p.texts = append(p.texts, tb)
}

func (p *pageAccumulator) appendRule(r Rule) {
	p.rules = append(p.rules, r)
}

func (p *pageAccumulator) empty() bool {
	return len(p.texts) == 0 && len(p.rules) == 0
}

type pageCollector struct {
	page PageSpec
	accs []*pageAccumulator
}

func newPageCollector(page PageSpec) *pageCollector {
	pc := &pageCollector{page: page}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if len(pc.accs) == 0 {
		return pc.newPage()
	}
	return pc.accs[len(pc.accs)-1]
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:  pc.page.Width,
			Height: pc.page.Height,
			Margin: pc.page.Margin,
			Texts:  acc.texts,
			Rules:  acc.rules,
		}
	}
	return out
}

// composer 是单次 Build 独占的排版状态：当前页集合与纵向光标。
// 排版后端返回的第一个错误会被保留，之后的操作全部跳过。
type composer struct {
	collector *pageCollector
	page      PageSpec
	styles    Styles
	ts        Typesetter
	cursorY   float64
	upper     cases.Caser
	err       error
}

func newComposer(page PageSpec, styles Styles, ts Typesetter) *composer {
	return &composer{
		collector: newPageCollector(page),
		page:      page,
		styles:    styles,
		ts:        ts,
		cursorY:   page.Margin.Top,
		upper:     cases.Upper(language.Und),
	}
}

func (c *composer) acc() *pageAccumulator {
	return c.collector.curr()
}

// ensureSpace 在剩余空间不足 required 时换页；当前页仍为空时不换页，避免产生空白页。
func (c *composer) ensureSpace(required float64) {
	if c.cursorY+required <= c.page.ContentBottom() {
		return
	}
	if c.acc().empty() {
		return
	}
	c.pageBreak()
}

func (c *composer) pageBreak() {
	c.collector.newPage()
	c.cursorY = c.page.Margin.Top
}

// addTextBlock 折行并放置一段文本，随后把光标推进 行数*(字号+2) + gap。
// 超过一整页高度的文本块不预先换页，直接从当前位置按行拆分到后续页面。
func (c *composer) addTextBlock(text string, style TextStyle) {
	if c.err != nil || text == "" {
		return
	}
	font := style.font()
	lines, err := c.ts.SplitLines(text, c.page.ContentWidth(), font)
	if err != nil {
		c.err = fmt.Errorf("排版文本 %q 失败: %w", abbreviate(text), err)
		return
	}
	if len(lines) == 0 {
		return
	}

	lineHeight := style.Size + lineLeading
	extent := float64(len(lines))*lineHeight + style.Gap
	if extent <= c.page.ContentBottom()-c.page.Margin.Top {
		c.ensureSpace(extent)
	}

	for len(lines) > 0 {
		avail := c.page.ContentBottom() - c.cursorY
		fit := int((avail + 1e-9) / lineHeight)
		if fit >= len(lines) {
			c.place(lines, lineHeight, font)
			break
		}
		if fit < 1 {
			if !c.acc().empty() {
				c.pageBreak()
				continue
			}
			// 单行高于整页内容区，只能原样放置
			fit = 1
		}
		c.place(lines[:fit], lineHeight, font)
		lines = lines[fit:]
		c.pageBreak()
	}
	c.cursorY += style.Gap
}

func (c *composer) place(lines []string, lineHeight float64, font Font) {
	tb := TextBox{
		Lines:      append([]string(nil), lines...),
		X:          c.page.Margin.Left,
		Y:          c.cursorY,
		Width:      c.page.ContentWidth(),
		LineHeight: lineHeight,
		Height:     float64(len(lines)) * lineHeight,
		Font:       font,
	}
	c.acc().appendText(tb)
	c.cursorY += tb.Height
}

// addSection 输出大写的分节标题，并在标题下方画一条贯穿内容宽度的分隔线。
func (c *composer) addSection(title string) {
	if c.err != nil {
		return
	}
	c.addTextBlock(c.upper.String(title), c.styles.Lookup(StyleSection))
	if c.err != nil {
		return
	}
	c.acc().appendRule(Rule{
		X1:    c.page.Margin.Left,
		X2:    c.page.Width - c.page.Margin.Right,
		Y:     c.cursorY - ruleOffset,
		Width: c.page.RuleWidth,
	})
	c.cursorY += ruleAdvance
}

func (c *composer) addBullet(text string) {
	c.addTextBlock("- "+text, c.styles.Lookup(StyleBullet))
}

func (c *composer) addStyled(text, style string) {
	c.addTextBlock(text, c.styles.Lookup(style))
}

func abbreviate(s string) string {
	r := []rune(s)
	if len(r) <= 24 {
		return s
	}
	return string(r[:24]) + "…"
}
