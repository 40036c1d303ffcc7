// Package prompt renders the fixed instructional template sent to the
// completion API. Building a prompt is pure: no file or network access.
package prompt

import (
	"fmt"
	"strings"

	"github.com/jnpd11/grade6-science-prep/internal/outline"
)

// System is the persona sent as the system message on every request.
const System = `你是一位严谨、亲切的中文科学教育作者，长期为六年级学生编写科学课预习材料。你写的内容科学准确、语言通俗，从不编造事实。`

const (
	unitPlaceholder = "（未提供）"
	hintPlaceholder = "无"
)

const lessonPrompt = `请为六年级科学课撰写一篇课前预习讲义。

单元：%s
课题：%s
补充提示：%s

写作要求：
1. 全文使用简体中文，面向六年级学生（11-12 岁），语气亲切自然，总长度约 800-1200 字。
2. 正文必须依次包含下面六个二级标题，标题文字必须完全一致：
## 预习目标
## 关键词卡片
## 预习问题
## 在家小实验
## 拓展一步
## 练习题
3. 「预习目标」用 2-3 条短句说明读完本讲义应达到的目标。
4. 「关键词卡片」挑选 3-5 个核心词语，每个词语用一两句话解释清楚。
5. 「预习问题」提出 3 个启发思考的问题，只提问，不给答案。
6. 「在家小实验」设计一个在家就能完成的安全小实验：只使用常见、安全的材料，严禁使用明火、尖锐器具和任何危险化学品。
7. 「拓展一步」给出 1-2 个联系生活的延伸思考。
8. 「练习题」出 3 道小题，每道题后面紧跟「答案：」并给出简短答案。
9. 不得编造数据、文献或引用来源；拿不准的内容改写为开放式问题。
10. 直接输出正文，不要输出任何前言、结尾说明或代码块标记。`

const imageDirective = `
11. 在全文最后另起一行，严格按照「unsplash: 两到三个英文单词」的格式给出一行适合本课配图的英文搜索关键词；除这一行外不要再输出其他内容。`

// Build renders the prompt for one outline entry. Empty optional fields are
// replaced with their placeholders rather than left blank. withImage appends
// the trailing image-keyword directive (the richer script variant).
func Build(e outline.Entry, withImage bool) string {
	unit := strings.TrimSpace(e.Unit)
	if unit == "" {
		unit = unitPlaceholder
	}
	hint := strings.TrimSpace(e.SummaryHint)
	if hint == "" {
		hint = hintPlaceholder
	}

	p := fmt.Sprintf(lessonPrompt, unit, e.Title, hint)
	if withImage {
		p += imageDirective
	}
	return p
}
