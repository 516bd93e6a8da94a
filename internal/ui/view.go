package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/composetag/internal/registry"
	"github.com/atomicstack/composetag/internal/ui/widget"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	servicePaneRows      = 5   // lines of the file shown around the current one
	detailsMaxLines      = 6   // inline details only
	detailsPanelMinWidth = 28  // below this the details go under the tag list
	detailsPanelFraction = 0.4 // share of the width given to the details panel
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 32)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	if m.file != nil {
		lines = append(lines, m.sectionTitle("Services", ModeSelectService))
		lines = append(lines, m.serviceLines()...)
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: m.repoPrompt(), raw: true})
	lines = append(lines, styledLine{})
	lines = append(lines, m.tagsTitle())
	top := renderLines(applyWidth(lines, m.width))

	tagsSection := m.renderTagsSection()

	bottom := make([]styledLine, 0, 4)
	if text := m.info.Text(); text != "" {
		style := styles.Info
		if m.info.IsError() {
			style = styles.Error
			text = "Error: " + text
		}
		bottom = append(bottom, styledLine{})
		bottom = append(bottom, styledLine{text: text, style: style})
	}
	if m.showFooter {
		bottom = append(bottom, styledLine{})
		bottom = append(bottom, styledLine{text: footerHint, style: styles.Footer})
	}
	out := top + "\n" + tagsSection
	if len(bottom) > 0 {
		out += "\n" + renderLines(applyWidth(bottom, m.width))
	}
	return out
}

func (m *Model) header() string {
	if m.file == nil {
		return "composetag · no file loaded"
	}
	name := m.file.Path()
	if m.file.Dirty() {
		name += " [modified]"
	}
	return "composetag · " + name
}

func (m *Model) sectionTitle(title string, mode Mode) styledLine {
	style := styles.Header
	if m.mode == mode {
		style = styles.ActiveHeader
		title = "» " + title
	}
	return styledLine{text: title, style: style}
}

func (m *Model) tagsTitle() styledLine {
	title := "Tags"
	if m.repo != "" {
		title = fmt.Sprintf("Tags: %s", registry.DisplayRepo(m.repo))
	}
	line := m.sectionTitle(title, ModeSelectTag)
	if !m.loading {
		return line
	}
	text := line.text
	if line.style != nil {
		text = line.style.Render(text)
	}
	return styledLine{text: text + " " + m.spinner.View(), raw: true}
}

// serviceLines renders a window of the file centred on the current line.
func (m *Model) serviceLines() []styledLine {
	all := m.file.Lines()
	if len(all) == 0 {
		return []styledLine{{text: "(empty file)", style: styles.Info}}
	}
	current := m.file.Current()
	start := 0
	if current >= 0 {
		start = current - servicePaneRows/2
	}
	if start+servicePaneRows > len(all) {
		start = len(all) - servicePaneRows
	}
	if start < 0 {
		start = 0
	}
	end := start + servicePaneRows
	if end > len(all) {
		end = len(all)
	}
	lines := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		text := fmt.Sprintf("%4d  %s", i+1, all[i])
		style := styles.ServiceLine
		if i == current {
			style = styles.ServiceCurrent
			if m.width > 0 {
				if pad := m.width - len([]rune(text)); pad > 0 {
					text += strings.Repeat(" ", pad)
				}
			}
		}
		lines = append(lines, styledLine{text: text, style: style})
	}
	return lines
}

func (m *Model) detailsPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * detailsPanelFraction)
	if w < detailsPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) hasSideDetails() bool {
	return m.detailsPanelWidth() > 0
}

// tagLines renders the visible window of the tag list at the given width.
func (m *Model) tagLines(width int) []styledLine {
	rows, start := m.tags.Visible(m.maxVisibleTags())
	lines := make([]styledLine, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, m.buildTagLine(row, start+i, width))
	}
	return lines
}

// buildTagLine constructs a single styledLine for a tag list row.
func (m *Model) buildTagLine(row widget.Row, idx, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	switch row.Kind {
	case widget.RowError:
		lineStyle = styles.Error
	case widget.RowStatus:
		lineStyle = styles.Info
		if m.loading {
			lineStyle = styles.Loading
		}
	case widget.RowPrevPage, widget.RowNextPage:
		lineStyle = styles.Footer
	}
	if idx == m.tags.Cursor && (row.Kind == widget.RowTag || row.Kind == widget.RowPrevPage || row.Kind == widget.RowNextPage) {
		indicatorStyle = styles.SelectedIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + row.Text
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) renderTagsSection() string {
	if !m.hasSideDetails() {
		lines := m.tagLines(m.width)
		if details := m.details.Lines(); len(details) > 0 {
			if len(details) > detailsMaxLines {
				details = details[:detailsMaxLines]
			}
			lines = append(lines, styledLine{})
			for _, d := range details {
				lines = append(lines, styledLine{text: d, style: styles.DetailsBody})
			}
		}
		return renderLines(applyWidth(lines, m.width))
	}

	detailsW := m.detailsPanelWidth()
	listW := m.width - detailsW
	height := m.maxVisibleTags()
	if height < 3 {
		height = 3
	}
	lines := m.tagLines(listW)
	for len(lines) < height {
		lines = append(lines, styledLine{})
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	leftStr := renderLines(applyWidth(lines, listW))
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > listW {
			leftRows[i] = truncate.StringWithTail(row, uint(listW-1), "…")
		} else if w < listW {
			leftRows[i] = row + strings.Repeat(" ", listW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")
	rightStr := renderDetailsPanel(m.details.Lines(), detailsW, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)
}

// renderDetailsPanel draws the bordered details box with exactly height rows
// and totalWidth columns.
func renderDetailsPanel(content []string, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	border := styles.Border
	if border == nil {
		border = &lipgloss.Style{}
	}

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleSeg := " Details "
	dashes := totalWidth - 4 - len([]rune(titleSeg))
	if dashes < 0 {
		titleSeg = ""
		dashes = totalWidth - 4
	}
	if dashes < 0 {
		dashes = 0
	}
	title := titleSeg
	if styles.DetailsTitle != nil {
		title = styles.DetailsTitle.Render(titleSeg)
	}
	rows := make([]string, 0, height)
	rows = append(rows, border.Render(tlc+hz)+title+border.Render(strings.Repeat(hz, dashes)+hz+trc))
	for i := 0; i < innerH; i++ {
		var text string
		if i < len(content) {
			text = content[i]
		}
		w := lipgloss.Width(text)
		if w > innerW {
			text = truncate.StringWithTail(text, uint(innerW-1), "…")
			w = lipgloss.Width(text)
		}
		if w < innerW {
			text += strings.Repeat(" ", innerW-w)
		}
		if styles.DetailsBody != nil {
			text = styles.DetailsBody.Render(text)
		}
		rows = append(rows, border.Render(vt)+text+border.Render(vt))
	}
	rows = append(rows, border.Render(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}

func (m *Model) maxVisibleTags() int {
	if m.height <= 0 {
		return -1
	}
	used := 1 // header
	if m.file != nil {
		used += 1 + m.serviceRowCount()
	}
	used += 4 // blank, prompt, blank, tags title
	if m.info.Text() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if !m.hasSideDetails() {
		if n := len(m.details.Lines()); n > 0 {
			if n > detailsMaxLines {
				n = detailsMaxLines
			}
			used += 1 + n
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) serviceRowCount() int {
	n := m.file.Len()
	if n == 0 {
		return 1
	}
	if n > servicePaneRows {
		return servicePaneRows
	}
	return n
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
