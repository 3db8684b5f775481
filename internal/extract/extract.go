// Package extract turns the noisy line-oriented text produced by OCR on
// the paper request form into candidate structured fields. Every field
// is resolved by an ordered list of strategies; the first one that
// yields a value wins and later strategies never run. Extraction never
// fails: unresolved fields stay empty and the diagnostics carry enough
// per-line detail for an operator to fill them in by hand.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

const (
	jpRange = `\x{4E00}-\x{9FFF}\x{3040}-\x{309F}\x{30A0}-\x{30FF}`
	jpSpace = `\s　`
	// Gap between label characters; handwritten forms pad labels with
	// full-width spaces, which \s alone does not cover.
	sp = `[` + jpSpace + `]*`
)

var (
	scriptOnlyRe = regexp.MustCompile(`^[` + jpRange + jpSpace + `]+$`)
	jpRunRe      = regexp.MustCompile(`[` + jpRange + jpSpace + `]+`)
	jpCharRe     = regexp.MustCompile(`[` + jpRange + `]`)
	latinWordRe  = regexp.MustCompile(`^[A-Za-z]{2,}$`)

	nameLabelRe    = regexp.MustCompile(`氏` + sp + `名`)
	labelOnlyRe    = regexp.MustCompile(`^[氏名前]+` + sp + `$`)
	honorificRe    = regexp.MustCompile(`様|さん|殿`)
	leadingSepRe   = regexp.MustCompile(`^[\s　:：]+`)
	nameLabelCutRe = regexp.MustCompile(`氏` + sp + `名` + sp)
	meiCutRe       = regexp.MustCompile(`名` + sp)

	addressLabelRe    = regexp.MustCompile(`^住` + sp + `所` + sp + `$`)
	addressAnyRe      = regexp.MustCompile(`住` + sp + `所`)
	addressSameLineRe = regexp.MustCompile(`住` + sp + `所` + sp + `[:：\s　]+(.*)`)

	digitRe        = regexp.MustCompile(`[0-9０-９]`)
	hyphenRe       = regexp.MustCompile(`[-−‐ー]`)
	digitHyphenRe  = regexp.MustCompile(`[0-9０-９]+[-−‐ー][0-9０-９]+`)
	placeNumberRe  = regexp.MustCompile(`[\x{4E00}-\x{9FFF}\x{3040}-\x{309F}]+[0-9０-９]+[-−‐ー]`)
	adminSuffixRe  = regexp.MustCompile(`[都道府県市区町村]`)

	// Lines carrying these can never be a person's name.
	nameFieldKeywordRe = regexp.MustCompile(
		`住所|電話|開始|場所|曜日|ゴミ|もやす|もやさない|可燃|不燃|令和|平成|年|月|日|番号`)
	// Stricter variant for the loose leading-lines scan.
	broadFieldKeywordRe = regexp.MustCompile(
		`住所|電話|開始|場所|曜日|ゴミ|もやす|もやさない|可燃|不燃|令和|平成|年|月|日|番号|記入|記載|確認|提出|受付|担当|処理|登録|申込|申請|依頼|お願い|市|区|町|村`)
	partialNameRe = regexp.MustCompile(`氏|名`)
	partialSkipRe = regexp.MustCompile(`住所|電話|開始|場所|曜日`)

	addressFollowKeywordRe = regexp.MustCompile(
		`氏名|名前|依頼者|電話|開始|場所|曜日|ゴミ|もやす|もやさない|可燃|不燃|令和|平成|年|月|日|番号|にこやか|収集`)
	addressInlineKeywordRe = regexp.MustCompile(`氏名|名前|電話|開始|収集|ゴミ|令和|平成|年|月|日`)
	addressNumericSkipRe   = regexp.MustCompile(`氏名|名前|電話|令和|平成|年|月|日|曜日|収集|ゴミ|もやす|もやさない|にこやか`)

	reiwaRe   = regexp.MustCompile(`令和` + sp + `([0-9０-９]{1,2})` + sp + `年` + sp + `([0-9０-９]{1,2})` + sp + `月` + sp + `([0-9０-９]{1,2})` + sp + `日`)
	heiseiRe  = regexp.MustCompile(`平成` + sp + `([0-9０-９]{1,2})` + sp + `年` + sp + `([0-9０-９]{1,2})` + sp + `月` + sp + `([0-9０-９]{1,2})` + sp + `日`)
	westernRe = regexp.MustCompile(`([0-9０-９]{4})` + sp + `[年\-/]` + sp + `([0-9０-９]{1,2})` + sp + `[月\-/]` + sp + `([0-9０-９]{1,2})`)
)

// Era epochs: era year 1 corresponds to epoch+1 in the western calendar.
const (
	reiwaEpoch  = 2018
	heiseiEpoch = 1988
)

// titleMarkers identify the form's own header line. The line right
// after it is reliably boilerplate and never eligible as a name.
var titleMarkers = []string{"にこやか", "ニコヤカ"}

// excludeNames are tokens that disqualify a line as a person's name:
// organizational boilerplate and instructional phrases seen on the form.
var excludeNames = []string{
	"にこやか", "ニコヤカ", "収集", "依頼", "お願い", "よろしく", "ありがとう",
	"管理", "システム", "番号", "記入", "記載", "確認", "チェック", "提出",
	"受付", "担当", "処理", "登録", "申込", "申請", "フォーム",
	"上記", "以外", "上記以外", "該当", "選択", "指定", "記号", "印",
	"以下", "下記", "別紙", "添付", "参照", "詳細", "備考", "注意",
}

// fixedWasteKeywords are the category phrases printed on the form.
var fixedWasteKeywords = []string{
	"もやすごみ", "もやすゴミ", "燃やすごみ", "燃やすゴミ",
	"可燃ごみ", "可燃ゴミ", "可燃",
	"もやさないごみ", "もやさないゴミ", "燃やさないごみ", "燃やさないゴミ",
	"不燃ごみ", "不燃ゴミ", "不燃",
}

// Result is the candidate record assembled from the recognized text.
// Fields the cascade could not resolve are empty strings.
type Result struct {
	Name      string
	Address   string
	StartDate string // YYYY-MM-DD
	WasteType string

	Diagnostics Diagnostics
}

// LineClass is the classification of a single input line, emitted when
// a field could not be extracted so an operator can see why every line
// was rejected.
type LineClass struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Blank      bool   `json:"blank"`
	ScriptOnly bool   `json:"script_only"`
	HasDigit   bool   `json:"has_digit"`
	ExcludedBy string `json:"excluded_by,omitempty"`
	Label      bool   `json:"label"`
}

// Diagnostics traces how the cascade ran.
type Diagnostics struct {
	TitleLine        int         `json:"title_line"`         // -1 when absent
	NameLabelLine    int         `json:"name_label_line"`    // -1 when absent
	AddressLabelLine int         `json:"address_label_line"` // -1 when absent
	NameStrategy     string      `json:"name_strategy,omitempty"`
	AddressStrategy  string      `json:"address_strategy,omitempty"`
	Notes            []string    `json:"notes,omitempty"`
	Lines            []LineClass `json:"lines,omitempty"`
}

func (d *Diagnostics) note(format string, args ...interface{}) {
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
}

type Extractor struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Extractor {
	return &Extractor{log: log}
}

// document is the shared scan state for one extraction run.
type document struct {
	lines     []string
	titleLine int
	nameLabel int
	diag      *Diagnostics
}

// Extract parses rawText. registeredTypes supplements the fixed waste
// category keywords with the currently registered catalog names; the
// extractor holds no ambient state of its own.
func (e *Extractor) Extract(rawText string, registeredTypes []string) Result {
	res := Result{Diagnostics: Diagnostics{TitleLine: -1, NameLabelLine: -1, AddressLabelLine: -1}}

	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	doc := &document{lines: lines, titleLine: -1, nameLabel: -1, diag: &res.Diagnostics}
	doc.locateTitle()
	doc.locateNameLabel()
	res.Diagnostics.TitleLine = doc.titleLine
	res.Diagnostics.NameLabelLine = doc.nameLabel

	res.Name = e.extractName(doc)
	res.Address = e.extractAddress(doc)
	res.StartDate = e.extractStartDate(doc)
	res.WasteType = e.extractWasteType(doc, rawText, registeredTypes)

	if res.Name == "" || res.Address == "" {
		res.Diagnostics.Lines = classifyLines(lines)
	}

	e.log.Debug().
		Str("name", res.Name).
		Str("address", res.Address).
		Str("start_date", res.StartDate).
		Str("waste_type", res.WasteType).
		Int("lines", len(lines)).
		Msg("form text extracted")

	return res
}

func (d *document) locateTitle() {
	for i, line := range d.lines {
		for _, marker := range titleMarkers {
			if strings.Contains(line, marker) {
				d.titleLine = i
				return
			}
		}
	}
}

// locateNameLabel finds the 氏名 label at or after the title line.
func (d *document) locateNameLabel() {
	start := 0
	if d.titleLine >= 0 {
		start = d.titleLine + 1
	}
	for i := start; i < len(d.lines); i++ {
		if nameLabelRe.MatchString(d.lines[i]) {
			d.nameLabel = i
			return
		}
	}
}

// afterTitle reports whether idx is the line right below the form
// title, which is always boilerplate.
func (d *document) afterTitle(idx int) bool {
	return d.titleLine >= 0 && idx == d.titleLine+1
}

func excludedBy(line string) string {
	for _, token := range excludeNames {
		if strings.Contains(line, token) {
			return token
		}
	}
	return ""
}

func stripHonorifics(line string) string {
	return strings.TrimSpace(honorificRe.ReplaceAllString(line, ""))
}

func runeLen(s string) int {
	return len([]rune(s))
}

// nameStrategy is one step of the name cascade. A non-empty return
// value stops the cascade.
type nameStrategy struct {
	name string
	fn   func(d *document) string
}

var nameStrategies = []nameStrategy{
	{"full-label-same-line", nameFromLabelLine},
	{"full-label-following", nameFromLinesAfterLabel},
	{"between-name-and-address", nameBetweenLabels},
	{"partial-label", nameFromPartialLabel},
	{"leading-script-line", nameFromLeadingLines},
}

func (e *Extractor) extractName(doc *document) string {
	for _, strat := range nameStrategies {
		if name := strat.fn(doc); name != "" {
			doc.diag.NameStrategy = strat.name
			doc.diag.note("name resolved by %s", strat.name)
			return name
		}
	}
	doc.diag.note("name not found after %d strategies", len(nameStrategies))
	e.log.Warn().Int("lines", len(doc.lines)).Msg("form text: name not detected")
	return ""
}

// nameFromLabelLine handles the 氏名 label with the name on the same
// line, e.g. 「氏　名　　樋野 園子」. Runs of OCR-mangled Latin letters
// are tolerated so a misread name still surfaces for review.
func nameFromLabelLine(d *document) string {
	if d.nameLabel < 0 {
		return ""
	}
	after := nameLabelCutRe.ReplaceAllString(d.lines[d.nameLabel], "")
	after = leadingSepRe.ReplaceAllString(after, "")
	if after == "" {
		return ""
	}

	var parts []string
	for _, part := range strings.Fields(after) {
		if jpCharRe.MatchString(part) || latinWordRe.MatchString(part) {
			parts = append(parts, part)
		}
	}
	combined := strings.Join(parts, " ")
	if combined == "" {
		// No word survived the split; fall back to the longest
		// contiguous script run on the line.
		combined = strings.TrimSpace(jpRunRe.FindString(after))
	}
	if combined == "" {
		return ""
	}
	if token := excludedBy(combined); token != "" {
		d.diag.note("same-line candidate %q rejected by token %q", combined, token)
		return ""
	}
	cleaned := stripHonorifics(combined)
	if runeLen(cleaned) < 2 {
		return ""
	}
	return cleaned
}

// acceptNameLine applies the shared rules for lines scanned below a
// name label.
func acceptNameLine(d *document, idx int, keywords *regexp.Regexp) string {
	line := d.lines[idx]
	if line == "" {
		return ""
	}
	if d.afterTitle(idx) {
		return ""
	}
	if token := excludedBy(line); token != "" {
		d.diag.note("line %d %q rejected by token %q", idx, line, token)
		return ""
	}
	if keywords.MatchString(line) {
		return ""
	}
	cleaned := stripHonorifics(line)
	if runeLen(cleaned) < 2 || runeLen(cleaned) > 15 {
		return ""
	}
	if !scriptOnlyRe.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

func nameFromLinesAfterLabel(d *document) string {
	if d.nameLabel < 0 {
		return ""
	}
	for offset := 1; offset <= 3; offset++ {
		idx := d.nameLabel + offset
		if idx >= len(d.lines) {
			break
		}
		if name := acceptNameLine(d, idx, nameFieldKeywordRe); name != "" {
			return name
		}
	}
	return ""
}

// nameBetweenLabels covers forms where 氏名 was misread and only 名
// survived. The 名 line itself may carry the name; otherwise the lines
// between it and the 住所 label are scanned.
func nameBetweenLabels(d *document) string {
	if d.nameLabel >= 0 {
		return ""
	}

	meiLine, addrLine := -1, -1
	start := 0
	if d.titleLine >= 0 {
		start = d.titleLine + 1
	}
	for i := start; i < len(d.lines); i++ {
		line := d.lines[i]
		if meiLine < 0 && strings.Contains(line, "名") && !strings.Contains(line, "氏名") {
			meiLine = i
		}
		if addrLine < 0 && addressAnyRe.MatchString(line) {
			addrLine = i
			break
		}
	}
	if meiLine < 0 {
		return ""
	}

	if name := nameFromMeiLine(d, meiLine); name != "" {
		return name
	}

	if addrLine < 0 || meiLine+1 >= addrLine {
		return ""
	}
	for i := meiLine + 1; i < addrLine; i++ {
		line := d.lines[i]
		if line == "" || d.afterTitle(i) {
			continue
		}
		if token := excludedBy(line); token != "" {
			d.diag.note("line %d %q rejected by token %q", i, line, token)
			continue
		}
		if labelOnlyRe.MatchString(line) {
			continue
		}
		cleaned := stripHonorifics(line)
		if runeLen(cleaned) >= 2 {
			return cleaned
		}
	}
	return ""
}

// nameFromMeiLine reads a name written on the 名 line itself, e.g.
// 「名 田中太郎」, with the same word split as the full-label case.
func nameFromMeiLine(d *document, idx int) string {
	after := meiCutRe.ReplaceAllString(d.lines[idx], "")
	after = leadingSepRe.ReplaceAllString(after, "")
	if after == "" {
		return ""
	}

	var parts []string
	for _, part := range strings.Fields(after) {
		if jpCharRe.MatchString(part) || latinWordRe.MatchString(part) {
			parts = append(parts, part)
		}
	}
	combined := strings.Join(parts, " ")
	if combined == "" {
		combined = after
	}
	if token := excludedBy(combined); token != "" {
		d.diag.note("mei-line candidate %q rejected by token %q", combined, token)
		return ""
	}
	cleaned := stripHonorifics(combined)
	if runeLen(cleaned) < 2 {
		return ""
	}
	return cleaned
}

func nameFromPartialLabel(d *document) string {
	for i, line := range d.lines {
		if !partialNameRe.MatchString(line) || partialSkipRe.MatchString(line) {
			continue
		}
		for offset := 1; offset <= 2; offset++ {
			idx := i + offset
			if idx >= len(d.lines) {
				break
			}
			if name := acceptNameLine(d, idx, nameFieldKeywordRe); name != "" {
				return name
			}
		}
	}
	return ""
}

// nameFromLeadingLines is the loosest step: any short script-only line
// near the top of the form that is not a label, not boilerplate and
// carries no digits.
func nameFromLeadingLines(d *document) string {
	limit := len(d.lines)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		line := d.lines[i]
		if d.afterTitle(i) {
			continue
		}
		if !scriptOnlyRe.MatchString(line) || runeLen(line) < 2 || runeLen(line) > 15 {
			continue
		}
		if token := excludedBy(line); token != "" {
			continue
		}
		if broadFieldKeywordRe.MatchString(line) {
			continue
		}
		if digitRe.MatchString(line) {
			continue
		}
		cleaned := stripHonorifics(line)
		if runeLen(cleaned) >= 2 && runeLen(cleaned) <= 15 {
			return cleaned
		}
	}
	return ""
}

type addressStrategy struct {
	name string
	fn   func(d *document) string
}

var addressStrategies = []addressStrategy{
	{"label-following", addressFromLinesAfterLabel},
	{"label-same-line", addressFromInline},
	{"place-number-pattern", addressFromNumericShape},
}

func (e *Extractor) extractAddress(doc *document) string {
	for i, line := range doc.lines {
		if addressLabelRe.MatchString(line) {
			doc.diag.AddressLabelLine = i
			break
		}
	}

	for _, strat := range addressStrategies {
		if addr := strat.fn(doc); addr != "" {
			doc.diag.AddressStrategy = strat.name
			doc.diag.note("address resolved by %s", strat.name)
			return addr
		}
	}
	doc.diag.note("address not found after %d strategies", len(addressStrategies))
	e.log.Warn().Int("lines", len(doc.lines)).Msg("form text: address not detected")
	return ""
}

func addressFromLinesAfterLabel(d *document) string {
	if d.diag.AddressLabelLine < 0 {
		return ""
	}
	for offset := 1; offset <= 3; offset++ {
		idx := d.diag.AddressLabelLine + offset
		if idx >= len(d.lines) {
			break
		}
		line := d.lines[idx]
		if line == "" {
			continue
		}
		if addressFollowKeywordRe.MatchString(line) {
			d.diag.note("address candidate line %d %q rejected by field keyword", idx, line)
			continue
		}
		if runeLen(line) < 3 {
			continue
		}
		// Lines with house numbers or administrative suffixes are the
		// common shapes, but a bare place name right under the label is
		// trusted too.
		switch {
		case digitRe.MatchString(line) || hyphenRe.MatchString(line):
			d.diag.note("address line %d accepted (house number)", idx)
		case adminSuffixRe.MatchString(line):
			d.diag.note("address line %d accepted (administrative division)", idx)
		default:
			d.diag.note("address line %d accepted (below label)", idx)
		}
		return line
	}
	return ""
}

func addressFromInline(d *document) string {
	for _, line := range d.lines {
		m := addressSameLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		addr := strings.TrimSpace(m[1])
		if addr == "" || addressInlineKeywordRe.MatchString(addr) {
			continue
		}
		return addr
	}
	return ""
}

// addressFromNumericShape catches unlabeled addresses of the form
// place-name + digits + hyphen, e.g. 神原15-15-104.
func addressFromNumericShape(d *document) string {
	for _, line := range d.lines {
		if !digitHyphenRe.MatchString(line) {
			continue
		}
		if addressNumericSkipRe.MatchString(line) {
			continue
		}
		if placeNumberRe.MatchString(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func (e *Extractor) extractStartDate(doc *document) string {
	for _, line := range doc.lines {
		if strings.Contains(line, "令和") {
			if date := eraDate(line, reiwaRe, reiwaEpoch); date != "" {
				doc.diag.note("start date resolved from 令和 era form")
				return date
			}
			continue
		}
		if strings.Contains(line, "平成") {
			if date := eraDate(line, heiseiRe, heiseiEpoch); date != "" {
				doc.diag.note("start date resolved from 平成 era form")
				return date
			}
			continue
		}
		if m := westernRe.FindStringSubmatch(line); m != nil {
			doc.diag.note("start date resolved from western form")
			return fmt.Sprintf("%s-%s-%s", narrowDigits(m[1]), pad2(m[2]), pad2(m[3]))
		}
	}
	return ""
}

func eraDate(line string, re *regexp.Regexp, epoch int) string {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	eraYear := 0
	fmt.Sscanf(narrowDigits(m[1]), "%d", &eraYear)
	return fmt.Sprintf("%d-%s-%s", epoch+eraYear, pad2(m[2]), pad2(m[3]))
}

func (e *Extractor) extractWasteType(doc *document, rawText string, registeredTypes []string) string {
	keywords := make([]string, 0, len(fixedWasteKeywords)+len(registeredTypes))
	seen := map[string]struct{}{}
	for _, kw := range append(append([]string{}, fixedWasteKeywords...), registeredTypes...) {
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	for _, line := range doc.lines {
		for _, kw := range keywords {
			if strings.Contains(line, kw) {
				return kw
			}
		}
	}
	// Keywords split across lines still match against the joined text.
	joined := strings.ReplaceAll(rawText, "\n", " ")
	for _, kw := range keywords {
		if strings.Contains(joined, kw) {
			return kw
		}
	}
	return ""
}

func classifyLines(lines []string) []LineClass {
	classes := make([]LineClass, 0, len(lines))
	for i, line := range lines {
		classes = append(classes, LineClass{
			Index:      i,
			Text:       line,
			Blank:      line == "",
			ScriptOnly: line != "" && scriptOnlyRe.MatchString(line),
			HasDigit:   digitRe.MatchString(line),
			ExcludedBy: excludedBy(line),
			Label:      labelOnlyRe.MatchString(line) || addressLabelRe.MatchString(line),
		})
	}
	return classes
}

func narrowDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '０' && r <= '９' {
			return r - 0xFEE0
		}
		return r
	}, s)
}

func pad2(s string) string {
	s = narrowDigits(s)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
