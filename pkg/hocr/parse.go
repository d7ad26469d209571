package hocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// ParseHOCR converts raw hOCR data into a structured HOCR object.
func ParseHOCR(data []byte) (HOCR, error) {
	var result HOCR
	result.Metadata = make(map[string]string)

	// Anything not declared as UTF-8 is read as Latin-1
	decoded := data
	if enc := declaredCharset(string(data)); enc != "" && enc != "utf-8" && enc != "utf8" {
		var err error
		decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return result, fmt.Errorf("failed to decode %s: %w", enc, err)
		}
	}

	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return result, err
	}

	extractDocumentMeta(&result, doc)

	for _, n := range collect(doc, "ocr_page") {
		result.Pages = append(result.Pages, processPage(n))
	}

	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in HOCR data")
	}
	return result, nil
}

// declaredCharset returns the lower-cased charset named in a meta tag, or
// "" when there is none.
func declaredCharset(content string) string {
	i := strings.Index(strings.ToLower(content), "charset=")
	if i < 0 {
		return ""
	}
	rest := content[i+len("charset="):]
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' ' || r == '/'
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns a structured BoundingBox object or nil if extraction fails
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	if bbox, ok := ParseTitle(title)["bbox"]; ok {
		if boxes := parseBoxes(bbox); len(boxes) == 1 {
			return &boxes[0]
		}
	}
	return nil
}

// parseBoxes reads groups of four numbers, as found in bbox and x_bboxes.
func parseBoxes(vals []string) []BoundingBox {
	if len(vals) == 0 || len(vals)%4 != 0 {
		return nil
	}
	out := make([]BoundingBox, 0, len(vals)/4)
	for i := 0; i < len(vals); i += 4 {
		var c [4]float64
		for j := range c {
			v, err := strconv.ParseFloat(vals[i+j], 64)
			if err != nil {
				return nil
			}
			c[j] = v
		}
		out = append(out, NewBoundingBox(c[0], c[1], c[2], c[3]))
	}
	return out
}

// extractDocumentMeta extracts document-level metadata from the html tag
// and the head section
func extractDocumentMeta(result *HOCR, doc *html.Node) {
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.Data {
		case "html":
			if lang := getAttrVal(n, "lang"); lang != "" {
				result.Language = lang
			} else if lang := getAttrVal(n, "xml:lang"); lang != "" {
				result.Language = lang
			}
		case "title":
			if n.FirstChild != nil {
				result.Title = n.FirstChild.Data
			}
		case "meta":
			name, content := getAttrVal(n, "name"), getAttrVal(n, "content")
			if name == "" || content == "" {
				return false
			}
			switch name {
			case "ocr-system", "ocr-capabilities", "ocr-number-of-pages", "ocr-langs":
				result.Metadata[name] = content
			case "description":
				result.Description = content
			case "dc.language":
				result.Language = content
			}
		case "body":
			return false
		}
		return true
	})
}

// common holds the attributes every hOCR element carries
type common struct {
	id, lang string
	bbox     BoundingBox
	props    map[string][]string
	title    string
}

func readCommon(n *html.Node) common {
	c := common{
		id:    getAttrVal(n, "id"),
		lang:  getAttrVal(n, "lang"),
		title: getAttrVal(n, "title"),
	}
	c.props = ParseTitle(c.title)
	if bbox := ParseBoundingBoxFromTitle(c.title); bbox != nil {
		c.bbox = *bbox
	}
	return c
}

// metadata flattens the title properties that have no dedicated field
func (c common) metadata(skip ...string) map[string]string {
	m := make(map[string]string)
	for k, v := range c.props {
		if k == "bbox" || contains(skip, k) {
			continue
		}
		m[k] = strings.Join(v, " ")
	}
	return m
}

// processPage extracts page information and its children (areas, paragraphs, lines)
func processPage(n *html.Node) Page {
	c := readCommon(n)
	page := Page{
		ID:       c.id,
		Lang:     c.lang,
		Title:    c.title,
		BBox:     c.bbox,
		Metadata: c.metadata("image", "ppageno"),
	}
	if image := c.props["image"]; len(image) > 0 {
		page.ImageName = strings.Trim(image[0], `"`)
	}
	if ppageno := c.props["ppageno"]; len(ppageno) > 0 {
		page.PageNumber, _ = strconv.Atoi(ppageno[0])
	}

	for _, child := range collectChildren(n, "ocr_carea", "ocr_par", "ocr_line") {
		switch child.class {
		case "ocr_carea":
			page.Areas = append(page.Areas, processArea(child.node))
		case "ocr_par":
			page.Paragraphs = append(page.Paragraphs, processParagraph(child.node))
		case "ocr_line":
			page.Lines = append(page.Lines, processLine(child.node))
		}
	}
	return page
}

// processArea extracts area information and its children (paragraphs, lines, words)
func processArea(n *html.Node) Area {
	c := readCommon(n)
	area := Area{ID: c.id, Lang: c.lang, BBox: c.bbox, Metadata: c.metadata()}
	for _, child := range collectChildren(n, "ocr_par", "ocr_line", "ocrx_word") {
		switch child.class {
		case "ocr_par":
			area.Paragraphs = append(area.Paragraphs, processParagraph(child.node))
		case "ocr_line":
			area.Lines = append(area.Lines, processLine(child.node))
		case "ocrx_word":
			area.Words = append(area.Words, processWord(child.node))
		}
	}
	return area
}

// processParagraph extracts paragraph information and its children (lines, words)
func processParagraph(n *html.Node) Paragraph {
	c := readCommon(n)
	par := Paragraph{ID: c.id, Lang: c.lang, BBox: c.bbox, Metadata: c.metadata()}
	for _, child := range collectChildren(n, "ocr_line", "ocrx_word") {
		switch child.class {
		case "ocr_line":
			par.Lines = append(par.Lines, processLine(child.node))
		case "ocrx_word":
			par.Words = append(par.Words, processWord(child.node))
		}
	}
	return par
}

// processLine extracts line information and its words
func processLine(n *html.Node) Line {
	c := readCommon(n)
	line := Line{
		ID:       c.id,
		Lang:     c.lang,
		BBox:     c.bbox,
		Baseline: strings.Join(c.props["baseline"], " "),
		Metadata: c.metadata("baseline"),
	}
	for _, w := range collect(n, "ocrx_word") {
		line.Words = append(line.Words, processWord(w))
	}
	return line
}

// processWord extracts a word's text, style and properties
func processWord(n *html.Node) Word {
	c := readCommon(n)
	word := Word{
		ID:       c.id,
		Lang:     c.lang,
		BBox:     c.bbox,
		Symbols:  parseBoxes(c.props["x_bboxes"]),
		Metadata: c.metadata("x_wconf", "x_bboxes", "lang"),
	}
	if conf := c.props["x_wconf"]; len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}
	if lang := c.props["lang"]; len(lang) > 0 {
		word.Lang = lang[0]
	}

	walk(n, func(d *html.Node) bool {
		if d.Type == html.ElementNode {
			switch d.Data {
			case "strong", "b":
				word.Bold = true
			case "em", "i":
				word.Italic = true
			}
		}
		return true
	})
	word.Text = extractTextContent(n)
	return word
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(d *html.Node) bool {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
		return true
	})
	return strings.TrimSpace(sb.String())
}

// walk visits n and its descendants depth first. Returning false from
// visit skips the children of that node.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

type classified struct {
	class string
	node  *html.Node
}

// collectChildren finds the outermost descendants of n carrying one of the
// given classes, without descending into a match.
func collectChildren(n *html.Node, classes ...string) []classified {
	var out []classified
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(d *html.Node) bool {
			if d.Type != html.ElementNode {
				return true
			}
			for _, cl := range strings.Fields(getAttrVal(d, "class")) {
				if contains(classes, cl) {
					out = append(out, classified{class: cl, node: d})
					return false
				}
			}
			return true
		})
	}
	return out
}

// collect is collectChildren for a single class
func collect(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	for _, c := range collectChildren(n, class) {
		out = append(out, c.node)
	}
	return out
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
