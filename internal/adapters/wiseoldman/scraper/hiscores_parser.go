package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var ErrNoHiscores = errors.New("no hiscores rows found")

type level struct {
	Level int `json:"level"`
}

type kills struct {
	Kills int `json:"kills"`
}

type document struct {
	Skills map[string]level `json:"skills"`
	Bosses map[string]kills `json:"bosses"`
}

// ParseHiscores reads the official hiscorepersonal page and re-encodes it as
// a progress document with "skills" and "bosses" sections. Skill rows carry
// rank, level and experience; activity rows carry rank and score.
func ParseHiscores(r io.Reader) ([]byte, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := document{
		Skills: make(map[string]level),
		Bosses: make(map[string]kills),
	}

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			name, numbers := extractRow(n)
			switch {
			case name == "":
			case len(numbers) == 3:
				doc.Skills[name] = level{Level: numbers[1]}
			case len(numbers) == 2:
				doc.Bosses[name] = kills{Kills: numbers[1]}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(root)

	if len(doc.Skills) == 0 && len(doc.Bosses) == 0 {
		return nil, ErrNoHiscores
	}

	return json.Marshal(doc)
}

// extractRow returns the row label and the numeric cells that follow it.
// Rows with any non-numeric cell after the label are headers or notices.
func extractRow(tr *html.Node) (string, []int) {
	var name string
	var numbers []int

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "td" {
			continue
		}
		text := strings.TrimSpace(getTextContent(c))
		if text == "" {
			continue
		}
		if name == "" {
			if _, ok := parseNumber(text); ok {
				return "", nil
			}
			name = text
			continue
		}
		n, ok := parseNumber(text)
		if !ok {
			return "", nil
		}
		numbers = append(numbers, n)
	}

	return name, numbers
}

func parseNumber(text string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(text, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func getTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(getTextContent(c))
	}

	return text.String()
}
