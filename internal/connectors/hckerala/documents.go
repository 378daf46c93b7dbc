package hckerala

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/casedocs/internal/logger"
)

// judgementButtonText labels the single button that opens the judgement.
const judgementButtonText = "VIEW JUDGMENT"

// onclickArgs extracts the quoted arguments of a call such as
// "viewpdf('tok','lookup','root');" as ["tok", "lookup", "root"].
func onclickArgs(onclick string) []string {
	open := strings.Index(onclick, "(")
	if open < 0 {
		return nil
	}
	inner := onclick[open+1:]
	if end := strings.LastIndex(inner, ")"); end >= 0 {
		inner = inner[:end]
	}
	inner = strings.ReplaceAll(inner, "'", "")
	inner = strings.ReplaceAll(inner, `"`, "")
	if strings.TrimSpace(inner) == "" {
		return nil
	}

	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// InterimOrderURL builds the viewer URL of one interim order.
func InterimOrderURL(baseURL, token, lookup string) string {
	return fmt.Sprintf("%s%s?token=%s+&lookups=%s", baseURL, pathFileView, token, lookup)
}

// JudgementURL builds the viewer URL of a judgement.
func JudgementURL(baseURL, token, lookup, citation string) string {
	return fmt.Sprintf("%s%s?token=%s+&lookups=%s+&citationno=%s", baseURL, pathFileViewCitation, token, lookup, citation)
}

// DocumentURLs collects the viewer URLs behind the case page's document
// buttons. Every primary button other than the judgement button is an
// interim order. The judgement URL is empty unless exactly one judgement
// button exists.
func DocumentURLs(doc *goquery.Document, baseURL string) (interim []string, judgement string) {
	interim = []string{}
	var judgements []string

	doc.Find("button.btn.btn-primary").Each(func(_ int, btn *goquery.Selection) {
		anchor := btn.Find("a").First()
		onclick, ok := anchor.Attr("onclick")
		if !ok {
			return
		}
		args := onclickArgs(onclick)

		if cellText(btn) == judgementButtonText {
			if len(args) < 3 {
				logger.Warn("judgement button onclick %q has %d args", onclick, len(args))
				return
			}
			judgements = append(judgements, JudgementURL(baseURL, args[0], args[1], args[2]))
			return
		}

		if len(args) < 2 {
			logger.Warn("interim order button onclick %q has %d args", onclick, len(args))
			return
		}
		interim = append(interim, InterimOrderURL(baseURL, args[0], args[1]))
	})

	if len(judgements) == 1 {
		judgement = judgements[0]
	}
	return interim, judgement
}
