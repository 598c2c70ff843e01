package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"listingscope/domain/listing"
)

var printer = message.NewPrinter(language.English)

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// First render to a buffer to catch any errors before writing to response
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("[UI] template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("[UI] error writing template response: %v", err)
	}
}

// renderMarkdown turns a narrative into HTML. A parser is single-use, so each call builds one.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(v *float64) string {
			if v == nil {
				return listing.NotAvailable
			}
			return printer.Sprintf("$%.2f", *v)
		},
		"wholeMoney": func(v *float64) string {
			if v == nil {
				return listing.NotAvailable
			}
			return printer.Sprintf("$%.0f", *v)
		},
		"decimal": func(v *float64) string {
			if v == nil {
				return listing.NotAvailable
			}
			return fmt.Sprintf("%.2f", *v)
		},
		"count": func(n int) string {
			return printer.Sprintf("%d", n)
		},
		"cell": func(v interface{}) string {
			switch x := v.(type) {
			case nil:
				return ""
			case float64:
				return fmt.Sprintf("%g", x)
			default:
				return fmt.Sprint(x)
			}
		},
		"json": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
		"markdown": renderMarkdown,
		"join":     strings.Join,
		"contains": func(values []string, v string) bool {
			for _, x := range values {
				if x == v {
					return true
				}
			}
			return false
		},
	}
}
