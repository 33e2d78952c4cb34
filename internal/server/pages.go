package server

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/publish"
)

// Pages serve the same tree `boards publish` writes, rendered to HTML, so relative links between
// the index and task pages work unchanged.

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML in task descriptions stays escaped; html.WithUnsafe() is not set.
		html.WithHardWraps(),
	),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

func renderMarkdownHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return template.HTML("")
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}

func renderPage(c echo.Context, title, md string) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: renderMarkdownHTML(md)}); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func redirectBoardIndex() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/boards/"+c.Param("boardId")+"/index.md")
	}
}

func getBoardPage(s *Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("boardId")
		s.mu.Lock()
		b, _, ok := model.FindBoard(s.sess.Hier.Current(), id)
		s.mu.Unlock()
		if !ok {
			return c.String(http.StatusNotFound, mutate.NotFoundError{Kind: "board", ID: id}.Error())
		}
		md, err := publish.RenderBoardMarkdown(b)
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return renderPage(c, b.BoardName, md)
	}
}

func getTaskPage(s *Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		boardID := c.Param("boardId")
		taskID := strings.TrimSuffix(c.Param("file"), ".md")
		s.mu.Lock()
		b, _, ok := model.FindBoard(s.sess.Hier.Current(), boardID)
		s.mu.Unlock()
		if !ok {
			return c.String(http.StatusNotFound, mutate.NotFoundError{Kind: "board", ID: boardID}.Error())
		}
		l, idx, ok := model.LocateTask(b, taskID)
		if !ok {
			return c.String(http.StatusNotFound, mutate.NotFoundError{Kind: "task", ID: taskID}.Error())
		}
		t := l.Tasks[idx]
		md, err := publish.RenderTaskMarkdown(b, l, t)
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return renderPage(c, t.TaskName, md)
	}
}
