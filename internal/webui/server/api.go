package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"typedterm/internal/codefmt"
	"typedterm/internal/highlight"
	"typedterm/internal/segment"
)

type tokenizeRequest struct {
	Command string `json:"command"`
}

type codeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language"`
	Format   string `json:"format"`
}

func tokenizeHandler(c *gin.Context) {
	var req tokenizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errJSON(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": segment.Tokenize(req.Command)})
}

func formatHandler(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errJSON(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":     codefmt.Format(req.Code, req.Language),
		"filename": codefmt.DefaultFilename(req.Language),
	})
}

func (s *Server) highlightHandler(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errJSON(err))
		return
	}
	code := codefmt.Format(req.Code, req.Language)
	f := highlight.FormatHTML
	if req.Format != "" {
		f = highlight.ParseFormat(req.Format)
	}
	out := s.hl.Render(c.Request.Context(), code, req.Language, f)
	key := "html"
	if f != highlight.FormatHTML {
		key = string(f)
	}
	c.JSON(http.StatusOK, gin.H{key: out, "language": req.Language, "known": highlight.Known(req.Language)})
}

func (s *Server) scenariosHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": s.Scenarios})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func errJSON(err error) map[string]string { return map[string]string{"error": err.Error()} }
