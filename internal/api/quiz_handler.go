package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"Quiz-OCR-Match-Backend/internal/client"
	"Quiz-OCR-Match-Backend/internal/recognizer"
	"Quiz-OCR-Match-Backend/internal/repository"
	"Quiz-OCR-Match-Backend/internal/service"
)

type MatchTextRequest struct {
	Text string `json:"text"`
}

type QuizHandler struct {
	quizService    *service.QuizService
	maxUploadBytes int64
}

func NewQuizHandler(quizService *service.QuizService, maxUploadBytes int64) *QuizHandler {
	return &QuizHandler{quizService: quizService, maxUploadBytes: maxUploadBytes}
}

func (h *QuizHandler) handleError(c *gin.Context, err error, contextMsg string) {
	switch {
	case errors.Is(err, repository.ErrBankNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "未找到题库文件,请先点击更新题库后再试！"})
	case errors.Is(err, recognizer.ErrNoText):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": service.NoTextMessage})
	case errors.Is(err, repository.ErrInvalidBank):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": contextMsg, "details": err.Error()})
	case errors.Is(err, client.ErrUnexpectedStatus):
		c.JSON(http.StatusBadGateway, gin.H{"error": contextMsg, "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": contextMsg, "details": err.Error()})
	}
}

func respond(c *gin.Context, p *service.Presentation) {
	c.JSON(http.StatusOK, gin.H{
		"id":      p.ID,
		"text":    p.Text,
		"result":  p.Result,
		"display": p.Render(),
	})
}

// MatchTextHandler matches text recognized elsewhere.
func (h *QuizHandler) MatchTextHandler(c *gin.Context) {
	var req MatchTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	p, err := h.quizService.MatchText(req.Text)
	if err != nil {
		h.handleError(c, err, "匹配题目失败")
		return
	}
	respond(c, p)
}

// RecognizeHandler accepts a still image in the multipart field "image".
func (h *QuizHandler) RecognizeHandler(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少图片文件: " + err.Error()})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".png"
	}
	tmp, err := os.CreateTemp("", "frame-*"+ext)
	if err != nil {
		h.handleError(c, err, "保存图片失败")
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("[API] 清理临时图片失败: %v", err)
		}
	}()

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.handleError(c, err, "保存图片失败")
		return
	}

	p, err := h.quizService.RecognizeImage(c.Request.Context(), tmpPath)
	if err != nil {
		h.handleError(c, err, "识别失败")
		return
	}
	respond(c, p)
}

func (h *QuizHandler) UpdateBankHandler(c *gin.Context) {
	info, err := h.quizService.UpdateBank(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "题库数据更新失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("题库数据已成功更新！共 %d 题。", info.Records),
		"bank":    info,
	})
}

func (h *QuizHandler) BankInfoHandler(c *gin.Context) {
	info, err := h.quizService.BankInfo()
	if err != nil {
		h.handleError(c, err, "读取题库失败")
		return
	}
	c.JSON(http.StatusOK, info)
}
