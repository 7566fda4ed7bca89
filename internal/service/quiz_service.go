package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"Quiz-OCR-Match-Backend/internal/matcher"
	"Quiz-OCR-Match-Backend/internal/model"
	"Quiz-OCR-Match-Backend/internal/recognizer"
)

type BankStore interface {
	Load() (model.QuestionBank, error)
	Replace(data []byte) (model.QuestionBank, error)
	Path() string
}

type BankDownloader interface {
	Download(ctx context.Context) ([]byte, error)
}

type QuizService struct {
	recognizer recognizer.Recognizer
	bankRepo   BankStore
	bankClient BankDownloader
	matcher    *matcher.Matcher
}

func NewQuizService(rec recognizer.Recognizer, bankRepo BankStore, bankClient BankDownloader, m *matcher.Matcher) *QuizService {
	return &QuizService{
		recognizer: rec,
		bankRepo:   bankRepo,
		bankClient: bankClient,
		matcher:    m,
	}
}

type BankInfo struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
	Choices int    `json:"choices"`
}

// MatchText loads the bank fresh from disk and matches text against it.
func (s *QuizService) MatchText(text string) (*Presentation, error) {
	return s.matchText(uuid.NewString(), text)
}

func (s *QuizService) matchText(id, text string) (*Presentation, error) {
	bank, err := s.bankRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("加载题库失败: %w", err)
	}

	startTime := time.Now()
	result := s.matcher.Match(text, bank)
	if result.Matched {
		log.Printf("[Match %s] 命中题目 (score=%.3f, viaOption=%t, 耗时 %v): %s", id, result.Score, result.ViaOption, time.Since(startTime), result.Question)
	} else {
		log.Printf("[Match %s] 未匹配到题目 (best score=%.3f, 题库 %d 题)", id, result.Score, len(bank))
	}
	return &Presentation{ID: id, Text: text, Result: result}, nil
}

// RecognizeImage runs OCR on a still image and matches the recognized text.
func (s *QuizService) RecognizeImage(ctx context.Context, imagePath string) (*Presentation, error) {
	id := uuid.NewString()
	log.Printf("[Match %s] 开始识别图片: %s", id, imagePath)

	text, err := s.recognizer.Recognize(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("识别图片失败: %w", err)
	}
	return s.matchText(id, text)
}

// UpdateBank downloads the bank document and replaces the local file.
func (s *QuizService) UpdateBank(ctx context.Context) (*BankInfo, error) {
	log.Println("[QuestionBank] 正在更新题库数据...")
	data, err := s.bankClient.Download(ctx)
	if err != nil {
		return nil, fmt.Errorf("题库数据更新失败: %w", err)
	}
	bank, err := s.bankRepo.Replace(data)
	if err != nil {
		return nil, fmt.Errorf("题库数据更新失败: %w", err)
	}
	log.Printf("[QuestionBank] 题库数据已成功更新，共 %d 题。", len(bank))
	return s.info(bank), nil
}

func (s *QuizService) BankInfo() (*BankInfo, error) {
	bank, err := s.bankRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("加载题库失败: %w", err)
	}
	return s.info(bank), nil
}

func (s *QuizService) info(bank model.QuestionBank) *BankInfo {
	return &BankInfo{Path: s.bankRepo.Path(), Records: len(bank), Choices: bank.ChoiceCount()}
}
