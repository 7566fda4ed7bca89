package main

import (
	"Quiz-OCR-Match-Backend/internal/api"
	"Quiz-OCR-Match-Backend/internal/client"
	"Quiz-OCR-Match-Backend/internal/config"
	"Quiz-OCR-Match-Backend/internal/matcher"
	"Quiz-OCR-Match-Backend/internal/recognizer"
	"Quiz-OCR-Match-Backend/internal/repository"
	"Quiz-OCR-Match-Backend/internal/router"
	"Quiz-OCR-Match-Backend/internal/service"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

func main() {
	cfg, err := config.Load(viper.GetViper(), "")
	if err != nil {
		log.Fatalf("加载配置失败: %s", err)
	}

	bankRepo := repository.NewQuestionBankRepository(cfg.Bank.Path)
	if !bankRepo.Exists() {
		log.Printf("警告：题库文件不存在: %s. 首次使用请先调用 POST /api/v1/bank/update 更新题库数据。", cfg.Bank.Path)
	}
	bankClient := client.NewQuestionBankClient(cfg.Bank.URL, cfg.Bank.TimeoutSeconds, cfg.Bank.MaxRetries)
	ocr := recognizer.NewTesseract(cfg.OCR.Languages, cfg.OCR.MinHeight)
	m := matcher.New(cfg.Matcher.QuestionThreshold)

	quizService := service.NewQuizService(ocr, bankRepo, bankClient, m)
	quizHandler := api.NewQuizHandler(quizService, cfg.Upload.MaxBytes)

	r := router.SetupRouter(quizHandler, cfg.CORS.AllowedOrigins)

	fmt.Printf("服务启动于 http://localhost%s\n", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务启动失败: %s", err)
	}
}
