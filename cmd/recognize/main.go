// Command recognize matches a single still image, or text recognized
// elsewhere, against the local question bank and prints the result.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"Quiz-OCR-Match-Backend/internal/client"
	"Quiz-OCR-Match-Backend/internal/config"
	"Quiz-OCR-Match-Backend/internal/matcher"
	"Quiz-OCR-Match-Backend/internal/recognizer"
	"Quiz-OCR-Match-Backend/internal/repository"
	"Quiz-OCR-Match-Backend/internal/service"
)

func main() {
	flags := pflag.NewFlagSet("recognize", pflag.ExitOnError)
	configFile := flags.StringP("config", "c", "", "config file (default ./config/config.yaml or ./config.yaml)")
	imagePath := flags.StringP("image", "i", "", "still image to recognize")
	text := flags.StringP("text", "t", "", "already recognized text to match")
	update := flags.BoolP("update", "u", false, "download the question bank before matching")
	flags.String("bank", "", "question bank file (overrides bank.path)")
	flags.Float64("threshold", 0, "question match threshold (overrides matcher.question_threshold)")
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	for key, name := range map[string]string{
		"bank.path":                  "bank",
		"matcher.question_threshold": "threshold",
	} {
		f := flags.Lookup(name)
		if !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			log.Fatalf("绑定参数 --%s 失败: %s", name, err)
		}
	}
	cfg, err := config.Load(v, *configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	quizService := service.NewQuizService(
		recognizer.NewTesseract(cfg.OCR.Languages, cfg.OCR.MinHeight),
		repository.NewQuestionBankRepository(cfg.Bank.Path),
		client.NewQuestionBankClient(cfg.Bank.URL, cfg.Bank.TimeoutSeconds, cfg.Bank.MaxRetries),
		matcher.New(cfg.Matcher.QuestionThreshold),
	)

	if *update {
		info, err := quizService.UpdateBank(ctx)
		if err != nil {
			log.Fatalf("%s", err)
		}
		fmt.Printf("题库数据已成功更新！共 %d 题 (%d 道选择题)。\n", info.Records, info.Choices)
	}

	var p *service.Presentation
	switch {
	case *imagePath != "":
		p, err = quizService.RecognizeImage(ctx, *imagePath)
	case *text != "":
		p, err = quizService.MatchText(*text)
	default:
		if *update {
			return
		}
		flags.Usage()
		os.Exit(2)
	}
	if err != nil {
		switch {
		case errors.Is(err, recognizer.ErrNoText):
			fmt.Println(service.NoTextMessage)
			os.Exit(1)
		case errors.Is(err, repository.ErrBankNotFound):
			log.Fatalf("未找到题库文件,请先使用 --update 更新题库后再试！")
		default:
			log.Fatalf("%s", err)
		}
	}
	fmt.Println(p.Render())
}
