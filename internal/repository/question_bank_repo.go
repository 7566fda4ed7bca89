package repository

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"Quiz-OCR-Match-Backend/internal/model"
)

var (
	ErrBankNotFound = errors.New("question bank file not found, update the bank first")
	ErrInvalidBank  = errors.New("question bank file is invalid")
)

// QuestionBankRepository owns the on-disk question.json. The bank is read
// from disk on every Load so that a freshly downloaded file is picked up by
// the very next match.
type QuestionBankRepository struct {
	filePath string
	mu       sync.RWMutex
}

func NewQuestionBankRepository(filePath string) *QuestionBankRepository {
	log.Printf("[QuestionBank] 仓库已初始化，文件路径: '%s'", filePath)
	return &QuestionBankRepository{filePath: filePath}
}

func (r *QuestionBankRepository) Path() string {
	return r.filePath
}

// Exists reports whether the bank file is present.
func (r *QuestionBankRepository) Exists() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, err := os.Stat(r.filePath)
	return err == nil
}

// Load reads the bank from disk. Records with a blank question are skipped
// with a warning; only an unreadable or malformed document is an error.
func (r *QuestionBankRepository) Load() (model.QuestionBank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byteValue, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBankNotFound
		}
		return nil, fmt.Errorf("读取题库文件 '%s' 失败: %w", r.filePath, err)
	}

	bank, err := model.ParseBank(byteValue)
	if err != nil {
		log.Printf("[QuestionBank] 加载失败: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}
	bank, err = bank.Sanitize()
	if err != nil {
		log.Printf("[QuestionBank] 警告：已跳过无效题目: %v", err)
	}
	return bank, nil
}

// Replace validates data as a bank document and atomically swaps it in.
// The previous file is left untouched when validation fails.
func (r *QuestionBankRepository) Replace(data []byte) (model.QuestionBank, error) {
	bank, err := model.DecodeBank(data)
	if err != nil {
		log.Printf("[QuestionBank] 拒绝写入: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}

	log.Println("[QuestionBank] 正在尝试加锁 (写入) 并持久化文件...")
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		log.Println("[QuestionBank] 解锁 (写入) 完成。")
	}()

	if err := r.persist(data); err != nil {
		return nil, err
	}
	log.Printf("[QuestionBank] 持久化成功: %d 条题目已写入 '%s'。", len(bank), r.filePath)
	return bank, nil
}

func (r *QuestionBankRepository) persist(data []byte) error {
	dir := filepath.Dir(r.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建题库目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".question-*.json")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Rename(tmpName, r.filePath); err != nil {
		_ = os.Remove(tmpName)
		log.Printf("[QuestionBank] 持久化失败: 写入文件错误: %v", err)
		return fmt.Errorf("替换题库文件失败: %w", err)
	}
	return nil
}
