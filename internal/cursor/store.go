package cursor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultValue là sentinel "chưa từng sync": mọi reservation ID đều lớn hơn
// nó, và ở chế độ temporal nó được hiểu là thời điểm epoch.
const DefaultValue = "0"

// Store lưu đúng một giá trị cursor, bền vững qua các lần restart process.
type Store interface {
	// Read trả về DefaultValue nếu cursor chưa từng được ghi hoặc dữ liệu
	// đã lưu bị rỗng/hỏng. Chỉ trả lỗi khi storage thật sự không đọc được.
	Read() (string, error)
	// Write phải bền vững trước khi return, không buffer qua các lần chạy.
	Write(value string) error
}

// FileStore lưu cursor dưới dạng plain text trong một file duy nhất.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return DefaultValue, nil
	}
	if err != nil {
		return "", fmt.Errorf("cursor: read %s: %w", s.Path, err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return DefaultValue, nil
	}
	return value, nil
}

func (s *FileStore) Write(value string) error {
	// Ghi qua file tạm rồi rename để không bao giờ để lại cursor ghi dở.
	tmp := s.Path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("cursor: open %s: %w", tmp, err)
	}
	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return fmt.Errorf("cursor: write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("cursor: sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cursor: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("cursor: rename %s: %w", filepath.Base(tmp), err)
	}
	return nil
}
