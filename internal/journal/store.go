package journal

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/cosmosider/O-bok-wan/internal/logger"
)

// Store 把交易日志保存为单个带表头的 CSV 文件。
// 追加时整体重写文件，代价 O(n)，对个人日志的规模足够。
// 进程内用互斥锁串行化读写；跨进程并发写仍是 last-write-wins。
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// LoadAll 按写入顺序返回全部记录。
// 文件不存在或无法解析时返回空列表，不向调用方抛错。
func (s *Store) LoadAll() []TradeRecord {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() []TradeRecord {
	f, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("journal: 打开 %s 失败，按空历史处理: %v", s.path, err)
		}
		return nil
	}
	defer f.Close()
	var records []TradeRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		logger.Warnf("journal: 解析 %s 失败，按空历史处理: %v", s.path, err)
		return nil
	}
	return records
}

// Append 读取现有历史，追加一条记录后整体重写文件。
func (s *Store) Append(rec TradeRecord) error {
	if s == nil {
		return os.ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.loadLocked(), rec)
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&records, f)
}
