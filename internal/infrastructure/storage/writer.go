package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	MagicHeader string = `RGJL`
	Version1    uint32 = 1
)

// fileHeader пишется binary.Write целиком: только числа и массивы.
type fileHeader struct {
	Magic   [4]byte
	Version uint32
	Seed    int64
	Started int64 // unix nano
	Frames  int32
	Records int32
}

// recordHeader предшествует телу записи (сессия + payload).
type recordHeader struct {
	Frame      int32
	Kind       uint8
	Action     uint8
	SessionLen uint8
	PayloadLen uint16
	Elapsed    int64
}

// Store сохраняет журналы в каталог.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save пишет журнал в файл journal_<seed>_<started>.rgj и возвращает путь.
func (s *Store) Save(session *Session) (string, error) {
	name := fmt.Sprintf("journal_%d_%d.rgj", session.Seed, session.Started.Unix())
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Encode(w, session); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// Encode пишет журнал в бинарном формате (little-endian).
func Encode(w io.Writer, s *Session) error {
	header := fileHeader{
		Version: Version1,
		Seed:    s.Seed,
		Started: s.Started.UnixNano(),
		Frames:  int32(s.Frames),
		Records: int32(len(s.Records)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range s.Records {
		sessionBytes := []byte(rec.Session)
		if len(sessionBytes) > 255 {
			return fmt.Errorf("record %d: session too long: %d", i, len(sessionBytes))
		}
		if len(rec.Payload) > 65535 {
			return fmt.Errorf("record %d: payload too long: %d", i, len(rec.Payload))
		}

		rh := recordHeader{
			Frame:      int32(rec.Frame),
			Kind:       uint8(rec.Kind),
			Action:     uint8(rec.Action),
			SessionLen: uint8(len(sessionBytes)),
			PayloadLen: uint16(len(rec.Payload)),
			Elapsed:    int64(rec.Elapsed),
		}
		if err := binary.Write(w, binary.LittleEndian, &rh); err != nil {
			return err
		}
		if _, err := w.Write(sessionBytes); err != nil {
			return err
		}
		if len(rec.Payload) > 0 {
			if _, err := w.Write(rec.Payload); err != nil {
				return err
			}
		}
	}
	return nil
}
