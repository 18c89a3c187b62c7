package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"roguely-server/internal/domain"
)

var ErrBadJournal = errors.New("bad journal")

func (s *Store) Load(path string) (*Session, error) {
	return LoadFile(path)
}

// LoadFile читает журнал с диска.
func LoadFile(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}

func Decode(r io.Reader) (*Session, error) {
	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", ErrBadJournal)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrBadJournal, header.Version, Version1)
	}
	if header.Records < 0 || header.Frames < 0 {
		return nil, fmt.Errorf("%w: negative counters", ErrBadJournal)
	}

	session := &Session{
		Seed:    header.Seed,
		Started: time.Unix(0, header.Started),
		Frames:  int(header.Frames),
		Records: make([]Record, header.Records),
	}

	for i := range session.Records {
		var rh recordHeader
		if err := binary.Read(r, binary.LittleEndian, &rh); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		rec := Record{
			Frame:   int(rh.Frame),
			Kind:    RecordKind(rh.Kind),
			Action:  domain.ActionType(rh.Action),
			Elapsed: time.Duration(rh.Elapsed),
		}

		sessionBuf := make([]byte, rh.SessionLen)
		if _, err := io.ReadFull(r, sessionBuf); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rec.Session = string(sessionBuf)

		if rh.PayloadLen > 0 {
			rec.Payload = make(json.RawMessage, rh.PayloadLen)
			if _, err := io.ReadFull(r, rec.Payload); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}

		session.Records[i] = rec
	}

	return session, nil
}
