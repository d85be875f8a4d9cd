package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoSession нет действующего ключа API
var ErrNoSession = errors.New("no active session, run clubadmin login")

// Credentials ключ API и клуб администратора
type Credentials struct {
	APIKey string `json:"api_key"`
	ClubID int64  `json:"club_id"`
}

// Session единственный владелец учётных данных. Передаётся по указателю всем,
// кому нужны ключ и клуб; только он сбрасывает их при выходе.
type Session struct {
	mu    sync.RWMutex
	creds *Credentials
	path  string // пусто - сессия только в памяти
}

// New создаёт сессию в памяти
func New(creds Credentials) *Session {
	s := &Session{}
	if creds.APIKey != "" {
		s.creds = &creds
	}
	return s
}

// Open загружает сессию из файла. Отсутствующий файл - пустая сессия.
func Open(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if creds.APIKey != "" {
		s.creds = &creds
	}
	return s, nil
}

// Credentials возвращает копию учётных данных
func (s *Session) Credentials() (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds == nil {
		return Credentials{}, ErrNoSession
	}
	return *s.creds, nil
}

// Active есть ли действующий ключ
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds != nil
}

// Login сохраняет новые учётные данные
func (s *Session) Login(creds Credentials) error {
	if creds.APIKey == "" {
		return fmt.Errorf("api key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = &creds
	return s.persist()
}

// Override подменяет учётные данные только в памяти (переменные окружения)
func (s *Session) Override(apiKey string, clubID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := Credentials{}
	if s.creds != nil {
		creds = *s.creds
	}
	if apiKey != "" {
		creds.APIKey = apiKey
	}
	if clubID != 0 {
		creds.ClubID = clubID
	}
	if creds.APIKey != "" {
		s.creds = &creds
	}
}

// Logout сбрасывает учётные данные. Запросы после выхода получают ErrNoSession.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *Session) persist() error {
	if s.path == "" {
		return nil
	}

	data, err := json.Marshal(s.creds)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
