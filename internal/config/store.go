package config

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/darkkaiser/prowl-cli/pkg/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// 설정 파일에는 API 키가 저장되므로 소유자만 읽고 쓸 수 있도록 합니다.
	fileMode = 0600
	dirMode  = 0755
)

// Store 디스크에 저장된 설정 파일 하나를 다룹니다.
//
// 동시에 실행된 여러 프로세스 사이의 잠금은 제공하지 않으며, 마지막에 쓴 내용이 남습니다.
type Store struct {
	path string
}

// NewStore 주어진 경로의 설정 파일을 다루는 Store를 생성합니다.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath 플랫폼 표준 사용자 설정 디렉토리 아래의 설정 파일 경로를 반환합니다.
// 예: Linux "~/.config/prowl/config.json", macOS "~/Library/Application Support/prowl/config.json"
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", wrapConfigError(err, "Could not determine config directory")
	}
	return filepath.Join(dir, AppName, DefaultFilename), nil
}

// NewDefaultStore 기본 경로의 설정 파일을 다루는 Store를 생성합니다.
func NewDefaultStore() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path 설정 파일 경로를 반환합니다.
func (s *Store) Path() string {
	return s.path
}

// Exists 설정 파일이 존재하는지 확인합니다.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load 설정 파일을 읽습니다. 파일이 없으면 빈 Config를 에러 없이 반환합니다.
//
// 파일이 JSON 객체가 아니거나 알려진 키의 값이 문자열이 아니면 Config 타입 에러를 반환합니다.
// 알 수 없는 키는 무시하고 경고 로그만 남깁니다.
func (s *Store) Load() (Config, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, wrapIOError(err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(s.path), json.Parser()); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return Config{}, wrapIOError(err)
		}
		return Config{}, wrapConfigError(err, "Failed to parse config file")
	}

	var cfg Config
	var md mapstructure.Metadata
	if err := k.UnmarshalWithConf("", &cfg, fileUnmarshalConf(&md)); err != nil {
		return Config{}, wrapConfigError(err, "Failed to parse config file")
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		log.WithComponentAndFields("config", log.Fields{
			"path":         s.path,
			"unknown_keys": md.Unused,
		}).Warn("설정 파일의 알 수 없는 키를 무시합니다")
	}

	return cfg, nil
}

// Save 설정 전체를 파일에 덮어씁니다. 상위 디렉토리가 없으면 생성합니다.
func (s *Store) Save(cfg Config) error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "json"), nil); err != nil {
		return wrapConfigError(err, "Failed to serialize config")
	}

	raw, err := k.Marshal(json.Parser())
	if err != nil {
		return wrapConfigError(err, "Failed to serialize config")
	}

	var out bytes.Buffer
	if err := stdjson.Indent(&out, raw, "", "  "); err != nil {
		return wrapConfigError(err, "Failed to serialize config")
	}
	out.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return wrapIOError(err)
	}
	if err := os.WriteFile(s.path, out.Bytes(), fileMode); err != nil {
		return wrapIOError(err)
	}

	log.WithComponentAndFields("config", log.Fields{
		"path": s.path,
	}).Debug("설정 파일 저장 완료")

	return nil
}

// Set 설정 키 하나의 값을 변경하여 저장합니다.
//
// 키가 api_key, provider_key, application 중 하나가 아니면 파일을 건드리지 않고 Config 타입 에러를 반환합니다.
func (s *Store) Set(key, value string) error {
	if !IsValidKey(key) {
		return newConfigError("Unknown config key: %s. Valid keys are: %s", key, strings.Join(Keys, ", "))
	}

	cfg, err := s.Load()
	if err != nil {
		return err
	}
	cfg.Set(key, value)

	return s.Save(cfg)
}

// Init 기본값(application = "prowl-cli")만 담긴 설정 파일을 생성합니다.
// 파일이 이미 있으면 force가 true일 때만 덮어씁니다.
func (s *Store) Init(force bool) error {
	if s.Exists() && !force {
		return newConfigError("Config file already exists at %s. Use --force to overwrite.", s.path)
	}
	return s.Save(Config{Application: DefaultApplication})
}
