// Package keyring provides storage for the helper session token.
// It uses the system keyring when available, falling back to an
// encrypted local file when not.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"

	"github.com/yllada/tunnelsplit/common"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = "tunnelsplit"
	// tokenKey is the keyring entry holding the helper session token.
	tokenKey = "helper-token"

	// pbkdf2Iterations for deriving the fallback-file key from machine
	// identity. The input has low entropy, so the count matters.
	pbkdf2Iterations = 64_000
)

// Store persists the token using the system keyring, or the encrypted
// local file when the keyring is unavailable.
type Store struct {
	useLocalFile bool
	localPath    string
	localKey     []byte
}

// New creates a token store, probing the system keyring once.
func New() *Store {
	s := &Store{}

	probe := serviceName + "-probe"
	if err := keyring.Set(serviceName, probe, "ok"); err != nil {
		s.enableLocalFallback()
	} else {
		keyring.Delete(serviceName, probe)
	}

	return s
}

func (s *Store) enableLocalFallback() {
	s.useLocalFile = true

	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", common.ConfigDirName)
	os.MkdirAll(configDir, 0700)
	s.localPath = filepath.Join(configDir, common.TokenFileName)
	s.localKey = deriveLocalKey()
}

// deriveLocalKey derives the fallback-file encryption key from
// machine-specific data via PBKDF2.
func deriveLocalKey() []byte {
	hostname, _ := os.Hostname()
	secret := fmt.Sprintf("%s-%s-%s-%d", serviceName, hostname, machineID(), os.Getuid())
	salt := sha256.Sum256([]byte(serviceName + "-token-salt"))
	return pbkdf2.Key([]byte(secret), salt[:], pbkdf2Iterations, 32, sha256.New)
}

func machineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	return "default-machine-id"
}

// Store saves the helper session token.
func (s *Store) Store(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if s.useLocalFile {
		return s.storeLocal(token)
	}

	if err := keyring.Set(serviceName, tokenKey, token); err != nil {
		// Keyring went away after the probe; fall back permanently.
		s.enableLocalFallback()
		return s.storeLocal(token)
	}
	return nil
}

// Get retrieves the helper session token.
func (s *Store) Get() (string, error) {
	if s.useLocalFile {
		return s.getLocal()
	}

	token, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", common.ErrTokenNotFound
		}
		return "", common.WrapError(common.ErrTokenNotFound, err.Error())
	}
	return token, nil
}

// Delete removes the helper session token from every backend.
func (s *Store) Delete() error {
	if !s.useLocalFile {
		keyring.Delete(serviceName, tokenKey)
	}

	if s.localPath != "" {
		if err := os.Remove(s.localPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *Store) storeLocal(token string) error {
	encrypted, err := encrypt([]byte(token), s.localKey)
	if err != nil {
		return common.WrapError(common.ErrTokenStorage, err.Error())
	}
	if err := os.WriteFile(s.localPath, encrypted, 0600); err != nil {
		return common.WrapError(common.ErrTokenStorage, err.Error())
	}
	return nil
}

func (s *Store) getLocal() (string, error) {
	data, err := os.ReadFile(s.localPath)
	if err != nil {
		return "", common.ErrTokenNotFound
	}

	token, err := decrypt(data, s.localKey)
	if err != nil {
		return "", common.WrapError(common.ErrTokenNotFound, "cannot decrypt token file")
	}
	return string(token), nil
}

func encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func decrypt(data, key []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
