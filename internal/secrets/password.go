package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app's secrets in the OS keychain.
	KeyringService = "jobscout"
)

var ErrNoPassword = errors.New("board password not found (store it with POST /api/secrets/board)")

func BoardKeyringAccount(email string) string {
	return fmt.Sprintf("jobscout:board:%s", strings.ToLower(strings.TrimSpace(email)))
}

func GetBoardPassword(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", errors.New("board account email is empty")
	}
	pw, err := keyring.Get(KeyringService, BoardKeyringAccount(email))
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("keyring: %w", err)
	}
	return "", ErrNoPassword
}

func SetBoardPassword(email string, password string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("board account email is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, BoardKeyringAccount(email), password)
}

func DeleteBoardPassword(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("board account email is empty")
	}
	return keyring.Delete(KeyringService, BoardKeyringAccount(email))
}

// ResolveBoardPassword returns explicit when set, else the stored password.
func ResolveBoardPassword(email, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return GetBoardPassword(email)
}
