// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// Envelope parameters. Key derivation is PBKDF2-SHA512; the envelope
// records the parameters so they can be tightened later without
// breaking existing payloads.
const (
	defaultIterations = 600000
	keyLength         = 32
	saltLength        = 16
)

// envelope is the JSON wrapper around an encrypted payload.
type envelope struct {
	Meta struct {
		Salt       string `json:"salt"`
		Iterations int    `json:"iterations"`
		HashFunc   string `json:"hash_function"`
		KeyLength  int    `json:"key_length"`
	} `json:"s3ctl_key"`
	EncryptedData string `json:"encrypted_data"`
}

// Seal encrypts plaintext under passphrase and returns the JSON
// envelope: PBKDF2-SHA512 derived key, AES-256-GCM, random nonce
// prepended to the ciphertext.
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, defaultIterations, keyLength, sha512.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aesGCM.Seal(nonce, nonce, plaintext, nil)

	var env envelope
	env.Meta.Salt = base64.StdEncoding.EncodeToString(salt)
	env.Meta.Iterations = defaultIterations
	env.Meta.HashFunc = "sha512"
	env.Meta.KeyLength = keyLength
	env.EncryptedData = base64.StdEncoding.EncodeToString(sealed)

	return json.Marshal(env)
}

// Open decrypts a Seal envelope with the provided passphrase.
func Open(data []byte, passphrase string) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse envelope: %w", err)
	}
	if env.EncryptedData == "" {
		return nil, fmt.Errorf("envelope has no encrypted data")
	}

	salt, err := base64.StdEncoding.DecodeString(env.Meta.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	if env.Meta.HashFunc != "" && env.Meta.HashFunc != "sha512" {
		return nil, fmt.Errorf("unsupported hash function %q", env.Meta.HashFunc)
	}
	iterations := env.Meta.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}
	length := env.Meta.KeyLength
	if length <= 0 {
		length = keyLength
	}

	key := pbkdf2.Key([]byte(passphrase), salt, iterations, length, sha512.New)

	ciphertext, err := base64.StdEncoding.DecodeString(env.EncryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext shorter than nonce")
	}
	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// IsSealed reports whether data looks like a Seal envelope.
func IsSealed(data []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	_, ok := probe["encrypted_data"]
	return ok
}

// GetPassphrase prompts interactively for a passphrase without echoing input.
func GetPassphrase() (string, error) {
	var password []byte
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(syscall.Stdin), oldState) //nolint:errcheck

	fmt.Print("Enter passphrase: ")
	defer fmt.Print("\r")

loop:
	for {
		select {
		case <-signalChannel:
			fmt.Println("\nInterrupt received, exiting...")
			return "", fmt.Errorf("interrupted")
		default:
			var buf [1]byte
			n, readErr := syscall.Read(syscall.Stdin, buf[:])
			if readErr != nil || n == 0 {
				break loop
			}
			if buf[0] == '\n' || buf[0] == '\r' {
				break loop
			}
			if buf[0] == 127 || buf[0] == 8 { // Handle backspace
				if len(password) > 0 {
					password = password[:len(password)-1]
					fmt.Print("\b \b")
				}
			} else {
				password = append(password, buf[0])
				fmt.Print("*")
			}
		}
	}
	fmt.Println()
	return string(password), nil
}
