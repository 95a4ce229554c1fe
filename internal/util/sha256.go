// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Sha256HashFile returns the hex encoded sha256 sum of the file at path,
// the file is streamed so large files do not get loaded into memory
func Sha256HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	_, err = io.Copy(hasher, f)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Sha256HashBytes returns the hex encoded sha256 sum of c
func Sha256HashBytes(c []byte) (string, error) {
	hasher := sha256.New()
	hasher.Write(c)

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
