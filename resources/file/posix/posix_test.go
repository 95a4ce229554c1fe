// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package posix

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/khurmatov/filestate/internal/util"
	"github.com/khurmatov/filestate/manager"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPosixProvider(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Resources/File/Posix")
}

var _ = Describe("Provider", func() {
	var (
		ctx  context.Context
		prov *Provider
		dir  string
		path string
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		path = filepath.Join(dir, "test.txt")

		var err error
		prov, err = NewPosixProvider(manager.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Stat", func() {
		It("Should handle missing files", func() {
			stat, err := prov.Stat(ctx, path)
			Expect(err).ToNot(HaveOccurred())
			Expect(stat.Exists).To(BeFalse())
			Expect(stat.Path).To(Equal(path))
			Expect(stat.Provider).To(Equal("posix"))
		})

		It("Should describe existing files", func() {
			Expect(os.WriteFile(path, []byte("hello"), 0640)).To(Succeed())

			stat, err := prov.Stat(ctx, path)
			Expect(err).ToNot(HaveOccurred())
			Expect(stat.Exists).To(BeTrue())
			Expect(stat.Size).To(BeEquivalentTo(5))
			Expect(stat.Mode).To(Equal("0640"))
			expected, err := util.Sha256HashBytes([]byte("hello"))
			Expect(err).ToNot(HaveOccurred())
			Expect(stat.Checksum).To(Equal(expected))
			Expect(stat.Owner).ToNot(BeEmpty())
			Expect(stat.Group).ToNot(BeEmpty())
		})

		It("Should reject directories", func() {
			_, err := prov.Stat(ctx, dir)
			Expect(err).To(MatchError(ContainSubstring("is a directory")))
		})
	})

	Describe("WriteFile", func() {
		It("Should write contents with the requested mode", func() {
			Expect(prov.WriteFile(ctx, path, []byte("written"), "0600")).To(Succeed())

			Expect(os.ReadFile(path)).To(BeEquivalentTo("written"))

			nfo, err := os.Stat(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(nfo.Mode().Perm()).To(Equal(os.FileMode(0600)))
		})

		It("Should create missing parent directories", func() {
			nested := filepath.Join(dir, "x", "y", "z.txt")

			Expect(prov.WriteFile(ctx, nested, []byte("nested"), "0644")).To(Succeed())
			Expect(os.ReadFile(nested)).To(BeEquivalentTo("nested"))
		})

		It("Should reject invalid modes", func() {
			err := prov.WriteFile(ctx, path, []byte("x"), "rw-r--r--")
			Expect(err).To(MatchError(ContainSubstring("not a valid octal number")))
		})

		It("Should not leave temporary files behind", func() {
			Expect(prov.WriteFile(ctx, path, []byte("clean"), "0644")).To(Succeed())

			entries, err := os.ReadDir(dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})

	Describe("Backup", func() {
		It("Should copy the file with its mode preserved", func() {
			Expect(os.WriteFile(path, []byte("original"), 0600)).To(Succeed())

			backup, err := prov.Backup(ctx, path)
			Expect(err).ToNot(HaveOccurred())
			Expect(backup).To(MatchRegexp(`test\.txt\.%d\.\d{4}-\d{2}-\d{2}@\d{2}:\d{2}:\d{2}~$`, os.Getpid()))

			Expect(os.ReadFile(backup)).To(BeEquivalentTo("original"))

			nfo, err := os.Stat(backup)
			Expect(err).ToNot(HaveOccurred())
			Expect(nfo.Mode().Perm()).To(Equal(os.FileMode(0600)))
		})

		It("Should fail for missing files", func() {
			_, err := prov.Backup(ctx, path)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SetAttributes", func() {
		BeforeEach(func() {
			Expect(os.WriteFile(path, []byte("attrs"), 0644)).To(Succeed())
		})

		It("Should be a noop when nothing is requested", func() {
			changed, err := prov.SetAttributes(ctx, path, "", "", "")
			Expect(err).ToNot(HaveOccurred())
			Expect(changed).To(BeFalse())
		})

		It("Should converge the mode", func() {
			changed, err := prov.SetAttributes(ctx, path, "", "", "0600")
			Expect(err).ToNot(HaveOccurred())
			Expect(changed).To(BeTrue())

			nfo, err := os.Stat(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(nfo.Mode().Perm()).To(Equal(os.FileMode(0600)))
		})

		It("Should not report a change for an equivalent mode", func() {
			changed, err := prov.SetAttributes(ctx, path, "", "", "644")
			Expect(err).ToNot(HaveOccurred())
			Expect(changed).To(BeFalse())
		})

		It("Should not report a change when ownership already matches", func() {
			stat, err := prov.Stat(ctx, path)
			Expect(err).ToNot(HaveOccurred())

			changed, err := prov.SetAttributes(ctx, path, stat.Owner, stat.Group, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(changed).To(BeFalse())
		})

		It("Should treat matching numeric ids as unchanged", func() {
			changed, err := prov.SetAttributes(ctx, path, strconv.Itoa(os.Getuid()), strconv.Itoa(os.Getgid()), "")
			Expect(err).ToNot(HaveOccurred())
			Expect(changed).To(BeFalse())
		})

		It("Should fail for unknown users", func() {
			_, err := prov.SetAttributes(ctx, path, "no-such-user-here", "", "")
			Expect(err).To(MatchError(ContainSubstring("could not resolve user")))
		})
	})

	Describe("Factory", func() {
		It("Should not manage windows hosts", func() {
			f := &factory{}

			ok, err := f.IsManageable(map[string]any{"os": "windows"})
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeFalse())

			ok, err = f.IsManageable(map[string]any{"os": "linux"})
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
		})
	})
})
