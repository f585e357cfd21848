package tool

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		var (
			filename  string
			data      []byte
			savedPath string
			err       error
		)

		BeforeEach(func() {
			filename = "tool-1_receipt.jpg"
			data = []byte("receipt image bytes")
		})

		JustBeforeEach(func() {
			savedPath, err = storage.Save(filename, data)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the filename", func() {
				Expect(savedPath).To(Equal(filename))
			})

			It("should write the file to disk", func() {
				onDisk, readErr := os.ReadFile(filepath.Join(tmpDir, filename))
				Expect(readErr).NotTo(HaveOccurred())
				Expect(onDisk).To(Equal(data))
			})
		})

		When("the file already exists", func() {
			BeforeEach(func() {
				_, seedErr := storage.Save(filename, []byte("old content"))
				Expect(seedErr).NotTo(HaveOccurred())
			})

			It("should overwrite it", func() {
				Expect(err).NotTo(HaveOccurred())
				onDisk, readErr := os.ReadFile(filepath.Join(tmpDir, filename))
				Expect(readErr).NotTo(HaveOccurred())
				Expect(onDisk).To(Equal(data))
			})
		})
	})

	Describe("Get", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("stored.png", []byte("png bytes"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return its contents", func() {
				data, err := storage.Get("stored.png")
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(Equal([]byte("png bytes")))
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				_, err := storage.Get("missing.png")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Delete", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("doomed.pdf", []byte("pdf bytes"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove it", func() {
				Expect(storage.Delete("doomed.pdf")).To(Succeed())
				_, statErr := os.Stat(filepath.Join(tmpDir, "doomed.pdf"))
				Expect(os.IsNotExist(statErr)).To(BeTrue())
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				Expect(storage.Delete("missing.pdf")).NotTo(Succeed())
			})
		})
	})

	Describe("NewLocalStorage", func() {
		It("should create the base directory if missing", func() {
			nested := filepath.Join(tmpDir, "a", "b")
			_, err := NewLocalStorage(nested)
			Expect(err).NotTo(HaveOccurred())
			info, statErr := os.Stat(nested)
			Expect(statErr).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())
		})
	})
})

var _ = Describe("extensionFor", func() {
	It("maps known content types to extensions", func() {
		Expect(extensionFor("image/png")).To(Equal(".png"))
		Expect(extensionFor("image/jpeg")).To(Equal(".jpg"))
		Expect(extensionFor("application/pdf")).To(Equal(".pdf"))
		Expect(extensionFor("image/heic")).To(Equal(".heic"))
		Expect(extensionFor("image/heif")).To(Equal(".heic"))
		Expect(extensionFor("image/gif")).To(Equal(".gif"))
	})

	It("falls back to a generic extension", func() {
		Expect(extensionFor("application/octet-stream")).To(Equal(".bin"))
		Expect(extensionFor("")).To(Equal(".bin"))
	})
})
