package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

var (
	// ErrTooLarge возвращается, если файл превышает лимит загрузки.
	ErrTooLarge = errors.New("storage: file exceeds upload limit")
	// ErrUnsupportedType возвращается для файлов недопустимого типа.
	ErrUnsupportedType = errors.New("storage: file type is not accepted")
)

// Типы, определяемые по магическим байтам, и расширения для них.
var (
	imageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	}
	documentTypes = map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"application/pdf": ".pdf",
	}
)

// StoredFile описывает сохранённый файл.
type StoredFile struct {
	Path string
	Size int64
	MIME string
}

// FileStorage хранит загруженные файлы на диске, по каталогу на владельца.
type FileStorage struct {
	rootPath       string
	maxUploadBytes int64
	allowed        map[string]string
}

// NewPhotoStorage создаёт публичное хранилище фотографий профилей.
func NewPhotoStorage(rootPath string, maxUploadMB int64) (*FileStorage, error) {
	return newFileStorage(rootPath, maxUploadMB, imageTypes)
}

// NewDocumentStorage создаёт закрытое хранилище документов исполнителей
// (jpeg, png, pdf). Каталог не раздаётся наружу.
func NewDocumentStorage(rootPath string, maxUploadMB int64) (*FileStorage, error) {
	return newFileStorage(rootPath, maxUploadMB, documentTypes)
}

func newFileStorage(rootPath string, maxUploadMB int64, allowed map[string]string) (*FileStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &FileStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		allowed:        allowed,
	}, nil
}

// Save сохраняет файл и возвращает относительный путь и размер.
func (s *FileStorage) Save(ctx context.Context, ownerID uuid.UUID, originalName string, r io.Reader) (string, int64, error) {
	f, err := s.Store(ctx, ownerID, originalName, r)
	if err != nil {
		return "", 0, err
	}
	return f.Path, f.Size, nil
}

// Store проверяет реальный тип файла и сохраняет его.
// Расширение берётся из содержимого, а не из имени файла.
func (s *FileStorage) Store(ctx context.Context, ownerID uuid.UUID, originalName string, r io.Reader) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return nil, ErrUnsupportedType
	}
	ext, ok := s.allowed[kind.MIME.Value]
	if !ok {
		return nil, ErrUnsupportedType
	}

	base := strings.TrimSuffix(sanitizeFilename(originalName), filepath.Ext(originalName))
	fileName := fmt.Sprintf("%s_%d%s", base, time.Now().UnixNano(), ext)

	ownerDir := filepath.Join(s.rootPath, ownerID.String())
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
	}

	targetPath := filepath.Join(ownerDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), r), N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return nil, ErrTooLarge
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return nil, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return &StoredFile{
		Path: filepath.Join(ownerID.String(), fileName),
		Size: written,
		MIME: kind.MIME.Value,
	}, nil
}

// Delete удаляет файл из хранилища.
func (s *FileStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, filepath.Clean("/"+relativePath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." {
		name = "photo"
	}
	return name
}
