package util_media

import (
	"fmt"
	"io"

	"github.com/abema/go-mp4"
	"github.com/h2non/filetype"
)

// sniffHeaderSize filetype 识别所需的头部长度
const sniffHeaderSize = 262

// Sniff 检查文件头与声明的 MIME 一致
func Sniff(header []byte, declared string) error {
	kind, err := filetype.Match(header)
	if err != nil || kind == filetype.Unknown {
		return reject(ErrContentMismatch, "File content is not a supported image or video")
	}
	if kind.MIME.Value != normalizeMIME(declared) {
		return reject(ErrContentMismatch, fmt.Sprintf("File content is %s, not %s", kind.MIME.Value, normalizeMIME(declared)))
	}
	return nil
}

// ProbeMP4 确认存在 ftyp box
func ProbeMP4(r io.ReadSeeker) error {
	boxes, err := mp4.ExtractBoxWithPayload(r, nil, mp4.BoxPath{mp4.BoxTypeFtyp()})
	if err != nil {
		return reject(ErrContentMismatch, "Video is not a valid MP4 file")
	}
	if len(boxes) == 0 {
		return reject(ErrContentMismatch, "Video is not a valid MP4 file")
	}
	if _, ok := boxes[0].Payload.(*mp4.Ftyp); !ok {
		return reject(ErrContentMismatch, "Video is not a valid MP4 file")
	}
	return nil
}

// Inspect 嗅探内容，MP4 额外检查结构，结束后把读取位置复位
func Inspect(r io.ReadSeeker, declared string) error {
	header := make([]byte, sniffHeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("failed to read media header: %w", err)
	}
	if err := Sniff(header[:n], declared); err != nil {
		return err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind media: %w", err)
	}

	if normalizeMIME(declared) == "video/mp4" {
		if err := ProbeMP4(r); err != nil {
			return err
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to rewind media: %w", err)
		}
	}
	return nil
}
