package httpclient

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func readParts(t *testing.T, r io.Reader, contentType string) []*multipart.Part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("ParseMediaType error: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("media type = %q, want multipart/form-data", mediaType)
	}
	data, _ := io.ReadAll(r)
	mr := multipart.NewReader(bytes.NewReader(data), params["boundary"])
	var parts []*multipart.Part
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return parts
		}
		if err != nil {
			t.Fatalf("NextPart error: %v", err)
		}
		body, _ := io.ReadAll(part)
		part.Header.Set("X-Test-Body", string(body))
		parts = append(parts, part)
	}
}

func TestMultipartBody_FieldsThenFiles(t *testing.T) {
	mp := &MultipartBody{
		Fields: map[string]string{"model": "whisper-1", "language": "en"},
		Files:  []FileField{{FieldName: "file", FileName: "audio.wav", Data: []byte("RIFF")}},
	}
	r, ct, err := mp.encode()
	if err != nil {
		t.Fatalf("encode() error: %v", err)
	}
	parts := readParts(t, r, ct)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	want := []struct{ name, body string }{{"language", "en"}, {"model", "whisper-1"}, {"file", "RIFF"}}
	for i, w := range want {
		if parts[i].FormName() != w.name || parts[i].Header.Get("X-Test-Body") != w.body {
			t.Errorf("part %d = %s:%q, want %s:%q", i, parts[i].FormName(), parts[i].Header.Get("X-Test-Body"), w.name, w.body)
		}
	}
	if parts[2].FileName() != "audio.wav" {
		t.Errorf("filename = %q", parts[2].FileName())
	}
	if got := parts[2].Header.Get("Content-Type"); got != "application/octet-stream" {
		t.Errorf("default content type = %q", got)
	}
}

func TestMultipartBody_ReaderAndContentType(t *testing.T) {
	mp := &MultipartBody{
		Files: []FileField{{
			FieldName:   "file",
			FileName:    `we"ird.mp3`,
			ContentType: "audio/mpeg",
			Reader:      bytes.NewReader([]byte("ID3")),
		}},
	}
	r, ct, err := mp.encode()
	if err != nil {
		t.Fatalf("encode() error: %v", err)
	}
	parts := readParts(t, r, ct)
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0].Header.Get("Content-Type") != "audio/mpeg" {
		t.Errorf("content type = %q", parts[0].Header.Get("Content-Type"))
	}
	if parts[0].FileName() != `we"ird.mp3` {
		t.Errorf("filename = %q", parts[0].FileName())
	}
	if parts[0].Header.Get("X-Test-Body") != "ID3" {
		t.Errorf("body = %q", parts[0].Header.Get("X-Test-Body"))
	}
}

func TestMultipartBody_MissingFieldName(t *testing.T) {
	mp := &MultipartBody{Files: []FileField{{FileName: "a.wav"}}}
	if _, _, err := mp.encode(); err == nil {
		t.Fatal("expected error for file without field name")
	}
}

func TestMultipartBody_BufferedWithLength(t *testing.T) {
	audio := bytes.Repeat([]byte{0x52}, 64<<10)
	mp := &MultipartBody{
		Fields: map[string]string{"model": "whisper-1"},
		Files:  []FileField{{FieldName: "file", FileName: "a.wav", Reader: bytes.NewReader(audio)}},
	}
	r, _, err := mp.encode()
	if err != nil {
		t.Fatalf("encode() error: %v", err)
	}
	buf, ok := r.(*bytes.Buffer)
	if !ok {
		t.Fatalf("encode() returned %T, want *bytes.Buffer", r)
	}
	if buf.Len() <= len(audio) {
		t.Errorf("body length %d does not cover the %d audio bytes", buf.Len(), len(audio))
	}
}
