package gateway

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

// ExtractText pulls the analyzable text out of an email message. For
// multipart messages it concatenates the text/plain parts; for everything
// else it returns the body as-is.
func ExtractText(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return readAll(msg.Body)
	}

	boundary, ok := params["boundary"]
	if !ok {
		return readAll(msg.Body)
	}

	var text bytes.Buffer
	mr := multipart.NewReader(msg.Body, boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep whatever text was collected before the malformed part.
			break
		}

		partType := strings.ToLower(part.Header.Get("Content-Type"))
		if !strings.Contains(partType, "text/plain") {
			continue
		}
		partBytes, err := io.ReadAll(part)
		if err != nil {
			continue
		}
		text.Write(partBytes)
		text.WriteString("\n")
	}

	if text.Len() == 0 {
		return "[No text content found in multipart message]", nil
	}
	return text.String(), nil
}

// DecodeHeader decodes an RFC 2047 encoded header value, returning the input
// unchanged if decoding fails.
func DecodeHeader(value string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
