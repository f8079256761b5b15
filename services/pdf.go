package services

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var errNoPDFText = errors.New("no text content found in PDF")

// extractPDF returns the text of every page, one page per line.
func extractPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var pages []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if text := extractPageText(ctx, pageNr); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return "", errNoPDFText
	}
	return strings.Join(pages, "\n"), nil
}

func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromContentStream(data)
}

// textFromContentStream tokenizes a page content stream and collects the
// string operands of the text-showing operators (Tj, TJ, ' and "). Td, TD
// and T* separate words and lines. Fonts with custom encodings come out as
// raw bytes.
func textFromContentStream(data []byte) string {
	var sb strings.Builder
	var operands []string

	show := func(newline bool) {
		for _, s := range operands {
			if s == "" {
				continue
			}
			if newline {
				sb.WriteByte('\n')
				newline = false
			}
			sb.WriteString(s)
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isPDFSpace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			s, next := readLiteralString(data, i)
			operands = append(operands, s)
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<',
			c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2
		case c == '<':
			s, next := readHexString(data, i)
			operands = append(operands, s)
			i = next
		case c == '/':
			// names are never shown
			i++
			for i < len(data) && isPDFRegular(data[i]) {
				i++
			}
		case !isPDFRegular(c):
			// array brackets and stray delimiters
			i++
		default:
			start := i
			for i < len(data) && isPDFRegular(data[i]) {
				i++
			}
			tok := string(data[start:i])
			if isPDFNumber(tok) {
				continue
			}
			switch tok {
			case "Tj", "TJ":
				show(false)
			case "'", "\"":
				show(true)
			case "Td", "TD":
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
			case "T*":
				sb.WriteByte('\n')
			case "ID":
				i = skipInlineImage(data, i)
			}
			operands = operands[:0]
		}
	}
	return cleanPDFText(sb.String())
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isPDFRegular(c byte) bool {
	if isPDFSpace(c) {
		return false
	}
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}

func isPDFNumber(tok string) bool {
	switch tok[0] {
	case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	}
	return false
}

// readLiteralString reads a balanced (...) string starting at data[i] and
// returns its decoded text and the index after the closing parenthesis.
func readLiteralString(data []byte, i int) (string, int) {
	start := i + 1
	depth := 1
	for i = start; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return decodePDFString(data[start:i]), i + 1
			}
		}
	}
	return decodePDFString(data[start:]), len(data)
}

// readHexString reads a <...> string; whitespace is ignored and an odd final
// digit is padded with 0.
func readHexString(data []byte, i int) (string, int) {
	var digits []byte
	for i++; i < len(data) && data[i] != '>'; i++ {
		if c := data[i]; isHexDigit(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	if _, err := hex.Decode(out, digits); err != nil {
		return "", i + 1
	}
	return string(out), i + 1
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// skipInlineImage jumps past the binary data of an inline image, which ends
// at an EI operator surrounded by whitespace.
func skipInlineImage(data []byte, i int) int {
	for j := i + 1; j+1 < len(data); j++ {
		if data[j] != 'E' || data[j+1] != 'I' || !isPDFSpace(data[j-1]) {
			continue
		}
		if j+2 == len(data) || isPDFSpace(data[j+2]) {
			return j + 2
		}
	}
	return len(data)
}

func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				continue
			}
			// up to three octal digits
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

// cleanPDFText collapses whitespace runs into single spaces and drops
// non-printable runes.
func cleanPDFText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
